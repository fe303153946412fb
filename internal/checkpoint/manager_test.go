package checkpoint

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewManager(t *testing.T) {
	tests := []struct {
		name     string
		config   *ManagerConfig
		wantPath string
		wantAuto bool
	}{
		{
			name:     "nil config uses defaults",
			config:   nil,
			wantPath: ".annobench-checkpoint.json",
			wantAuto: true,
		},
		{
			name: "custom config",
			config: &ManagerConfig{
				FilePath: "/tmp/custom.json",
				Interval: 10 * time.Second,
				AutoSave: false,
			},
			wantPath: "/tmp/custom.json",
			wantAuto: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewManager(tt.config)
			if m.filePath != tt.wantPath {
				t.Errorf("filePath = %q, want %q", m.filePath, tt.wantPath)
			}
			if m.autoSave != tt.wantAuto {
				t.Errorf("autoSave = %v, want %v", m.autoSave, tt.wantAuto)
			}
			if m.state.Version != "1.0" {
				t.Errorf("state.Version = %q, want %q", m.state.Version, "1.0")
			}
			if m.state.Completed == nil {
				t.Error("state.Completed should be initialized")
			}
		})
	}
}

func TestInitialize(t *testing.T) {
	m := NewManager(nil)
	m.RecordCompletion("old.gff")
	m.Initialize("ref.gff", "preds")

	s := m.GetState()
	if s.RunID == "" {
		t.Error("RunID should be set")
	}
	if s.Reference != "ref.gff" || s.Target != "preds" {
		t.Errorf("got reference %q target %q", s.Reference, s.Target)
	}
	if len(s.Completed) != 0 {
		t.Errorf("Completed = %v, want empty", s.Completed)
	}
	if !m.Matches("ref.gff", "preds") {
		t.Error("Matches should accept the initialized pair")
	}
	if m.Matches("ref.gff", "other") {
		t.Error("Matches should reject another target")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cp.json")

	m := NewManager(&ManagerConfig{FilePath: path})
	m.Initialize("ref.gff", "preds")
	m.FilterPending([]string{"preds/a.gff", "preds/b.gff"})
	m.RecordCompletion("preds/a.gff")
	if err := m.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file should be renamed away")
	}

	loaded, err := LoadAndResume(path)
	if err != nil {
		t.Fatalf("LoadAndResume: %v", err)
	}
	s := loaded.GetState()
	if s.RunID != m.GetState().RunID {
		t.Errorf("RunID = %q, want %q", s.RunID, m.GetState().RunID)
	}
	if s.Progress.TotalFiles != 2 || s.Progress.CompletedFiles != 1 {
		t.Errorf("progress = %+v", s.Progress)
	}
	if s.Progress.PercentComplete != 50 {
		t.Errorf("PercentComplete = %v, want 50", s.Progress.PercentComplete)
	}
	if !loaded.IsCompleted("a.gff") {
		t.Error("a.gff should be completed after reload")
	}
}

func TestIsCompletedUsesFileName(t *testing.T) {
	m := NewManager(nil)
	m.RecordCompletion("/data/run1/augustus_x.gff")

	if !m.IsCompleted("/elsewhere/augustus_x.gff") {
		t.Error("completion should match by file name")
	}
	if m.IsCompleted("/data/run1/snap_x.gff") {
		t.Error("snap_x.gff was never completed")
	}
}

func TestFilterPending(t *testing.T) {
	m := NewManager(nil)
	m.RecordCompletion("b.gff")

	pending := m.FilterPending([]string{"d/a.gff", "d/b.gff", "d/c.txt"})
	if len(pending) != 2 || pending[0] != "d/a.gff" || pending[1] != "d/c.txt" {
		t.Errorf("pending = %v", pending)
	}

	m.RecordCompletion("a.gff")
	m.RecordCompletion("c.txt")
	if pending := m.FilterPending([]string{"d/a.gff", "d/b.gff", "d/c.txt"}); len(pending) != 0 {
		t.Errorf("pending = %v, want none", pending)
	}
	if got := m.GetResumeInfo().Progress.PercentComplete; got != 100 {
		t.Errorf("PercentComplete = %v, want 100", got)
	}
}

func TestGetStateIsCopy(t *testing.T) {
	m := NewManager(nil)
	m.RecordCompletion("a.gff")

	s := m.GetState()
	s.Completed[0] = "changed"
	if !m.IsCompleted("a.gff") {
		t.Error("mutating the copy must not change the manager")
	}
}

func TestExistsAndCleanup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cp.json")
	if Exists(path) {
		t.Fatal("checkpoint should not exist yet")
	}

	m := NewManager(&ManagerConfig{FilePath: path})
	if err := m.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !Exists(path) {
		t.Fatal("checkpoint should exist after Save")
	}
	if err := m.Cleanup(); err != nil {
		t.Fatalf("Cleanup: %v", err)
	}
	if Exists(path) {
		t.Error("checkpoint should be removed")
	}
	if err := m.Cleanup(); err == nil {
		t.Error("Cleanup of a missing file should fail")
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	m := NewManager(nil)
	if err := m.Load(bad); err == nil {
		t.Error("expected parse error")
	}
	if err := m.Load(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected read error")
	}
	if _, err := LoadAndResume(bad); err == nil {
		t.Error("LoadAndResume should fail on invalid file")
	}
}

func TestAutoSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cp.json")
	m := NewManager(&ManagerConfig{FilePath: path, Interval: 10 * time.Millisecond, AutoSave: true})
	m.StartAutoSave()
	defer m.StopAutoSave()

	deadline := time.Now().Add(2 * time.Second)
	for !Exists(path) && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if !Exists(path) {
		t.Fatal("auto save did not write the checkpoint")
	}
	m.StopAutoSave()
	m.StopAutoSave()
}
