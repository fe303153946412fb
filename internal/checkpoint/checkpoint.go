// Package checkpoint provides evaluation state persistence and recovery
package checkpoint

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Manager handles checkpoint operations
type Manager struct {
	mu       sync.Mutex
	filePath string
	interval time.Duration
	state    *EvalState
	lastSave time.Time
	autoSave bool
	stopChan chan struct{}
	stopOnce sync.Once
}

// EvalState represents the saved evaluation state
type EvalState struct {
	Version    string       `json:"version"`
	RunID      string       `json:"run_id"`
	StartTime  time.Time    `json:"start_time"`
	LastUpdate time.Time    `json:"last_update"`
	Reference  string       `json:"reference"`
	Target     string       `json:"target"`
	Progress   EvalProgress `json:"progress"`
	Completed  []string     `json:"completed"` // prediction file names
}

// EvalProgress tracks evaluation progress
type EvalProgress struct {
	TotalFiles      int     `json:"total_files"`
	CompletedFiles  int     `json:"completed_files"`
	PercentComplete float64 `json:"percent_complete"`
}

// ManagerConfig holds checkpoint manager configuration
type ManagerConfig struct {
	FilePath string
	Interval time.Duration
	AutoSave bool
}

// DefaultManagerConfig returns default configuration
func DefaultManagerConfig() *ManagerConfig {
	return &ManagerConfig{
		FilePath: ".annobench-checkpoint.json",
		Interval: 30 * time.Second,
		AutoSave: true,
	}
}

// NewManager creates a new checkpoint manager
func NewManager(config *ManagerConfig) *Manager {
	if config == nil {
		config = DefaultManagerConfig()
	}
	if config.Interval <= 0 {
		config.Interval = 30 * time.Second
	}

	return &Manager{
		filePath: config.FilePath,
		interval: config.Interval,
		autoSave: config.AutoSave,
		stopChan: make(chan struct{}),
		state: &EvalState{
			Version:   "1.0",
			Completed: []string{},
		},
	}
}

// Initialize starts a fresh state for evaluating target against reference
func (m *Manager) Initialize(reference, target string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	m.state = &EvalState{
		Version:    "1.0",
		RunID:      uuid.New().String(),
		StartTime:  now,
		LastUpdate: now,
		Reference:  reference,
		Target:     target,
		Completed:  []string{},
	}
}

// Matches reports whether the state belongs to the same reference and target
func (m *Manager) Matches(reference, target string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Reference == reference && m.state.Target == target
}

// key identifies a prediction by file name so a moved directory still resumes
func key(path string) string {
	return filepath.Base(path)
}

// RecordCompletion records an evaluated prediction
func (m *Manager) RecordCompletion(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state.Completed = append(m.state.Completed, key(path))
	m.updateProgress()
	m.state.LastUpdate = time.Now()
}

func (m *Manager) updateProgress() {
	p := &m.state.Progress
	p.CompletedFiles = len(m.state.Completed)
	if p.TotalFiles > 0 {
		p.PercentComplete = float64(p.CompletedFiles) / float64(p.TotalFiles) * 100
	}
}

// IsCompleted checks if a prediction has been evaluated
func (m *Manager) IsCompleted(path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := key(path)
	for _, c := range m.state.Completed {
		if c == k {
			return true
		}
	}
	return false
}

// FilterPending records len(paths) as the total and returns the paths not
// yet evaluated
func (m *Manager) FilterPending(paths []string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	completed := make(map[string]bool)
	for _, c := range m.state.Completed {
		completed[c] = true
	}

	var pending []string
	for _, p := range paths {
		if !completed[key(p)] {
			pending = append(pending, p)
		}
	}

	m.state.Progress.TotalFiles = len(paths)
	m.updateProgress()
	return pending
}

// Save saves the current state to file
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state.LastUpdate = time.Now()

	data, err := json.MarshalIndent(m.state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal checkpoint: %w", err)
	}

	// Write to temp file first
	tempFile := m.filePath + ".tmp"
	if err := os.WriteFile(tempFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write checkpoint: %w", err)
	}

	// Rename to final file
	if err := os.Rename(tempFile, m.filePath); err != nil {
		return fmt.Errorf("failed to finalize checkpoint: %w", err)
	}

	m.lastSave = time.Now()
	return nil
}

// Load loads state from a checkpoint file
func (m *Manager) Load(filePath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read checkpoint: %w", err)
	}

	var state EvalState
	if err := json.Unmarshal(data, &state); err != nil {
		return fmt.Errorf("failed to parse checkpoint: %w", err)
	}
	if state.Completed == nil {
		state.Completed = []string{}
	}

	m.state = &state
	m.filePath = filePath

	return nil
}

// GetState returns a copy of the current state
func (m *Manager) GetState() *EvalState {
	m.mu.Lock()
	defer m.mu.Unlock()

	stateCopy := *m.state
	stateCopy.Completed = append([]string(nil), m.state.Completed...)
	return &stateCopy
}

// StartAutoSave starts automatic saving at intervals
func (m *Manager) StartAutoSave() {
	if !m.autoSave {
		return
	}

	go func() {
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if err := m.Save(); err != nil {
					log.Warn().Err(err).Str("file", m.filePath).Msg("checkpoint save failed")
				}
			case <-m.stopChan:
				return
			}
		}
	}()
}

// StopAutoSave stops automatic saving (safe to call multiple times)
func (m *Manager) StopAutoSave() {
	m.stopOnce.Do(func() {
		close(m.stopChan)
	})
}

// Cleanup removes the checkpoint file
func (m *Manager) Cleanup() error {
	return os.Remove(m.filePath)
}

// Exists checks if a checkpoint file exists
func Exists(filePath string) bool {
	_, err := os.Stat(filePath)
	return err == nil
}

// LoadAndResume loads a checkpoint and prepares for resume
func LoadAndResume(filePath string) (*Manager, error) {
	manager := NewManager(&ManagerConfig{
		FilePath: filePath,
		AutoSave: true,
	})

	if err := manager.Load(filePath); err != nil {
		return nil, err
	}

	return manager, nil
}

// ResumeInfo summarizes a checkpoint for display
type ResumeInfo struct {
	RunID      string
	StartTime  time.Time
	LastUpdate time.Time
	Target     string
	Progress   EvalProgress
}

// GetResumeInfo returns information about a checkpoint for resuming
func (m *Manager) GetResumeInfo() *ResumeInfo {
	m.mu.Lock()
	defer m.mu.Unlock()

	return &ResumeInfo{
		RunID:      m.state.RunID,
		StartTime:  m.state.StartTime,
		LastUpdate: m.state.LastUpdate,
		Target:     m.state.Target,
		Progress:   m.state.Progress,
	}
}
