package benchmark

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Outcome is the result of evaluating one prediction file
type Outcome struct {
	Prediction  string
	MetricsFile string
	AUCBase     string // set when AUC files were written
	Metrics     []LabelMetrics
}

// Tracker remembers evaluated predictions so an interrupted directory run
// can resume
type Tracker interface {
	FilterPending(paths []string) []string
	RecordCompletion(path string)
}

// Runner evaluates prediction files against one reference annotation
type Runner struct {
	ref     []Feature
	labels  []string
	workers int
	tracker Tracker
}

// NewRunner creates a runner. An empty labels list selects DefaultLabels;
// workers below one means one.
func NewRunner(ref []Feature, labels []string, workers int) *Runner {
	if len(labels) == 0 {
		labels = DefaultLabels
	}
	if workers < 1 {
		workers = 1
	}
	return &Runner{ref: ref, labels: labels, workers: workers}
}

// NewRunnerFromFile reads the reference annotation at path
func NewRunnerFromFile(path string, labels []string, workers int) (*Runner, error) {
	ref, err := ReadFeatures(path)
	if err != nil {
		return nil, fmt.Errorf("reference: %w", err)
	}
	log.Debug().Str("file", path).Int("features", len(ref)).Msg("reference loaded")
	return NewRunner(ref, labels, workers), nil
}

// WithTracker makes EvaluateDir skip predictions the tracker has seen and
// report each one it finishes
func (r *Runner) WithTracker(t Tracker) *Runner {
	r.tracker = t
	return r
}

// wantsAUC reports whether a prediction carries per-feature scores worth
// ranking: GeAnno segment listings and AUGUSTUS runs
func wantsAUC(path string) bool {
	name := filepath.Base(path)
	return strings.EqualFold(filepath.Ext(name), ".txt") || strings.HasPrefix(name, "augustus_")
}

// EvaluateFile scores one prediction and writes <stem>.csv next to it
func (r *Runner) EvaluateFile(path string) (Outcome, error) {
	preds, err := ReadFeatures(path)
	if err != nil {
		return Outcome{}, err
	}
	return r.evaluate(path, preds)
}

func (r *Runner) evaluate(path string, preds []Feature) (Outcome, error) {
	base := strings.TrimSuffix(path, filepath.Ext(path))
	out := Outcome{
		Prediction:  path,
		MetricsFile: base + ".csv",
		Metrics:     Evaluate(r.ref, preds, r.labels),
	}
	if err := WriteMetricsFile(out.MetricsFile, out.Metrics); err != nil {
		return Outcome{}, err
	}

	if wantsAUC(path) {
		if err := WriteAUC(base, EvaluateAUC(r.ref, preds)); err != nil {
			return Outcome{}, err
		}
		out.AUCBase = base
	}

	log.Debug().Str("file", path).Int("features", len(preds)).Msg("prediction evaluated")
	return out, nil
}

// predictionExts are the file types EvaluateDir picks up
var predictionExts = []string{".gff", ".gff3", ".txt"}

func isPrediction(name string) bool {
	ext := filepath.Ext(name)
	for _, e := range predictionExts {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}

// EvaluateDir scores every .gff, .gff3 and .txt file of dir concurrently.
// A prediction that cannot be parsed is skipped with a warning; any other
// failure cancels the files not yet started. Outcomes are in file name
// order and leave out skipped files and those a tracker reports as done.
func (r *Runner) EvaluateDir(ctx context.Context, dir string) ([]Outcome, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read prediction dir: %w", err)
	}

	var files []string
	for _, e := range entries {
		if !e.Type().IsRegular() || !isPrediction(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	if r.tracker != nil {
		total := len(files)
		files = r.tracker.FilterPending(files)
		if skipped := total - len(files); skipped > 0 {
			log.Info().Int("skipped", skipped).Msg("resuming, predictions already evaluated")
		}
	}

	results := make([]*Outcome, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			preds, err := ReadFeatures(path)
			if err != nil {
				log.Warn().Str("file", path).Err(err).Msg("skipping prediction")
				return nil
			}
			o, err := r.evaluate(path, preds)
			if err != nil {
				return fmt.Errorf("%s: %w", filepath.Base(path), err)
			}
			results[i] = &o
			if r.tracker != nil {
				r.tracker.RecordCompletion(path)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	outcomes := make([]Outcome, 0, len(results))
	for _, o := range results {
		if o != nil {
			outcomes = append(outcomes, *o)
		}
	}
	log.Info().Str("dir", dir).Int("files", len(files)).Int("evaluated", len(outcomes)).Msg("predictions evaluated")
	return outcomes, nil
}

// EvaluatePath evaluates a single file or, for a directory, every
// prediction in it
func (r *Runner) EvaluatePath(ctx context.Context, path string) ([]Outcome, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return r.EvaluateDir(ctx, path)
	}
	o, err := r.EvaluateFile(path)
	if err != nil {
		return nil, err
	}
	return []Outcome{o}, nil
}
