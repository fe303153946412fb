package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/su1ph3r/annobench/internal/benchmark"
	"github.com/su1ph3r/annobench/internal/checkpoint"
)

var evalCmd = &cobra.Command{
	Use:   "eval <reference.gff> <prediction|dir>",
	Short: "Score gene predictions against a reference annotation",
	Long: `Compare a prediction file, or every prediction in a directory, with a
reference GFF. A metric CSV (label,tp,fp,fn,sensitivity,specificity) is
written next to each prediction. AUGUSTUS runs and GeAnno segment listings
(.txt) also get AUC and curve files.`,
	Args: cobra.ExactArgs(2),
	RunE: runEval,
}

func init() {
	evalCmd.Flags().IntP("workers", "w", 0, "Predictions evaluated concurrently")
	evalCmd.Flags().StringSlice("labels", nil, "Labels to report")
	evalCmd.Flags().String("checkpoint", "", "Checkpoint file for directory runs (default .annobench-checkpoint.json)")
	evalCmd.Flags().Bool("resume", false, "Resume a directory run from its checkpoint")
}

func runEval(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupts
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		printWarning("Interrupted, shutting down...")
		cancel()
	}()

	if v, _ := cmd.Flags().GetInt("workers"); v > 0 {
		config.Eval.Workers = v
	}
	if v, _ := cmd.Flags().GetStringSlice("labels"); len(v) > 0 {
		config.Eval.Labels = v
	}

	printInfo("Reference: %s", args[0])
	runner, err := benchmark.NewRunnerFromFile(args[0], config.Eval.Labels, config.Eval.Workers)
	if err != nil {
		return err
	}

	cp, err := setupCheckpoint(cmd, args[0], args[1])
	if err != nil {
		return err
	}
	if cp != nil {
		runner.WithTracker(cp)
		cp.StartAutoSave()
		defer cp.StopAutoSave()
	}

	outcomes, err := runner.EvaluatePath(ctx, args[1])
	if err != nil {
		if cp != nil {
			if saveErr := cp.Save(); saveErr != nil {
				printWarning("Failed to save checkpoint: %v", saveErr)
			} else {
				printInfo("Progress saved, rerun with --resume to continue")
			}
		}
		return err
	}
	if cp != nil {
		cp.StopAutoSave()
		if err := cp.Cleanup(); err != nil && !os.IsNotExist(err) {
			printWarning("Failed to remove checkpoint: %v", err)
		}
	}

	for _, o := range outcomes {
		printSuccess("%s -> %s", o.Prediction, o.MetricsFile)
		if o.AUCBase != "" {
			printInfo("    AUC: %s_auc.csv", o.AUCBase)
		}
	}
	return nil
}

// setupCheckpoint returns a checkpoint manager for directory targets, loaded
// from disk on --resume
func setupCheckpoint(cmd *cobra.Command, reference, target string) (*checkpoint.Manager, error) {
	info, err := os.Stat(target)
	if err != nil || !info.IsDir() {
		return nil, nil
	}

	cfg := checkpoint.DefaultManagerConfig()
	if v, _ := cmd.Flags().GetString("checkpoint"); v != "" {
		cfg.FilePath = v
	}

	resume, _ := cmd.Flags().GetBool("resume")
	if resume && checkpoint.Exists(cfg.FilePath) {
		cp, err := checkpoint.LoadAndResume(cfg.FilePath)
		if err != nil {
			return nil, err
		}
		if !cp.Matches(reference, target) {
			return nil, fmt.Errorf("checkpoint %s belongs to another run", cfg.FilePath)
		}
		ri := cp.GetResumeInfo()
		printInfo("Resuming run %s (%d/%d predictions, %.0f%%)",
			ri.RunID, ri.Progress.CompletedFiles, ri.Progress.TotalFiles, ri.Progress.PercentComplete)
		return cp, nil
	}

	cp := checkpoint.NewManager(cfg)
	cp.Initialize(reference, target)
	return cp, nil
}
