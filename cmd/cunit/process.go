package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/yugant99/C-UnitSegmentation/internal/batch"
	"github.com/yugant99/C-UnitSegmentation/internal/config"
)

func newProcessCmd(cfg *config.Config) *cobra.Command {
	var (
		outDir    string
		workers   int
		refine    bool
		resume    bool
		stateFile string
	)

	cmd := &cobra.Command{
		Use:   "process [flags] PATH...",
		Short: "Annotate transcript files or directories of *.txt files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !cmd.Flags().Changed("workers") {
				workers = cfg.Workers
			}
			if stateFile == "" {
				stateFile = cfg.StateFile
			}

			p, err := buildPipeline(ctx, *cfg, nil)
			if err != nil {
				return err
			}
			defer p.Close()

			runner := batch.NewRunner(batch.Config{
				Paths:        args,
				OutDir:       outDir,
				Workers:      workers,
				Refine:       refine,
				Resume:       resume,
				StateFile:    stateFile,
				SlackToken:   cfg.SlackBotToken,
				SlackChannel: cfg.SlackChannel,
			}, p.proc, slog.Default())

			results, err := runner.Run(ctx)
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), batch.FormatSummary(results))
			snap := p.recorder.Snapshot()
			fmt.Fprintf(cmd.OutOrStdout(), "\nAmbiguity notes: %d\nConflict notes: %d\n", snap.Ambiguities, snap.Conflicts)

			if batch.Failed(results) {
				return errFailedFiles
			}
			return ctx.Err()
		},
	}

	cmd.Flags().StringVar(&outDir, "out", "", "output directory (default: next to each input)")
	cmd.Flags().IntVar(&workers, "workers", 4, "files processed in parallel")
	cmd.Flags().BoolVar(&refine, "refine", false, "run the configured LLM refiner on each document")
	cmd.Flags().BoolVar(&resume, "resume", false, "skip files already processed in a previous run")
	cmd.Flags().StringVar(&stateFile, "state", "", "batch state file (default: CUNIT_STATE_FILE)")
	return cmd
}
