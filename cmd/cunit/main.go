package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/yugant99/C-UnitSegmentation/internal/anthropic"
	"github.com/yugant99/C-UnitSegmentation/internal/assemble"
	"github.com/yugant99/C-UnitSegmentation/internal/config"
	"github.com/yugant99/C-UnitSegmentation/internal/morph"
	"github.com/yugant99/C-UnitSegmentation/internal/ollama"
	"github.com/yugant99/C-UnitSegmentation/internal/parser"
	"github.com/yugant99/C-UnitSegmentation/internal/pause"
	"github.com/yugant99/C-UnitSegmentation/internal/processor"
	"github.com/yugant99/C-UnitSegmentation/internal/refiner"
	"github.com/yugant99/C-UnitSegmentation/internal/rules"
	"github.com/yugant99/C-UnitSegmentation/internal/segment"
	"github.com/yugant99/C-UnitSegmentation/internal/store"
	"github.com/yugant99/C-UnitSegmentation/internal/tagger"
	"github.com/yugant99/C-UnitSegmentation/internal/telemetry"
)

var errFailedFiles = errors.New("one or more files failed")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfg config.Config

	root := &cobra.Command{
		Use:          "cunit",
		Short:        "Segment conversation transcripts into C-units and annotate them in SALT",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Existing environment variables win over .env entries.
			envErr := godotenv.Load()

			var err error
			if cfg, err = config.Load(); err != nil {
				return fmt.Errorf("config: %w", err)
			}
			setupLogging(cfg.LogLevel)
			if envErr == nil {
				slog.Debug("loaded environment from .env")
			}
			return nil
		},
	}

	root.AddCommand(
		newProcessCmd(&cfg),
		newServeCmd(&cfg),
		newEvaluateCmd(),
		newExtractCmd(),
	)
	return root
}

// pipeline holds the wired annotation stages.
type pipeline struct {
	proc     *processor.Processor
	recorder *telemetry.Recorder
	store    *store.Store
}

func (p *pipeline) Close() {
	if p.store != nil {
		p.store.Close()
	}
}

// buildPipeline wires the processor from cfg. pub may be nil.
func buildPipeline(ctx context.Context, cfg config.Config, pub processor.Publisher) (*pipeline, error) {
	logger := slog.Default()

	r := rules.Default()
	if cfg.RulesFile != "" {
		var err error
		if r, err = rules.LoadFile(cfg.RulesFile); err != nil {
			return nil, err
		}
		slog.Info("rules loaded", "file", cfg.RulesFile)
	} else if cfg.Language != "" {
		r.Language = cfg.Language
	}

	var segTagger segment.Tagger
	var morphTagger morph.Tagger
	if cfg.TaggerURL != "" {
		tc := tagger.NewClient(cfg.TaggerURL)
		segTagger, morphTagger = tc, tc
		slog.Info("pos tagger configured", "url", cfg.TaggerURL)
	}

	coder := pause.New(pause.Policy{
		Threshold: time.Duration(cfg.PauseThreshold) * time.Second,
		Default:   cfg.PauseDefault,
		TurnGaps:  cfg.TurnGaps,
	})
	asm := assemble.New(r, segment.New(r, segTagger), coder, morph.New(r, morphTagger, logger))

	ref, err := buildRefiner(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	p := &pipeline{recorder: telemetry.NewRecorder(logger)}

	var st processor.Store
	if cfg.DatabaseURL != "" {
		db, err := store.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return nil, err
		}
		p.store = db
		st = db
		slog.Info("database connected")
	}

	p.proc = processor.New(parser.New(r), asm, ref, st, pub, p.recorder, logger)
	return p, nil
}

func buildRefiner(ctx context.Context, cfg config.Config, logger *slog.Logger) (refiner.Refiner, error) {
	switch cfg.Refiner {
	case config.RefinerAnthropic:
		if cfg.AnthropicAPIKey == "" {
			return nil, errors.New("ANTHROPIC_API_KEY is required for the anthropic refiner")
		}
		client := anthropic.NewClient(cfg.AnthropicAPIKey, cfg.AnthropicModel)
		slog.Info("anthropic refiner ready", "model", cfg.AnthropicModel)
		return refiner.NewLLM(refiner.CompleterFunc(client.Prompt), logger), nil
	case config.RefinerOllama:
		client := ollama.NewClient(cfg.OllamaURL, cfg.OllamaModel)
		checkCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := client.Check(checkCtx); err != nil {
			return nil, fmt.Errorf("ollama: %w", err)
		}
		slog.Info("ollama refiner ready", "url", cfg.OllamaURL, "model", client.Model())
		return refiner.NewLLM(client, logger), nil
	default:
		return refiner.Noop{}, nil
	}
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
