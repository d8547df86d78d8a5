package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yugant99/C-UnitSegmentation/internal/docx"
	"github.com/yugant99/C-UnitSegmentation/internal/evaluate"
)

func newEvaluateCmd() *cobra.Command {
	var (
		system    string
		reference string
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "evaluate --system PATH --reference PATH",
		Short: "Compare annotated documents with hand-coded references",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pairs, err := evaluationPairs(system, reference)
			if err != nil {
				return err
			}
			if len(pairs) == 0 {
				return errors.New("no matching system/reference files")
			}

			var metrics []evaluate.Metrics
			for _, p := range pairs {
				sys, err := readDocument(p.System)
				if err != nil {
					return fmt.Errorf("read system: %w", err)
				}
				ref, err := readDocument(p.Reference)
				if err != nil {
					return fmt.Errorf("read reference: %w", err)
				}
				m := evaluate.Compare(sys, ref)
				m.File = filepath.Base(p.System)
				metrics = append(metrics, m)
			}

			report := evaluate.Summarize(metrics)
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			fmt.Fprint(cmd.OutOrStdout(), evaluate.FormatReport(report))
			return nil
		},
	}

	cmd.Flags().StringVar(&system, "system", "", "system document, or directory of documents")
	cmd.Flags().StringVar(&reference, "reference", "", "reference document, or directory of references")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	cmd.MarkFlagRequired("system")
	cmd.MarkFlagRequired("reference")
	return cmd
}

// evaluationPairs pairs two files directly, or two directories by name.
func evaluationPairs(system, reference string) ([]evaluate.Pair, error) {
	sysInfo, err := os.Stat(system)
	if err != nil {
		return nil, err
	}
	refInfo, err := os.Stat(reference)
	if err != nil {
		return nil, err
	}
	switch {
	case sysInfo.IsDir() && refInfo.IsDir():
		return evaluate.MatchDirs(system, reference)
	case !sysInfo.IsDir() && !refInfo.IsDir():
		return []evaluate.Pair{{System: system, Reference: reference}}, nil
	default:
		return nil, errors.New("--system and --reference must both be files or both be directories")
	}
}

// readDocument returns the text of path. Word references are extracted.
func readDocument(path string) (string, error) {
	if docx.IsDocx(path) {
		return docx.Extract(path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
