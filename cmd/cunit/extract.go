package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yugant99/C-UnitSegmentation/internal/docx"
)

func newExtractCmd() *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "extract [--out DIR] PATH...",
		Short: "Convert Word transcripts (*.docx) to plain text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := docxFiles(args)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No .docx files found.")
				return nil
			}
			if outDir != "" {
				if err := os.MkdirAll(outDir, 0o755); err != nil {
					return fmt.Errorf("create output dir: %w", err)
				}
			}

			failed := 0
			for _, path := range files {
				dir := outDir
				if dir == "" {
					dir = filepath.Dir(path)
				}
				out := filepath.Join(dir, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))+".txt")

				text, err := docx.Extract(path)
				if err == nil {
					err = os.WriteFile(out, []byte(text), 0o644)
				}
				if err != nil {
					slog.Warn("extract failed", "path", path, "error", err)
					fmt.Fprintf(cmd.OutOrStdout(), "failed %s: %v\n", filepath.Base(path), err)
					failed++
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			}

			if failed > 0 {
				return errFailedFiles
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "out", "", "output directory (default: next to each input)")
	return cmd
}

// docxFiles expands directories into their *.docx files, sorted and
// without recursion. Explicit files are kept as given.
func docxFiles(paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		entries, err := os.ReadDir(p)
		if err != nil {
			return nil, fmt.Errorf("read dir: %w", err)
		}
		for _, e := range entries {
			if !e.IsDir() && docx.IsDocx(e.Name()) {
				files = append(files, filepath.Join(p, e.Name()))
			}
		}
	}
	return files, nil
}
