package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"go-ocr-compare/internal/compare"
	"go-ocr-compare/internal/config"
	"go-ocr-compare/internal/container"
	"go-ocr-compare/pkg/models"
)

var (
	runLevel     string
	runBinarize  bool
	runLanguages []string
	runEngines   []string
	runOutDir    string
)

var runCmd = &cobra.Command{
	Use:   "run <locator>",
	Short: "Run every engine configuration over one image",
	Long: `Run every engine configuration over one image and print the comparison.

The locator may be a local path, an http(s):// URL, an az://container/blob
reference or a gs://bucket/object reference.

Examples:
  ocrcompare run invoice.png
  ocrcompare run --level line --binarize scans/receipt.jpg
  ocrcompare run --engines tesseract/sparse-text,vision/document-text gs://scans/page-1.png
  ocrcompare run --out ./annotated invoice.png`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := config.LoadFromEnv()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		c, err := container.NewContainer(ctx, cfg)
		if err != nil {
			return err
		}
		defer c.Close()

		report, err := c.Service().Compare(ctx, compare.Request{
			Locator:   args[0],
			Level:     runLevel,
			Binarize:  runBinarize,
			Languages: runLanguages,
			Engines:   runEngines,
		})
		if err != nil {
			return err
		}

		printReport(cmd, report)

		if runOutDir != "" {
			if err := writeAnnotated(runOutDir, report); err != nil {
				return err
			}
			cmd.Printf("Annotated images written to %s\n", runOutDir)
		}
		return nil
	},
}

func init() {
	runCmd.Flags().StringVar(&runLevel, "level", "word", "hierarchy level to annotate: block, paragraph, line, word or symbol")
	runCmd.Flags().BoolVar(&runBinarize, "binarize", false, "apply Otsu binarization before recognition")
	runCmd.Flags().StringSliceVar(&runLanguages, "languages", nil, "language hints (default from OCR_LANGUAGES)")
	runCmd.Flags().StringSliceVar(&runEngines, "engines", nil, "restrict the comparison to the named runs")
	runCmd.Flags().StringVar(&runOutDir, "out", "", "directory for the annotated images (skipped when empty)")
}

func printReport(cmd *cobra.Command, report *models.ComparisonReport) {
	cmd.Printf("Image: %s (level=%s binarized=%v)\n", report.Locator, report.Level, report.Binarized)

	for _, run := range report.Runs {
		cmd.Printf("\n=== %s (confidence %.1f, %.2fs) ===\n", run.Name, run.Confidence, run.DurationSec)
		cmd.Println(run.FullText)
		cmd.Printf("--- %d %s boxes ---\n", len(run.Nodes), run.Level)
		for i, n := range run.Nodes {
			cmd.Printf("%3d  [%4d %4d %4d %4d]  %s\n", i, n.Box.X0, n.Box.Y0, n.Box.X1, n.Box.Y1, run.NodeTexts[i])
		}
	}

	if len(report.Agreement) > 0 {
		cmd.Println("\n=== Agreement ===")
		for _, a := range report.Agreement {
			cmd.Printf("%s vs %s: WER %.3f  CER %.3f\n", a.Reference, a.Hypothesis, a.WordErrorRate, a.CharErrorRate)
		}
	}
	cmd.Printf("\nTotal time: %.2fs\n", report.ProcessingTimeSec)
}

func writeAnnotated(dir string, report *models.ComparisonReport) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	for _, run := range report.Runs {
		name := strings.ReplaceAll(run.Name, "/", "-") + ".png"
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, run.AnnotatedPNG, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	return nil
}
