package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ocrcompare",
	Short: "Compare local and cloud OCR engines on the same image",
	Long: `ocrcompare runs one image through several OCR engine configurations and
reports how the results differ.

Engines:
  - Tesseract under several page segmentation presets (local)
  - Cloud Vision text and document-text detection (remote)

Each run yields the recognized text, the bounding boxes at a chosen
hierarchy level (block, paragraph, line, word or symbol), and an annotated
copy of the input image. Runs are also scored pairwise by word and
character error rate.`,
	SilenceUsage: true,
}

func init() {
	// Commands log through the same structured logger as the server.
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
}
