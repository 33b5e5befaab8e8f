package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/syedahamedali2521/sentiment-analysis-app/internal/adapter/csvinput"
	"github.com/syedahamedali2521/sentiment-analysis-app/internal/infrastructure/logger"
)

var (
	csvPath        string
	batchLimit     int
	showConfidence bool
)

// classifyCmd predicts sentiment from the terminal
var classifyCmd = &cobra.Command{
	Use:   "classify [text]",
	Short: "Classify a text or the text column of a CSV file",
	Long: `Classifies a single text, or every row of a CSV file with a "text" column.

Examples:
  neonsenti classify "I love this!"
  neonsenti classify --csv reviews.csv --limit 20`,
	Args: cobra.MaximumNArgs(1),
	RunE: runClassify,
}

func init() {
	classifyCmd.Flags().StringVar(&csvPath, "csv", "", "CSV file with a 'text' column")
	classifyCmd.Flags().IntVar(&batchLimit, "limit", defaultBatchLimit, "maximum number of batch results to display")
	classifyCmd.Flags().BoolVar(&showConfidence, "show-confidence", true, "show the confidence score")
}

func runClassify(cmd *cobra.Command, args []string) error {
	var text string
	if len(args) == 1 {
		text = strings.TrimSpace(args[0])
	}
	if csvPath == "" && text == "" {
		return fmt.Errorf("please enter text or pass a CSV with --csv")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Logs go to stderr so stdout only carries results
	log, err := logger.NewLoggerTo(&cfg.Log, os.Stderr)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	comps, err := buildComponents(cfg, log, nil)
	if err != nil {
		return fmt.Errorf("failed to build model backend: %w", err)
	}
	defer comps.Close(log)

	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	opts := renderOptions{ShowConfidence: showConfidence, Limit: batchLimit}

	// A CSV takes precedence over a text argument
	if csvPath != "" {
		f, err := os.Open(csvPath)
		if err != nil {
			return fmt.Errorf("failed to read CSV: %w", err)
		}
		defer f.Close()

		texts, err := csvinput.ReadTexts(f)
		if err != nil {
			return err
		}

		log.Info("Classifying batch", zap.Int("count", len(texts)), zap.String("file", csvPath))
		results, err := comps.sentiment.PredictBatch(ctx, texts)
		if err != nil {
			return fmt.Errorf("error loading model or predicting: %w", err)
		}
		fmt.Fprint(out, renderBatch(results, opts))
		return nil
	}

	result, err := comps.sentiment.PredictText(ctx, text)
	if err != nil {
		return fmt.Errorf("error loading model or predicting: %w", err)
	}
	fmt.Fprint(out, renderSingle(text, result, opts))
	return nil
}
