package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/modelrate-cli/internal/pipeline"
)

var (
	runBaseData     string
	runWorkbook     string
	runOutputPrefix string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Compute success rates for one base-mapping/workbook pair",
	Long: `Runs the full matching and aggregation pipeline for one input pair.

The base mapping is a tab-separated file of MD5 phone identifiers to model
names. The workbook must contain the connected-call sheet (接通) and the
purchase-intention sheet (A). Every run writes into a fresh uniquely named
output directory.

Examples:
  modelrate-cli run --base-data yilian_output.txt --workbook need_statistic.xlsx
  modelrate-cli run --base-data yilian_output.txt --workbook data.xlsx --output-prefix campaign_q3`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		prefix := runOutputPrefix
		if prefix == "" {
			prefix = cfg.Pipeline.OutputPrefix
		}

		p := pipeline.New(cfg)
		result, err := p.RunPair(runBaseData, runWorkbook, prefix)
		if err != nil {
			return eris.Wrap(err, "run")
		}

		zap.L().Info("run: complete",
			zap.String("output_dir", result.OutputDir),
			zap.String("final_results", result.FinalResultsPath),
			zap.Int("models", len(result.Rates)),
		)
		return nil
	},
}

func init() {
	runCmd.Flags().StringVar(&runBaseData, "base-data", "", "path to the tab-separated base mapping file (required)")
	runCmd.Flags().StringVar(&runWorkbook, "workbook", "", "path to the XLSX workbook to analyze (required)")
	runCmd.Flags().StringVar(&runOutputPrefix, "output-prefix", "", "output directory prefix (default from config: results)")
	_ = runCmd.MarkFlagRequired("base-data")
	_ = runCmd.MarkFlagRequired("workbook")
	rootCmd.AddCommand(runCmd)
}
