package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/modelrate-cli/internal/model"
	"github.com/sells-group/modelrate-cli/internal/pipeline"
)

var (
	batchBaseData     []string
	batchWorkbooks    []string
	batchOutputPrefix string
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Compute success rates for multiple input pairs",
	Long: `Processes base-mapping/workbook pairs sequentially. Pairs are matched
positionally: the first --base-data goes with the first --workbook, and so
on. A failed pair does not stop the remaining pairs; the exit status is
nonzero unless every pair succeeds.

Example:
  modelrate-cli batch \
    --base-data out1.txt --workbook data1.xlsx \
    --base-data out2.txt --workbook data2.xlsx`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if len(batchBaseData) != len(batchWorkbooks) {
			return eris.Errorf("batch: %d base-data files but %d workbooks; counts must match", len(batchBaseData), len(batchWorkbooks))
		}
		if len(batchBaseData) == 0 {
			return eris.New("batch: no input pairs given")
		}

		pairs := make([]model.Pair, len(batchBaseData))
		for i := range batchBaseData {
			pairs[i] = model.Pair{BaseData: batchBaseData[i], Workbook: batchWorkbooks[i]}
		}

		prefix := batchOutputPrefix
		if prefix == "" {
			prefix = cfg.Pipeline.OutputPrefix
		}

		p := pipeline.New(cfg)
		outcomes := p.RunMany(pairs, prefix)

		failed := 0
		for _, o := range outcomes {
			if o.Succeeded() {
				zap.L().Info("batch: pair succeeded", zap.String("output_dir", o.OutputDir))
			} else {
				failed++
				zap.L().Error("batch: pair failed",
					zap.String("base_data", o.Pair.BaseData),
					zap.String("workbook", o.Pair.Workbook),
					zap.Error(o.Err),
				)
			}
		}

		if failed > 0 {
			return eris.Errorf("batch: %d of %d pairs failed", failed, len(outcomes))
		}
		return nil
	},
}

func init() {
	batchCmd.Flags().StringArrayVar(&batchBaseData, "base-data", nil, "base mapping file, repeatable (required)")
	batchCmd.Flags().StringArrayVar(&batchWorkbooks, "workbook", nil, "XLSX workbook, repeatable (required)")
	batchCmd.Flags().StringVar(&batchOutputPrefix, "output-prefix", "", "output directory prefix (default from config: results)")
	_ = batchCmd.MarkFlagRequired("base-data")
	_ = batchCmd.MarkFlagRequired("workbook")
	rootCmd.AddCommand(batchCmd)
}
