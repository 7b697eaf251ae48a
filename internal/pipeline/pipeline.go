// Package pipeline sequences the success-rate stages for one input pair and
// drives independent pairs in batch mode.
package pipeline

import (
	"strconv"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/modelrate-cli/internal/config"
	"github.com/sells-group/modelrate-cli/internal/fetcher"
	"github.com/sells-group/modelrate-cli/internal/lookup"
	"github.com/sells-group/modelrate-cli/internal/match"
	"github.com/sells-group/modelrate-cli/internal/model"
	"github.com/sells-group/modelrate-cli/internal/runfiles"
	"github.com/sells-group/modelrate-cli/internal/stats"
)

// CSV headers for the persisted artifacts.
var (
	recordColumns = []string{"phone_number", "phone_md5", "model_name"}
	countColumns  = []string{"model_name", "count"}
	resultColumns = []string{"model_name", "a_intention_count", "call_connect_count", "order_success_rate"}
)

// Pipeline runs the matching and aggregation stages for input pairs.
type Pipeline struct {
	cfg *config.Config
}

// New creates a Pipeline.
func New(cfg *config.Config) *Pipeline {
	return &Pipeline{cfg: cfg}
}

// PairResult is the outcome of a successful single-pair run.
type PairResult struct {
	OutputDir        string
	FinalResultsPath string
	Rates            []model.RateResult
}

// RunPair executes every stage for one base-mapping/workbook pair,
// short-circuiting on the first failure. The run metadata record is written
// on every exit path, including failure.
func (p *Pipeline) RunPair(baseDataPath, workbookPath, prefix string) (result *PairResult, err error) {
	log := zap.L().With(
		zap.String("base_data", baseDataPath),
		zap.String("workbook", workbookPath),
	)
	log.Info("pipeline: starting run")

	run, err := runfiles.Begin(baseDataPath, workbookPath, prefix)
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: begin run")
	}
	log = log.With(zap.String("output_dir", run.OutputDir))

	start := time.Now()
	defer func() {
		if finErr := run.Finalize(start, time.Now(), err == nil); finErr != nil {
			log.Warn("pipeline: failed to write processing info", zap.Error(finErr))
		}
	}()

	// Stage tracking helper: logs status and duration, wraps errors with
	// the stage name so failures are attributable.
	stage := func(name string, fn func() error) error {
		stageStart := time.Now()
		stageErr := fn()
		duration := time.Since(stageStart).Milliseconds()

		if stageErr != nil {
			log.Error("pipeline: stage failed",
				zap.String("stage", name),
				zap.Int64("duration_ms", duration),
				zap.Error(stageErr),
			)
			return eris.Wrapf(stageErr, "pipeline: stage %s", name)
		}
		log.Info("pipeline: stage complete",
			zap.String("stage", name),
			zap.Int64("duration_ms", duration),
		)
		return nil
	}

	connectedSheet := p.cfg.Pipeline.ConnectedSheet
	intentionSheet := p.cfg.Pipeline.IntentionSheet

	// Stage 1: verify the workbook exposes both required sheets.
	if err = stage("verify_sheets", func() error {
		return verifySheets(workbookPath, connectedSheet, intentionSheet)
	}); err != nil {
		return nil, err
	}

	// Stage 2: extract the phone columns. The connected sheet carries a
	// header row and skips it; the intention sheet does not. This asymmetry
	// follows the two source sheets' layouts and is intentional.
	var connectedPhones, intentionPhones []string
	if err = stage("extract_sheets", func() error {
		var exErr error
		connectedPhones, exErr = extractPhones(workbookPath, connectedSheet, 1)
		if exErr != nil {
			return exErr
		}
		intentionPhones, exErr = extractPhones(workbookPath, intentionSheet, 0)
		if exErr != nil {
			return exErr
		}
		if wErr := fetcher.WriteColumn(run.CallConnectPath, connectedPhones); wErr != nil {
			return wErr
		}
		return fetcher.WriteColumn(run.AIntentionPath, intentionPhones)
	}); err != nil {
		return nil, err
	}
	log.Info("pipeline: extracted phone columns",
		zap.Int("connected_phones", len(connectedPhones)),
		zap.Int("intention_phones", len(intentionPhones)),
	)

	// Stage 3: load the base mapping once for the whole run.
	var table lookup.Table
	if err = stage("load_base_mapping", func() error {
		var loadErr error
		table, loadErr = lookup.Load(baseDataPath)
		if loadErr != nil {
			return loadErr
		}
		log.Info("pipeline: base mapping loaded", zap.Int("entries", table.Len()))
		return nil
	}); err != nil {
		return nil, err
	}

	// Stages 4-7: match and count each funnel stage.
	var connectedCounts, intentionCounts []model.ModelCount
	if err = stage("match_call_connect", func() error {
		var mErr error
		connectedCounts, mErr = matchAndCount(connectedPhones, table, run.CallConnectModelPath, run.CallConnectCountPath)
		return mErr
	}); err != nil {
		return nil, err
	}
	if err = stage("match_a_intention", func() error {
		var mErr error
		intentionCounts, mErr = matchAndCount(intentionPhones, table, run.AIntentionModelPath, run.AIntentionCountPath)
		return mErr
	}); err != nil {
		return nil, err
	}

	// Stage 8: join the two count tables and persist the final rates.
	var rates []model.RateResult
	if err = stage("compute_success_rate", func() error {
		rates = stats.SuccessRates(connectedCounts, intentionCounts)
		return writeRates(run.FinalResultsPath, rates)
	}); err != nil {
		return nil, err
	}

	log.Info("pipeline: run complete",
		zap.Int("models", len(rates)),
		zap.String("final_results", run.FinalResultsPath),
	)

	return &PairResult{
		OutputDir:        run.OutputDir,
		FinalResultsPath: run.FinalResultsPath,
		Rates:            rates,
	}, nil
}

// RunMany processes pairs strictly sequentially. One pair's failure does not
// abort the pairs after it; each outcome is collected independently.
func (p *Pipeline) RunMany(pairs []model.Pair, prefix string) []model.PairOutcome {
	outcomes := make([]model.PairOutcome, 0, len(pairs))

	for i, pair := range pairs {
		zap.L().Info("pipeline: processing pair",
			zap.Int("index", i+1),
			zap.Int("total", len(pairs)),
			zap.String("base_data", pair.BaseData),
			zap.String("workbook", pair.Workbook),
		)

		outcome := model.PairOutcome{Pair: pair}
		result, err := p.RunPair(pair.BaseData, pair.Workbook, prefix)
		if err != nil {
			outcome.Err = err
			zap.L().Error("pipeline: pair failed",
				zap.Int("index", i+1),
				zap.Error(err),
			)
		} else {
			outcome.OutputDir = result.OutputDir
		}
		outcomes = append(outcomes, outcome)
	}

	succeeded := 0
	for _, o := range outcomes {
		if o.Succeeded() {
			succeeded++
		}
	}
	zap.L().Info("pipeline: batch complete",
		zap.Int("total", len(pairs)),
		zap.Int("succeeded", succeeded),
		zap.Int("failed", len(pairs)-succeeded),
	)

	return outcomes
}

// verifySheets checks that both required sheets exist, naming the sheets
// actually present when one is missing.
func verifySheets(workbookPath, connectedSheet, intentionSheet string) error {
	names, err := fetcher.SheetNames(workbookPath)
	if err != nil {
		return err
	}

	found := make(map[string]bool, len(names))
	for _, name := range names {
		found[name] = true
	}

	for _, required := range []string{connectedSheet, intentionSheet} {
		if !found[required] {
			return eris.Errorf("workbook is missing required sheet %q (found sheets: %v)", required, names)
		}
	}
	return nil
}

// extractPhones reads the first column of a sheet, skipping header rows and
// blank cells.
func extractPhones(workbookPath, sheetName string, skipRows int) ([]string, error) {
	rows, err := fetcher.ReadXLSX(workbookPath, fetcher.XLSXOptions{
		SheetName: sheetName,
		SkipRows:  skipRows,
	})
	if err != nil {
		return nil, err
	}

	var phones []string
	for _, row := range rows {
		if len(row) == 0 || row[0] == "" {
			continue
		}
		phones = append(phones, row[0])
	}
	return phones, nil
}

// matchAndCount resolves phones against the base mapping, persists the
// per-record CSV, then aggregates and persists the per-model counts.
// Matching is fail-fast: nothing is written when any phone is unmatched.
func matchAndCount(phones []string, table lookup.Table, recordPath, countPath string) ([]model.ModelCount, error) {
	records, err := match.Phones(phones, table)
	if err != nil {
		return nil, err
	}

	recordRows := make([][]string, len(records))
	for i, rec := range records {
		recordRows[i] = []string{rec.PhoneNumber, rec.PhoneMD5, rec.ModelName}
	}
	if err := fetcher.WriteCSV(recordPath, recordColumns, recordRows); err != nil {
		return nil, err
	}

	counts := stats.CountByModel(records)
	countRows := make([][]string, len(counts))
	for i, c := range counts {
		countRows[i] = []string{c.ModelName, strconv.Itoa(c.Count)}
	}
	if err := fetcher.WriteCSV(countPath, countColumns, countRows); err != nil {
		return nil, err
	}

	return counts, nil
}

// writeRates persists the final per-model rate table.
func writeRates(path string, rates []model.RateResult) error {
	rows := make([][]string, len(rates))
	for i, r := range rates {
		rows[i] = []string{
			r.ModelName,
			strconv.Itoa(r.IntentionCount),
			strconv.Itoa(r.ConnectedCount),
			r.SuccessRate,
		}
	}
	return fetcher.WriteCSV(path, resultColumns, rows)
}
