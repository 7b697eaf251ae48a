// Package runfiles owns the output directory tree of one pipeline run: the
// unique run directory, every intermediate and final artifact path, and the
// metadata record written when the run ends.
package runfiles

import (
	"crypto/md5" //nolint:gosec // disambiguates run directories, not a security boundary
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/modelrate-cli/internal/model"
)

// Artifact file names inside a run directory.
const (
	intermediateDirName = "intermediate"

	CallConnectCSV      = "call_connect.csv"
	AIntentionCSV       = "A_intention.csv"
	CallConnectModelCSV = "call_connect_model.csv"
	CallConnectCountCSV = "call_connect_model_count.csv"
	AIntentionModelCSV  = "A_intention_model.csv"
	AIntentionCountCSV  = "A_intention_model_count.csv"

	FinalResultsCSV    = "order_success_rate_results.csv"
	ProcessingInfoFile = "processing_info.txt"
)

// Run holds every path belonging to one pipeline run. The run directory is
// uniquely named per run, so no two runs ever share a tree.
type Run struct {
	BaseDataPath string
	WorkbookPath string

	OutputDir       string
	IntermediateDir string

	CallConnectPath      string
	AIntentionPath       string
	CallConnectModelPath string
	CallConnectCountPath string
	AIntentionModelPath  string
	AIntentionCountPath  string

	FinalResultsPath   string
	ProcessingInfoPath string
}

// runInfo is the metadata record persisted to processing_info.txt.
type runInfo struct {
	StartTime       string            `yaml:"start_time"`
	EndTime         string            `yaml:"end_time"`
	DurationSeconds string            `yaml:"duration_seconds"`
	Status          model.RunStatus   `yaml:"status"`
	BaseData        string            `yaml:"base_data"`
	WorkbookData    string            `yaml:"workbook_data"`
	OutputDirectory string            `yaml:"output_directory"`
	IntermediateCSV int               `yaml:"intermediate_csv_files"`
	FileSizes       map[string]string `yaml:"file_sizes"`
}

// Begin creates the run directory tree for one input pair and returns the
// Run owning it. The directory name is
// {prefix}_{YYYYMMDD_HHMMSS}_{8 hex chars of md5(base + "_" + workbook)};
// the digest only disambiguates rapid repeated runs over the same inputs.
func Begin(baseDataPath, workbookPath, prefix string) (*Run, error) {
	timestamp := time.Now().Format("20060102_150405")
	sum := md5.Sum([]byte(baseDataPath + "_" + workbookPath)) //nolint:gosec
	short := hex.EncodeToString(sum[:])[:8]

	outputDir := fmt.Sprintf("%s_%s_%s", prefix, timestamp, short)
	intermediateDir := filepath.Join(outputDir, intermediateDirName)

	if err := os.MkdirAll(intermediateDir, 0o755); err != nil {
		return nil, eris.Wrap(err, "runfiles: create output directories")
	}

	return &Run{
		BaseDataPath: baseDataPath,
		WorkbookPath: workbookPath,

		OutputDir:       outputDir,
		IntermediateDir: intermediateDir,

		CallConnectPath:      filepath.Join(intermediateDir, CallConnectCSV),
		AIntentionPath:       filepath.Join(intermediateDir, AIntentionCSV),
		CallConnectModelPath: filepath.Join(intermediateDir, CallConnectModelCSV),
		CallConnectCountPath: filepath.Join(intermediateDir, CallConnectCountCSV),
		AIntentionModelPath:  filepath.Join(intermediateDir, AIntentionModelCSV),
		AIntentionCountPath:  filepath.Join(intermediateDir, AIntentionCountCSV),

		FinalResultsPath:   filepath.Join(outputDir, FinalResultsCSV),
		ProcessingInfoPath: filepath.Join(outputDir, ProcessingInfoFile),
	}, nil
}

// ArtifactPaths returns every file path the run may produce, intermediates
// first, final results last.
func (r *Run) ArtifactPaths() []string {
	return []string{
		r.CallConnectPath,
		r.AIntentionPath,
		r.CallConnectModelPath,
		r.CallConnectCountPath,
		r.AIntentionModelPath,
		r.AIntentionCountPath,
		r.FinalResultsPath,
	}
}

// Finalize writes the run metadata record. It is called on every exit path
// of a run, success or failure, and records the sizes of whichever
// artifacts exist at that point.
func (r *Run) Finalize(start, end time.Time, success bool) error {
	status := model.RunStatusFailed
	if success {
		status = model.RunStatusSuccess
	}

	info := runInfo{
		StartTime:       start.Format("2006-01-02 15:04:05"),
		EndTime:         end.Format("2006-01-02 15:04:05"),
		DurationSeconds: fmt.Sprintf("%.2f", end.Sub(start).Seconds()),
		Status:          status,
		BaseData:        r.BaseDataPath,
		WorkbookData:    r.WorkbookPath,
		OutputDirectory: r.OutputDir,
		FileSizes:       make(map[string]string),
	}

	for _, path := range r.ArtifactPaths() {
		fi, err := os.Stat(path)
		if err != nil || fi.IsDir() {
			continue
		}
		info.FileSizes[filepath.Base(path)] = fmt.Sprintf("%d bytes", fi.Size())
		if filepath.Dir(path) == r.IntermediateDir && strings.HasSuffix(path, ".csv") {
			info.IntermediateCSV++
		}
	}

	data, err := yaml.Marshal(info)
	if err != nil {
		return eris.Wrap(err, "runfiles: marshal processing info")
	}

	content := "# Processing Information\n" + string(data)
	if err := os.WriteFile(r.ProcessingInfoPath, []byte(content), 0o644); err != nil {
		return eris.Wrap(err, "runfiles: write processing info")
	}
	return nil
}
