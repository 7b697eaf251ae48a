// Package model defines the data types shared across the statistics pipeline.
package model

// PhoneRecord is one matched phone number in a funnel-stage sheet.
// ModelName is always non-empty: an unmatched phone aborts the run before
// any record is persisted.
type PhoneRecord struct {
	PhoneNumber string `json:"phone_number"`
	PhoneMD5    string `json:"phone_md5"`
	ModelName   string `json:"model_name"`
}

// ModelCount is the number of phones attributed to one device model
// within a funnel stage.
type ModelCount struct {
	ModelName string `json:"model_name"`
	Count     int    `json:"count"`
}

// RateResult is the per-model join of the two funnel stages. SuccessRate is
// pre-formatted as a percentage string with two decimals, e.g. "37.50%".
type RateResult struct {
	ModelName      string `json:"model_name"`
	IntentionCount int    `json:"a_intention_count"`
	ConnectedCount int    `json:"call_connect_count"`
	SuccessRate    string `json:"order_success_rate"`
}

// RunStatus is the terminal state of one pipeline run.
type RunStatus string

const (
	RunStatusSuccess RunStatus = "SUCCESS"
	RunStatusFailed  RunStatus = "FAILED"
)

// Pair is one base-mapping / workbook input pair processed as an
// independent run.
type Pair struct {
	BaseData string `json:"base_data"`
	Workbook string `json:"workbook"`
}

// PairOutcome is the per-pair result collected by batch mode. A failed pair
// does not stop the pairs after it.
type PairOutcome struct {
	Pair      Pair   `json:"pair"`
	OutputDir string `json:"output_dir,omitempty"`
	Err       error  `json:"-"`
}

// Succeeded reports whether the pair completed all stages.
func (o PairOutcome) Succeeded() bool {
	return o.Err == nil
}
