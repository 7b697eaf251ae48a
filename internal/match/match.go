// Package match joins raw phone numbers against the base mapping table.
package match

import (
	"fmt"

	"github.com/sells-group/modelrate-cli/internal/lookup"
	"github.com/sells-group/modelrate-cli/internal/model"
)

// UnmatchedPhoneError reports a phone number whose digest has no entry in
// the base mapping. Any unmatched phone is an upstream data-integrity
// problem, so matching halts on the first one instead of under-counting.
type UnmatchedPhoneError struct {
	Phone string
	Hash  string
}

func (e *UnmatchedPhoneError) Error() string {
	return fmt.Sprintf("match: phone %q (md5 %s) has no entry in the base mapping", e.Phone, e.Hash)
}

// Phones computes each phone number's digest and resolves it to a model
// name. It fails on the first unmatched phone with *UnmatchedPhoneError and
// produces no records; partial results are never returned.
func Phones(numbers []string, table lookup.Table) ([]model.PhoneRecord, error) {
	records := make([]model.PhoneRecord, 0, len(numbers))
	for _, phone := range numbers {
		hash := lookup.PhoneMD5(phone)
		name, ok := table.Model(hash)
		if !ok {
			return nil, &UnmatchedPhoneError{Phone: phone, Hash: hash}
		}
		records = append(records, model.PhoneRecord{
			PhoneNumber: phone,
			PhoneMD5:    hash,
			ModelName:   name,
		})
	}
	return records, nil
}
