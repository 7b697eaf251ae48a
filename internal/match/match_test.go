package match

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/modelrate-cli/internal/lookup"
)

func TestPhonesAllMatched(t *testing.T) {
	table := lookup.Table{
		lookup.PhoneMD5("1000000000"): "ModelA",
		lookup.PhoneMD5("2000000000"): "ModelB",
	}

	records, err := Phones([]string{"1000000000", "2000000000", "1000000000"}, table)
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "1000000000", records[0].PhoneNumber)
	assert.Equal(t, lookup.PhoneMD5("1000000000"), records[0].PhoneMD5)
	assert.Equal(t, "ModelA", records[0].ModelName)
	assert.Equal(t, "ModelB", records[1].ModelName)
	assert.Equal(t, "ModelA", records[2].ModelName)

	// No record survives with an empty model name.
	for _, rec := range records {
		assert.NotEmpty(t, rec.ModelName)
	}
}

func TestPhonesUnmatchedFailsFast(t *testing.T) {
	table := lookup.Table{
		"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa": "ModelX",
	}

	records, err := Phones([]string{"unknown-phone"}, table)
	require.Error(t, err)
	assert.Nil(t, records)

	var unmatched *UnmatchedPhoneError
	require.True(t, errors.As(err, &unmatched))
	assert.Equal(t, "unknown-phone", unmatched.Phone)
	assert.Equal(t, "b862bdb98456861548691439c078237d", unmatched.Hash)
	assert.Contains(t, err.Error(), "unknown-phone")
	assert.Contains(t, err.Error(), "b862bdb98456861548691439c078237d")
	assert.Contains(t, err.Error(), "base mapping")
}

func TestPhonesUnmatchedMidBatchProducesNothing(t *testing.T) {
	table := lookup.Table{
		lookup.PhoneMD5("1000000000"): "ModelA",
	}

	records, err := Phones([]string{"1000000000", "3000000000"}, table)
	require.Error(t, err)
	assert.Nil(t, records)
}

func TestPhonesEmptyInput(t *testing.T) {
	records, err := Phones(nil, lookup.Table{})
	require.NoError(t, err)
	assert.Empty(t, records)
}
