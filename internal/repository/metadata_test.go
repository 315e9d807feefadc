package repository

import (
	"testing"

	"finbalance/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMetadata(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want models.TransactionMetadata
	}{
		{name: "null column", raw: "", want: models.TransactionMetadata{}},
		{name: "json null", raw: "null", want: models.TransactionMetadata{}},
		{name: "object", raw: `{"operation":"allocate","goal_id":"g1"}`,
			want: models.TransactionMetadata{Operation: models.SavingsOperationAllocate, GoalID: "g1"}},
		{name: "string wrapping object", raw: `"{\"operation\":\"withdraw\",\"goalId\":\"g2\"}"`,
			want: models.TransactionMetadata{Operation: models.SavingsOperationWithdraw, GoalID: "g2"}},
		{name: "case and whitespace", raw: `{"operation":" Allocate "}`,
			want: models.TransactionMetadata{Operation: models.SavingsOperationAllocate}},
		{name: "unknown operation dropped", raw: `{"operation":"transfer","goal_id":"g3"}`,
			want: models.TransactionMetadata{GoalID: "g3"}},
		{name: "unrelated keys", raw: `{"source":"import"}`, want: models.TransactionMetadata{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseMetadata([]byte(tt.raw))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseMetadataRejectsGarbage(t *testing.T) {
	_, err := parseMetadata([]byte(`{"operation":`))
	assert.Error(t, err)

	_, err = parseMetadata([]byte(`"not json inside"`))
	assert.Error(t, err)
}

func TestEncodeMetadata(t *testing.T) {
	raw, err := encodeMetadata(models.TransactionMetadata{})
	require.NoError(t, err)
	assert.Nil(t, raw)

	raw, err = encodeMetadata(models.TransactionMetadata{Operation: models.SavingsOperationWithdraw, GoalID: "g1"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"operation":"withdraw","goal_id":"g1"}`, string(raw))
}
