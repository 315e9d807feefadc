package balance

import (
	"testing"

	"finbalance/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccumulateIsPure(t *testing.T) {
	txs := []*models.Transaction{
		tx(t, models.TransactionTypeIncome, "1000", "2024-01-01"),
		tx(t, models.TransactionTypeExpense, "300", "2024-01-05"),
		tx(t, models.TransactionTypeSavings, "25.50", "2024-01-06"),
	}

	first, err := Accumulate(txs, ModeHistorical)
	require.NoError(t, err)
	second, err := Accumulate(txs, ModeHistorical)
	require.NoError(t, err)

	assert.True(t, dec("725.50").Equal(first))
	assert.True(t, first.Equal(second))

	reversed := []*models.Transaction{txs[2], txs[1], txs[0]}
	third, err := Accumulate(reversed, ModeHistorical)
	require.NoError(t, err)
	assert.True(t, first.Equal(third))
}

func TestAccumulateStopsOnUnknownType(t *testing.T) {
	txs := []*models.Transaction{
		tx(t, models.TransactionTypeIncome, "10", "2024-01-01"),
		tx(t, 0, "10", "2024-01-02"),
	}
	_, err := Accumulate(txs, ModeHistorical)
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestAccumulateRunningMergesSameDay(t *testing.T) {
	txs := []*models.Transaction{
		tx(t, models.TransactionTypeExpense, "50", "2024-01-03"),
		tx(t, models.TransactionTypeIncome, "200", "2024-01-01"),
		tx(t, models.TransactionTypeExpense, "20", "2024-01-03"),
	}

	points, err := AccumulateRunning(txs, ModeHistorical)
	require.NoError(t, err)
	require.Len(t, points, 2)

	assert.Equal(t, "2024-01-01", points[0].Date.Format(DateLayout))
	assert.True(t, dec("200").Equal(points[0].Balance))
	assert.Equal(t, "2024-01-03", points[1].Date.Format(DateLayout))
	assert.True(t, dec("130").Equal(points[1].Balance))

	// input order is preserved
	assert.Equal(t, models.TransactionTypeExpense, txs[0].TypeID)
}

func TestAccumulateMonthly(t *testing.T) {
	txs := []*models.Transaction{
		tx(t, models.TransactionTypeIncome, "1000", "2024-01-01"),
		tx(t, models.TransactionTypeExpense, "300", "2024-01-05"),
		tx(t, models.TransactionTypeExpense, "100", "2024-03-10"),
	}

	months, err := AccumulateMonthly(txs, ModeHistorical)
	require.NoError(t, err)
	require.Len(t, months, 2)
	assert.Equal(t, "2024/01", months[0].Month)
	assert.True(t, dec("700").Equal(months[0].Balance))
	assert.Equal(t, "2024/03", months[1].Month)
	assert.True(t, dec("600").Equal(months[1].Balance))
}

func TestFilterRangeIsInclusive(t *testing.T) {
	txs := []*models.Transaction{
		tx(t, models.TransactionTypeIncome, "1", "2023-12-31"),
		tx(t, models.TransactionTypeIncome, "2", "2024-01-01"),
		tx(t, models.TransactionTypeIncome, "3", "2024-01-31"),
		tx(t, models.TransactionTypeIncome, "4", "2024-02-01"),
	}
	from, to := MonthRange(2024, 1)

	got := FilterRange(txs, from, to)
	require.Len(t, got, 2)
	assert.True(t, dec("2").Equal(got[0].Amount))
	assert.True(t, dec("3").Equal(got[1].Amount))
}
