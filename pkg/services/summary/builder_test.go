package summary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faoa-tools/annual-report/pkg/models/domain"
)

func tx(code, label string, amount float64) domain.Transaction {
	return domain.Transaction{
		Year:          2024,
		Month:         1,
		Amount:        amount,
		CategoryCode:  code,
		CategoryLabel: label,
	}
}

func TestBuild_GroupsAndSeedsAdjusted(t *testing.T) {
	rows := []domain.Transaction{
		tx("1", "Gifts", 100),
		tx("1", "Gifts", 50),
		tx("14", "Fundraising", -40),
	}

	s := Build(rows)
	require.Len(t, s.Rows, 2)

	assert.Equal(t, "1", s.Rows[0].CategoryCode)
	assert.Equal(t, 150.0, s.Rows[0].RawTotal)
	assert.Equal(t, 150.0, s.Rows[0].AdjustedTotal)
	assert.Equal(t, "14", s.Rows[1].CategoryCode)
	assert.Equal(t, -40.0, s.Rows[1].RawTotal)
}

func TestBuild_SortsByNumericCodeValue(t *testing.T) {
	rows := []domain.Transaction{
		tx("14", "Fundraising", 1),
		tx("9", "Receipts", 1),
		tx("2", "Dues", 1),
	}

	s := Build(rows)
	require.Len(t, s.Rows, 3)
	assert.Equal(t, "2", s.Rows[0].CategoryCode)
	assert.Equal(t, "9", s.Rows[1].CategoryCode)
	assert.Equal(t, "14", s.Rows[2].CategoryCode)
}

func TestBuild_DistinctLabelsKeepDistinctRows(t *testing.T) {
	rows := []domain.Transaction{
		tx("1", "Gifts", 100),
		tx("1", "Donations", 25),
	}

	s := Build(rows)
	require.Len(t, s.Rows, 2)
	assert.Equal(t, "Donations", s.Rows[0].CategoryLabel)
	assert.Equal(t, 25.0, s.Rows[0].RawTotal)
	assert.Equal(t, "Gifts", s.Rows[1].CategoryLabel)
	assert.Equal(t, 100.0, s.Rows[1].RawTotal)
}

func TestBuild_Conservation(t *testing.T) {
	rows := []domain.Transaction{
		tx("1", "Gifts", 100.25),
		tx("2", "Dues", 300),
		tx("14", "Fundraising", -40.75),
		tx("16", "Events", 12.5),
		tx("1", "Gifts", -0.25),
	}

	var rowTotal float64
	for _, row := range rows {
		rowTotal += row.Amount
	}

	var summaryTotal float64
	for _, row := range Build(rows).Rows {
		summaryTotal += row.RawTotal
	}
	assert.InDelta(t, rowTotal, summaryTotal, Epsilon)
}

func TestBuild_DeterministicAcrossRowOrder(t *testing.T) {
	rows := []domain.Transaction{
		tx("1", "Gifts", 100),
		tx("2", "Dues", 300),
		tx("14", "Fundraising", -40),
	}
	reversed := []domain.Transaction{rows[2], rows[1], rows[0]}

	assert.Equal(t, Build(rows), Build(reversed))
}
