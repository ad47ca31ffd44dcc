package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faoa-tools/annual-report/pkg/models/domain"
	"github.com/faoa-tools/annual-report/pkg/services/ingest"
)

func monthlyDataset(month string, rows ...map[string]string) ingest.RawDataset {
	return ingest.RawDataset{
		Name:    month + ".csv",
		Columns: ingest.RequiredColumns,
		Rows:    rows,
	}
}

func row(year, month, amount, code, label string) map[string]string {
	return map[string]string{
		ingest.ColYear:          year,
		ingest.ColMonth:         month,
		ingest.ColAmount:        amount,
		ingest.ColCategoryCode:  code,
		ingest.ColCategoryLabel: label,
	}
}

func newSession(t *testing.T) (*Store, *Session) {
	t.Helper()
	store := NewStore()
	sess, err := store.Create([]ingest.RawDataset{
		monthlyDataset("january",
			row("2024", "1", "100", "1", "Gifts"),
			row("2024", "1", "500", "2", "Membership Dues"),
		),
		monthlyDataset("february",
			row("2024", "2", "40", "14", "Fundraising"),
		),
	})
	require.NoError(t, err)
	return store, sess
}

func TestStoreCreate(t *testing.T) {
	store, sess := newSession(t)

	assert.NotEmpty(t, sess.ID)
	assert.Equal(t, 2024, sess.Year)
	assert.Len(t, sess.Rows, 3)
	assert.Equal(t, []int{1, 2}, sess.Coverage.Present)

	got, err := store.Get(sess.ID)
	require.NoError(t, err)
	assert.Same(t, sess, got)
}

func TestStoreCreate_ValidationAborts(t *testing.T) {
	store := NewStore()
	_, err := store.Create([]ingest.RawDataset{
		monthlyDataset("january", row("2023", "1", "100", "1", "Gifts")),
		monthlyDataset("february", row("2024", "2", "40", "14", "Fundraising")),
	})

	var consistencyErr *domain.ConsistencyError
	require.ErrorAs(t, err, &consistencyErr)
	assert.Contains(t, err.Error(), "2023")
	assert.Contains(t, err.Error(), "2024")
}

func TestStoreGet_Unknown(t *testing.T) {
	store := NewStore()
	_, err := store.Get("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreDelete(t *testing.T) {
	store, sess := newSession(t)
	store.Delete(sess.ID)

	_, err := store.Get(sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSession_SetAdjusted(t *testing.T) {
	_, sess := newSession(t)

	require.NoError(t, sess.SetAdjusted("1", "Gifts", 90))

	edited := sess.EditedSummary()
	assert.Equal(t, 100.0, edited.Rows[0].RawTotal)
	assert.Equal(t, 90.0, edited.Rows[0].AdjustedTotal)
}

func TestSession_SetAdjusted_UnknownRow(t *testing.T) {
	_, sess := newSession(t)

	err := sess.SetAdjusted("1", "No Such Label", 90)
	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestSession_ReclassificationDoesNotCompound(t *testing.T) {
	_, sess := newSession(t)

	require.NoError(t, sess.SetReclassification(120))
	require.NoError(t, sess.SetReclassification(120))

	effective, err := sess.EffectiveSummary()
	require.NoError(t, err)

	var dues, receipts domain.SummaryRow
	for _, r := range effective.Rows {
		switch r.CategoryCode {
		case domain.ReclassSourceCode:
			dues = r
		case domain.ReclassTargetCode:
			receipts = r
		}
	}

	assert.Equal(t, 500.0, dues.RawTotal)
	assert.InDelta(t, 380.0, dues.AdjustedTotal, 1e-9)
	assert.InDelta(t, 120.0, receipts.AdjustedTotal, 1e-9)
}

func TestSession_SetReclassification_Overdraft(t *testing.T) {
	_, sess := newSession(t)

	err := sess.SetReclassification(600)
	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)

	// The stored amount is untouched by the failed attempt.
	assert.Equal(t, 0.0, sess.ReclassAmount())
}

func TestSession_RenderUsesEditsAndReclass(t *testing.T) {
	_, sess := newSession(t)

	require.NoError(t, sess.SetAdjusted("1", "Gifts", 90))
	require.NoError(t, sess.SetReclassification(120))

	text, err := sess.Render()
	require.NoError(t, err)

	assert.Contains(t, text, "  1 - Gifts: $90.00")
	assert.Contains(t, text, "  2 - Membership Dues: $380.00")
	assert.Contains(t, text, "    Gala Tickets: $120.00")

	again, err := sess.Render()
	require.NoError(t, err)
	assert.Equal(t, text, again)
}
