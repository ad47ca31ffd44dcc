package session

import (
	"sync"

	"github.com/faoa-tools/annual-report/pkg/models/domain"
	"github.com/faoa-tools/annual-report/pkg/services/ingest"
	"github.com/faoa-tools/annual-report/pkg/services/report"
	"github.com/faoa-tools/annual-report/pkg/services/summary"
)

type rowKey struct {
	code  string
	label string
}

// Session owns one upload set for its lifetime: the merged rows, the
// base summary computed from them, and the treasurer's pending edits.
// The base summary is never mutated; every render recomputes effective
// adjusted totals from it, so reapplying a reclassification amount never
// compounds.
type Session struct {
	ID       string
	Year     int
	Rows     []domain.Transaction
	Coverage ingest.Coverage

	mu            sync.Mutex
	base          domain.Summary
	overrides     map[rowKey]float64
	reclassAmount float64
}

// EditedSummary is the base summary with the treasurer's adjusted-total
// edits applied, before any reclassification.
func (s *Session) EditedSummary() domain.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editedLocked()
}

func (s *Session) editedLocked() domain.Summary {
	edited := s.base.Clone()
	for i := range edited.Rows {
		key := rowKey{code: edited.Rows[i].CategoryCode, label: edited.Rows[i].CategoryLabel}
		if amount, ok := s.overrides[key]; ok {
			edited.Rows[i].AdjustedTotal = amount
		}
	}
	return edited
}

// SetAdjusted records an adjusted-total edit for one summary row. Code,
// label and raw total are read-only; only rows that exist can be edited.
func (s *Session) SetAdjusted(code, label string, amount float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	for _, row := range s.base.Rows {
		if row.CategoryCode == code && row.CategoryLabel == label {
			found = true
			break
		}
	}
	if !found {
		return domain.NewValidationError("no summary row for category %s (%s)", code, label)
	}
	s.overrides[rowKey{code: code, label: label}] = amount
	return nil
}

// SetReclassification stores the gala ticket transfer amount after a
// trial application, so an overdraft is rejected before it can poison a
// later render.
func (s *Session) SetReclassification(amount float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	trial := s.editedLocked()
	if err := summary.ApplyReclassification(&trial, amount,
		domain.ReclassSourceCode, domain.ReclassTargetCode); err != nil {
		return err
	}
	s.reclassAmount = amount
	return nil
}

// ReclassAmount returns the currently stored transfer amount.
func (s *Session) ReclassAmount() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reclassAmount
}

// EffectiveSummary recomputes the summary used for rendering and the
// CSV download: base totals, then adjusted-total edits, then the
// reclassification transfer.
func (s *Session) EffectiveSummary() (domain.Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.effectiveLocked()
}

func (s *Session) effectiveLocked() (domain.Summary, error) {
	effective := s.editedLocked()
	err := summary.ApplyReclassification(&effective, s.reclassAmount,
		domain.ReclassSourceCode, domain.ReclassTargetCode)
	if err != nil {
		return domain.Summary{}, err
	}
	return effective, nil
}

// Render generates the annual report text from the session's current
// state.
func (s *Session) Render() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	effective, err := s.effectiveLocked()
	if err != nil {
		return "", err
	}
	return report.Render(report.Inputs{
		Year:          s.Year,
		Summary:       effective,
		Rows:          s.Rows,
		ReclassAmount: s.reclassAmount,
	}), nil
}
