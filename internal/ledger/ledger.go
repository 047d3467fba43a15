// campus-crm/internal/ledger/ledger.go

// Package ledger computes per-period fee and salary balances. It is the one
// set of rules shared by the student tuition flow and the teacher payroll
// flow: a subject owes a fixed recurring amount per month, recorded payments
// count toward that amount, and the remaining balance is never negative.
//
// The package is a pure calculator. It holds no state, performs no I/O and
// never fails: callers fetch payment rows, map them to PaymentRecord values
// and recompute summaries from scratch on every request.
package ledger

import "math"

// PaymentKind tags a payment record. Regular payments and fines count
// toward the monthly obligation cap; bonuses are paid on top of it.
type PaymentKind string

const (
	KindRegular PaymentKind = "regular"
	KindBonus   PaymentKind = "bonus"
	KindFine    PaymentKind = "fine"
)

// CapBearing reports whether a payment of this kind counts toward the
// recurring obligation. Unknown kinds count: treating a mistyped tag as
// cap-exempt would let it bypass the overpayment guard.
func (k PaymentKind) CapBearing() bool {
	return k != KindBonus
}

// PaymentRecord is one immutable payment as seen by the calculator.
type PaymentRecord struct {
	SubjectID uint
	Period    string // normalized "YYYY-MM" key
	Amount    float64
	Kind      PaymentKind
}

// Summary statuses.
const (
	StatusPaid    = "Paid"
	StatusPending = "Pending"
)

// PeriodSummary is the derived state of one billing or payroll month.
// It is recomputed on demand and never persisted.
type PeriodSummary struct {
	Period           string  `json:"period"`
	TotalPaid        float64 `json:"totalPaid"`       // all kinds, for display
	TotalPaidCapped  float64 `json:"totalPaidCapped"` // cap-bearing kinds only
	RemainingBalance float64 `json:"remainingBalance"`
	Status           string  `json:"status"`
}

// Validation is the result of checking a proposed payment against the cap.
type Validation struct {
	OK         bool    `json:"ok"`
	MaxAllowed float64 `json:"maxAllowed"`
}

// sanitize coerces malformed amounts to zero. External records occasionally
// arrive with missing or garbage numeric fields; a bad row contributes
// nothing instead of poisoning the whole summary.
func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// ComputePeriodSummary derives the summary for one period from the given
// payment history and the current recurring obligation.
//
// A period with zero obligation is always reported Paid, whatever was paid
// into it. That mirrors the arithmetic this calculator replaces
// (pending = 0 - paid is never positive) and is kept deliberately.
func ComputePeriodSummary(records []PaymentRecord, period string, obligation float64) PeriodSummary {
	obligation = sanitize(obligation)

	var totalAll, totalCapped float64
	for _, r := range records {
		if r.Period != period {
			continue
		}
		amount := sanitize(r.Amount)
		totalAll += amount
		if r.Kind.CapBearing() {
			totalCapped += amount
		}
	}

	remaining := obligation - totalCapped
	if remaining < 0 {
		remaining = 0
	}

	status := StatusPending
	if remaining == 0 {
		status = StatusPaid
	}

	return PeriodSummary{
		Period:           period,
		TotalPaid:        totalAll,
		TotalPaidCapped:  totalCapped,
		RemainingBalance: remaining,
		Status:           status,
	}
}

// ComputeAllPeriods maps ComputePeriodSummary over the supplied periods.
// Output order matches input order; no sorting happens here.
func ComputeAllPeriods(records []PaymentRecord, periods []string, obligation float64) []PeriodSummary {
	summaries := make([]PeriodSummary, 0, len(periods))
	for _, period := range periods {
		summaries = append(summaries, ComputePeriodSummary(records, period, obligation))
	}
	return summaries
}

// ValidateNewPayment checks whether a proposed payment fits under the
// period's remaining balance. Cap-exempt kinds (bonuses) always pass.
// The caller is responsible for persisting the record on success.
func ValidateNewPayment(records []PaymentRecord, period string, obligation, proposed float64, kind PaymentKind) Validation {
	if !kind.CapBearing() {
		return Validation{OK: true}
	}

	remaining := ComputePeriodSummary(records, period, obligation).RemainingBalance
	if sanitize(proposed) > remaining {
		return Validation{OK: false, MaxAllowed: remaining}
	}
	return Validation{OK: true, MaxAllowed: remaining}
}
