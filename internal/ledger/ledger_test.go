package ledger

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(period string, amount float64, kind PaymentKind) PaymentRecord {
	return PaymentRecord{SubjectID: 1, Period: period, Amount: amount, Kind: kind}
}

func TestComputePeriodSummary_PartialPayment(t *testing.T) {
	s := ComputePeriodSummary([]PaymentRecord{rec("2026-01", 3000, KindRegular)}, "2026-01", 5000)

	assert.Equal(t, 3000.0, s.TotalPaidCapped)
	assert.Equal(t, 3000.0, s.TotalPaid)
	assert.Equal(t, 2000.0, s.RemainingBalance)
	assert.Equal(t, StatusPending, s.Status)
}

func TestComputePeriodSummary_ExactPayment(t *testing.T) {
	s := ComputePeriodSummary([]PaymentRecord{rec("2026-01", 5000, KindRegular)}, "2026-01", 5000)

	assert.Equal(t, 0.0, s.RemainingBalance)
	assert.Equal(t, StatusPaid, s.Status)
}

func TestComputePeriodSummary_OverpaymentClampsToZero(t *testing.T) {
	s := ComputePeriodSummary([]PaymentRecord{rec("2026-01", 6000, KindRegular)}, "2026-01", 5000)

	assert.Equal(t, 0.0, s.RemainingBalance, "balance must never go negative")
	assert.Equal(t, StatusPaid, s.Status)
}

func TestComputePeriodSummary_BonusExcludedFromCap(t *testing.T) {
	records := []PaymentRecord{
		rec("2026-01", 3000, KindRegular),
		rec("2026-01", 2500, KindBonus),
	}
	s := ComputePeriodSummary(records, "2026-01", 5000)

	assert.Equal(t, 5500.0, s.TotalPaid, "bonuses still appear in the display total")
	assert.Equal(t, 3000.0, s.TotalPaidCapped)
	assert.Equal(t, 2000.0, s.RemainingBalance)
	assert.Equal(t, StatusPending, s.Status)
}

func TestComputePeriodSummary_FineIsCapBearing(t *testing.T) {
	records := []PaymentRecord{
		rec("2026-01", 4000, KindRegular),
		rec("2026-01", 1000, KindFine),
	}
	s := ComputePeriodSummary(records, "2026-01", 5000)

	assert.Equal(t, 5000.0, s.TotalPaidCapped)
	assert.Equal(t, StatusPaid, s.Status)
}

func TestComputePeriodSummary_OtherPeriodsIgnored(t *testing.T) {
	records := []PaymentRecord{
		rec("2026-01", 3000, KindRegular),
		rec("2026-02", 9999, KindRegular),
	}
	s := ComputePeriodSummary(records, "2026-01", 5000)

	assert.Equal(t, 3000.0, s.TotalPaidCapped)
}

// A zero-obligation period is always Paid, regardless of its payments.
// Surprising but intentional: it preserves the behavior of the arithmetic
// this calculator replaces.
func TestComputePeriodSummary_ZeroObligationAlwaysPaid(t *testing.T) {
	for _, records := range [][]PaymentRecord{
		nil,
		{rec("2026-01", 3000, KindRegular)},
		{rec("2026-01", 500, KindBonus)},
	} {
		s := ComputePeriodSummary(records, "2026-01", 0)
		assert.Equal(t, StatusPaid, s.Status)
		assert.Equal(t, 0.0, s.RemainingBalance)
	}
}

func TestComputePeriodSummary_MalformedAmountsContributeZero(t *testing.T) {
	records := []PaymentRecord{
		rec("2026-01", math.NaN(), KindRegular),
		rec("2026-01", math.Inf(1), KindRegular),
		rec("2026-01", -4000, KindRegular),
		rec("2026-01", 1500, KindRegular),
	}
	s := ComputePeriodSummary(records, "2026-01", 5000)

	assert.Equal(t, 1500.0, s.TotalPaidCapped)
	assert.Equal(t, 3500.0, s.RemainingBalance)
	assert.False(t, math.IsNaN(s.TotalPaid))
}

func TestComputePeriodSummary_NonNegativity(t *testing.T) {
	obligations := []float64{0, 1, 2500, 5000, 100000}
	payments := []float64{0, 1, 2500, 5000, 100000, 1e9}
	for _, ob := range obligations {
		for _, p := range payments {
			s := ComputePeriodSummary([]PaymentRecord{rec("2026-03", p, KindRegular)}, "2026-03", ob)
			assert.GreaterOrEqual(t, s.RemainingBalance, 0.0, "obligation=%v payment=%v", ob, p)
		}
	}
}

func TestComputePeriodSummary_MonotonicPaidSum(t *testing.T) {
	records := []PaymentRecord{rec("2026-01", 1000, KindRegular)}
	before := ComputePeriodSummary(records, "2026-01", 5000).TotalPaidCapped

	records = append(records, rec("2026-01", 500, KindRegular))
	after := ComputePeriodSummary(records, "2026-01", 5000).TotalPaidCapped

	assert.GreaterOrEqual(t, after, before)
	assert.Equal(t, 1500.0, after)
}

func TestComputePeriodSummary_Idempotent(t *testing.T) {
	records := []PaymentRecord{
		rec("2026-01", 3000, KindRegular),
		rec("2026-01", 200, KindBonus),
	}
	first := ComputePeriodSummary(records, "2026-01", 5000)
	second := ComputePeriodSummary(records, "2026-01", 5000)

	assert.Equal(t, first, second)
}

func TestComputeAllPeriods_EmptyHistory(t *testing.T) {
	periods := []string{"2026-01", "2026-02", "2026-03"}
	summaries := ComputeAllPeriods(nil, periods, 1000)

	require.Len(t, summaries, 3)
	for i, s := range summaries {
		assert.Equal(t, periods[i], s.Period, "output order must match input order")
		assert.Equal(t, 0.0, s.TotalPaidCapped)
		assert.Equal(t, 1000.0, s.RemainingBalance)
		assert.Equal(t, StatusPending, s.Status)
	}
}

func TestComputeAllPeriods_PreservesInputOrder(t *testing.T) {
	periods := []string{"2026-03", "2026-01", "2026-02"}
	summaries := ComputeAllPeriods(nil, periods, 500)

	require.Len(t, summaries, 3)
	for i, s := range summaries {
		assert.Equal(t, periods[i], s.Period)
	}
}

func TestValidateNewPayment_RejectsOverCap(t *testing.T) {
	records := []PaymentRecord{rec("2026-03", 4000, KindRegular)}
	v := ValidateNewPayment(records, "2026-03", 5000, 2000, KindRegular)

	assert.False(t, v.OK)
	assert.Equal(t, 1000.0, v.MaxAllowed)
}

func TestValidateNewPayment_AcceptsWithinCap(t *testing.T) {
	records := []PaymentRecord{rec("2026-03", 4000, KindRegular)}

	v := ValidateNewPayment(records, "2026-03", 5000, 1000, KindRegular)
	assert.True(t, v.OK)

	v = ValidateNewPayment(records, "2026-03", 5000, 999.99, KindRegular)
	assert.True(t, v.OK)
}

func TestValidateNewPayment_BonusAlwaysAllowed(t *testing.T) {
	v := ValidateNewPayment(nil, "2026-03", 5000, 10000, KindBonus)
	assert.True(t, v.OK)

	// Even on a fully paid period.
	records := []PaymentRecord{rec("2026-03", 5000, KindRegular)}
	v = ValidateNewPayment(records, "2026-03", 5000, 1e9, KindBonus)
	assert.True(t, v.OK)
}

func TestValidateNewPayment_FullyPaidPeriodRejectsAnyRegular(t *testing.T) {
	records := []PaymentRecord{rec("2026-03", 5000, KindRegular)}
	v := ValidateNewPayment(records, "2026-03", 5000, 0.01, KindRegular)

	assert.False(t, v.OK)
	assert.Equal(t, 0.0, v.MaxAllowed)
}

func TestValidateNewPayment_DoesNotMutateRecords(t *testing.T) {
	records := []PaymentRecord{rec("2026-03", 4000, KindRegular)}
	_ = ValidateNewPayment(records, "2026-03", 5000, 2000, KindRegular)

	require.Len(t, records, 1)
	assert.Equal(t, 4000.0, records[0].Amount)
}
