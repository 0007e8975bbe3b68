package roi

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scenarioDefaults mirrors the seeded form values of the estimator.
func scenarioDefaults() ParameterSet {
	return ParameterSet{
		Headcount:            50,
		InvoiceCount:         20,
		PermanentStaffRatio:  0.6,
		WorkDaysPermanent:    21,
		WorkDaysTemporary:    12,
		HourlyWage:           1800,
		MonthlyPaperCost:     8000,
		UnitPrice:            14437,
		UnbilledRecoveryRate: 0.01,
		Tasks: [CategoryCount]TaskTime{
			Attendance:    {OldMinutes: 16.3, NewMinutes: 4.8},
			Invoicing:     {OldMinutes: 19.8, NewMinutes: 4.8},
			Payroll:       {OldMinutes: 17.9, NewMinutes: 3.0},
			Documents:     {OldMinutes: 27.4, NewMinutes: 1.8},
			Communication: {OldMinutes: 18.7, NewMinutes: 1.2},
		},
		SalesAllocationRatio:       0.5,
		TrainingAllocationRatio:    0.5,
		HoursPerDeal:               20,
		AvgMonthlyRevenuePerDeal:   600000,
		GrossMarginRate:            0.25,
		RecruitTrainCostPerHead:    250000,
		AttritionImprovementRate:   0.05,
		MonthlyComplaintsReduction: 5,
		CostPerComplaint:           5000,
		PaperReductionRate:         0.7,
	}
}

func TestComputeDefaultScenario(t *testing.T) {
	r := Compute(scenarioDefaults())

	expectedDeltas := []float64{9.583333, 5.0, 12.416667, 21.333333, 14.583333}
	for i, expected := range expectedDeltas {
		assert.InDelta(t, expected, r.TaskHours[i], 1e-5, "delta for %s", TaskCategory(i))
	}

	assert.InDelta(t, 62.916667, r.TotalHoursSaved, 1e-5)
	assert.InDelta(t, 113250.0, r.LaborCostSavings, 1e-6)
	assert.InDelta(t, 12560190.0, r.ModeledSales, 1e-6)
	assert.InDelta(t, 125601.9, r.UnbilledRecovery, 1e-6)
	assert.InDelta(t, 5600.0, r.PaperSavings, 1e-9)
	assert.InDelta(t, 244451.9, r.BaseNetBenefit, 1e-6)
	assert.InDelta(t, 31.458333, r.SalesAllocatedHours, 1e-5)
	assert.InDelta(t, 150000.0, r.ProfitPerDeal, 1e-9)
	assert.InDelta(t, 235937.5, r.SalesEffect, 1e-6)
	assert.InDelta(t, 52083.333333, r.AttritionEffect, 1e-5)
	assert.InDelta(t, 25000.0, r.ComplaintsEffect, 1e-9)
	assert.InDelta(t, 77083.333333, r.TrainingEffect, 1e-5)
	assert.InDelta(t, 313020.833333, r.TotalReinvestment, 1e-5)
	assert.InDelta(t, 6689672.8, r.AnnualizedBenefit, 1e-4)
}

func TestComputeZeroHeadcount(t *testing.T) {
	params := scenarioDefaults()
	params.Headcount = 0

	r := Compute(params)

	for _, c := range Categories() {
		if c == Invoicing {
			assert.InDelta(t, 5.0, r.TaskHours[c], 1e-9)
			continue
		}
		assert.Zero(t, r.TaskHours[c], "expected no saving for %s", c)
	}
	assert.InDelta(t, 5.0, r.TotalHoursSaved, 1e-9)
	assert.Zero(t, r.ModeledSales)
	assert.Zero(t, r.UnbilledRecovery)
	assert.Zero(t, r.AttritionEffect)
	assert.InDelta(t, 5.0*1800+5600, r.BaseNetBenefit, 1e-9)
}

func TestComputeClampsHoursPerDeal(t *testing.T) {
	tests := map[string]struct {
		hoursPerDeal float64
	}{
		"Zero":        {hoursPerDeal: 0},
		"Negative":    {hoursPerDeal: -5},
		"Below one":   {hoursPerDeal: 0.25},
		"Exactly one": {hoursPerDeal: 1},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			params := scenarioDefaults()
			params.HoursPerDeal = tc.hoursPerDeal

			r := Compute(params)

			expected := r.SalesAllocatedHours * r.ProfitPerDeal
			assert.InDelta(t, expected, r.SalesEffect, 1e-6)
			assert.False(t, math.IsNaN(r.SalesEffect))
		})
	}
}

func TestComputeNegativeDeltasKeepSign(t *testing.T) {
	params := scenarioDefaults()
	params.Tasks[Payroll] = TaskTime{OldMinutes: 2, NewMinutes: 8}

	r := Compute(params)

	assert.Less(t, r.TaskHours[Payroll], 0.0)
	assert.InDelta(t, -5.0, r.TaskHours[Payroll], 1e-9)
}

func TestComputeFloorsTotals(t *testing.T) {
	params := scenarioDefaults()
	for _, c := range Categories() {
		params.Tasks[c] = TaskTime{OldMinutes: 1, NewMinutes: 30}
	}
	params.MonthlyPaperCost = 0
	params.UnbilledRecoveryRate = 0
	params.MonthlyComplaintsReduction = -10
	params.AttritionImprovementRate = 0

	r := Compute(params)

	assert.Zero(t, r.TotalHoursSaved)
	assert.Zero(t, r.LaborCostSavings)
	assert.Zero(t, r.BaseNetBenefit)
	assert.Zero(t, r.SalesEffect)
	assert.Zero(t, r.TrainingEffect)
	assert.Zero(t, r.AnnualizedBenefit)
}

func TestComputeInvariantsHoldForRandomInputs(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	span := func(lo, hi float64) float64 { return lo + rng.Float64()*(hi-lo) }

	for i := 0; i < 500; i++ {
		params := ParameterSet{
			Headcount:                  span(-10, 500),
			InvoiceCount:               span(-10, 500),
			PermanentStaffRatio:        span(0, 1),
			WorkDaysPermanent:          span(0, 31),
			WorkDaysTemporary:          span(0, 31),
			HourlyWage:                 span(-100, 5000),
			MonthlyPaperCost:           span(-1000, 100000),
			UnitPrice:                  span(-100, 50000),
			UnbilledRecoveryRate:       span(-0.1, 1),
			HoursPerDeal:               span(-5, 50),
			AvgMonthlyRevenuePerDeal:   span(-1000, 1e6),
			GrossMarginRate:            span(-0.5, 1),
			RecruitTrainCostPerHead:    span(-1000, 5e5),
			AttritionImprovementRate:   span(-0.5, 1),
			MonthlyComplaintsReduction: span(-20, 20),
			CostPerComplaint:           span(-100, 10000),
			PaperReductionRate:         span(-0.5, 1),
		}
		for _, c := range Categories() {
			params.Tasks[c] = TaskTime{OldMinutes: span(0, 60), NewMinutes: span(0, 60)}
		}
		params.SalesAllocationRatio, params.TrainingAllocationRatio = NormalizeAllocation(AllocationSales, span(0, 1))

		r := Compute(params)

		require.GreaterOrEqual(t, r.TotalHoursSaved, 0.0)
		require.GreaterOrEqual(t, r.BaseNetBenefit, 0.0)
		require.GreaterOrEqual(t, r.SalesEffect, 0.0)
		require.GreaterOrEqual(t, r.TrainingEffect, 0.0)
		require.Equal(t, (r.BaseNetBenefit+r.TotalReinvestment)*12, r.AnnualizedBenefit)
		require.Equal(t, r, Compute(params), "compute must be idempotent")
	}
}

func TestDeltasFollowCategoryOrder(t *testing.T) {
	r := Compute(scenarioDefaults())
	deltas := r.Deltas()

	require.Len(t, deltas, CategoryCount)
	for i, c := range Categories() {
		assert.Equal(t, r.TaskHours[c], deltas[i])
	}

	deltas[0] = -1
	assert.NotEqual(t, -1.0, r.TaskHours[0], "Deltas must return a copy")
}

func TestCategoryLabels(t *testing.T) {
	assert.Equal(t, "Attendance management", Attendance.String())
	assert.Equal(t, "Communication", Communication.String())
	assert.Equal(t, "unknown", TaskCategory(9).String())
	assert.Equal(t, "invoice", Invoicing.Key())
	assert.Equal(t, []string{
		"Attendance management",
		"Invoice creation",
		"Payroll creation",
		"Document creation",
		"Communication",
	}, Labels())
}
