// Package roi defines the parameter and result sets of the ROI estimate and
// the pure calculation that maps one onto the other.
package roi

import (
	"github.com/iwvelando/roi-estimator/pkg/constants"
	"github.com/iwvelando/roi-estimator/pkg/mathutil"
)

// TaskCategory identifies one of the administrative workflows whose per-unit
// time cost the evaluated system reduces.
type TaskCategory int

// Task categories in display order.
const (
	Attendance TaskCategory = iota
	Invoicing
	Payroll
	Documents
	Communication
)

// CategoryCount is the number of task categories.
const CategoryCount = 5

var categoryLabels = [CategoryCount]string{
	Attendance:    "Attendance management",
	Invoicing:     "Invoice creation",
	Payroll:       "Payroll creation",
	Documents:     "Document creation",
	Communication: "Communication",
}

var categoryKeys = [CategoryCount]string{
	Attendance:    "attendance",
	Invoicing:     "invoice",
	Payroll:       "payroll",
	Documents:     "document",
	Communication: "communication",
}

// Categories returns every task category in display order.
func Categories() []TaskCategory {
	return []TaskCategory{Attendance, Invoicing, Payroll, Documents, Communication}
}

// String returns the display label of the category.
func (c TaskCategory) String() string {
	if c < 0 || int(c) >= CategoryCount {
		return "unknown"
	}
	return categoryLabels[c]
}

// Key returns the short identifier used in parameter names.
func (c TaskCategory) Key() string {
	if c < 0 || int(c) >= CategoryCount {
		return "unknown"
	}
	return categoryKeys[c]
}

// Labels returns the display labels of every category in display order.
func Labels() []string {
	labels := make([]string, CategoryCount)
	copy(labels, categoryLabels[:])
	return labels
}

// TaskTime holds the per-unit minutes a task takes before and after adoption.
type TaskTime struct {
	OldMinutes float64 `json:"oldMinutes"`
	NewMinutes float64 `json:"newMinutes"`
}

// SavedHours returns the per-unit hours saved; negative when the task got slower.
func (t TaskTime) SavedHours() float64 {
	return (t.OldMinutes - t.NewMinutes) / constants.MinutesPerHour
}

// ParameterSet is an immutable snapshot of every input of one estimate.
// Ratios are expressed in [0,1].
type ParameterSet struct {
	Headcount           float64 `json:"headcount"`
	InvoiceCount        float64 `json:"invoiceCount"`
	PermanentStaffRatio float64 `json:"permanentStaffRatio"`
	WorkDaysPermanent   float64 `json:"workDaysPermanent"`
	WorkDaysTemporary   float64 `json:"workDaysTemporary"`

	HourlyWage           float64 `json:"hourlyWage"`
	MonthlyPaperCost     float64 `json:"monthlyPaperCost"`
	UnitPrice            float64 `json:"unitPrice"`
	UnbilledRecoveryRate float64 `json:"unbilledRecoveryRate"`

	Tasks [CategoryCount]TaskTime `json:"tasks"`

	SalesAllocationRatio    float64 `json:"salesAllocationRatio"`
	TrainingAllocationRatio float64 `json:"trainingAllocationRatio"`

	HoursPerDeal               float64 `json:"hoursPerDeal"`
	AvgMonthlyRevenuePerDeal   float64 `json:"avgMonthlyRevenuePerDeal"`
	GrossMarginRate            float64 `json:"grossMarginRate"`
	RecruitTrainCostPerHead    float64 `json:"recruitTrainCostPerHead"`
	AttritionImprovementRate   float64 `json:"attritionImprovementRate"`
	MonthlyComplaintsReduction float64 `json:"monthlyComplaintsReduction"`
	CostPerComplaint           float64 `json:"costPerComplaint"`
	PaperReductionRate         float64 `json:"paperReductionRate"`
}

// UnitCount returns the number of units the category's time saving applies to.
func (p ParameterSet) UnitCount(c TaskCategory) float64 {
	if c == Invoicing {
		return p.InvoiceCount
	}
	return p.Headcount
}

// ResultSet holds every intermediate and final figure of one estimate.
// Monetary values are per month unless stated otherwise.
type ResultSet struct {
	TaskHours        [CategoryCount]float64 `json:"taskHours"`
	TotalHoursSaved  float64                `json:"totalHoursSaved"`
	LaborCostSavings float64                `json:"laborCostSavings"`
	ModeledSales     float64                `json:"modeledSales"`
	UnbilledRecovery float64                `json:"unbilledRecovery"`
	PaperSavings     float64                `json:"paperSavings"`
	BaseNetBenefit   float64                `json:"baseNetBenefit"`

	SalesAllocatedHours float64 `json:"salesAllocatedHours"`
	ProfitPerDeal       float64 `json:"profitPerDeal"`
	SalesEffect         float64 `json:"salesEffect"`
	AttritionEffect     float64 `json:"attritionEffect"`
	ComplaintsEffect    float64 `json:"complaintsEffect"`
	TrainingEffect      float64 `json:"trainingEffect"`
	TotalReinvestment   float64 `json:"totalReinvestment"`

	// AnnualizedBenefit is per year.
	AnnualizedBenefit float64 `json:"annualizedBenefit"`
}

// Deltas returns the per-category hour savings in display order.
func (r ResultSet) Deltas() []float64 {
	deltas := make([]float64, CategoryCount)
	copy(deltas, r.TaskHours[:])
	return deltas
}

// Compute derives the full ResultSet from params. It has no side effects and
// no error conditions; benefit totals are floored at zero while individual
// task deltas keep their sign.
func Compute(params ParameterSet) ResultSet {
	var r ResultSet

	var sum float64
	for _, c := range Categories() {
		r.TaskHours[c] = params.Tasks[c].SavedHours() * params.UnitCount(c)
		sum += r.TaskHours[c]
	}
	r.TotalHoursSaved = mathutil.FloorZero(sum)

	r.LaborCostSavings = r.TotalHoursSaved * params.HourlyWage

	permanent := params.Headcount * params.PermanentStaffRatio
	temporary := params.Headcount * (1 - params.PermanentStaffRatio)
	r.ModeledSales = params.UnitPrice * (permanent*params.WorkDaysPermanent + temporary*params.WorkDaysTemporary)
	r.UnbilledRecovery = r.ModeledSales * params.UnbilledRecoveryRate
	r.PaperSavings = params.MonthlyPaperCost * params.PaperReductionRate
	r.BaseNetBenefit = mathutil.FloorZero(r.LaborCostSavings + r.UnbilledRecovery + r.PaperSavings)

	r.SalesAllocatedHours = r.TotalHoursSaved * params.SalesAllocationRatio
	r.ProfitPerDeal = params.AvgMonthlyRevenuePerDeal * params.GrossMarginRate
	hoursPerDeal := mathutil.Max(constants.MinHoursPerDeal, params.HoursPerDeal)
	r.SalesEffect = mathutil.FloorZero((r.SalesAllocatedHours / hoursPerDeal) * r.ProfitPerDeal)

	r.AttritionEffect = params.Headcount * params.AttritionImprovementRate * params.RecruitTrainCostPerHead / constants.MonthsPerYear
	r.ComplaintsEffect = params.MonthlyComplaintsReduction * params.CostPerComplaint
	r.TrainingEffect = mathutil.FloorZero(r.AttritionEffect + r.ComplaintsEffect)

	r.TotalReinvestment = r.SalesEffect + r.TrainingEffect
	r.AnnualizedBenefit = (r.BaseNetBenefit + r.TotalReinvestment) * constants.MonthsPerYear

	return r
}
