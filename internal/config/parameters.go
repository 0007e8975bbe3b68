package config

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/iwvelando/roi-estimator/internal/roi"
	"github.com/iwvelando/roi-estimator/pkg/mathutil"
)

// Parameter names accepted by ParseParameters. Percent-denominated names end
// in "Percent" and are converted to ratios.
const (
	KeyHeadcount                   = "headcount"
	KeyInvoiceCount                = "invoiceCount"
	KeyHourlyWage                  = "hourlyWage"
	KeyMonthlyPaperCost            = "monthlyPaperCost"
	KeyPermanentStaffPercent       = "permanentStaffPercent"
	KeyWorkDaysPermanent           = "workDaysPermanent"
	KeyWorkDaysTemporary           = "workDaysTemporary"
	KeyUnitPrice                   = "unitPrice"
	KeyUnbilledRecoveryPercent     = "unbilledRecoveryPercent"
	KeyPaperReductionPercent       = "paperReductionPercent"
	KeySalesAllocationPercent      = "salesAllocationPercent"
	KeyTrainingAllocationPercent   = "trainingAllocationPercent"
	KeyHoursPerDeal                = "hoursPerDeal"
	KeyAvgMonthlyRevenuePerDeal    = "avgMonthlyRevenuePerDeal"
	KeyGrossMarginPercent          = "grossMarginPercent"
	KeyRecruitTrainCostPerHead     = "recruitTrainCostPerHead"
	KeyAttritionImprovementPercent = "attritionImprovementPercent"
	KeyMonthlyComplaintsReduction  = "monthlyComplaintsReduction"
	KeyCostPerComplaint            = "costPerComplaint"

	// KeyAllocationSource selects which allocation field is authoritative.
	KeyAllocationSource = "allocationSource"
)

// TaskOldMinutesKey returns the parameter name of a category's old minutes.
func TaskOldMinutesKey(c roi.TaskCategory) string {
	return c.Key() + "OldMinutes"
}

// TaskNewMinutesKey returns the parameter name of a category's new minutes.
func TaskNewMinutesKey(c roi.TaskCategory) string {
	return c.Key() + "NewMinutes"
}

type parameterField struct {
	key     string
	percent bool
	assign  func(p *roi.ParameterSet, v float64)
}

var parameterFields = buildParameterFields()

func buildParameterFields() []parameterField {
	fields := []parameterField{
		{KeyHeadcount, false, func(p *roi.ParameterSet, v float64) { p.Headcount = v }},
		{KeyInvoiceCount, false, func(p *roi.ParameterSet, v float64) { p.InvoiceCount = v }},
		{KeyHourlyWage, false, func(p *roi.ParameterSet, v float64) { p.HourlyWage = v }},
		{KeyMonthlyPaperCost, false, func(p *roi.ParameterSet, v float64) { p.MonthlyPaperCost = v }},
		{KeyPermanentStaffPercent, true, func(p *roi.ParameterSet, v float64) { p.PermanentStaffRatio = v }},
		{KeyWorkDaysPermanent, false, func(p *roi.ParameterSet, v float64) { p.WorkDaysPermanent = v }},
		{KeyWorkDaysTemporary, false, func(p *roi.ParameterSet, v float64) { p.WorkDaysTemporary = v }},
		{KeyUnitPrice, false, func(p *roi.ParameterSet, v float64) { p.UnitPrice = v }},
		{KeyUnbilledRecoveryPercent, true, func(p *roi.ParameterSet, v float64) { p.UnbilledRecoveryRate = v }},
		{KeyPaperReductionPercent, true, func(p *roi.ParameterSet, v float64) { p.PaperReductionRate = v }},
		{KeySalesAllocationPercent, true, func(p *roi.ParameterSet, v float64) { p.SalesAllocationRatio = v }},
		{KeyTrainingAllocationPercent, true, func(p *roi.ParameterSet, v float64) { p.TrainingAllocationRatio = v }},
		{KeyHoursPerDeal, false, func(p *roi.ParameterSet, v float64) { p.HoursPerDeal = v }},
		{KeyAvgMonthlyRevenuePerDeal, false, func(p *roi.ParameterSet, v float64) { p.AvgMonthlyRevenuePerDeal = v }},
		{KeyGrossMarginPercent, true, func(p *roi.ParameterSet, v float64) { p.GrossMarginRate = v }},
		{KeyRecruitTrainCostPerHead, false, func(p *roi.ParameterSet, v float64) { p.RecruitTrainCostPerHead = v }},
		{KeyAttritionImprovementPercent, true, func(p *roi.ParameterSet, v float64) { p.AttritionImprovementRate = v }},
		{KeyMonthlyComplaintsReduction, false, func(p *roi.ParameterSet, v float64) { p.MonthlyComplaintsReduction = v }},
		{KeyCostPerComplaint, false, func(p *roi.ParameterSet, v float64) { p.CostPerComplaint = v }},
	}

	for _, c := range roi.Categories() {
		category := c
		fields = append(fields,
			parameterField{TaskOldMinutesKey(category), false, func(p *roi.ParameterSet, v float64) { p.Tasks[category].OldMinutes = v }},
			parameterField{TaskNewMinutesKey(category), false, func(p *roi.ParameterSet, v float64) { p.Tasks[category].NewMinutes = v }},
		)
	}
	return fields
}

// ParameterKeys returns every numeric parameter name in a stable order.
func ParameterKeys() []string {
	keys := make([]string, 0, len(parameterFields))
	for _, field := range parameterFields {
		keys = append(keys, field.key)
	}
	return keys
}

func canonicalKey(key string) (string, bool) {
	for _, field := range parameterFields {
		if strings.EqualFold(field.key, key) {
			return field.key, true
		}
	}
	return "", false
}

// IsPercentKey reports whether the named parameter is expressed in percent.
func IsPercentKey(key string) bool {
	for _, field := range parameterFields {
		if strings.EqualFold(field.key, key) {
			return field.percent
		}
	}
	return false
}

// DefaultValues returns the seeded form values keyed by parameter name, with
// percent parameters in percent.
func DefaultValues() map[string]float64 {
	values := map[string]float64{
		KeyHeadcount:                   50,
		KeyInvoiceCount:                20,
		KeyHourlyWage:                  1800,
		KeyMonthlyPaperCost:            8000,
		KeyPermanentStaffPercent:       60,
		KeyWorkDaysPermanent:           21,
		KeyWorkDaysTemporary:           12,
		KeyUnitPrice:                   14437,
		KeyUnbilledRecoveryPercent:     1,
		KeyPaperReductionPercent:       70,
		KeySalesAllocationPercent:      50,
		KeyTrainingAllocationPercent:   50,
		KeyHoursPerDeal:                20,
		KeyAvgMonthlyRevenuePerDeal:    600000,
		KeyGrossMarginPercent:          25,
		KeyRecruitTrainCostPerHead:     250000,
		KeyAttritionImprovementPercent: 5,
		KeyMonthlyComplaintsReduction:  5,
		KeyCostPerComplaint:            5000,
	}

	minutes := map[roi.TaskCategory]roi.TaskTime{
		roi.Attendance:    {OldMinutes: 16.3, NewMinutes: 4.8},
		roi.Invoicing:     {OldMinutes: 19.8, NewMinutes: 4.8},
		roi.Payroll:       {OldMinutes: 17.9, NewMinutes: 3.0},
		roi.Documents:     {OldMinutes: 27.4, NewMinutes: 1.8},
		roi.Communication: {OldMinutes: 18.7, NewMinutes: 1.2},
	}
	for c, task := range minutes {
		values[TaskOldMinutesKey(c)] = task.OldMinutes
		values[TaskNewMinutesKey(c)] = task.NewMinutes
	}
	return values
}

// DefaultParameters returns the ParameterSet built from DefaultValues.
func DefaultParameters() roi.ParameterSet {
	values := make(map[string]interface{})
	for key, value := range DefaultValues() {
		values[key] = value
	}
	return ParseParameters(values, roi.AllocationSales)
}

// ParseParameters converts a flat name-to-value mapping into a ParameterSet.
// Names match case-insensitively. Missing, empty, non-finite or unparseable
// values become 0. The allocation pair is normalized around source.
func ParseParameters(values map[string]interface{}, source roi.AllocationField) roi.ParameterSet {
	lookup := make(map[string]interface{}, len(values))
	for key, value := range values {
		lookup[strings.ToLower(key)] = value
	}

	var params roi.ParameterSet
	for _, field := range parameterFields {
		v := CoerceNumber(lookup[strings.ToLower(field.key)])
		if field.percent {
			v = mathutil.FromPercentage(v)
		}
		field.assign(&params, v)
	}
	return params.WithAllocation(source)
}

// AllocationSource extracts the allocation source from a parameter mapping.
// Unknown or missing values select sales.
func AllocationSource(values map[string]interface{}) roi.AllocationField {
	for key, value := range values {
		if !strings.EqualFold(key, KeyAllocationSource) {
			continue
		}
		text, _ := value.(string)
		field, err := roi.ParseAllocationField(text)
		if err != nil {
			return roi.AllocationSales
		}
		return field
	}
	return roi.AllocationSales
}

// FormatValues renders params back into the flat mapping, percent parameters
// in percent, rounded to two decimals.
func FormatValues(params roi.ParameterSet) map[string]float64 {
	values := map[string]float64{
		KeyHeadcount:                   params.Headcount,
		KeyInvoiceCount:                params.InvoiceCount,
		KeyHourlyWage:                  params.HourlyWage,
		KeyMonthlyPaperCost:            params.MonthlyPaperCost,
		KeyPermanentStaffPercent:       mathutil.ToPercentage(params.PermanentStaffRatio),
		KeyWorkDaysPermanent:           params.WorkDaysPermanent,
		KeyWorkDaysTemporary:           params.WorkDaysTemporary,
		KeyUnitPrice:                   params.UnitPrice,
		KeyUnbilledRecoveryPercent:     mathutil.ToPercentage(params.UnbilledRecoveryRate),
		KeyPaperReductionPercent:       mathutil.ToPercentage(params.PaperReductionRate),
		KeySalesAllocationPercent:      mathutil.ToPercentage(params.SalesAllocationRatio),
		KeyTrainingAllocationPercent:   mathutil.ToPercentage(params.TrainingAllocationRatio),
		KeyHoursPerDeal:                params.HoursPerDeal,
		KeyAvgMonthlyRevenuePerDeal:    params.AvgMonthlyRevenuePerDeal,
		KeyGrossMarginPercent:          mathutil.ToPercentage(params.GrossMarginRate),
		KeyRecruitTrainCostPerHead:     params.RecruitTrainCostPerHead,
		KeyAttritionImprovementPercent: mathutil.ToPercentage(params.AttritionImprovementRate),
		KeyMonthlyComplaintsReduction:  params.MonthlyComplaintsReduction,
		KeyCostPerComplaint:            params.CostPerComplaint,
	}
	for _, c := range roi.Categories() {
		values[TaskOldMinutesKey(c)] = params.Tasks[c].OldMinutes
		values[TaskNewMinutesKey(c)] = params.Tasks[c].NewMinutes
	}
	for key, value := range values {
		values[key] = mathutil.Round(value)
	}
	return values
}

// SortedKeys returns the keys of values in lexical order.
func SortedKeys(values map[string]float64) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// CoerceNumber converts a decoded value into a finite float64, falling back
// to 0 for anything it cannot interpret.
func CoerceNumber(value interface{}) float64 {
	var v float64
	switch n := value.(type) {
	case float64:
		v = n
	case float32:
		v = float64(n)
	case int:
		v = float64(n)
	case int64:
		v = float64(n)
	case int32:
		v = float64(n)
	case uint64:
		v = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0
		}
		v = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		v = parsed
	default:
		return 0
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
