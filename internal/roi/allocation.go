package roi

import (
	"fmt"
	"strings"

	"github.com/iwvelando/roi-estimator/pkg/mathutil"
)

// AllocationField names which side of the sales/training split was edited.
type AllocationField int

const (
	// AllocationSales marks the sales ratio as authoritative.
	AllocationSales AllocationField = iota
	// AllocationTraining marks the training ratio as authoritative.
	AllocationTraining
)

func (f AllocationField) String() string {
	if f == AllocationTraining {
		return "training"
	}
	return "sales"
}

// ParseAllocationField maps "sales" or "training" (case-insensitive) to a field.
// An empty string selects sales.
func ParseAllocationField(value string) (AllocationField, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "sales":
		return AllocationSales, nil
	case "training":
		return AllocationTraining, nil
	default:
		return AllocationSales, fmt.Errorf("expected allocation field of sales or training, got %s", value)
	}
}

// NormalizeAllocation clamps the edited ratio to [0,1] and returns the pair
// with the other side set to its complement, so the two always sum to 1.
func NormalizeAllocation(changed AllocationField, value float64) (sales, training float64) {
	v := mathutil.Clamp(value, 0, 1)
	if changed == AllocationTraining {
		return 1 - v, v
	}
	return v, 1 - v
}

// WithAllocation returns a copy of p whose allocation pair is normalized
// around the edited field.
func (p ParameterSet) WithAllocation(changed AllocationField) ParameterSet {
	value := p.SalesAllocationRatio
	if changed == AllocationTraining {
		value = p.TrainingAllocationRatio
	}
	p.SalesAllocationRatio, p.TrainingAllocationRatio = NormalizeAllocation(changed, value)
	return p
}
