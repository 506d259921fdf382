package simulate

import (
	"github.com/google/uuid"

	"github.com/ammcore/swapcurve/pkg/bigmath"
	"github.com/ammcore/swapcurve/pkg/precise"
)

// ValuePoint records the pool's normalized value after a given step. Index
// 0 is the value before any step ran.
type ValuePoint struct {
	StepIndex int
	Value     precise.Number
}

// Violation records a step whose normalized value per pool token
// decreased, only ever populated when Config.FailFast is false. Before and
// After hold the pool's total normalized value around the step.
type Violation struct {
	StepIndex int
	Kind      StepKind
	Before    precise.Number
	After     precise.Number
}

// Result is the outcome of a completed Run.
type Result struct {
	RunID uuid.UUID

	InitialValue precise.Number
	FinalValue   precise.Number
	ValueHistory []ValuePoint

	FinalReserveA bigmath.U128
	FinalReserveB bigmath.U128
	FinalSupply   bigmath.U128

	// Violations is empty when every step held the pool's value per pool
	// token non-decreasing. With Config.FailFast set, Run returns an error on
	// the first violation instead of populating this slice.
	Violations []Violation
}

// Passed reports whether every step in the run held the pool's normalized
// value per pool token non-decreasing.
func (r *Result) Passed() bool {
	return len(r.Violations) == 0
}
