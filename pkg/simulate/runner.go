package simulate

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ammcore/swapcurve/pkg/bigmath"
	"github.com/ammcore/swapcurve/pkg/curve"
	"github.com/ammcore/swapcurve/pkg/precise"
)

// Runner replays a fixed sequence of Steps against a curve.Curve starting
// from Config's seed reserves, checking after every step that the pool's
// normalized value per pool token never decreased. It plays the same role the teacher's
// backtest.Engine plays for a trading strategy over market snapshots: an
// event loop that holds state across an ordered sequence and reduces it to
// one Result, except the invariant under test here is value preservation
// rather than portfolio return.
type Runner struct {
	config Config
}

// NewRunner constructs a Runner with the given configuration.
func NewRunner(config Config) *Runner {
	return &Runner{config: config}
}

// NewRunnerWithDefaults constructs a Runner using DefaultConfig.
func NewRunnerWithDefaults() *Runner {
	return NewRunner(DefaultConfig())
}

// Run replays steps against c, starting from the runner's configured seed
// reserves and the supply c.NewPoolSupply returns. It returns an error if
// ctx is cancelled, if a step's underlying curve call fails, or (with
// Config.FailFast) as soon as a step decreases normalized value per pool
// token.
func (r *Runner) Run(ctx context.Context, c curve.Curve, steps []Step) (*Result, error) {
	if c == nil {
		return nil, fmt.Errorf("simulate: curve cannot be nil")
	}
	if len(steps) == 0 {
		return nil, fmt.Errorf("simulate: steps cannot be empty")
	}

	reserveA := r.config.InitialReserveA
	reserveB := r.config.InitialReserveB
	supply := c.NewPoolSupply()

	initialValue, err := c.NormalizedValue(reserveA, reserveB)
	if err != nil {
		return nil, fmt.Errorf("simulate: initial normalized value: %w", err)
	}

	history := make([]ValuePoint, 0, len(steps)+1)
	history = append(history, ValuePoint{StepIndex: 0, Value: initialValue})

	var violations []Violation

	for i, step := range steps {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("simulate: cancelled at step %d: %w", i, ctx.Err())
		default:
		}

		before, err := c.NormalizedValue(reserveA, reserveB)
		if err != nil {
			return nil, fmt.Errorf("simulate: step %d normalized value before: %w", i, err)
		}

		supplyBefore := supply
		reserveA, reserveB, supply, err = r.applyStep(c, step, reserveA, reserveB, supply)
		if err != nil {
			return nil, fmt.Errorf("simulate: step %d (%s): %w", i, step.Kind, err)
		}

		after, err := c.NormalizedValue(reserveA, reserveB)
		if err != nil {
			return nil, fmt.Errorf("simulate: step %d normalized value after: %w", i, err)
		}

		// Value per pool token must not decrease: after/supply >=
		// before/supplyBefore, cross-multiplied. A swap leaves supply
		// unchanged, so for swaps this is simply after >= before.
		oldSupply, err := precise.FromU128(supplyBefore)
		if err != nil {
			return nil, fmt.Errorf("simulate: step %d supply before: %w", i, err)
		}
		newSupply, err := precise.FromU128(supply)
		if err != nil {
			return nil, fmt.Errorf("simulate: step %d supply after: %w", i, err)
		}

		if !after.Mul(oldSupply).GreaterThanOrEqual(before.Mul(newSupply)) {
			if r.config.FailFast {
				return nil, fmt.Errorf("%w: step %d (%s) took value %s to %s", ErrValueDecreased, i, step.Kind, before, after)
			}
			violations = append(violations, Violation{StepIndex: i, Kind: step.Kind, Before: before, After: after})
		}

		history = append(history, ValuePoint{StepIndex: i + 1, Value: after})
	}

	return &Result{
		RunID:         uuid.New(),
		InitialValue:  initialValue,
		FinalValue:    history[len(history)-1].Value,
		ValueHistory:  history,
		FinalReserveA: reserveA,
		FinalReserveB: reserveB,
		FinalSupply:   supply,
		Violations:    violations,
	}, nil
}

// applyStep performs one step and returns the resulting reserves and
// supply.
func (r *Runner) applyStep(
	c curve.Curve,
	step Step,
	reserveA, reserveB, supply bigmath.U128,
) (newReserveA, newReserveB, newSupply bigmath.U128, err error) {
	switch step.Kind {
	case StepSwap:
		return r.applySwap(c, step, reserveA, reserveB, supply)
	case StepDeposit:
		split, err := c.PoolTokensToTradingTokens(step.Amount, supply, reserveA, reserveB, curve.Ceiling)
		if err != nil {
			return bigmath.U128{}, bigmath.U128{}, bigmath.U128{}, err
		}
		newReserveA, err = reserveA.TryAdd(split.AmountA)
		if err != nil {
			return bigmath.U128{}, bigmath.U128{}, bigmath.U128{}, err
		}
		newReserveB, err = reserveB.TryAdd(split.AmountB)
		if err != nil {
			return bigmath.U128{}, bigmath.U128{}, bigmath.U128{}, err
		}
		newSupply, err = supply.TryAdd(step.Amount)
		if err != nil {
			return bigmath.U128{}, bigmath.U128{}, bigmath.U128{}, err
		}
		return newReserveA, newReserveB, newSupply, nil
	case StepWithdraw:
		split, err := c.PoolTokensToTradingTokens(step.Amount, supply, reserveA, reserveB, curve.Floor)
		if err != nil {
			return bigmath.U128{}, bigmath.U128{}, bigmath.U128{}, err
		}
		newReserveA, err = reserveA.TrySub(split.AmountA)
		if err != nil {
			return bigmath.U128{}, bigmath.U128{}, bigmath.U128{}, err
		}
		newReserveB, err = reserveB.TrySub(split.AmountB)
		if err != nil {
			return bigmath.U128{}, bigmath.U128{}, bigmath.U128{}, err
		}
		newSupply, err = supply.TrySub(step.Amount)
		if err != nil {
			return bigmath.U128{}, bigmath.U128{}, bigmath.U128{}, err
		}
		return newReserveA, newReserveB, newSupply, nil
	default:
		return bigmath.U128{}, bigmath.U128{}, bigmath.U128{}, fmt.Errorf("simulate: unknown step kind %d", step.Kind)
	}
}

func (r *Runner) applySwap(
	c curve.Curve,
	step Step,
	reserveA, reserveB, supply bigmath.U128,
) (newReserveA, newReserveB, newSupply bigmath.U128, err error) {
	if step.Direction == curve.AtoB {
		result, err := c.SwapWithoutFees(step.Amount, reserveA, reserveB, curve.AtoB)
		if err != nil {
			return bigmath.U128{}, bigmath.U128{}, bigmath.U128{}, err
		}
		newReserveA, err = reserveA.TryAdd(result.SourceConsumed)
		if err != nil {
			return bigmath.U128{}, bigmath.U128{}, bigmath.U128{}, err
		}
		newReserveB, err = reserveB.TrySub(result.DestinationReleased)
		if err != nil {
			return bigmath.U128{}, bigmath.U128{}, bigmath.U128{}, err
		}
		return newReserveA, newReserveB, supply, nil
	}

	result, err := c.SwapWithoutFees(step.Amount, reserveB, reserveA, curve.BtoA)
	if err != nil {
		return bigmath.U128{}, bigmath.U128{}, bigmath.U128{}, err
	}
	newReserveB, err = reserveB.TryAdd(result.SourceConsumed)
	if err != nil {
		return bigmath.U128{}, bigmath.U128{}, bigmath.U128{}, err
	}
	newReserveA, err = reserveA.TrySub(result.DestinationReleased)
	if err != nil {
		return bigmath.U128{}, bigmath.U128{}, bigmath.U128{}, err
	}
	return newReserveA, newReserveB, supply, nil
}
