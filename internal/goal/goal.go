package goal

import (
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound      = errors.New("goal not found")
	ErrValidation    = errors.New("invalid goal")
	ErrExceedsTarget = errors.New("contribution exceeds goal target")
)

// Goal is a savings target. SavedAmount only grows past TargetAmount through
// a contribution the user confirmed.
type Goal struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	TargetAmount decimal.Decimal `json:"targetAmount"`
	TargetDate   *civil.Date     `json:"targetDate,omitempty"`
	SavedAmount  decimal.Decimal `json:"savedAmount"`
	Notes        string          `json:"notes,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
}

func (g *Goal) Remaining() decimal.Decimal {
	r := g.TargetAmount.Sub(g.SavedAmount)
	if r.IsNegative() {
		return decimal.Zero
	}

	return r
}

func (g *Goal) Reached() bool {
	return g.SavedAmount.GreaterThanOrEqual(g.TargetAmount)
}

// ExceedsTargetError reports how far a contribution would overshoot the target.
// Retrying with AllowOverfund accepts the overshoot.
type ExceedsTargetError struct {
	Goal   *Goal
	Amount decimal.Decimal
	Excess decimal.Decimal
}

func (e *ExceedsTargetError) Error() string {
	return fmt.Sprintf("adding %s would exceed your goal %q by %s", e.Amount.StringFixed(2), e.Goal.Name, e.Excess.StringFixed(2))
}

func (e *ExceedsTargetError) Is(target error) bool {
	return target == ErrExceedsTarget
}
