package service

import (
	"errors"
	"fmt"

	"github.com/harvestguard/croprisk/internal/domain/valueobject"
	"github.com/harvestguard/croprisk/pkg/money"
)

// ErrNoPayoutForRisk is returned for a risk level missing from the payout table.
var ErrNoPayoutForRisk = errors.New("no payout mapping for risk level")

// PayoutEstimate is a heuristic insurance payout per hectare.
type PayoutEstimate struct {
	Point money.Money
	Low   money.Money
	High  money.Money
	// Outcome describes the loss the range corresponds to.
	Outcome string
	// Tone is the display hint for the risk metric: "normal", "inverse" or "".
	Tone string
}

func payout(point, low, high int64, outcome, tone string) PayoutEstimate {
	return PayoutEstimate{
		Point:   money.NewFromInt(point, money.USD),
		Low:     money.NewFromInt(low, money.USD),
		High:    money.NewFromInt(high, money.USD),
		Outcome: outcome,
		Tone:    tone,
	}
}

// payoutTable is keyed by RiskLevel value; every level in
// valueobject.RiskLevels must have an entry.
var payoutTable = map[valueobject.RiskLevel]PayoutEstimate{
	valueobject.RiskLevelLow:    payout(50, 0, 100, "minimal/no payout", "normal"),
	valueobject.RiskLevelMedium: payout(250, 150, 350, "partial loss", ""),
	valueobject.RiskLevelHigh:   payout(500, 400, 600, "severe loss", "inverse"),
}

// PayoutEstimator maps a risk level to a payout by static lookup.
type PayoutEstimator struct{}

// NewPayoutEstimator creates a new PayoutEstimator.
func NewPayoutEstimator() *PayoutEstimator {
	return &PayoutEstimator{}
}

// Estimate returns the payout for level.
func (e *PayoutEstimator) Estimate(level valueobject.RiskLevel) (PayoutEstimate, error) {
	est, ok := payoutTable[level]
	if !ok {
		return PayoutEstimate{}, fmt.Errorf("%w: %q", ErrNoPayoutForRisk, level.String())
	}
	return est, nil
}

// FormatPoint renders the point estimate as shown on the form, e.g. "$250".
func (p PayoutEstimate) FormatPoint() string {
	return p.Point.Display()
}

// FormatRange renders the range, e.g. "$150 – $350 (partial loss)".
func (p PayoutEstimate) FormatRange() string {
	return fmt.Sprintf("%s – %s (%s)", p.Low.Display(), p.High.Display(), p.Outcome)
}
