package pricing

import (
	"errors"
	"fmt"
)

var ErrInvalidPercent = errors.New("pricing: percent must be within 0 and 100")

// Promotion is a stateless discount rule attachable to a catalog product.
// Apply computes the charged total for unitPrice and quantity without
// touching any state; for every rule defined here the result is
// non-decreasing in quantity and never exceeds unitPrice * quantity.
type Promotion interface {
	Name() string
	Apply(unitPrice float64, quantity int) float64
}

type percentOff struct {
	percent float64
}

// NewPercentOff returns a promotion charging price*qty reduced by percent.
func NewPercentOff(percent float64) (Promotion, error) {
	if percent < 0 || percent > 100 {
		return nil, ErrInvalidPercent
	}
	return &percentOff{percent: percent}, nil
}

func (p *percentOff) Name() string {
	return fmt.Sprintf("%g%% off", p.percent)
}

func (p *percentOff) Apply(unitPrice float64, quantity int) float64 {
	return unitPrice * float64(quantity) * (1 - p.percent/100)
}

type secondUnitHalfPrice struct{}

// NewSecondUnitHalfPrice returns a promotion where every second unit in a
// pair costs half; an odd leftover unit is full price.
func NewSecondUnitHalfPrice() Promotion {
	return secondUnitHalfPrice{}
}

func (secondUnitHalfPrice) Name() string { return "Second unit half price" }

func (secondUnitHalfPrice) Apply(unitPrice float64, quantity int) float64 {
	full := (quantity + 1) / 2
	half := quantity / 2
	return float64(full)*unitPrice + float64(half)*unitPrice*0.5
}

type everyThirdFree struct{}

// NewEveryThirdFree returns a promotion where every third unit is free.
func NewEveryThirdFree() Promotion {
	return everyThirdFree{}
}

func (everyThirdFree) Name() string { return "Every third free" }

func (everyThirdFree) Apply(unitPrice float64, quantity int) float64 {
	paid := quantity - quantity/3
	return float64(paid) * unitPrice
}
