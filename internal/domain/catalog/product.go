package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/storekit/storefront/internal/domain/pricing"
)

var (
	ErrEmptyName          = errors.New("catalog: product name cannot be empty")
	ErrNegativePrice      = errors.New("catalog: price cannot be negative")
	ErrNegativeQuantity   = errors.New("catalog: quantity cannot be negative")
	ErrInvalidMaximum     = errors.New("catalog: maximum per order must be greater than zero")
	ErrInactiveProduct    = errors.New("catalog: product is inactive")
	ErrInvalidQuantity    = errors.New("catalog: quantity must be greater than zero")
	ErrInsufficientStock  = errors.New("catalog: insufficient stock")
	ErrOrderLimitExceeded = errors.New("catalog: quantity exceeds the per-order limit")
)

// Product is a sellable catalog entry. Implementations form a closed set:
// Standard (finite stock), NonStocked (unbounded stock) and Limited
// (finite stock with a per-order cap). Products are identified by
// reference; callers hold the same pointer the store does, so mutations
// through Buy are visible everywhere.
type Product interface {
	Name() string
	UnitPrice() float64
	Active() bool
	Activate()
	Deactivate()
	Promotion() pricing.Promotion
	SetPromotion(p pricing.Promotion)
	// Available reflects the current stock state, never a cached value.
	Available() Availability
	// Buy charges for quantity units, applying the attached promotion if
	// any, and decrements tracked stock. It returns the charged total.
	Buy(quantity int) (float64, error)
	// Describe renders a one-line, side-effect-free summary for display.
	Describe() string
}

// base carries the state shared by every product variant. Variants embed
// it and keep their own stock bookkeeping.
type base struct {
	name   string
	price  float64
	promo  pricing.Promotion
	active bool
}

func newBase(name string, price float64) (base, error) {
	if strings.TrimSpace(name) == "" {
		return base{}, ErrEmptyName
	}
	if price < 0 {
		return base{}, ErrNegativePrice
	}
	return base{name: name, price: price, active: true}, nil
}

func (b *base) Name() string                 { return b.name }
func (b *base) UnitPrice() float64           { return b.price }
func (b *base) Active() bool                 { return b.active }
func (b *base) Activate()                    { b.active = true }
func (b *base) Deactivate()                  { b.active = false }
func (b *base) Promotion() pricing.Promotion { return b.promo }

// SetPromotion attaches a promotion, replacing any previous one. A nil
// promotion detaches.
func (b *base) SetPromotion(p pricing.Promotion) { b.promo = p }

func (b *base) checkPurchase(quantity int) error {
	if !b.active {
		return ErrInactiveProduct
	}
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	return nil
}

func (b *base) charge(quantity int) float64 {
	if b.promo != nil {
		return b.promo.Apply(b.price, quantity)
	}
	return b.price * float64(quantity)
}

func (b *base) promoSuffix() string {
	if b.promo == nil {
		return ""
	}
	return ", Promotion: " + b.promo.Name()
}

// Standard is a product with finite stock. Stock is decremented on every
// purchase; the product deactivates itself when stock reaches zero.
type Standard struct {
	base
	units int
}

func NewStandard(name string, price float64, quantity int) (*Standard, error) {
	b, err := newBase(name, price)
	if err != nil {
		return nil, err
	}
	if quantity < 0 {
		return nil, ErrNegativeQuantity
	}
	s := &Standard{base: b, units: quantity}
	if quantity == 0 {
		s.Deactivate()
	}
	return s, nil
}

func (s *Standard) Available() Availability { return Bounded(s.units) }

// SetQuantity replaces the stock level; a product restocked to zero is
// deactivated.
func (s *Standard) SetQuantity(quantity int) error {
	if quantity < 0 {
		return ErrNegativeQuantity
	}
	s.units = quantity
	if s.units == 0 {
		s.Deactivate()
	}
	return nil
}

func (s *Standard) Buy(quantity int) (float64, error) {
	if err := s.checkPurchase(quantity); err != nil {
		return 0, err
	}
	if quantity > s.units {
		return 0, ErrInsufficientStock
	}
	total := s.charge(quantity)
	s.units -= quantity
	if s.units <= 0 {
		s.Deactivate()
	}
	return total, nil
}

func (s *Standard) Describe() string {
	return fmt.Sprintf("%s, Price: %g, Quantity: %d%s", s.name, s.price, s.units, s.promoSuffix())
}

// NonStocked is a product that is never exhausted, e.g. a software
// license. Purchases charge normally but never touch stock and never
// deactivate the product.
type NonStocked struct {
	base
}

func NewNonStocked(name string, price float64) (*NonStocked, error) {
	b, err := newBase(name, price)
	if err != nil {
		return nil, err
	}
	return &NonStocked{base: b}, nil
}

func (n *NonStocked) Available() Availability { return Unbounded() }

func (n *NonStocked) Buy(quantity int) (float64, error) {
	if err := n.checkPurchase(quantity); err != nil {
		return 0, err
	}
	return n.charge(quantity), nil
}

func (n *NonStocked) Describe() string {
	return fmt.Sprintf("%s, Price: %g, Quantity: unbounded%s", n.name, n.price, n.promoSuffix())
}

// Limited is a Standard product with a cap on how many units a single
// purchase may take, regardless of available stock.
type Limited struct {
	Standard
	maxPerOrder int
}

func NewLimited(name string, price float64, quantity, maxPerOrder int) (*Limited, error) {
	std, err := NewStandard(name, price, quantity)
	if err != nil {
		return nil, err
	}
	if maxPerOrder <= 0 {
		return nil, ErrInvalidMaximum
	}
	return &Limited{Standard: *std, maxPerOrder: maxPerOrder}, nil
}

func (l *Limited) MaxPerOrder() int { return l.maxPerOrder }

// Buy enforces the per-order cap before the stock check.
func (l *Limited) Buy(quantity int) (float64, error) {
	if err := l.checkPurchase(quantity); err != nil {
		return 0, err
	}
	if quantity > l.maxPerOrder {
		return 0, ErrOrderLimitExceeded
	}
	return l.Standard.Buy(quantity)
}

func (l *Limited) Describe() string {
	return fmt.Sprintf("%s, Price: %g, Quantity: %d, Max per order: %d%s",
		l.name, l.price, l.units, l.maxPerOrder, l.promoSuffix())
}
