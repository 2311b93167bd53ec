package store

import (
	"errors"
	"fmt"

	"github.com/storekit/storefront/internal/domain/catalog"
)

var (
	ErrNotFound   = errors.New("store: product not found")
	ErrNilProduct = errors.New("store: product cannot be nil")
	ErrEmptyOrder = errors.New("store: order must contain at least one line")
)

// Line is one requested position of an order: a product reference and the
// quantity to buy.
type Line struct {
	Product  catalog.Product
	Quantity int
}

// RejectedError reports the first order line that failed validation. No
// product state has been mutated when it is returned. It wraps the catalog
// sentinel describing the violated rule.
type RejectedError struct {
	Line    int
	Product string
	Err     error
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("store: order rejected at line %d (%s): %v", e.Line+1, e.Product, e.Err)
}

func (e *RejectedError) Unwrap() error { return e.Err }

// PartialCommitError reports an order that failed after some lines had
// already been committed. Committed lists the charges that went through;
// the failing line's product state is untouched, earlier lines' is not.
type PartialCommitError struct {
	Committed []ReceiptLine
	Line      int
	Product   string
	Err       error
}

func (e *PartialCommitError) Error() string {
	return fmt.Sprintf("store: order failed at line %d (%s) after %d committed lines: %v",
		e.Line+1, e.Product, len(e.Committed), e.Err)
}

func (e *PartialCommitError) Unwrap() error { return e.Err }

// Store owns an ordered collection of products and executes multi-line
// orders against them. It holds shared references: listing never copies a
// product, so purchases stay visible through every reference a caller
// kept.
type Store struct {
	products []catalog.Product
}

func New(products ...catalog.Product) (*Store, error) {
	s := &Store{products: make([]catalog.Product, 0, len(products))}
	for _, p := range products {
		if err := s.Add(p); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Add appends a product to the catalog. Duplicates by value are allowed;
// products are only ever compared by identity.
func (s *Store) Add(p catalog.Product) error {
	if p == nil {
		return ErrNilProduct
	}
	s.products = append(s.products, p)
	return nil
}

// Remove deletes the given product, compared by identity.
func (s *Store) Remove(p catalog.Product) error {
	for i, existing := range s.products {
		if existing == p {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// Products returns the active products in catalog order. The slice is
// fresh but the elements are the store's own references.
func (s *Store) Products() []catalog.Product {
	active := make([]catalog.Product, 0, len(s.products))
	for _, p := range s.products {
		if p.Active() {
			active = append(active, p)
		}
	}
	return active
}

// TotalQuantity sums availability over the whole catalog. One non-stocked
// product makes the total unbounded.
func (s *Store) TotalQuantity() catalog.Availability {
	total := catalog.Bounded(0)
	for _, p := range s.products {
		total = total.Add(p.Available())
	}
	return total
}

// Order executes a multi-line order in two phases. The validation phase
// checks every line against the product's current state without mutating
// anything; the first violation aborts the whole order with a
// *RejectedError. Only when every line validates does the commit phase
// buy line by line, accumulating per-line charges into a receipt.
//
// Validation also covers the rules Buy itself enforces (non-positive
// quantities, per-order caps), so a validated order cannot fail during
// commit. Should a commit still fail, the partial result is surfaced as a
// *PartialCommitError instead of being lost.
func (s *Store) Order(lines []Line) (*Receipt, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyOrder
	}

	for i, line := range lines {
		if err := validateLine(line); err != nil {
			name := ""
			if line.Product != nil {
				name = line.Product.Name()
			}
			return nil, &RejectedError{Line: i, Product: name, Err: err}
		}
	}

	receipt := &Receipt{Lines: make([]ReceiptLine, 0, len(lines))}
	for i, line := range lines {
		charged, err := line.Product.Buy(line.Quantity)
		if err != nil {
			return nil, &PartialCommitError{
				Committed: receipt.Lines,
				Line:      i,
				Product:   line.Product.Name(),
				Err:       err,
			}
		}
		receipt.Lines = append(receipt.Lines, ReceiptLine{
			Product:  line.Product.Name(),
			Quantity: line.Quantity,
			Charged:  charged,
		})
		receipt.Total += charged
	}
	return receipt, nil
}

func validateLine(line Line) error {
	if line.Product == nil {
		return ErrNilProduct
	}
	if !line.Product.Active() {
		return catalog.ErrInactiveProduct
	}
	if line.Quantity <= 0 {
		return catalog.ErrInvalidQuantity
	}
	if capped, ok := line.Product.(interface{ MaxPerOrder() int }); ok {
		if line.Quantity > capped.MaxPerOrder() {
			return catalog.ErrOrderLimitExceeded
		}
	}
	if !line.Product.Available().Satisfies(line.Quantity) {
		return catalog.ErrInsufficientStock
	}
	return nil
}
