package catalog

import "strconv"

// Availability is the amount of stock a product can currently sell.
// It is either a bounded unit count or unbounded (non-stocked products).
// The zero value is Bounded(0).
type Availability struct {
	units     int
	unbounded bool
}

func Bounded(units int) Availability {
	return Availability{units: units}
}

func Unbounded() Availability {
	return Availability{unbounded: true}
}

func (a Availability) IsUnbounded() bool { return a.unbounded }

// Units returns the bounded unit count; ok is false for unbounded stock.
func (a Availability) Units() (units int, ok bool) {
	if a.unbounded {
		return 0, false
	}
	return a.units, true
}

// Satisfies reports whether a request for the given quantity can be met.
// Unbounded availability satisfies every request.
func (a Availability) Satisfies(quantity int) bool {
	return a.unbounded || quantity <= a.units
}

// Add sums two availabilities, saturating to unbounded.
func (a Availability) Add(b Availability) Availability {
	if a.unbounded || b.unbounded {
		return Unbounded()
	}
	return Bounded(a.units + b.units)
}

func (a Availability) String() string {
	if a.unbounded {
		return "unbounded"
	}
	return strconv.Itoa(a.units)
}
