package checkout

// IDGenerator issues identifiers for receipts.
type IDGenerator interface {
	NewID() string
}
