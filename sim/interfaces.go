package sim

// Policy maps the current inventory state to an order quantity.
// Implementations live in sim/policy. They must be pure functions of the
// state: no mutable fields, safe to share across concurrently running seeds.
type Policy interface {
	// Name returns the registry name, e.g. "cq_base_stock".
	Name() string
	// Decide returns a non-negative order quantity.
	Decide(state InventoryState) int
}

// DemandGenerator produces the realized demand for each simulated day.
// Implementations live in sim/demand. A generator owns its random stream and
// is used by exactly one episode.
type DemandGenerator interface {
	// Demand returns the non-negative demand for day index t. Called exactly
	// once per day, in increasing day order.
	Demand(t int) int
}
