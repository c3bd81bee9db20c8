// Package sim provides the core perishable-inventory simulation engine.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - state.go: InventoryState (age buckets, pipeline, demand history) and the Step transition
//   - episode.go: The day loop that wires a demand generator and a policy into Step
//   - stats.go: Poisson sampling and the normal-approximation quantile used by every policy
//
// # Architecture
//
// The sim package defines interfaces and value types; implementations live in
// sub-packages:
//   - sim/policy/: Base-stock replenishment policies and their name registry
//   - sim/demand/: Stochastic daily demand generators
//   - sim/trace/: Per-day step recording
//   - sim/experiment/: Config-driven multi-seed batch runner and cross-seed aggregation
//
// Each day runs in a fixed order: draw demand, ask the policy for an order
// against the pre-transition state, then Step (receive, age, sell
// oldest-first, charge costs).
//
// # Key Interfaces
//
// The extension points are single-method interfaces:
//   - DemandGenerator: demand for a day index, drawn from a per-episode random stream
//   - Policy: order quantity given the current state
//
// Randomness is partitioned per subsystem (see rng.go) so that a seed
// reproduces the same demand sequence regardless of what else draws.
package sim
