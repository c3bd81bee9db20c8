package sim

import "fmt"

// MaxDemandHistory caps InventoryState.DemandHistory (sliding window).
const MaxDemandHistory = 365

// InventoryState is one day's stock snapshot. It is treated as an immutable
// value: Step never writes into the slices of its input state.
//
// Lifecycle: NewInventoryState (all zero) → Step once per day → discarded at
// episode end.
type InventoryState struct {
	Day int
	// OnHandByAge has one bucket per shelf-life day. Index 0 is the oldest
	// stock (wasted at the next aging step), the last index is the freshest.
	OnHandByAge []int
	// Pipeline has one slot per lead-time day. Index 0 arrives on the next
	// transition. Empty when lead time is zero.
	Pipeline []int
	// DemandHistory holds realized demand, most recent last.
	DemandHistory []int
}

// NewInventoryState returns the empty start-of-episode state.
func NewInventoryState(shelfLife, leadTime int) InventoryState {
	return InventoryState{
		OnHandByAge:   make([]int, shelfLife),
		Pipeline:      make([]int, max(0, leadTime)),
		DemandHistory: []int{},
	}
}

// OnHandTotal returns the sum of all age buckets.
func (s InventoryState) OnHandTotal() int {
	total := 0
	for _, q := range s.OnHandByAge {
		total += q
	}
	return total
}

// PipelineTotal returns the quantity ordered but not yet received.
func (s InventoryState) PipelineTotal() int {
	total := 0
	for _, q := range s.Pipeline {
		total += q
	}
	return total
}

// InventoryPosition is on-hand plus in-transit stock.
func (s InventoryState) InventoryPosition() int {
	return s.OnHandTotal() + s.PipelineTotal()
}

// PipelineHead returns the quantity arriving on the next transition.
func (s InventoryState) PipelineHead() int {
	if len(s.Pipeline) == 0 {
		return 0
	}
	return s.Pipeline[0]
}

// StepMetrics is the immutable per-day outcome of a transition.
type StepMetrics struct {
	Demand       int
	Received     int
	Sold         int
	Stockout     int
	Wasted       int
	OnHandEnd    int
	HoldingCost  float64
	WasteCost    float64
	StockoutCost float64
}

// TotalCost returns the sum of the three cost components.
func (m StepMetrics) TotalCost() float64 {
	return m.HoldingCost + m.WasteCost + m.StockoutCost
}

// Step applies one day's transition and returns the next state.
//
// Order of operations: receive (pipeline head, or the order itself when
// leadTime is 0), age (bucket 0 is wasted before today's receipt is shelved
// and before any sale), sell oldest-first with lost sales, charge costs, and
// append demand to history. A negative orderQty is clamped to zero; negative
// demand is treated as zero.
//
// A state whose bucket or pipeline length disagrees with shelfLife/leadTime
// yields a *StateError wrapping ErrInvalidState.
func Step(state InventoryState, demand, orderQty, shelfLife, leadTime int, costs Costs) (InventoryState, StepMetrics, error) {
	if len(state.OnHandByAge) != shelfLife {
		return InventoryState{}, StepMetrics{}, &StateError{
			Day:    state.Day,
			Reason: fmt.Sprintf("on_hand_by_age has %d buckets, shelf life is %d", len(state.OnHandByAge), shelfLife),
		}
	}
	if leadTime < 0 || len(state.Pipeline) != leadTime {
		return InventoryState{}, StepMetrics{}, &StateError{
			Day:    state.Day,
			Reason: fmt.Sprintf("pipeline has %d slots, lead time is %d", len(state.Pipeline), leadTime),
		}
	}
	order := max(0, orderQty)
	demand = max(0, demand)

	// Receive.
	var received int
	var pipeline []int
	if leadTime > 0 {
		received = state.Pipeline[0]
		pipeline = make([]int, leadTime)
		copy(pipeline, state.Pipeline[1:])
		pipeline[leadTime-1] = order
	} else {
		received = order
		pipeline = []int{}
	}

	// Age.
	wasted := state.OnHandByAge[0]
	buckets := make([]int, shelfLife)
	copy(buckets, state.OnHandByAge[1:])
	buckets[shelfLife-1] += received

	// Sell oldest-first.
	remaining := demand
	sold := 0
	for i := 0; i < shelfLife && remaining > 0; i++ {
		take := min(buckets[i], remaining)
		buckets[i] -= take
		remaining -= take
		sold += take
	}
	stockout := remaining

	onHandEnd := 0
	for _, q := range buckets {
		onHandEnd += q
	}

	next := InventoryState{
		Day:           state.Day + 1,
		OnHandByAge:   buckets,
		Pipeline:      pipeline,
		DemandHistory: appendHistory(state.DemandHistory, demand),
	}
	metrics := StepMetrics{
		Demand:       demand,
		Received:     received,
		Sold:         sold,
		Stockout:     stockout,
		Wasted:       wasted,
		OnHandEnd:    onHandEnd,
		HoldingCost:  costs.HoldingCost * float64(onHandEnd),
		WasteCost:    costs.WasteCost * float64(wasted),
		StockoutCost: costs.StockoutCost * float64(stockout),
	}
	return next, metrics, nil
}

// appendHistory returns a new slice holding history plus d, trimmed to the
// most recent MaxDemandHistory entries.
func appendHistory(history []int, d int) []int {
	start := 0
	if len(history)+1 > MaxDemandHistory {
		start = len(history) + 1 - MaxDemandHistory
	}
	out := make([]int, 0, len(history)-start+1)
	out = append(out, history[start:]...)
	return append(out, d)
}
