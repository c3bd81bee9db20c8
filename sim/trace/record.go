package trace

// DayRecord captures one simulated day: the order decision and its outcome.
type DayRecord struct {
	Day       int
	Order     int
	Demand    int
	Received  int
	Sold      int
	Stockout  int
	Wasted    int
	OnHandEnd int
	Cost      float64
	Warmup    bool // day falls inside the warm-up window (excluded from totals)
}
