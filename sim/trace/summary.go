package trace

// TraceSummary aggregates statistics from an EpisodeTrace.
type TraceSummary struct {
	Days          int
	OrderDays     int     // days with a positive order
	MeanOrder     float64 // mean order quantity over all days
	StockoutDays  int     // days with any lost demand
	WasteDays     int     // days with any expired stock
	PeakOnHand    int
	MeanOnHandEnd float64
}

// Summarize computes aggregate statistics from an EpisodeTrace.
// Warm-up days are included; the trace records what happened, not what was scored.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(et *EpisodeTrace) *TraceSummary {
	summary := &TraceSummary{}
	if et == nil || len(et.Days) == 0 {
		return summary
	}

	totalOrder, totalOnHand := 0, 0
	for _, d := range et.Days {
		totalOrder += d.Order
		totalOnHand += d.OnHandEnd
		if d.Order > 0 {
			summary.OrderDays++
		}
		if d.Stockout > 0 {
			summary.StockoutDays++
		}
		if d.Wasted > 0 {
			summary.WasteDays++
		}
		if d.OnHandEnd > summary.PeakOnHand {
			summary.PeakOnHand = d.OnHandEnd
		}
	}
	summary.Days = len(et.Days)
	summary.MeanOrder = float64(totalOrder) / float64(len(et.Days))
	summary.MeanOnHandEnd = float64(totalOnHand) / float64(len(et.Days))
	return summary
}
