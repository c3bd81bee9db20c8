package trace

import "testing"

func TestSummarize_EmptyTrace_ZeroValues(t *testing.T) {
	// GIVEN an empty trace
	et := NewEpisodeTrace(0)

	// WHEN summarized
	summary := Summarize(et)

	// THEN all counts are zero
	if summary.Days != 0 || summary.OrderDays != 0 {
		t.Errorf("expected zero days, got %d/%d", summary.Days, summary.OrderDays)
	}
	if summary.MeanOrder != 0 || summary.MeanOnHandEnd != 0 {
		t.Error("expected zero means")
	}
}

func TestSummarize_NilTrace_ZeroValues(t *testing.T) {
	summary := Summarize(nil)
	if summary == nil {
		t.Fatal("expected non-nil summary for nil trace")
	}
	if summary.PeakOnHand != 0 {
		t.Errorf("expected 0 peak, got %d", summary.PeakOnHand)
	}
}

func TestSummarize_PopulatedTrace_CorrectCounts(t *testing.T) {
	// GIVEN a trace with orders, a stockout day and a waste day
	et := NewEpisodeTrace(7)
	et.RecordDay(DayRecord{Day: 0, Order: 10, Demand: 4, Sold: 4, OnHandEnd: 6})
	et.RecordDay(DayRecord{Day: 1, Order: 0, Demand: 10, Sold: 6, Stockout: 4, OnHandEnd: 0})
	et.RecordDay(DayRecord{Day: 2, Order: 5, Demand: 0, Wasted: 2, OnHandEnd: 3})

	// WHEN summarized
	summary := Summarize(et)

	// THEN counts reflect the records
	if summary.Days != 3 {
		t.Errorf("expected 3 days, got %d", summary.Days)
	}
	if summary.OrderDays != 2 {
		t.Errorf("expected 2 order days, got %d", summary.OrderDays)
	}
	if summary.StockoutDays != 1 {
		t.Errorf("expected 1 stockout day, got %d", summary.StockoutDays)
	}
	if summary.WasteDays != 1 {
		t.Errorf("expected 1 waste day, got %d", summary.WasteDays)
	}
	if summary.PeakOnHand != 6 {
		t.Errorf("expected peak 6, got %d", summary.PeakOnHand)
	}
	if summary.MeanOrder != 5 {
		t.Errorf("expected mean order 5, got %v", summary.MeanOrder)
	}
	if summary.MeanOnHandEnd != 3 {
		t.Errorf("expected mean on-hand 3, got %v", summary.MeanOnHandEnd)
	}
}
