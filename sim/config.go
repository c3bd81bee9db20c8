package sim

// Costs groups the linear unit costs charged each simulated day.
type Costs struct {
	WasteCost    float64 `json:"waste_cost" yaml:"waste_cost"`       // per unit expired
	StockoutCost float64 `json:"stockout_cost" yaml:"stockout_cost"` // per unit of lost demand
	HoldingCost  float64 `json:"holding_cost" yaml:"holding_cost"`   // per unit on hand at end of day
}

// DefaultCosts returns the cost parameters used when a config omits them.
func DefaultCosts() Costs {
	return Costs{WasteCost: 1.0, StockoutCost: 3.0, HoldingCost: 0.05}
}

// SimConfig fixes the episode shape. Constructed once per experiment and
// shared read-only across seeds.
type SimConfig struct {
	HorizonDays   int   `json:"horizon_days" yaml:"horizon_days"`       // days simulated (must be > 0)
	WarmupDays    int   `json:"warmup_days" yaml:"warmup_days"`         // leading days excluded from totals
	ShelfLifeDays int   `json:"shelf_life_days" yaml:"shelf_life_days"` // number of age buckets (must be > 0)
	LeadTimeDays  int   `json:"lead_time_days" yaml:"lead_time_days"`   // pipeline length (0 = immediate receipt)
	Costs         Costs `json:"costs" yaml:"costs"`
}

// DefaultSimConfig returns the defaults applied to an empty experiment config.
func DefaultSimConfig() SimConfig {
	return SimConfig{
		HorizonDays:   180,
		WarmupDays:    30,
		ShelfLifeDays: 7,
		LeadTimeDays:  1,
		Costs:         DefaultCosts(),
	}
}

// Validate checks the structural invariants the state machine relies on.
// Returns a *ConfigError for the first violated field.
func (c SimConfig) Validate() error {
	if c.HorizonDays <= 0 {
		return NewConfigError("horizon_days", "must be positive, got %d", c.HorizonDays)
	}
	if c.WarmupDays < 0 || c.WarmupDays >= c.HorizonDays {
		return NewConfigError("warmup_days", "must be in [0, horizon_days), got %d", c.WarmupDays)
	}
	if c.ShelfLifeDays <= 0 {
		return NewConfigError("shelf_life_days", "must be positive, got %d", c.ShelfLifeDays)
	}
	if c.LeadTimeDays < 0 {
		return NewConfigError("lead_time_days", "must be non-negative, got %d", c.LeadTimeDays)
	}
	if c.Costs.WasteCost < 0 {
		return NewConfigError("costs.waste_cost", "must be non-negative, got %v", c.Costs.WasteCost)
	}
	if c.Costs.StockoutCost < 0 {
		return NewConfigError("costs.stockout_cost", "must be non-negative, got %v", c.Costs.StockoutCost)
	}
	if c.Costs.HoldingCost < 0 {
		return NewConfigError("costs.holding_cost", "must be non-negative, got %v", c.Costs.HoldingCost)
	}
	return nil
}
