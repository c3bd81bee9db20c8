// Package experiment is the config-driven batch runner: it resolves an
// experiment config into a demand model, a policy and a SimConfig, runs one
// episode per seed and writes one JSON record per seed.
package experiment

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/freshstock/freshsim/sim"
	"github.com/freshstock/freshsim/sim/demand"
	"github.com/freshstock/freshsim/sim/policy"
)

// Config is the top-level experiment configuration, loaded from YAML or JSON.
type Config struct {
	HorizonDays   int         `json:"horizon_days" yaml:"horizon_days" validate:"gt=0"`
	WarmupDays    int         `json:"warmup_days" yaml:"warmup_days" validate:"gte=0,ltfield=HorizonDays"`
	ShelfLifeDays int         `json:"shelf_life_days" yaml:"shelf_life_days" validate:"gt=0"`
	LeadTimeDays  int         `json:"lead_time_days" yaml:"lead_time_days" validate:"gte=0"`
	Costs         CostsSpec   `json:"costs" yaml:"costs"`
	DemandModel   demand.Spec `json:"demand_model" yaml:"demand_model"`
	Policy        PolicySpec  `json:"policy" yaml:"policy"`
}

// CostsSpec is the costs section.
type CostsSpec struct {
	WasteCost    float64 `json:"waste_cost" yaml:"waste_cost" validate:"gte=0"`
	StockoutCost float64 `json:"stockout_cost" yaml:"stockout_cost" validate:"gte=0"`
	HoldingCost  float64 `json:"holding_cost" yaml:"holding_cost" validate:"gte=0"`
}

// PolicySpec is the policy section: a registry name plus its parameters.
type PolicySpec struct {
	Name               string  `json:"name" yaml:"name"`
	ServiceLevelTarget float64 `json:"service_level_target" yaml:"service_level_target" validate:"gt=0,lt=1"`
	HistoryWindow      int     `json:"history_window" yaml:"history_window" validate:"gt=0"`
	EWMAAlpha          float64 `json:"ewma_alpha" yaml:"ewma_alpha" validate:"gte=0,lte=1"`
	ResidualWindow     int     `json:"residual_window" yaml:"residual_window" validate:"gt=0"`
}

// DefaultConfig returns the configuration used for every field a file omits.
func DefaultConfig() Config {
	sc := sim.DefaultSimConfig()
	pc := policy.DefaultConfig()
	return Config{
		HorizonDays:   sc.HorizonDays,
		WarmupDays:    sc.WarmupDays,
		ShelfLifeDays: sc.ShelfLifeDays,
		LeadTimeDays:  sc.LeadTimeDays,
		Costs: CostsSpec{
			WasteCost:    sc.Costs.WasteCost,
			StockoutCost: sc.Costs.StockoutCost,
			HoldingCost:  sc.Costs.HoldingCost,
		},
		DemandModel: demand.Spec{Type: demand.TypePoissonDrift},
		Policy: PolicySpec{
			Name:               policy.DefaultName,
			ServiceLevelTarget: pc.ServiceLevelTarget,
			HistoryWindow:      pc.HistoryWindow,
			EWMAAlpha:          pc.EWMAAlpha,
			ResidualWindow:     pc.ResidualWindow,
		},
	}
}

// SimConfig returns the resolved engine configuration.
func (c Config) SimConfig() sim.SimConfig {
	return sim.SimConfig{
		HorizonDays:   c.HorizonDays,
		WarmupDays:    c.WarmupDays,
		ShelfLifeDays: c.ShelfLifeDays,
		LeadTimeDays:  c.LeadTimeDays,
		Costs: sim.Costs{
			WasteCost:    c.Costs.WasteCost,
			StockoutCost: c.Costs.StockoutCost,
			HoldingCost:  c.Costs.HoldingCost,
		},
	}
}

// PolicyConfig returns the parameters handed to policy.New.
func (p PolicySpec) PolicyConfig() policy.Config {
	return policy.Config{
		ServiceLevelTarget: p.ServiceLevelTarget,
		HistoryWindow:      p.HistoryWindow,
		EWMAAlpha:          p.EWMAAlpha,
		ResidualWindow:     p.ResidualWindow,
	}
}

// LoadConfig reads an experiment file. Keys missing from the file keep their
// DefaultConfig values. Uses strict parsing: unrecognized keys (typos) are
// rejected. JSON files are accepted since JSON is valid YAML.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading experiment config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes config bytes on top of DefaultConfig.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parsing experiment config: %w", err)
	}
	cfg.DemandModel.Type = strings.TrimSpace(cfg.DemandModel.Type)
	cfg.Policy.Name = strings.TrimSpace(cfg.Policy.Name)
	if cfg.DemandModel.Type == "" {
		cfg.DemandModel.Type = demand.TypePoissonDrift
	}
	if cfg.Policy.Name == "" {
		cfg.Policy.Name = policy.DefaultName
	}
	return cfg, nil
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	// Report fields by their config key rather than the Go field name.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Validate checks ranges, then the demand model, then the policy name.
// Range violations yield a *sim.ConfigError; unknown demand types or policy
// names a *sim.VariantError.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			field := strings.TrimPrefix(fe.Namespace(), "Config.")
			return &sim.ConfigError{
				Field:  field,
				Reason: fmt.Sprintf("violates %s%s, got %v", fe.Tag(), paramSuffix(fe.Param()), fe.Value()),
			}
		}
		return &sim.ConfigError{Field: "config", Reason: err.Error()}
	}
	if err := c.DemandModel.Validate(); err != nil {
		return err
	}
	if !policy.IsValidName(c.Policy.Name) {
		return &sim.VariantError{Kind: "policy.name", Value: c.Policy.Name, Valid: policy.Names()}
	}
	return nil
}

func paramSuffix(param string) string {
	if param == "" {
		return ""
	}
	return "=" + param
}
