package search

import "fmt"

// Config defines the cost weighting and budgets applied to every search.
type Config struct {
	// TimeWeight and EnergyWeight combine travel time (seconds) and energy
	// (kWh) into the scalar cost ordering the frontier.
	TimeWeight   float64 `json:"time_weight"`
	EnergyWeight float64 `json:"energy_weight"`
	// EnergyResolutionKWh quantizes remaining energy to keep the state
	// space finite.
	EnergyResolutionKWh float64 `json:"energy_resolution_kwh"`
	// ExpansionBudget bounds the number of state expansions per search.
	ExpansionBudget int `json:"expansion_budget"`
	// TimeoutSeconds bounds the wall-clock time of each strategy variant.
	TimeoutSeconds int `json:"timeout_seconds"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.TimeWeight == 0 && c.EnergyWeight == 0 {
		c.TimeWeight = 1
	}
	if c.EnergyResolutionKWh == 0 {
		c.EnergyResolutionKWh = 0.1
	}
	if c.ExpansionBudget == 0 {
		c.ExpansionBudget = 200000
	}
	if c.TimeoutSeconds == 0 {
		c.TimeoutSeconds = 10
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if c.TimeWeight < 0 || c.EnergyWeight < 0 {
		return fmt.Errorf("cost weights must be non-negative")
	}
	if c.TimeWeight == 0 && c.EnergyWeight == 0 {
		return fmt.Errorf("at least one cost weight must be positive")
	}
	if c.EnergyResolutionKWh <= 0 {
		return fmt.Errorf("energy resolution must be positive")
	}
	if c.ExpansionBudget <= 0 {
		return fmt.Errorf("expansion budget must be positive")
	}
	return nil
}
