package config

import (
	"fmt"
	"strings"

	"github.com/gruamaster/ponto-backend-go/internal/pkg/timecalc"
	"github.com/spf13/viper"
)

// Policy holds the time-clock business rules. Every value can be overridden
// with a PONTO_ environment variable or a YAML policy file.
type Policy struct {
	ExpectedEntry        string  `mapstructure:"expected_entry"`
	LateToleranceMinutes int     `mapstructure:"late_tolerance_minutes"`
	IncompleteBelowHours float64 `mapstructure:"incomplete_below_hours"`

	ShiftReference        string  `mapstructure:"shift_reference"`
	ShiftProximityMinutes int     `mapstructure:"shift_proximity_minutes"`
	LongShiftHours        float64 `mapstructure:"long_shift_hours"`
	LongShiftEnd          string  `mapstructure:"long_shift_end"`
	ShortShiftHours       float64 `mapstructure:"short_shift_hours"`
	ShortShiftEnd         string  `mapstructure:"short_shift_end"`
	BaselineShiftHours    float64 `mapstructure:"baseline_shift_hours"`
	LegacyExitHeuristic   bool    `mapstructure:"legacy_exit_heuristic"`

	GeofenceEnabled      bool    `mapstructure:"geofence_enabled"`
	GeofenceRadiusMeters float64 `mapstructure:"geofence_radius_meters"`

	FieldRoles   []string `mapstructure:"field_roles"`
	ManagerRoles []string `mapstructure:"manager_roles"`

	ContinuousWorkBonusHours float64 `mapstructure:"continuous_work_bonus_hours"`
	AdminLevel               int     `mapstructure:"admin_level"`
}

// LoadPolicy reads the policy from defaults, the optional file at path and
// the environment, in increasing order of precedence.
func LoadPolicy(path string) (*Policy, error) {
	v := viper.New()

	v.SetDefault("expected_entry", "08:00")
	v.SetDefault("late_tolerance_minutes", 15)
	v.SetDefault("incomplete_below_hours", 7.5)
	v.SetDefault("shift_reference", "07:00")
	v.SetDefault("shift_proximity_minutes", 30)
	v.SetDefault("long_shift_hours", 10)
	v.SetDefault("long_shift_end", "17:00")
	v.SetDefault("short_shift_hours", 9)
	v.SetDefault("short_shift_end", "16:00")
	v.SetDefault("baseline_shift_hours", 8)
	v.SetDefault("legacy_exit_heuristic", false)
	v.SetDefault("geofence_enabled", false)
	v.SetDefault("geofence_radius_meters", 4000)
	v.SetDefault("field_roles", []string{"Operário", "Sinaleiro"})
	v.SetDefault("manager_roles", []string{"Supervisor", "Técnico Manutenção", "Gerente", "Coordenador"})
	v.SetDefault("continuous_work_bonus_hours", 1)
	v.SetDefault("admin_level", 10)

	v.SetEnvPrefix("PONTO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read policy file: %w", err)
		}
	}

	var p Policy
	if err := v.Unmarshal(&p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal policy: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

func (p *Policy) Validate() error {
	for name, clock := range map[string]string{
		"expected_entry":  p.ExpectedEntry,
		"shift_reference": p.ShiftReference,
		"long_shift_end":  p.LongShiftEnd,
		"short_shift_end": p.ShortShiftEnd,
	} {
		if !timecalc.IsValidClock(clock) {
			return fmt.Errorf("policy %s must be HH:MM, got %q", name, clock)
		}
	}
	if p.LateToleranceMinutes < 0 || p.ShiftProximityMinutes < 0 {
		return fmt.Errorf("policy tolerances cannot be negative")
	}
	if p.GeofenceEnabled && p.GeofenceRadiusMeters <= 0 {
		return fmt.Errorf("policy geofence_radius_meters must be positive when the geofence is enabled")
	}
	return nil
}

// Shift converts the policy into the overtime calculator's shift rules.
func (p *Policy) Shift() timecalc.ShiftPolicy {
	return timecalc.ShiftPolicy{
		Reference:           timecalc.MustMinutes(p.ShiftReference),
		Proximity:           p.ShiftProximityMinutes,
		LongHours:           p.LongShiftHours,
		LongEnd:             timecalc.MustMinutes(p.LongShiftEnd),
		ShortHours:          p.ShortShiftHours,
		ShortEnd:            timecalc.MustMinutes(p.ShortShiftEnd),
		BaselineHours:       p.BaselineShiftHours,
		LegacyExitHeuristic: p.LegacyExitHeuristic,
	}
}
