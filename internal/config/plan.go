package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// PlanConfig describes the subscription plan's included order quota and
// the metered price for every order beyond it.
type PlanConfig struct {
	OrderLimit        int64   `mapstructure:"orderLimit"`
	UnitCost          float64 `mapstructure:"unitCost"`
	ChargeDescription string  `mapstructure:"chargeDescription"`
}

func DefaultPlanConfig() PlanConfig {
	return PlanConfig{
		OrderLimit:        100,
		UnitCost:          0.25,
		ChargeDescription: "Additional orders",
	}
}

// PlanConfigHolder exposes the current plan config and swaps it in place
// when the backing file changes.
type PlanConfigHolder struct {
	current atomic.Value // holds PlanConfig
}

func NewPlanConfigHolder() (*PlanConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("plan")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/shopmeter")
	v.AddConfigPath(".")

	v.SetEnvPrefix("SHOPMETER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultPlanConfig()
	v.SetDefault("plan.orderLimit", defaults.OrderLimit)
	v.SetDefault("plan.unitCost", defaults.UnitCost)
	v.SetDefault("plan.chargeDescription", defaults.ChargeDescription)

	fileFound := true
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		fileFound = false
	}

	var cfg PlanConfig
	if err := v.UnmarshalKey("plan", &cfg); err != nil {
		return nil, err
	}
	if err := validatePlanConfig(cfg); err != nil {
		return nil, err
	}

	holder := &PlanConfigHolder{}
	holder.current.Store(cfg)

	if fileFound {
		v.WatchConfig()
		v.OnConfigChange(func(e fsnotify.Event) {
			var updated PlanConfig
			if err := v.UnmarshalKey("plan", &updated); err != nil {
				log.Printf("[plan-config] reload failed: %v", err)
				return
			}
			if err := validatePlanConfig(updated); err != nil {
				log.Printf("[plan-config] invalid config ignored: %v", err)
				return
			}
			holder.current.Store(updated)
		})
	}

	return holder, nil
}

func (h *PlanConfigHolder) Current() PlanConfig {
	if h == nil {
		return DefaultPlanConfig()
	}
	if cfg, ok := h.current.Load().(PlanConfig); ok {
		return cfg
	}
	return DefaultPlanConfig()
}

// Store replaces the current plan config. Intended for tests.
func (h *PlanConfigHolder) Store(cfg PlanConfig) {
	h.current.Store(cfg)
}

func validatePlanConfig(cfg PlanConfig) error {
	if cfg.OrderLimit < 0 {
		return errors.New("plan order limit must not be negative")
	}
	if cfg.UnitCost < 0 {
		return errors.New("plan unit cost must not be negative")
	}
	if strings.TrimSpace(cfg.ChargeDescription) == "" {
		return errors.New("plan charge description is required")
	}
	return nil
}
