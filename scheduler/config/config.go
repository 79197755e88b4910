package config

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/twitter/tasksched/scheduler/server"
)

// JSONConfigs config structure holding the raw json configs
type JSONConfigs struct {
	Scheduler SchedulerJSONConfig `json:"SchedulerConfig"`
	Stats     StatsJSONConfig     `json:"Stats"`
	Log       LogJSONConfig       `json:"Log"`
}

func (c JSONConfigs) String() string {
	return fmt.Sprintf("\n%s\n%s\n%s", c.Scheduler, c.Stats, c.Log)
}

type SchedulerJSONConfig struct {
	Type                string `json:"Type"`                // scheduler type: stateful
	MaxRefinementRounds int    `json:"MaxRefinementRounds"` // default to 1000
	DefaultThreshold    int    `json:"DefaultThreshold"`    // default to 1
}

func (sc SchedulerJSONConfig) String() string {
	return fmt.Sprintf("SchedulerJSONConfig: Type: %s, MaxRefinementRounds: %d, DefaultThreshold: %d",
		sc.Type, sc.MaxRefinementRounds, sc.DefaultThreshold)
}

type StatsJSONConfig struct {
	LatchInterval string `json:"LatchInterval"` // default to 0s, no latching
}

func (s StatsJSONConfig) String() string {
	return fmt.Sprintf("StatsJSONConfig: LatchInterval: %s", s.LatchInterval)
}

// GetLatchInterval parses LatchInterval, an empty value means no latching.
func (s StatsJSONConfig) GetLatchInterval() (time.Duration, error) {
	if s.LatchInterval == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s.LatchInterval)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid stats latch interval %q", s.LatchInterval)
	}
	if d < 0 {
		return 0, errors.Errorf("invalid stats latch interval %q, must be >= 0", s.LatchInterval)
	}
	return d, nil
}

type LogJSONConfig struct {
	Level string `json:"Level"` // default to info
}

func (l LogJSONConfig) String() string {
	return fmt.Sprintf("LogJSONConfig: Level: %s", l.Level)
}

func (l LogJSONConfig) GetLevel() (log.Level, error) {
	level, err := log.ParseLevel(l.Level)
	if err != nil {
		return log.InfoLevel, errors.Wrap(err, "invalid log level")
	}
	return level, nil
}

func GetConfigText(configSelector string) ([]byte, error) {
	configText, ok := SchedulerConfigs[configSelector]
	if !ok {
		keys := make([]string, 0, len(SchedulerConfigs))
		for k := range SchedulerConfigs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return nil, errors.Errorf("invalid configuration %s, supported values are %v", configSelector, keys)
	}

	return []byte(configText), nil
}

// CreateSchedulerConfig converts the json settings to the scheduler's configuration.
func (jc *SchedulerJSONConfig) CreateSchedulerConfig() (*server.SchedulerConfig, error) {
	if jc.Type != "stateful" {
		return nil, errors.Errorf("unsupported scheduler type %q", jc.Type)
	}
	if jc.MaxRefinementRounds < 0 {
		return nil, errors.Errorf("invalid MaxRefinementRounds %d, must be >= 0", jc.MaxRefinementRounds)
	}
	if jc.DefaultThreshold <= 0 {
		return nil, errors.Errorf("invalid DefaultThreshold %d, must be > 0", jc.DefaultThreshold)
	}
	return &server.SchedulerConfig{MaxRefinementRounds: jc.MaxRefinementRounds}, nil
}

// GetSchedulerConfig returns the named configuration with overrides (json text, may be empty)
// applied on top of it. Fields left unset by both are taken from the default configuration.
func GetSchedulerConfig(configName string, overrides []byte) (*JSONConfigs, error) {
	defaultConfigText, _ := GetConfigText("default")
	defaultConfig := &JSONConfigs{}
	if err := json.Unmarshal(defaultConfigText, defaultConfig); err != nil {
		return nil, errors.Wrap(err, "couldn't parse the default config")
	}

	configText, err := GetConfigText(configName)
	if err != nil {
		return nil, err
	}
	config := &JSONConfigs{}
	if err := json.Unmarshal(configText, config); err != nil {
		return nil, errors.Wrapf(err, "couldn't parse config %s", configName)
	}
	if len(overrides) > 0 {
		if err := json.Unmarshal(overrides, config); err != nil {
			return nil, errors.Wrap(err, "couldn't parse config overrides")
		}
	}

	// use the default values for anything not set by the named config or the overrides
	if config.Scheduler.Type == "" {
		config.Scheduler.Type = defaultConfig.Scheduler.Type
	}
	if config.Scheduler.MaxRefinementRounds == 0 {
		config.Scheduler.MaxRefinementRounds = defaultConfig.Scheduler.MaxRefinementRounds
	}
	if config.Scheduler.DefaultThreshold == 0 {
		config.Scheduler.DefaultThreshold = defaultConfig.Scheduler.DefaultThreshold
	}
	if config.Stats.LatchInterval == "" {
		config.Stats.LatchInterval = defaultConfig.Stats.LatchInterval
	}
	if config.Log.Level == "" {
		config.Log.Level = defaultConfig.Log.Level
	}
	log.Debugf("using config %s:%s", configName, config)
	return config, nil
}
