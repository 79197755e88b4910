package config

import (
	"fmt"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

// Tests to ensure config is properly specified
// and that they parse correctly
func TestGettingConfigurations(t *testing.T) {
	for configSelector := range SchedulerConfigs {
		config, err := GetSchedulerConfig(configSelector, nil)
		assert.Nil(t, err, fmt.Sprintf("error getting scheduler config %s: %s", configSelector, err))
		_, err = config.Scheduler.CreateSchedulerConfig()
		assert.Nil(t, err, configSelector)
		_, err = config.Stats.GetLatchInterval()
		assert.Nil(t, err, configSelector)
		_, err = config.Log.GetLevel()
		assert.Nil(t, err, configSelector)
	}

	selector := "invalid.selector"
	config, err := GetSchedulerConfig(selector, nil)
	assert.NotNil(t, err, fmt.Sprintf("configuration returned for %s: %s", selector, config))
	assert.Contains(t, err.Error(), "[default local.debug local.strict]")
}

// TestFillingDefaults checks that unset fields come from the default config.
func TestFillingDefaults(t *testing.T) {
	config, err := GetSchedulerConfig("local.debug", nil)
	assert.Nil(t, err)
	assert.Equal(t, "stateful", config.Scheduler.Type)
	assert.Equal(t, 1000, config.Scheduler.MaxRefinementRounds)
	assert.Equal(t, 1, config.Scheduler.DefaultThreshold)
	assert.Equal(t, "0s", config.Stats.LatchInterval)

	level, err := config.Log.GetLevel()
	assert.Nil(t, err)
	assert.Equal(t, log.DebugLevel, level)

	config, err = GetSchedulerConfig("local.strict", nil)
	assert.Nil(t, err)
	assert.Equal(t, 50, config.Scheduler.MaxRefinementRounds)
	assert.Equal(t, "info", config.Log.Level)
	latch, err := config.Stats.GetLatchInterval()
	assert.Nil(t, err)
	assert.Equal(t, time.Second, latch)
}

func TestOverrides(t *testing.T) {
	overrides := []byte(`{"SchedulerConfig": {"DefaultThreshold": 7}, "Log": {"Level": "warn"}}`)
	config, err := GetSchedulerConfig("local.strict", overrides)
	assert.Nil(t, err)
	assert.Equal(t, 7, config.Scheduler.DefaultThreshold)
	assert.Equal(t, 50, config.Scheduler.MaxRefinementRounds)
	assert.Equal(t, "warn", config.Log.Level)

	_, err = GetSchedulerConfig("default", []byte(`{"SchedulerConfig": `))
	assert.NotNil(t, err)
}

func TestCreateSchedulerConfig(t *testing.T) {
	jc := &SchedulerJSONConfig{Type: "stateful", MaxRefinementRounds: 12, DefaultThreshold: 3}
	sc, err := jc.CreateSchedulerConfig()
	assert.Nil(t, err)
	assert.Equal(t, 12, sc.MaxRefinementRounds)

	for _, bad := range []SchedulerJSONConfig{
		{Type: "other", DefaultThreshold: 1},
		{Type: "stateful", MaxRefinementRounds: -1, DefaultThreshold: 1},
		{Type: "stateful", DefaultThreshold: -2},
	} {
		_, err := bad.CreateSchedulerConfig()
		assert.NotNil(t, err, bad.String())
	}
}

func TestInvalidValues(t *testing.T) {
	_, err := StatsJSONConfig{LatchInterval: "soon"}.GetLatchInterval()
	assert.NotNil(t, err)
	_, err = StatsJSONConfig{LatchInterval: "-1s"}.GetLatchInterval()
	assert.NotNil(t, err)
	d, err := StatsJSONConfig{}.GetLatchInterval()
	assert.Nil(t, err)
	assert.Equal(t, time.Duration(0), d)

	_, err = LogJSONConfig{Level: "loud"}.GetLevel()
	assert.NotNil(t, err)
}
