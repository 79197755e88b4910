package config

// SchedulerConfigs the map of available configurations
var SchedulerConfigs = map[string]string{
	"default":      defaultConfig,
	"local.debug":  localDebug,
	"local.strict": localStrict,
}

// defaultConfig the configuration values used for unset fields of a specific configuration
const defaultConfig = `{
	"SchedulerConfig": {
		"Type": "stateful",
		"MaxRefinementRounds": 1000,
		"DefaultThreshold": 1
	},
	"Stats": {
		"LatchInterval": "0s"
	},
	"Log": {
		"Level": "info"
	}
}`

// localDebug logs every registry mutation and plan
const localDebug = `{
	"Log": {
		"Level": "debug"
	}
}`

// localStrict keeps refinement short and requires perfectly balanced plans by default
const localStrict = `{
	"SchedulerConfig": {
		"MaxRefinementRounds": 50,
		"DefaultThreshold": 1
	},
	"Stats": {
		"LatchInterval": "1s"
	}
}`
