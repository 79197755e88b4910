package client

import (
	"github.com/spf13/cobra"

	"github.com/twitter/tasksched/common/stats"
	"github.com/twitter/tasksched/scheduler/api"
	"github.com/twitter/tasksched/scheduler/config"
)

// Client interface that includes CLI handling
type CLIClient interface {
	Exec() error
}

// SimpleClient includes base fields required for implementing client
type SimpleClient struct {
	RootCmd         *cobra.Command
	ConfigSelector  string
	ConfigOverrides string
	LogLevel        string
	RenderStats     bool

	// set by the root command before any subcommand runs
	Config  *config.JSONConfigs
	Handler *api.Handler
	Stat    stats.StatsReceiver
}

// Command interface used to run client commands
type Cmd interface {
	RegisterFlags() *cobra.Command
	Run(cl *SimpleClient, cmd *cobra.Command, args []string) error
}
