package cli

import (
	"fmt"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	commoncli "github.com/twitter/tasksched/common/client"
	serrors "github.com/twitter/tasksched/common/errors"
	"github.com/twitter/tasksched/common/stats"
	"github.com/twitter/tasksched/scheduler/api"
	"github.com/twitter/tasksched/scheduler/config"
	"github.com/twitter/tasksched/scheduler/server"
)

// SchedCLIClient includes fields required for CLI client handling
type SchedCLIClient struct {
	commoncli.SimpleClient
	stopStats func()
}

func (c *SchedCLIClient) Exec() error {
	return c.RootCmd.Execute()
}

func NewSchedCLIClient() *SchedCLIClient {
	c := &SchedCLIClient{}

	c.RootCmd = &cobra.Command{
		Use:                "tasksched",
		Short:              "tasksched is a command-line driver for the load balancing task scheduler",
		PersistentPreRunE:  c.Init,
		Run:                func(*cobra.Command, []string) {},
		PersistentPostRunE: c.Close,
		SilenceUsage:       true,
	}
	flags := c.RootCmd.PersistentFlags()
	flags.StringVar(&c.ConfigSelector, "config", "default", "Scheduler configuration to use")
	flags.StringVar(&c.ConfigOverrides, "config_overrides", "", "JSON text applied on top of the selected configuration")
	flags.StringVar(&c.LogLevel, "log_level", "", "Log everything at this level and above (error|info|debug), overrides the configuration")
	flags.BoolVar(&c.RenderStats, "stats", false, "Print the scheduler stats as JSON when done")

	c.addCmd(&replayCmd{})
	c.addCmd(&showConfigCmd{})

	return c
}

// Can only be called from cobra command run or hook
func (c *SchedCLIClient) Init(cmd *cobra.Command, args []string) error {
	cfg, err := config.GetSchedulerConfig(c.ConfigSelector, []byte(c.ConfigOverrides))
	if err != nil {
		return serrors.NewExitCodeError(err, serrors.ConfigExitCode)
	}
	if c.LogLevel != "" {
		cfg.Log.Level = c.LogLevel
	}
	level, err := cfg.Log.GetLevel()
	if err != nil {
		return serrors.NewExitCodeError(err, serrors.ConfigExitCode)
	}
	log.SetLevel(level)

	schedConfig, err := cfg.Scheduler.CreateSchedulerConfig()
	if err != nil {
		return serrors.NewExitCodeError(err, serrors.ConfigExitCode)
	}
	latch, err := cfg.Stats.GetLatchInterval()
	if err != nil {
		return serrors.NewExitCodeError(err, serrors.ConfigExitCode)
	}
	if latch > 0 {
		c.Stat, c.stopStats = stats.NewLatchedStatsReceiver(latch)
	} else {
		c.Stat = stats.DefaultStatsReceiver()
	}

	c.Config = cfg
	c.Handler = api.NewHandler(server.NewStatefulScheduler(*schedConfig, c.Stat), c.Stat)
	return nil
}

// Needs cobra parameters for use from rootCmd
func (c *SchedCLIClient) Close(cmd *cobra.Command, args []string) error {
	if c.stopStats != nil {
		defer c.stopStats()
	}
	if !c.RenderStats || c.Stat == nil {
		return nil
	}
	// a latched receiver may not have ticked yet
	c.Stat.Flush()
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\n", c.Stat.Render(true)); err != nil {
		return errors.Wrap(err, "couldn't write stats")
	}
	return nil
}

func (c *SchedCLIClient) addCmd(cmd commoncli.Cmd) {
	cobraCmd := cmd.RegisterFlags()
	cobraCmd.RunE = func(innerCmd *cobra.Command, args []string) error {
		return cmd.Run(&c.SimpleClient, innerCmd, args)
	}
	c.RootCmd.AddCommand(cobraCmd)
}
