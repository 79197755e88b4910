package main

import (
	"os"

	log "github.com/sirupsen/logrus"

	serrors "github.com/twitter/tasksched/common/errors"
	"github.com/twitter/tasksched/common/log/hooks"
	"github.com/twitter/tasksched/scheduler/client/cli"
)

// CLI binary driving an in-process task scheduler
//	Supported commands: (see "-h" for all options)
//		replay [script]
//		show_config
//	Global flags:
//		--config [name of the scheduler configuration]
//		--config_overrides [json applied on top of the configuration]
//		--log_level [<error|info|debug> level and above should be logged]
//		--stats [print stats as json when done]

func main() {
	// replay output goes to stdout, only problems need a source location
	log.AddHook(hooks.NewContextHookForLevels(log.PanicLevel, log.FatalLevel, log.ErrorLevel, log.WarnLevel))

	if err := cli.NewSchedCLIClient().Exec(); err != nil {
		log.Errorf("Error running tasksched: %v", err)
		os.Exit(int(serrors.ExitCodeFor(err)))
	}
}
