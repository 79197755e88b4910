package cli

/**
implements the command line entry for the replay command
*/

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/twitter/tasksched/common/client"
	serrors "github.com/twitter/tasksched/common/errors"
	"github.com/twitter/tasksched/scheduler/api"
	"github.com/twitter/tasksched/scheduler/domain"
)

type replayCmd struct {
	verbose bool
}

func (c *replayCmd) RegisterFlags() *cobra.Command {
	r := &cobra.Command{
		Use:   "replay [script]",
		Short: "Runs a script of scheduler operations, read from stdin when no file is given",
		Args:  cobra.MaximumNArgs(1),
	}
	r.Flags().BoolVar(&c.verbose, "verbose", false, "Print the description of every return code and the plan details")
	return r
}

func (c *replayCmd) Run(cl *client.SimpleClient, cmd *cobra.Command, args []string) error {
	in := cmd.InOrStdin()
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return serrors.NewExitCodeError(errors.Wrap(err, "couldn't open script"), serrors.BadScriptExitCode)
		}
		defer f.Close()
		in = f
	}

	ops, err := parseScript(in)
	if err != nil {
		return err
	}
	log.Debugf("replaying %d operations", len(ops))

	out := cmd.OutOrStdout()
	for _, op := range ops {
		c.runOp(cl, out, op)
	}
	return nil
}

func (c *replayCmd) runOp(cl *client.SimpleClient, out io.Writer, op scriptOp) {
	h := cl.Handler
	var code api.ReturnCode
	var detail string

	switch op.name {
	case "init":
		code = h.Init()
	case "register":
		code = h.RegisterNode(op.args[0])
	case "unregister":
		code = h.UnregisterNode(op.args[0])
	case "add":
		code = h.AddTask(op.args[0], op.args[1])
	case "delete":
		code = h.DeleteTask(op.args[0])
	case "schedule":
		threshold := cl.Config.Scheduler.DefaultThreshold
		if len(op.args) == 1 {
			threshold = op.args[0]
		}
		var result fmt.Stringer
		code, result = scheduleResult(h, threshold)
		if c.verbose && result != nil {
			detail = result.String()
		}
	case "query":
		tasks := []domain.TaskInfo{}
		code = h.QueryTaskStatus(&tasks)
		detail = formatTaskInfos(tasks)
	case "loads":
		code = api.QueryOk
		detail = formatLoads(h.NodeLoads())
	}

	line := fmt.Sprintf("%d %s %s", op.line, op.name, code)
	if c.verbose {
		line += " (" + code.Description() + ")"
	}
	if detail != "" {
		line += " " + detail
	}
	fmt.Fprintln(out, line)
}

// scheduleResult avoids returning a typed nil as a non-nil fmt.Stringer.
func scheduleResult(h *api.Handler, threshold int) (api.ReturnCode, fmt.Stringer) {
	code, result := h.ScheduleTask(threshold)
	if result == nil {
		return code, nil
	}
	return code, result
}

func formatTaskInfos(tasks []domain.TaskInfo) string {
	parts := make([]string, len(tasks))
	for i, t := range tasks {
		parts[i] = t.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func formatLoads(loads []domain.NodeLoad) string {
	parts := make([]string, len(loads))
	for i, l := range loads {
		parts[i] = "{" + l.String() + "}"
	}
	return "[" + strings.Join(parts, " ") + "]"
}
