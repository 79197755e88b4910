package cli

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	serrors "github.com/twitter/tasksched/common/errors"
)

// scriptOp is one line of a replay script.
type scriptOp struct {
	line int
	name string
	args []int
}

// number of integer arguments accepted by every operation, min and max
var opArity = map[string][2]int{
	"init":       {0, 0},
	"register":   {1, 1},
	"unregister": {1, 1},
	"add":        {2, 2},
	"delete":     {1, 1},
	"schedule":   {0, 1},
	"query":      {0, 0},
	"loads":      {0, 0},
}

// parseScript reads one operation per line. Blank lines and lines starting with '#' are
// skipped. Any malformed line fails the whole script before anything runs.
func parseScript(r io.Reader) ([]scriptOp, error) {
	ops := []scriptOp{}
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		op, err := parseOp(lineNum, fields)
		if err != nil {
			return nil, serrors.NewExitCodeError(err, serrors.BadScriptExitCode)
		}
		ops = append(ops, op)
	}
	if err := scanner.Err(); err != nil {
		return nil, serrors.NewExitCodeError(errors.Wrap(err, "couldn't read script"), serrors.BadScriptExitCode)
	}
	return ops, nil
}

func parseOp(lineNum int, fields []string) (scriptOp, error) {
	name := strings.ToLower(fields[0])
	arity, ok := opArity[name]
	if !ok {
		return scriptOp{}, errors.Errorf("line %d: unknown operation %q", lineNum, fields[0])
	}
	rawArgs := fields[1:]
	if len(rawArgs) < arity[0] || len(rawArgs) > arity[1] {
		return scriptOp{}, errors.Errorf("line %d: %s takes %d to %d arguments, got %d",
			lineNum, name, arity[0], arity[1], len(rawArgs))
	}
	args := make([]int, len(rawArgs))
	for i, raw := range rawArgs {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return scriptOp{}, errors.Wrapf(err, "line %d: %s argument %d", lineNum, name, i+1)
		}
		args[i] = v
	}
	return scriptOp{line: lineNum, name: name, args: args}, nil
}
