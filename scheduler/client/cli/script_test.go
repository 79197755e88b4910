package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	serrors "github.com/twitter/tasksched/common/errors"
)

func TestParseScript(t *testing.T) {
	script := `
# set up
init
register 1
ADD 1 10

schedule
schedule 4
query
loads
delete 1
unregister 1
`
	ops, err := parseScript(strings.NewReader(script))
	assert.Nil(t, err)
	assert.Equal(t, []scriptOp{
		{line: 3, name: "init", args: []int{}},
		{line: 4, name: "register", args: []int{1}},
		{line: 5, name: "add", args: []int{1, 10}},
		{line: 7, name: "schedule", args: []int{}},
		{line: 8, name: "schedule", args: []int{4}},
		{line: 9, name: "query", args: []int{}},
		{line: 10, name: "loads", args: []int{}},
		{line: 11, name: "delete", args: []int{1}},
		{line: 12, name: "unregister", args: []int{1}},
	}, ops)
}

func TestParseScriptErrors(t *testing.T) {
	for script, msg := range map[string]string{
		"register":          "line 1: register takes 1 to 1 arguments, got 0",
		"init\nadd 1":       "line 2: add takes 2 to 2 arguments, got 1",
		"schedule 1 2":      "line 1: schedule takes 0 to 1 arguments, got 2",
		"launch 3":          `line 1: unknown operation "launch"`,
		"register one":      "line 1: register argument 1",
		"add 1 10\nquery x": "line 2: query takes 0 to 0 arguments, got 1",
	} {
		ops, err := parseScript(strings.NewReader(script))
		assert.Nil(t, ops, script)
		if assert.NotNil(t, err, script) {
			assert.Contains(t, err.Error(), msg)
			assert.Equal(t, serrors.ExitCode(serrors.BadScriptExitCode), serrors.ExitCodeFor(err))
		}
	}
}

func TestParseScriptNegativeIds(t *testing.T) {
	// ids are validated by the scheduler, not the parser
	ops, err := parseScript(strings.NewReader("register -4\nadd 0 -1"))
	assert.Nil(t, err)
	assert.Equal(t, []int{-4}, ops[0].args)
	assert.Equal(t, []int{0, -1}, ops[1].args)
}
