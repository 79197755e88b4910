// Package hooks holds logrus hooks shared by the scheduler binaries.
package hooks

import (
	"fmt"
	"runtime"
	"strings"

	log "github.com/sirupsen/logrus"
)

const fileLineKey = "file:line"

// contextHook annotates every entry with the file and line of the caller
// that emitted it, trimmed to the path inside this module.
type contextHook struct {
	levels []log.Level
}

func NewContextHook() contextHook {
	return contextHook{levels: log.AllLevels}
}

// NewContextHookForLevels only annotates entries at the given levels.
func NewContextHookForLevels(levels ...log.Level) contextHook {
	return contextHook{levels: levels}
}

func (hook contextHook) Levels() []log.Level {
	return hook.levels
}

func (hook contextHook) Fire(entry *log.Entry) error {
	pcs := make([]uintptr, 32)
	n := runtime.Callers(3, pcs)
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		if !skipFrame(frame.Function) {
			entry.Data[fileLineKey] = fmt.Sprintf("%s:%d", trimPath(frame.File), frame.Line)
			return nil
		}
		if !more {
			return nil
		}
	}
}

// Frames belonging to logrus or to this package are never the caller.
func skipFrame(function string) bool {
	return strings.Contains(function, "github.com/sirupsen/logrus") ||
		strings.Contains(function, "common/log/hooks.contextHook")
}

func trimPath(file string) string {
	parts := strings.Split(file, "tasksched/")
	return parts[len(parts)-1]
}
