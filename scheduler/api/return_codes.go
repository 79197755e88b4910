package api

import "fmt"

// ReturnCode is the numeric result reported for every operation.
type ReturnCode int

const (
	NotImplemented        ReturnCode = iota // E000
	InitOk                                  // E001
	ThresholdInvalid                        // E002
	NodeRegistered                          // E003
	NodeIdInvalid                           // E004
	NodeAlreadyRegistered                   // E005
	NodeUnregistered                        // E006
	NodeNotFound                            // E007
	TaskAdded                               // E008
	TaskIdInvalid                           // E009
	TaskAlreadyAdded                        // E010
	TaskDeleted                             // E011
	TaskNotFound                            // E012
	ScheduleOk                              // E013
	NoSuitablePlan                          // E014
	QueryOk                                 // E015
	ParamInvalid                            // E016
)

var descriptions = map[ReturnCode]string{
	NotImplemented:        "not implemented",
	InitOk:                "init succeeded",
	ThresholdInvalid:      "threshold invalid",
	NodeRegistered:        "node registered",
	NodeIdInvalid:         "node id invalid",
	NodeAlreadyRegistered: "node already registered",
	NodeUnregistered:      "node unregistered",
	NodeNotFound:          "node does not exist",
	TaskAdded:             "task added",
	TaskIdInvalid:         "task id invalid",
	TaskAlreadyAdded:      "task already added",
	TaskDeleted:           "task deleted",
	TaskNotFound:          "task does not exist",
	ScheduleOk:            "schedule succeeded",
	NoSuitablePlan:        "no suitable migration plan",
	QueryOk:               "query succeeded",
	ParamInvalid:          "parameter list invalid",
}

// String returns the code as E000..E016.
func (c ReturnCode) String() string {
	return fmt.Sprintf("E%03d", int(c))
}

func (c ReturnCode) Description() string {
	if d, ok := descriptions[c]; ok {
		return d
	}
	return "unknown return code"
}

// Ok is true for the codes reporting a successful operation.
func (c ReturnCode) Ok() bool {
	switch c {
	case InitOk, NodeRegistered, NodeUnregistered, TaskAdded, TaskDeleted, ScheduleOk, QueryOk:
		return true
	}
	return false
}
