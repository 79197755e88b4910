// Package domain provides definitions for the nodes, tasks and load views
// handled by the scheduler
package domain

import (
	"fmt"
	"math"
	"strings"
)

// NodeId identifies a worker node. Valid ids are positive.
type NodeId int

// Unassigned is reported as the node of a task that is pending.
const Unassigned NodeId = -1

func (n NodeId) Valid() bool {
	return n > 0
}

// TaskId identifies a task. Valid ids are positive.
type TaskId int

func (t TaskId) Valid() bool {
	return t > 0
}

// MaxTotalConsumption bounds the summed consumption of all registered tasks so
// that node loads and their squares never overflow.
const MaxTotalConsumption = math.MaxInt32

// Task is a unit of work with a fixed resource consumption weight
type Task struct {
	Id          TaskId
	Consumption int
	// Unassigned while the task is pending
	NodeId NodeId
}

func NewTask(id TaskId, consumption int) *Task {
	return &Task{Id: id, Consumption: consumption, NodeId: Unassigned}
}

func (t *Task) Status() Status {
	if t.NodeId == Unassigned {
		return Pending
	}
	return Assigned
}

func (t *Task) String() string {
	return fmt.Sprintf("task:%d, consumption:%d, node:%d", t.Id, t.Consumption, t.NodeId)
}

// Status of a Task
type Status int

const (
	// Waiting to be placed on a node by the balancer
	Pending Status = iota

	// Placed on exactly one live node
	Assigned
)

func (s Status) String() string {
	asString := [2]string{"Pending", "Assigned"}
	return asString[s]
}

// TaskInfo is one entry of a task status query
type TaskInfo struct {
	TaskId TaskId
	NodeId NodeId
}

func (ti TaskInfo) String() string {
	return fmt.Sprintf("(%d,%d)", ti.TaskId, ti.NodeId)
}

// NodeLoad is the derived view of the tasks placed on one node
type NodeLoad struct {
	NodeId  NodeId
	TaskIds []TaskId
	// sum of the consumption of TaskIds
	Total int
}

func (nl NodeLoad) String() string {
	ids := make([]string, len(nl.TaskIds))
	for i, id := range nl.TaskIds {
		ids[i] = fmt.Sprintf("%d", id)
	}
	return fmt.Sprintf("node:%d, total:%d, tasks:[%s]", nl.NodeId, nl.Total, strings.Join(ids, ","))
}

// Spread is the difference between the largest and smallest total in loads.
// An empty slice has no spread.
func Spread(loads []NodeLoad) int {
	if len(loads) == 0 {
		return 0
	}
	lo, hi := loads[0].Total, loads[0].Total
	for _, l := range loads[1:] {
		if l.Total < lo {
			lo = l.Total
		}
		if l.Total > hi {
			hi = l.Total
		}
	}
	return hi - lo
}
