// Package server provides the main task scheduling interface
package server

//go:generate mockgen -source=scheduler.go -package=server -destination=scheduler_mock.go

import (
	"github.com/twitter/tasksched/scheduler/domain"
)

type Scheduler interface {
	// Init drops every node and task.
	Init()

	RegisterNode(nodeId domain.NodeId) error

	UnregisterNode(nodeId domain.NodeId) error

	AddTask(taskId domain.TaskId, consumption int) error

	DeleteTask(taskId domain.TaskId) error

	ScheduleTask(threshold int) (*ScheduleResult, error)

	QueryTaskStatus() []domain.TaskInfo

	NodeLoads() []domain.NodeLoad
}

// SchedulingAlgorithm computes a migration plan placing every task on one of nodes.
// nodes is sorted ascending and non-empty, tasks are sorted by id and must not be modified.
type SchedulingAlgorithm interface {
	Plan(nodes []domain.NodeId, tasks []*domain.Task) *MigrationPlan
}
