package server

import (
	"sort"

	log "github.com/sirupsen/logrus"

	serrors "github.com/twitter/tasksched/common/errors"
	"github.com/twitter/tasksched/common/stats"
	"github.com/twitter/tasksched/scheduler/domain"
)

// taskState is the registry of tasks and their current node.
// Note: taskState is not synchronized, callers hold the scheduler lock.
type taskState struct {
	tasks map[domain.TaskId]*domain.Task
	// summed consumption of tasks, at most domain.MaxTotalConsumption
	total int
	stats stats.StatsReceiver
}

func newTaskState(stat stats.StatsReceiver) *taskState {
	return &taskState{
		tasks: map[domain.TaskId]*domain.Task{},
		stats: stat,
	}
}

// addTask creates a pending task.
func (t *taskState) addTask(taskId domain.TaskId, consumption int) error {
	if !taskId.Valid() {
		return serrors.Errorf(serrors.InvalidArgument, "invalid task id %d, must be > 0", taskId)
	}
	if consumption <= 0 {
		return serrors.Errorf(serrors.InvalidArgument, "invalid consumption %d for task %d, must be > 0", consumption, taskId)
	}
	if _, ok := t.tasks[taskId]; ok {
		return serrors.Errorf(serrors.AlreadyExists, "task %d already added", taskId)
	}
	if consumption > domain.MaxTotalConsumption-t.total {
		return serrors.Errorf(serrors.InvalidArgument,
			"consumption %d for task %d exceeds the remaining capacity %d", consumption, taskId, domain.MaxTotalConsumption-t.total)
	}
	t.tasks[taskId] = domain.NewTask(taskId, consumption)
	t.total += consumption
	log.Debugf("added task %d with consumption %d", taskId, consumption)
	t.updateStats()
	return nil
}

// deleteTask removes the task whether it is pending or assigned, and returns it.
func (t *taskState) deleteTask(taskId domain.TaskId) (*domain.Task, error) {
	if !taskId.Valid() {
		return nil, serrors.Errorf(serrors.InvalidArgument, "invalid task id %d, must be > 0", taskId)
	}
	task, ok := t.tasks[taskId]
	if !ok {
		return nil, serrors.Errorf(serrors.NotFound, "task %d does not exist", taskId)
	}
	delete(t.tasks, taskId)
	t.total -= task.Consumption
	log.Debugf("deleted task %d (was on node %d)", taskId, task.NodeId)
	t.updateStats()
	return task, nil
}

// unassignNode moves every task on nodeId back to pending and returns their ids, ascending.
func (t *taskState) unassignNode(nodeId domain.NodeId) []domain.TaskId {
	orphaned := []domain.TaskId{}
	for id, task := range t.tasks {
		if task.NodeId == nodeId {
			task.NodeId = domain.Unassigned
			orphaned = append(orphaned, id)
		}
	}
	sort.Slice(orphaned, func(i, j int) bool { return orphaned[i] < orphaned[j] })
	t.updateStats()
	return orphaned
}

// assign commits a set of placements. Every key must be a known task.
func (t *taskState) assign(assignments map[domain.TaskId]domain.NodeId) {
	for id, nodeId := range assignments {
		t.tasks[id].NodeId = nodeId
	}
	t.updateStats()
}

func (t *taskState) getTask(taskId domain.TaskId) (*domain.Task, bool) {
	task, ok := t.tasks[taskId]
	return task, ok
}

// sortedTasks returns copies of every task, ascending by id.
func (t *taskState) sortedTasks() []*domain.Task {
	out := make([]*domain.Task, 0, len(t.tasks))
	for _, task := range t.tasks {
		cp := *task
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Id < out[j].Id })
	return out
}

// statuses reports the node of every task, ascending by task id.
func (t *taskState) statuses() []domain.TaskInfo {
	infos := make([]domain.TaskInfo, 0, len(t.tasks))
	for _, task := range t.sortedTasks() {
		infos = append(infos, domain.TaskInfo{TaskId: task.Id, NodeId: task.NodeId})
	}
	return infos
}

func (t *taskState) numTasks() int {
	return len(t.tasks)
}

func (t *taskState) numPending() int {
	n := 0
	for _, task := range t.tasks {
		if task.Status() == domain.Pending {
			n++
		}
	}
	return n
}

func (t *taskState) reset() {
	t.tasks = map[domain.TaskId]*domain.Task{}
	t.total = 0
	t.updateStats()
}

func (t *taskState) updateStats() {
	t.stats.Gauge(stats.SchedNumTasksGauge).Update(int64(len(t.tasks)))
	t.stats.Gauge(stats.SchedNumPendingTasksGauge).Update(int64(t.numPending()))
}
