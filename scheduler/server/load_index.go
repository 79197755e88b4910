package server

import (
	"sort"

	log "github.com/sirupsen/logrus"

	"github.com/twitter/tasksched/scheduler/domain"
)

// buildLoadIndex aggregates tasks by node. Every node in nodes gets an entry, in the
// order given, even when it has no tasks. Pending tasks are skipped.
// The index is always recomputed from the registries and never stored.
func buildLoadIndex(nodes []domain.NodeId, tasks []*domain.Task) []domain.NodeLoad {
	loads := make([]domain.NodeLoad, len(nodes))
	byNode := make(map[domain.NodeId]*domain.NodeLoad, len(nodes))
	for i, id := range nodes {
		loads[i] = domain.NodeLoad{NodeId: id, TaskIds: []domain.TaskId{}}
		byNode[id] = &loads[i]
	}

	for _, task := range tasks {
		if task.NodeId == domain.Unassigned {
			continue
		}
		nl, ok := byNode[task.NodeId]
		if !ok {
			log.Errorf("task %d references node %d which is not live", task.Id, task.NodeId)
			continue
		}
		nl.TaskIds = append(nl.TaskIds, task.Id)
		nl.Total += task.Consumption
	}

	for i := range loads {
		ids := loads[i].TaskIds
		sort.Slice(ids, func(a, b int) bool { return ids[a] < ids[b] })
	}
	return loads
}

// applyAssignments returns copies of tasks with their node replaced by the one in assignments, if any.
func applyAssignments(tasks []*domain.Task, assignments map[domain.TaskId]domain.NodeId) []*domain.Task {
	out := make([]*domain.Task, len(tasks))
	for i, task := range tasks {
		cp := *task
		if nodeId, ok := assignments[task.Id]; ok {
			cp.NodeId = nodeId
		}
		out[i] = &cp
	}
	return out
}

func totalConsumption(tasks []*domain.Task) int {
	total := 0
	for _, task := range tasks {
		total += task.Consumption
	}
	return total
}
