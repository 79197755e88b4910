package server

import (
	"testing"

	"github.com/luci/go-render/render"
	"github.com/stretchr/testify/assert"

	"github.com/twitter/tasksched/scheduler/domain"
)

func makeTasks(weights map[domain.TaskId]int, placement map[domain.TaskId]domain.NodeId) []*domain.Task {
	tasks := []*domain.Task{}
	for id := domain.TaskId(1); len(tasks) < len(weights); id++ {
		w, ok := weights[id]
		if !ok {
			continue
		}
		task := domain.NewTask(id, w)
		if n, ok := placement[id]; ok {
			task.NodeId = n
		}
		tasks = append(tasks, task)
	}
	return tasks
}

func TestBuildLoadIndex(t *testing.T) {
	tasks := makeTasks(
		map[domain.TaskId]int{1: 10, 2: 5, 3: 7, 4: 1},
		map[domain.TaskId]domain.NodeId{1: 2, 2: 1, 3: 2})

	loads := buildLoadIndex([]domain.NodeId{1, 2, 3}, tasks)
	expected := []domain.NodeLoad{
		{NodeId: 1, TaskIds: []domain.TaskId{2}, Total: 5},
		{NodeId: 2, TaskIds: []domain.TaskId{1, 3}, Total: 17},
		{NodeId: 3, TaskIds: []domain.TaskId{}, Total: 0},
	}
	if render.Render(loads) != render.Render(expected) {
		t.Errorf("Expected: %v\nGot: %v", render.Render(expected), render.Render(loads))
	}
	assert.Equal(t, 17, domain.Spread(loads))
}

func TestBuildLoadIndexSkipsUnknownNodes(t *testing.T) {
	tasks := makeTasks(map[domain.TaskId]int{1: 3}, map[domain.TaskId]domain.NodeId{1: 9})
	loads := buildLoadIndex([]domain.NodeId{1}, tasks)
	assert.Equal(t, 0, loads[0].Total)
	assert.Empty(t, loads[0].TaskIds)
}

func TestApplyAssignments(t *testing.T) {
	tasks := makeTasks(map[domain.TaskId]int{1: 3, 2: 4}, nil)
	moved := applyAssignments(tasks, map[domain.TaskId]domain.NodeId{2: 5})

	assert.Equal(t, domain.Unassigned, moved[0].NodeId)
	assert.Equal(t, domain.NodeId(5), moved[1].NodeId)
	assert.Equal(t, domain.Unassigned, tasks[1].NodeId, "input tasks must not change")
	assert.Equal(t, 7, totalConsumption(moved))
}
