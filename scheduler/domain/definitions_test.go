package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTaskIsPending(t *testing.T) {
	task := NewTask(4, 12)
	assert.Equal(t, Unassigned, task.NodeId)
	assert.Equal(t, Pending, task.Status())
	assert.Equal(t, "Pending", task.Status().String())

	task.NodeId = 2
	assert.Equal(t, Assigned, task.Status())
	assert.Equal(t, "task:4, consumption:12, node:2", task.String())
}

func TestIdValidity(t *testing.T) {
	assert.False(t, NodeId(0).Valid())
	assert.False(t, NodeId(-3).Valid())
	assert.True(t, NodeId(1).Valid())
	assert.False(t, TaskId(0).Valid())
	assert.True(t, TaskId(9).Valid())
}

func TestSpread(t *testing.T) {
	assert.Equal(t, 0, Spread(nil))
	assert.Equal(t, 0, Spread([]NodeLoad{{NodeId: 1, Total: 7}}))
	loads := []NodeLoad{
		{NodeId: 1, Total: 20},
		{NodeId: 2, Total: 0},
		{NodeId: 3, Total: 13},
	}
	assert.Equal(t, 20, Spread(loads))
}

func TestNodeLoadString(t *testing.T) {
	nl := NodeLoad{NodeId: 3, TaskIds: []TaskId{1, 5}, Total: 15}
	assert.Equal(t, "node:3, total:15, tasks:[1,5]", nl.String())
	assert.Equal(t, "(2,-1)", TaskInfo{TaskId: 2, NodeId: Unassigned}.String())
}
