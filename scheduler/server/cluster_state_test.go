package server

import (
	"testing"

	"github.com/luci/go-render/render"

	serrors "github.com/twitter/tasksched/common/errors"
	"github.com/twitter/tasksched/common/stats"
	"github.com/twitter/tasksched/scheduler/domain"
)

func setupTestClusterState(nodes ...domain.NodeId) (*clusterState, stats.StatsReceiver) {
	stat := stats.DefaultStatsReceiver()
	cs := newClusterState(stat)
	for _, id := range nodes {
		cs.registerNode(id)
	}
	return cs, stat
}

// ensures nodes can be added and removed
func Test_ClusterState_RegisterUnregister(t *testing.T) {
	cs, stat := setupTestClusterState()

	if cs.numNodes() != 0 {
		t.Errorf("expected cluster size to be 0")
	}

	if err := cs.registerNode(1); err != nil {
		t.Fatalf("unexpected error registering node: %v", err)
	}
	if cs.numNodes() != 1 || !cs.hasNode(1) {
		t.Errorf("expected cluster to contain node 1")
	}
	stats.VerifyStats("register", stat, t, map[string]stats.Rule{
		stats.SchedNumNodesGauge: {Checker: stats.Int64EqTest, Value: 1},
	})

	if err := cs.unregisterNode(1); err != nil {
		t.Fatalf("unexpected error unregistering node: %v", err)
	}
	if cs.numNodes() != 0 || cs.hasNode(1) {
		t.Errorf("expected cluster size to be 0")
	}
	stats.VerifyStats("unregister", stat, t, map[string]stats.Rule{
		stats.SchedNumNodesGauge: {Checker: stats.Int64EqTest, Value: 0},
	})
}

func Test_ClusterState_InvalidIds(t *testing.T) {
	cs, _ := setupTestClusterState(1)

	for _, id := range []domain.NodeId{0, -1, -100} {
		if err := cs.registerNode(id); !serrors.Is(err, serrors.InvalidArgument) {
			t.Errorf("expected InvalidArgument registering %d, got %v", id, err)
		}
		if err := cs.unregisterNode(id); !serrors.Is(err, serrors.InvalidArgument) {
			t.Errorf("expected InvalidArgument unregistering %d, got %v", id, err)
		}
	}
	if cs.numNodes() != 1 {
		t.Errorf("expected invalid ids to leave the cluster unchanged, got %s", render.Render(cs.nodeIds()))
	}
}

// ensures that registering a node twice does not change the cluster
func Test_ClusterState_DuplicateRegister(t *testing.T) {
	cs, _ := setupTestClusterState(1)

	err := cs.registerNode(1)
	if !serrors.Is(err, serrors.AlreadyExists) {
		t.Errorf("expected AlreadyExists, got %v", err)
	}
	if cs.numNodes() != 1 {
		t.Errorf("Expected cluster size to be 1")
	}
}

// ensures that removing an untracked node fails without side effects
func Test_ClusterState_UnregisterUnknown(t *testing.T) {
	cs, _ := setupTestClusterState(2)

	err := cs.unregisterNode(1)
	if !serrors.Is(err, serrors.NotFound) {
		t.Errorf("expected NotFound, got %v", err)
	}
	if cs.numNodes() != 1 {
		t.Errorf("Expected cluster size to be 1")
	}
}

func Test_ClusterState_NodeIdsSorted(t *testing.T) {
	cs, _ := setupTestClusterState(7, 3, 11, 1)

	expected := []domain.NodeId{1, 3, 7, 11}
	got := cs.nodeIds()
	if render.Render(got) != render.Render(expected) {
		t.Errorf("Expected: %v\nGot: %v", render.Render(expected), render.Render(got))
	}

	cs.reset()
	if cs.numNodes() != 0 || len(cs.nodeIds()) != 0 {
		t.Errorf("expected reset to drop every node")
	}
}
