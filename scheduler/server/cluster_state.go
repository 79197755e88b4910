package server

import (
	"sort"

	log "github.com/sirupsen/logrus"

	serrors "github.com/twitter/tasksched/common/errors"
	"github.com/twitter/tasksched/common/stats"
	"github.com/twitter/tasksched/scheduler/domain"
)

// clusterState is the registry of live nodes.
// It knows nothing about tasks, the scheduler moves a removed node's tasks back to pending.
// Note: clusterState is not synchronized, callers hold the scheduler lock.
type clusterState struct {
	nodes map[domain.NodeId]struct{}
	stats stats.StatsReceiver // for collecting stats about node availability
}

func newClusterState(stat stats.StatsReceiver) *clusterState {
	return &clusterState{
		nodes: map[domain.NodeId]struct{}{},
		stats: stat,
	}
}

// registerNode adds a node to the live set.
func (c *clusterState) registerNode(nodeId domain.NodeId) error {
	if !nodeId.Valid() {
		return serrors.Errorf(serrors.InvalidArgument, "invalid node id %d, must be > 0", nodeId)
	}
	if c.hasNode(nodeId) {
		return serrors.Errorf(serrors.AlreadyExists, "node %d is already registered", nodeId)
	}
	c.nodes[nodeId] = struct{}{}
	log.Debugf("registered node %d, %d live nodes", nodeId, len(c.nodes))
	c.updateStats()
	return nil
}

// unregisterNode removes a node from the live set.
func (c *clusterState) unregisterNode(nodeId domain.NodeId) error {
	if !nodeId.Valid() {
		return serrors.Errorf(serrors.InvalidArgument, "invalid node id %d, must be > 0", nodeId)
	}
	if !c.hasNode(nodeId) {
		return serrors.Errorf(serrors.NotFound, "node %d is not registered", nodeId)
	}
	delete(c.nodes, nodeId)
	log.Debugf("unregistered node %d, %d live nodes", nodeId, len(c.nodes))
	c.updateStats()
	return nil
}

func (c *clusterState) hasNode(nodeId domain.NodeId) bool {
	_, ok := c.nodes[nodeId]
	return ok
}

// nodeIds returns the live nodes in ascending order.
func (c *clusterState) nodeIds() []domain.NodeId {
	ids := make([]domain.NodeId, 0, len(c.nodes))
	for id := range c.nodes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (c *clusterState) numNodes() int {
	return len(c.nodes)
}

func (c *clusterState) reset() {
	c.nodes = map[domain.NodeId]struct{}{}
	c.updateStats()
}

func (c *clusterState) updateStats() {
	c.stats.Gauge(stats.SchedNumNodesGauge).Update(int64(len(c.nodes)))
}
