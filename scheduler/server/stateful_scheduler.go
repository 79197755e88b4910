package server

import (
	"fmt"
	"os"
	"sync"

	uuid "github.com/nu7hatch/gouuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	serrors "github.com/twitter/tasksched/common/errors"
	"github.com/twitter/tasksched/common/log/hooks"
	"github.com/twitter/tasksched/common/stats"
	"github.com/twitter/tasksched/scheduler/domain"
)

// Used to get proper logging from tests...
func init() {
	if loglevel := os.Getenv("TASKSCHED_LOGLEVEL"); loglevel != "" {
		level, err := log.ParseLevel(loglevel)
		if err != nil {
			log.Error(err)
			return
		}
		log.SetLevel(level)
		log.AddHook(hooks.NewContextHook())
	}
}

// SchedulerConfig variables read at initialization
// MaxRefinementRounds - upper bound on the improvement steps the balancing
//
//	algorithm applies to each seed plan. <= 0 selects DefaultMaxRefinementRounds.
type SchedulerConfig struct {
	MaxRefinementRounds int
}

func (sc *SchedulerConfig) String() string {
	return fmt.Sprintf("SchedulerConfig: MaxRefinementRounds: %d", sc.MaxRefinementRounds)
}

// ScheduleResult describes the plan chosen by a ScheduleTask call.
type ScheduleResult struct {
	PlanId      string
	Committed   bool
	Threshold   int
	Spread      int
	Migrations  int
	Refinements int
	Loads       []domain.NodeLoad
}

func (r *ScheduleResult) String() string {
	return fmt.Sprintf("plan:%s, committed:%t, threshold:%d, spread:%d, migrations:%d, refinements:%d",
		r.PlanId, r.Committed, r.Threshold, r.Spread, r.Migrations, r.Refinements)
}

// StatefulScheduler owns the node and task registries. One mutex guards both so
// a schedule reads, plans and commits without any concurrent mutation, and every
// failed operation leaves the state untouched.
type StatefulScheduler struct {
	mu           sync.Mutex
	config       SchedulerConfig
	clusterState *clusterState
	taskState    *taskState
	alg          SchedulingAlgorithm
	stat         stats.StatsReceiver
}

// NewStatefulScheduler returns an empty scheduler balancing with LoadBalancingAlg.
func NewStatefulScheduler(config SchedulerConfig, stat stats.StatsReceiver) *StatefulScheduler {
	alg := NewLoadBalancingAlg(LoadBalancingAlgConfig{MaxRefinementRounds: config.MaxRefinementRounds})
	return NewStatefulSchedulerWithAlg(config, alg, stat)
}

func NewStatefulSchedulerWithAlg(config SchedulerConfig, alg SchedulingAlgorithm, stat stats.StatsReceiver) *StatefulScheduler {
	if stat == nil {
		stat = stats.NilStatsReceiver()
	}
	log.Infof("creating scheduler, %s", config.String())
	return &StatefulScheduler{
		config:       config,
		clusterState: newClusterState(stat),
		taskState:    newTaskState(stat),
		alg:          alg,
		stat:         stat,
	}
}

func (s *StatefulScheduler) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fmt.Sprintf("StatefulScheduler: nodes:%d, tasks:%d, pending:%d",
		s.clusterState.numNodes(), s.taskState.numTasks(), s.taskState.numPending())
}

// SetSchedulingAlg replaces the balancing algorithm.
func (s *StatefulScheduler) SetSchedulingAlg(alg SchedulingAlgorithm) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alg = alg
}

func (s *StatefulScheduler) Init() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stat.Counter(stats.SchedInitCounter).Inc(1)
	s.clusterState.reset()
	s.taskState.reset()
	log.Info("scheduler state cleared")
}

func (s *StatefulScheduler) RegisterNode(nodeId domain.NodeId) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stat.Counter(stats.SchedRegisterNodeCounter).Inc(1)
	if err := s.clusterState.registerNode(nodeId); err != nil {
		return err
	}
	s.stat.Counter(stats.SchedRegisterNodeOkCounter).Inc(1)
	return nil
}

// UnregisterNode removes the node and moves its tasks back to pending.
func (s *StatefulScheduler) UnregisterNode(nodeId domain.NodeId) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stat.Counter(stats.SchedUnregisterNodeCounter).Inc(1)
	if err := s.clusterState.unregisterNode(nodeId); err != nil {
		return err
	}
	orphaned := s.taskState.unassignNode(nodeId)
	if len(orphaned) > 0 {
		log.Infof("node %d unregistered, tasks %v are pending again", nodeId, orphaned)
	}
	s.stat.Counter(stats.SchedTasksOrphanedCounter).Inc(int64(len(orphaned)))
	s.stat.Counter(stats.SchedUnregisterNodeOkCounter).Inc(1)
	return nil
}

func (s *StatefulScheduler) AddTask(taskId domain.TaskId, consumption int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stat.Counter(stats.SchedAddTaskCounter).Inc(1)
	if err := s.taskState.addTask(taskId, consumption); err != nil {
		return err
	}
	s.stat.Counter(stats.SchedAddTaskOkCounter).Inc(1)
	return nil
}

// DeleteTask removes a pending or assigned task.
func (s *StatefulScheduler) DeleteTask(taskId domain.TaskId) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stat.Counter(stats.SchedDeleteTaskCounter).Inc(1)
	if _, err := s.taskState.deleteTask(taskId); err != nil {
		return err
	}
	s.stat.Counter(stats.SchedDeleteTaskOkCounter).Inc(1)
	return nil
}

// ScheduleTask computes a migration plan over every task and commits it if its spread is
// within threshold. An InvalidArgument error comes with a nil result. A NoSuitablePlan error
// comes with the rejected plan's result when a plan was computed. Nothing is modified unless
// the plan is committed.
func (s *StatefulScheduler) ScheduleTask(threshold int) (*ScheduleResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.stat.Latency(stats.SchedScheduleLatency_ms).Time().Stop()
	s.stat.Counter(stats.SchedScheduleCounter).Inc(1)

	if threshold <= 0 {
		s.stat.Counter(stats.SchedScheduleInvalidCounter).Inc(1)
		return nil, serrors.Errorf(serrors.InvalidArgument, "invalid threshold %d, must be > 0", threshold)
	}

	nodes := s.clusterState.nodeIds()
	if len(nodes) == 0 {
		s.stat.Counter(stats.SchedScheduleNoPlanCounter).Inc(1)
		log.Infof("no migration plan: no live nodes for %d tasks", s.taskState.numTasks())
		return nil, serrors.Errorf(serrors.NoSuitablePlan, "no live nodes")
	}

	tasks := s.taskState.sortedTasks()
	plan := s.alg.Plan(nodes, tasks)
	loads, err := validatePlan(plan, nodes, tasks)
	if err != nil {
		s.stat.Counter(stats.SchedScheduleNoPlanCounter).Inc(1)
		log.Errorf("discarding invalid migration plan: %v", err)
		return nil, serrors.NewError(errors.Wrap(err, "invalid migration plan"), serrors.NoSuitablePlan)
	}

	result := &ScheduleResult{
		PlanId:      generatePlanId(),
		Threshold:   threshold,
		Spread:      plan.Spread,
		Migrations:  plan.Migrations,
		Refinements: plan.Refinements,
		Loads:       loads,
	}
	s.stat.Gauge(stats.SchedLastPlanSpreadGauge).Update(int64(plan.Spread))

	if plan.Spread > threshold {
		s.stat.Counter(stats.SchedScheduleNoPlanCounter).Inc(1)
		log.Infof("no migration plan: best spread %d exceeds threshold %d (%s)", plan.Spread, threshold, result.PlanId)
		return result, serrors.Errorf(serrors.NoSuitablePlan,
			"best plan has spread %d, threshold is %d", plan.Spread, threshold)
	}

	s.taskState.assign(plan.Assignments)
	result.Committed = true
	s.stat.Counter(stats.SchedScheduleOkCounter).Inc(1)
	s.stat.Counter(stats.SchedMigrationsCounter).Inc(int64(plan.Migrations))
	s.stat.Gauge(stats.SchedLastPlanMigrationsGauge).Update(int64(plan.Migrations))
	s.stat.Gauge(stats.SchedLastPlanRefinementsGauge).Update(int64(plan.Refinements))
	log.Infof("committed migration plan %s", result)
	return result, nil
}

// validatePlan checks that plan places exactly the given tasks, each on a live node, and
// that its reported spread matches those placements. It returns the loads the placements
// produce, plan.Loads is never trusted.
func validatePlan(plan *MigrationPlan, nodes []domain.NodeId, tasks []*domain.Task) ([]domain.NodeLoad, error) {
	if plan == nil {
		return nil, errors.New("no plan computed")
	}
	live := make(map[domain.NodeId]bool, len(nodes))
	for _, id := range nodes {
		live[id] = true
	}
	if len(plan.Assignments) != len(tasks) {
		return nil, errors.Errorf("plan places %d tasks, expected %d", len(plan.Assignments), len(tasks))
	}
	for _, task := range tasks {
		nodeId, ok := plan.Assignments[task.Id]
		if !ok {
			return nil, errors.Errorf("plan does not place task %d", task.Id)
		}
		if !live[nodeId] {
			return nil, errors.Errorf("plan places task %d on node %d which is not live", task.Id, nodeId)
		}
	}

	loads := buildLoadIndex(nodes, applyAssignments(tasks, plan.Assignments))
	if spread := domain.Spread(loads); spread != plan.Spread {
		return nil, errors.Errorf("plan reports spread %d, placements give %d", plan.Spread, spread)
	}
	return loads, nil
}

func generatePlanId() string {
	id, err := uuid.NewV4()
	for err != nil {
		id, err = uuid.NewV4()
	}
	return id.String()
}

// QueryTaskStatus returns every task ascending by id with its node, domain.Unassigned if pending.
func (s *StatefulScheduler) QueryTaskStatus() []domain.TaskInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stat.Counter(stats.SchedQueryTaskStatusCounter).Inc(1)
	return s.taskState.statuses()
}

// NodeLoads returns the current load of every live node, ascending node id.
func (s *StatefulScheduler) NodeLoads() []domain.NodeLoad {
	s.mu.Lock()
	defer s.mu.Unlock()
	return buildLoadIndex(s.clusterState.nodeIds(), s.taskState.sortedTasks())
}

// Nodes returns the live nodes, ascending.
func (s *StatefulScheduler) Nodes() []domain.NodeId {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clusterState.nodeIds()
}
