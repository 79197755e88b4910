package api

// these functions are the entry points used by the command line client, they translate
// scheduler outcomes into return codes

import (
	log "github.com/sirupsen/logrus"

	serrors "github.com/twitter/tasksched/common/errors"
	"github.com/twitter/tasksched/common/stats"
	"github.com/twitter/tasksched/scheduler/domain"
	"github.com/twitter/tasksched/scheduler/server"
)

// Handler wraps a scheduler and reports a ReturnCode for every operation.
type Handler struct {
	scheduler server.Scheduler
	stat      stats.StatsReceiver
}

// NewHandler creates a handler. Return codes are counted under the "returnCodes" scope of stat.
func NewHandler(scheduler server.Scheduler, stat stats.StatsReceiver) *Handler {
	if stat == nil {
		stat = stats.NilStatsReceiver()
	}
	return &Handler{scheduler: scheduler, stat: stat.Scope("returnCodes")}
}

// codeFor maps err to the code the operation reports for its kind, or to ok on success.
// Kinds an operation cannot produce map to NotImplemented.
func (h *Handler) codeFor(op string, err error, ok ReturnCode, byKind map[serrors.Kind]ReturnCode) ReturnCode {
	code := ok
	if err != nil {
		var found bool
		if code, found = byKind[serrors.KindOf(err)]; !found {
			log.Errorf("%s: unexpected error %v", op, err)
			code = NotImplemented
		} else {
			log.Debugf("%s: %v", op, err)
		}
	}
	h.stat.Counter(code.String()).Inc(1)
	return code
}

// Init drops every node and task.
func (h *Handler) Init() ReturnCode {
	h.scheduler.Init()
	return h.codeFor("init", nil, InitOk, nil)
}

func (h *Handler) RegisterNode(nodeId int) ReturnCode {
	err := h.scheduler.RegisterNode(domain.NodeId(nodeId))
	return h.codeFor("registerNode", err, NodeRegistered, map[serrors.Kind]ReturnCode{
		serrors.InvalidArgument: NodeIdInvalid,
		serrors.AlreadyExists:   NodeAlreadyRegistered,
	})
}

func (h *Handler) UnregisterNode(nodeId int) ReturnCode {
	err := h.scheduler.UnregisterNode(domain.NodeId(nodeId))
	return h.codeFor("unregisterNode", err, NodeUnregistered, map[serrors.Kind]ReturnCode{
		serrors.InvalidArgument: NodeIdInvalid,
		serrors.NotFound:        NodeNotFound,
	})
}

// AddTask reports TaskIdInvalid for an invalid id as well as for an invalid consumption.
func (h *Handler) AddTask(taskId, consumption int) ReturnCode {
	err := h.scheduler.AddTask(domain.TaskId(taskId), consumption)
	return h.codeFor("addTask", err, TaskAdded, map[serrors.Kind]ReturnCode{
		serrors.InvalidArgument: TaskIdInvalid,
		serrors.AlreadyExists:   TaskAlreadyAdded,
	})
}

func (h *Handler) DeleteTask(taskId int) ReturnCode {
	err := h.scheduler.DeleteTask(domain.TaskId(taskId))
	return h.codeFor("deleteTask", err, TaskDeleted, map[serrors.Kind]ReturnCode{
		serrors.InvalidArgument: TaskIdInvalid,
		serrors.NotFound:        TaskNotFound,
	})
}

// ScheduleTask also returns the scheduler's result, which may be nil.
func (h *Handler) ScheduleTask(threshold int) (ReturnCode, *server.ScheduleResult) {
	result, err := h.scheduler.ScheduleTask(threshold)
	return h.codeFor("scheduleTask", err, ScheduleOk, map[serrors.Kind]ReturnCode{
		serrors.InvalidArgument: ThresholdInvalid,
		serrors.NoSuitablePlan:  NoSuitablePlan,
	}), result
}

// QueryTaskStatus replaces the contents of tasks with the status of every task, ascending
// by id. A nil tasks is reported as ParamInvalid.
func (h *Handler) QueryTaskStatus(tasks *[]domain.TaskInfo) ReturnCode {
	if tasks == nil {
		return h.codeFor("queryTaskStatus",
			serrors.Errorf(serrors.InvalidArgument, "nil task status list"), QueryOk,
			map[serrors.Kind]ReturnCode{serrors.InvalidArgument: ParamInvalid})
	}
	*tasks = append((*tasks)[:0], h.scheduler.QueryTaskStatus()...)
	return h.codeFor("queryTaskStatus", nil, QueryOk, nil)
}

// NodeLoads returns the load of every live node.
func (h *Handler) NodeLoads() []domain.NodeLoad {
	return h.scheduler.NodeLoads()
}
