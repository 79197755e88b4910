package stats

/*
This file defines all the metrics collected by the scheduler. New metrics go here.
*/

const (
	/************************* Registry metrics **************************/
	/*
		number of live nodes after the last registry mutation
	*/
	SchedNumNodesGauge = "numNodesGauge"

	/*
		number of tasks (pending and assigned)
	*/
	SchedNumTasksGauge = "numTasksGauge"

	/*
		number of pending tasks
	*/
	SchedNumPendingTasksGauge = "numPendingTasksGauge"

	/*
		node registrations, attempted and successful
	*/
	SchedRegisterNodeCounter   = "registerNodeCounter"
	SchedRegisterNodeOkCounter = "registerNodeOkCounter"

	/*
		node unregistrations, attempted and successful
	*/
	SchedUnregisterNodeCounter   = "unregisterNodeCounter"
	SchedUnregisterNodeOkCounter = "unregisterNodeOkCounter"

	/*
		number of tasks moved back to pending because their node was unregistered
	*/
	SchedTasksOrphanedCounter = "tasksOrphanedCounter"

	/*
		task additions, attempted and successful
	*/
	SchedAddTaskCounter   = "addTaskCounter"
	SchedAddTaskOkCounter = "addTaskOkCounter"

	/*
		task deletions, attempted and successful
	*/
	SchedDeleteTaskCounter   = "deleteTaskCounter"
	SchedDeleteTaskOkCounter = "deleteTaskOkCounter"

	/*
		number of times the registries were cleared
	*/
	SchedInitCounter = "initCounter"

	/************************* Balancer metrics **************************/
	/*
		schedule requests, and how many were committed or rejected
	*/
	SchedScheduleCounter        = "scheduleCounter"
	SchedScheduleOkCounter      = "scheduleOkCounter"
	SchedScheduleNoPlanCounter  = "scheduleNoPlanCounter"
	SchedScheduleInvalidCounter = "scheduleInvalidCounter"

	/*
		time taken to compute (and commit) a migration plan
	*/
	SchedScheduleLatency_ms = "scheduleLatency_ms"

	/*
		spread of the best plan found by the last schedule request, committed or not
	*/
	SchedLastPlanSpreadGauge = "lastPlanSpreadGauge"

	/*
		number of tasks whose node changed in the last committed plan
	*/
	SchedLastPlanMigrationsGauge = "lastPlanMigrationsGauge"

	/*
		refinement rounds applied to the last committed plan
	*/
	SchedLastPlanRefinementsGauge = "lastPlanRefinementsGauge"

	/*
		total number of task migrations committed
	*/
	SchedMigrationsCounter = "migrationsCounter"

	/************************* Query metrics **************************/
	SchedQueryTaskStatusCounter = "queryTaskStatusCounter"
)
