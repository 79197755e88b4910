/*
package server provides StatefulScheduler which places weighted tasks on a set of nodes
so that node loads stay balanced.

* Concepts *
Node:

	A worker identified by a positive id. Registered and unregistered explicitly.

Task:

	A unit of work with a positive id and an immutable consumption weight. A task is
	either Pending (no node) or Assigned to exactly one live node.

Load:

	The sum of the consumption of the tasks assigned to a node. Nodes without tasks have load 0.

Spread:

	max(load) - min(load) over all live nodes.

Threshold:

	The largest spread a migration plan may have and still be committed.

* Logic *
Schedule:

	Every registered task is a candidate: pending tasks get placed and assigned tasks may move.
	The balancing algorithm builds plans from two seeds and refines each one:
	  Greedy seed: tasks by descending consumption (lower id first) go to the least loaded
	    node (lower id first).
	  Incremental seed: assigned tasks stay put, pending tasks are placed greedily.
	  Refinement: repeatedly apply the single move or pairwise swap between the most loaded
	    node and any other node, or any node and the least loaded node, that most improves
	    (spread, sum of squared loads). Stops when nothing improves.
	The plan with the lowest spread wins, fewer migrations breaking ties.
	The plan is committed only if its spread is within the threshold, otherwise nothing changes.

Unregister:

	Tasks on an unregistered node go back to Pending and wait for the next schedule.

All state lives behind one mutex, every operation runs to completion before the next starts.
*/
package server
