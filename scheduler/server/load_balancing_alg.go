package server

import (
	"fmt"
	"sort"

	"github.com/davecgh/go-spew/spew"
	log "github.com/sirupsen/logrus"

	"github.com/twitter/tasksched/scheduler/domain"
)

// DefaultMaxRefinementRounds bounds the improvement steps applied to a single seed plan.
// Refinement always terminates on its own (every step strictly lowers the sum of squared
// loads), the bound only caps the work done on very large inputs.
const DefaultMaxRefinementRounds = 1000

const (
	greedySeed      = "greedy"
	incrementalSeed = "incremental"
)

type LoadBalancingAlgConfig struct {
	MaxRefinementRounds int
}

// MigrationPlan is a complete placement of every candidate task on a live node.
type MigrationPlan struct {
	// Node of every candidate task
	Assignments map[domain.TaskId]domain.NodeId
	// Resulting load of every live node, ascending node id
	Loads  []domain.NodeLoad
	Spread int
	// Tasks whose node differs from their current one, pending tasks included
	Migrations int
	// Improvement steps applied after seeding
	Refinements int
	// Name of the seed the plan was built from
	Seed string
}

func (p *MigrationPlan) String() string {
	return fmt.Sprintf("seed:%s, spread:%d, migrations:%d, refinements:%d, loads:%v",
		p.Seed, p.Spread, p.Migrations, p.Refinements, p.Loads)
}

// LoadBalancingAlg searches for the placement minimizing the spread between the most and
// least loaded node. Minimizing the spread exactly is multi-way number partitioning, so
// the algorithm is a deterministic heuristic:
//
// - the greedy seed places tasks by descending consumption on the least loaded node
// - the incremental seed keeps current placements and only places pending tasks greedily
// - each seed is refined by moves and swaps between the extreme nodes and every other node
//
// Ties are always broken by the lower node id, then the lower task id, so the same input
// always yields the same plan.
type LoadBalancingAlg struct {
	config LoadBalancingAlgConfig
}

func NewLoadBalancingAlg(config LoadBalancingAlgConfig) *LoadBalancingAlg {
	if config.MaxRefinementRounds <= 0 {
		config.MaxRefinementRounds = DefaultMaxRefinementRounds
	}
	return &LoadBalancingAlg{config: config}
}

// Plan returns the best plan found for nodes and tasks, nil when there are no nodes.
// Plans are ranked by spread, then by number of migrations, then greedy before incremental.
func (a *LoadBalancingAlg) Plan(nodes []domain.NodeId, tasks []*domain.Task) *MigrationPlan {
	if len(nodes) == 0 {
		return nil
	}

	seeds := []*planState{newGreedyPlan(nodes, tasks), newIncrementalPlan(nodes, tasks)}
	var best *MigrationPlan
	for _, ps := range seeds {
		rounds := ps.refine(a.config.MaxRefinementRounds)
		plan := ps.toMigrationPlan(rounds)
		log.Debugf("candidate plan %s", plan)
		if best == nil || plan.Spread < best.Spread ||
			(plan.Spread == best.Spread && plan.Migrations < best.Migrations) {
			best = plan
		}
	}
	if log.IsLevelEnabled(log.TraceLevel) {
		log.Tracef("selected plan: %s", spew.Sdump(best))
	}
	return best
}

// planState is a working placement: tasks and nodes are addressed by index.
type planState struct {
	seed  string
	nodes []domain.NodeId // ascending
	tasks []*domain.Task  // ascending id
	owner []int           // task index -> node index, -1 while unplaced
	loads []int           // node index -> load
}

func newPlanState(seed string, nodes []domain.NodeId, tasks []*domain.Task) *planState {
	owner := make([]int, len(tasks))
	for i := range owner {
		owner[i] = -1
	}
	return &planState{
		seed:  seed,
		nodes: nodes,
		tasks: tasks,
		owner: owner,
		loads: make([]int, len(nodes)),
	}
}

// newGreedyPlan ignores current placements.
func newGreedyPlan(nodes []domain.NodeId, tasks []*domain.Task) *planState {
	ps := newPlanState(greedySeed, nodes, tasks)
	all := make([]int, len(tasks))
	for i := range all {
		all[i] = i
	}
	ps.placeGreedy(all)
	return ps
}

// newIncrementalPlan keeps every task on its current node if that node is live.
func newIncrementalPlan(nodes []domain.NodeId, tasks []*domain.Task) *planState {
	ps := newPlanState(incrementalSeed, nodes, tasks)
	nodeIdx := make(map[domain.NodeId]int, len(nodes))
	for i, id := range nodes {
		nodeIdx[id] = i
	}
	pending := []int{}
	for ti, task := range tasks {
		if ni, ok := nodeIdx[task.NodeId]; ok {
			ps.place(ti, ni)
		} else {
			pending = append(pending, ti)
		}
	}
	ps.placeGreedy(pending)
	return ps
}

func (p *planState) place(ti, ni int) {
	if cur := p.owner[ti]; cur >= 0 {
		p.loads[cur] -= p.tasks[ti].Consumption
	}
	p.owner[ti] = ni
	p.loads[ni] += p.tasks[ti].Consumption
}

// placeGreedy places the given tasks heaviest first (lower id on ties), each on the
// node that is least loaded at that moment.
func (p *planState) placeGreedy(taskIdxs []int) {
	order := append([]int(nil), taskIdxs...)
	sort.Slice(order, func(a, b int) bool {
		ta, tb := p.tasks[order[a]], p.tasks[order[b]]
		if ta.Consumption != tb.Consumption {
			return ta.Consumption > tb.Consumption
		}
		return ta.Id < tb.Id
	})
	for _, ti := range order {
		p.place(ti, p.leastLoaded())
	}
}

// leastLoaded returns the index of the node with the lowest load, lowest id on ties.
func (p *planState) leastLoaded() int {
	lo := 0
	for i, l := range p.loads {
		if l < p.loads[lo] {
			lo = i
		}
	}
	return lo
}

// mostLoaded returns the index of the node with the highest load, lowest id on ties.
func (p *planState) mostLoaded() int {
	hi := 0
	for i, l := range p.loads {
		if l > p.loads[hi] {
			hi = i
		}
	}
	return hi
}

func (p *planState) spread() int {
	return p.loads[p.mostLoaded()] - p.loads[p.leastLoaded()]
}

func (p *planState) sumSquares() int64 {
	var sum int64
	for _, l := range p.loads {
		sum += int64(l) * int64(l)
	}
	return sum
}

// spreadAfter is the spread once delta load moves from node src to node dst.
func (p *planState) spreadAfter(src, dst, delta int) int {
	lo, hi := 0, 0
	for i, l := range p.loads {
		switch i {
		case src:
			l -= delta
		case dst:
			l += delta
		}
		if i == 0 || l < lo {
			lo = l
		}
		if i == 0 || l > hi {
			hi = l
		}
	}
	return hi - lo
}

// members lists the task indexes on every node, ascending by task id.
func (p *planState) members() [][]int {
	m := make([][]int, len(p.nodes))
	for ti, ni := range p.owner {
		m[ni] = append(m[ni], ti)
	}
	return m
}

// improvement moves task out from src to dst and, for a swap, task in from dst to src.
type improvement struct {
	src, dst   int
	out, in    int // in is -1 for a plain move
	spread     int
	sumSquares int64
}

// bestImprovement evaluates every move and swap between the most loaded node and any other
// node, then between any other node and the least loaded node. A candidate shifting delta
// load across a pair whose loads differ by gap is only considered when 0 < delta < gap:
// the pair gets closer, so the sum of squared loads strictly drops and the overall spread
// cannot grow. The candidate with the lowest (spread, sum of squares) wins, the first one
// in iteration order on ties.
func (p *planState) bestImprovement() (improvement, bool) {
	hi, lo := p.mostLoaded(), p.leastLoaded()
	if p.loads[hi] == p.loads[lo] {
		return improvement{}, false
	}

	members := p.members()
	curSquares := p.sumSquares()
	best := improvement{spread: p.spread(), sumSquares: curSquares}
	found := false

	consider := func(src, dst, out, in, delta int) {
		ls, ld := p.loads[src], p.loads[dst]
		if delta <= 0 || delta >= ls-ld {
			return
		}
		squares := curSquares - sq(ls) - sq(ld) + sq(ls-delta) + sq(ld+delta)
		spread := p.spreadAfter(src, dst, delta)
		if spread < best.spread || (spread == best.spread && squares < best.sumSquares) {
			best = improvement{src: src, dst: dst, out: out, in: in, spread: spread, sumSquares: squares}
			found = true
		}
	}
	pair := func(src, dst int) {
		if p.loads[src] <= p.loads[dst] {
			return
		}
		for _, out := range members[src] {
			wOut := p.tasks[out].Consumption
			consider(src, dst, out, -1, wOut)
			for _, in := range members[dst] {
				consider(src, dst, out, in, wOut-p.tasks[in].Consumption)
			}
		}
	}

	for dst := range p.nodes {
		if dst != hi {
			pair(hi, dst)
		}
	}
	for src := range p.nodes {
		if src != hi && src != lo {
			pair(src, lo)
		}
	}
	return best, found
}

func sq(v int) int64 {
	return int64(v) * int64(v)
}

func (p *planState) apply(imp improvement) {
	p.place(imp.out, imp.dst)
	if imp.in >= 0 {
		p.place(imp.in, imp.src)
	}
}

// refine applies the best improvement until none is left or maxRounds were applied.
func (p *planState) refine(maxRounds int) int {
	rounds := 0
	for rounds < maxRounds {
		imp, ok := p.bestImprovement()
		if !ok {
			break
		}
		p.apply(imp)
		rounds++
	}
	return rounds
}

func (p *planState) toMigrationPlan(rounds int) *MigrationPlan {
	assignments := make(map[domain.TaskId]domain.NodeId, len(p.tasks))
	migrations := 0
	for ti, task := range p.tasks {
		nodeId := p.nodes[p.owner[ti]]
		assignments[task.Id] = nodeId
		if nodeId != task.NodeId {
			migrations++
		}
	}
	loads := buildLoadIndex(p.nodes, applyAssignments(p.tasks, assignments))
	return &MigrationPlan{
		Assignments: assignments,
		Loads:       loads,
		Spread:      domain.Spread(loads),
		Migrations:  migrations,
		Refinements: rounds,
		Seed:        p.seed,
	}
}
