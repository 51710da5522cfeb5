package sim

import (
	"container/heap"
	"fmt"
)

// Grant is the handle a requester holds while it occupies a desk.
// It must be passed back to Release exactly once.
type Grant struct {
	EntityID  int   // Patient holding the desk
	Priority  int   // Priority the desk was requested with
	GrantedAt int64 // Virtual time at which the desk was handed over

	released bool
}

// pendingRequest is a queued Request waiting for a free desk.
type pendingRequest struct {
	entityID int
	priority int
	seq      uint64 // enqueue order, breaks ties among equal priorities
	onGrant  func(*Grant)
}

// pendingQueue orders waiting requests by priority (ascending, 1 = most
// urgent), then by enqueue order.
type pendingQueue []*pendingRequest

func (pq pendingQueue) Len() int { return len(pq) }

func (pq pendingQueue) Less(i, j int) bool {
	if pq[i].priority != pq[j].priority {
		return pq[i].priority < pq[j].priority
	}
	return pq[i].seq < pq[j].seq
}

func (pq pendingQueue) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *pendingQueue) Push(x any) {
	*pq = append(*pq, x.(*pendingRequest))
}

func (pq *pendingQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[0 : n-1]
	return item
}

// PriorityResourcePool is a capacity-limited set of identical desks handed out
// by priority. There is no preemption: an urgent request that finds every desk
// busy waits for the next Release, it only overtakes less urgent requests that
// are already queued.
type PriorityResourcePool struct {
	sched    *Scheduler
	capacity int
	occupied int
	pending  pendingQueue
	nextSeq  uint64
}

// NewPriorityResourcePool creates a pool of capacity desks whose deferred
// grants are delivered through sched.
func NewPriorityResourcePool(sched *Scheduler, capacity int) (*PriorityResourcePool, error) {
	if sched == nil {
		return nil, fmt.Errorf("%w: pool requires a scheduler", ErrInvalidConfig)
	}
	if capacity < 1 {
		return nil, fmt.Errorf("%w: desk capacity must be at least 1, got %d", ErrInvalidConfig, capacity)
	}
	return &PriorityResourcePool{
		sched:    sched,
		capacity: capacity,
		pending:  make(pendingQueue, 0),
	}, nil
}

// Capacity returns the number of desks in the pool.
func (p *PriorityResourcePool) Capacity() int {
	return p.capacity
}

// Occupied returns the number of desks currently held.
func (p *PriorityResourcePool) Occupied() int {
	return p.occupied
}

// PendingLen returns the number of requests waiting for a desk.
func (p *PriorityResourcePool) PendingLen() int {
	return p.pending.Len()
}

// Request asks for a desk on behalf of entityID.
// If a desk is free, onGrant runs before Request returns. Otherwise the
// request is queued and onGrant is resumed through the scheduler once a
// Release hands it a desk.
func (p *PriorityResourcePool) Request(entityID, priority int, onGrant func(*Grant)) {
	if onGrant == nil {
		panic("Request: onGrant must not be nil")
	}
	if p.occupied < p.capacity {
		p.occupied++
		onGrant(&Grant{EntityID: entityID, Priority: priority, GrantedAt: p.sched.Now()})
		return
	}
	p.nextSeq++
	heap.Push(&p.pending, &pendingRequest{
		entityID: entityID,
		priority: priority,
		seq:      p.nextSeq,
		onGrant:  onGrant,
	})
}

// Release returns the desk held by g. When requests are pending, the desk
// passes straight to the head of the queue, so Occupied does not drop.
func (p *PriorityResourcePool) Release(g *Grant) error {
	if g == nil || g.released {
		return ErrInvalidHandle
	}
	g.released = true
	p.occupied--

	if p.pending.Len() == 0 {
		return nil
	}
	next := heap.Pop(&p.pending).(*pendingRequest)
	p.occupied++
	grant := &Grant{EntityID: next.entityID, Priority: next.priority, GrantedAt: p.sched.Now()}
	return p.sched.ScheduleAfter(0, func() { next.onGrant(grant) })
}
