package gen

import (
	"math/rand"

	"github.com/halvard-io/synthgen/value"
)

// Shared backs every SameAs content node: it lets multiple consumers each
// observe the same underlying value sequence, starting from wherever they
// joined. The underlying generator (newInner) is driven at most once
// per distinct value needed; the result is broadcast to every registered
// consumer's queue so a consumer that joined late still sees every value
// produced after it registered, in order.
//
// The engine drives everything on a single goroutine with no suspension
// points, so Shared carries no locking of its own.
type Shared struct {
	newInner func() (ValueGen, error)
	nextID   int
	queues   map[int][]value.Value
}

// NewShared wraps newInner — a factory producing one fresh instance of the
// referent content node's generator per underlying advance — as a Shared.
func NewShared(newInner func() (ValueGen, error)) *Shared {
	return &Shared{newInner: newInner, queues: make(map[int][]value.Value)}
}

// Register allocates a new consumer id with an empty queue (it will first
// observe whatever value the underlying generator next produces).
func (s *Shared) Register() int {
	id := s.nextID
	s.nextID++
	s.queues[id] = nil
	return id
}

// Clone allocates a new consumer id whose queue is a snapshot of consumer's
// current queue: the new consumer replays everything consumer has not yet
// consumed, then converges with it.
func (s *Shared) Clone(consumer int) int {
	id := s.nextID
	s.nextID++
	s.queues[id] = append([]value.Value(nil), s.queues[consumer]...)
	return id
}

// Deregister removes consumer's queue. Safe to call more than once.
func (s *Shared) Deregister(consumer int) {
	delete(s.queues, consumer)
}

// Next advances consumer by one value: pop its queue if non-empty,
// otherwise drive the underlying generator once and broadcast the result to
// every still-registered consumer before retrying.
func (s *Shared) Next(consumer int, rng *rand.Rand) (value.Value, error) {
	for {
		q := s.queues[consumer]
		if len(q) > 0 {
			s.queues[consumer] = q[1:]
			return q[0], nil
		}
		g, err := s.newInner()
		if err != nil {
			return value.Value{}, err
		}
		v, err := Aggregate(g, rng)
		if err != nil {
			return value.Value{}, err
		}
		for id := range s.queues {
			s.queues[id] = append(s.queues[id], v)
		}
	}
}

// Consumer returns a ValueGen bound to the given registered consumer id: one
// run emits exactly the one value that consumer's next position in the
// shared sequence holds, which is what a single SameAs reference needs per
// sampling round.
func (s *Shared) Consumer(id int) ValueGen {
	return newOneShot(func(rng *rand.Rand) (value.Value, error) {
		return s.Next(id, rng)
	})
}
