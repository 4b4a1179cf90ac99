package amac

import (
	"errors"
	"fmt"
	"iter"
	"slices"

	"github.com/bits-and-blooms/bitset"
)

// ErrInvalidWidth is returned when the batch width is not positive.
var ErrInvalidWidth = errors.New("amac: width must be positive")

// Job is the constraint satisfied by *J for a job value type J.
type Job[J any] interface {
	*J
	Init() Step
	Step() Step
}

// Stats describes the work done by the last Run.
type Stats struct {
	Jobs      int // jobs admitted (one per needle)
	Immediate int // jobs done at Init, reported without taking a slot
	Steps     int // Step calls
	MaxLive   int // highest number of simultaneously occupied slots
}

// Coordinator drives up to Width jobs at once.
//
// Slots are a fixed array of job values with occupancy tags. A job enters a
// slot by value, leaves it by value, and the vacated slot is zeroed, so a job
// (and any resource it owns) is never reachable from two slots and never
// reported twice.
//
// A Coordinator is not safe for concurrent use; create one per goroutine.
type Coordinator[T, J any, PJ Job[J]] struct {
	width    int
	slots    []J
	occupied *bitset.BitSet
	live     int
	stats    Stats
}

// New creates a coordinator with the given batch width.
func New[T, J any, PJ Job[J]](width int) (*Coordinator[T, J, PJ], error) {
	if width <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWidth, width)
	}
	return &Coordinator[T, J, PJ]{
		width:    width,
		slots:    make([]J, width),
		occupied: bitset.New(uint(width)),
	}, nil
}

// Width returns the batch width.
func (c *Coordinator[T, J, PJ]) Width() int {
	return c.width
}

// Stats returns the statistics of the last Run.
func (c *Coordinator[T, J, PJ]) Stats() Stats {
	return c.stats
}

// Run creates one job per needle with newJob and drives all of them to
// completion. report is called once per job, in completion order, with a
// pointer that is only valid for the duration of the call.
func (c *Coordinator[T, J, PJ]) Run(needles iter.Seq[T], newJob func(T) J, report func(*J)) {
	c.stats = Stats{}

	// Fill and refill: admit needles while slots are free, otherwise step
	// the batch until at least one slot frees up.
	for needle := range needles {
		c.admit(newJob(needle), report)
		for c.live == c.width {
			c.stepAll(report)
		}
	}

	// Drain.
	for c.live > 0 {
		c.stepAll(report)
	}
}

// admit runs Init for a new job in the first free slot. A job that is done
// at Init is reported at once and the slot stays free.
func (c *Coordinator[T, J, PJ]) admit(job J, report func(*J)) {
	i := c.live
	c.slots[i] = job
	c.stats.Jobs++

	s := PJ(&c.slots[i]).Init()
	if !s.Active() {
		c.stats.Immediate++
		report(&c.slots[i])
		c.clear(i)
		return
	}

	s.issue()
	c.occupied.Set(uint(i))
	c.live++
	if c.live > c.stats.MaxLive {
		c.stats.MaxLive = c.live
	}
}

// stepAll steps every occupied slot once, reports finished jobs and
// compacts the survivors to the front.
func (c *Coordinator[T, J, PJ]) stepAll(report func(*J)) {
	freed := false
	for i := 0; i < c.live; i++ {
		s := PJ(&c.slots[i]).Step()
		c.stats.Steps++
		if s.Active() {
			s.issue()
			continue
		}
		report(&c.slots[i])
		c.clear(i)
		c.occupied.Clear(uint(i))
		freed = true
	}
	if freed {
		c.compact()
	}
}

// compact moves live jobs down into free slots so the occupied slots form
// the prefix [0, live). Every move zeroes its source.
func (c *Coordinator[T, J, PJ]) compact() {
	dst, ok := c.occupied.NextClear(0)
	for ok && int(dst) < c.width {
		src, found := c.occupied.NextSet(dst + 1)
		if !found || int(src) >= c.width {
			break
		}
		c.slots[dst] = c.slots[src]
		c.clear(int(src))
		c.occupied.Set(dst)
		c.occupied.Clear(src)
		dst, ok = c.occupied.NextClear(dst + 1)
	}
	c.live = int(c.occupied.Count())
}

func (c *Coordinator[T, J, PJ]) clear(i int) {
	var zero J
	c.slots[i] = zero
}

// Run is a convenience wrapper that creates a Coordinator of the given
// width and runs it once.
func Run[T, J any, PJ Job[J]](width int, needles iter.Seq[T], newJob func(T) J, report func(*J)) (Stats, error) {
	c, err := New[T, J, PJ](width)
	if err != nil {
		return Stats{}, err
	}
	c.Run(needles, newJob, report)
	return c.Stats(), nil
}

// RunSlice is Run over a slice of needles.
func RunSlice[T, J any, PJ Job[J]](width int, needles []T, newJob func(T) J, report func(*J)) (Stats, error) {
	return Run[T, J, PJ](width, slices.Values(needles), newJob, report)
}
