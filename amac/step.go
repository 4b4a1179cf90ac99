package amac

import (
	"unsafe"

	"github.com/hupe1980/golayout/internal/prefetch"
)

// Fanout is the maximum number of addresses a single step may request.
const Fanout = 8

// Step is the result of Job.Init or Job.Step: the addresses to prefetch
// before the job is stepped again. The zero Step means done.
type Step struct {
	addrs [Fanout]unsafe.Pointer
}

// Done returns the terminal step.
func Done() Step {
	return Step{}
}

// Prefetch returns a step requesting the given addresses. Nil addresses are
// allowed and skipped. It panics if more than Fanout addresses are passed.
func Prefetch(ptrs ...unsafe.Pointer) Step {
	if len(ptrs) > Fanout {
		panic("amac: step exceeds fanout")
	}
	var s Step
	copy(s.addrs[:], ptrs)
	return s
}

// At returns the address of s[i], or nil if i is out of range.
func At[T any](s []T, i int) unsafe.Pointer {
	if uint(i) >= uint(len(s)) {
		return nil
	}
	return unsafe.Pointer(&s[i])
}

// Set stores p in address slot i.
func (s *Step) Set(i int, p unsafe.Pointer) {
	s.addrs[i] = p
}

// Addr returns address slot i.
func (s Step) Addr(i int) unsafe.Pointer {
	return s.addrs[i]
}

// Active reports whether at least one address is non-nil.
func (s Step) Active() bool {
	for _, p := range s.addrs {
		if p != nil {
			return true
		}
	}
	return false
}

func (s *Step) issue() {
	for _, p := range s.addrs {
		if p != nil {
			prefetch.Addr(p)
		}
	}
}
