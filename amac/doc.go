// Package amac implements an asynchronous memory access coordinator.
//
// AMAC interleaves many independent, memory-bound state machines ("jobs") on
// a single goroutine. Each job step returns the addresses it will touch next;
// the coordinator issues hardware prefetch hints for them and moves on to
// other jobs, so by the time it returns to a job its data is likely cached.
//
// # Job Contract
//
// A job is a value type J whose pointer implements:
//
//	Init() Step  // first step, issued when the job is admitted
//	Step() Step  // every following step
//
// A Step carries up to Fanout addresses. A step with at least one non-nil
// address is active; the zero Step means the job is done. Once a job reports
// done it is never stepped again, and its result must stay final.
//
// # Ordering
//
// Jobs are reported in completion order, not submission order. Callers that
// need input order carry a sequence number inside the job and re-sort.
//
// # Concurrency
//
// A Coordinator is single-threaded and synchronous. "Concurrency" here is
// memory-level parallelism from prefetching; no goroutines are started and a
// run always processes every needle.
package amac
