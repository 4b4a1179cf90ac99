package prefetch

import "unsafe"

// Addr hints the CPU to load the cache line holding p into L1.
// A nil pointer is ignored.
func Addr(p unsafe.Pointer) {
	if p == nil {
		return
	}
	prefetchT0(p)
}

// Addrs issues Addr for every non-nil pointer in ps.
func Addrs(ps []unsafe.Pointer) {
	for _, p := range ps {
		if p != nil {
			prefetchT0(p)
		}
	}
}

// Elem hints the cache line of s[i]. Out-of-range indexes are ignored.
func Elem[T any](s []T, i int) {
	if uint(i) < uint(len(s)) {
		prefetchT0(unsafe.Pointer(&s[i]))
	}
}
