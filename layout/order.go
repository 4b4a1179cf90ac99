package layout

import "cmp"

// OrderKind classifies an Order. Only natural and reversed orders over
// integer keys are eligible for vector block search.
type OrderKind uint8

const (
	// OrderCustom is an arbitrary strict weak ordering.
	OrderCustom OrderKind = iota
	// OrderAscending is the natural order of cmp.Ordered keys.
	OrderAscending
	// OrderDescending is the reversed natural order of cmp.Ordered keys.
	OrderDescending
)

// String returns the string representation of an OrderKind.
func (k OrderKind) String() string {
	switch k {
	case OrderCustom:
		return "custom"
	case OrderAscending:
		return "ascending"
	case OrderDescending:
		return "descending"
	default:
		return "unknown"
	}
}

// Order is a strict weak ordering over K. The zero Order is invalid.
type Order[K any] struct {
	less func(a, b K) bool
	kind OrderKind
}

// Ascending orders keys by their natural order (cmp.Less).
func Ascending[K cmp.Ordered]() Order[K] {
	return Order[K]{less: cmp.Less[K], kind: OrderAscending}
}

// Descending orders keys by their reversed natural order.
func Descending[K cmp.Ordered]() Order[K] {
	return Order[K]{less: func(a, b K) bool { return cmp.Less(b, a) }, kind: OrderDescending}
}

// OrderBy wraps a custom less function.
func OrderBy[K any](less func(a, b K) bool) Order[K] {
	return Order[K]{less: less, kind: OrderCustom}
}

// Projected orders keys by comparing proj(key) under by.
func Projected[K, P any](proj func(K) P, by Order[P]) Order[K] {
	less := by.less
	return Order[K]{
		less: func(a, b K) bool { return less(proj(a), proj(b)) },
		kind: OrderCustom,
	}
}

// Less reports whether a sorts before b.
func (o Order[K]) Less(a, b K) bool {
	return o.less(a, b)
}

// Equivalent reports whether neither key sorts before the other.
func (o Order[K]) Equivalent(a, b K) bool {
	return !o.less(a, b) && !o.less(b, a)
}

// Kind returns the order classification.
func (o Order[K]) Kind() OrderKind {
	return o.kind
}

// Valid reports whether the order has a comparison function.
func (o Order[K]) Valid() bool {
	return o.less != nil
}
