// Package layout defines physical memory layouts for static sorted arrays.
//
// A layout policy decouples where an element is stored (its physical index)
// from where it sits in ascending order (its sorted rank). Policies are
// stateless zero-size types used as type parameters, so every call is
// instantiated for the concrete policy; nothing on the search path goes
// through an interface value.
//
// # Policies
//
//   - Eytzinger: implicit binary search tree in level order, with lookahead
//     prefetching during search.
//   - BTree: implicit B-ary tree of fixed-size blocks. Integer keys under the
//     natural (or reversed) order use vector block compares.
//   - Sorted: the plain sorted array, plus a k-ary batched search driven by
//     the amac coordinator.
//
// # Coordinates
//
// UnorderedIndex is a physical slot, OrderedIndex is a sorted rank. Every
// policy provides the bijection between the two and in-order traversal over
// physical slots, with -1 as the sentinel before the first and after the
// last element.
package layout
