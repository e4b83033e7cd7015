package collections

// Set is an unordered collection of unique values
type Set[V comparable] map[V]struct{}

// NewSet creates a set holding the given values
func NewSet[V comparable](values ...V) Set[V] {
	set := make(Set[V], len(values))
	for _, v := range values {
		set.Add(v)
	}
	return set
}

// Add an element to the set
func (set Set[V]) Add(value V) {
	set[value] = struct{}{}
}

// Remove an element from the set (or no-op if element not present)
func (set Set[V]) Remove(value V) {
	delete(set, value)
}

// Contains returns whether the element exists within the set
func (set Set[V]) Contains(value V) bool {
	_, contains := set[value]
	return contains
}

// Len returns the number of elements
func (set Set[V]) Len() int {
	return len(set)
}

// Clear removes every element
func (set Set[V]) Clear() {
	clear(set)
}

// Items returns the elements in unspecified order
func (set Set[V]) Items() []V {
	items := make([]V, 0, len(set))
	for v := range set {
		items = append(items, v)
	}
	return items
}

// Difference returns a new Set containing all elements from the calling set
// not present in the other set
func (set Set[V]) Difference(other Set[V]) Set[V] {
	difference := make(Set[V])
	for v := range set {
		if !other.Contains(v) {
			difference.Add(v)
		}
	}
	return difference
}
