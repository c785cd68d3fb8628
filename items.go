package sequences

import "slices"

// Index is an ordered map from item number to item string. Keys are unique
// and iteration is always in ascending numeric order. The zero value is not
// usable; call NewIndex.
type Index struct {
	nums  []int
	byNum map[int]string
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{byNum: make(map[int]string)}
}

// Len returns the number of items.
func (ix *Index) Len() int { return len(ix.nums) }

// Has reports whether number n is present.
func (ix *Index) Has(n int) bool {
	_, ok := ix.byNum[n]
	return ok
}

// Get returns the item for number n.
func (ix *Index) Get(n int) (string, bool) {
	s, ok := ix.byNum[n]
	return s, ok
}

// Set inserts or replaces the item for number n, keeping numeric order.
func (ix *Index) Set(n int, item string) {
	if _, ok := ix.byNum[n]; !ok {
		i, _ := slices.BinarySearch(ix.nums, n)
		ix.nums = slices.Insert(ix.nums, i, n)
	}
	ix.byNum[n] = item
}

// Delete removes number n and reports whether it was present.
func (ix *Index) Delete(n int) bool {
	if _, ok := ix.byNum[n]; !ok {
		return false
	}
	delete(ix.byNum, n)
	i, _ := slices.BinarySearch(ix.nums, n)
	ix.nums = slices.Delete(ix.nums, i, i+1)
	return true
}

// Numbers returns the item numbers in ascending order.
func (ix *Index) Numbers() []int {
	return slices.Clone(ix.nums)
}

// Items returns the item strings in ascending number order.
func (ix *Index) Items() []string {
	out := make([]string, len(ix.nums))
	for i, n := range ix.nums {
		out[i] = ix.byNum[n]
	}
	return out
}

// At returns the i-th entry by ascending rank.
func (ix *Index) At(i int) (int, string) {
	n := ix.nums[i]
	return n, ix.byNum[n]
}

// First returns the lowest-numbered entry.
func (ix *Index) First() (int, string, bool) {
	if len(ix.nums) == 0 {
		return 0, "", false
	}
	n := ix.nums[0]
	return n, ix.byNum[n], true
}

// Last returns the highest-numbered entry.
func (ix *Index) Last() (int, string, bool) {
	if len(ix.nums) == 0 {
		return 0, "", false
	}
	n := ix.nums[len(ix.nums)-1]
	return n, ix.byNum[n], true
}

// Next returns the nearest entry with a number greater than n.
func (ix *Index) Next(n int) (int, string, bool) {
	i, found := slices.BinarySearch(ix.nums, n)
	if found {
		i++
	}
	if i >= len(ix.nums) {
		return 0, "", false
	}
	return ix.nums[i], ix.byNum[ix.nums[i]], true
}

// Prev returns the nearest entry with a number less than n.
func (ix *Index) Prev(n int) (int, string, bool) {
	i, _ := slices.BinarySearch(ix.nums, n)
	if i == 0 {
		return 0, "", false
	}
	m := ix.nums[i-1]
	return m, ix.byNum[m], true
}

// Between returns the items with lo <= number <= hi, ascending.
func (ix *Index) Between(lo, hi int) []string {
	var out []string
	from, _ := slices.BinarySearch(ix.nums, lo)
	for _, n := range ix.nums[from:] {
		if n > hi {
			break
		}
		out = append(out, ix.byNum[n])
	}
	return out
}

// clone returns an independent copy.
func (ix *Index) clone() *Index {
	out := NewIndex()
	for _, n := range ix.nums {
		out.Set(n, ix.byNum[n])
	}
	return out
}

// Clear removes all entries.
func (ix *Index) Clear() {
	ix.nums = nil
	ix.byNum = make(map[int]string)
}
