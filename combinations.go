package retsu

// Combinations2 expands an aligned query result into every unordered pair of
// its rows. For each input vector it returns a left and a right vector of
// length n(n-1)/2; pair p holds rows i < j, enumerated with i outer and j
// inner, so pairwise systems see every entity pair exactly once.
func Combinations2(results []*Indices) (left, right []*Indices, err error) {
	rows := make([][]uint32, len(results))
	n := -1
	for k, r := range results {
		if rows[k], err = r.Slots(); err != nil {
			return nil, nil, err
		}
		if n < 0 {
			n = len(rows[k])
		} else if len(rows[k]) != n {
			return nil, nil, shapeMismatch(n, len(rows[k]))
		}
	}
	pairs := 0
	if n > 1 {
		pairs = n * (n - 1) / 2
	}
	left = make([]*Indices, len(rows))
	right = make([]*Indices, len(rows))
	for k, slots := range rows {
		l := make([]uint32, 0, pairs)
		r := make([]uint32, 0, pairs)
		for i := 0; i < len(slots); i++ {
			for j := i + 1; j < len(slots); j++ {
				l = append(l, slots[i])
				r = append(r, slots[j])
			}
		}
		left[k] = newIndicesOwned(l)
		right[k] = newIndicesOwned(r)
	}
	return left, right, nil
}
