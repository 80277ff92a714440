package scopes

// distContext computes Levenshtein edit distances with a reusable column
// buffer, so ranking a query against every scope in a large model performs
// zero allocations after the first call.
type distContext struct {
	column []int
}

func (ctx *distContext) buf(length int) []int {
	if cap(ctx.column) < length {
		ctx.column = make([]int, length)
	}

	return ctx.column[:length]
}

// distance returns the minimum number of single-rune insertions, deletions
// and substitutions needed to turn a into b. Space is O(min(m,n)) because
// only one matrix column is kept.
func (ctx *distContext) distance(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)

	if len(rb) == 0 {
		return len(ra)
	}

	column := ctx.buf(len(ra) + 1)
	for idx := 1; idx <= len(ra); idx++ {
		column[idx] = idx
	}

	for col := range rb {
		column[0] = col + 1
		lastDiag := col

		for row := range ra {
			oldDiag := column[row+1]

			cost := 0
			if ra[row] != rb[col] {
				cost = 1
			}

			column[row+1] = min(
				column[row+1]+1,
				column[row]+1,
				lastDiag+cost,
			)
			lastDiag = oldDiag
		}
	}

	return column[len(ra)]
}
