package dedupe

// Similarity returns the percentage of bytes shared by a and b, computed the way PHP's similar_text
// does it: take the longest common substring, recurse into the pieces left of it and right of it, and
// report 2*matched*100/(len(a)+len(b)). Two empty strings score 0.
//
// Comparison is byte based. Worst case is O(n·m) time and memory: the common-prefix table is built once
// and every recursion level scans its window of that table.
func Similarity(a, b string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	t := newPrefixTable(a, b)
	matched := t.matched(0, len(a), 0, len(b))
	return float64(matched) * 2 * 100 / float64(len(a)+len(b))
}

// prefixTable holds, for every (i, j), the length of the common prefix of a[i:] and b[j:].
type prefixTable struct {
	cols int
	run  []int32
}

func newPrefixTable(a, b string) prefixTable {
	cols := len(b) + 1
	run := make([]int32, (len(a)+1)*cols)
	for i := len(a) - 1; i >= 0; i-- {
		for j := len(b) - 1; j >= 0; j-- {
			if a[i] == b[j] {
				run[i*cols+j] = run[(i+1)*cols+j+1] + 1
			}
		}
	}
	return prefixTable{cols: cols, run: run}
}

// longest finds the first longest common substring of a[s1:e1] and b[s2:e2], scanning a in the outer
// loop and b in the inner loop. Only a strictly longer match replaces the current one.
func (t prefixTable) longest(s1, e1, s2, e2 int) (pos1, pos2, length int) {
	for i := s1; i < e1; i++ {
		row := i * t.cols
		for j := s2; j < e2; j++ {
			l := int(t.run[row+j])
			if l == 0 {
				continue
			}
			l = min(l, e1-i, e2-j)
			if l > length {
				pos1, pos2, length = i, j, l
			}
		}
	}
	return pos1, pos2, length
}

func (t prefixTable) matched(s1, e1, s2, e2 int) int {
	if s1 >= e1 || s2 >= e2 {
		return 0
	}

	pos1, pos2, length := t.longest(s1, e1, s2, e2)
	if length == 0 {
		return 0
	}

	sum := length
	sum += t.matched(s1, pos1, s2, pos2)
	sum += t.matched(pos1+length, e1, pos2+length, e2)
	return sum
}
