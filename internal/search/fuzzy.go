package search

import (
	"math"
	"slices"
	"strings"
	"unicode"

	"github.com/filmshelf/filmshelf/internal/normalize"
)

// Scale factors for the weighted ratio.
const (
	unbaseScale        = 0.95
	partialScale       = 0.9
	widePartialScale   = 0.6
	partialLengthRatio = 1.5
	wideLengthRatio    = 8.0
)

// Score rates how well choice matches query on a 0-100 scale. It takes the
// best of a plain ratio, token-sort and token-set ratios, and, when one
// string is much longer than the other, partial (best window) ratios.
func Score(query, choice string) int {
	q := process(query)
	c := process(choice)
	if q == "" || c == "" {
		return 0
	}

	base := ratio(q, c)

	lq, lc := runeLen(q), runeLen(c)
	lenRatio := float64(max(lq, lc)) / float64(min(lq, lc))

	if lenRatio < partialLengthRatio {
		tsor := tokenSortRatio(q, c, ratio) * unbaseScale
		tser := tokenSetRatio(q, c, ratio) * unbaseScale
		return round(max(base, tsor, tser))
	}

	scale := partialScale
	if lenRatio >= wideLengthRatio {
		scale = widePartialScale
	}
	partial := partialRatio(q, c) * scale
	ptsor := tokenSortRatio(q, c, partialRatio) * unbaseScale * scale
	ptser := tokenSetRatio(q, c, partialRatio) * unbaseScale * scale
	return round(max(base, partial, ptsor, ptser))
}

// process folds s and reduces it to space-separated runs of letters and digits.
func process(s string) string {
	s = normalize.Fold(s)
	s = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			return r
		}
		return ' '
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

type ratioFunc func(a, b string) float64

// ratio is the indel similarity of a and b, 0-100: twice the longest
// common subsequence over the combined length. A swapped pair of letters
// costs two of the combined runes.
func ratio(a, b string) float64 {
	if a == b {
		return 100
	}
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}
	return 100 * float64(2*lcsLength(ra, rb)) / float64(total)
}

// lcsLength returns the length of the longest common subsequence of a and b.
func lcsLength(a, b []rune) int {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				cur[j] = prev[j-1] + 1
			} else {
				cur[j] = max(prev[j], cur[j-1])
			}
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}

// partialRatio scores the shorter string against every equally long window
// of the longer one and keeps the best.
func partialRatio(a, b string) float64 {
	short, long := []rune(a), []rune(b)
	if len(short) > len(long) {
		short, long = long, short
	}
	if len(short) == 0 {
		return 0
	}

	s := string(short)
	best := 0.0
	for i := 0; i+len(short) <= len(long); i++ {
		r := ratio(s, string(long[i:i+len(short)]))
		if r > best {
			best = r
			if best == 100 {
				break
			}
		}
	}
	return best
}

// tokenSortRatio compares the strings after sorting their words.
func tokenSortRatio(a, b string, fn ratioFunc) float64 {
	return fn(sortedTokens(a), sortedTokens(b))
}

// tokenSetRatio compares the shared words against each side's full word set,
// so extra words on one side cost little.
func tokenSetRatio(a, b string, fn ratioFunc) float64 {
	ta, tb := tokenSet(a), tokenSet(b)

	var inter, onlyA, onlyB []string
	for t := range ta {
		if tb[t] {
			inter = append(inter, t)
		} else {
			onlyA = append(onlyA, t)
		}
	}
	for t := range tb {
		if !ta[t] {
			onlyB = append(onlyB, t)
		}
	}
	slices.Sort(inter)
	slices.Sort(onlyA)
	slices.Sort(onlyB)

	sect := strings.Join(inter, " ")
	combinedA := strings.TrimSpace(sect + " " + strings.Join(onlyA, " "))
	combinedB := strings.TrimSpace(sect + " " + strings.Join(onlyB, " "))

	return max(fn(sect, combinedA), fn(sect, combinedB), fn(combinedA, combinedB))
}

func sortedTokens(s string) string {
	fields := strings.Fields(s)
	slices.Sort(fields)
	return strings.Join(fields, " ")
}

func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, f := range strings.Fields(s) {
		set[f] = true
	}
	return set
}

func runeLen(s string) int {
	return len([]rune(s))
}

func round(f float64) int {
	return int(math.Round(f))
}
