// Package match pairs artwork documents with the image files that share
// their name. Matching runs per directory: exact base-name equality wins
// outright, then a unique normalized-name match, then Levenshtein similarity
// ranking guarded by a confidence threshold and a tie epsilon. Ambiguity is
// never resolved by arbitrary order; an ambiguous document stays unmatched.
package match

import (
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"unicode"
)

// Reason records how (or why not) a document was paired.
type Reason string

const (
	ReasonExact          Reason = "exact"
	ReasonNormalized     Reason = "normalized"
	ReasonSimilarity     Reason = "similarity"
	ReasonNoCandidates   Reason = "no_candidates"
	ReasonBelowThreshold Reason = "below_threshold"
	ReasonAmbiguous      Reason = "ambiguous"
)

// Result is the outcome of matching one document against the images of its
// directory. Images holds the claimed file names; an unmatched document has
// none. Score is 1.0 for exact and normalized matches.
type Result struct {
	Document      string
	Images        []string
	Score         float64
	Reason        Reason
	BestCandidate string // closest image for unmatched documents, if any
}

// Matched reports whether the document claimed at least one image.
func (r Result) Matched() bool {
	return len(r.Images) > 0
}

// Matcher holds the similarity selection policy.
type Matcher struct {
	// Threshold is the minimum similarity score for a fuzzy match.
	Threshold float64
	// Epsilon is the margin within which the top two candidates are
	// considered tied, leaving the document unmatched.
	Epsilon float64
}

const (
	DefaultThreshold = 0.6
	DefaultEpsilon   = 0.05
)

// New returns a Matcher with the default selection policy.
func New() Matcher {
	return Matcher{Threshold: DefaultThreshold, Epsilon: DefaultEpsilon}
}

// MatchDirectory pairs every document with images from the same directory.
// documents are document file names, images are image file names; comparison
// uses base names. Each image may be claimed by at most one document, so
// documents are processed greedily in descending order of their own best
// score (file name ascending on ties) and claimed images leave the pool.
// Results come back sorted by document name.
func (m Matcher) MatchDirectory(documents, images []string) []Result {
	pool := append([]string(nil), images...)

	order := append([]string(nil), documents...)
	best := make(map[string]float64, len(documents))
	for _, doc := range order {
		best[doc] = m.Match(baseName(doc), pool).Score
	}
	sort.SliceStable(order, func(i, j int) bool {
		if best[order[i]] != best[order[j]] {
			return best[order[i]] > best[order[j]]
		}
		return order[i] < order[j]
	})

	results := make([]Result, 0, len(order))
	for _, doc := range order {
		res := m.Match(baseName(doc), pool)
		res.Document = doc
		pool = remove(pool, res.Images)
		results = append(results, res)
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Document < results[j].Document })
	return results
}

// Match selects the image(s) of candidates corresponding to the document
// base name. Candidates are image file names; claims are returned as file
// names. Serial shots of one work (name-1.jpg, name-2.jpg) are claimed
// together with, or in place of, the exact match.
func (m Matcher) Match(docBase string, candidates []string) Result {
	if len(candidates) == 0 {
		return Result{Reason: ReasonNoCandidates}
	}

	if claimed := exactAndSerial(docBase, candidates); len(claimed) > 0 {
		return Result{Images: claimed, Score: 1.0, Reason: ReasonExact}
	}

	docNorm := Normalize(docBase)
	var normalized []string
	for _, c := range candidates {
		if Normalize(baseName(c)) == docNorm {
			normalized = append(normalized, c)
		}
	}
	if len(normalized) == 1 {
		return Result{Images: normalized, Score: 1.0, Reason: ReasonNormalized}
	}

	return m.bySimilarity(docBase, candidates)
}

// bySimilarity ranks candidates by similarity score and applies the
// threshold and epsilon policy.
func (m Matcher) bySimilarity(docBase string, candidates []string) Result {
	type scored struct {
		name  string
		score float64
	}
	ranked := make([]scored, 0, len(candidates))
	for _, c := range candidates {
		ranked = append(ranked, scored{c, Similarity(docBase, baseName(c))})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].name < ranked[j].name
	})

	top := ranked[0]
	if top.score < m.Threshold {
		return Result{Score: top.score, Reason: ReasonBelowThreshold, BestCandidate: top.name}
	}
	if len(ranked) > 1 && top.score-ranked[1].score < m.Epsilon {
		return Result{Score: top.score, Reason: ReasonAmbiguous, BestCandidate: top.name}
	}
	return Result{Images: []string{top.name}, Score: top.score, Reason: ReasonSimilarity}
}

// exactAndSerial collects candidates whose base name equals docBase, plus
// serially numbered variants (docBase-1, docBase_02, "docBase 3").
func exactAndSerial(docBase string, candidates []string) []string {
	serial := regexp.MustCompile(`^` + regexp.QuoteMeta(strings.ToLower(docBase)) + `[-_ ]\d+$`)

	var claimed []string
	for _, c := range candidates {
		base := strings.ToLower(baseName(c))
		if base == strings.ToLower(docBase) || serial.MatchString(base) {
			claimed = append(claimed, c)
		}
	}
	return claimed
}

// Normalize case-folds a base name and strips every non-alphanumeric rune,
// so that separator and punctuation differences do not defeat a match.
func Normalize(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Similarity scores two base names in [0, 1] as 1 - dist/maxLen over their
// normalized forms, where dist is the Levenshtein distance.
func Similarity(a, b string) float64 {
	na, nb := Normalize(a), Normalize(b)
	if na == nb {
		return 1.0
	}

	ra, rb := []rune(na), []rune(nb)
	maxLen := len(ra)
	if len(rb) > maxLen {
		maxLen = len(rb)
	}
	if maxLen == 0 {
		return 1.0
	}

	return 1.0 - float64(levenshteinDistance(ra, rb))/float64(maxLen)
}

// levenshteinDistance is the classic dynamic-programming edit distance.
func levenshteinDistance(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	matrix := make([][]int, len(a)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(b)+1)
		matrix[i][0] = i
	}
	for j := range matrix[0] {
		matrix[0][j] = j
	}

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}

			matrix[i][j] = min(
				matrix[i-1][j]+1,      // deletion
				matrix[i][j-1]+1,      // insertion
				matrix[i-1][j-1]+cost, // substitution
			)
		}
	}

	return matrix[len(a)][len(b)]
}

func remove(pool, claimed []string) []string {
	if len(claimed) == 0 {
		return pool
	}
	out := pool[:0]
	for _, p := range pool {
		keep := true
		for _, c := range claimed {
			if p == c {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, p)
		}
	}
	return out
}

func baseName(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}
