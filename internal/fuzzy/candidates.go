package fuzzy

import "strings"

// Candidate is one distinct reference value eligible for matching.
type Candidate struct {
	Value  string
	folded []rune
}

// CandidateSet is the deduplicated universe of reference values for a batch,
// kept in order of first appearance. It is read-only after construction and
// safe to share between goroutines.
type CandidateSet struct {
	candidates []Candidate
}

// NewCandidateSet trims every value, drops empties and removes exact
// duplicates (case-sensitive), keeping the first occurrence.
func NewCandidateSet(values []string) *CandidateSet {
	seen := make(map[string]struct{}, len(values))
	set := &CandidateSet{candidates: make([]Candidate, 0, len(values))}

	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		set.candidates = append(set.candidates, Candidate{Value: v, folded: fold(v)})
	}

	return set
}

// Len returns the number of candidates. A nil set is empty.
func (s *CandidateSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.candidates)
}

// Values returns the candidate strings in order.
func (s *CandidateSet) Values() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.candidates))
	for i, c := range s.candidates {
		out[i] = c.Value
	}
	return out
}
