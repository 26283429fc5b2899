package fuzzy

// Match is the outcome of scanning a CandidateSet for one query.
type Match struct {
	Candidate  string
	Similarity float64
	// Index is the candidate's position in the set, or -1 when Found is false.
	Index int
	Found bool
}

// NoCandidate is returned when there was nothing to compare against.
var NoCandidate = Match{Index: -1}

// Selector finds the best candidate for a query. A Selector keeps scratch
// buffers and must not be used from more than one goroutine; create one per
// worker over a shared CandidateSet.
type Selector struct {
	set *CandidateSet
	m   matrix
}

// NewSelector returns a Selector over set.
func NewSelector(set *CandidateSet) *Selector {
	return &Selector{set: set}
}

// Best scans candidates in order and returns the one with the strictly
// greatest similarity to query. On exact ties the earlier candidate wins.
// An empty or nil set yields NoCandidate.
//
// Candidates whose length difference alone rules out beating the running
// best are skipped, and the scan stops at a perfect score; neither changes
// the result of an exhaustive scan.
func (s *Selector) Best(query string) Match {
	if s.set.Len() == 0 {
		return NoCandidate
	}

	q := fold(query)
	best := NoCandidate
	best.Similarity = -1

	for i := range s.set.candidates {
		c := &s.set.candidates[i]

		if best.Found {
			gap := len(q) - len(c.folded)
			if gap < 0 {
				gap = -gap
			}
			if score(len(q), len(c.folded), gap) <= best.Similarity {
				continue
			}
		}

		sim := score(len(q), len(c.folded), s.m.distance(q, c.folded))
		if sim > best.Similarity {
			best = Match{Candidate: c.Value, Similarity: sim, Index: i, Found: true}
			if sim == 1.0 {
				break
			}
		}
	}

	return best
}

// BestMatch is a convenience wrapper for a single query.
func BestMatch(query string, set *CandidateSet) Match {
	return NewSelector(set).Best(query)
}
