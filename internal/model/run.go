package model

import "time"

// Run is a persisted record of one batch execution.
type Run struct {
	CreatedAt      time.Time
	TierCounts     map[Tier]int
	ID             string
	SourceFile     string
	CustomerField  string
	ReferenceField string
	Summary        string
	RecordCount    int
	CandidateCount int
	Duration       time.Duration
}
