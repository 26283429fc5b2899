// Package fuzzy implements the approximate string matching used to reconcile
// customer names against restricted party list entries.
//
// Key functions:
//   - Distance: case-insensitive edit distance between two strings
//   - Similarity: distance normalized into a [0,1] score
//   - NewCandidateSet: deduplicated, order-preserving reference values
//   - Selector.Best: best-scoring candidate for a query, first-seen wins ties
//   - Classify: maps a similarity score onto a confidence tier
package fuzzy
