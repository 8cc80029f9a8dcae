// Package filter narrows the candidate set pulled from storage for a
// ranking or refresh operation.
package filter

import "strings"

// Filter selects organizations by structural attributes. Zero values mean
// "no constraint".
type Filter struct {
	State            string // two-letter state code
	CauseCode        string // NTEE-style code; only the major group letter is indexed
	RequireEmbedding bool
	Limit            int // candidate cap; 0 means unbounded
}

// Normalized returns a copy with the state code uppercased.
func (f Filter) Normalized() Filter {
	f.State = strings.ToUpper(strings.TrimSpace(f.State))
	return f
}
