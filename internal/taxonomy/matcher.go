package taxonomy

import (
	"sort"
	"strings"

	"github.com/givesearch/orgdex/internal/domain"
)

// ExtractQueryComponents decomposes a raw query against the closed
// vocabularies. Matching is case-insensitive substring scanning; there is no
// fuzzy matching and no ranking among matches. An unrecognized query yields
// empty component sets, never an error.
func ExtractQueryComponents(query string) domain.QueryComponents {
	lower := strings.ToLower(query)

	qc := domain.QueryComponents{
		Geographic: matchStates(query, lower),
		CauseAreas: matchOrdered(lower, causeVocab),
		OrgType:    matchOrgType(lower),
	}
	return qc
}

// posMatch records where in the query a vocabulary entry matched,
// so results come back in mention order.
type posMatch struct {
	pos  int
	code string
}

func matchStates(query, lower string) []string {
	matches := collectMatches(lower, stateVocab)

	// Bare postal codes match only as uppercase whole tokens of the original
	// query ("CA", "NY"). Lowercase two-letter tokens are left alone: "in"
	// is a preposition far more often than it is Indiana.
	pos := 0
	for _, tok := range strings.Fields(query) {
		idx := strings.Index(query[pos:], tok) + pos
		pos = idx + len(tok)

		tok = strings.Trim(tok, ".,;:!?()")
		if len(tok) != 2 {
			continue
		}
		if _, ok := stateNames[tok]; ok {
			matches = append(matches, posMatch{pos: idx, code: tok})
		}
	}

	return dedupeByPosition(matches)
}

func matchOrdered(lower string, vocab []pattern) []string {
	return dedupeByPosition(collectMatches(lower, vocab))
}

func collectMatches(lower string, vocab []pattern) []posMatch {
	var matches []posMatch
	for _, p := range vocab {
		if idx := strings.Index(lower, p.text); idx >= 0 {
			matches = append(matches, posMatch{pos: idx, code: p.code})
		}
	}
	return matches
}

// dedupeByPosition sorts matches by where they appear in the query and drops
// repeated codes, keeping the earliest mention.
func dedupeByPosition(matches []posMatch) []string {
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].pos < matches[j].pos })

	seen := make(map[string]struct{}, len(matches))
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		if _, ok := seen[m.code]; ok {
			continue
		}
		seen[m.code] = struct{}{}
		out = append(out, m.code)
	}
	return out
}

func matchOrgType(lower string) string {
	for _, p := range orgTypeVocab {
		if strings.Contains(lower, p.text) {
			return p.code
		}
	}
	return ""
}
