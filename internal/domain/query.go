package domain

// QueryComponents is the decomposition of a raw query against the closed
// taxonomy vocabularies. Ephemeral: recomputed per request, never stored.
type QueryComponents struct {
	Geographic []string `json:"geographic"`  // two-letter state codes, in recognition order
	CauseAreas []string `json:"cause_areas"` // matched cause-area codes
	OrgType    string   `json:"org_type"`    // "" when no type phrasing detected
}

// FirstState returns the first recognized state code, or "" when none matched.
// Hybrid search uses it to fill in an absent state filter.
func (q QueryComponents) FirstState() string {
	if len(q.Geographic) == 0 {
		return ""
	}
	return q.Geographic[0]
}
