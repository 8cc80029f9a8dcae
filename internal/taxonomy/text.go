package taxonomy

import (
	"strings"

	"github.com/givesearch/orgdex/internal/domain"
)

// BuildSearchableText renders an organization's structured fields into one
// normalized text blob. Coded fields are expanded to their labels so the
// embedding sees "youth development" rather than "O". Pure and deterministic;
// missing fields shorten the output, and an organization with no usable
// fields yields "".
func BuildSearchableText(org *domain.Organization) string {
	parts := make([]string, 0, 5)

	if name := strings.TrimSpace(org.Name); name != "" {
		parts = append(parts, name)
	}
	if sub := strings.TrimSpace(org.SubName); sub != "" {
		parts = append(parts, sub)
	}
	if label := CauseAreaLabel(org.CauseCode); label != "" {
		parts = append(parts, label)
	}
	if label := SubsectionLabel(org.SubsectionCode); label != "" {
		parts = append(parts, label)
	}
	if locale := localeText(org.City, org.State); locale != "" {
		parts = append(parts, locale)
	}

	return strings.Join(parts, ". ")
}

// localeText renders "City, State Name" degrading gracefully when either
// side is missing. State codes without a known expansion pass through as-is.
func localeText(city, state string) string {
	city = strings.TrimSpace(city)
	state = strings.TrimSpace(state)

	expanded := StateName(strings.ToUpper(state))
	if expanded == "" {
		expanded = state
	}

	switch {
	case city != "" && expanded != "":
		return city + ", " + expanded
	case city != "":
		return city
	default:
		return expanded
	}
}

// SampleText renders the searchable text an organization matching the query
// components would produce. Returned by the explain operation so callers can
// see how coded matches expand.
func SampleText(qc *domain.QueryComponents) string {
	sample := domain.Organization{}
	if len(qc.CauseAreas) > 0 {
		sample.CauseCode = qc.CauseAreas[0]
	}
	if len(qc.Geographic) > 0 {
		sample.State = qc.Geographic[0]
	}
	if qc.OrgType != "" {
		sample.SubName = qc.OrgType
	}
	return BuildSearchableText(&sample)
}
