// Package taxonomy maps free text to the closed vocabularies used for
// search: US states, NTEE-style cause areas, and organization-type terms.
// It also renders an organization's structured fields into the canonical
// searchable text that gets embedded.
package taxonomy

// pattern is one entry of an ordered (pattern, canonical value) list.
// Patterns are lowercase; matching is case-insensitive substring.
type pattern struct {
	text string
	code string
}

// stateVocab maps full state names to postal codes. Ordered so that
// matching is deterministic. Two-letter codes are matched separately as
// whole tokens to avoid substring false positives ("ca" in "education").
var stateVocab = []pattern{
	{"alabama", "AL"}, {"alaska", "AK"}, {"arizona", "AZ"}, {"arkansas", "AR"},
	{"california", "CA"}, {"colorado", "CO"}, {"connecticut", "CT"},
	{"delaware", "DE"}, {"district of columbia", "DC"}, {"florida", "FL"},
	{"georgia", "GA"}, {"hawaii", "HI"}, {"idaho", "ID"}, {"illinois", "IL"},
	{"indiana", "IN"}, {"iowa", "IA"}, {"kansas", "KS"}, {"kentucky", "KY"},
	{"louisiana", "LA"}, {"maine", "ME"}, {"maryland", "MD"},
	{"massachusetts", "MA"}, {"michigan", "MI"}, {"minnesota", "MN"},
	{"mississippi", "MS"}, {"missouri", "MO"}, {"montana", "MT"},
	{"nebraska", "NE"}, {"nevada", "NV"}, {"new hampshire", "NH"},
	{"new jersey", "NJ"}, {"new mexico", "NM"}, {"new york", "NY"},
	{"north carolina", "NC"}, {"north dakota", "ND"}, {"ohio", "OH"},
	{"oklahoma", "OK"}, {"oregon", "OR"}, {"pennsylvania", "PA"},
	{"rhode island", "RI"}, {"south carolina", "SC"}, {"south dakota", "SD"},
	{"tennessee", "TN"}, {"texas", "TX"}, {"utah", "UT"}, {"vermont", "VT"},
	{"virginia", "VA"}, {"washington", "WA"}, {"west virginia", "WV"},
	{"wisconsin", "WI"}, {"wyoming", "WY"},
}

// stateNames is the reverse lookup for text expansion.
var stateNames = func() map[string]string {
	m := make(map[string]string, len(stateVocab))
	for _, p := range stateVocab {
		m[p.code] = p.text
	}
	return m
}()

// causeVocab maps query phrasing to NTEE major group codes. More specific
// phrases come before the generic ones so that position-sorted results stay
// stable when both match.
var causeVocab = []pattern{
	{"early childhood education", "B"},
	{"arts", "A"}, {"culture", "A"}, {"museum", "A"}, {"humanities", "A"},
	{"education", "B"}, {"school", "B"}, {"scholarship", "B"}, {"literacy", "B"},
	{"environment", "C"}, {"conservation", "C"}, {"climate", "C"},
	{"animal", "D"}, {"wildlife", "D"},
	{"health", "E"}, {"hospital", "E"}, {"medical care", "E"},
	{"mental health", "F"}, {"crisis intervention", "F"},
	{"disease", "G"}, {"cancer", "G"},
	{"medical research", "H"},
	{"crime", "I"}, {"legal aid", "I"},
	{"employment", "J"}, {"job training", "J"},
	{"food", "K"}, {"agriculture", "K"}, {"nutrition", "K"}, {"hunger", "K"},
	{"housing", "L"}, {"shelter", "L"}, {"homeless", "L"},
	{"disaster relief", "M"}, {"disaster", "M"}, {"public safety", "M"},
	{"emergency", "M"},
	{"recreation", "N"}, {"sports", "N"}, {"athletics", "N"},
	{"youth development", "O"}, {"youth", "O"}, {"children", "O"},
	{"human services", "P"}, {"family services", "P"},
	{"international", "Q"}, {"foreign affairs", "Q"},
	{"civil rights", "R"}, {"advocacy", "R"},
	{"community improvement", "S"}, {"community development", "S"},
	{"philanthropy", "T"}, {"grantmaking", "T"},
	{"science", "U"}, {"technology", "U"},
	{"social science", "V"},
	{"veteran", "W"}, {"public benefit", "W"},
	{"religio", "X"}, {"faith", "X"}, {"church", "X"}, {"ministry", "X"},
	{"spiritual", "X"},
}

// causeLabels expands an NTEE major group letter to its descriptive label.
var causeLabels = map[string]string{
	"A": "arts, culture and humanities",
	"B": "education",
	"C": "environment and conservation",
	"D": "animal-related",
	"E": "health care",
	"F": "mental health and crisis intervention",
	"G": "voluntary health associations and disease research",
	"H": "medical research",
	"I": "crime and legal-related",
	"J": "employment and job training",
	"K": "food, agriculture and nutrition",
	"L": "housing and shelter",
	"M": "public safety, disaster preparedness and relief",
	"N": "recreation and sports",
	"O": "youth development",
	"P": "human services",
	"Q": "international and foreign affairs",
	"R": "civil rights, social action and advocacy",
	"S": "community improvement and capacity building",
	"T": "philanthropy and grantmaking",
	"U": "science and technology",
	"V": "social science",
	"W": "public and societal benefit",
	"X": "religion-related",
	"Y": "mutual and membership benefit",
	"Z": "unknown",
}

// orgTypeVocab lists organization-type phrasings. First match wins.
var orgTypeVocab = []pattern{
	{"private foundation", "foundation"},
	{"foundation", "foundation"},
	{"charity", "charity"},
	{"charities", "charity"},
	{"charitable", "charity"},
	{"nonprofit", "nonprofit"},
	{"non-profit", "nonprofit"},
	{"association", "association"},
	{"church", "church"},
	{"ministry", "church"},
	{"trust", "trust"},
	{"fund", "fund"},
}

// subsectionLabels expands 501(c) subsection codes for the text builder.
var subsectionLabels = map[int]string{
	2:  "501(c)(2) title-holding corporation",
	3:  "501(c)(3) charitable organization",
	4:  "501(c)(4) social welfare organization",
	5:  "501(c)(5) labor or agricultural organization",
	6:  "501(c)(6) business league",
	7:  "501(c)(7) social and recreational club",
	8:  "501(c)(8) fraternal beneficiary society",
	10: "501(c)(10) domestic fraternal society",
	13: "501(c)(13) cemetery company",
	19: "501(c)(19) veterans organization",
}

// CauseAreaLabel returns the descriptive label for an NTEE-style code.
// Only the major group letter matters; "B21" and "B" expand the same way.
// Unknown or empty codes return "".
func CauseAreaLabel(code string) string {
	if code == "" {
		return ""
	}
	return causeLabels[code[:1]]
}

// StateName returns the full state name for a postal code, or "" if unknown.
func StateName(code string) string { return stateNames[code] }

// SubsectionLabel returns the descriptive label for a 501(c) subsection code,
// or "" if unknown.
func SubsectionLabel(code int) string { return subsectionLabels[code] }
