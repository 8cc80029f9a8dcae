package domain

// Organization is a nonprofit organization record as loaded from the store.
// Identity fields mirror the IRS business master file; the search core never
// mutates them. SearchableText and Embedding are derived and written back
// only by an explicit refresh.
type Organization struct {
	EIN            int64
	Name           string
	SubName        string
	Address        string
	City           string
	State          string // two-letter code
	Zip            string
	SubsectionCode int    // 501(c)(X)
	CauseCode      string // NTEE-style classification code
	SearchableText string
	Embedding      []float32 // nil means not yet indexed
}

// HasEmbedding reports whether the organization has been indexed.
// An absent vector is distinct from an all-zero one.
func (o *Organization) HasEmbedding() bool { return len(o.Embedding) > 0 }
