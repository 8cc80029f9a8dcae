package organization

import (
	"encoding/binary"
	"math"
	"strconv"

	"github.com/givesearch/orgdex/internal/domain"
)

// Hash field names. Derived fields carry the double-underscore prefix to
// keep them apart from source attributes.
const (
	fieldName       = "name"
	fieldSubName    = "sub_name"
	fieldAddress    = "address"
	fieldCity       = "city"
	fieldState      = "state"
	fieldZip        = "zip"
	fieldSubsection = "subseccd"
	fieldCause      = "ntee_code"
	fieldText       = "__text"
	fieldVector     = "__vector"
)

// buildHashFields converts an Organization into a flat map for HSET.
func buildHashFields(org *domain.Organization) map[string]string {
	m := map[string]string{
		fieldName:       org.Name,
		fieldSubName:    org.SubName,
		fieldAddress:    org.Address,
		fieldCity:       org.City,
		fieldState:      org.State,
		fieldZip:        org.Zip,
		fieldSubsection: strconv.Itoa(org.SubsectionCode),
		fieldCause:      org.CauseCode,
		fieldText:       org.SearchableText,
	}
	if org.HasEmbedding() {
		m[fieldVector] = vectorToBytes(org.Embedding)
	}
	return m
}

// parseHashFields converts a flat hash map back into an Organization.
func parseHashFields(ein int64, m map[string]string) domain.Organization {
	subsection, _ := strconv.Atoi(m[fieldSubsection])
	return domain.Organization{
		EIN:            ein,
		Name:           m[fieldName],
		SubName:        m[fieldSubName],
		Address:        m[fieldAddress],
		City:           m[fieldCity],
		State:          m[fieldState],
		Zip:            m[fieldZip],
		SubsectionCode: subsection,
		CauseCode:      m[fieldCause],
		SearchableText: m[fieldText],
		Embedding:      bytesToVector(m[fieldVector]),
	}
}

// vectorToBytes serializes []float32 to a binary string (4 bytes per float, little-endian).
func vectorToBytes(v []float32) string {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return string(buf)
}

// bytesToVector deserializes a binary string back to []float32.
// Malformed data yields nil, which reads as "not indexed".
func bytesToVector(s string) []float32 {
	b := []byte(s)
	if len(b) == 0 || len(b)%4 != 0 {
		return nil
	}
	v := make([]float32, len(b)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return v
}
