package result

import (
	"testing"

	"github.com/givesearch/orgdex/internal/domain"
)

func TestResultAccessors(t *testing.T) {
	org := domain.Organization{EIN: 941234567, Name: "Bay Area Youth Fund", State: "CA"}
	r := New(org, 0.82, Hybrid)

	if r.EIN() != 941234567 {
		t.Errorf("EIN() = %d, want 941234567", r.EIN())
	}
	if r.Org().Name != "Bay Area Youth Fund" {
		t.Errorf("Org().Name = %q", r.Org().Name)
	}
	if r.Score() != 0.82 {
		t.Errorf("Score() = %f, want 0.82", r.Score())
	}
	if r.Match() != Hybrid {
		t.Errorf("Match() = %q, want hybrid", r.Match())
	}
}
