package request

import (
	"errors"
	"strings"
	"testing"

	"github.com/givesearch/orgdex/internal/domain"
	"github.com/givesearch/orgdex/internal/domain/search/mode"
)

func TestNew_Defaults(t *testing.T) {
	req, err := New("youth programs", "", "", "", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Mode() != mode.Hybrid {
		t.Errorf("expected default mode hybrid, got %q", req.Mode())
	}
	if req.Limit() != DefaultLimit {
		t.Errorf("expected default limit %d, got %d", DefaultLimit, req.Limit())
	}
}

func TestNew_EmptyQuery(t *testing.T) {
	_, err := New("   ", mode.Semantic, "", "", 10)
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestNew_QueryTooLong(t *testing.T) {
	_, err := New(strings.Repeat("x", MaxQueryLength+1), "", "", "", 10)
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestNew_InvalidMode(t *testing.T) {
	_, err := New("food banks", mode.Mode("fuzzy"), "", "", 10)
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestNew_ClampsLimit(t *testing.T) {
	req, err := New("food banks", mode.Keyword, "", "", MaxLimit+50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Limit() != MaxLimit {
		t.Errorf("expected limit clamped to %d, got %d", MaxLimit, req.Limit())
	}
}

func TestNew_UppercasesState(t *testing.T) {
	req, err := New("food banks", "", " ca ", "K", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.State() != "CA" {
		t.Errorf("expected state CA, got %q", req.State())
	}
	if req.CauseCode() != "K" {
		t.Errorf("expected cause code K, got %q", req.CauseCode())
	}
}
