// Package organization persists organizations as hashes with set-based
// secondary indexes for state, cause area, and embedding presence.
package organization

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/givesearch/orgdex/internal/db"
	"github.com/givesearch/orgdex/internal/domain"
	"github.com/givesearch/orgdex/internal/domain/search/filter"
)

// Key layout under domain.KeyPrefix.
const (
	orgKeyPrefix   = domain.KeyPrefix + "org:"
	idxAllKey      = domain.KeyPrefix + "idx:all"
	idxNoEmbedKey  = domain.KeyPrefix + "idx:noembed"
	idxStatePrefix = domain.KeyPrefix + "idx:state:"
	idxCausePrefix = domain.KeyPrefix + "idx:cause:"
)

// store is the consumer interface for organizations (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	SAdd(ctx context.Context, key string, members ...string) error
	SRem(ctx context.Context, key string, members ...string) error
	SMembers(ctx context.Context, key string) ([]string, error)
	SInter(ctx context.Context, keys ...string) ([]string, error)
}

// Repo implements the organization storage contract.
type Repo struct {
	store store
	dim   int
}

// New creates an organization repository. dim is the embedding width
// accepted by WriteEmbedding.
func New(s store, dim int) *Repo {
	return &Repo{store: s, dim: dim}
}

// Put creates or updates an organization and maintains the secondary
// indexes. When the record already exists, stale state/cause index entries
// are removed first.
func (r *Repo) Put(ctx context.Context, org *domain.Organization) error {
	if org.EIN <= 0 {
		return fmt.Errorf("ein must be positive: %w", domain.ErrInvalidRequest)
	}
	if org.HasEmbedding() && len(org.Embedding) != r.dim {
		return fmt.Errorf("embedding width %d, want %d: %w",
			len(org.Embedding), r.dim, domain.ErrVectorDimMismatch)
	}

	member := einString(org.EIN)
	key := orgKey(org.EIN)

	if existing, err := r.store.HGetAll(ctx, key); err == nil && len(existing) > 0 {
		prev := parseHashFields(org.EIN, existing)
		if prev.State != org.State && prev.State != "" {
			if err := r.store.SRem(ctx, stateKey(prev.State), member); err != nil {
				return fmt.Errorf("clear state index: %w", err)
			}
		}
		if causeGroup(prev.CauseCode) != causeGroup(org.CauseCode) && prev.CauseCode != "" {
			if err := r.store.SRem(ctx, causeKey(prev.CauseCode), member); err != nil {
				return fmt.Errorf("clear cause index: %w", err)
			}
		}
	}

	if err := r.store.HSet(ctx, key, buildHashFields(org)); err != nil {
		return fmt.Errorf("store organization %d: %w", org.EIN, err)
	}
	if err := r.store.SAdd(ctx, idxAllKey, member); err != nil {
		return fmt.Errorf("index organization %d: %w", org.EIN, err)
	}
	if org.State != "" {
		if err := r.store.SAdd(ctx, stateKey(org.State), member); err != nil {
			return fmt.Errorf("index state: %w", err)
		}
	}
	if org.CauseCode != "" {
		if err := r.store.SAdd(ctx, causeKey(org.CauseCode), member); err != nil {
			return fmt.Errorf("index cause: %w", err)
		}
	}

	return r.markEmbeddingPresence(ctx, member, org.HasEmbedding())
}

// Get returns an organization by EIN.
func (r *Repo) Get(ctx context.Context, ein int64) (domain.Organization, error) {
	m, err := r.store.HGetAll(ctx, orgKey(ein))
	if err != nil {
		return domain.Organization{}, fmt.Errorf("get organization %d: %w", ein, err)
	}
	if len(m) == 0 {
		return domain.Organization{}, domain.ErrOrganizationNotFound
	}
	return parseHashFields(ein, m), nil
}

// List returns organizations matching the filter, ordered by ascending EIN,
// bounded by the filter's candidate cap. The cap bounds per-request cost on
// full scans; it trades recall for latency and is tunable via config.
func (r *Repo) List(ctx context.Context, f filter.Filter) ([]domain.Organization, error) {
	members, err := r.candidates(ctx, f)
	if err != nil {
		return nil, err
	}

	eins := make([]int64, 0, len(members))
	for _, m := range members {
		ein, convErr := strconv.ParseInt(m, 10, 64)
		if convErr != nil {
			continue
		}
		eins = append(eins, ein)
	}
	// Sets come back unordered; sort for reproducible scans.
	sort.Slice(eins, func(i, j int) bool { return eins[i] < eins[j] })

	if f.RequireEmbedding {
		eins, err = r.dropUnembedded(ctx, eins)
		if err != nil {
			return nil, err
		}
	}

	if f.Limit > 0 && len(eins) > f.Limit {
		eins = eins[:f.Limit]
	}

	return r.fetch(ctx, eins)
}

// ListMissingEmbedding returns up to limit organizations not yet indexed,
// ordered by ascending EIN.
func (r *Repo) ListMissingEmbedding(ctx context.Context, limit int) ([]domain.Organization, error) {
	members, err := r.store.SMembers(ctx, idxNoEmbedKey)
	if err != nil {
		return nil, fmt.Errorf("list missing embeddings: %w", err)
	}

	eins := make([]int64, 0, len(members))
	for _, m := range members {
		if ein, convErr := strconv.ParseInt(m, 10, 64); convErr == nil {
			eins = append(eins, ein)
		}
	}
	sort.Slice(eins, func(i, j int) bool { return eins[i] < eins[j] })
	if limit > 0 && len(eins) > limit {
		eins = eins[:limit]
	}

	return r.fetch(ctx, eins)
}

// WriteEmbedding persists the derived searchable text and vector for one
// organization. The only write path for derived fields.
func (r *Repo) WriteEmbedding(ctx context.Context, ein int64, text string, vec []float32) error {
	if len(vec) != r.dim {
		return fmt.Errorf("embedding width %d, want %d: %w", len(vec), r.dim, domain.ErrVectorDimMismatch)
	}

	key := orgKey(ein)
	m, err := r.store.HGetAll(ctx, key)
	if err != nil {
		return fmt.Errorf("get organization %d: %w", ein, err)
	}
	if len(m) == 0 {
		return domain.ErrOrganizationNotFound
	}

	fields := map[string]string{
		fieldText:   text,
		fieldVector: vectorToBytes(vec),
	}
	if err := r.store.HSet(ctx, key, fields); err != nil {
		return fmt.Errorf("write embedding %d: %w", ein, err)
	}
	return r.markEmbeddingPresence(ctx, einString(ein), true)
}

func (r *Repo) candidates(ctx context.Context, f filter.Filter) ([]string, error) {
	var keys []string
	if f.State != "" {
		keys = append(keys, stateKey(f.State))
	}
	if f.CauseCode != "" {
		keys = append(keys, causeKey(f.CauseCode))
	}

	switch len(keys) {
	case 0:
		members, err := r.store.SMembers(ctx, idxAllKey)
		if err != nil {
			return nil, fmt.Errorf("scan organizations: %w", err)
		}
		return members, nil
	case 1:
		members, err := r.store.SMembers(ctx, keys[0])
		if err != nil {
			return nil, fmt.Errorf("scan index: %w", err)
		}
		return members, nil
	default:
		members, err := r.store.SInter(ctx, keys...)
		if err != nil {
			return nil, fmt.Errorf("intersect indexes: %w", err)
		}
		return members, nil
	}
}

func (r *Repo) dropUnembedded(ctx context.Context, eins []int64) ([]int64, error) {
	missing, err := r.store.SMembers(ctx, idxNoEmbedKey)
	if err != nil {
		return nil, fmt.Errorf("list missing embeddings: %w", err)
	}
	skip := make(map[string]struct{}, len(missing))
	for _, m := range missing {
		skip[m] = struct{}{}
	}

	kept := eins[:0]
	for _, ein := range eins {
		if _, ok := skip[einString(ein)]; ok {
			continue
		}
		kept = append(kept, ein)
	}
	return kept, nil
}

func (r *Repo) fetch(ctx context.Context, eins []int64) ([]domain.Organization, error) {
	if len(eins) == 0 {
		return nil, nil
	}

	keys := make([]string, len(eins))
	for i, ein := range eins {
		keys[i] = orgKey(ein)
	}

	maps, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch organizations: %w", err)
	}

	orgs := make([]domain.Organization, 0, len(maps))
	for i, m := range maps {
		if len(m) == 0 {
			// Index entry outlived the record; skip.
			continue
		}
		orgs = append(orgs, parseHashFields(eins[i], m))
	}
	return orgs, nil
}

func (r *Repo) markEmbeddingPresence(ctx context.Context, member string, present bool) error {
	var err error
	if present {
		err = r.store.SRem(ctx, idxNoEmbedKey, member)
	} else {
		err = r.store.SAdd(ctx, idxNoEmbedKey, member)
	}
	if err != nil {
		return fmt.Errorf("mark embedding presence: %w", err)
	}
	return nil
}

func orgKey(ein int64) string    { return orgKeyPrefix + einString(ein) }
func einString(ein int64) string { return strconv.FormatInt(ein, 10) }

func stateKey(state string) string { return idxStatePrefix + strings.ToUpper(state) }

// causeKey indexes by NTEE major group letter so "B21" and "B40" land in the
// same bucket.
func causeKey(code string) string { return idxCausePrefix + causeGroup(code) }

func causeGroup(code string) string {
	if code == "" {
		return ""
	}
	return strings.ToUpper(code[:1])
}
