package importer

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// suggestionCutoff is the maximum edit distance a near-miss may have before
// "did you mean" stays quiet.
const suggestionCutoff = 3

// NormalizeKey folds a natural key for matching. Surrounding whitespace and
// letter case never distinguish two entities.
func NormalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Lookup resolves natural keys to surrogate IDs for one entity type within
// one import invocation. persisted mirrors storage at invocation start;
// pending holds entities discovered in the payload before any insert is
// flushed. Both maps are invocation-local and die with the request.
type Lookup struct {
	persisted map[string]uuid.UUID
	pending   map[string]uuid.UUID
}

func NewLookup(persisted map[string]uuid.UUID) *Lookup {
	if persisted == nil {
		persisted = map[string]uuid.UUID{}
	}
	return &Lookup{
		persisted: persisted,
		pending:   map[string]uuid.UUID{},
	}
}

// Resolve returns the ID for a key that is already persisted or was already
// discovered earlier in this invocation.
func (l *Lookup) Resolve(raw string) (uuid.UUID, bool) {
	key := NormalizeKey(raw)
	if key == "" {
		return uuid.Nil, false
	}
	if id, ok := l.persisted[key]; ok {
		return id, true
	}
	if id, ok := l.pending[key]; ok {
		return id, true
	}
	return uuid.Nil, false
}

// GetOrCreate resolves the key or synthesizes a fresh ID exactly once per
// distinct normalized key, registering it in the pending map so every later
// reference within the invocation lands on the same ID. created reports
// whether this call synthesized the ID.
func (l *Lookup) GetOrCreate(raw string) (uuid.UUID, bool) {
	key := NormalizeKey(raw)
	if key == "" {
		return uuid.Nil, false
	}
	if id, ok := l.persisted[key]; ok {
		return id, false
	}
	if id, ok := l.pending[key]; ok {
		return id, false
	}
	id := uuid.New()
	l.pending[key] = id
	return id, true
}

// Suggest proposes the closest known key for a miss. Only near matches
// qualify, so typos get a hint and genuinely unknown names do not.
func (l *Lookup) Suggest(raw string) (string, bool) {
	key := NormalizeKey(raw)
	if key == "" {
		return "", false
	}
	words := make([]string, 0, len(l.persisted)+len(l.pending))
	for k := range l.persisted {
		words = append(words, k)
	}
	for k := range l.pending {
		words = append(words, k)
	}
	sort.Strings(words)
	ranks := fuzzy.RankFindNormalizedFold(key, words)
	if len(ranks) == 0 {
		return "", false
	}
	sort.Sort(ranks)
	best := ranks[0]
	if best.Distance > suggestionCutoff {
		return "", false
	}
	return best.Target, true
}

// unknownRef renders a reference miss for a warning, with a suggestion when
// a close key exists.
func unknownRef(l *Lookup, what, raw string) string {
	if s, ok := l.Suggest(raw); ok {
		return fmt.Sprintf("unknown %s %q (did you mean %q?)", what, raw, s)
	}
	return fmt.Sprintf("unknown %s %q", what, raw)
}

// loadLookup issues the single unfiltered key read for one entity type and
// indexes it by normalized key.
func loadLookup(ctx context.Context, store Store, table, keyExpr string) (*Lookup, error) {
	persisted, err := store.Lookup(ctx, table, "id", keyExpr)
	if err != nil {
		return nil, err
	}
	return NewLookup(persisted), nil
}
