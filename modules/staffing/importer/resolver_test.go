package importer

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestNormalizeKey(t *testing.T) {
	require.Equal(t, "mario rossi", NormalizeKey("  Mario ROSSI "))
	require.Equal(t, "", NormalizeKey("   "))
}

func TestLookup_GetOrCreate_IdempotentWithinInvocation(t *testing.T) {
	l := NewLookup(nil)

	first, created := l.GetOrCreate("Mario Rossi")
	require.True(t, created)
	require.NotEqual(t, uuid.Nil, first)

	second, created := l.GetOrCreate("  mario rossi ")
	require.False(t, created)
	require.Equal(t, first, second, "same normalized key must reuse the synthesized ID")

	resolved, ok := l.Resolve("MARIO ROSSI")
	require.True(t, ok)
	require.Equal(t, first, resolved)
}

func TestLookup_PersistedWinsOverPending(t *testing.T) {
	persisted := uuid.New()
	l := NewLookup(map[string]uuid.UUID{"alpha": persisted})

	id, created := l.GetOrCreate("Alpha")
	require.False(t, created)
	require.Equal(t, persisted, id)

	id, ok := l.Resolve("alpha ")
	require.True(t, ok)
	require.Equal(t, persisted, id)
}

func TestLookup_ResolveMiss(t *testing.T) {
	l := NewLookup(map[string]uuid.UUID{"alpha": uuid.New()})
	_, ok := l.Resolve("beta")
	require.False(t, ok)
	_, ok = l.Resolve("")
	require.False(t, ok)
}

func TestLookup_Suggest(t *testing.T) {
	l := NewLookup(map[string]uuid.UUID{"architect": uuid.New(), "developer": uuid.New()})

	got, ok := l.Suggest("Architct")
	require.True(t, ok)
	require.Equal(t, "architect", got)

	_, ok = l.Suggest("zzzz")
	require.False(t, ok)
}

func TestUnknownRef_IncludesSuggestion(t *testing.T) {
	l := NewLookup(map[string]uuid.UUID{"developer": uuid.New()})
	msg := unknownRef(l, "role", "Develper")
	require.Contains(t, msg, `unknown role "Develper"`)
	require.Contains(t, msg, "did you mean")

	msg = unknownRef(l, "role", "qqqq")
	require.Equal(t, `unknown role "qqqq"`, msg)
}
