package roundid

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/questbet/internal/randutil"
)

func TestNewShapeAndAlphabet(t *testing.T) {
	id := New()
	require.Len(t, id, Length)
	for _, r := range id {
		assert.Contains(t, alphabet, string(r))
	}
}

func TestIdsSortByCreationTime(t *testing.T) {
	g := NewGenerator(randutil.New(1))
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	g.now = func() time.Time { return base }
	first := g.New()

	g.now = func() time.Time { return base.Add(time.Second) }
	second := g.New()

	assert.Less(t, first, second)
}

func TestSeededGeneratorIsReproducible(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	gen := func() string {
		g := NewGenerator(randutil.New(7))
		g.now = func() time.Time { return now }
		return g.New()
	}
	assert.Equal(t, gen(), gen())
}

func TestSameMillisecondIdsStillDiffer(t *testing.T) {
	g := NewGenerator(nil)
	now := time.Now()
	g.now = func() time.Time { return now }

	first := g.New()
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := g.New()
		require.False(t, seen[id], "random suffix must vary")
		require.True(t, strings.HasPrefix(id, first[:9]), "timestamp prefix shared")
		seen[id] = true
	}
}
