package storage

import (
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPracticeStore(t *testing.T) *PracticeStore {
	t.Helper()
	return NewPracticeStore(t.TempDir(), zerolog.Nop())
}

func TestEnsureDefaultsWritesMissingFilesOnly(t *testing.T) {
	store := newPracticeStore(t)
	require.NoError(t, os.WriteFile(store.Path(PracticesMicro), []byte("practices:\n  - stretch\n"), 0o644))

	require.NoError(t, store.EnsureDefaults())

	big, err := store.List(PracticesBig)
	require.NoError(t, err)
	assert.Equal(t, defaultPractices[PracticesBig], big)

	micro, err := store.List(PracticesMicro)
	require.NoError(t, err)
	assert.Equal(t, []string{"stretch"}, micro)
}

func TestAddKeepsOrderAndDuplicates(t *testing.T) {
	store := newPracticeStore(t)

	require.NoError(t, store.Add(PracticesBig, "drink water"))
	require.NoError(t, store.Add(PracticesBig, "  look far away  "))
	require.NoError(t, store.Add(PracticesBig, "drink water"))

	practices, err := store.List(PracticesBig)
	require.NoError(t, err)
	assert.Equal(t, []string{"drink water", "look far away", "drink water"}, practices)

	assert.ErrorIs(t, store.Add(PracticesBig, "   "), ErrEmptyPractice)
}

func TestDeleteRemovesEveryExactMatch(t *testing.T) {
	store := newPracticeStore(t)
	for _, text := range []string{"a", "b", "a", "A", "c"} {
		require.NoError(t, store.Add(PracticesMicro, text))
	}

	removed, err := store.Delete(PracticesMicro, "a", "c", "missing")
	require.NoError(t, err)
	assert.Equal(t, 3, removed)

	practices, err := store.List(PracticesMicro)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "A"}, practices)

	removed, err = store.Delete(PracticesMicro, "missing")
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestRandomFallsBackWhenEmpty(t *testing.T) {
	store := newPracticeStore(t)

	assert.Equal(t, fallbackPractice, store.RandomPractice())
	assert.Equal(t, fallbackMicroPractice, store.RandomMicroPractice())

	require.NoError(t, os.WriteFile(store.Path(PracticesBig), []byte("{not yaml"), 0o644))
	assert.Equal(t, fallbackPractice, store.RandomPractice())
}

func TestRandomPicksFromList(t *testing.T) {
	store := newPracticeStore(t)
	require.NoError(t, store.Add(PracticesBig, "first"))
	require.NoError(t, store.Add(PracticesBig, "second"))
	store.pick = func(n int) int { return n - 1 }

	assert.Equal(t, "second", store.RandomPractice())
}

func TestListSkipsBlankEntries(t *testing.T) {
	store := newPracticeStore(t)
	require.NoError(t, os.WriteFile(store.Path(PracticesBig), []byte("practices:\n  - one\n  - \"\"\n  - two\n"), 0o644))

	practices, err := store.List(PracticesBig)
	require.NoError(t, err)

	assert.Equal(t, []string{"one", "two"}, practices)
}
