package trie

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// Scenario D: prefix lookup ordering.
func TestScenarioDPrefixOrdering(t *testing.T) {
	tr := New()
	tr.Insert("Albert Einstein", 0.9, 1)
	tr.Insert("Alberta", 0.5, 2)
	tr.Insert("Albania", 0.7, 3)

	results := tr.Suggest("Alb", 10)
	require.Len(t, results, 3)
	require.Equal(t, "Albert Einstein", results[0].Title)
	require.Equal(t, "Albania", results[1].Title)
	require.Equal(t, "Alberta", results[2].Title)
}

func TestSuggestUnknownPrefixReturnsNil(t *testing.T) {
	tr := New()
	tr.Insert("Albania", 0.7, 3)
	require.Nil(t, tr.Suggest("Zzz", 10))
}

func TestSuggestIsCaseInsensitive(t *testing.T) {
	tr := New()
	tr.Insert("Wikipedia", 1.0, 1)
	results := tr.Suggest("wiki", 10)
	require.Len(t, results, 1)
	require.Equal(t, "Wikipedia", results[0].Title)
}

// Testable property 5: prefix soundness — every suggestion's title, when
// lowercased, actually starts with the queried (lowercased) prefix.
func TestPropertyPrefixSoundness(t *testing.T) {
	tr := New()
	titles := []string{"Cat", "Catalog", "Category Theory", "Caterpillar", "Dog"}
	for i, title := range titles {
		tr.Insert(title, float64(len(titles)-i), int32(i))
	}

	results := tr.Suggest("cat", 10)
	require.NotEmpty(t, results)
	for _, r := range results {
		require.GreaterOrEqual(t, len(r.Title), 3)
		require.Equal(t, "cat", toASCIILowerString(r.Title[:3]))
	}
}

// Testable property 6: top-k ordering and length bound — results are sorted
// by descending score and never exceed the requested limit, and asking for
// more than exist never enlarges the trie's own content (shrink-only
// truncation, per spec.md §9's resolved open question).
func TestPropertyTopKOrderingAndBound(t *testing.T) {
	tr := New()
	for i := 0; i < 20; i++ {
		tr.Insert("Prefix"+string(rune('A'+i)), float64(i), int32(i))
	}

	results := tr.Suggest("Prefix", 5)
	require.Len(t, results, 5)
	for i := 1; i < len(results); i++ {
		require.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
	}

	all := tr.Suggest("Prefix", 1000)
	require.Len(t, all, 20)
}

// Testable property 7: serialization fidelity — a trie round-tripped
// through Save/Load produces identical Suggest results for every prefix
// tried.
func TestPropertySerializationFidelity(t *testing.T) {
	tr := New()
	tr.Insert("Albert Einstein", 0.9, 1)
	tr.Insert("Alberta", 0.5, 2)
	tr.Insert("Albania", 0.7, 3)
	tr.Insert("Wikipedia", 1.0, 4)

	path := filepath.Join(t.TempDir(), "trie.bin")
	require.NoError(t, tr.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)

	for _, prefix := range []string{"Alb", "Wiki", "Albert", "zzz"} {
		want := tr.Suggest(prefix, 10)
		got := loaded.Suggest(prefix, 10)
		require.Equal(t, want, got, "mismatch for prefix %q", prefix)
	}
}

func TestSaveEmptyTrieRoundTrips(t *testing.T) {
	tr := New()
	path := filepath.Join(t.TempDir(), "empty.bin")
	require.NoError(t, tr.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Nil(t, loaded.Suggest("a", 10))
}

func toASCIILowerString(s string) string {
	buf := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		buf[i] = toASCIILower(s[i])
	}
	return string(buf)
}
