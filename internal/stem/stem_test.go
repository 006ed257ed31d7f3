package stem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProcessDropsStopWordsAndStems(t *testing.T) {
	s := New("")
	terms := s.Process("The running dogs")
	require.NotContains(t, terms, "the")
	require.Contains(t, terms, "dog")
}

func TestNewLoadsExtraStopwordsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stopwords.txt")
	require.NoError(t, os.WriteFile(path, []byte("foobar\n"), 0o644))

	s := New(path)
	require.True(t, s.IsStopWord("foobar"))
	require.False(t, s.IsStopWord("wikipedia"))
}

func TestNewToleratesMissingStopwordsFile(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "missing.txt"))
	require.False(t, s.IsStopWord("whatever"))
}

// Testable property 8: stop-word neutrality — inserting a stop word into a
// query does not change the resulting term list fed to the index.
func TestStopWordNeutrality(t *testing.T) {
	s := New("")
	withStopWord := s.Process("the search query")
	withoutStopWord := s.Process("search query")
	require.Equal(t, withoutStopWord, withStopWord)
}
