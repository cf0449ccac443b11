package words

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestPickRoot_SkipsBlankLines(t *testing.T) {
	src := StaticSource{"", "  ", "Garden", "\n"}
	for i := 0; i < 20; i++ {
		w, err := PickRoot(src)
		require.NoError(t, err)
		assert.Equal(t, "garden", w)
	}
}

func TestPickRoot_CoversEveryEntry(t *testing.T) {
	src := StaticSource{"alpha", "bravo", "charlie"}
	seen := map[string]bool{}
	for i := 0; i < 500 && len(seen) < 3; i++ {
		w, err := PickRoot(src)
		require.NoError(t, err)
		seen[w] = true
	}
	assert.Len(t, seen, 3)
}

func TestPickRoot_Errors(t *testing.T) {
	_, err := PickRoot(nil)
	assert.ErrorIs(t, err, ErrNoRootWords)

	_, err = PickRoot(StaticSource{"", " "})
	assert.ErrorIs(t, err, ErrNoRootWords)

	_, err = PickRoot(FileSource{Path: filepath.Join(t.TempDir(), "missing.txt")})
	assert.ErrorIs(t, err, ErrNoRootWords)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestFileSource(t *testing.T) {
	p := writeFile(t, "start.txt", "# roots\nSilkworm\n\ngarden\r\n")
	got, err := FileSource{Path: p}.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"silkworm", "garden"}, got)
}

func TestEmbeddedSource(t *testing.T) {
	got, err := EmbeddedSource{}.Load()
	require.NoError(t, err)
	assert.NotEmpty(t, got)
	assert.Contains(t, got, "silkworm")
}

func TestLoad_Embedded(t *testing.T) {
	l, err := Load(Options{})
	require.NoError(t, err)
	assert.Equal(t, "en", l.Language)

	roots, dict := l.Stats()
	assert.Greater(t, roots, 0)
	assert.Greater(t, dict, roots)

	for _, r := range l.Roots {
		assert.True(t, l.Dict.IsKnownWord(r, "en"), "root %q should be a known word", r)
	}

	w, err := l.PickRoot()
	require.NoError(t, err)
	assert.Contains(t, []string(l.Roots), w)
}

func TestLoad_Files(t *testing.T) {
	start := writeFile(t, "start.txt", "garden\n")
	dict := writeFile(t, "dict.txt", "den\nend\n")

	l, err := Load(Options{StartFile: start, DictionaryFile: dict, Language: "en-GB"})
	require.NoError(t, err)
	assert.Equal(t, StaticSource{"garden"}, l.Roots)
	assert.True(t, l.Dict.IsKnownWord("den", "en"))
	assert.True(t, l.Dict.IsKnownWord("garden", "en"))
	assert.False(t, l.Dict.IsKnownWord("danger", "en"))
}

func TestLoad_EmptyStartFileFails(t *testing.T) {
	start := writeFile(t, "start.txt", "\n# nothing here\n")
	_, err := Load(Options{StartFile: start})
	assert.ErrorIs(t, err, ErrNoRootWords)

	_, err = Load(Options{StartFile: filepath.Join(t.TempDir(), "nope.txt")})
	assert.ErrorIs(t, err, ErrNoRootWords)
}

func TestListDictionary(t *testing.T) {
	d := NewListDictionary()
	d.Add("en", "Milk", " silk ", "")
	d.Add("fr", "lait")

	assert.True(t, d.IsKnownWord("milk", "en"))
	assert.True(t, d.IsKnownWord("MILK", "EN-us"))
	assert.False(t, d.IsKnownWord("lait", "en"))
	assert.True(t, d.IsKnownWord("lait", "fr"))
	assert.False(t, d.IsKnownWord("milk", "de"))
	assert.Equal(t, 2, d.Len("en"))
}

func TestSuggest(t *testing.T) {
	d := NewListDictionary()
	d.Add("en", "milk", "silk", "worm", "words")

	got, ok := d.Suggest("milj", "en", nil)
	require.True(t, ok)
	assert.Equal(t, "milk", got)

	// "silk" and "milk" are both one edit from "zilk"; keep filters milk out.
	got, ok = d.Suggest("zilk", "en", func(w string) bool { return w != "milk" })
	require.True(t, ok)
	assert.Equal(t, "silk", got)

	_, ok = d.Suggest("xyzzy", "en", nil)
	assert.False(t, ok)

	_, ok = d.Suggest("milj", "en", func(string) bool { return false })
	assert.False(t, ok)
}

func TestSuggest_CountsLettersNotBytes(t *testing.T) {
	d := NewListDictionary()
	d.Add("fr", "xya", "café")

	// Three letters allow one edit; "xya" is two away.
	_, ok := d.Suggest("ééa", "fr", nil)
	assert.False(t, ok)

	got, ok := d.Suggest("cafe", "fr", nil)
	require.True(t, ok)
	assert.Equal(t, "café", got)
}
