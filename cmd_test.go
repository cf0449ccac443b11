package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	for _, k := range []string{"WORDSCRAMBLE_CONFIG", "WORDS_START_FILE", "WORDS_DICTIONARY_FILE", "WORD_LANGUAGE", "LOG_LEVEL", "LOG_FORMAT"} {
		t.Setenv(k, "")
	}
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCLI_PlayWithEmbeddedLists(t *testing.T) {
	out, err := runCLI(t, "milk\n:quit\n", "play", "--root", "silkworm", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "Root word: silkworm\n")
	assert.Contains(t, out, "+5  milk (4)  score 5\n")
}

func TestCLI_ConfigErrorIsReturned(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: [unclosed\n"), 0o644))

	for _, sub := range []string{"play", "serve"} {
		t.Run(sub, func(t *testing.T) {
			_, err := runCLI(t, "", sub, "--config", path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "load config")
			assert.Contains(t, err.Error(), "parse yaml")
		})
	}
}

func TestCLI_MissingStartFile(t *testing.T) {
	_, err := runCLI(t, "", "play")
	require.NoError(t, err, "embedded lists need no files")

	t.Setenv("WORDS_START_FILE", filepath.Join(t.TempDir(), "missing.txt"))
	cmd := newRootCommand()
	cmd.SetIn(strings.NewReader(""))
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"play"})
	err = cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load word lists")
}
