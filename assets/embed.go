// Package assets embeds the default word lists shipped with the binary.
package assets

import (
	"bufio"
	"embed"
	"io"
	"strings"
)

//go:embed start.txt dictionary.txt
var FS embed.FS

// ReadLines reads one lowercase word per line from r.
// Blank lines and lines starting with '#' are skipped.
func ReadLines(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, strings.ToLower(s))
	}
	return out, sc.Err()
}

func readLines(name string) ([]string, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadLines(f)
}

// StartWords returns the embedded root-word list.
func StartWords() ([]string, error) {
	return readLines("start.txt")
}

// DictionaryWords returns the embedded recognized-word list.
func DictionaryWords() ([]string, error) {
	return readLines("dictionary.txt")
}
