// Package wordlist loads candidate items for evaluating Bloom filters.
//
// A source is one of:
//
//   - "-" for standard input,
//   - an http:// or https:// URL,
//   - a local file path.
//
// Sources whose path ends in ".zst" are decompressed with Zstandard on the
// fly. The content is read line by line; each non-blank line, with
// surrounding whitespace removed, is one word.
package wordlist

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// maxLineSize bounds a single line. Dictionary words are tiny; anything
// larger is almost certainly a binary file passed by mistake.
const maxLineSize = 1 << 20

// stdin is read when the source is "-".
var stdin io.Reader = os.Stdin

// Load reads all words from source. The context bounds the HTTP request when
// source is a URL.
func Load(ctx context.Context, source string) ([]string, error) {
	rc, name, err := open(ctx, source)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	var r io.Reader = rc
	if strings.HasSuffix(name, ".zst") {
		dec, err := zstd.NewReader(rc)
		if err != nil {
			return nil, fmt.Errorf("wordlist: open zstd stream %s: %w", source, err)
		}
		defer dec.Close()
		r = dec
	}

	words, err := Read(r)
	if err != nil {
		return nil, fmt.Errorf("wordlist: read %s: %w", source, err)
	}
	return words, nil
}

// open resolves a source to a reader and the path used for suffix detection.
func open(ctx context.Context, source string) (io.ReadCloser, string, error) {
	switch {
	case source == "-":
		return io.NopCloser(stdin), "-", nil

	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		u, err := url.Parse(source)
		if err != nil {
			return nil, "", fmt.Errorf("wordlist: parse url: %w", err)
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
		if err != nil {
			return nil, "", fmt.Errorf("wordlist: build request: %w", err)
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return nil, "", fmt.Errorf("wordlist: fetch %s: %w", source, err)
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			_ = resp.Body.Close()
			return nil, "", fmt.Errorf("wordlist: fetch %s: unexpected status %s", source, resp.Status)
		}
		return resp.Body, path.Base(u.Path), nil

	default:
		f, err := os.Open(source)
		if err != nil {
			return nil, "", fmt.Errorf("wordlist: %w", err)
		}
		return f, source, nil
	}
}

// Read splits r into words, one per non-blank line.
func Read(r io.Reader) ([]string, error) {
	var words []string

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word == "" {
			continue
		}
		words = append(words, word)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

// Shuffle permutes words in place. The same seed always produces the same
// permutation, which keeps evaluation runs reproducible.
func Shuffle(words []string, seed uint64) {
	rng := rand.New(rand.NewPCG(seed, seed))
	rng.Shuffle(len(words), func(i, j int) {
		words[i], words[j] = words[j], words[i]
	})
}

// Split returns the first half of words as the items to add and the second
// half as items that are never added. Both results alias words.
func Split(words []string) (present, absent []string) {
	half := len(words) / 2
	return words[:half], words[half:]
}
