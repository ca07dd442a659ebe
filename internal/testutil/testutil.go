// Package testutil provides shared fixtures for tests that drive the pipeline
// end to end.
//
// Typical usage:
//
//	func TestPipeline(t *testing.T) {
//	    paths := testutil.DataDir(t, "chillguy")
//	    testutil.WritePosts(t, paths, testutil.SamplePosts)
//	    ...
//	    rows := testutil.ReadCSV(t, paths.Keywords())
//	}
package testutil

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/example/memetrend/internal/config"
)

// BOM is the UTF-8 byte order mark every output table starts with.
const BOM = "\xef\xbb\xbf"

// SamplePosts is a small collected-posts file. It holds four usable posts,
// one with a hidden like counter and one with an unreadable timestamp.
const SamplePosts = `[
  {"username": "a", "upload_time": "2024-11-04T09:00:00.000Z", "likes": "1.2K", "caption": "chill guy 짱 ㅋㅋ"},
  {"username": "b", "upload_time": "2024-11-05T10:00:00.000Z", "likes": "87", "caption": "#chillguy 밈 짱"},
  {"username": "c", "upload_time": "2024-11-05T11:00:00.000Z", "likes": null, "caption": "hidden"},
  {"username": "d", "upload_time": "yesterday", "likes": "3", "caption": "broken"},
  {"username": "e", "upload_time": "2024-11-06T12:00:00.000Z", "likes": "1,234", "caption": "Chill 밈"},
  {"username": "f", "upload_time": "2024-11-11T08:00:00.000Z", "likes": 5, "caption": ""}
]`

// DataDir returns paths rooted at a fresh temporary data directory.
func DataDir(tb testing.TB, meme string) config.PathsConfig {
	tb.Helper()

	return config.PathsConfig{DataDir: tb.TempDir(), Meme: meme}
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(tb testing.TB, path, content string) {
	tb.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		tb.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
		return
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		tb.Fatalf("write %s: %v", path, err)
	}
}

// WritePosts writes a collected-posts file for the meme in paths.
func WritePosts(tb testing.TB, paths config.PathsConfig, posts string) {
	tb.Helper()

	WriteFile(tb, paths.RawPosts(), posts)
}

// ReadCSV reads an output table, failing the test unless it starts with a
// UTF-8 BOM. The header row is included.
func ReadCSV(tb testing.TB, path string) [][]string {
	tb.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		tb.Fatalf("read %s: %v", path, err)
		return nil
	}

	if !bytes.HasPrefix(data, []byte(BOM)) {
		tb.Fatalf("%s: missing UTF-8 BOM", path)
		return nil
	}

	rows, err := csv.NewReader(bytes.NewReader(data[len(BOM):])).ReadAll()
	if err != nil {
		tb.Fatalf("parse %s: %v", path, err)
		return nil
	}

	return rows
}
