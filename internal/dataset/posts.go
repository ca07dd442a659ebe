// Package dataset converts collected posts into the preprocessed posts table
// and reads that table back for the analysis stages.
package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

// Post is one collected post as written by the collector.
type Post struct {
	Username   string `json:"username"`
	UploadTime string `json:"upload_time"`
	Likes      Likes  `json:"likes"`
	Caption    string `json:"caption"`
}

// Likes is the like counter as scraped: a display string such as "1.2K",
// a bare number, or null when the counter was hidden.
type Likes struct {
	Raw   string
	Valid bool
}

// UnmarshalJSON accepts a string, a number or null.
func (l *Likes) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*l = Likes{}
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		*l = Likes{Raw: s, Valid: s != ""}
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("likes: %w", err)
	}
	*l = Likes{Raw: n.String(), Valid: true}
	return nil
}

// MarshalJSON writes the raw counter, or null.
func (l Likes) MarshalJSON() ([]byte, error) {
	if !l.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(l.Raw)
}

// ReadPosts decodes a JSON array of posts.
func ReadPosts(r io.Reader) ([]Post, error) {
	var posts []Post
	dec := json.NewDecoder(r)
	if err := dec.Decode(&posts); err != nil {
		return nil, fmt.Errorf("decode posts: %w", err)
	}
	return posts, nil
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTime parses an upload timestamp. Timestamps without a zone are UTC.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
