package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Analysis kinds, each with its own output directory under analysis/<meme>/.
const (
	KindKeywords   = "keywords"
	KindEngagement = "engagement"
	KindLifecycle  = "lifecycle"
)

// MemeName strips surrounding whitespace and a leading '#' from a hashtag so
// "#chillguy" and "chillguy" name the same files.
func MemeName(raw string) (string, error) {
	name := strings.TrimLeft(strings.TrimSpace(raw), "#")
	if name == "" {
		return "", fmt.Errorf("meme name is empty")
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("invalid meme name %q", raw)
	}
	return name, nil
}

// RawPosts is the collected posts file for the meme.
func (p PathsConfig) RawPosts() string {
	return filepath.Join(p.DataDir, "raw", p.Meme+"_instagram.json")
}

// Preprocessed is the tokenized posts table for the meme.
func (p PathsConfig) Preprocessed() string {
	return filepath.Join(p.DataDir, "preprocessed", p.Meme+"_instagram.csv")
}

// AnalysisDir is the output directory for one analysis kind.
func (p PathsConfig) AnalysisDir(kind string) string {
	return filepath.Join(p.DataDir, "analysis", p.Meme, kind)
}

// Keywords is the keyword frequency table.
func (p PathsConfig) Keywords() string {
	return filepath.Join(p.AnalysisDir(KindKeywords), p.Meme+"_keywords.csv")
}

// Engagement returns the path of one engagement table: "likes_cleaned",
// "weekly_likes" or "weekday_likes".
func (p PathsConfig) Engagement(table string) string {
	return filepath.Join(p.AnalysisDir(KindEngagement), p.Meme+"_"+table+".csv")
}

// Lifecycle is the daily lifecycle table.
func (p PathsConfig) Lifecycle() string {
	return filepath.Join(p.AnalysisDir(KindLifecycle), p.Meme+"_lifecycle.csv")
}
