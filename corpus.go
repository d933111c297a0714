package cryptopals

import (
	"context"
	"fmt"
	"strings"
)

// Project Gutenberg wraps every book between a start and an end line.
// Older files say "THIS PROJECT", newer ones "THE PROJECT".
var (
	gutenbergStartMarkers = []string{
		"*** START OF THIS PROJECT GUTENBERG EBOOK",
		"*** START OF THE PROJECT GUTENBERG EBOOK",
	}
	gutenbergEndMarkers = []string{
		"*** END OF THIS PROJECT GUTENBERG EBOOK",
		"*** END OF THE PROJECT GUTENBERG EBOOK",
	}
)

func findMarker(body string, markers []string) int {
	for _, m := range markers {
		if i := strings.Index(body, m); i >= 0 {
			return i
		}
	}
	return -1
}

// ExtractGutenberg returns the book text of a Project Gutenberg file: the
// lines after the start marker line and before the end marker.
func ExtractGutenberg(body string) (string, error) {
	start := findMarker(body, gutenbergStartMarkers)
	if start < 0 {
		return "", fmt.Errorf("%w: start", ErrCorpusMarker)
	}
	eol := strings.IndexByte(body[start:], '\n')
	if eol < 0 {
		return "", fmt.Errorf("%w: no line after start marker", ErrCorpusMarker)
	}
	start += eol + 1

	end := findMarker(body[start:], gutenbergEndMarkers)
	if end < 0 {
		return "", fmt.Errorf("%w: end", ErrCorpusMarker)
	}

	log.Debugf("Gutenberg text spans bytes %d to %d of %d", start, start+end, len(body))
	return body[start : start+end], nil
}

// LoadCorpus downloads a Project Gutenberg book through src and builds an
// English Scorer from its text.
func LoadCorpus(ctx context.Context, src Source, url string) (*Scorer, error) {
	log.Debugf("Using %s as English corpus", url)
	body, err := src.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	text, err := ExtractGutenberg(body)
	if err != nil {
		return nil, fmt.Errorf("corpus %s: %w", url, err)
	}
	return NewScorer([]byte(text))
}
