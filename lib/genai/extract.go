package genai

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// upper bound on the reply prefix carried by an ExtractionError, so a
// multi-kilobyte garbage reply never lands in logs whole.
const snippetLimit = 200

// ExtractionError means the reply text did not parse as structured
// data even after fence stripping.
type ExtractionError struct {
	Snippet string
	err     error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("reply is not structured data: %v (starts with %q)", e.err, e.Snippet)
}

func (e *ExtractionError) Unwrap() error {
	return e.err
}

var openingFence = regexp.MustCompile("^```[a-zA-Z0-9_-]*[ \t]*\r?\n?")
var closingFence = regexp.MustCompile("\r?\n?```$")

// strips a single leading/trailing markdown fence pair, whatever the
// declared language tag.
func stripFences(raw string) string {
	raw = strings.TrimSpace(raw)
	stripped := openingFence.ReplaceAllString(raw, "")
	if stripped != raw {
		stripped = closingFence.ReplaceAllString(stripped, "")
	}
	return strings.TrimSpace(stripped)
}

// Extract normalizes a raw model reply into its structured form. it
// accepts both bare json and json wrapped in a markdown fence. pure:
// no retries, no state.
func Extract(raw string) (map[string]any, error) {
	clean := stripFences(raw)

	var data map[string]any
	err := json.Unmarshal([]byte(clean), &data)
	if err != nil {
		snippet := clean
		if len(snippet) > snippetLimit {
			snippet = snippet[:snippetLimit]
		}
		return nil, &ExtractionError{Snippet: snippet, err: err}
	}
	return data, nil
}
