package genai

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

const (
	endpointMarker = "{{GEM_LINK}}"
	contextMarker  = "{{CONTEXT_STR}}"
)

// Materializer renders the request payload sent to the generation
// backend from a context package and a per-credential endpoint
// reference.
type Materializer struct {
	// template with the two substitution markers
	TemplatePath string
	// used when the credential carries no endpoint override
	DefaultEndpoint string
}

// Render never fails: when the template cannot be loaded it degrades
// to a minimal deterministic rendering of the context instead of
// aborting the invocation.
func (m Materializer) Render(contextPackage any, endpointOverride string) string {
	contextStr := serializeContext(contextPackage)

	endpoint := m.DefaultEndpoint
	if endpointOverride != "" {
		endpoint = endpointOverride
	}

	template, err := os.ReadFile(m.TemplatePath)
	if err != nil {
		slog.Warn(
			"failed to load prompt template, falling back to plain rendering",
			"path", m.TemplatePath, "err", err,
		)
		return fmt.Sprintf("Analyze this context: %s", contextStr)
	}

	prompt := strings.ReplaceAll(string(template), endpointMarker, endpoint)
	prompt = strings.ReplaceAll(prompt, contextMarker, contextStr)
	return prompt
}

func serializeContext(contextPackage any) string {
	contents, err := json.MarshalIndent(contextPackage, "", "  ")
	if err != nil {
		return fmt.Sprint(contextPackage)
	}
	return string(contents)
}
