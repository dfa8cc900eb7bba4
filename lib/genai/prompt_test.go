package genai

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTemplate(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prompt_template.txt")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestRenderSubstitutesMarkers(t *testing.T) {
	path := writeTemplate(t, "USE: {{GEM_LINK}}\nCONTEXT:\n{{CONTEXT_STR}}\n")
	m := Materializer{TemplatePath: path, DefaultEndpoint: "https://default.example/gem"}

	prompt := m.Render(map[string]string{"name": "Acme"}, "")
	require.Contains(t, prompt, "USE: https://default.example/gem")
	require.Contains(t, prompt, `"name": "Acme"`)
	require.NotContains(t, prompt, "{{GEM_LINK}}")
	require.NotContains(t, prompt, "{{CONTEXT_STR}}")
}

func TestRenderEndpointOverrideWins(t *testing.T) {
	path := writeTemplate(t, "{{GEM_LINK}}")
	m := Materializer{TemplatePath: path, DefaultEndpoint: "https://default.example/gem"}

	prompt := m.Render(nil, "https://override.example/gem")
	require.Equal(t, "https://override.example/gem", prompt)
}

func TestRenderMissingMarkersLeftAlone(t *testing.T) {
	path := writeTemplate(t, "no markers here")
	m := Materializer{TemplatePath: path}

	require.Equal(t, "no markers here", m.Render(map[string]string{"k": "v"}, ""))
}

// a missing template degrades to the plain rendering instead of
// failing the invocation
func TestRenderFallbackWhenTemplateMissing(t *testing.T) {
	m := Materializer{TemplatePath: filepath.Join(t.TempDir(), "nope.txt")}

	prompt := m.Render(map[string]string{"name": "Acme"}, "")
	require.Contains(t, prompt, "Analyze this context:")
	require.Contains(t, prompt, `"name": "Acme"`)
}

func TestRenderDeterministic(t *testing.T) {
	m := Materializer{TemplatePath: filepath.Join(t.TempDir(), "nope.txt")}
	pkg := map[string]any{"b": 1, "a": 2, "c": []string{"x"}}

	first := m.Render(pkg, "")
	for i := 0; i < 10; i++ {
		require.Equal(t, first, m.Render(pkg, ""))
	}
}
