package genai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const structuredReply = `{
	"analysis_summary": "local bakery with strong reviews",
	"opportunity_diagnosis": "no online ordering",
	"emails": [{"angle": "value-first", "subject": "hi", "body": "..."}]
}`

func TestExtractBareJSON(t *testing.T) {
	data, err := Extract(structuredReply)
	require.NoError(t, err)
	require.Equal(t, "no online ordering", data["opportunity_diagnosis"])
}

func TestExtractFenced(t *testing.T) {
	for _, fence := range []string{"```json", "```JSON", "```javascript", "```"} {
		wrapped := fence + "\n" + structuredReply + "\n```"
		data, err := Extract(wrapped)
		require.NoError(t, err, fence)
		require.Equal(t, "no online ordering", data["opportunity_diagnosis"], fence)
	}
}

func TestExtractFencedWithSurroundingWhitespace(t *testing.T) {
	wrapped := "\n\n```json\n" + structuredReply + "\n```\n\n"
	data, err := Extract(wrapped)
	require.NoError(t, err)
	require.Equal(t, "local bakery with strong reviews", data["analysis_summary"])
}

// wrapping a valid reply in a fence must yield the same value as
// parsing it directly
func TestExtractFenceStrippingIdempotent(t *testing.T) {
	direct, err := Extract(structuredReply)
	require.NoError(t, err)

	wrapped, err := Extract("```json\n" + structuredReply + "\n```")
	require.NoError(t, err)

	require.Equal(t, direct, wrapped)
}

func TestExtractFailureSnippetBounded(t *testing.T) {
	garbage := "Sure! Here is my analysis: " + strings.Repeat("blah ", 200)

	_, err := Extract(garbage)
	require.Error(t, err)

	var xerr *ExtractionError
	require.ErrorAs(t, err, &xerr)
	require.LessOrEqual(t, len(xerr.Snippet), snippetLimit)
	require.True(t, strings.HasPrefix(garbage, xerr.Snippet))
}

func TestExtractRejectsNonObject(t *testing.T) {
	_, err := Extract(`[1, 2, 3]`)
	var xerr *ExtractionError
	require.ErrorAs(t, err, &xerr)
}
