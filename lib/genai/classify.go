package genai

import "strings"

type callFailure int

const (
	failUnknown callFailure = iota
	failRateLimited
	failUnauthorized
)

// the backend surfaces failures as generic errors whose text embeds
// the upstream status, so classification is substring matching over a
// closed marker set. all of the fragile matching lives here.
var rateLimitMarkers = []string{
	"429",
	"quota",
	"resource_exhausted",
}

var unauthorizedMarkers = []string{
	"403",
	"leaked",
	"permission",
	"api key not valid",
	"api_key_invalid",
}

func classifyCallError(err error) callFailure {
	text := strings.ToLower(err.Error())

	for _, marker := range rateLimitMarkers {
		if strings.Contains(text, marker) {
			return failRateLimited
		}
	}
	for _, marker := range unauthorizedMarkers {
		if strings.Contains(text, marker) {
			return failUnauthorized
		}
	}
	return failUnknown
}
