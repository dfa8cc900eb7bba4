package textutil

import (
	"regexp"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

func NormalizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.Trim(name, " \n\t")
	name = whitespaceRegex.ReplaceAllString(name, "")
	return name
}

func MatchName(name string, matchers []string) bool {
	name = NormalizeName(name)
	for _, m := range matchers {
		if strings.Contains(name, m) {
			return true
		}
	}
	return false
}

// words dropped by CompressWords to cut token count without losing
// much signal.
var stopWords = map[string]bool{
	"the": true, "is": true, "at": true, "which": true, "on": true,
	"a": true, "an": true, "and": true, "or": true, "but": true,
	"if": true, "then": true, "else": true, "when": true, "of": true,
	"to": true, "in": true, "for": true, "with": true, "by": true,
	"from": true, "up": true, "down": true, "out": true, "over": true,
	"under": true, "again": true, "further": true, "once": true,
	"here": true, "there": true, "where": true, "why": true,
	"how": true, "all": true, "any": true, "both": true, "each": true,
	"few": true, "more": true, "most": true, "other": true,
	"some": true, "such": true, "no": true, "nor": true, "not": true,
	"only": true, "own": true, "same": true, "so": true, "than": true,
	"too": true, "very": true, "can": true, "will": true, "just": true,
	"don": true, "should": true, "now": true, "are": true, "was": true,
	"were": true,
}

// drops stop words and short tokens, then truncates to maxWords.
func CompressWords(text string, maxWords int) string {
	if text == "" {
		return ""
	}
	var kept []string
	for _, w := range strings.Fields(text) {
		if len(w) <= 2 || stopWords[strings.ToLower(w)] {
			continue
		}
		kept = append(kept, w)
		if len(kept) == maxWords {
			break
		}
	}
	return strings.Join(kept, " ")
}

// canonicalizes a social profile url for dedupe purposes: scheme,
// www prefix and trailing slash are not identity.
func CanonicalSocialKey(link string) string {
	key := strings.ToLower(link)
	key = strings.TrimPrefix(key, "https://")
	key = strings.TrimPrefix(key, "http://")
	key = strings.TrimPrefix(key, "www.")
	return strings.TrimRight(key, "/")
}
