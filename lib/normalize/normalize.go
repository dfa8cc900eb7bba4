package normalize

import (
	"net/url"
	"regexp"
	"strings"
)

type InputType string

const (
	TypeURL   InputType = "url"
	TypeEmail InputType = "email"
)

// Target is the normalized form of a raw user input, either a website
// url or a contact email address.
type Target struct {
	OriginalInput string
	Type          InputType
	Domain        string
	BusinessName  string
	Valid         bool
}

// WebsiteURL is the url the website scraper should visit for this
// target.
func (t Target) WebsiteURL() string {
	if t.Type == TypeURL {
		return t.OriginalInput
	}
	return "http://" + t.Domain
}

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func Input(raw string) Target {
	target := Target{OriginalInput: raw}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return target
	}
	target.OriginalInput = raw

	if emailRegex.MatchString(raw) {
		target.Type = TypeEmail
		target.Domain = raw[strings.LastIndex(raw, "@")+1:]
		target.Valid = true
	} else {
		toParse := raw
		if !strings.HasPrefix(toParse, "http://") && !strings.HasPrefix(toParse, "https://") {
			toParse = "http://" + toParse
		}
		parsed, err := url.Parse(toParse)
		if err == nil && parsed.Hostname() != "" && strings.Contains(parsed.Hostname(), ".") {
			target.Type = TypeURL
			target.Domain = strings.TrimPrefix(parsed.Hostname(), "www.")
			target.Valid = true
		}
	}

	if target.Valid && target.Domain != "" {
		target.BusinessName = inferBusinessName(target.Domain)
	}
	return target
}

// infers a display name from a domain, e.g. "acme-corp.com" becomes
// "Acme Corp". crude, but the website title refinement downstream
// usually replaces it.
func inferBusinessName(domain string) string {
	name := domain
	if i := strings.LastIndex(name, "."); i > 0 {
		name = name[:i]
	}
	name = strings.NewReplacer("-", " ", "_", " ").Replace(name)

	words := strings.Fields(name)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
