package companyprofile

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"outreach-backend/lib/genai"
	"outreach-backend/lib/htmlutil"
	"outreach-backend/lib/telemetry"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

var tracer = telemetry.Tracer("outreach.lib.scrapers.companyprofile")

const defaultSearchURL = "https://www.googleapis.com/customsearch/v1"

// Person is one staff entry surfaced on a public company page.
type Person struct {
	Name       string
	Role       string
	ProfileURL string
}

// Data is the best-effort org snapshot from a public company page.
type Data struct {
	SourceURL     string
	About         string
	Headquarters  string
	EmployeeCount string
	FollowerCount string
	CompanySize   string
	Industry      string
	Specialties   string
	Employees     []Person
	Success       bool
}

type Client struct {
	http *resty.Client
	// search-capable credentials in pool order, rotated through on
	// limit/authorization errors
	searchCreds []genai.Credential
	searchURL   string
	profileHost string
}

type ClientOptions struct {
	SearchCreds []genai.Credential
	// overridden in tests
	SearchURL   string
	ProfileHost string
}

func NewClient(opts ClientOptions) *Client {
	client := resty.New()
	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	client.SetTimeout(time.Second * 30)
	telemetry.InstrumentResty(client, "outreach.lib.scrapers.companyprofile.http")

	searchURL := opts.SearchURL
	if searchURL == "" {
		searchURL = defaultSearchURL
	}
	profileHost := opts.ProfileHost
	if profileHost == "" {
		profileHost = "linkedin.com"
	}

	return &Client{
		http:        client,
		searchCreds: opts.SearchCreds,
		searchURL:   searchURL,
		profileHost: profileHost,
	}
}

// Lookup finds the company page for a business and scrapes it. both
// halves are best-effort, failure degrades to empty Data.
func (c *Client) Lookup(ctx context.Context, businessName string) Data {
	ctx, span := tracer.Start(ctx, "Lookup")
	defer span.End()

	pageURL := c.findCompanyPage(ctx, businessName)
	if pageURL == "" {
		slog.WarnContext(ctx, "no company page found", "business", businessName)
		return Data{}
	}
	return c.scrapePage(ctx, pageURL)
}

type searchResponse struct {
	Items []struct {
		Link string `json:"link"`
	} `json:"items"`
}

// findCompanyPage queries the programmable-search api with each
// search-capable credential until one answers. 429/403 rotate to the
// next credential, like the generation side but without the cooldown:
// search quota is cheap and per-day, waiting doesn't help.
func (c *Client) findCompanyPage(ctx context.Context, businessName string) string {
	query := fmt.Sprintf("%s site:%s/company", businessName, c.profileHost)

	for _, cred := range c.searchCreds {
		slog.InfoContext(ctx, "searching for company page", "query", query, "credential", cred.Name)

		var out searchResponse
		res, err := c.http.R().
			SetContext(ctx).
			SetQueryParams(map[string]string{
				"key": cred.SearchKey,
				"cx":  cred.SearchCx,
				"q":   query,
			}).
			SetResult(&out).
			Get(c.searchURL)
		if err != nil {
			slog.WarnContext(ctx, "search request failed", "err", err)
			continue
		}
		if res.StatusCode() == 429 || res.StatusCode() == 403 {
			slog.WarnContext(
				ctx, "search credential limited, rotating",
				"credential", cred.Name,
				"status", res.StatusCode(),
			)
			continue
		}
		if res.IsError() {
			slog.WarnContext(ctx, "search failed", "status", res.StatusCode())
			continue
		}

		marker := fmt.Sprintf("%s/company/", c.profileHost)
		for _, item := range out.Items {
			if strings.Contains(item.Link, marker) {
				return item.Link
			}
		}
		// answered without a match: not found, no point burning more
		// credentials on the same query
		return ""
	}
	return ""
}

var employeeCountRegex = regexp.MustCompile(`(?i)([\d,]+\+?)\s+employees`)
var followerCountRegex = regexp.MustCompile(`(?i)([\d,]+)\s+followers`)

func (c *Client) scrapePage(ctx context.Context, pageURL string) Data {
	ctx, span := tracer.Start(ctx, "scrapePage")
	defer span.End()

	data := Data{SourceURL: pageURL}

	res, err := c.http.R().
		SetContext(ctx).
		Get(pageURL)
	if err != nil {
		slog.ErrorContext(ctx, "failed to fetch company page", "url", pageURL, "err", err)
		return data
	}
	if finalURL := res.RawResponse.Request.URL; strings.Contains(finalURL.Path, "authwall") {
		slog.WarnContext(ctx, "hit authwall, degrading to empty profile", "url", pageURL)
		return data
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		slog.ErrorContext(ctx, "failed to parse company page", "url", pageURL, "err", err)
		return data
	}

	text := htmlutil.CleanText(doc.Text())
	if m := employeeCountRegex.FindStringSubmatch(text); m != nil {
		data.EmployeeCount = m[1]
	}
	if m := followerCountRegex.FindStringSubmatch(text); m != nil {
		data.FollowerCount = m[1]
	}

	data.About = doc.Find(`meta[property="og:description"]`).AttrOr("content", "")

	// the details list on public pages is dt/dd pairs
	doc.Find("dt").Each(func(_ int, dt *goquery.Selection) {
		label := strings.ToLower(htmlutil.CleanText(dt.Text()))
		value := htmlutil.CleanText(dt.NextFiltered("dd").Text())
		if value == "" {
			return
		}
		switch {
		case strings.Contains(label, "headquarters"):
			data.Headquarters = value
		case strings.Contains(label, "company size"):
			data.CompanySize = value
		case strings.Contains(label, "industry"):
			data.Industry = value
		case strings.Contains(label, "specialties"):
			data.Specialties = value
		}
	})

	data.Employees = extractEmployees(doc)
	data.Success = true
	return data
}

// public pages surface a handful of profile cards, anything linking
// into /in/ is treated as a person
func extractEmployees(doc *goquery.Document) []Person {
	var people []Person
	seen := map[string]bool{}

	doc.Find(`a[href*="/in/"]`).Each(func(_ int, a *goquery.Selection) {
		href := strings.SplitN(a.AttrOr("href", ""), "?", 2)[0]
		if href == "" || seen[href] {
			return
		}

		lines := strings.Split(strings.TrimSpace(a.Text()), "\n")
		name := htmlutil.CleanText(lines[0])
		if name == "" {
			return
		}
		role := ""
		if len(lines) > 1 {
			role = htmlutil.CleanText(strings.Join(lines[1:], " "))
		}

		seen[href] = true
		people = append(people, Person{Name: name, Role: role, ProfileURL: href})
	})
	return people
}
