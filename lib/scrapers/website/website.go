package website

import (
	"bytes"
	"context"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"outreach-backend/lib/htmlutil"
	"outreach-backend/lib/telemetry"
	"outreach-backend/lib/textutil"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

var tracer = telemetry.Tracer("outreach.lib.scrapers.website")

const bodyTextLimit = 5000

// Data is the best-effort extraction from one company website. a
// failed fetch leaves Success false with whatever was gathered.
type Data struct {
	URL              string
	Title            string
	MetaDescription  string
	H1s              []string
	SocialLinks      []string
	Emails           []string
	DetectedLocation string
	BodyText         string
	Success          bool
}

type Client struct {
	http *resty.Client
}

func NewClient() *Client {
	client := resty.New()
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	client.SetTimeout(time.Second * 30)
	telemetry.InstrumentResty(client, "outreach.lib.scrapers.website.http")

	return &Client{http: client}
}

var socialDomains = []string{
	"facebook.com", "twitter.com", "x.com", "linkedin.com",
	"instagram.com", "pinterest.com", "youtube.com", "tiktok.com",
}

// substrings that mark share widgets and other non-profile links
var socialNoise = []string{
	"/p/", "/share", "/sharer", "/intent", "/stories/", "/reel/",
	"about:blank", "javascript:void", "/home.php",
}

var socialLabels = []string{"instagram", "facebook", "linkedin"}

var emailRegex = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

// "City, ST" is as far as location parsing goes here, the profile
// lookup downstream usually provides something better
var locationRegex = regexp.MustCompile(`\b([A-Z][a-z]+(?: [A-Z][a-z]+)*, ?[A-Z]{2})\b`)

var contactKeywords = []string{"contact", "about", "connect", "inquire", "touch", "hello"}

func (c *Client) Scrape(ctx context.Context, link string) Data {
	ctx, span := tracer.Start(ctx, "Scrape")
	defer span.End()

	data := Data{URL: link}
	if link == "" {
		return data
	}
	if !strings.HasPrefix(link, "http://") && !strings.HasPrefix(link, "https://") {
		link = "https://" + link
		data.URL = link
	}

	doc, err := c.fetch(ctx, link)
	if err != nil {
		slog.ErrorContext(ctx, "failed to scrape website", "url", link, "err", err)
		return data
	}

	data.Title = strings.TrimSpace(doc.Find("title").First().Text())
	data.MetaDescription = doc.Find(`meta[name="description"]`).AttrOr("content", "")
	doc.Find("h1").Each(func(_ int, h1 *goquery.Selection) {
		if text := htmlutil.CleanText(h1.Text()); text != "" {
			data.H1s = append(data.H1s, text)
		}
	})

	socials, emails := extractLinks(doc)
	data.SocialLinks = socials
	data.Emails = emails

	// socials and contact emails tend to hide on contact/about pages
	if contact := firstContactPage(doc, link); contact != "" {
		slog.InfoContext(ctx, "visiting internal page", "url", contact)
		sub, err := c.fetch(ctx, contact)
		if err != nil {
			slog.WarnContext(ctx, "failed to visit internal page", "url", contact, "err", err)
		} else {
			subSocials, subEmails := extractLinks(sub)
			data.SocialLinks = mergeUnique(data.SocialLinks, subSocials)
			data.Emails = mergeUnique(data.Emails, subEmails)
		}
	}

	text := htmlutil.VisibleText(doc)
	if m := locationRegex.FindStringSubmatch(text); m != nil {
		data.DetectedLocation = m[1]
	}
	if len(text) > bodyTextLimit {
		text = text[:bodyTextLimit]
	}
	data.BodyText = text

	data.Success = true
	return data
}

func (c *Client) fetch(ctx context.Context, link string) (*goquery.Document, error) {
	res, err := c.http.R().
		SetContext(ctx).
		Get(link)
	if err != nil {
		return nil, err
	}
	return goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
}

func extractLinks(doc *goquery.Document) (socials []string, emails []string) {
	seen := map[string]bool{}
	emailSet := map[string]bool{}

	addSocial := func(href string) {
		lower := strings.ToLower(href)
		if href == "" || strings.HasPrefix(href, "#") {
			return
		}
		for _, noise := range socialNoise {
			if strings.Contains(lower, noise) {
				return
			}
		}
		key := textutil.CanonicalSocialKey(href)
		if key == "" || seen[key] {
			return
		}
		seen[key] = true
		socials = append(socials, href)
	}

	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href := strings.TrimSpace(a.AttrOr("href", ""))
		lower := strings.ToLower(href)

		for _, domain := range socialDomains {
			if strings.Contains(lower, domain) {
				addSocial(href)
				break
			}
		}

		if strings.HasPrefix(lower, "mailto:") {
			addr := strings.SplitN(strings.TrimPrefix(lower, "mailto:"), "?", 2)[0]
			if emailRegex.MatchString(addr) {
				emailSet[addr] = true
			}
		}

		// icon-only links often carry the network name in a label
		// rather than a recognizable href
		label := strings.ToLower(a.AttrOr("aria-label", a.AttrOr("title", "")))
		for _, name := range socialLabels {
			if strings.Contains(label, name) {
				addSocial(href)
				break
			}
		}
	})

	for _, addr := range emailRegex.FindAllString(doc.Text(), -1) {
		emailSet[strings.ToLower(addr)] = true
	}
	for addr := range emailSet {
		emails = append(emails, addr)
	}
	return socials, emails
}

func firstContactPage(doc *goquery.Document, base string) string {
	found := ""
	doc.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href := strings.TrimSpace(a.AttrOr("href", ""))
		lower := strings.ToLower(href)
		for _, keyword := range contactKeywords {
			if !strings.Contains(lower, keyword) {
				continue
			}
			switch {
			case strings.HasPrefix(href, "/"):
				found = strings.TrimRight(base, "/") + href
			case strings.HasPrefix(lower, "http") && strings.Contains(lower, baseDomain(base)):
				found = href
			default:
				continue
			}
			return false
		}
		return true
	})
	if found == base {
		return ""
	}
	return found
}

func baseDomain(link string) string {
	link = strings.TrimPrefix(link, "https://")
	link = strings.TrimPrefix(link, "http://")
	return strings.SplitN(link, "/", 2)[0]
}

func mergeUnique(existing, extra []string) []string {
	seen := map[string]bool{}
	for _, v := range existing {
		seen[textutil.CanonicalSocialKey(v)] = true
	}
	for _, v := range extra {
		key := textutil.CanonicalSocialKey(v)
		if !seen[key] {
			seen[key] = true
			existing = append(existing, v)
		}
	}
	return existing
}
