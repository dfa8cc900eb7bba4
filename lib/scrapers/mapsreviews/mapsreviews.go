package mapsreviews

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"outreach-backend/lib/telemetry"
	"outreach-backend/lib/textutil"

	"github.com/antzucaro/matchr"
	"github.com/go-resty/resty/v2"
)

var tracer = telemetry.Tracer("outreach.lib.scrapers.mapsreviews")

// listings whose title scores below this against the query name are
// flagged low confidence, their reviews should not be trusted
const matchThreshold = 0.80

// Data is the review snapshot for the top maps listing matching a
// business.
type Data struct {
	SourceURL       string
	ListingName     string
	Address         string
	Category        string
	Phone           string
	Rating          float64
	ReviewCount     int
	Attributes      []string
	Socials         []string
	PositiveThemes  []string
	Reviews         []string
	MatchConfidence float64
	LowConfidence   bool
	Success         bool
}

// Client talks to the maps-scraper sidecar service, which does the
// actual listing scraping and answers in its result-file shape.
type Client struct {
	http     *resty.Client
	endpoint string
}

func NewClient(endpoint string) *Client {
	client := resty.New()
	client.SetTimeout(time.Second * 60)
	telemetry.InstrumentResty(client, "outreach.lib.scrapers.mapsreviews.http")

	return &Client{
		http:     client,
		endpoint: endpoint,
	}
}

type listing struct {
	Name             string   `json:"name"`
	URL              string   `json:"url"`
	Address          string   `json:"address"`
	Category         string   `json:"category"`
	Phone            string   `json:"phone"`
	Rating           float64  `json:"rating"`
	ReviewCount      int      `json:"reviewCount"`
	Attributes       []string `json:"attributes"`
	Socials          []string `json:"socials"`
	ReviewCategories []string `json:"reviewCategories"`
	Reviews          []struct {
		Text string `json:"text"`
	} `json:"reviews"`
}

// Scrape asks the sidecar for listings matching the business and
// keeps the top result. best-effort: any failure degrades to an empty
// result.
func (c *Client) Scrape(ctx context.Context, businessName, locationHint string) Data {
	ctx, span := tracer.Start(ctx, "Scrape")
	defer span.End()

	if c.endpoint == "" {
		slog.WarnContext(ctx, "no maps scraper endpoint configured, skipping reviews")
		return Data{}
	}

	query := strings.TrimSpace(businessName + " " + locationHint)
	slog.InfoContext(ctx, "querying maps scraper", "query", query)

	var listings []listing
	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("q", query).
		SetResult(&listings).
		Get(c.endpoint)
	if err != nil {
		slog.ErrorContext(ctx, "maps scraper request failed", "err", err)
		return Data{}
	}
	if res.IsError() {
		slog.ErrorContext(ctx, "maps scraper failed", "status", res.StatusCode())
		return Data{}
	}
	if len(listings) == 0 {
		slog.WarnContext(ctx, "maps scraper returned no listings", "query", query)
		return Data{}
	}

	top := listings[0]
	data := Data{
		SourceURL:      top.URL,
		ListingName:    top.Name,
		Address:        top.Address,
		Category:       top.Category,
		Phone:          top.Phone,
		Rating:         top.Rating,
		ReviewCount:    top.ReviewCount,
		Attributes:     top.Attributes,
		Socials:        top.Socials,
		PositiveThemes: top.ReviewCategories,
		Success:        true,
	}
	for _, r := range top.Reviews {
		if r.Text != "" {
			data.Reviews = append(data.Reviews, r.Text)
		}
	}

	data.MatchConfidence = matchr.JaroWinkler(
		textutil.NormalizeName(businessName),
		textutil.NormalizeName(top.Name),
		false,
	)
	if data.MatchConfidence < matchThreshold {
		slog.WarnContext(
			ctx, "listing name barely matches query, flagging low confidence",
			"query", businessName,
			"listing", top.Name,
			"confidence", data.MatchConfidence,
		)
		data.LowConfidence = true
	}
	return data
}
