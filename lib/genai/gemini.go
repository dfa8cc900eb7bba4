package genai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"outreach-backend/lib/telemetry"

	"github.com/go-resty/resty/v2"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com"

// gemma has much higher free-tier limits than the flash models
const defaultModel = "gemma-3-27b-it"

type ClientOptions struct {
	BaseURL string
	Model   string
	// per-request bound, zero means the 60s default
	Timeout time.Duration
}

// Client is the HTTP generation backend. it implements Generator.
type Client struct {
	http  *resty.Client
	model string
}

func NewClient(opts ClientOptions) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if opts.Model == "" {
		opts.Model = defaultModel
	}
	if opts.Timeout == 0 {
		opts.Timeout = time.Second * 60
	}

	client := resty.New()
	client.SetBaseURL(opts.BaseURL)
	client.SetTimeout(opts.Timeout)
	telemetry.InstrumentResty(client, "outreach.lib.genai.http")

	return &Client{
		http:  client,
		model: opts.Model,
	}
}

type generatePart struct {
	Text string `json:"text"`
}

type generateContent struct {
	Parts []generatePart `json:"parts"`
}

type generateRequest struct {
	Contents []generateContent `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content      generateContent `json:"content"`
		FinishReason string          `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
}

func (c *Client) Generate(ctx context.Context, cred Credential, prompt string) (string, error) {
	var out generateResponse
	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("key", cred.GenerationKey).
		SetHeader("content-type", "application/json").
		SetBody(generateRequest{
			Contents: []generateContent{{Parts: []generatePart{{Text: prompt}}}},
		}).
		SetResult(&out).
		Post(fmt.Sprintf("/v1beta/models/%s:generateContent", c.model))
	if err != nil {
		return "", err
	}
	if res.IsError() {
		// keep the upstream status and message in the error text, the
		// classifier matches on it
		return "", fmt.Errorf("generate: status %d: %s", res.StatusCode(), res.String())
	}

	if out.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("%w: block reason %q", ErrContentBlocked, out.PromptFeedback.BlockReason)
	}

	var text strings.Builder
	if len(out.Candidates) > 0 {
		for _, part := range out.Candidates[0].Content.Parts {
			text.WriteString(part.Text)
		}
	}
	if text.Len() == 0 {
		return "", fmt.Errorf("%w: reply carried no candidate text", ErrContentBlocked)
	}
	return text.String(), nil
}
