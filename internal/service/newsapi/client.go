package newsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"FundPulse/internal/domain/models"
	drepo "FundPulse/internal/domain/repository"
	svcmetrics "FundPulse/internal/service/metrics"
	xhttp "FundPulse/pkg/http"
	"FundPulse/pkg/logger"
)

// PathEverything is the search endpoint proxied by the news API.
const PathEverything = "/v2/everything"

const provider = "newsapi"

// ErrNotConfigured is returned when no API key is set.
var ErrNotConfigured = errors.New("news api key is not configured")

// UpstreamError describes a failed call to the news provider. Status is 0
// when no HTTP response was received.
type UpstreamError struct {
	Status  int
	Message string
	Err     error
}

func (e *UpstreamError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("news upstream unreachable: %s", e.Message)
	}
	return fmt.Sprintf("news upstream returned %d: %s", e.Status, e.Message)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Client searches NewsAPI. It implements repository.NewsSource.
type Client struct {
	http       *xhttp.Client
	configured bool
	log        *logger.Logger
}

var _ drepo.NewsSource = (*Client)(nil)

// New creates a NewsAPI client. An empty apiKey yields a client whose
// Search always returns ErrNotConfigured.
func New(baseURL, apiKey string, timeout time.Duration, log *logger.Logger) *Client {
	return &Client{
		http:       xhttp.NewClient(baseURL, xhttp.WithTimeout(timeout), xhttp.WithHeader("X-Api-Key", apiKey)),
		configured: apiKey != "",
		log:        log,
	}
}

type article struct {
	Source struct {
		Name string `json:"name"`
	} `json:"source"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
}

type everythingResponse struct {
	Status   string    `json:"status"`
	Articles []article `json:"articles"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Search runs one upstream query and returns the simplified articles.
func (c *Client) Search(ctx context.Context, query, sort, pageSize string) (_ []models.Article, err error) {
	if !c.configured {
		return nil, ErrNotConfigured
	}
	defer svcmetrics.ObserveCall(provider, "everything", time.Now(), &err)

	q := url.Values{}
	q.Set("q", query)
	q.Set("sortBy", sort)
	q.Set("pageSize", pageSize)

	var resp everythingResponse
	if err := c.http.GetJSON(ctx, PathEverything, q, &resp); err != nil {
		return nil, toUpstreamError(err)
	}

	out := make([]models.Article, 0, len(resp.Articles))
	for _, a := range resp.Articles {
		out = append(out, models.Article{
			Title:       a.Title,
			URL:         a.URL,
			Source:      a.Source.Name,
			PublishedAt: a.PublishedAt,
		})
	}
	c.log.Debug("news search", logger.String("query", query), logger.Int("articles", len(out)))
	return out, nil
}

func toUpstreamError(err error) error {
	var se *xhttp.StatusError
	if !errors.As(err, &se) {
		return &UpstreamError{Message: err.Error(), Err: err}
	}

	msg := string(se.Body)
	var body errorResponse
	if json.Unmarshal(se.Body, &body) == nil && body.Message != "" {
		msg = body.Message
	}
	return &UpstreamError{Status: se.StatusCode, Message: msg, Err: err}
}
