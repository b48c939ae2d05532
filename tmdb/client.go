package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sethvargo/go-retry"
)

// DefaultBaseURL is the TMDb v3 API root.
const DefaultBaseURL = "https://api.themoviedb.org/3"

// Config holds the client's fixed parameters.
type Config struct {
	APIKey      string
	BaseURL     string
	Language    string        // default locale merged under caller params
	Region      string        // optional region bias for movie listings
	HTTPTimeout time.Duration // per-request timeout
	Retries     int           // total attempts per call
	RetryBase   time.Duration // first backoff delay, doubled per attempt
	CallDelay   time.Duration // fixed sleep after every call
}

// DefaultConfig returns the client parameters used by the import runs.
func DefaultConfig(apiKey string) Config {
	return Config{
		APIKey:      apiKey,
		BaseURL:     DefaultBaseURL,
		Language:    "en-US",
		HTTPTimeout: 30 * time.Second,
		Retries:     3,
		RetryBase:   500 * time.Millisecond,
		CallDelay:   50 * time.Millisecond,
	}
}

// Client issues rate-limited GET requests against the TMDb API. All calls
// are synchronous; the configured CallDelay is applied after every request
// so that strictly serial callers stay under the provider's rate limit.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient creates a client from cfg, filling in unset fields with the
// defaults from DefaultConfig.
func NewClient(cfg Config) *Client {
	def := DefaultConfig(cfg.APIKey)
	if cfg.BaseURL == "" {
		cfg.BaseURL = def.BaseURL
	}
	if cfg.Language == "" {
		cfg.Language = def.Language
	}
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = def.HTTPTimeout
	}
	if cfg.Retries <= 0 {
		cfg.Retries = def.Retries
	}
	if cfg.RetryBase <= 0 {
		cfg.RetryBase = def.RetryBase
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.HTTPTimeout},
	}
}

// get fetches path with params merged over the client defaults (caller
// values win) and decodes the JSON body into out. Transport errors and
// 429/5xx responses are retried with exponential backoff up to the attempt
// ceiling; the last error is returned once attempts are exhausted.
func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	defer func() {
		if c.cfg.CallDelay > 0 {
			time.Sleep(c.cfg.CallDelay)
		}
	}()

	q := url.Values{}
	q.Set("api_key", c.cfg.APIKey)
	if c.cfg.Language != "" {
		q.Set("language", c.cfg.Language)
	}
	for k, vs := range params {
		q[k] = vs
	}
	reqURL := c.cfg.BaseURL + path + "?" + q.Encode()

	attempt := 0
	backoff := retry.WithMaxRetries(uint64(c.cfg.Retries-1), retry.NewExponential(c.cfg.RetryBase))

	var body []byte
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		b, err := c.doOnce(ctx, reqURL)
		if err != nil {
			log.Printf("GET %s failed (attempt %d/%d): %v", path, attempt, c.cfg.Retries, err)
			return err
		}
		body = b
		return nil
	})
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("GET %s: decoding response: %w", path, err)
	}
	return nil
}

// doOnce performs a single request. Errors are marked retryable only for
// transport failures and 429/5xx statuses; any other non-2xx status stops
// the retry loop immediately.
func (c *Client) doOnce(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, retry.RetryableError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, retry.RetryableError(err)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, retry.RetryableError(fmt.Errorf("status %s", resp.Status))
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("status %s", resp.Status)
	}
	return body, nil
}

// PopularMovies fetches one page of the popular movies listing, biased to
// the configured region when set.
func (c *Client) PopularMovies(ctx context.Context, page int) (*ListingPage, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	if c.cfg.Region != "" {
		params.Set("region", c.cfg.Region)
	}
	var out ListingPage
	if err := c.get(ctx, "/movie/popular", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PopularTV fetches one page of the popular TV listing.
func (c *Client) PopularTV(ctx context.Context, page int) (*ListingPage, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	var out ListingPage
	if err := c.get(ctx, "/tv/popular", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MovieExternalIDs resolves the cross-reference ids for a movie.
func (c *Client) MovieExternalIDs(ctx context.Context, id int64) (*ExternalIDs, error) {
	var out ExternalIDs
	if err := c.get(ctx, fmt.Sprintf("/movie/%d/external_ids", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TVExternalIDs resolves the cross-reference ids for a TV show.
func (c *Client) TVExternalIDs(ctx context.Context, id int64) (*ExternalIDs, error) {
	var out ExternalIDs
	if err := c.get(ctx, fmt.Sprintf("/tv/%d/external_ids", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PersonExternalIDs resolves the cross-reference ids for a person.
func (c *Client) PersonExternalIDs(ctx context.Context, id int64) (*ExternalIDs, error) {
	var out ExternalIDs
	if err := c.get(ctx, fmt.Sprintf("/person/%d/external_ids", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MovieDetails fetches a movie's detail payload with images, credits and
// external ids appended in a single call. Untagged images pass the language
// filter alongside English ones.
func (c *Client) MovieDetails(ctx context.Context, id int64) (*MovieDetail, error) {
	params := url.Values{}
	params.Set("append_to_response", "images,credits,external_ids")
	params.Set("include_image_language", "en,null")
	var out MovieDetail
	if err := c.get(ctx, fmt.Sprintf("/movie/%d", id), params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TVDetails fetches a TV show's detail payload with images, external ids and
// aggregate credits (spanning all episodes) appended in a single call.
func (c *Client) TVDetails(ctx context.Context, id int64) (*TVDetail, error) {
	params := url.Values{}
	params.Set("append_to_response", "images,external_ids,aggregate_credits")
	params.Set("include_image_language", "en,null")
	var out TVDetail
	if err := c.get(ctx, fmt.Sprintf("/tv/%d", id), params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PersonProfileImages fetches a person's headshot variants.
func (c *Client) PersonProfileImages(ctx context.Context, id int64) (*PersonImages, error) {
	var out PersonImages
	if err := c.get(ctx, fmt.Sprintf("/person/%d/images", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
