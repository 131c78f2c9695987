package brewapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/bluby/brew-parser/internal/formula"
	"github.com/bluby/brew-parser/internal/logger"
)

const (
	// BaseURL is Homebrew's official API endpoint for formula metadata.
	BaseURL   = "https://formulae.brew.sh/api/formula"
	UserAgent = "brew-parser/1.0 (https://github.com/bluby/brew-parser)"

	listTimeout   = 30 * time.Second
	lookupTimeout = 10 * time.Second

	defaultMaxRetries = 3
)

// ErrNotFound is returned by GetFormula when the API reports 404 for the
// requested formula name.
var ErrNotFound = errors.New("formula not found")

// APIError indicates the API responded with a non-2xx status.
type APIError struct {
	StatusCode int
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API returned status %d for %s", e.StatusCode, e.URL)
}

// Client fetches formula metadata from the Homebrew API.
type Client struct {
	baseURL      string
	listClient   *http.Client
	lookupClient *http.Client
	maxRetries   uint64
}

// New creates a new Homebrew API client.
func New() *Client {
	return NewWithBaseURL(BaseURL)
}

// NewWithBaseURL creates a client against a specific endpoint. Used by
// tests to point at a local server.
func NewWithBaseURL(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		listClient: &http.Client{
			Timeout: listTimeout,
		},
		lookupClient: &http.Client{
			Timeout: lookupTimeout,
		},
		maxRetries: defaultMaxRetries,
	}
}

// FetchAll fetches the complete list of formulas from the Homebrew API.
// Transient failures (network errors, 5xx responses) are retried with
// exponential backoff; 4xx responses and malformed payloads fail
// immediately.
func (c *Client) FetchAll() ([]formula.Formula, error) {
	logger.Info("Fetching formula list from Homebrew API", nil)

	var formulas []formula.Formula
	operation := func() error {
		result, err := c.fetchList()
		if err != nil {
			if !retryable(err) {
				return backoff.Permanent(err)
			}
			logger.Warn("Retrying formula list fetch", logger.Fields{"error": err.Error()})
			return err
		}
		formulas = result
		return nil
	}

	policy := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.maxRetries)
	if err := backoff.Retry(operation, policy); err != nil {
		logger.Error("Failed to fetch formulas", nil, err)
		return nil, fmt.Errorf("fetching formula list: %w", err)
	}

	logger.Info("Successfully fetched formulas", logger.Fields{"count": len(formulas)})
	return formulas, nil
}

// retryable reports whether a fetch failure is worth another attempt:
// network-level errors and 5xx responses are; 4xx responses and malformed
// payloads are not.
func retryable(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= http.StatusInternalServerError
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr)
}

// fetchList performs a single GET of the full formula listing.
func (c *Client) fetchList() ([]formula.Formula, error) {
	reqURL := c.baseURL + ".json"

	req, err := http.NewRequest("GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := c.listClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, URL: reqURL}
	}

	// A top-level shape other than a JSON array is a hard failure.
	var formulas []formula.Formula
	if err := json.NewDecoder(resp.Body).Decode(&formulas); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}

	return formulas, nil
}

// GetFormula fetches detailed information about a single formula.
// A 404 response maps to ErrNotFound.
func (c *Client) GetFormula(name string) (*formula.Formula, error) {
	reqURL := fmt.Sprintf("%s/%s.json", c.baseURL, name)

	req, err := http.NewRequest("GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := c.lookupClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		logger.Warn("Formula not found", logger.Fields{"formula": name})
		return nil, fmt.Errorf("looking up %q: %w", name, ErrNotFound)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, URL: reqURL}
	}

	var f formula.Formula
	if err := json.NewDecoder(resp.Body).Decode(&f); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}

	return &f, nil
}
