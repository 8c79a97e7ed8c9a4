package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultBaseURL is the RAWG catalog API root.
const DefaultBaseURL = "https://api.rawg.io/api"

// Client talks to the paginated RAWG-style catalog API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// RawGame mirrors one game object of the upstream page payload. Nested names
// are optional everywhere; absence decodes to the zero value.
type RawGame struct {
	ID              int     `json:"id"`
	Name            string  `json:"name"`
	Released        string  `json:"released"`
	BackgroundImage string  `json:"background_image"`
	Rating          float64 `json:"rating"`
	Metacritic      int     `json:"metacritic"`
	Playtime        int     `json:"playtime"`
	Platforms       []struct {
		Platform struct {
			Name string `json:"name"`
		} `json:"platform"`
	} `json:"platforms"`
	Genres []struct {
		Name string `json:"name"`
	} `json:"genres"`
	Stores []struct {
		Store struct {
			Name string `json:"name"`
		} `json:"store"`
	} `json:"stores"`
	ShortScreenshots []struct {
		Image string `json:"image"`
	} `json:"short_screenshots"`
	ESRBRating *struct {
		Name string `json:"name"`
	} `json:"esrb_rating"`
}

type pageResponse struct {
	Results []RawGame `json:"results"`
	Next    string    `json:"next"`
}

type detailResponse struct {
	Description string `json:"description"`
}

// FetchPage returns the game objects of one catalog page. A non-200 status
// is an error; callers treat it as a skipped page, not a fatal condition.
func (c *Client) FetchPage(ctx context.Context, page int) ([]RawGame, error) {
	url := fmt.Sprintf("%s/games?key=%s", c.baseURL, c.apiKey)
	if page > 1 {
		url = fmt.Sprintf("%s&page=%d", url, page)
	}

	body, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}
	var resp pageResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode page %d: %w", page, err)
	}
	return resp.Results, nil
}

// FetchDescription pulls the long description of a single game for lazy
// enrichment of the stored record.
func (c *Client) FetchDescription(ctx context.Context, id int) (string, error) {
	url := fmt.Sprintf("%s/games/%d?key=%s", c.baseURL, id, c.apiKey)
	body, err := c.get(ctx, url)
	if err != nil {
		return "", err
	}
	var resp detailResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("decode game %d: %w", id, err)
	}
	return resp.Description, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API request failed (status %d)", resp.StatusCode)
	}
	return body, nil
}
