package usda

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/nutriscope/backend/internal/domain"
	"golang.org/x/time/rate"
)

// searchResponse is the wire shape of the FoodData Central search endpoint
type searchResponse struct {
	Foods       []foodRecord `json:"foods"`
	TotalHits   int          `json:"totalHits"`
	CurrentPage int          `json:"currentPage"`
}

// foodRecord is a single food from FoodData Central
type foodRecord struct {
	FdcID        int64            `json:"fdcId"`
	Description  string           `json:"description"`
	DataType     string           `json:"dataType"`
	FoodCategory string           `json:"foodCategory"`
	Nutrients    []nutrientRecord `json:"foodNutrients"`
	Portions     []portionRecord  `json:"foodPortions"`
}

// nutrientRecord is a single nutrient row; depending on endpoint the
// amount arrives as "value" or "amount"
type nutrientRecord struct {
	NutrientID     int64   `json:"nutrientId"`
	NutrientNumber string  `json:"nutrientNumber"`
	NutrientName   string  `json:"nutrientName"`
	UnitName       string  `json:"unitName"`
	Value          float64 `json:"value"`
	Amount         float64 `json:"amount"`
}

type portionRecord struct {
	PortionDescription string  `json:"portionDescription"`
	Modifier           string  `json:"modifier"`
	GramWeight         float64 `json:"gramWeight"`
}

// Client handles communication with the USDA FoodData Central API
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	rateLimiter *rate.Limiter
}

// NewClient creates a new FoodData Central client.
// The free tier allows 1000 requests per hour, so the limiter runs at
// 1000/3600 ≈ 0.278 requests/sec with a small burst.
func NewClient(apiKey, baseURL string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		apiKey:      apiKey,
		baseURL:     baseURL,
		rateLimiter: rate.NewLimiter(rate.Limit(0.278), 10),
	}
}

// Configured reports whether the client has an API key
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// doRequest executes an HTTP GET request and maps transport failures to
// the domain error taxonomy
func (c *Client) doRequest(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "NutriScope/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return nil, fmt.Errorf("%w: %v", domain.ErrTimeout, err)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderUnavailable, err)
	}

	return resp, nil
}

// isTimeout reports whether err is a network timeout
func isTimeout(err error) bool {
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}

// SearchFoods searches FoodData Central for raw ingredients
func (c *Client) SearchFoods(ctx context.Context, query string) (*searchResponse, error) {
	log.Printf("[USDA] SearchFoods called with query: %q", query)

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1/foods/search", c.baseURL)
	params := url.Values{}
	params.Add("query", query)
	params.Add("api_key", c.apiKey)
	params.Add("dataType", "Foundation,SR Legacy,Survey (FNDDS)")
	params.Add("pageSize", "20")

	reqURL := fmt.Sprintf("%s?%s", endpoint, params.Encode())

	resp, err := c.doRequest(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("[USDA] API error - status: %d", resp.StatusCode)
		return nil, fmt.Errorf("%w: status %d", domain.ErrProviderUnavailable, resp.StatusCode)
	}

	var searchResp searchResponse
	if err := json.Unmarshal(body, &searchResp); err != nil {
		log.Printf("[USDA] JSON decode error: %v", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrParseFailure, err)
	}

	log.Printf("[USDA] Found %d foods for query: %q", len(searchResp.Foods), query)
	return &searchResp, nil
}

// GetFood retrieves detailed information for a specific food by FDC ID
func (c *Client) GetFood(ctx context.Context, fdcID string) (*foodRecord, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1/food/%s", c.baseURL, fdcID)
	params := url.Values{}
	params.Add("api_key", c.apiKey)

	reqURL := fmt.Sprintf("%s?%s", endpoint, params.Encode())

	resp, err := c.doRequest(ctx, reqURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", domain.ErrProviderUnavailable, resp.StatusCode)
	}

	var food foodRecord
	if err := json.NewDecoder(resp.Body).Decode(&food); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrParseFailure, err)
	}

	return &food, nil
}
