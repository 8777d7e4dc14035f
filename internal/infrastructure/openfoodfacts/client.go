package openfoodfacts

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"github.com/nutriscope/backend/internal/domain"
	"golang.org/x/time/rate"
)

// searchResponse is the wire shape of the product search endpoint
type searchResponse struct {
	Products []productRecord `json:"products"`
	Count    int             `json:"count"`
}

// lookupResponse is the wire shape of the barcode lookup endpoint.
// Status 1 means found, 0 means unknown barcode.
type lookupResponse struct {
	Status  int            `json:"status"`
	Product *productRecord `json:"product"`
}

// productRecord is a single product as returned by the API. Nutriment
// values arrive in a loosely typed map keyed by field name.
type productRecord struct {
	Code           string                 `json:"code"`
	ProductName    string                 `json:"product_name"`
	Brands         string                 `json:"brands"`
	CategoriesTags []string               `json:"categories_tags"`
	LabelsTags     []string               `json:"labels_tags"`
	NutriScore     string                 `json:"nutriscore_grade"`
	NovaGroup      float64                `json:"nova_group"`
	Nutriments     map[string]interface{} `json:"nutriments"`
}

// searchFields limits the payload to the fields the mapper consumes
const searchFields = "code,product_name,brands,categories_tags,labels_tags,nutriscore_grade,nova_group,nutriments"

// Credentials identify the account used for product uploads
type Credentials struct {
	UserID   string
	Password string
}

// Client handles communication with the Open Food Facts API
type Client struct {
	httpClient  *http.Client
	baseURL     string
	credentials Credentials
	rateLimiter *rate.Limiter
}

// NewClient creates an Open Food Facts client. The public API asks for
// at most 100 requests per minute for product queries.
func NewClient(baseURL string, creds Credentials, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 8 * time.Second
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:     baseURL,
		credentials: creds,
		rateLimiter: rate.NewLimiter(rate.Limit(100.0/60.0), 10),
	}
}

// CanUpload reports whether upload credentials are configured
func (c *Client) CanUpload() bool {
	return c.credentials.UserID != "" && c.credentials.Password != ""
}

// Configured reports whether the client has a base URL to talk to
func (c *Client) Configured() bool {
	return c.baseURL != ""
}

// doRequest executes an HTTP request and maps transport failures to the
// domain error taxonomy
func (c *Client) doRequest(req *http.Request) (*http.Response, error) {
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

// SearchProducts searches the branded product database
func (c *Client) SearchProducts(ctx context.Context, query string) (*searchResponse, error) {
	log.Printf("[OFF] SearchProducts called with query: %q", query)

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	endpoint := fmt.Sprintf("%s/search", c.baseURL)
	params := url.Values{}
	params.Add("search_terms", query)
	params.Add("fields", searchFields)
	params.Add("page_size", "20")

	req, err := http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s?%s", endpoint, params.Encode()), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.doRequest(req)
	if err != nil {
		return nil, err
	}

	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("[OFF] API error - status: %d", resp.StatusCode)
		return nil, fmt.Errorf("%w: status %d", domain.ErrProviderUnavailable, resp.StatusCode)
	}

	var searchResp searchResponse
	if err := json.Unmarshal(body, &searchResp); err != nil {
		log.Printf("[OFF] JSON decode error: %v", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrParseFailure, err)
	}

	log.Printf("[OFF] Found %d products for query: %q", len(searchResp.Products), query)
	return &searchResp, nil
}

// GetProduct looks up a single product by barcode. Unknown barcodes
// return ErrNotFound, mirroring the API's status flag.
func (c *Client) GetProduct(ctx context.Context, barcode string) (*productRecord, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	reqURL := fmt.Sprintf("%s/product/%s.json", c.baseURL, url.PathEscape(barcode))
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.doRequest(req)
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

	var lookup lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&lookup); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrParseFailure, err)
	}
	if lookup.Status != 1 || lookup.Product == nil {
		return nil, domain.ErrNotFound
	}

	return lookup.Product, nil
}

// UploadProduct submits a new product via the write API as a multipart
// form. Requires configured credentials.
func (c *Client) UploadProduct(ctx context.Context, upload domain.ProductUpload) error {
	if !c.CanUpload() {
		return fmt.Errorf("%w: upload credentials not configured", domain.ErrInvalidInput)
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter error: %w", err)
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	fields := map[string]string{
		"code":                    upload.Barcode,
		"product_name":            upload.Name,
		"brands":                  upload.Brands,
		"nutriment_energy-kcal":   fmt.Sprintf("%g", upload.Calories),
		"nutriment_proteins":      fmt.Sprintf("%g", upload.Protein),
		"nutriment_carbohydrates": fmt.Sprintf("%g", upload.Carbs),
		"nutriment_fat":           fmt.Sprintf("%g", upload.Fat),
		"nutrition_data_per":      "100g",
		"user_id":                 c.credentials.UserID,
		"password":                c.credentials.Password,
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return fmt.Errorf("failed to build upload form: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to build upload form: %w", err)
	}

	reqURL := fmt.Sprintf("%s/product_jqm2.pl", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", reqURL, &buf)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.doRequest(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", domain.ErrProviderUnavailable, resp.StatusCode)
	}

	return nil
}
