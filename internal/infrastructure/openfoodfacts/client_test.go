package openfoodfacts

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutriscope/backend/internal/domain"
)

func TestSearchProducts_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "nutella", r.URL.Query().Get("search_terms"))
		assert.Equal(t, "20", r.URL.Query().Get("page_size"))
		assert.NotEmpty(t, r.URL.Query().Get("fields"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"count": 1,
			"products": [
				{
					"code": "3017620422003",
					"product_name": "Nutella",
					"brands": "Ferrero",
					"categories_tags": ["en:spreads"],
					"nutriscore_grade": "e",
					"nova_group": 4,
					"nutriments": {
						"energy-kcal_100g": 539,
						"proteins_100g": 6.3,
						"sugars_100g": "56.3"
					}
				}
			]
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, Credentials{}, 5*time.Second)

	resp, err := client.SearchProducts(context.Background(), "nutella")
	require.NoError(t, err)
	require.Len(t, resp.Products, 1)

	product := resp.Products[0]
	assert.Equal(t, "3017620422003", product.Code)
	assert.Equal(t, "Ferrero", product.Brands)
	assert.Equal(t, "e", product.NutriScore)
	assert.Equal(t, 4.0, product.NovaGroup)
}

func TestSearchProducts_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL, Credentials{}, 5*time.Second)

	_, err := client.SearchProducts(context.Background(), "nutella")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrProviderUnavailable))
}

func TestGetProduct_Found(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/product/3017620422003.json", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": 1,
			"product": {
				"code": "3017620422003",
				"product_name": "Nutella",
				"nutriments": {"energy-kcal_100g": 539}
			}
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, Credentials{}, 5*time.Second)

	product, err := client.GetProduct(context.Background(), "3017620422003")
	require.NoError(t, err)
	assert.Equal(t, "Nutella", product.ProductName)
}

func TestGetProduct_UnknownBarcodeStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": 0, "status_verbose": "product not found"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, Credentials{}, 5*time.Second)

	_, err := client.GetProduct(context.Background(), "0000000000000")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestGetProduct_HTTP404(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL, Credentials{}, 5*time.Second)

	_, err := client.GetProduct(context.Background(), "0000000000000")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestUploadProduct_RequiresCredentials(t *testing.T) {
	client := NewClient("http://example.invalid", Credentials{}, time.Second)

	err := client.UploadProduct(context.Background(), domain.ProductUpload{
		Barcode: "123", Name: "Homemade Granola",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestUploadProduct_SubmitsMultipartForm(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/product_jqm2.pl", r.URL.Path)

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "1234567890123", r.FormValue("code"))
		assert.Equal(t, "Homemade Granola", r.FormValue("product_name"))
		assert.Equal(t, "450", r.FormValue("nutriment_energy-kcal"))
		assert.Equal(t, "100g", r.FormValue("nutrition_data_per"))
		assert.Equal(t, "tester", r.FormValue("user_id"))

		w.Write([]byte(`{"status": 1}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, Credentials{UserID: "tester", Password: "secret"}, 5*time.Second)

	err := client.UploadProduct(context.Background(), domain.ProductUpload{
		Barcode:  "1234567890123",
		Name:     "Homemade Granola",
		Calories: 450,
		Protein:  12,
		Carbs:    60,
		Fat:      16,
	})
	require.NoError(t, err)
}

func TestCanUpload(t *testing.T) {
	assert.False(t, NewClient("http://example.com", Credentials{}, 0).CanUpload())
	assert.False(t, NewClient("http://example.com", Credentials{UserID: "u"}, 0).CanUpload())
	assert.True(t, NewClient("http://example.com", Credentials{UserID: "u", Password: "p"}, 0).CanUpload())
}
