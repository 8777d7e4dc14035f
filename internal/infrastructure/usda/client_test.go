package usda

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

func TestSearchFoods_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/foods/search", r.URL.Path)
		assert.Equal(t, "chicken breast", r.URL.Query().Get("query"))
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		assert.Equal(t, "20", r.URL.Query().Get("pageSize"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"totalHits": 1,
			"currentPage": 1,
			"foods": [
				{
					"fdcId": 171477,
					"description": "Chicken, broilers or fryers, breast, meat only, raw",
					"dataType": "SR Legacy",
					"foodCategory": "Poultry Products",
					"foodNutrients": [
						{"nutrientNumber": "208", "nutrientName": "Energy", "value": 120},
						{"nutrientNumber": "203", "nutrientName": "Protein", "value": 22.5}
					]
				}
			]
		}`))
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL, 5*time.Second)

	resp, err := client.SearchFoods(context.Background(), "chicken breast")
	require.NoError(t, err)
	require.Len(t, resp.Foods, 1)

	food := resp.Foods[0]
	assert.Equal(t, int64(171477), food.FdcID)
	assert.Equal(t, "SR Legacy", food.DataType)
	assert.Len(t, food.Nutrients, 2)
}

func TestSearchFoods_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL, 5*time.Second)

	_, err := client.SearchFoods(context.Background(), "chicken")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrProviderUnavailable))
}

func TestSearchFoods_MalformedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"foods": [`))
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL, 5*time.Second)

	_, err := client.SearchFoods(context.Background(), "chicken")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrParseFailure))
}

func TestSearchFoods_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL, 50*time.Millisecond)

	_, err := client.SearchFoods(context.Background(), "chicken")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrTimeout))
}

func TestGetFood_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/food/171477", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"fdcId": 171477,
			"description": "Chicken, broilers or fryers, breast, meat only, raw",
			"dataType": "SR Legacy",
			"foodNutrients": [
				{"nutrientId": 1008, "amount": 120}
			],
			"foodPortions": [
				{"portionDescription": "1 breast", "gramWeight": 172}
			]
		}`))
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL, 5*time.Second)

	food, err := client.GetFood(context.Background(), "171477")
	require.NoError(t, err)
	assert.Equal(t, int64(171477), food.FdcID)
	require.Len(t, food.Portions, 1)
	assert.Equal(t, 172.0, food.Portions[0].GramWeight)
}

func TestGetFood_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL, 5*time.Second)

	_, err := client.GetFood(context.Background(), "999999")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestConfigured(t *testing.T) {
	assert.True(t, NewClient("key", "http://example.com", 0).Configured())
	assert.False(t, NewClient("", "http://example.com", 0).Configured())
}
