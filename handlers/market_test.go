package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trading-platform/config"
)

func marketRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/market-data", MarketDataHandler)
	return r
}

func TestMarketDataLiveUpstream(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "3", r.URL.Query().Get("per_page"))
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		json.NewEncoder(w).Encode([]MarketTicker{
			{ID: "bitcoin", Symbol: "btc", Name: "Bitcoin", CurrentPrice: 64000},
			{ID: "ethereum", Symbol: "eth", Name: "Ethereum", CurrentPrice: 3400},
			{ID: "tether", Symbol: "usdt", Name: "Tether", CurrentPrice: 1},
		})
	}))
	defer upstream.Close()
	cfg = &config.Config{MarketDataURL: upstream.URL, MarketDataTimeout: 2 * time.Second}

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/market-data?count=3", nil)
	marketRouter().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "public, max-age=25", w.Header().Get("Cache-Control"))

	var tickers []MarketTicker
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tickers))
	require.Len(t, tickers, 3)
	assert.Equal(t, "bitcoin", tickers[0].ID)
}

func TestMarketDataFallback(t *testing.T) {
	cases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"status 500", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"not an array", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"error":"rate limited"}`))
		}},
		{"empty array", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[]`))
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			upstream := httptest.NewServer(tc.handler)
			defer upstream.Close()
			cfg = &config.Config{MarketDataURL: upstream.URL, MarketDataTimeout: 2 * time.Second}

			w := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/api/market-data?count=5", nil)
			marketRouter().ServeHTTP(w, req)

			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "public, max-age=10", w.Header().Get("Cache-Control"))

			var tickers []MarketTicker
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tickers))
			require.Len(t, tickers, 5)
			for _, tk := range tickers {
				assert.Greater(t, tk.CurrentPrice, 0.0)
				assert.NotEmpty(t, tk.Symbol)
				assert.NotEmpty(t, tk.Sparkline.Price)
			}
		})
	}
}

func TestMarketDataUnreachableUpstream(t *testing.T) {
	cfg = &config.Config{MarketDataURL: "http://127.0.0.1:1", MarketDataTimeout: 500 * time.Millisecond}

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/market-data", nil)
	marketRouter().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "public, max-age=10", w.Header().Get("Cache-Control"))

	var tickers []MarketTicker
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tickers))
	assert.Len(t, tickers, 10)
}

func TestClampCount(t *testing.T) {
	assert.Equal(t, 10, clampCount(""))
	assert.Equal(t, 10, clampCount("abc"))
	assert.Equal(t, 1, clampCount("0"))
	assert.Equal(t, 1, clampCount("-5"))
	assert.Equal(t, 100, clampCount("1000"))
	assert.Equal(t, 42, clampCount("42"))
}

func TestSyntheticMarketDataShape(t *testing.T) {
	tickers := SyntheticMarketData(4)
	require.Len(t, tickers, 4)
	for _, tk := range tickers {
		assert.Greater(t, tk.CurrentPrice, 0.0)
		assert.Greater(t, tk.MarketCap, 0.0)
		assert.Len(t, tk.Sparkline.Price, 24)
		assert.Contains(t, tk.Image, tk.ID)
	}

	// запрос больше таблицы не выходит за её границы
	all := SyntheticMarketData(100)
	assert.Len(t, all, len(fallbackTable))
}

func TestSyntheticJitterBounds(t *testing.T) {
	base := fallbackTable[0]
	for i := 0; i < 50; i++ {
		tk := SyntheticMarketData(1)[0]
		assert.InDelta(t, base.CurrentPrice, tk.CurrentPrice, base.CurrentPrice*0.016)
		assert.InDelta(t, base.PriceChange24h, tk.PriceChange24h, 0.51)
	}
}
