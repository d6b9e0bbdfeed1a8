package weather

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingTransport counts round trips and never reaches the network
type countingTransport struct {
	calls atomic.Int32
}

func (c *countingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	c.calls.Add(1)
	return nil, errors.New("network must not be used")
}

type recordedFetch struct {
	endpoint Endpoint
	status   string
}

type recordingObserver struct {
	mu      sync.Mutex
	fetches []recordedFetch
}

func (r *recordingObserver) ObserveFetch(endpoint Endpoint, status string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fetches = append(r.fetches, recordedFetch{endpoint: endpoint, status: status})
}

func newTestClient(serverURL string, opts ...Option) *Client {
	return NewClient(append([]Option{WithBaseURL(serverURL), WithLocale("ko-KR"), WithZone(kst)}, opts...)...)
}

func TestNewClient(t *testing.T) {
	client := NewClient()

	assert.NotNil(t, client)
	assert.Equal(t, "https://api.openweathermap.org", client.baseURL)
	assert.Same(t, http.DefaultClient, client.httpClient)
	assert.Equal(t, "kr", client.Locale().ProviderCode())
	assert.Same(t, time.Local, client.Parser().Zone())
}

func TestClient_RequestURL(t *testing.T) {
	client := NewClient(WithBaseURL("https://example.test/"), WithLocale("en"))

	t.Run("by name", func(t *testing.T) {
		u, err := client.RequestURL(EndpointCurrent, ByName("  New York "), "key")

		require.NoError(t, err)
		assert.Equal(t, "https://example.test/data/2.5/weather?appid=key&lang=en&q=New+York&units=metric", u)
	})

	t.Run("by coordinates", func(t *testing.T) {
		u, err := client.RequestURL(EndpointForecast, ByCoords(37.5665, 126.978), "key")

		require.NoError(t, err)
		assert.Equal(t, "https://example.test/data/2.5/forecast?appid=key&lang=en&lat=37.5665&lon=126.978&units=metric", u)
	})

	t.Run("escapes non-latin city names", func(t *testing.T) {
		u, err := client.RequestURL(EndpointCurrent, ByName("서울"), "key")

		require.NoError(t, err)
		assert.Contains(t, u, "q=%EC%84%9C%EC%9A%B8")
	})
}

func TestClient_FetchCurrentByName_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/data/2.5/weather", r.URL.Path)
		assert.Equal(t, "Seoul", r.URL.Query().Get("q"))
		assert.Empty(t, r.URL.Query().Get("lat"))
		assert.Equal(t, "metric", r.URL.Query().Get("units"))
		assert.Equal(t, "kr", r.URL.Query().Get("lang"))
		assert.Equal(t, "test_key", r.URL.Query().Get("appid"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(seoulCurrent))
	}))
	defer server.Close()

	obs := &recordingObserver{}
	client := newTestClient(server.URL, WithObserver(obs))

	record, err := client.FetchCurrentByName(context.Background(), "Seoul", "test_key")

	require.NoError(t, err)
	assert.Equal(t, "Seoul", record.CityName)
	assert.Equal(t, 21.5, record.Temperature)
	assert.Equal(t, "07:13", record.Sunrise)
	assert.Equal(t, "18:20", record.Sunset)
	assert.Equal(t, []recordedFetch{{EndpointCurrent, "success"}}, obs.fetches)
}

func TestClient_UserAgent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Nalsi/test", r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(seoulCurrent))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL, WithUserAgent("Nalsi/test")).FetchCurrentByName(context.Background(), "Seoul", "key")

	require.NoError(t, err)
}

func TestClient_FetchCurrentByCoords_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "37.5665", r.URL.Query().Get("lat"))
		assert.Equal(t, "126.978", r.URL.Query().Get("lon"))
		assert.Empty(t, r.URL.Query().Get("q"))

		_, _ = w.Write([]byte(seoulCurrent))
	}))
	defer server.Close()

	record, err := newTestClient(server.URL).FetchCurrentByCoords(context.Background(), 37.5665, 126.978, "test_key")

	require.NoError(t, err)
	assert.Equal(t, "KR", record.Country)
}

func TestClient_FetchForecastByName_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/data/2.5/forecast", r.URL.Path)
		assert.Equal(t, "Seoul", r.URL.Query().Get("q"))

		_, _ = w.Write(forecastBody(t, 45))
	}))
	defer server.Close()

	entries, err := newTestClient(server.URL).FetchForecastByName(context.Background(), "Seoul", "test_key")

	require.NoError(t, err)
	require.Len(t, entries, 40)
	assert.Equal(t, "11월 15일 (수)", entries[0].Date)
	assert.Equal(t, "07:13", entries[0].Time)
	assert.Equal(t, "sample 39", entries[39].Description)
}

func TestClient_FetchForecastByCoords_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/data/2.5/forecast", r.URL.Path)
		assert.Equal(t, "-33.8688", r.URL.Query().Get("lat"))
		assert.Equal(t, "151.2093", r.URL.Query().Get("lon"))

		_, _ = w.Write([]byte(`{"list":[]}`))
	}))
	defer server.Close()

	entries, err := newTestClient(server.URL).FetchForecastByCoords(context.Background(), -33.8688, 151.2093, "test_key")

	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestClient_InputErrors_NoNetworkCall(t *testing.T) {
	transport := &countingTransport{}
	client := NewClient(WithHTTPClient(&http.Client{Transport: transport}))
	ctx := context.Background()

	tests := []struct {
		name  string
		call  func() error
		field string
	}{
		{"empty city", func() error { _, err := client.FetchCurrentByName(ctx, "", "key"); return err }, "city"},
		{"blank city", func() error { _, err := client.FetchForecastByName(ctx, " \t ", "key"); return err }, "city"},
		{"latitude above range", func() error { _, err := client.FetchCurrentByCoords(ctx, 91, 0, "key"); return err }, "lat"},
		{"latitude below range", func() error { _, err := client.FetchForecastByCoords(ctx, -90.5, 0, "key"); return err }, "lat"},
		{"longitude out of range", func() error { _, err := client.FetchCurrentByCoords(ctx, 0, 180.01, "key"); return err }, "lon"},
		{"NaN latitude", func() error { _, err := client.FetchCurrentByCoords(ctx, math.NaN(), 0, "key"); return err }, "lat"},
		{"empty api key", func() error { _, err := client.FetchCurrentByName(ctx, "Seoul", ""); return err }, "apiKey"},
		{"zero query", func() error { _, err := client.FetchCurrent(ctx, LocationQuery{}, "key"); return err }, "location"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()

			var inputErr *InputError
			require.ErrorAs(t, err, &inputErr)
			assert.Equal(t, tt.field, inputErr.Field)
			assert.Equal(t, KindInput, Kind(err))
		})
	}

	assert.Equal(t, int32(0), transport.calls.Load())
}

func TestClient_BoundaryCoordinatesAccepted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(seoulCurrent))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	for _, c := range [][2]float64{{90, 180}, {-90, -180}, {0, 0}} {
		_, err := client.FetchCurrentByCoords(context.Background(), c[0], c[1], "key")
		assert.NoError(t, err)
	}
}

func TestClient_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"cod": "404", "message": "city not found"})
	}))
	defer server.Close()

	obs := &recordingObserver{}
	record, err := newTestClient(server.URL, WithObserver(obs)).FetchCurrentByName(context.Background(), "Atlantis", "test_key")

	require.Error(t, err)
	assert.Equal(t, WeatherRecord{}, record)

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, http.StatusNotFound, fetchErr.StatusCode)
	assert.Contains(t, err.Error(), "API request failed with status: 404 (city not found)")
	assert.Equal(t, []recordedFetch{{EndpointCurrent, "fetch_error"}}, obs.fetches)
}

func TestClient_APIError_WithoutMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	entries, err := newTestClient(server.URL).FetchForecastByName(context.Background(), "Seoul", "bad_key")

	assert.Nil(t, entries)
	assert.Equal(t, KindFetch, Kind(err))
	assert.Contains(t, err.Error(), "API request failed with status: 401")
}

func TestClient_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("invalid json"))
	}))
	defer server.Close()

	obs := &recordingObserver{}
	_, err := newTestClient(server.URL, WithObserver(obs)).FetchCurrentByName(context.Background(), "Seoul", "test_key")

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, err.Error(), "failed to decode response")
	assert.Equal(t, []recordedFetch{{EndpointCurrent, "parse_error"}}, obs.fetches)
}

func TestClient_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	serverURL := server.URL
	server.Close() // Close immediately to trigger network error

	_, err := newTestClient(serverURL).FetchForecastByCoords(context.Background(), 1, 2, "test_key")

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Zero(t, fetchErr.StatusCode)
	assert.Contains(t, err.Error(), "failed to make request")
}

func TestClient_TransportErrorHidesAPIKey(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name   string
		client *Client
		ctx    context.Context
	}{
		{"connection refused", newTestClient("http://127.0.0.1:1"), context.Background()},
		{"cancelled", newTestClient("http://127.0.0.1:1"), ctx},
		{"bad base URL", newTestClient("ht tp://invalid url with spaces"), context.Background()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.client.FetchCurrentByName(tt.ctx, "Seoul", "SECRET-KEY-123")

			require.Error(t, err)
			assert.Equal(t, KindFetch, Kind(err))
			assert.NotContains(t, err.Error(), "SECRET-KEY-123")
			assert.NotContains(t, err.Error(), "appid")
		})
	}

	t.Run("cause stays inspectable", func(t *testing.T) {
		_, err := newTestClient("http://127.0.0.1:1").FetchForecastByName(ctx, "Seoul", "SECRET-KEY-123")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestClient_RequestCreationError(t *testing.T) {
	client := newTestClient("ht tp://invalid url with spaces")

	_, err := client.FetchCurrentByName(context.Background(), "Seoul", "test_key")

	assert.Equal(t, KindFetch, Kind(err))
	assert.Contains(t, err.Error(), "failed to create request")
}

func TestClient_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestClient(server.URL).FetchCurrentByName(ctx, "Seoul", "test_key")

	assert.Equal(t, KindFetch, Kind(err))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, err.Error(), "context canceled")
}
