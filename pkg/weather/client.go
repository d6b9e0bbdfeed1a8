package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the OpenWeatherMap API root
const DefaultBaseURL = "https://api.openweathermap.org"

// Endpoint names a provider resource
type Endpoint string

const (
	EndpointCurrent  Endpoint = "current"
	EndpointForecast Endpoint = "forecast"
)

func (e Endpoint) path() string {
	if e == EndpointForecast {
		return "/data/2.5/forecast"
	}
	return "/data/2.5/weather"
}

// Observer is notified once per completed network round trip.
// status is one of "success", "fetch_error" or "parse_error".
type Observer interface {
	ObserveFetch(endpoint Endpoint, status string, duration time.Duration)
}

// Client fetches current weather and forecasts from OpenWeatherMap.
// It holds no per-request state and is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
	locale     Locale
	parser     *Parser
	observer   Observer
}

// Option configures a Client
type Option func(*clientOptions)

type clientOptions struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
	locale     string
	zone       *time.Location
	observer   Observer
}

// WithBaseURL points the client at another API root, e.g. a test server
func WithBaseURL(baseURL string) Option {
	return func(o *clientOptions) { o.baseURL = strings.TrimRight(baseURL, "/") }
}

// WithHTTPClient sets the HTTP client used for requests
func WithHTTPClient(c *http.Client) Option {
	return func(o *clientOptions) { o.httpClient = c }
}

// WithUserAgent sets the User-Agent header sent with every request
func WithUserAgent(ua string) Option {
	return func(o *clientOptions) { o.userAgent = ua }
}

// WithLocale sets the display language for descriptions and date labels
func WithLocale(locale string) Option {
	return func(o *clientOptions) { o.locale = locale }
}

// WithZone sets the time zone for sunrise, sunset and forecast labels
func WithZone(zone *time.Location) Option {
	return func(o *clientOptions) { o.zone = zone }
}

// WithObserver registers an observer for completed requests
func WithObserver(obs Observer) Option {
	return func(o *clientOptions) { o.observer = obs }
}

// NewClient creates a new weather API client
func NewClient(opts ...Option) *Client {
	o := clientOptions{
		baseURL:    DefaultBaseURL,
		httpClient: http.DefaultClient,
		locale:     DefaultLocale,
	}
	for _, opt := range opts {
		opt(&o)
	}

	locale := ParseLocale(o.locale)
	return &Client{
		baseURL:    o.baseURL,
		httpClient: o.httpClient,
		userAgent:  o.userAgent,
		locale:     locale,
		parser:     NewParser(locale, o.zone),
		observer:   o.observer,
	}
}

// Locale returns the client's display language
func (c *Client) Locale() Locale {
	return c.locale
}

// Parser returns the parser the client delegates to
func (c *Client) Parser() *Parser {
	return c.parser
}

// FetchCurrentByName retrieves current weather for a city
func (c *Client) FetchCurrentByName(ctx context.Context, city, apiKey string) (WeatherRecord, error) {
	return c.FetchCurrent(ctx, ByName(city), apiKey)
}

// FetchCurrentByCoords retrieves current weather for a coordinate pair
func (c *Client) FetchCurrentByCoords(ctx context.Context, lat, lon float64, apiKey string) (WeatherRecord, error) {
	return c.FetchCurrent(ctx, ByCoords(lat, lon), apiKey)
}

// FetchForecastByName retrieves the 5-day/3-hour forecast for a city
func (c *Client) FetchForecastByName(ctx context.Context, city, apiKey string) ([]ForecastEntry, error) {
	return c.FetchForecast(ctx, ByName(city), apiKey)
}

// FetchForecastByCoords retrieves the 5-day/3-hour forecast for a coordinate pair
func (c *Client) FetchForecastByCoords(ctx context.Context, lat, lon float64, apiKey string) ([]ForecastEntry, error) {
	return c.FetchForecast(ctx, ByCoords(lat, lon), apiKey)
}

// FetchCurrent retrieves current weather for q
func (c *Client) FetchCurrent(ctx context.Context, q LocationQuery, apiKey string) (WeatherRecord, error) {
	start := time.Now()

	body, err := c.get(ctx, EndpointCurrent, q, apiKey)
	if err != nil {
		c.observe(EndpointCurrent, err, start)
		return WeatherRecord{}, err
	}

	record, err := c.parser.ParseCurrent(body)
	c.observe(EndpointCurrent, err, start)
	if err != nil {
		return WeatherRecord{}, err
	}
	return record, nil
}

// FetchForecast retrieves the 5-day/3-hour forecast for q
func (c *Client) FetchForecast(ctx context.Context, q LocationQuery, apiKey string) ([]ForecastEntry, error) {
	start := time.Now()

	body, err := c.get(ctx, EndpointForecast, q, apiKey)
	if err != nil {
		c.observe(EndpointForecast, err, start)
		return nil, err
	}

	entries, err := c.parser.ParseForecast(body)
	c.observe(EndpointForecast, err, start)
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// RequestURL builds the GET URL for endpoint and q without sending anything
func (c *Client) RequestURL(endpoint Endpoint, q LocationQuery, apiKey string) (string, error) {
	if err := q.Validate(); err != nil {
		return "", err
	}
	if strings.TrimSpace(apiKey) == "" {
		return "", &InputError{Field: "apiKey", Reason: "must not be empty"}
	}

	params := url.Values{}
	q.apply(params)
	params.Set("units", "metric")
	params.Set("lang", c.locale.ProviderCode())
	params.Set("appid", apiKey)

	return c.baseURL + endpoint.path() + "?" + params.Encode(), nil
}

func (c *Client) get(ctx context.Context, endpoint Endpoint, q LocationQuery, apiKey string) ([]byte, error) {
	requestURL, err := c.RequestURL(endpoint, q, apiKey)
	if err != nil {
		return nil, err
	}

	op := string(endpoint) + " weather"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, &FetchError{Op: op, Cause: fmt.Errorf("failed to create request: %w", redactURL(err))}
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req) // nosec G704
	if err != nil {
		return nil, &FetchError{Op: op, Cause: fmt.Errorf("failed to make request: %w", redactURL(err))}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Op: op, StatusCode: resp.StatusCode, Cause: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{Op: op, StatusCode: resp.StatusCode, Cause: statusError(resp.StatusCode, body)}
	}

	return body, nil
}

// redactURL drops the query string, and with it appid, from transport errors
func redactURL(err error) error {
	var urlErr *url.Error
	if !errors.As(err, &urlErr) {
		return err
	}

	redacted := urlErr.URL
	if i := strings.IndexByte(redacted, '?'); i >= 0 {
		redacted = redacted[:i]
	}
	return &url.Error{Op: urlErr.Op, URL: redacted, Err: urlErr.Err}
}

// statusError includes the provider's own message, e.g. "city not found"
func statusError(status int, body []byte) error {
	var apiErr struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Message != "" {
		return fmt.Errorf("API request failed with status: %d (%s)", status, apiErr.Message)
	}
	return fmt.Errorf("API request failed with status: %d", status)
}

func (c *Client) observe(endpoint Endpoint, err error, start time.Time) {
	if c.observer == nil {
		return
	}

	status := "success"
	if err != nil {
		kind := Kind(err)
		if kind == KindInput {
			return
		}
		status = kind + "_error"
	}
	c.observer.ObserveFetch(endpoint, status, time.Since(start))
}
