package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/valpere/nalsi/internal/interfaces"
	"github.com/valpere/nalsi/internal/middleware"
	"github.com/valpere/nalsi/internal/version"
	"github.com/valpere/nalsi/pkg/metrics"
	"github.com/valpere/nalsi/pkg/weather"
)

const requestTimeout = 30 * time.Second

// Options wires the router. Metrics, Limiter and Webhook are optional.
type Options struct {
	Weather interfaces.WeatherServiceInterface
	Metrics *metrics.Metrics
	Limiter *middleware.RateLimiter
	Logger  *zerolog.Logger

	// Webhook receives Telegram updates on POST /webhook when set
	Webhook gin.HandlerFunc
}

type handler struct {
	weather interfaces.WeatherServiceInterface
}

// NewRouter builds the HTTP surface: health, metrics, the weather REST API and the bot webhook
func NewRouter(opts Options) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(opts.Logger))

	router.GET("/health", func(c *gin.Context) {
		body := gin.H{
			"status":  "healthy",
			"version": version.GetInfo().Short(),
			"time":    time.Now().Unix(),
		}
		if opts.Metrics != nil {
			body["avg_response_ms"] = opts.Metrics.GetAverageResponseTime()
		}
		c.JSON(http.StatusOK, body)
	})

	if opts.Metrics != nil {
		router.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}

	if opts.Webhook != nil {
		router.POST("/webhook", opts.Webhook)
	}

	h := &handler{weather: opts.Weather}

	v1 := router.Group("/api/v1")
	if opts.Limiter != nil {
		v1.Use(middleware.RateLimit(opts.Limiter, opts.Metrics))
	}
	v1.GET("/weather/current", h.current)
	v1.GET("/weather/forecast", h.forecast)

	return router
}

func (h *handler) current(c *gin.Context) {
	q, err := queryFromRequest(c)
	if err != nil {
		writeError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	rec, err := h.weather.Current(ctx, q, c.Query("lang"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *handler) forecast(c *gin.Context) {
	q, err := queryFromRequest(c)
	if err != nil {
		writeError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	entries, err := h.weather.Forecast(ctx, q, c.Query("lang"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

// queryFromRequest reads ?city= or ?lat=&lon=; city wins when both are given
func queryFromRequest(c *gin.Context) (weather.LocationQuery, error) {
	if city, ok := c.GetQuery("city"); ok {
		return weather.ByName(city), nil
	}

	latRaw, hasLat := c.GetQuery("lat")
	lonRaw, hasLon := c.GetQuery("lon")
	if !hasLat && !hasLon {
		return weather.LocationQuery{}, &weather.InputError{Field: "location", Reason: "city or lat and lon are required"}
	}

	lat, err := parseCoord("lat", latRaw)
	if err != nil {
		return weather.LocationQuery{}, err
	}
	lon, err := parseCoord("lon", lonRaw)
	if err != nil {
		return weather.LocationQuery{}, err
	}
	return weather.ByCoords(lat, lon), nil
}

func parseCoord(field, raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, &weather.InputError{Field: field, Reason: "must be a number"}
	}
	return v, nil
}

func writeError(c *gin.Context, err error) {
	kind := weather.Kind(err)

	status := http.StatusInternalServerError
	message := "internal error"
	switch kind {
	case weather.KindInput:
		status, message = http.StatusBadRequest, err.Error()
	case weather.KindFetch, weather.KindParse:
		status, message = http.StatusBadGateway, err.Error()
	}

	c.JSON(status, gin.H{
		"error": gin.H{
			"kind":    kind,
			"message": message,
		},
	})
}
