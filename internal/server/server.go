package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"collabviz/genrenet/internal/network"
)

// Handler serves network snapshots over a dataset loaded once at startup
type Handler struct {
	dataset *network.Dataset
	config  *network.Config
	tracer  trace.Tracer
}

// NewHandler returns a handler over ds. The dataset is shared read-only by all requests.
func NewHandler(ds *network.Dataset, cfg *network.Config) *Handler {
	return &Handler{
		dataset: ds,
		config:  cfg,
		tracer:  otel.Tracer("genrenet/server"),
	}
}

// RegisterRoutes mounts the API on r
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/healthz", h.Health)
	r.GET("/options", h.Options)
	r.GET("/network", h.Network)
}

// NewRouter builds a gin engine in the given mode with request logging through slog.
// An unknown mode falls back to release.
func NewRouter(h *Handler, mode string) *gin.Engine {
	switch mode {
	case "":
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
		gin.SetMode(mode)
	default:
		slog.Warn("Unknown gin mode, using release", "mode", mode)
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())
	h.RegisterRoutes(router)
	return router
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.Debug("HTTP request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}

// GET /healthz
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "records": h.dataset.Len()})
}

// GET /options
func (h *Handler) Options(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"genres":  h.dataset.Genres(),
		"years":   h.dataset.Years(),
		"metrics": []string{network.Count.String(), network.ExternalMetric.String()},
	})
}

// GET /network?metric=count&years=2019,2020&genres=pop
func (h *Handler) Network(c *gin.Context) {
	q, err := parseQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	_, span := h.tracer.Start(c.Request.Context(), "network.Build",
		trace.WithAttributes(
			attribute.String("metric", q.Metric.String()),
			attribute.IntSlice("years", q.Years),
			attribute.StringSlice("genres", q.Genres),
		))
	snap, err := network.Build(h.dataset, q, h.config)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.End()
		slog.Error("Failed to build network", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	span.SetAttributes(
		attribute.Int("nodes", len(snap.Nodes)),
		attribute.Int("edges", len(snap.Edges)),
	)
	span.End()

	c.JSON(http.StatusOK, snap)
}

func parseQuery(c *gin.Context) (network.Query, error) {
	var q network.Query

	metric, err := network.ParseMetric(c.Query("metric"))
	if err != nil {
		return q, err
	}
	q.Metric = metric

	for _, raw := range splitList(c.QueryArray("years")) {
		y, err := strconv.Atoi(raw)
		if err != nil {
			return q, errors.New("years must be integers, got " + strconv.Quote(raw))
		}
		q.Years = append(q.Years, y)
	}
	q.Genres = splitList(c.QueryArray("genres"))
	return q, nil
}

// splitList flattens repeated and comma-separated query values, dropping blanks
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
