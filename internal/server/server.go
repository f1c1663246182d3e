// Package server runs the lambda handlers behind a local gin HTTP server.
package server

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// LambdaHandler is the signature shared by every API Gateway handler
type LambdaHandler interface {
	HandleRequest(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)
}

type Handlers struct {
	Query   LambdaHandler
	Export  LambdaHandler
	Presets LambdaHandler

	// PresetStats, when set, is reported by /healthz
	PresetStats func() map[string]uint64
}

// Server bundles router and handlers for local development.
type Server struct {
	addr    string
	timeout time.Duration
	engine  *gin.Engine
}

func New(port int, timeout time.Duration, handlers Handlers) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestLogger())
	engine.Use(corsMiddleware())

	s := &Server{
		addr:    fmt.Sprintf(":%d", port),
		timeout: timeout,
		engine:  engine,
	}

	engine.GET("/healthz", func(c *gin.Context) {
		body := gin.H{"status": "ok"}
		if handlers.PresetStats != nil {
			body["presetCache"] = handlers.PresetStats()
		}
		c.JSON(http.StatusOK, body)
	})
	engine.GET("/query", s.adapt(handlers.Query))
	engine.GET("/export", s.adapt(handlers.Export))
	engine.GET("/presets", s.adapt(handlers.Presets))
	engine.POST("/presets", s.adapt(handlers.Presets))

	return s
}

// Engine exposes the underlying gin engine (for tests).
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Run starts the HTTP server and blocks until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	log.Info().Str("addr", s.addr).Msg("Dev server listening")

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// adapt turns a gin request into an API Gateway event and writes the handler's response back
func (s *Server) adapt(h LambdaHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if s.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, s.timeout)
			defer cancel()
		}

		request, err := toProxyRequest(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"responseType": "error", "error": "Invalid request body"})
			return
		}

		resp, err := h.HandleRequest(ctx, request)
		if err != nil {
			log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Handler failed")
			c.JSON(http.StatusInternalServerError, gin.H{"responseType": "error", "error": "Internal Server Error"})
			return
		}

		writeProxyResponse(c, resp)
	}
}

func toProxyRequest(c *gin.Context) (events.APIGatewayProxyRequest, error) {
	params := make(map[string]string)
	for key, values := range c.Request.URL.Query() {
		if len(values) > 0 {
			params[key] = values[0]
		}
	}

	headers := make(map[string]string)
	for key := range c.Request.Header {
		headers[key] = c.GetHeader(key)
	}

	var body []byte
	if c.Request.Body != nil {
		var err error
		body, err = io.ReadAll(c.Request.Body)
		if err != nil {
			return events.APIGatewayProxyRequest{}, err
		}
	}

	return events.APIGatewayProxyRequest{
		HTTPMethod:            c.Request.Method,
		Path:                  c.Request.URL.Path,
		Headers:               headers,
		QueryStringParameters: params,
		Body:                  string(body),
	}, nil
}

func writeProxyResponse(c *gin.Context, resp events.APIGatewayProxyResponse) {
	for key, value := range resp.Headers {
		c.Header(key, value)
	}

	body := []byte(resp.Body)
	if resp.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(resp.Body)
		if err != nil {
			log.Error().Err(err).Msg("Invalid base64 response body")
			c.JSON(http.StatusInternalServerError, gin.H{"responseType": "error", "error": "Internal Server Error"})
			return
		}
		body = decoded
	}

	status := resp.StatusCode
	if status == 0 {
		status = http.StatusOK
	}
	c.Data(status, resp.Headers["Content-Type"], body)
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("Request served")
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
