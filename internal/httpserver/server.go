package httpserver

import (
	"context"
	"encoding/base64"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tinytelemetry/smileguide/internal/model"
	"go.uber.org/zap"
)

// Server provides a local read-only HTTP API over the running application.
type Server struct {
	addr      string
	board     *Board
	values    model.ValueStore
	log       *zap.Logger
	server    *http.Server
	ctx       context.Context
	cancel    context.CancelFunc
	startTime time.Time
}

// NewServer creates a new status API server.
func NewServer(addr string, board *Board, values model.ValueStore, log *zap.Logger) *Server {
	if addr == "" {
		addr = model.DefaultAPIAddr
	}
	if log == nil {
		log = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		addr:      addr,
		board:     board,
		values:    values,
		log:       log,
		ctx:       ctx,
		cancel:    cancel,
		startTime: time.Now(),
	}
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/api/health", s.handleHealth)
	r.GET("/api/state", s.handleState)
	r.GET("/api/avatar", s.handleAvatar)
	return r
}

// Start begins serving HTTP requests.
func (s *Server) Start() error {
	gin.SetMode(gin.ReleaseMode)

	s.server = &http.Server{
		Handler:           s.routes(),
		BaseContext:       func(_ net.Listener) context.Context { return s.ctx },
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}

	s.startTime = time.Now()
	s.log.Info("httpserver: listening", zap.String("addr", listener.Addr().String()))

	go func() {
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.log.Error("httpserver: serve failed", zap.Error(err))
		}
	}()
	return nil
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop() error {
	s.cancel()
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(c *gin.Context) {
	snap := s.board.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"uptime": time.Since(s.startTime).String(),
		"ready":  snap.Ready,
	})
}

func (s *Server) handleState(c *gin.Context) {
	c.JSON(http.StatusOK, s.board.Snapshot())
}

// handleAvatar serves the cached assistant avatar as an image.
func (s *Server) handleAvatar(c *gin.Context) {
	value, found, err := s.values.GetValue(c.Request.Context(), model.KeyAssistantAvatar)
	if err != nil {
		s.log.Error("httpserver: reading avatar", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read avatar"})
		return
	}
	if !found || value == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "avatar not generated"})
		return
	}

	mime, data, ok := decodeDataURL(value)
	if !ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "stored avatar is not a data URL"})
		return
	}
	c.Data(http.StatusOK, mime, data)
}

// decodeDataURL splits a base64 data URL into its MIME type and bytes.
func decodeDataURL(s string) (string, []byte, bool) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return "", nil, false
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, false
	}
	mime, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return "", nil, false
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, false
	}
	return mime, data, true
}
