// Package api serves the code registries and a payload decode endpoint
// over HTTP.
package api

import (
	"context"
	"errors"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/gyeh/bcbpscan/internal/bcbp"
	"github.com/gyeh/bcbpscan/internal/normalize"
)

// maxPayloadBytes bounds a decode request body.
const maxPayloadBytes = 8 * 1024

const shutdownTimeout = 10 * time.Second

// Server holds the dependencies shared by every handler.
type Server struct {
	log    zerolog.Logger
	cities normalize.Cities
	now    func() time.Time

	mu      sync.Mutex
	entropy io.Reader
}

// NewServer builds a Server. cities may be nil.
func NewServer(log zerolog.Logger, cities normalize.Cities) *Server {
	src := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &Server{
		log:     log,
		cities:  cities,
		now:     time.Now,
		entropy: ulid.Monotonic(src, 0),
	}
}

// newScanID returns a time-ordered identifier for one decode request.
func (s *Server) newScanID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(s.now()), s.entropy).String()
}

// Router builds the gin engine with every route registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		v1.GET("/codes", CodesListHandler())
		v1.GET("/codes/:kind", CodesKindHandler())
		v1.GET("/codes/:kind/:value", CodeParseHandler())
		v1.POST("/decode", s.DecodeHandler())
	}
	return r
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Msg("http server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.log.Info().Msg("http server shutting down")
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info().
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	}
}

type decodeError struct {
	Error   string `json:"error"`
	Element string `json:"element,omitempty"`
	Offset  *int   `json:"offset,omitempty"`
}

// DecodeHandler parses the raw payload in the request body.
func (s *Server) DecodeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxPayloadBytes))
		if err != nil {
			c.JSON(http.StatusRequestEntityTooLarge, decodeError{Error: err.Error()})
			return
		}
		raw := strings.TrimRight(string(body), "\r\n")
		pass, err := bcbp.Parse(raw)
		if err != nil {
			resp := decodeError{Error: err.Error()}
			var pe *bcbp.ParseError
			if errors.As(err, &pe) {
				off := pe.Offset
				resp.Element = pe.Element.Name()
				resp.Offset = &off
			}
			c.JSON(http.StatusUnprocessableEntity, resp)
			return
		}

		view := NewPassView(pass, s.now(), s.cities)
		view.ScanID = s.newScanID()
		c.JSON(http.StatusOK, view)
	}
}
