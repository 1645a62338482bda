package api

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/marev/cutline/internal/domain/project"
	"github.com/marev/cutline/internal/editor"
)

// ProjectService is the read surface the API needs for saved projects.
type ProjectService interface {
	Get(ctx context.Context, id string) (*project.Project, error)
	List(ctx context.Context) ([]project.Summary, error)
}

type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

type ServerConfig struct {
	Host      string
	Port      int
	Editor    *editor.Manager
	Projects  ProjectService
	Logger    *slog.Logger
	StartTime time.Time

	// Extra handlers mounted alongside the REST routes, keyed by path
	// prefix. Used to serve the MCP endpoint on the same listener.
	Mounts map[string]http.Handler
}

func NewServer(cfg ServerConfig) *Server {
	router := NewRouter(cfg)
	for pattern, handler := range cfg.Mounts {
		router.Mount(pattern, handler)
	}

	return &Server{
		httpServer: &http.Server{
			Addr:         net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 0,
			IdleTimeout:  60 * time.Second,
		},
		logger: cfg.Logger,
	}
}

func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", "addr", s.httpServer.Addr)
	err := s.httpServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) Addr() string {
	return s.httpServer.Addr
}
