// Package server serves a published content graph over HTTP.
//
// The server loads one site's graph document at startup, either from a JSON
// file or from a snapshot store, and exposes read-only JSON endpoints for
// page payloads, standalone collection queries, and navigation, plus a
// static route for the media tree. All graph resolution happens in
// pkg/content; this package is transport only.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/chdigius/awake.fm-artist-server-sub000/pkg/content"
	"github.com/chdigius/awake.fm-artist-server-sub000/pkg/store"
)

// Server holds the loaded graph and its HTTP surface.
type Server struct {
	cfg    Config
	logger *log.Logger
	ops    *content.Ops
}

// New builds a server from an already-loaded graph.
func New(cfg Config, logger *log.Logger, g *content.Graph) *Server {
	return &Server{
		cfg:    cfg,
		logger: logger,
		ops:    content.NewOps(g, cfg.Nav.NavConfig()),
	}
}

// Load resolves the configured graph source and builds the server. When
// GraphConfig.Path is set the document is read from disk; otherwise it is
// fetched from the snapshot store under the configured site key.
func Load(ctx context.Context, cfg Config, logger *log.Logger) (*Server, error) {
	if cfg.Graph.Path != "" {
		g, err := content.ReadGraphFile(cfg.Graph.Path)
		if err != nil {
			return nil, fmt.Errorf("load graph from %s: %w", cfg.Graph.Path, err)
		}
		logger.Info("Loaded graph", "path", cfg.Graph.Path, "nodes", g.NodeCount())
		return New(cfg, logger, g), nil
	}

	if cfg.Site == "" {
		return nil, errors.New("no graph path and no site key configured")
	}

	st, err := OpenStore(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}
	defer st.Close()

	snap, err := st.Get(ctx, cfg.Site)
	if err != nil {
		return nil, fmt.Errorf("load snapshot %q: %w", cfg.Site, err)
	}
	g, err := content.UnmarshalGraph(snap.Document)
	if err != nil {
		return nil, fmt.Errorf("decode snapshot %q: %w", cfg.Site, err)
	}
	logger.Info("Loaded graph", "site", cfg.Site, "nodes", g.NodeCount(),
		"published", snap.UpdatedAt.Format(time.RFC3339))
	return New(cfg, logger, g), nil
}

// OpenStore creates the snapshot store selected by cfg.
func OpenStore(ctx context.Context, cfg StoreConfig) (store.Store, error) {
	switch cfg.Backend {
	case "", "memory":
		return store.NewMemoryStore(), nil
	case "file":
		return store.NewFileStore(cfg.Dir)
	case "redis":
		return store.NewRedisStore(ctx, store.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
		})
	case "mongo":
		return store.NewMongoStore(ctx, store.MongoConfig{
			URI:        cfg.Mongo.URI,
			Database:   cfg.Mongo.Database,
			Collection: cfg.Mongo.Collection,
		})
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.Addr,
		Handler: s.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Listening", "addr", s.cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	timeout := s.cfg.ShutdownTimeout.Duration
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.logger.Info("Shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}
