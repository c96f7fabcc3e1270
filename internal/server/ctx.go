package server

import (
	"github.com/rs/zerolog/log"
	"github.com/tdewolff/minify/v2"
	mjson "github.com/tdewolff/minify/v2/json"

	"github.com/hondenkaart/zonemap/internal/config"
	"github.com/hondenkaart/zonemap/internal/store"
)

// ServerContext holds dependencies for request handlers.
type ServerContext struct {
	Config *config.Config
	Store  *store.Store

	minifier *minify.M
}

// NewServerContext initializes the handler context around a loaded store.
func NewServerContext(cfg *config.Config, st *store.Store) *ServerContext {
	m := minify.New()
	m.AddFunc("application/json", mjson.Minify)
	m.AddFunc("application/geo+json", mjson.Minify)

	log.Info().
		Int("zones", len(st.Zones())).
		Float64("merge_distance_m", cfg.MergeDistanceM).
		Int("top_k", cfg.TopK).
		Msg("Server context initialized")

	return &ServerContext{
		Config:   cfg,
		Store:    st,
		minifier: m,
	}
}
