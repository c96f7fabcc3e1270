// Package server handles HTTP requests and middleware.
package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/hondenkaart/zonemap/internal/geo"
	"github.com/hondenkaart/zonemap/internal/source"
)

// HandleZones serves the processed zone list as GeoJSON.
func (s *ServerContext) HandleZones(w http.ResponseWriter, r *http.Request) {
	fc := source.Export(s.Store.Zones())

	data, err := fc.MarshalJSON()
	if err != nil {
		http.Error(w, "encoding failed", http.StatusInternalServerError)
		return
	}

	s.writeMinified(w, "application/geo+json", data)
}

type rankedEntry struct {
	ID         string  `json:"id"`
	Category   string  `json:"category"`
	Kind       string  `json:"kind"`
	Merged     bool    `json:"merged,omitempty"`
	AreaM2     float64 `json:"area_m2,omitempty"`
	DistanceKm float64 `json:"distance_km"`
}

// HandleNearest serves the ranked nearest-K list. Responds 204 while no
// user position is known.
func (s *ServerContext) HandleNearest(w http.ResponseWriter, r *http.Request) {
	k := s.Config.TopK
	if v := r.URL.Query().Get("k"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			http.Error(w, "invalid k", http.StatusBadRequest)
			return
		}
		k = parsed
	}

	if s.Store.Snapshot().Position == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	ranked := s.Store.Nearest(k)
	out := make([]rankedEntry, 0, len(ranked))
	for _, rz := range ranked {
		out = append(out, rankedEntry{
			ID:         rz.Zone.ID,
			Category:   string(rz.Zone.Category),
			Kind:       string(rz.Zone.Kind),
			Merged:     rz.Zone.Merged,
			AreaM2:     rz.Zone.AreaM2,
			DistanceKm: rz.DistanceKm,
		})
	}

	s.writeJSON(w, out)
}

type positionBody struct {
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	AccuracyM *float64 `json:"accuracy_m,omitempty"`
}

// HandlePosition accepts a user position update and triggers the distance
// and ranking recompute.
func (s *ServerContext) HandlePosition(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var body positionBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid position", http.StatusBadRequest)
		return
	}
	if body.Latitude < -90 || body.Latitude > 90 || body.Longitude < -180 || body.Longitude > 180 {
		http.Error(w, "position out of range", http.StatusBadRequest)
		return
	}

	s.Store.SetPosition(geo.LatLng{Lat: body.Latitude, Lng: body.Longitude})

	evt := log.Debug().Float64("lat", body.Latitude).Float64("lng", body.Longitude)
	if body.AccuracyM != nil {
		evt = evt.Float64("accuracy_m", *body.AccuracyM)
	}
	evt.Msg("Position updated")

	w.WriteHeader(http.StatusNoContent)
}

// HandleSelect marks a zone as selected; its distance annotation is kept
// current across position updates.
func (s *ServerContext) HandleSelect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Path: /api/select/{id}
	id := strings.TrimPrefix(r.URL.Path, "/api/select/")
	if id == "" || !s.Store.Select(id) {
		http.NotFound(w, r)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleStyles serves the per-category style table.
func (s *ServerContext) HandleStyles(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, s.Config.Styles)
}

// HandleHealth reports readiness and the current pass.
func (s *ServerContext) HandleHealth(w http.ResponseWriter, r *http.Request) {
	snap := s.Store.Snapshot()
	s.writeJSON(w, map[string]interface{}{
		"pass":         snap.PassID,
		"zones":        len(snap.Zones),
		"has_position": snap.Position != nil,
	})
}

func (s *ServerContext) writeJSON(w http.ResponseWriter, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "encoding failed", http.StatusInternalServerError)
		return
	}
	s.writeMinified(w, "application/json", data)
}

func (s *ServerContext) writeMinified(w http.ResponseWriter, contentType string, data []byte) {
	minified, err := s.minifier.Bytes(contentType, data)
	if err != nil {
		// Serve unminified rather than failing the request
		minified = data
	}

	w.Header().Set("Content-Type", contentType)
	// Ignoring error as we cannot handle client disconnects
	_, _ = w.Write(minified)
}
