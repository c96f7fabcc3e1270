// Package store holds the process-wide processed zone state.
package store

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb/geojson"
	"github.com/rs/zerolog/log"

	"github.com/hondenkaart/zonemap/internal/geo"
	"github.com/hondenkaart/zonemap/internal/zone"
)

// Snapshot is one complete pipeline result. Snapshots are replaced
// wholesale; concurrent readers see either the previous or the next complete
// zone list, never a partial one.
type Snapshot struct {
	// PassID identifies the pipeline pass that produced this snapshot.
	PassID   string
	LoadedAt time.Time

	Zones   []*zone.Zone
	Nearest []zone.Ranked

	// Position is the user position the distances were computed against,
	// nil while no position is known.
	Position *geo.LatLng
}

// Store owns the current snapshot and the pipeline parameters. All methods
// are safe for concurrent use.
type Store struct {
	mu   sync.RWMutex
	snap *Snapshot

	mergeDistanceM float64
	topK           int
	selectedID     string
}

// New creates an empty store. Non-positive parameters fall back to the
// package defaults.
func New(mergeDistanceM float64, topK int) *Store {
	if mergeDistanceM <= 0 {
		mergeDistanceM = zone.DefaultMergeDistanceM
	}
	if topK <= 0 {
		topK = zone.DefaultTopK
	}
	return &Store{
		snap:           &Snapshot{PassID: uuid.NewString(), LoadedAt: time.Now()},
		mergeDistanceM: mergeDistanceM,
		topK:           topK,
	}
}

// Load runs classification and proximity merging over a raw feature
// collection and swaps in the result. A previously known user position is
// reapplied to the new zone list.
func (s *Store) Load(fc *geojson.FeatureCollection) {
	areas, points := zone.Classify(fc)
	merged := zone.MergeNearby(areas, s.mergeDistanceM)
	zones := append(merged, points...)

	s.mu.Lock()
	defer s.mu.Unlock()

	next := &Snapshot{
		PassID:   uuid.NewString(),
		LoadedAt: time.Now(),
		Zones:    zones,
		Position: s.snap.Position,
	}
	if next.Position != nil {
		zone.AnnotateAll(next.Zones, *next.Position)
		next.Nearest = zone.Rank(next.Zones, *next.Position, s.topK)
	}
	s.snap = next

	log.Info().
		Str("pass", next.PassID).
		Int("features", len(fc.Features)).
		Int("zones", len(zones)).
		Int("areas", len(merged)).
		Int("points", len(points)).
		Msg("Zone list replaced")
}

// SetPosition records a new user position, rewrites every zone's distance,
// rebuilds the nearest ranking and swaps in a new snapshot. The zone records
// are cloned first: snapshots already handed to readers are never touched.
func (s *Store) SetPosition(pos geo.LatLng) {
	s.mu.Lock()
	defer s.mu.Unlock()

	zones := make([]*zone.Zone, len(s.snap.Zones))
	for i, z := range s.snap.Zones {
		zones[i] = z.Clone()
	}

	next := &Snapshot{
		PassID:   s.snap.PassID,
		LoadedAt: s.snap.LoadedAt,
		Zones:    zones,
		Position: &pos,
	}
	zone.AnnotateAll(next.Zones, pos)
	next.Nearest = zone.Rank(next.Zones, pos, s.topK)
	s.snap = next
}

// Select marks a zone as externally selected and annotates its distance when
// a position is known. Returns false for an unknown id.
func (s *Store) Select(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	z := s.findLocked(id)
	if z == nil {
		return false
	}

	s.selectedID = id
	if s.snap.Position != nil {
		zone.AnnotateDistance(z, *s.snap.Position)
	}
	return true
}

// Selected returns the currently selected zone, nil when none is selected.
func (s *Store) Selected() *zone.Zone {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findLocked(s.selectedID)
}

// Snapshot returns the current snapshot.
func (s *Store) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Zones returns the current processed zone list.
func (s *Store) Zones() []*zone.Zone {
	return s.Snapshot().Zones
}

// Nearest returns up to k zones ranked by distance from the current
// position, nil while no position is known. k <= 0 uses the configured
// default.
func (s *Store) Nearest(k int) []zone.Ranked {
	snap := s.Snapshot()
	if snap.Position == nil {
		return nil
	}
	if k <= 0 || k == s.topK {
		return snap.Nearest
	}
	return zone.Rank(snap.Zones, *snap.Position, k)
}

func (s *Store) findLocked(id string) *zone.Zone {
	if id == "" {
		return nil
	}
	for _, z := range s.snap.Zones {
		if z.ID == id {
			return z
		}
	}
	return nil
}
