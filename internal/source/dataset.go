// Package source handles acquisition and persistence of the raw zone
// dataset.
package source

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/paulmach/orb/geojson"
	"github.com/rs/zerolog/log"
)

// ErrBadDataset marks a dataset that could not be parsed as a GeoJSON
// FeatureCollection. This is the pipeline's only fatal input condition.
var ErrBadDataset = errors.New("malformed zone dataset")

// Fetch loads the raw FeatureCollection from a local path or an HTTP(S) URL.
func Fetch(client *http.Client, location string) (*geojson.FeatureCollection, error) {
	var (
		data []byte
		err  error
	)

	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		log.Info().Str("source", location).Msg("Fetching zone dataset")
		data, err = download(client, location)
	} else {
		log.Info().Str("source", location).Msg("Reading zone dataset")
		data, err = os.ReadFile(location)
	}
	if err != nil {
		return nil, err
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrBadDataset, err)
	}

	log.Debug().Int("features", len(fc.Features)).Msg("Dataset decoded")
	return fc, nil
}

func download(client *http.Client, url string) ([]byte, error) {
	resp, err := client.Get(url)
	if err != nil {
		return nil, err
	}
	// Explicitly ignore close error as it's a read-only operation
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

// Save marshals the feature collection and writes it to disk, creating the
// directory when needed.
func Save(path string, fc *geojson.FeatureCollection) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	// We care about write errors on close
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Error().Err(closeErr).Str("path", path).Msg("Failed to close file")
		}
	}()

	data, err := fc.MarshalJSON()
	if err != nil {
		return err
	}

	_, err = f.Write(data)
	return err
}
