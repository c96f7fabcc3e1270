package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/hondenkaart/zonemap/internal/geo"
	"github.com/hondenkaart/zonemap/internal/logger"
	"github.com/hondenkaart/zonemap/internal/source"
	"github.com/hondenkaart/zonemap/internal/zone"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	Input         string   `short:"i" long:"in" description:"Input dataset path or URL" required:"true"`
	Output        string   `short:"o" long:"out" description:"Output file path. Writes to stdout if empty"`
	Format        string   `short:"f" long:"format" description:"Output format" choice:"json" choice:"yaml" default:"json"`
	MergeDistance float64  `short:"m" long:"merge-distance" description:"Zone merge distance in meters" default:"100"`
	TopK          int      `short:"k" long:"top" description:"Nearest list size when a position is given" default:"5"`
	Lat           *float64 `long:"lat" description:"User latitude, embeds distances in the output"`
	Lon           *float64 `long:"lon" description:"User longitude, embeds distances in the output"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	opts.Logger.Setup()

	client := &http.Client{Timeout: 15 * time.Second}

	fc, err := source.Fetch(client, opts.Input)
	if err != nil {
		log.Fatal().Err(err).Str("input", opts.Input).Msg("Failed to read dataset")
	}

	areas, points := zone.Classify(fc)
	merged := zone.MergeNearby(areas, opts.MergeDistance)
	zones := append(merged, points...)

	log.Info().
		Int("features", len(fc.Features)).
		Int("areas", len(merged)).
		Int("points", len(points)).
		Msg("Dataset processed")

	if opts.Lat != nil && opts.Lon != nil {
		pos := geo.LatLng{Lat: *opts.Lat, Lng: *opts.Lon}
		zone.AnnotateAll(zones, pos)

		for _, r := range zone.Rank(zones, pos, opts.TopK) {
			log.Info().
				Str("zone", r.Zone.ID).
				Str("category", string(r.Zone.Category)).
				Float64("distance_km", r.DistanceKm).
				Msg("Nearby zone")
		}
	}

	out := source.Export(zones)

	// Compact GeoJSON straight to file
	if opts.Output != "" && opts.Format == "json" {
		if err := source.Save(opts.Output, out); err != nil {
			log.Fatal().Err(err).Str("path", opts.Output).Msg("Failed to write output")
		}
		log.Info().
			Int("zones", len(zones)).
			Str("path", opts.Output).
			Msg("Output written")
		return
	}

	// marshal
	var outputData []byte
	if opts.Format == "yaml" {
		var doc interface{}
		raw, err := out.MarshalJSON()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to marshal output")
		}
		if err := json.Unmarshal(raw, &doc); err != nil {
			log.Fatal().Err(err).Msg("Failed to marshal output")
		}
		outputData, err = yaml.Marshal(doc)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to marshal output")
		}
	} else {
		raw, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to marshal output")
		}
		outputData = raw
	}

	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, outputData, 0644); err != nil {
			log.Fatal().Err(err).Str("path", opts.Output).Msg("Failed to write output")
		}
		log.Info().
			Int("zones", len(zones)).
			Str("path", opts.Output).
			Str("format", opts.Format).
			Msg("Output written")
	} else {
		fmt.Println(string(outputData))
	}
}
