package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"

	"github.com/hondenkaart/zonemap/internal/config"
	"github.com/hondenkaart/zonemap/internal/logger"
	"github.com/hondenkaart/zonemap/internal/server"
	"github.com/hondenkaart/zonemap/internal/source"
	"github.com/hondenkaart/zonemap/internal/store"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile    string  `short:"c" long:"config"         env:"CONFIG_FILE"      description:"Path to configuration file" default:"config.yaml"`
	Dataset       string  `short:"d" long:"dataset"        env:"DATASET"          description:"Zone dataset path or URL (overrides config)"`
	Addr          string  `short:"a" long:"addr"           env:"LISTEN_ADDRESS"   description:"Address to listen on"       default:"0.0.0.0"`
	Port          int     `short:"p" long:"port"           env:"LISTEN_PORT"      description:"Port to listen on"          default:"8080"`
	MergeDistance float64 `short:"m" long:"merge-distance" env:"MERGE_DISTANCE_M" description:"Zone merge distance in meters (overrides config)"`
	TopK          int     `short:"k" long:"top"            env:"TOP_K"            description:"Nearest list size (overrides config)"`
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

	// Setup Logging
	opts.Logger.Setup()

	// Load Config; a missing file falls back to defaults when a dataset is
	// given on the command line.
	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		if opts.Dataset == "" {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}
		log.Warn().Err(err).Msg("No configuration file, using defaults")
		cfg = config.Default()
	}

	if opts.Dataset != "" {
		cfg.Dataset = opts.Dataset
	}
	if opts.MergeDistance > 0 {
		cfg.MergeDistanceM = opts.MergeDistance
	}
	if opts.TopK > 0 {
		cfg.TopK = opts.TopK
	}
	if cfg.Dataset == "" {
		log.Fatal().Msg("No zone dataset configured")
	}

	client := &http.Client{Timeout: 15 * time.Second}

	fc, err := source.Fetch(client, cfg.Dataset)
	if err != nil {
		log.Fatal().Err(err).Str("dataset", cfg.Dataset).Msg("Failed to load zone dataset")
	}

	st := store.New(cfg.MergeDistanceM, cfg.TopK)
	st.Load(fc)

	srvCtx := server.NewServerContext(cfg, st)

	// Routes
	mux := http.NewServeMux()
	mux.HandleFunc("/api/zones", srvCtx.HandleZones)
	mux.HandleFunc("/api/nearest", srvCtx.HandleNearest)
	mux.HandleFunc("/api/position", srvCtx.HandlePosition)
	mux.HandleFunc("/api/select/", srvCtx.HandleSelect)
	mux.HandleFunc("/api/styles", srvCtx.HandleStyles)
	mux.HandleFunc("/api/health", srvCtx.HandleHealth)

	handler := server.RequestLogger(mux)

	listenAddr := fmt.Sprintf("%s:%d", opts.Addr, opts.Port)
	log.Info().
		Str("addr", listenAddr).
		Int("zones_loaded", len(st.Zones())).
		Msg("Web server started")

	if err := http.ListenAndServe(listenAddr, handler); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}
