package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"

	"github.com/psidex/flowmap/internal/config"
	"github.com/psidex/flowmap/internal/dashboard"
	"github.com/psidex/flowmap/internal/lib"
	"github.com/psidex/flowmap/internal/loader"
)

func main() {
	configFile := flag.String("c", "", "path to a TOML config file")
	address := flag.String("b", "", "the ip:port to bind the webserver to (overrides config)")

	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatal("config err: ", err)
	}
	if *address != "" {
		cfg.Server.Address = *address
	}

	logger, err := lib.NewLogger(os.Stderr, cfg.LogLevel)
	if err != nil {
		log.Fatal("logger err: ", err)
	}

	tables, err := loader.NewLoader(cfg.Data.HTTPTimeout, logger).Load(context.Background(), cfg.Data.Sources())
	if err != nil {
		log.Fatal("data load err: ", err)
	}

	region, purpose, err := cfg.DefaultSelection()
	if err != nil {
		log.Fatal("config err: ", err)
	}

	s := dashboard.NewServer(tables, dashboard.Options{
		Style:          cfg.Style,
		DefaultRegion:  region,
		DefaultPurpose: purpose,
		IdleTimeout:    cfg.Server.IdleTimeout,
	}, logger)

	logger.Info("serving dashboard", "address", cfg.Server.Address,
		"edges", len(tables.Edges), "nodes", len(tables.Nodes))
	log.Fatal(http.ListenAndServe(cfg.Server.Address, s.Handler()))
}
