// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package main implements the metar-lights service.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/wneessen/metar-lights/internal/config"
	"github.com/wneessen/metar-lights/internal/logger"
	"github.com/wneessen/metar-lights/internal/service"
	"github.com/wneessen/metar-lights/internal/station"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGABRT, os.Interrupt)
	defer cancel()

	// Initialize Logger
	log := logger.New(slog.LevelError)

	confPath := flag.String("config", "", "path to the config file")
	flag.Parse()

	conf, err := loadConfig(*confPath)
	if err != nil {
		log.Error("failed to load config", logger.Err(err))
		os.Exit(1)
	}
	log = logger.New(conf.LogLevel)

	// Load the station registry
	entries := make([]station.Entry, len(conf.Stations))
	for i, st := range conf.Stations {
		entries[i] = station.Entry{Code: st.Code, Position: st.Position}
	}
	registry, err := station.New(entries)
	if err != nil {
		var confErr *station.ConfigError
		if errors.As(err, &confErr) && confErr.Index >= 0 {
			log.Error("invalid station configuration", slog.Int("entry", confErr.Index),
				slog.String("station", confErr.Code), logger.Err(confErr.Err))
		} else {
			log.Error("invalid station configuration", logger.Err(err))
		}
		os.Exit(1)
	}

	// Initialize the service
	serv, err := service.New(conf, log, registry)
	if err != nil {
		log.Error("failed to initialize metar-lights service", logger.Err(err))
		os.Exit(1)
	}

	// Start the service loop
	log.Info("starting metar-lights service", slog.String("version", version),
		slog.String("commit", commit), slog.String("date", date), slog.Int("stations", registry.Len()))
	if err = serv.Run(ctx); err != nil {
		log.Error("failed to run metar-lights service", logger.Err(err))
		os.Exit(1)
	}
	log.Info("shutting down metar-lights service")
}

// loadConfig reads the config file given on the command line. Without one, the default
// locations are searched, and without a config file only defaults and environment apply.
func loadConfig(confPath string) (*config.Config, error) {
	if confPath != "" {
		return config.NewFromFile(filepath.Dir(confPath), filepath.Base(confPath))
	}
	if path, file := findConfigFile(); path != "" && file != "" {
		return config.NewFromFile(path, file)
	}
	return config.New()
}

func findConfigFile() (string, string) {
	dirs := []string{filepath.Join("/etc", "metar-lights")}
	if homedir, err := os.UserHomeDir(); err == nil {
		dirs = append([]string{filepath.Join(homedir, ".config", "metar-lights")}, dirs...)
	}

	exts := []string{"toml", "yaml", "yml", "json"}
	for _, dir := range dirs {
		for _, ext := range exts {
			path := filepath.Join(dir, "config."+ext)
			if _, err := os.Stat(path); err == nil {
				return filepath.Dir(path), filepath.Base(path)
			}
		}
	}
	return "", ""
}
