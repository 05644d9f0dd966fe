package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"emcmap/shared"
	"emcmap/utils/config"
	"emcmap/utils/requests"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

type appConfig struct {
	MarkersURL string
	PlayersURL string
	MapURL     string
	Markerset  string
	IgnoreCase bool
	ReqPerMin  int
	Timeout    time.Duration
	DBDir      string
	LogLevel   string
}

// A .env file is optional, the environment alone is enough.
func loadEnv() {
	err := godotenv.Load(".env")
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatal(err)
	}
}

func loadConfig() (cfg appConfig, err error) {
	var errs [9]error

	cfg.MarkersURL, errs[0] = config.EnviroVarOr(config.KEY_MARKERS_URL, shared.MARKERS_URL)
	cfg.PlayersURL, errs[1] = config.EnviroVarOr(config.KEY_PLAYERS_URL, shared.PLAYERS_URL)
	cfg.MapURL, errs[2] = config.EnviroVarOr(config.KEY_MAP_URL, shared.MAP_URL)
	cfg.Markerset, errs[3] = config.EnviroVarOr(config.KEY_MARKERSET, shared.DEFAULT_MARKERSET)
	cfg.IgnoreCase, errs[4] = config.EnviroVarOr(config.KEY_IGNORE_CASE, false)
	cfg.ReqPerMin, errs[5] = config.EnviroVarOr(config.KEY_REQ_PER_MIN, 0)
	cfg.Timeout, errs[6] = config.EnviroVarOr(config.KEY_TIMEOUT, requests.DEFAULT_TIMEOUT)
	cfg.DBDir, errs[7] = config.EnviroVarOr(config.KEY_DB_DIR, "db")
	cfg.LogLevel, errs[8] = config.EnviroVarOr(config.KEY_LOG_LEVEL, "info")

	return cfg, errors.Join(errs[:]...)
}

func setupLogging(level string) {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetOutput(os.Stderr)

	lvl, err := log.ParseLevel(level)
	if err != nil {
		log.Warnf("unknown log level %q, using info", level)
		lvl = log.InfoLevel
	}

	log.SetLevel(lvl)
}

func main() {
	loadEnv()

	cfg, err := loadConfig()
	if err != nil {
		log.Fatal("Invalid configuration:\n", err)
	}

	setupLogging(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	a := newApp(cfg)

	err = a.rootCmd().ExecuteContext(ctx)
	a.close()
	stop()

	if err != nil {
		os.Exit(1)
	}
}
