package main

import (
	"flag"
	"math/rand"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tarttelin/npzr-ai-sub002/internal/cli"
	"github.com/tarttelin/npzr-ai-sub002/internal/config"
)

func main() {
	logLevel := flag.String("loglevel", "warn", "Set logging level (debug, info, warn, error)")
	seed := flag.Int64("seed", 0, "Random seed (0 = time-based)")
	configPath := flag.String("config", "default_config.json", "Path to the game configuration")
	flag.Parse()

	log := logrus.New()
	level, err := logrus.ParseLevel(*logLevel)
	if err != nil {
		level = logrus.WarnLevel
	}
	log.SetLevel(level)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true, ForceColors: true})

	gameConfig, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	randSource := rand.New(rand.NewSource(*seed))

	ui := cli.NewCLI(log)
	if err := ui.Run(flag.Args(), gameConfig, randSource); err != nil {
		log.Errorf("Application exited with error: %v", err)
		os.Exit(1)
	}
}
