package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ashfall-games/towers/internal/config"
	"github.com/ashfall-games/towers/internal/logger"
	"github.com/ashfall-games/towers/internal/world"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel)

	log.Info().
		Dur("tickInterval", cfg.TickInterval).
		Uint32("worldSize", cfg.WorldSize).
		Uint16("chunkSize", cfg.WorldChunkSize).
		Msg("config loaded")

	svc := world.NewServiceWithBotSpawnBubbleRadius(cfg.WorldSize, cfg.SpawnBotBubbleRadius, logger.Get())
	svc.Debug = cfg.Debug

	ticker := time.NewTicker(cfg.TickInterval)
	defer ticker.Stop()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	log.Info().Msg("world running")

	for {
		select {
		case <-ticker.C:
			svc.Tick()
		case <-quit:
			log.Info().Msg("shutting down")
			return
		}
	}
}
