package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	// TickInterval is how often the world advances a simulation tick.
	TickInterval time.Duration
	// WorldChunkSize is the configured chunk edge length, in towers. It is
	// only reported at startup: the chunk split in pkg/tower uses its own
	// fixed 16-cell chunk size and does not read this value.
	WorldChunkSize uint16
	// WorldSize is the edge length, in towers, of the whole playable area.
	WorldSize uint32
	// LogLevel is the minimum zerolog level name logged at ("debug",
	// "info", "warn", "error").
	LogLevel string
	// SpawnBotBubbleRadius is the spawn-bubble radius, in towers, used for
	// bot-controlled players. Human players use a wider bubble hardcoded
	// in internal/world; only the bot radius is configurable, matching the
	// original's debug/release asymmetry hook.
	SpawnBotBubbleRadius uint16
	// Debug enables world.Service's assertion sink: it panics if dispatch
	// raises an info event at a call site whose operation should never
	// raise one, mirroring the original's debug_assert! closures around
	// dispatch_chunk_input/dispatch_chunk_maintenance.
	Debug bool
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		TickInterval:         envDurationOrDefault("TICK_INTERVAL", 200*time.Millisecond),
		WorldChunkSize:       uint16(envIntOrDefault("WORLD_CHUNK_SIZE", 16)),
		WorldSize:            uint32(envIntOrDefault("WORLD_SIZE", 2048)),
		LogLevel:             envOrDefault("LOG_LEVEL", "info"),
		SpawnBotBubbleRadius: uint16(envIntOrDefault("SPAWN_BOT_BUBBLE_RADIUS", 35)),
		Debug:                envBoolOrDefault("DEBUG", false),
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOrDefault(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envBoolOrDefault(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func envDurationOrDefault(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
