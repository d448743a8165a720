// Package config loads the small set of tunables the core and its
// demonstration binaries need from the environment. Configuration loading
// proper (files, secrets, service discovery) is an external collaborator
// per spec §1; this is the minimal os.Getenv-with-default surface the
// teacher's cmd/server/main.go itself uses.
package config

import (
	"os"
	"strconv"
)

// Config holds the process-wide tunables.
type Config struct {
	// GameSpeed multiplies production rates and divides base
	// training/build/travel times.
	GameSpeed float64
	// MaxBuildQueue caps uncompleted BuildingEvents per village.
	MaxBuildQueue int
	// ServerPort is the gin demonstration API's listen port.
	ServerPort string
	// AdminPort is the privileged mux/websocket demonstration API's port.
	AdminPort string
	// LogLevel is passed to logger.Init.
	LogLevel string
}

// Load reads Config from the environment, applying the same defaults the
// source ruleset assumes.
func Load() Config {
	return Config{
		GameSpeed:     getFloat("GAME_SPEED", 1.0),
		MaxBuildQueue: getInt("MAX_BUILD_QUEUE", 2),
		ServerPort:    getString("PORT", "3001"),
		AdminPort:     getString("ADMIN_PORT", "3002"),
		LogLevel:      getString("LOG_LEVEL", "info"),
	}
}

func getString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func getInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
