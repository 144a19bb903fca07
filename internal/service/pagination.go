package service

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
)

// ConfigReader reads raw values from the system configuration table.
type ConfigReader interface {
	GetValue(ctx context.Context, key string) (string, error)
}

// perPageFromConfig reads a page size from the config table. Missing,
// malformed or non-positive values fall back.
func perPageFromConfig(ctx context.Context, configs ConfigReader, key string, fallback int) int {
	raw, err := configs.GetValue(ctx, key)
	if err != nil {
		slog.Warn("page size config unavailable", "key", key, "error", err)
		return fallback
	}

	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func normalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}
