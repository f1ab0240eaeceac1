package tools

import (
	"github.com/usestring/shapegen/internal/config"
	"github.com/usestring/shapegen/internal/resultcache"
)

// Deps contains all dependencies needed by tool handlers.
type Deps struct {
	Config  *config.Config
	Results *resultcache.ResultCache
}
