package store

import (
	"github.com/rs/zerolog/log"

	"github.com/dkeye/Notes/internal/config"
)

// Open builds the NoteStore described by cfg: memory or SQL, optionally
// fronted by redis.
func Open(cfg *config.Config) (NoteStore, error) {
	var base NoteStore
	if cfg.Database.Driver == "memory" {
		base = NewMemoryStore()
	} else {
		db, err := OpenDB(cfg.Database)
		if err != nil {
			return nil, err
		}
		base = NewGormStore(db)
	}
	log.Info().Str("module", "store").Str("driver", cfg.Database.Driver).Msg("note store ready")

	if !cfg.Cache.Enabled {
		return base, nil
	}
	cache, err := NewRedisNoteCache(cfg.Cache)
	if err != nil {
		_ = base.Close()
		return nil, err
	}
	log.Info().Str("module", "store").Str("addr", cfg.Cache.Address).Dur("ttl", cfg.Cache.TTL).Msg("note cache enabled")
	return NewCachedStore(base, cache, cfg.Cache.TTL), nil
}
