package app

import (
	"errors"

	"github.com/dkeye/linechat/internal/core"
	"github.com/dkeye/linechat/internal/domain"
	"github.com/puzpuzpuz/xsync/v3"
	"github.com/rs/zerolog/log"
)

// DefaultMaxNameAttempts bounds GetUnique.
const DefaultMaxNameAttempts = 100_000

var ErrNamesExhausted = errors.New("no free display name")

// Registry is the set of claimed display names, each mapped to the session
// holding it. Claims on different names never contend.
type Registry struct {
	names       *xsync.MapOf[domain.DisplayName, core.SessionID]
	maxAttempts int
}

func NewRegistry(maxAttempts int) *Registry {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxNameAttempts
	}
	return &Registry{
		names:       xsync.NewMapOf[domain.DisplayName, core.SessionID](),
		maxAttempts: maxAttempts,
	}
}

// Insert claims name for sid. It reports false, without changing anything,
// when the name is already held.
func (r *Registry) Insert(name domain.DisplayName, sid core.SessionID) bool {
	_, loaded := r.names.LoadOrStore(name, sid)
	return !loaded
}

// Remove releases name and reports whether it was held.
func (r *Registry) Remove(name domain.DisplayName) bool {
	_, ok := r.names.LoadAndDelete(name)
	if ok {
		log.Debug().Str("module", "app.registry").Str("name", string(name)).Msg("released name")
	}
	return ok
}

func (r *Registry) Owner(name domain.DisplayName) (core.SessionID, bool) {
	return r.names.Load(name)
}

func (r *Registry) Len() int { return r.names.Size() }

// GetUnique draws candidates from src until one can be claimed for sid.
func (r *Registry) GetUnique(src core.NameSource, sid core.SessionID) (domain.DisplayName, error) {
	for attempt := 0; attempt < r.maxAttempts; attempt++ {
		name := domain.DisplayName(src.Next())
		if r.Insert(name, sid) {
			log.Info().Str("module", "app.registry").Str("sid", string(sid)).Str("name", string(name)).Int("attempts", attempt+1).Msg("claimed name")
			return name, nil
		}
	}
	log.Warn().Str("module", "app.registry").Str("sid", string(sid)).Int("attempts", r.maxAttempts).Msg("name space exhausted")
	return "", ErrNamesExhausted
}
