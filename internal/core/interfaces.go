//go:generate go run go.uber.org/mock/mockgen -source=interfaces.go -destination=../mocks/mock_core.go -package=mocks
package core

import "github.com/dkeye/linechat/internal/domain"

// SessionID identifies one live connection for its whole lifetime,
// across renames and room changes.
type SessionID string

// NameSource yields display name candidates. Implementations never block
// and never run dry; uniqueness is the registry's job, not the source's.
type NameSource interface {
	Next() string
}

// NameClaimer is the core-facing API of the name registry.
type NameClaimer interface {
	Insert(name domain.DisplayName, sid SessionID) bool
	Remove(name domain.DisplayName) bool
	GetUnique(src NameSource, sid SessionID) (domain.DisplayName, error)
}
