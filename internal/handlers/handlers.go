// Package handlers wires HTTP requests to the matcher.
package handlers

import (
	"github.com/maxfilov/shazam/internal/matcher"
)

// Handlers holds the dependencies shared by the HTTP endpoints.
type Handlers struct {
	Matcher      *matcher.Matcher
	Pool         *matcher.WorkerPool
	TempAudioDir string
}

// New constructs Handlers.
func New(m *matcher.Matcher, pool *matcher.WorkerPool, tempAudioDir string) *Handlers {
	return &Handlers{Matcher: m, Pool: pool, TempAudioDir: tempAudioDir}
}
