package services

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// IDGenerator issues task identifiers of the form <unix millis>-<8 hex>.
// The millisecond part never repeats or goes backwards inside one
// process; the random suffix keeps separate processes apart.
type IDGenerator struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func NewIDGenerator(now func() time.Time) *IDGenerator {
	if now == nil {
		now = time.Now
	}
	return &IDGenerator{now: now}
}

func (g *IDGenerator) Next() string {
	g.mu.Lock()
	ms := g.now().UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	g.mu.Unlock()

	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%013d-%s", ms, suffix)
}
