// Package qrcode produces the payload encoded in visitor badge QR codes:
// SAFEVISIT_<visitorID>_<unix millis>.
package qrcode

import (
	"fmt"
	"sync"
	"time"
)

const Prefix = "SAFEVISIT"

// Payload formats a QR payload for a visitor at t.
func Payload(visitorID string, t time.Time) string {
	return fmt.Sprintf("%s_%s_%d", Prefix, visitorID, t.UnixMilli())
}

// Generator hands out payloads whose timestamps never repeat within one
// process, bumping by a millisecond on collision.
type Generator struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func NewGenerator(now func() time.Time) *Generator {
	if now == nil {
		now = time.Now
	}
	return &Generator{now: now}
}

func (g *Generator) Next(visitorID string) string {
	g.mu.Lock()
	ms := g.now().UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	g.mu.Unlock()
	return Payload(visitorID, time.UnixMilli(ms))
}
