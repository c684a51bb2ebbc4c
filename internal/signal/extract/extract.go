// Package extract turns a raw signal record into the normalized identifier
// bundle consumed by the match engine.
package extract

import (
	"strings"
	"time"

	"ssto/internal/normalize"
	"ssto/internal/signal/models"
)

// Extractor resolves each identifier through its own fallback chain.
type Extractor struct {
	terminal   Chain
	mmsi       Chain
	imo        Chain
	vesselName Chain
	textKeys   []string
	markers    []string
	now        func() time.Time
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithClock sets the time used when a signal carries no receipt time.
func WithClock(now func() time.Time) Option {
	return func(e *Extractor) {
		if now != nil {
			e.now = now
		}
	}
}

// New builds an Extractor from cfg after trimming and deduplicating its key lists.
func New(cfg Config, opts ...Option) *Extractor {
	cfg = cfg.normalized()
	e := &Extractor{
		terminal:   NewChain(func(s *models.Signal) string { return s.TerminalID }, cfg.TerminalKeys),
		mmsi:       NewChain(func(s *models.Signal) string { return s.MMSI }, cfg.MMSIKeys),
		imo:        NewChain(func(s *models.Signal) string { return s.IMO }, cfg.IMOKeys),
		vesselName: NewChain(func(s *models.Signal) string { return s.VesselName }, cfg.VesselNameKeys),
		textKeys:   cfg.TextKeys,
		markers:    cfg.TestMarkers,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract never fails: absent identifiers come back empty.
func (e *Extractor) Extract(sig *models.Signal) models.Identifiers {
	if sig == nil {
		return models.Identifiers{ReceivedAt: e.now()}
	}
	receivedAt := sig.ReceivedAt
	if receivedAt.IsZero() {
		receivedAt = e.now()
	}
	return models.Identifiers{
		TerminalID:   normalize.TerminalID(e.terminal.Resolve(sig)),
		MMSI:         normalize.Digits(e.mmsi.Resolve(sig)),
		IMO:          normalize.Digits(e.imo.Resolve(sig)),
		VesselName:   e.vesselName.Resolve(sig),
		ReceivedAt:   receivedAt,
		IsTestSignal: e.IsTestSignal(sig),
	}
}

// IsTestSignal scans the free-text metadata fields and the signal type for
// any test marker, ignoring case.
func (e *Extractor) IsTestSignal(sig *models.Signal) bool {
	if sig == nil || len(e.markers) == 0 {
		return false
	}
	parts := make([]string, 0, len(e.textKeys)+1)
	for _, k := range e.textKeys {
		if v, ok := MetadataKey(k).Lookup(sig); ok {
			parts = append(parts, v)
		}
	}
	if sig.SignalType != "" {
		parts = append(parts, sig.SignalType)
	}
	blob := strings.ToUpper(strings.Join(parts, " "))
	for _, m := range e.markers {
		if strings.Contains(blob, m) {
			return true
		}
	}
	return false
}
