package matching

import (
	"fmt"
	"time"
)

// Policy holds the scoring parameters. Auto-linking is always by terminal id
// only; nothing here can widen it.
type Policy struct {
	// MatchWindowHours bounds the TIME reason; beyond it a candidate gets no
	// time contribution but is not excluded.
	MatchWindowHours    int
	StrongNameThreshold float64
	FuzzyNameThreshold  float64
	DefaultLimit        int
}

const (
	scoreMMSI       = 40
	scoreIMO        = 35
	scoreNameStrong = 25
	fuzzyNameWeight = 20

	scoreTimeNear   = 10
	scoreTimeDay    = 5
	scoreTimeWindow = 2

	nearWindow = 6 * time.Hour
	dayWindow  = 24 * time.Hour
)

// DefaultPolicy is the 48 hour window with the 0.90/0.75 name thresholds.
func DefaultPolicy() Policy {
	return Policy{
		MatchWindowHours:    48,
		StrongNameThreshold: 0.90,
		FuzzyNameThreshold:  0.75,
		DefaultLimit:        5,
	}
}

func (p Policy) Validate() error {
	if p.MatchWindowHours <= 0 {
		return fmt.Errorf("match window must be positive, got %d", p.MatchWindowHours)
	}
	if p.FuzzyNameThreshold <= 0 || p.FuzzyNameThreshold > 1 {
		return fmt.Errorf("fuzzy name threshold must be in (0,1], got %v", p.FuzzyNameThreshold)
	}
	if p.StrongNameThreshold < p.FuzzyNameThreshold || p.StrongNameThreshold > 1 {
		return fmt.Errorf("strong name threshold must be in [fuzzy,1], got %v", p.StrongNameThreshold)
	}
	if p.DefaultLimit <= 0 {
		return fmt.Errorf("default suggestion limit must be positive, got %d", p.DefaultLimit)
	}
	return nil
}

func (p Policy) window() time.Duration {
	return time.Duration(p.MatchWindowHours) * time.Hour
}
