// Package matching decides which eligible request a signal belongs to.
//
// Two passes run over the same candidate pool. SelectStrict auto-links on an
// exact normalized terminal id and nothing else. Suggest scores every
// candidate on MMSI, IMO, vessel name and time proximity for an operator to
// choose from. Both are pure.
package matching

import (
	"math"
	"sort"
	"time"

	"ssto/internal/normalize"
	reqmodels "ssto/internal/request/models"
	"ssto/internal/signal/models"
)

type Reason string

const (
	ReasonMMSI       Reason = "MMSI"
	ReasonIMO        Reason = "IMO"
	ReasonNameStrong Reason = "NAME_STRONG"
	ReasonNameFuzzy  Reason = "NAME_FUZZY"
	ReasonTime       Reason = "TIME"
)

type Suggestion struct {
	RequestID int64    `json:"request_id"`
	Score     int      `json:"score"`
	Reasons   []Reason `json:"reasons"`
}

// StrictMatch is the winner of the terminal-id pass. TimeDiff is
// math.MaxInt64 when the request has no usable date.
type StrictMatch struct {
	Request  *reqmodels.TestRequest
	TimeDiff time.Duration
}

const noDate = time.Duration(math.MaxInt64)

type Engine struct {
	policy     Policy
	normalizer *normalize.Normalizer
}

type Option func(*Engine)

// WithNormalizer replaces the default name normalizer, e.g. one with extra
// transliterations.
func WithNormalizer(n *normalize.Normalizer) Option {
	return func(e *Engine) {
		if n != nil {
			e.normalizer = n
		}
	}
}

func NewEngine(policy Policy, opts ...Option) *Engine {
	e := &Engine{policy: policy, normalizer: normalize.NewNormalizer(nil)}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Policy() Policy { return e.policy }

// SelectStrict returns the eligible candidate whose terminal id equals the
// signal's, closest in time to the receipt; ties go to the lower id.
func (e *Engine) SelectStrict(ids models.Identifiers, candidates []*reqmodels.TestRequest) (StrictMatch, bool) {
	if ids.TerminalID == "" {
		return StrictMatch{}, false
	}
	var best StrictMatch
	found := false
	for _, req := range candidates {
		if req == nil || !req.IsEligible() {
			continue
		}
		if normalize.TerminalID(req.TerminalID) != ids.TerminalID {
			continue
		}
		diff := timeDiff(ids.ReceivedAt, req)
		if !found || diff < best.TimeDiff || (diff == best.TimeDiff && req.ID < best.Request.ID) {
			best = StrictMatch{Request: req, TimeDiff: diff}
			found = true
		}
	}
	return best, found
}

// Suggest scores every eligible candidate, drops zero scores and returns at
// most limit suggestions by descending score then ascending id. A
// non-positive limit means the policy default.
func (e *Engine) Suggest(ids models.Identifiers, candidates []*reqmodels.TestRequest, limit int) []Suggestion {
	if limit <= 0 {
		limit = e.policy.DefaultLimit
	}
	out := make([]Suggestion, 0, len(candidates))
	for _, req := range candidates {
		if req == nil || !req.IsEligible() {
			continue
		}
		if s, ok := e.score(ids, req); ok {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].RequestID < out[j].RequestID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (e *Engine) score(ids models.Identifiers, req *reqmodels.TestRequest) (Suggestion, bool) {
	s := Suggestion{RequestID: req.ID}

	if ids.MMSI != "" && ids.MMSI == normalize.Digits(req.MMSI) {
		s.Score += scoreMMSI
		s.Reasons = append(s.Reasons, ReasonMMSI)
	}
	if ids.IMO != "" && ids.IMO == normalize.Digits(req.IMONumber) {
		s.Score += scoreIMO
		s.Reasons = append(s.Reasons, ReasonIMO)
	}

	sim := e.normalizer.Similarity(ids.VesselName, req.VesselName)
	switch {
	case sim >= e.policy.StrongNameThreshold:
		s.Score += scoreNameStrong
		s.Reasons = append(s.Reasons, ReasonNameStrong)
	case sim >= e.policy.FuzzyNameThreshold:
		s.Score += int(math.Round(sim * fuzzyNameWeight))
		s.Reasons = append(s.Reasons, ReasonNameFuzzy)
	}

	if pts := e.timeScore(timeDiff(ids.ReceivedAt, req)); pts > 0 {
		s.Score += pts
		s.Reasons = append(s.Reasons, ReasonTime)
	}

	return s, s.Score > 0
}

func (e *Engine) timeScore(diff time.Duration) int {
	switch {
	case diff == noDate, diff > e.policy.window():
		return 0
	case diff <= nearWindow:
		return scoreTimeNear
	case diff <= dayWindow:
		return scoreTimeDay
	}
	return scoreTimeWindow
}

func timeDiff(receivedAt time.Time, req *reqmodels.TestRequest) time.Duration {
	d, ok := req.WindowDate()
	if !ok {
		return noDate
	}
	diff := receivedAt.Sub(d)
	if diff < 0 {
		diff = -diff
	}
	// Sub saturates beyond roughly 292 years and -MinInt64 stays negative.
	if diff < 0 {
		return noDate
	}
	return diff
}
