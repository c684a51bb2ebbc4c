package models

import (
	"fmt"
	"time"

	dErrors "ssto/pkg/domain-errors"
)

// TestRequest is a filed request for an SSAS test window.
//
// Invariants:
//   - Status only changes along the edges in transitions
//   - A request is a matching candidate only while APPROVED or IN_TESTING
//   - PlannedTestDate, when present, is authoritative over TestDate
type TestRequest struct {
	ID              int64      `json:"id"`
	VesselName      string     `json:"vessel_name,omitempty"`
	MMSI            string     `json:"mmsi,omitempty"`
	IMONumber       string     `json:"imo_number,omitempty"`
	TerminalID      string     `json:"terminal_id,omitempty"`
	PlannedTestDate *time.Time `json:"planned_test_date,omitempty"`
	TestDate        *time.Time `json:"test_date,omitempty"`
	Status          Status     `json:"status"`
	LinkedSignalID  int64      `json:"linked_signal_id,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// NewTestRequest creates a request in DRAFT.
func NewTestRequest(vesselName, mmsi, imo, terminalID string, planned, test *time.Time, now time.Time) *TestRequest {
	return &TestRequest{
		VesselName:      vesselName,
		MMSI:            mmsi,
		IMONumber:       imo,
		TerminalID:      terminalID,
		PlannedTestDate: planned,
		TestDate:        test,
		Status:          StatusDraft,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// WindowDate resolves the declared test date: planned first, then test date.
func (r *TestRequest) WindowDate() (time.Time, bool) {
	for _, d := range []*time.Time{r.PlannedTestDate, r.TestDate} {
		if d != nil && !d.IsZero() {
			return *d, true
		}
	}
	return time.Time{}, false
}

func (r *TestRequest) IsEligible() bool {
	return r.Status.IsEligibleForMatching()
}

// CanTransitionTo returns an invalid-transition error naming both states when
// next is not a permitted successor.
func (r *TestRequest) CanTransitionTo(next Status) error {
	if !r.Status.CanTransitionTo(next) {
		return dErrors.New(dErrors.CodeInvalidTransition,
			fmt.Sprintf("invalid transition from %s to %s", r.Status, next))
	}
	return nil
}

// Transition validates and applies a status change. On error the request is
// left untouched.
func (r *TestRequest) Transition(next Status, now time.Time) error {
	if err := r.CanTransitionTo(next); err != nil {
		return err
	}
	r.Status = next
	r.UpdatedAt = now
	return nil
}

// Clone returns a deep copy.
func (r *TestRequest) Clone() *TestRequest {
	if r == nil {
		return nil
	}
	c := *r
	if r.PlannedTestDate != nil {
		d := *r.PlannedTestDate
		c.PlannedTestDate = &d
	}
	if r.TestDate != nil {
		d := *r.TestDate
		c.TestDate = &d
	}
	return &c
}
