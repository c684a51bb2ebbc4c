package models

import (
	"errors"
	"strings"
	"time"
)

// CreateRequest is the input for filing a new test request.
type CreateRequest struct {
	VesselName      string     `json:"vessel_name"`
	MMSI            string     `json:"mmsi"`
	IMONumber       string     `json:"imo_number"`
	TerminalID      string     `json:"terminal_id"`
	PlannedTestDate *time.Time `json:"planned_test_date"`
	TestDate        *time.Time `json:"test_date"`
}

func (r *CreateRequest) Normalize() {
	r.VesselName = strings.TrimSpace(r.VesselName)
	r.MMSI = strings.TrimSpace(r.MMSI)
	r.IMONumber = strings.TrimSpace(r.IMONumber)
	r.TerminalID = strings.TrimSpace(r.TerminalID)
}

// Test dates outside this range are rejected at intake.
var (
	earliestTestDate = time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
	latestTestDate   = time.Date(2200, 1, 1, 0, 0, 0, 0, time.UTC)
)

func (r *CreateRequest) Validate() error {
	if r.VesselName == "" && r.TerminalID == "" {
		return errors.New("vessel_name or terminal_id is required")
	}
	if len(r.VesselName) > 255 {
		return errors.New("vessel_name must be at most 255 characters")
	}
	if !plausibleDate(r.PlannedTestDate) {
		return errors.New("planned_test_date is out of range")
	}
	if !plausibleDate(r.TestDate) {
		return errors.New("test_date is out of range")
	}
	return nil
}

func plausibleDate(d *time.Time) bool {
	if d == nil || d.IsZero() {
		return true
	}
	return !d.Before(earliestTestDate) && d.Before(latestTestDate)
}

// TransitionRequest asks for a lifecycle move.
type TransitionRequest struct {
	Status string `json:"status"`
}
