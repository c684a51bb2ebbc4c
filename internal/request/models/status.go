package models

import (
	"fmt"
	"strings"
)

// Status is the lifecycle state of a test request.
type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusSubmitted Status = "SUBMITTED"
	StatusInReview  Status = "IN_REVIEW"
	StatusApproved  Status = "APPROVED"
	StatusInTesting Status = "IN_TESTING"
	StatusCompleted Status = "COMPLETED"
	StatusRejected  Status = "REJECTED"
	StatusCancelled Status = "CANCELLED"
)

// transitions lists every permitted edge. COMPLETED and CANCELLED have none.
var transitions = map[Status][]Status{
	StatusDraft:     {StatusSubmitted, StatusCancelled},
	StatusSubmitted: {StatusInReview, StatusCancelled},
	StatusInReview:  {StatusApproved, StatusRejected},
	StatusApproved:  {StatusInTesting, StatusCancelled},
	StatusInTesting: {StatusCompleted, StatusCancelled},
	StatusRejected:  {StatusDraft},
	StatusCompleted: nil,
	StatusCancelled: nil,
}

// EligibleStatuses are the states in which a request may receive a signal link.
var EligibleStatuses = []Status{StatusApproved, StatusInTesting}

func (s Status) IsValid() bool {
	_, ok := transitions[s]
	return ok
}

// CanTransitionTo reports whether next is a permitted successor of s.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s Status) IsTerminal() bool {
	return s.IsValid() && len(transitions[s]) == 0
}

// IsEligibleForMatching is the window between authorization and completion.
func (s Status) IsEligibleForMatching() bool {
	return s == StatusApproved || s == StatusInTesting
}

// ParseStatus accepts any casing and surrounding whitespace ("approved",
// " In_Testing ") and rejects strings outside the lifecycle.
func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToUpper(strings.TrimSpace(raw)))
	if !s.IsValid() {
		return "", fmt.Errorf("unknown request status %q", raw)
	}
	return s, nil
}
