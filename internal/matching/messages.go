package matching

import (
	"fmt"
	"strings"

	"ssto/internal/signal/models"
)

// Outcome is what the operator guidance is derived from.
type Outcome struct {
	Identifiers models.Identifiers
	Matched     bool
	RequestID   int64
	Suggestions []Suggestion
}

const (
	msgNoTerminal    = "Auto-link not performed: the signal carries no IMN/SSAS terminal number."
	msgNoActiveMatch = "Auto-link not performed: no active request has this IMN/SSAS terminal number."
	msgAutoLinked    = "Auto-linked to request #%d by IMN/SSAS terminal number."
	msgCandidates    = "Candidates for manual linking: %s"
	msgNoCandidates  = "No suggestions found: check requests by MMSI/IMO/vessel name and time manually."
)

// OperatorMessages renders the guidance shown next to a signal: first why it
// was or was not auto-linked, then the ranked candidates.
func OperatorMessages(o Outcome) []string {
	msgs := make([]string, 0, 2)
	switch {
	case o.Matched:
		msgs = append(msgs, fmt.Sprintf(msgAutoLinked, o.RequestID))
	case o.Identifiers.TerminalID == "":
		msgs = append(msgs, msgNoTerminal)
	default:
		msgs = append(msgs, msgNoActiveMatch)
	}

	if len(o.Suggestions) == 0 {
		return append(msgs, msgNoCandidates)
	}
	parts := make([]string, len(o.Suggestions))
	for i, s := range o.Suggestions {
		parts[i] = FormatSuggestion(s)
	}
	return append(msgs, fmt.Sprintf(msgCandidates, strings.Join(parts, "; ")))
}

// FormatSuggestion renders "#12 · MMSI+NAME_STRONG (score=65)".
func FormatSuggestion(s Suggestion) string {
	reasons := make([]string, len(s.Reasons))
	for i, r := range s.Reasons {
		reasons[i] = string(r)
	}
	return fmt.Sprintf("#%d · %s (score=%d)", s.RequestID, strings.Join(reasons, "+"), s.Score)
}
