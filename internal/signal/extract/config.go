package extract

import (
	pstrings "ssto/pkg/platform/strings"
)

// Config lists, in priority order, the metadata keys consulted for each
// identifier when the record's own field is empty.
type Config struct {
	TerminalKeys   []string
	MMSIKeys       []string
	IMOKeys        []string
	VesselNameKeys []string
	// TextKeys are the free-text metadata fields scanned for TestMarkers.
	TextKeys    []string
	TestMarkers []string
}

// DefaultConfig returns the alias lists used by the known ingestion channels.
func DefaultConfig() Config {
	return Config{
		TerminalKeys: []string{
			"terminal_number", "terminalNumber", "ssas_number", "SSAS",
			"inmarsat_number", "iridium_number", "imn", "IMN", "mobile_terminal_no",
		},
		MMSIKeys:       []string{"mmsi", "MMSI"},
		IMOKeys:        []string{"imo", "IMO", "imo_number"},
		VesselNameKeys: []string{"vessel_name", "vesselName", "ship_name", "shipName"},
		TextKeys:       []string{"classification", "signal_type", "subject", "body", "text"},
		TestMarkers:    []string{"TEST", "DRILL", "УЧЕБ"},
	}
}

// normalized trims and dedupes every list, keeping order. Keys are case
// sensitive ("imn" and "IMN" are distinct aliases); markers are compared
// upper-cased.
func (c Config) normalized() Config {
	return Config{
		TerminalKeys:   pstrings.DedupeAndTrim(c.TerminalKeys),
		MMSIKeys:       pstrings.DedupeAndTrim(c.MMSIKeys),
		IMOKeys:        pstrings.DedupeAndTrim(c.IMOKeys),
		VesselNameKeys: pstrings.DedupeAndTrim(c.VesselNameKeys),
		TextKeys:       pstrings.DedupeAndTrim(c.TextKeys),
		TestMarkers:    pstrings.DedupeAndTrimUpper(c.TestMarkers),
	}
}
