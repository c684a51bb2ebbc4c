package extract

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"ssto/internal/signal/models"
)

// Source yields one candidate raw value for an identifier.
type Source interface {
	Lookup(sig *models.Signal) (string, bool)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(sig *models.Signal) (string, bool)

func (f SourceFunc) Lookup(sig *models.Signal) (string, bool) { return f(sig) }

// Field reads a strongly-typed record field.
func Field(get func(*models.Signal) string) Source {
	return SourceFunc(func(sig *models.Signal) (string, bool) {
		return nonBlank(get(sig))
	})
}

// MetadataKey reads one key of the metadata bag.
func MetadataKey(key string) Source {
	return SourceFunc(func(sig *models.Signal) (string, bool) {
		v, ok := sig.Metadata[key]
		if !ok {
			return "", false
		}
		return nonBlank(stringify(v))
	})
}

// Chain evaluates sources in order; the first non-blank value wins.
type Chain []Source

// NewChain puts the record field first, then the metadata aliases.
func NewChain(field func(*models.Signal) string, keys []string) Chain {
	c := make(Chain, 0, len(keys)+1)
	if field != nil {
		c = append(c, Field(field))
	}
	for _, k := range keys {
		c = append(c, MetadataKey(k))
	}
	return c
}

// Resolve returns the first non-blank value, or "" when no source has one.
func (c Chain) Resolve(sig *models.Signal) string {
	if sig == nil {
		return ""
	}
	for _, src := range c {
		if v, ok := src.Lookup(sig); ok {
			return v
		}
	}
	return ""
}

func nonBlank(v string) (string, bool) {
	if strings.TrimSpace(v) == "" {
		return "", false
	}
	return v, true
}

// stringify renders decoded JSON values without exponent notation so that
// numeric MMSI/IMO values survive intact.
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case json.Number:
		return t.String()
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}
