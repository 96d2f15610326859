package models

import (
	"bytes"
	"encoding/json"
	"strings"

	"chart-catalog/core/utils"
)

// GenreFallback is used when a raw song carries no category code.
const GenreFallback = "其他游戏"

// RawSong is one record of the upstream song feed. The feed is a flat
// string-keyed object whose values may arrive as strings, numbers or
// booleans; all values are coerced to strings on decode. Lookup keeps
// "field absent" distinct from "field empty", which the normalizer
// relies on: variant dispatch and note-count rows are driven by key
// presence, while level fallbacks are driven by non-emptiness.
type RawSong struct {
	fields map[string]string
}

// NewRawSong builds a record from already-coerced fields. Test helper
// and decode target for non-JSON callers.
func NewRawSong(fields map[string]string) RawSong {
	return RawSong{fields: fields}
}

// UnmarshalJSON decodes a feed record, coercing every scalar to a
// string. Numbers keep their literal form (json.Number), so dates like
// 20240912 never pass through float formatting.
func (s *RawSong) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	s.fields = make(map[string]string, len(raw))
	for k, v := range raw {
		switch val := v.(type) {
		case string:
			s.fields[k] = val
		case json.Number:
			s.fields[k] = val.String()
		case bool:
			s.fields[k] = utils.ToString(val)
		case nil:
			s.fields[k] = ""
		default:
			// Nested values do not occur in the feed; ignore rather
			// than fail the whole record.
		}
	}
	return nil
}

// Lookup returns the field value and whether the key was present.
func (s RawSong) Lookup(key string) (string, bool) {
	v, ok := s.fields[key]
	return v, ok
}

// Get returns the field value, or "" when absent.
func (s RawSong) Get(key string) string {
	return s.fields[key]
}

// Has reports whether the key was present in the record, regardless of
// its value.
func (s RawSong) Has(key string) bool {
	_, ok := s.fields[key]
	return ok
}

// Title returns the song title.
func (s RawSong) Title() string {
	return s.Get("title")
}

// Artist returns the song artist.
func (s RawSong) Artist() string {
	return s.Get("artist")
}

// Genre returns the category code, falling back to GenreFallback.
func (s RawSong) Genre() string {
	if v, ok := s.Lookup("catcode"); ok {
		return v
	}
	return GenreFallback
}

// BPM returns the song BPM, or 0 when missing or non-numeric
// (e.g. range values like "130-210").
func (s RawSong) BPM() int {
	return utils.ToInt(s.Get("bpm"))
}

// Comment returns the special-event comment field.
func (s RawSong) Comment() string {
	return s.Get("comment")
}

// ImageID returns the jacket image reference with its extension
// stripped; it seeds the chart id before reconciliation.
func (s RawSong) ImageID() string {
	return strings.TrimSuffix(s.Get("image_url"), ".png")
}
