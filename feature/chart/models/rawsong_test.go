package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawSong_UnmarshalJSON(t *testing.T) {
	data := []byte(`{
		"title": "Song A",
		"bpm": 150,
		"date_added": 20240912,
		"ds": 12.7,
		"flag": true,
		"empty": null,
		"nested": {"ignored": 1},
		"lev_bas": ""
	}`)

	var s RawSong
	require.NoError(t, json.Unmarshal(data, &s))

	assert.Equal(t, "Song A", s.Get("title"))
	assert.Equal(t, "150", s.Get("bpm"))
	// Integer-valued fields keep their literal form; a date must never
	// come out as 2.0240912e+07.
	assert.Equal(t, "20240912", s.Get("date_added"))
	assert.Equal(t, "12.7", s.Get("ds"))
	assert.Equal(t, "true", s.Get("flag"))
	assert.Equal(t, "", s.Get("empty"))
	assert.True(t, s.Has("empty"))
	assert.False(t, s.Has("nested"))

	// Presence and emptiness are distinct.
	assert.True(t, s.Has("lev_bas"))
	assert.Equal(t, "", s.Get("lev_bas"))
	v, ok := s.Lookup("lev_bas")
	assert.True(t, ok)
	assert.Equal(t, "", v)
	_, ok = s.Lookup("lev_exp")
	assert.False(t, ok)
}

func TestRawSong_UnmarshalJSONInvalid(t *testing.T) {
	var s RawSong
	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &s))
}

func TestRawSong_Accessors(t *testing.T) {
	s := NewRawSong(map[string]string{
		"title":     "Song A",
		"artist":    "Artist A",
		"catcode":   "niconico＆ボーカロイド",
		"bpm":       "130-210",
		"comment":   "hello",
		"image_url": "abc123.png",
	})

	assert.Equal(t, "Song A", s.Title())
	assert.Equal(t, "Artist A", s.Artist())
	assert.Equal(t, "niconico＆ボーカロイド", s.Genre())
	// Range BPMs are not numeric and collapse to zero.
	assert.Equal(t, 0, s.BPM())
	assert.Equal(t, "hello", s.Comment())
	assert.Equal(t, "abc123", s.ImageID())
}

func TestRawSong_GenreFallback(t *testing.T) {
	assert.Equal(t, GenreFallback, NewRawSong(map[string]string{}).Genre())
	// A present but empty category code is kept as-is.
	assert.Equal(t, "", NewRawSong(map[string]string{"catcode": ""}).Genre())
}
