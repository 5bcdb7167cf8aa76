package transcript

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// diarized speech-to-text result, validated and with defaults applied
type Record struct {
	RequestID    string
	Transcript   string
	LanguageCode string
	Entries      []Entry

	// fields that were absent on the wire and replaced by their zero value
	Defaulted []DefaultedField
}

// one speaker-attributed segment. Speaker is empty when the segment has no tag.
type Entry struct {
	Start   float64
	End     float64
	Text    string
	Speaker string
}

// records an absent entry field that was substituted during normalization
type DefaultedField struct {
	Index int // 1-based entry position
	Field string
}

// wire shape. Pointer fields keep track of presence so that
// normalization is the only place defaults are decided.
type rawRecord struct {
	RequestID          *string      `json:"request_id"`
	Transcript         string       `json:"transcript"`
	LanguageCode       string       `json:"language_code"`
	DiarizedTranscript *rawDiarized `json:"diarized_transcript"`
}

type rawDiarized struct {
	Entries *[]RawEntry `json:"entries"`
}

// entry exactly as it appears in the JSON document
type RawEntry struct {
	Transcript       *string  `json:"transcript"`
	StartTimeSeconds *float64 `json:"start_time_seconds"`
	EndTimeSeconds   *float64 `json:"end_time_seconds"`
	SpeakerID        *string  `json:"speaker_id"`
}

// Normalize substitutes defaults for absent optional fields. Missing text
// becomes empty, a missing speaker means no tag and missing times become 0.
// The names of defaulted time fields are returned so callers can report them.
func (r RawEntry) Normalize() (Entry, []string) {
	var (
		e       Entry
		missing []string
	)

	if r.Transcript != nil {
		e.Text = *r.Transcript
	}
	if r.SpeakerID != nil {
		e.Speaker = *r.SpeakerID
	}
	if r.StartTimeSeconds != nil {
		e.Start = *r.StartTimeSeconds
	} else {
		missing = append(missing, "start_time_seconds")
	}
	if r.EndTimeSeconds != nil {
		e.End = *r.EndTimeSeconds
	} else {
		missing = append(missing, "end_time_seconds")
	}

	return e, missing
}

// HasSpeaker reports whether the entry carries a non-empty speaker label
func (e Entry) HasSpeaker() bool {
	return e.Speaker != ""
}

// Decode parses raw JSON into a Record. Malformed JSON yields a
// *DeserializationError; a document without diarized_transcript.entries
// yields a *SchemaError.
func Decode(data []byte) (*Record, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &DeserializationError{Err: errors.New("empty input")}
	}
	if !json.Valid(data) {
		// run the decoder again to get a positioned syntax error
		var probe any
		err := json.Unmarshal(data, &probe)
		if err == nil {
			err = errors.New("invalid JSON")
		}
		return nil, &DeserializationError{Err: err}
	}

	var raw rawRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, schemaErrorFromType(typeErr)
		}
		return nil, &DeserializationError{Err: err}
	}

	if raw.DiarizedTranscript == nil {
		return nil, &SchemaError{Path: "diarized_transcript"}
	}
	if raw.DiarizedTranscript.Entries == nil {
		return nil, &SchemaError{Path: "diarized_transcript.entries"}
	}

	return raw.normalize(), nil
}

// Read decodes a transcript from r
func Read(r io.Reader) (*Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read transcript: %w", err)
	}
	return Decode(data)
}

// Load reads and decodes a transcript JSON file
func Load(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read transcript file %s: %w", path, err)
	}
	return Decode(data)
}

func (r *rawRecord) normalize() *Record {
	rawEntries := *r.DiarizedTranscript.Entries

	rec := &Record{
		Transcript:   r.Transcript,
		LanguageCode: r.LanguageCode,
		Entries:      make([]Entry, len(rawEntries)),
	}
	if r.RequestID != nil {
		rec.RequestID = *r.RequestID
	}

	for i, re := range rawEntries {
		entry, missing := re.Normalize()
		rec.Entries[i] = entry
		for _, field := range missing {
			rec.Defaulted = append(rec.Defaulted, DefaultedField{
				Index: i + 1,
				Field: field,
			})
		}
	}

	return rec
}

func schemaErrorFromType(typeErr *json.UnmarshalTypeError) *SchemaError {
	path := typeErr.Field
	if path == "" {
		path = "$"
	}
	return &SchemaError{
		Path: path,
		Err: fmt.Errorf(
			"expected %s, got JSON %s",
			typeErr.Type,
			typeErr.Value,
		),
	}
}
