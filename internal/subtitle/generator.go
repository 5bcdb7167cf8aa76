package subtitle

import (
	"github.com/mgpai22/diarsrt/internal/transcript"
)

// NewDocument turns diarized entries into cues, one per entry and in input
// order. Entries are never split, merged, sorted or dropped; the cue index is
// the entry's 1-based position.
func NewDocument(entries []transcript.Entry) *Document {
	cues := make([]Cue, len(entries))
	for i, e := range entries {
		cues[i] = Cue{
			Index:   i + 1,
			Start:   e.Start,
			End:     e.End,
			Speaker: e.Speaker,
			Body:    e.Text,
		}
	}
	return &Document{Cues: cues}
}

// speakers in order of first appearance
func (d *Document) Speakers() []string {
	seen := make(map[string]bool)
	var speakers []string
	for _, c := range d.Cues {
		if c.Speaker == "" || seen[c.Speaker] {
			continue
		}
		seen[c.Speaker] = true
		speakers = append(speakers, c.Speaker)
	}
	return speakers
}
