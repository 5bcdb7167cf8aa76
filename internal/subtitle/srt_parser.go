package subtitle

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
)

var (
	srtTimestampRegex = regexp.MustCompile(
		`(\d{2,}):(\d{2}):(\d{2})[,.](\d{3})\s*-->\s*(\d{2,}):(\d{2}):(\d{2})[,.](\d{3})`,
	)
	speakerTagRegex = regexp.MustCompile(`(?s)^\[([^\]\n]+)\]: (.*)$`)
)

// OpenSRT parses the SRT file at path
func OpenSRT(path string) (*Document, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SRT file: %w", err)
	}
	defer file.Close()

	return ParseSRT(file)
}

// ParseSRT reads SubRip cues. A leading "[speaker]: " tag on the first text
// line is split back out into Cue.Speaker.
func ParseSRT(r io.Reader) (*Document, error) {
	var cues []Cue
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var (
		current   *Cue
		timed     bool
		textLines []string
		lineNum   int
	)

	flush := func() {
		if current != nil && timed {
			current.Speaker, current.Body = SplitSpeaker(strings.Join(textLines, "\n"))
			cues = append(cues, *current)
		}
		current = nil
		timed = false
		textLines = nil
	}

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		lineNum++

		if lineNum == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}

		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}

		if current == nil {
			index, err := strconv.Atoi(strings.TrimSpace(line))
			if err == nil {
				current = &Cue{Index: index}
				continue
			}
		}

		if current != nil && !timed {
			matches := srtTimestampRegex.FindStringSubmatch(line)
			if len(matches) != 9 {
				return nil, fmt.Errorf("expected timestamp line at line %d, got %q", lineNum, line)
			}
			start, err := parseSRTTimestamp(matches[1], matches[2], matches[3], matches[4])
			if err != nil {
				return nil, fmt.Errorf("invalid start timestamp at line %d: %w", lineNum, err)
			}
			end, err := parseSRTTimestamp(matches[5], matches[6], matches[7], matches[8])
			if err != nil {
				return nil, fmt.Errorf("invalid end timestamp at line %d: %w", lineNum, err)
			}
			current.Start = start
			current.End = end
			timed = true
			continue
		}

		if current != nil {
			textLines = append(textLines, line)
		}
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading SRT file: %w", err)
	}

	return &Document{Cues: cues}, nil
}

// SplitSpeaker separates a "[speaker]: text" display line. Text without a
// tag is returned unchanged with an empty speaker.
func SplitSpeaker(text string) (speaker, body string) {
	matches := speakerTagRegex.FindStringSubmatch(text)
	if matches == nil {
		return "", text
	}
	return matches[1], matches[2]
}

func parseSRTTimestamp(hours, minutes, seconds, millis string) (float64, error) {
	h, err := strconv.Atoi(hours)
	if err != nil {
		return 0, err
	}
	m, err := strconv.Atoi(minutes)
	if err != nil {
		return 0, err
	}
	s, err := strconv.Atoi(seconds)
	if err != nil {
		return 0, err
	}
	ms, err := strconv.Atoi(millis)
	if err != nil {
		return 0, err
	}

	return float64(h*3600+m*60+s) + float64(ms)/1000, nil
}
