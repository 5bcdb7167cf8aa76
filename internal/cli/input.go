package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// where the transcript JSON came from
type inputSource string

const (
	sourceFile   inputSource = "file"
	sourceFlag   inputSource = "argument"
	sourceStdin  inputSource = "stdin"
	sourcePrompt inputSource = "prompt"
)

type transcriptInput struct {
	Source inputSource
	Path   string // set for sourceFile
	Data   []byte // set for every other source
}

var errNoInput = errors.New("no JSON data provided")

// acquireInput picks the transcript from, in order: a file argument, the
// --json-string flag, piped stdin, or text pasted at an interactive prompt.
func acquireInput(args []string, jsonString string, stdin io.Reader, prompt io.Writer) (*transcriptInput, error) {
	if len(args) > 0 {
		return &transcriptInput{Source: sourceFile, Path: args[0]}, nil
	}

	if strings.TrimSpace(jsonString) != "" {
		return &transcriptInput{Source: sourceFlag, Data: []byte(strings.TrimSpace(jsonString))}, nil
	}

	source := sourceStdin
	if isTerminal(stdin) {
		source = sourcePrompt
		fmt.Fprintln(prompt, "Please paste the transcript JSON below (press Ctrl+D when done):")
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("failed to read standard input: %w", err)
	}
	data = []byte(strings.TrimSpace(string(data)))
	if len(data) == 0 {
		return nil, errNoInput
	}

	return &transcriptInput{Source: source, Data: data}, nil
}

// reports whether v is an *os.File attached to a terminal
func isTerminal(v any) bool {
	file, ok := v.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
