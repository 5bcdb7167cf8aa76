package convert

import (
	"context"
	"fmt"

	"github.com/mgpai22/diarsrt/internal/subtitle"
	"github.com/mgpai22/diarsrt/internal/transcript"
)

// sink for human readable notices. *zap.SugaredLogger satisfies it.
type Notifier interface {
	Infow(msg string, keysAndValues ...any)
	Warnw(msg string, keysAndValues ...any)
	Errorw(msg string, keysAndValues ...any)
}

// rewrites cue text before it is emitted. The result must have the same
// length and order as texts.
type TextTranslator interface {
	TranslateTexts(ctx context.Context, texts []string) ([]string, error)
}

type Options struct {
	Format     subtitle.Format // defaults to srt
	Namer      Namer           // defaults to DefaultNamer()
	Notifier   Notifier        // nil disables notices
	Translator TextTranslator  // nil leaves text untouched
	Language   string          // written to formats that carry a language
}

// Converter turns transcript records into subtitle documents
type Converter struct {
	format     subtitle.Format
	encoder    subtitle.Encoder
	namer      Namer
	notify     Notifier
	translator TextTranslator
	language   string
}

// outcome of a successful conversion
type Result struct {
	Path     string
	Text     string
	Cues     int
	Speakers []string
}

func New(opts Options) (*Converter, error) {
	format := opts.Format
	if format == "" {
		format = subtitle.FormatSRT
	}

	encoder, err := subtitle.NewEncoder(format)
	if err != nil {
		return nil, err
	}

	namer := opts.Namer
	if namer == nil {
		namer = DefaultNamer()
	}

	notify := opts.Notifier
	if notify == nil {
		notify = nopNotifier{}
	}

	return &Converter{
		format:     format,
		encoder:    encoder,
		namer:      namer,
		notify:     notify,
		translator: opts.Translator,
		language:   opts.Language,
	}, nil
}

func (c *Converter) Format() subtitle.Format {
	return c.format
}

// Document builds the cue list for rec, one cue per entry in input order
func (c *Converter) Document(ctx context.Context, rec *transcript.Record) (*subtitle.Document, error) {
	if rec == nil {
		return nil, &transcript.SchemaError{Path: "diarized_transcript"}
	}

	for _, d := range rec.Defaulted {
		c.notify.Warnw("Entry field missing, using 0",
			"entry", d.Index,
			"field", d.Field,
		)
	}

	doc := subtitle.NewDocument(rec.Entries)
	doc.Language = c.language
	if doc.Language == "" {
		doc.Language = rec.LanguageCode
	}

	if c.translator != nil && len(doc.Cues) > 0 {
		if err := c.translate(ctx, doc); err != nil {
			return nil, err
		}
	}

	return doc, nil
}

// Render returns the subtitle document text without touching storage
func (c *Converter) Render(ctx context.Context, rec *transcript.Record) (string, error) {
	doc, err := c.Document(ctx, rec)
	if err != nil {
		return "", err
	}
	return subtitle.Render(c.encoder, doc)
}

// Convert renders rec and writes it to dest, replacing any existing file.
// An empty dest is resolved through the Namer. Nothing is written unless
// the whole document rendered.
func (c *Converter) Convert(ctx context.Context, rec *transcript.Record, dest string) (*Result, error) {
	doc, err := c.Document(ctx, rec)
	if err != nil {
		c.notify.Errorw("Failed to build subtitles", "error", err)
		return nil, err
	}

	text, err := subtitle.Render(c.encoder, doc)
	if err != nil {
		return nil, fmt.Errorf("failed to render subtitles: %w", err)
	}

	if dest == "" {
		dest = c.namer.Name(rec, c.format)
	}

	if err := writeFile(dest, []byte(text)); err != nil {
		c.notify.Errorw("Failed to write subtitle file", "path", dest, "error", err)
		return nil, err
	}

	c.notify.Infow("Subtitle file created",
		"path", dest,
		"format", string(c.format),
		"cues", len(doc.Cues),
	)

	return &Result{
		Path:     dest,
		Text:     text,
		Cues:     len(doc.Cues),
		Speakers: doc.Speakers(),
	}, nil
}

// ConvertBytes decodes raw JSON and converts it. Malformed input fails
// before any file is touched.
func (c *Converter) ConvertBytes(ctx context.Context, raw []byte, dest string) (*Result, error) {
	rec, err := transcript.Decode(raw)
	if err != nil {
		c.notify.Errorw("Invalid transcript", "error", err)
		return nil, err
	}
	return c.Convert(ctx, rec, dest)
}

// ConvertFile converts the transcript JSON file at path
func (c *Converter) ConvertFile(ctx context.Context, path, dest string) (*Result, error) {
	rec, err := transcript.Load(path)
	if err != nil {
		c.notify.Errorw("Error processing JSON file", "file", path, "error", err)
		return nil, err
	}
	return c.Convert(ctx, rec, dest)
}

// replaces cue bodies with their translation; speaker tags are kept as is
func (c *Converter) translate(ctx context.Context, doc *subtitle.Document) error {
	texts := make([]string, len(doc.Cues))
	for i, cue := range doc.Cues {
		texts[i] = cue.Body
	}

	translated, err := c.translator.TranslateTexts(ctx, texts)
	if err != nil {
		return fmt.Errorf("translation failed: %w", err)
	}
	if len(translated) != len(texts) {
		return fmt.Errorf("translation returned %d texts for %d cues", len(translated), len(texts))
	}

	for i := range doc.Cues {
		doc.Cues[i].Body = translated[i]
	}
	return nil
}

type nopNotifier struct{}

func (nopNotifier) Infow(string, ...any)  {}
func (nopNotifier) Warnw(string, ...any)  {}
func (nopNotifier) Errorw(string, ...any) {}
