package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/odysseus0/ankiconv/internal/config"
	"github.com/odysseus0/ankiconv/internal/docio"
	"github.com/odysseus0/ankiconv/internal/flatten"
	"github.com/odysseus0/ankiconv/internal/linejoin"
	"github.com/odysseus0/ankiconv/internal/render"
)

type App struct {
	cfg      config.Config
	log      zerolog.Logger
	renderer *render.Renderer
}

func NewApp(cfg config.Config, logOut io.Writer, debug bool) *App {
	level := cfg.Level()
	if debug {
		level = zerolog.DebugLevel
	}
	return &App{
		cfg:      cfg,
		log:      newLogger(logOut, level),
		renderer: render.NewRenderer(),
	}
}

func newLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// Convert flattens the HTML file at path into <path><anki suffix>. Unless
// debug is set, line breaks in the note become the configured break tag.
func (a *App) Convert(path string, debug bool) (string, error) {
	doc, err := docio.ReadHTML(path)
	if err != nil {
		return "", err
	}
	a.log.Debug().Str("input", path).Str("charset", doc.Charset).Int("bytes", doc.Size).Msg("read document")

	text, err := flatten.Flatten(doc.Text)
	if err != nil {
		return "", fmt.Errorf("flatten %q: %w", path, err)
	}
	if !debug {
		text = flatten.Encode(text, a.cfg.LineBreak)
	}

	out, err := doc.WriteSibling(a.cfg.AnkiSuffix, text)
	if err != nil {
		return "", err
	}
	a.log.Debug().Str("output", out).Int("chars", len(text)).Bool("debug", debug).Msg("flattened document")
	a.log.Info().Str("output", out).Msg("wrote note")
	return out, nil
}

// Join collapses the paragraphs of the text file at path into single lines
// and writes them to <path><join suffix>.
func (a *App) Join(path string) (string, error) {
	doc, err := docio.ReadText(path)
	if err != nil {
		return "", err
	}
	a.log.Debug().Str("input", path).Str("charset", doc.Charset).Int("bytes", doc.Size).Msg("read document")

	text := linejoin.JoinFile(doc.Text)
	out, err := doc.WriteSibling(a.cfg.JoinSuffix, text)
	if err != nil {
		return "", err
	}
	a.log.Info().Str("output", out).Msg("wrote joined text")
	return out, nil
}

// Preview writes a Markdown rendering of the HTML file at path to w.
func (a *App) Preview(path string, w io.Writer) error {
	doc, err := docio.ReadHTML(path)
	if err != nil {
		return err
	}
	a.log.Debug().Str("input", path).Str("charset", doc.Charset).Int("bytes", doc.Size).Msg("read document")

	md, err := a.renderer.Preview(doc.Text)
	if err != nil {
		return fmt.Errorf("preview %q: %w", path, err)
	}
	if md == "" {
		a.log.Warn().Str("input", path).Msg("document body is empty")
		return nil
	}
	_, err = fmt.Fprintln(w, md)
	return err
}
