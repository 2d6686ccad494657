package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"pet-record-guardian/internal/domain/datewindow"
	"pet-record-guardian/internal/platform/logger"
)

// Globals son los flags compartidos por todos los comandos de petctl.
type Globals struct {
	API     string `help:"Base URL of the pet-record-guardian API." default:"http://localhost:8080" env:"PETCTL_API"`
	User    string `help:"User id sent as X-Debug-User-ID (dev mode)." env:"PETCTL_USER"`
	Token   string `help:"Bearer token verified by the API." env:"PETCTL_TOKEN"`
	Now     string `help:"Override the current instant (RFC3339)." env:"PETCTL_NOW"`
	TZ      string `help:"IANA time zone used to compute today." default:"Local" env:"PETCTL_TZ"`
	Pet     string `help:"Limit to one pet id."`
	Verbose bool   `help:"Log requests and skipped rows." short:"v"`
}

// Context es lo que recibe cada Run.
type Context struct {
	Ctx    context.Context
	Source Fetcher
	Clock  datewindow.Clock
	Out    io.Writer
	Log    logger.Logger

	PetID string
}

// NewContext arma el Context a partir de los flags globales.
func (g *Globals) NewContext(ctx context.Context) (*Context, error) {
	level := logger.Warn
	if g.Verbose {
		level = logger.Debug
	}
	log := logger.New(logger.Options{Level: level, App: "petctl", Output: os.Stderr})

	clock, err := g.clock()
	if err != nil {
		return nil, err
	}

	src, err := NewSource(SourceConfig{
		BaseURL: g.API,
		UserID:  g.User,
		Token:   g.Token,
		Log:     log,
	})
	if err != nil {
		return nil, err
	}

	return &Context{
		Ctx:    ctx,
		Source: src,
		Clock:  clock,
		Out:    os.Stdout,
		Log:    log,
		PetID:  strings.TrimSpace(g.Pet),
	}, nil
}

func (g *Globals) clock() (datewindow.Clock, error) {
	loc := time.Local
	if tz := strings.TrimSpace(g.TZ); tz != "" && tz != "Local" {
		l, err := time.LoadLocation(tz)
		if err != nil {
			return datewindow.Clock{}, fmt.Errorf("invalid tz %q: %w", tz, err)
		}
		loc = l
	}

	if now := strings.TrimSpace(g.Now); now != "" {
		t, err := time.Parse(time.RFC3339, now)
		if err != nil {
			return datewindow.Clock{}, fmt.Errorf("invalid --now, use RFC3339: %w", err)
		}
		return datewindow.FixedClock(t.In(loc)), nil
	}
	return datewindow.SystemClock(loc), nil
}

// petIDs: --pet si viene, si no todas las mascotas del usuario.
func (c *Context) petIDs() ([]string, error) {
	if c.PetID != "" {
		return []string{c.PetID}, nil
	}
	return c.Source.PetIDs(c.ctx())
}

func (c *Context) ctx() context.Context {
	if c.Ctx == nil {
		return context.Background()
	}
	return c.Ctx
}

// parseDay acepta YYYY-MM-DD, "today" o "tomorrow".
func parseDay(s string, today datewindow.Date) (datewindow.Date, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return today, nil
	case "tomorrow":
		return today.AddDays(1), nil
	}
	d, err := datewindow.ParseDate(s)
	if err != nil {
		return datewindow.Date{}, fmt.Errorf("invalid date format, use YYYY-MM-DD or 'today': %w", err)
	}
	return d, nil
}
