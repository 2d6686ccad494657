package cli

import (
	"fmt"
	"strings"

	"pet-record-guardian/internal/domain/appointments"
	"pet-record-guardian/internal/domain/datewindow"
)

// SuggestEndCmd no necesita el API.
type SuggestEndCmd struct {
	Start   string `arg:"" help:"Start date (YYYY-MM-DD)."`
	Pattern string `arg:"" help:"daily, weekly, monthly or yearly." enum:"daily,weekly,monthly,yearly"`
	Current string `help:"End date already chosen; kept unless it precedes start."`
}

func (c *SuggestEndCmd) Run(ctx *Context) error {
	start, err := datewindow.ParseDate(c.Start)
	if err != nil {
		return err
	}
	pattern := appointments.RecurrencePattern(strings.ToLower(c.Pattern))
	if !pattern.Valid() {
		return fmt.Errorf("invalid pattern %q", c.Pattern)
	}
	current, err := datewindow.ParseOptionalDate(c.Current)
	if err != nil {
		return err
	}

	end := appointments.ResolveRecurrenceEnd(start, pattern, current)
	if end == nil {
		return fmt.Errorf("no end date for pattern %q", pattern)
	}
	fmt.Fprintln(ctx.Out, end.String())
	return nil
}

type OccurrencesCmd struct {
	ID    string `arg:"" help:"Appointment id."`
	From  string `help:"First date to include (YYYY-MM-DD). Defaults to today."`
	To    string `help:"Last date to include (YYYY-MM-DD)."`
	Limit int    `help:"Maximum number of dates." default:"52"`
}

func (c *OccurrencesCmd) Run(ctx *Context) error {
	from := ctx.Clock.Today()
	if c.From != "" {
		d, err := datewindow.ParseDate(c.From)
		if err != nil {
			return err
		}
		from = d
	}
	var to datewindow.Date
	if c.To != "" {
		d, err := datewindow.ParseDate(c.To)
		if err != nil {
			return err
		}
		to = d
	}

	a, err := ctx.Source.Appointment(ctx.ctx(), c.ID)
	if err != nil {
		return err
	}

	dates := appointments.Occurrences(a, from, to, c.Limit)
	if len(dates) == 0 {
		fmt.Fprintln(ctx.Out, mutedStyle.Render("No occurrences in range"))
		return nil
	}

	title := "One-off appointment"
	if a.IsRecurring {
		title = "Recurs " + string(a.RecurrencePattern)
	}
	fmt.Fprintln(ctx.Out, headerStyle.Render(title))
	for _, d := range dates {
		fmt.Fprintf(ctx.Out, "  %s\n", d)
	}
	return nil
}
