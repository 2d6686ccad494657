package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"

	"pet-record-guardian/internal/cli"
)

var CLI struct {
	cli.Globals

	Version kong.VersionFlag

	Notifications cli.NotificationsCmd `cmd:"" help:"Show overdue and upcoming appointments." default:"1"`
	Calendar      cli.CalendarCmd      `cmd:"" help:"Show a month of appointments and medical records."`
	Day           cli.DayCmd           `cmd:"" help:"Show the events of one day."`
	Refills       cli.RefillsCmd       `cmd:"" help:"Show medications that need a refill soon."`
	SuggestEnd    cli.SuggestEndCmd    `cmd:"" name:"suggest-end" help:"Suggest a recurrence end date."`
	Occurrences   cli.OccurrencesCmd   `cmd:"" help:"Expand the dates of a recurring appointment."`
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name("petctl"),
		kong.Description("Pet health reminders from the terminal"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	appCtx, err := CLI.Globals.NewContext(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := kctx.Run(appCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
