package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"pet-record-guardian/internal/domain/appointments"
	"pet-record-guardian/internal/domain/calendar"
)

type CalendarCmd struct {
	Month string `arg:"" optional:"" help:"Month to show (YYYY-MM). Defaults to the current month."`
}

func (c *CalendarCmd) Run(ctx *Context) error {
	var year int
	var month time.Month
	if v := strings.TrimSpace(c.Month); v != "" {
		t, err := time.Parse("2006-01", v)
		if err != nil {
			return fmt.Errorf("invalid month format, use YYYY-MM: %w", err)
		}
		year, month = t.Year(), t.Month()
	}

	petIDs, err := ctx.petIDs()
	if err != nil {
		return err
	}

	svc := calendar.NewService(appointmentLister{src: ctx.Source}, recordLister{src: ctx.Source}, ctx.Clock, ctx.Log)
	view, err := svc.Month(ctx.ctx(), petIDs, year, month)
	if err != nil {
		return err
	}

	fmt.Fprintln(ctx.Out, headerStyle.Render(view.From.Time().Format("January 2006")))
	days := calendar.Days(view.Days)
	if len(days) == 0 {
		fmt.Fprintln(ctx.Out, mutedStyle.Render("  No events this month"))
		return nil
	}

	now := ctx.Clock.Current()
	for _, key := range days {
		printBucket(ctx.Out, view.Days[key], now)
	}
	return nil
}

type DayCmd struct {
	Date string `arg:"" help:"Date to show (YYYY-MM-DD, 'today' or 'tomorrow')." default:"today"`
}

func (c *DayCmd) Run(ctx *Context) error {
	day, err := parseDay(c.Date, ctx.Clock.Today())
	if err != nil {
		return err
	}

	petIDs, err := ctx.petIDs()
	if err != nil {
		return err
	}

	svc := calendar.NewService(appointmentLister{src: ctx.Source}, recordLister{src: ctx.Source}, ctx.Clock, ctx.Log)
	bucket, ok, err := svc.Day(ctx.ctx(), petIDs, day)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintf(ctx.Out, "No events on %s\n", day)
		return nil
	}

	printBucket(ctx.Out, bucket, ctx.Clock.Current())
	return nil
}

func printBucket(w io.Writer, b calendar.DayBucket, now time.Time) {
	fmt.Fprintln(w, headerStyle.Render(b.Date.String()+" "+b.Date.Time().Weekday().String()[:3]))
	for _, a := range b.Appointments {
		when := a.Time
		if when == "" {
			when = "--:--"
		}
		reason := a.Reason
		if reason == "" {
			reason = "Vet appointment"
		}
		fmt.Fprintf(w, "  %-8s %s %s\n", when, reason, statusBadge(appointments.Classify(a, now)))
	}
	for _, rec := range b.MedicalRecords {
		line := string(rec.RecordType)
		if rec.Diagnosis != "" {
			line += ": " + rec.Diagnosis
		}
		if rec.Veterinarian != "" {
			line += " (" + rec.Veterinarian + ")"
		}
		fmt.Fprintf(w, "  %-8s %s\n", "record", line)
	}
}
