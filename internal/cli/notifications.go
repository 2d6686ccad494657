package cli

import (
	"fmt"

	"pet-record-guardian/internal/domain/notifications"
)

type NotificationsCmd struct {
	Lookahead int `help:"Days ahead considered upcoming." default:"7"`
}

func (c *NotificationsCmd) Run(ctx *Context) error {
	if c.Lookahead < 0 {
		return fmt.Errorf("--lookahead must be >= 0")
	}

	petIDs, err := ctx.petIDs()
	if err != nil {
		return err
	}

	svc := notifications.NewService(appointmentLister{src: ctx.Source}, ctx.Clock, ctx.Log, c.Lookahead)
	feed, err := svc.Feed(ctx.ctx(), petIDs, c.Lookahead)
	if err != nil {
		return err
	}

	if len(feed) == 0 {
		fmt.Fprintln(ctx.Out, mutedStyle.Render("No notifications"))
		return nil
	}

	fmt.Fprintln(ctx.Out, headerStyle.Render(fmt.Sprintf("Notifications (%d)", len(feed))))
	for _, n := range feed {
		fmt.Fprintf(ctx.Out, "  %s %-22s %s\n", statusBadge(n.DisplayStatus), n.Title, n.Description)
	}
	return nil
}
