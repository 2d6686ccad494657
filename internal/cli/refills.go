package cli

import (
	"fmt"
	"sort"

	"pet-record-guardian/internal/domain/medications"
)

type RefillsCmd struct {
	Threshold int  `help:"Days before refill_date to warn." default:"7"`
	All       bool `help:"List every medication with its status label."`
}

func (c *RefillsCmd) Run(ctx *Context) error {
	petIDs, err := ctx.petIDs()
	if err != nil {
		return err
	}

	items, err := ctx.Source.Medications(ctx.ctx(), petIDs)
	if err != nil {
		return err
	}

	today := ctx.Clock.Today()
	out := make([]medications.Medication, 0, len(items))
	for _, m := range items {
		if c.All || medications.NeedsRefill(m, today, c.Threshold) {
			out = append(out, m)
		}
	}

	if !c.All {
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].RefillDate.Before(*out[j].RefillDate)
		})
	}

	if len(out) == 0 {
		fmt.Fprintln(ctx.Out, mutedStyle.Render("No refills due"))
		return nil
	}

	fmt.Fprintln(ctx.Out, headerStyle.Render(fmt.Sprintf("Medications (%d)", len(out))))
	for _, m := range out {
		label := medications.Label(m, today, c.Threshold)
		rendered := mutedStyle.Render(string(label))
		if label == medications.LabelRefillSoon {
			rendered = refillStyle.Render(string(label))
		}

		refill := "-"
		if m.RefillDate != nil {
			refill = m.RefillDate.String()
		}
		fmt.Fprintf(ctx.Out, "  %-20s refill %s  %s\n", m.Name, refill, rendered)
	}
	return nil
}
