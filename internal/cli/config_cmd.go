package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/pitwall/internal/cli/formatter"
	"github.com/alexanderramin/pitwall/internal/domain"
	"github.com/spf13/cobra"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or edit the per-day configuration overlay",
	}

	cmd.AddCommand(
		newConfigShowCmd(app),
		newConfigSetCmd(app),
		newConfigResetCmd(app),
	)

	return cmd
}

func newConfigShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current overlay",
		RunE: func(cmd *cobra.Command, args []string) error {
			overlay, err := app.Overlays.Get(context.Background())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatOverlay(overlay, app.display()))
			return nil
		},
	}
}

func newConfigSetCmd(app *App) *cobra.Command {
	var date, message string
	values := dayFormValues{}

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set or clear day fields (HH:MM venue-local, '-' clears)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if date == "" {
				return fmt.Errorf("--date is required")
			}
			venue, err := venueLocation(app)
			if err != nil {
				return err
			}

			if values.empty() {
				if !app.interactive() {
					return fmt.Errorf("no fields given; pass --breakfast/--lunch/--dinner/--departure")
				}
				if err := dayOverlayForm(date, &values).Run(); err != nil {
					return err
				}
			}

			patch, err := values.toPatch(date, venue)
			if err != nil {
				return err
			}

			overlay, rec, err := app.Overlays.ApplyPatch(context.Background(), app.Operator, patch, message)
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatOverlay(overlay, app.display()))
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatCommit(rec))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Venue-local date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&values.Breakfast, "breakfast", "", "Breakfast time")
	cmd.Flags().StringVar(&values.Lunch, "lunch", "", "Lunch time")
	cmd.Flags().StringVar(&values.Dinner, "dinner", "", "Dinner time")
	cmd.Flags().StringVar(&values.Departure, "departure", "", "Hotel departure time")
	cmd.Flags().StringVar(&message, "message", "", "Commit message for the change log")

	return cmd
}

func newConfigResetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reset <date>",
		Short: "Reset one day back to the documented defaults",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			overlay, rec, err := app.Overlays.ResetDay(context.Background(), app.Operator, args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatOverlay(overlay, app.display()))
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatCommit(rec))
			return nil
		},
	}
}

// venueLocation resolves the venue timezone from the current schedule.
// Without a schedule, venue-local times fall back to UTC.
func venueLocation(app *App) (*time.Location, error) {
	doc, err := app.Schedules.Current(context.Background())
	if errors.Is(err, domain.ErrNotFound) {
		return time.UTC, nil
	}
	if err != nil {
		return nil, err
	}
	return doc.VenueLocation()
}

// dayFormValues carries raw field inputs: "" unchanged, "-" clear,
// otherwise HH:MM in the venue timezone.
type dayFormValues struct {
	Breakfast string
	Lunch     string
	Dinner    string
	Departure string
}

func (v dayFormValues) empty() bool {
	return v.Breakfast == "" && v.Lunch == "" && v.Dinner == "" && v.Departure == ""
}

func (v dayFormValues) toPatch(date string, venue *time.Location) (domain.OverlayPatch, error) {
	var dp domain.DayPatch
	for _, f := range []struct {
		raw    string
		target *domain.FieldPatch
	}{
		{v.Breakfast, &dp.Breakfast},
		{v.Lunch, &dp.Lunch},
		{v.Dinner, &dp.Dinner},
		{v.Departure, &dp.HotelDeparture},
	} {
		fp, err := parseFieldPatch(date, f.raw, venue)
		if err != nil {
			return domain.OverlayPatch{}, err
		}
		*f.target = fp
	}
	return domain.OverlayPatch{Days: map[string]domain.DayPatch{date: dp}}, nil
}

func parseFieldPatch(date, raw string, venue *time.Location) (domain.FieldPatch, error) {
	raw = strings.TrimSpace(raw)
	switch raw {
	case "":
		return domain.FieldPatch{}, nil
	case "-":
		return domain.ClearField(), nil
	}
	t, err := time.ParseInLocation("2006-01-02 15:04", date+" "+raw, venue)
	if err != nil {
		return domain.FieldPatch{}, fmt.Errorf("invalid time %q, want HH:MM or '-': %w", raw, err)
	}
	return domain.SetTo(t.UTC()), nil
}
