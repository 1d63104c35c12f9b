package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/mahjong-time/pkg/core/availability"
	"github.com/jakechorley/mahjong-time/pkg/core/services"
)

// SetAvailabilityCmd creates the setAvailability command
func SetAvailabilityCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "setAvailability <nickname> [<date>/<segment>=<0|1>...]",
		Short: "Mark cells of the availability grid for a player",
		Long: `Mark cells of the availability grid for a player.

Each change is written as date/segment=value, for example 2026-01-24/evening=1.
With --rrule the dates come from a recurrence rule instead, for example
  setAvailability "Player 1" --rrule "DTSTART=20260102T000000Z;FREQ=WEEKLY;BYDAY=FR;COUNT=4" --segment evening`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nickname := args[0]
			room, _ := cmd.Flags().GetString("room")
			rule, _ := cmd.Flags().GetString("rrule")
			segment, _ := cmd.Flags().GetString("segment")
			unavailable, _ := cmd.Flags().GetBool("unavailable")

			app.Logger.Debug("setAvailability command",
				zap.String("nickname", nickname),
				zap.Int("changes", len(args)-1),
				zap.String("rrule", rule))

			var result *services.BatchResult
			var err error
			if rule != "" {
				result, err = services.SetRecurringAvailability(
					app.Ctx, app.Database, app.Cfg.Players, app.Logger,
					app.room(room), nickname, rule, segment, !unavailable,
				)
			} else {
				changes := make([]availability.Change, 0, len(args)-1)
				for _, arg := range args[1:] {
					changes = append(changes, parseChangeArg(arg))
				}
				result, err = services.SetAvailabilityBatch(
					app.Ctx, app.Database, app.Cfg.Players, app.Logger,
					app.room(room), nickname, changes,
				)
			}
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Saved %d cells for %s\n", result.Applied, nickname)
			if len(result.Skipped) > 0 {
				fmt.Printf("⚠️  Skipped %d changes:\n", len(result.Skipped))
				for _, s := range result.Skipped {
					fmt.Printf("  ✗ #%d: %s\n", s.Index+1, s.Reason)
				}
			}
			if !app.Persistent {
				fmt.Println("\nNote: no databaseURL configured, changes were not persisted.")
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().String("room", "", "Room code (defaults to the configured room)")
	cmd.Flags().String("rrule", "", "Recurrence rule generating the dates to mark")
	cmd.Flags().String("segment", "evening", "Segment to mark when using --rrule")
	cmd.Flags().Bool("unavailable", false, "Mark recurring dates as unavailable instead of available")

	return cmd
}

// parseChangeArg parses date/segment=value. Malformed parts are left empty so the batch skips them.
func parseChangeArg(arg string) availability.Change {
	var ch availability.Change

	cell, value, hasValue := strings.Cut(arg, "=")
	if !hasValue {
		value = "1"
	}
	date, segment, ok := strings.Cut(cell, "/")
	if !ok {
		return ch
	}

	ch.Date = &date
	ch.Segment = &segment
	ch.Available = value
	return ch
}
