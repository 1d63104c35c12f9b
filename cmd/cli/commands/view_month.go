package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/mahjong-time/pkg/core/availability"
	"github.com/jakechorley/mahjong-time/pkg/core/model"
	"github.com/jakechorley/mahjong-time/pkg/core/services"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorDim    = "\033[2m"
)

// ViewMonthCmd creates the viewMonth command
func ViewMonthCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "viewMonth <year> <month>",
		Short: "Show the availability grid of a month and the slots everyone is free",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("year must be a number: %w", err)
			}
			month, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("month must be a number: %w", err)
			}
			room, _ := cmd.Flags().GetString("room")

			app.Logger.Debug("viewMonth command", zap.Int("year", year), zap.Int("month", month))

			result, err := services.GetMonthAvailability(app.Ctx, app.Database, app.Logger, app.room(room), year, month)
			if err != nil {
				return err
			}

			printMonth(result)
			return nil
		},
	}

	cmd.Flags().String("room", "", "Room code (defaults to the configured room)")

	return cmd
}

func printMonth(result *services.MonthAvailabilityResult) {
	grid := result.Grid
	fmt.Printf("\n%s %d, room %s\n", result.Month, result.Year, result.RoomCode)

	if len(grid.Participants) == 0 {
		fmt.Println("\nNobody has marked any availability this month.")
		return
	}
	fmt.Printf("Active players: %v\n\n", grid.Participants)

	counts := countAvailable(grid)
	common := make(map[model.SlotKey]bool, len(grid.Common))
	for _, c := range grid.Common {
		common[c] = true
	}

	fmt.Printf("%-12s", "Date")
	for _, seg := range model.Segments {
		fmt.Printf("%-11s", seg)
	}
	fmt.Println()

	start := time.Date(result.Year, result.Month, 1, 0, 0, 0, 0, time.UTC)
	for d := start; d.Month() == result.Month; d = d.AddDate(0, 0, 1) {
		date := d.Format(model.DateLayout)
		fmt.Printf("%-12s", date)
		for _, seg := range model.Segments {
			key := model.SlotKey{Date: date, Segment: seg}
			n := counts[key]
			cell := fmt.Sprintf("%d/%d", n, len(grid.Participants))
			fmt.Printf("%s%-11s%s", cellColor(n, len(grid.Participants), common[key]), cell, colorReset)
		}
		fmt.Println()
	}

	fmt.Printf("\nEveryone free: %d slots\n", len(grid.Common))
	for _, c := range grid.Common {
		fmt.Printf("  ✓ %s %s\n", c.Date, c.Segment)
	}
	fmt.Println()
}

// countAvailable returns how many players are free in each cell
func countAvailable(grid *availability.MonthGrid) map[model.SlotKey]int {
	counts := make(map[model.SlotKey]int)
	for _, e := range grid.Entries {
		if e.Available {
			counts[model.SlotKey{Date: e.Date, Segment: e.Segment}]++
		}
	}
	return counts
}

// cellColor highlights common slots green, partly free slots yellow and empty slots dim
func cellColor(available, total int, isCommon bool) string {
	switch {
	case isCommon:
		return colorGreen
	case available > 0 && available < total:
		return colorYellow
	default:
		return colorDim
	}
}
