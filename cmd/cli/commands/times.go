package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/mahjong-time/pkg/core/services"
)

// SubmitTimeCmd creates the submitTime command
func SubmitTimeCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submitTime <nickname> <date> <start> <end>",
		Short: "Record a free time window for a player",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			room, _ := cmd.Flags().GetString("room")

			slot, err := services.SubmitTime(app.Ctx, app.Database, app.Logger, services.SubmitTimeRequest{
				RoomCode:  app.room(room),
				Nickname:  args[0],
				Date:      args[1],
				StartTime: args[2],
				EndTime:   args[3],
			})
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Recorded %s on %s from %s to %s\n\n", slot.Nickname, slot.Date, slot.StartTime, slot.EndTime)
			return nil
		},
	}

	cmd.Flags().String("room", "", "Room code (defaults to the configured room)")

	return cmd
}

// CommonTimesCmd creates the commonTimes command
func CommonTimesCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "commonTimes",
		Short: "List submitted time windows and the windows everyone shares",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			room, _ := cmd.Flags().GetString("room")
			room = app.room(room)

			app.Logger.Debug("commonTimes command", zap.String("room_code", room))

			slots, err := services.GetTimes(app.Ctx, app.Database, app.Logger, room)
			if err != nil {
				return err
			}
			common, err := services.GetCommonTimes(app.Ctx, app.Database, app.Logger, room, app.Cfg.TouchPolicy())
			if err != nil {
				return err
			}

			fmt.Printf("\nSubmitted times (%d):\n", len(slots))
			for _, s := range slots {
				fmt.Printf("  %-12s %s %s ~ %s\n", s.Nickname, s.Date, s.StartTime, s.EndTime)
			}

			if len(common) == 0 {
				fmt.Println("\nNo common free time yet.")
				fmt.Println()
				return nil
			}

			fmt.Printf("\nCommon free time:\n")
			for _, c := range common {
				fmt.Printf("  ✓ %s %s ~ %s\n", c.Date, c.Start, c.End)
			}
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().String("room", "", "Room code (defaults to the configured room)")

	return cmd
}
