package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/jakechorley/mahjong-time/internal/config"
	"github.com/jakechorley/mahjong-time/pkg/db"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg      *config.Config
	Database db.Database
	Logger   *zap.Logger
	Ctx      context.Context
	// Persistent is false when Database is the in-memory store, so writes vanish on exit
	Persistent bool
}

// room returns the room flag value or the configured default room
func (app *AppContext) room(flag string) string {
	if flag == "" {
		return app.Cfg.DefaultRoomCode
	}
	return flag
}
