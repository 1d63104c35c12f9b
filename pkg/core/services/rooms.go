package services

import "github.com/jakechorley/mahjong-time/pkg/core/model"

// Rooms are kept only so older clients keep working: every room code exists and
// creating one just echoes the code back.

// CreateRoom returns the room code the client asked for, or the default room
func CreateRoom(roomCode string) string {
	return roomOrDefault(roomCode)
}

// CheckRoom always reports the room as existing
func CheckRoom(roomCode string) bool {
	return true
}

func roomOrDefault(roomCode string) string {
	if roomCode == "" {
		return model.DefaultRoomCode
	}
	return roomCode
}
