package api

import (
	"encoding/json"

	"github.com/jakechorley/mahjong-time/pkg/core/availability"
)

// ErrorResponse is returned for every failed request
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type successResponse struct {
	Success bool `json:"success"`
}

type CreateRoomRequest struct {
	RoomCode string `json:"room_code"`
}

type CreateRoomResponse struct {
	Success  bool   `json:"success"`
	RoomCode string `json:"room_code"`
}

type CheckRoomResponse struct {
	Success bool `json:"success"`
	Exists  bool `json:"exists"`
}

type SubmitTimeRequest struct {
	RoomCode  string `json:"room_code"`
	Nickname  string `json:"nickname"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type TimeItem struct {
	Nickname  string `json:"nickname"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type TimesResponse struct {
	Success bool       `json:"success"`
	Times   []TimeItem `json:"times"`
}

type CommonTimeItem struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type CommonTimesResponse struct {
	Success     bool             `json:"success"`
	CommonTimes []CommonTimeItem `json:"common_times"`
}

type EntryItem struct {
	Nickname  string `json:"nickname"`
	Date      string `json:"date"`
	Segment   string `json:"segment"`
	Available int    `json:"available"`
}

type CommonSlotItem struct {
	Date    string `json:"date"`
	Segment string `json:"segment"`
}

type MonthAvailabilityResponse struct {
	Success      bool             `json:"success"`
	Year         int              `json:"year"`
	Month        int              `json:"month"`
	RoomCode     string           `json:"room_code"`
	Participants []string         `json:"participants"`
	Entries      []EntryItem      `json:"entries"`
	Common       []CommonSlotItem `json:"common"`
}

// BatchRequest keeps changes raw so a non-list value can be rejected explicitly
type BatchRequest struct {
	RoomCode string          `json:"room_code"`
	Nickname string          `json:"nickname"`
	Changes  json.RawMessage `json:"changes"`
}

type RecurringRequest struct {
	RoomCode  string `json:"room_code"`
	Nickname  string `json:"nickname"`
	RRule     string `json:"rrule"`
	Segment   string `json:"segment"`
	Available any    `json:"available"`
}

type BatchResponse struct {
	Success bool                   `json:"success"`
	Applied int                    `json:"applied"`
	Skipped []availability.Skipped `json:"skipped"`
}
