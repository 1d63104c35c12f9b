package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/jakechorley/mahjong-time/internal/config"
	"github.com/jakechorley/mahjong-time/pkg/core/availability"
	"github.com/jakechorley/mahjong-time/pkg/core/services"
	"github.com/jakechorley/mahjong-time/pkg/db"
)

type Handler struct {
	store  db.Database
	cfg    *config.Config
	logger *zap.Logger
}

func NewHandler(store db.Database, cfg *config.Config, logger *zap.Logger) *Handler {
	return &Handler{
		store:  store,
		cfg:    cfg,
		logger: logger,
	}
}

func (h *Handler) room(code string) string {
	if code == "" {
		return h.cfg.DefaultRoomCode
	}
	return code
}

// decodeOptional decodes a JSON body, treating an empty body as an empty object
func decodeOptional(r *http.Request, v any) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	return json.Unmarshal(body, v)
}

// POST /api/create-room
func (h *Handler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req CreateRoomRequest
	if err := decodeOptional(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	writeJSON(w, http.StatusOK, CreateRoomResponse{
		Success:  true,
		RoomCode: services.CreateRoom(h.room(req.RoomCode)),
	})
}

// GET /api/check-room/{room_code}
func (h *Handler) CheckRoom(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, CheckRoomResponse{
		Success: true,
		Exists:  services.CheckRoom(chi.URLParam(r, "room_code")),
	})
}

// POST /api/submit-time
func (h *Handler) SubmitTime(w http.ResponseWriter, r *http.Request) {
	var req SubmitTimeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	_, err := services.SubmitTime(r.Context(), h.store, h.logger, services.SubmitTimeRequest{
		RoomCode:  h.room(req.RoomCode),
		Nickname:  req.Nickname,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		h.writeServiceError(w, r, "submit_time", err)
		return
	}

	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

// GET /api/get-times/{room_code}
func (h *Handler) GetTimes(w http.ResponseWriter, r *http.Request) {
	slots, err := services.GetTimes(r.Context(), h.store, h.logger, h.room(chi.URLParam(r, "room_code")))
	if err != nil {
		h.writeServiceError(w, r, "get_times", err)
		return
	}

	resp := TimesResponse{Success: true, Times: make([]TimeItem, 0, len(slots))}
	for _, s := range slots {
		resp.Times = append(resp.Times, TimeItem{
			Nickname:  s.Nickname,
			Date:      s.Date,
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

// GET /api/get-common-times/{room_code}
func (h *Handler) GetCommonTimes(w http.ResponseWriter, r *http.Request) {
	common, err := services.GetCommonTimes(r.Context(), h.store, h.logger, h.room(chi.URLParam(r, "room_code")), h.cfg.TouchPolicy())
	if err != nil {
		h.writeServiceError(w, r, "get_common_times", err)
		return
	}

	resp := CommonTimesResponse{Success: true, CommonTimes: make([]CommonTimeItem, 0, len(common))}
	for _, c := range common {
		resp.CommonTimes = append(resp.CommonTimes, CommonTimeItem{
			Date:      c.Date,
			StartTime: c.Start.String(),
			EndTime:   c.End.String(),
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

// GET /api/availability/month?year=&month=&room_code=
func (h *Handler) MonthAvailability(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	year, err := strconv.Atoi(q.Get("year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, services.ErrInvalidYear.Error())
		return
	}
	month, err := strconv.Atoi(q.Get("month"))
	if err != nil {
		writeError(w, http.StatusBadRequest, services.ErrInvalidMonth.Error())
		return
	}

	result, err := services.GetMonthAvailability(r.Context(), h.store, h.logger, h.room(q.Get("room_code")), year, month)
	if err != nil {
		h.writeServiceError(w, r, "month_availability", err)
		return
	}

	resp := MonthAvailabilityResponse{
		Success:      true,
		Year:         result.Year,
		Month:        int(result.Month),
		RoomCode:     result.RoomCode,
		Participants: result.Grid.Participants,
		Entries:      make([]EntryItem, 0, len(result.Grid.Entries)),
		Common:       make([]CommonSlotItem, 0, len(result.Grid.Common)),
	}
	for _, e := range result.Grid.Entries {
		available := 0
		if e.Available {
			available = 1
		}
		resp.Entries = append(resp.Entries, EntryItem{
			Nickname:  e.Participant,
			Date:      e.Date,
			Segment:   string(e.Segment),
			Available: available,
		})
	}
	for _, c := range result.Grid.Common {
		resp.Common = append(resp.Common, CommonSlotItem{Date: c.Date, Segment: string(c.Segment)})
	}

	writeJSON(w, http.StatusOK, resp)
}

// POST /api/availability/batch
func (h *Handler) SetAvailabilityBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if err := decodeOptional(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Nickname == "" {
		writeError(w, http.StatusBadRequest, "nickname is required")
		return
	}

	changes, err := decodeChanges(req.Changes)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := services.SetAvailabilityBatch(r.Context(), h.store, h.cfg.Players, h.logger, h.room(req.RoomCode), req.Nickname, changes)
	if err != nil {
		h.writeServiceError(w, r, "availability_batch", err)
		return
	}

	writeJSON(w, http.StatusOK, BatchResponse{
		Success: true,
		Applied: result.Applied,
		Skipped: result.Skipped,
	})
}

// POST /api/availability/recurring
func (h *Handler) SetRecurringAvailability(w http.ResponseWriter, r *http.Request) {
	var req RecurringRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.RRule == "" || req.Segment == "" {
		writeError(w, http.StatusBadRequest, "rrule and segment are required")
		return
	}

	result, err := services.SetRecurringAvailability(
		r.Context(),
		h.store,
		h.cfg.Players,
		h.logger,
		h.room(req.RoomCode),
		req.Nickname,
		req.RRule,
		req.Segment,
		availability.CoerceAvailable(req.Available),
	)
	if err != nil {
		h.writeServiceError(w, r, "availability_recurring", err)
		return
	}

	writeJSON(w, http.StatusOK, BatchResponse{
		Success: true,
		Applied: result.Applied,
		Skipped: result.Skipped,
	})
}

// decodeChanges accepts only a JSON array. An element that is not a well-formed change object
// decodes to an empty change, which the batch then skips.
func decodeChanges(raw json.RawMessage) ([]availability.Change, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, services.ErrEmptyChanges
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(trimmed, &elements); err != nil {
		return nil, errors.New("invalid changes list")
	}

	changes := make([]availability.Change, len(elements))
	for i, el := range elements {
		var ch availability.Change
		if err := json.Unmarshal(el, &ch); err != nil {
			continue
		}
		changes[i] = ch
	}
	return changes, nil
}
