package handler

import (
	"sync"

	"geotrack-backend/config"
	"geotrack-backend/internal/geocode"
	"geotrack-backend/internal/geofence"
	"geotrack-backend/internal/location"

	"github.com/gofiber/fiber/v2"
)

// LocationHandler keeps one live tracker session per authenticated user.
// Client position pings feed the session; the status endpoint serves the
// last accepted fix and its geofence verdict.
type LocationHandler struct {
	office   config.Office
	resolver *geocode.Resolver

	mu       sync.Mutex
	sessions map[string]*trackerSession
}

type trackerSession struct {
	source  *location.PushSource
	tracker *location.Tracker
}

func NewLocationHandler(office config.Office, resolver *geocode.Resolver) *LocationHandler {
	return &LocationHandler{
		office:   office,
		resolver: resolver,
		sessions: make(map[string]*trackerSession),
	}
}

func (h *LocationHandler) session(userID string) *trackerSession {
	h.mu.Lock()
	defer h.mu.Unlock()

	if s, ok := h.sessions[userID]; ok {
		return s
	}
	src := location.NewPushSource()
	s := &trackerSession{source: src, tracker: location.NewTracker(src)}
	s.tracker.Start(nil)
	h.sessions[userID] = s
	return s
}

type PingRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Denied    bool     `json:"denied"` // client reports sensor denial
}

// Ping feeds one fix (or a denial) into the caller's tracker and answers
// with the geofence verdict for that fix.
func (h *LocationHandler) Ping(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	var req PingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	s := h.session(userID)

	if req.Denied {
		s.source.Fail(location.ErrUnavailable)
		return c.JSON(fiber.Map{"message": "Location error recorded"})
	}

	if req.Latitude == nil || req.Longitude == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Latitude and longitude are required"})
	}

	s.source.Push(*req.Latitude, *req.Longitude)

	pos := geofence.Position{Lat: *req.Latitude, Lng: *req.Longitude}
	verdict := geofence.Evaluate(pos,
		geofence.Position{Lat: h.office.Latitude, Lng: h.office.Longitude},
		h.office.RadiusMeter)

	return c.JSON(fiber.Map{
		"office":  h.office.Name,
		"verdict": verdict,
		"address": h.resolver.Resolve(pos.Lat, pos.Lng),
	})
}

// Status reports the last accepted fix for the caller, or the pending
// location error when the source is unavailable.
func (h *LocationHandler) Status(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	s := h.session(userID)

	if err := s.tracker.LastError(); err != nil {
		return c.JSON(fiber.Map{"error": "Location access required for clock-in"})
	}

	pos, ok := s.tracker.Current()
	if !ok {
		return c.JSON(fiber.Map{"message": "No fix yet"})
	}

	verdict := geofence.Evaluate(
		geofence.Position{Lat: pos.Lat, Lng: pos.Lng},
		geofence.Position{Lat: h.office.Latitude, Lng: h.office.Longitude},
		h.office.RadiusMeter)

	return c.JSON(fiber.Map{
		"position": pos,
		"office":   h.office.Name,
		"verdict":  verdict,
	})
}

// EndSession releases the caller's tracker. No further updates are
// delivered once it returns.
func (h *LocationHandler) EndSession(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	h.mu.Lock()
	s, ok := h.sessions[userID]
	delete(h.sessions, userID)
	h.mu.Unlock()

	if ok {
		s.tracker.Stop()
		s.source.Close()
	}
	return c.JSON(fiber.Map{"message": "Tracking stopped"})
}
