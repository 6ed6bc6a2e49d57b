package handler

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"geotrack-backend/internal/export"
	"geotrack-backend/internal/geocode"
	"geotrack-backend/internal/geofence"
	"geotrack-backend/internal/model"
	"geotrack-backend/internal/repository"
	"geotrack-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AttendanceHandler struct {
	svc      *service.AttendanceService
	resolver *geocode.Resolver
}

func NewAttendanceHandler(svc *service.AttendanceService, resolver *geocode.Resolver) *AttendanceHandler {
	return &AttendanceHandler{svc: svc, resolver: resolver}
}

type SubmitRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Address   string   `json:"address"`
	PhotoURL  string   `json:"photo_url"`
	Notes     string   `json:"notes"`
}

// Submit is the clock-in endpoint. The photo requirement is enforced here
// as submission policy; the service only insists on identity and location.
func (h *AttendanceHandler) Submit(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	userName, _ := c.Locals("name").(string)

	var req SubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.PhotoURL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Photo required to clock in"})
	}

	var position *geofence.Position
	if req.Latitude != nil && req.Longitude != nil {
		position = &geofence.Position{Lat: *req.Latitude, Lng: *req.Longitude}
	}

	address := req.Address
	if address == "" && position != nil {
		address = h.resolver.Resolve(position.Lat, position.Lng)
	}

	record, err := h.svc.Submit(service.SubmitInput{
		UserID:     userID,
		UserName:   userName,
		Position:   position,
		Address:    address,
		PhotoURL:   req.PhotoURL,
		Notes:      req.Notes,
		DeviceInfo: c.Get("User-Agent"),
	})
	if errors.Is(err, service.ErrMissingLocation) || errors.Is(err, service.ErrMissingUser) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save clock-in"})
	}

	return c.JSON(fiber.Map{"message": "Clock-in recorded", "data": record})
}

// UploadPhoto stores the proof photo and returns its path for Submit.
func (h *AttendanceHandler) UploadPhoto(c *fiber.Ctx) error {
	file, err := c.FormFile("photo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Photo file is required"})
	}

	uploadDir := "./uploads/photos"
	if _, err := os.Stat(uploadDir); os.IsNotExist(err) {
		os.MkdirAll(uploadDir, 0755)
	}

	filename := fmt.Sprintf("proof_%d_%s", time.Now().Unix(), filepath.Base(file.Filename))
	pathFile := fmt.Sprintf("uploads/photos/%s", filename)
	if err := c.SaveFile(file, pathFile); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to store photo"})
	}

	return c.JSON(fiber.Map{"message": "Photo stored", "photo_url": pathFile})
}

// GetHistory lists the caller's own clock-ins, newest first.
func (h *AttendanceHandler) GetHistory(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	records, err := h.svc.HistoryFor(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load history"})
	}

	return c.JSON(fiber.Map{"data": records})
}

// GetPending is the admin verification queue.
func (h *AttendanceHandler) GetPending(c *fiber.Ctx) error {
	records, err := h.svc.PendingQueue()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load queue"})
	}

	return c.JSON(fiber.Map{"data": records})
}

type UpdateStatusRequest struct {
	Status string `json:"status"` // "approved" or "rejected"
}

func (h *AttendanceHandler) UpdateStatus(c *fiber.Ctx) error {
	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	actingUser := userFromLocals(c)
	err := h.svc.UpdateStatus(c.Params("id"), req.Status, actingUser)
	switch {
	case errors.Is(err, service.ErrNotAdmin):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Admin capability required"})
	case errors.Is(err, repository.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Record not found"})
	case errors.Is(err, service.ErrInvalidTransition):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Record already decided"})
	case err != nil:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update status"})
	}

	return c.JSON(fiber.Map{"message": "Status updated"})
}

// ExportCSV streams every record as the flat CSV download.
func (h *AttendanceHandler) ExportCSV(c *fiber.Ctx) error {
	records, err := h.svc.All()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load records"})
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="attendance-export.csv"`)
	return c.SendString(export.Format(records))
}

func userFromLocals(c *fiber.Ctx) model.User {
	id, _ := c.Locals("user_id").(string)
	email, _ := c.Locals("email").(string)
	name, _ := c.Locals("name").(string)
	role, _ := c.Locals("role").(string)
	return model.User{ID: id, Email: email, Name: name, Role: role}
}
