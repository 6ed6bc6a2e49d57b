package service

import (
	"time"

	"geotrack-backend/config"
	"geotrack-backend/internal/geofence"
	"geotrack-backend/internal/model"
	"geotrack-backend/internal/repository"
)

// Notifier is told about decided records so the worker can be emailed.
// Implementations must not block the caller.
type Notifier interface {
	NotifyStatusChange(record model.AttendanceRecord)
}

// SubmitInput is everything a clock-in needs. Position is the fix the
// client acquired; Address is the cached reverse-geocoded display string.
type SubmitInput struct {
	UserID     string
	UserName   string
	Position   *geofence.Position
	Address    string
	PhotoURL   string
	Notes      string
	DeviceInfo string
}

type AttendanceService struct {
	repo     repository.AttendanceRepository
	office   config.Office
	notifier Notifier

	// overridable clock for tests
	now func() time.Time
}

func NewAttendanceService(repo repository.AttendanceRepository, office config.Office, notifier Notifier) *AttendanceService {
	return &AttendanceService{
		repo:     repo,
		office:   office,
		notifier: notifier,
		now:      time.Now,
	}
}

// Submit validates the input, measures the fix against the configured
// office and persists a new pending record. The distance is computed here,
// once, and never recomputed afterwards.
func (s *AttendanceService) Submit(input SubmitInput) (*model.AttendanceRecord, error) {
	if input.UserID == "" {
		return nil, ErrMissingUser
	}
	if input.Position == nil {
		return nil, ErrMissingLocation
	}

	verdict := geofence.Evaluate(
		*input.Position,
		geofence.Position{Lat: s.office.Latitude, Lng: s.office.Longitude},
		s.office.RadiusMeter,
	)

	record := model.AttendanceRecord{
		UserID:             input.UserID,
		UserName:           input.UserName,
		Timestamp:          s.now().UnixMilli(),
		Latitude:           input.Position.Lat,
		Longitude:          input.Position.Lng,
		DistanceFromOffice: verdict.DistanceMeters,
		Address:            input.Address,
		PhotoURL:           input.PhotoURL,
		Notes:              input.Notes,
		Status:             model.StatusPending,
		DeviceInfo:         input.DeviceInfo,
	}

	if err := s.repo.Append(&record); err != nil {
		return nil, err
	}
	return &record, nil
}

// UpdateStatus moves a pending record to approved or rejected. Only an
// admin principal may call it; terminal records are immutable.
func (s *AttendanceService) UpdateStatus(id, status string, actingUser model.User) error {
	if !actingUser.IsAdmin() {
		return ErrNotAdmin
	}
	if status != model.StatusApproved && status != model.StatusRejected {
		return ErrInvalidTransition
	}

	record, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if record.IsTerminal() {
		return ErrInvalidTransition
	}

	err = s.repo.UpdateStatus(id, model.StatusPending, status)
	if err == repository.ErrNotFound {
		// The record existed a moment ago, so another reviewer won the
		// race and decided it first.
		return ErrInvalidTransition
	}
	if err != nil {
		return err
	}

	if s.notifier != nil {
		record.Status = status
		s.notifier.NotifyStatusChange(*record)
	}
	return nil
}

// Query lists records newest first, optionally narrowed to one user or
// one status.
func (s *AttendanceService) Query(filter repository.Filter) ([]model.AttendanceRecord, error) {
	return s.repo.Query(filter)
}

// PendingQueue is the verification queue: every record awaiting an admin
// decision.
func (s *AttendanceService) PendingQueue() ([]model.AttendanceRecord, error) {
	return s.repo.Query(repository.Filter{Status: model.StatusPending})
}

// HistoryFor lists the caller's own records.
func (s *AttendanceService) HistoryFor(userID string) ([]model.AttendanceRecord, error) {
	return s.repo.Query(repository.Filter{UserID: userID})
}

// All returns every stored record, for the admin export.
func (s *AttendanceService) All() ([]model.AttendanceRecord, error) {
	return s.repo.List()
}
