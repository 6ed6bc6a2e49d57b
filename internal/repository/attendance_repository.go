package repository

import (
	"errors"

	"geotrack-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a record id does not exist. A missing id is
// an explicit error here, not a silent no-op.
var ErrNotFound = errors.New("attendance record not found")

// Filter narrows a query; zero values mean no constraint.
type Filter struct {
	UserID string
	Status string
}

// AttendanceRepository is the durable store of clock-in records. Append
// assigns ids; callers never pick their own. Status mutation is
// conditional on the current status so concurrent reviewers cannot race a
// terminal record back to life.
type AttendanceRepository interface {
	Append(record *model.AttendanceRecord) error
	List() ([]model.AttendanceRecord, error)
	Query(filter Filter) ([]model.AttendanceRecord, error)
	GetByID(id string) (*model.AttendanceRecord, error)
	UpdateStatus(id, fromStatus, toStatus string) error
}

type attendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db}
}

func (r *attendanceRepository) Append(record *model.AttendanceRecord) error {
	// 128-bit random id, collision-resistant across tabs/processes.
	record.ID = uuid.NewString()
	return r.db.Create(record).Error
}

func (r *attendanceRepository) List() ([]model.AttendanceRecord, error) {
	var records []model.AttendanceRecord
	err := r.db.Order("timestamp desc, id").Find(&records).Error
	return records, err
}

func (r *attendanceRepository) Query(filter Filter) ([]model.AttendanceRecord, error) {
	q := r.db.Order("timestamp desc, id")
	if filter.UserID != "" {
		q = q.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var records []model.AttendanceRecord
	err := q.Find(&records).Error
	return records, err
}

func (r *attendanceRepository) GetByID(id string) (*model.AttendanceRecord, error) {
	var record model.AttendanceRecord
	err := r.db.Where("id = ?", id).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *attendanceRepository) UpdateStatus(id, fromStatus, toStatus string) error {
	res := r.db.Model(&model.AttendanceRecord{}).
		Where("id = ? AND status = ?", id, fromStatus).
		Update("status", toStatus)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
