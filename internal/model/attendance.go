package model

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// AttendanceRecord is one clock-in. Status starts at pending and may only
// move to approved or rejected; both are terminal. DistanceFromOffice is
// fixed at submission time and never recomputed.
type AttendanceRecord struct {
	ID                 string  `json:"id" gorm:"primaryKey;size:36"`
	UserID             string  `json:"user_id" gorm:"size:36;index;not null"`
	UserName           string  `json:"user_name"`
	Timestamp          int64   `json:"timestamp" gorm:"index"` // epoch millis
	Latitude           float64 `json:"latitude"`
	Longitude          float64 `json:"longitude"`
	DistanceFromOffice float64 `json:"distance_from_office"` // meters
	Address            string  `json:"address,omitempty"`
	PhotoURL           string  `json:"photo_url,omitempty"`
	Notes              string  `json:"notes,omitempty"`
	Status             string  `json:"status" gorm:"size:16;index;default:pending"`
	DeviceInfo         string  `json:"device_info"`
}

// IsTerminal reports whether the record can no longer change status.
func (r AttendanceRecord) IsTerminal() bool {
	return r.Status == StatusApproved || r.Status == StatusRejected
}
