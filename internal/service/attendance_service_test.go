package service

import (
	"sort"
	"testing"
	"time"

	"geotrack-backend/config"
	"geotrack-backend/internal/geofence"
	"geotrack-backend/internal/model"
	"geotrack-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepo is an in-memory AttendanceRepository with the same contract as
// the gorm-backed one.
type fakeRepo struct {
	records map[string]model.AttendanceRecord
	failing bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{records: make(map[string]model.AttendanceRecord)}
}

func (f *fakeRepo) Append(record *model.AttendanceRecord) error {
	if f.failing {
		return assert.AnError
	}
	record.ID = uuid.NewString()
	f.records[record.ID] = *record
	return nil
}

func (f *fakeRepo) List() ([]model.AttendanceRecord, error) {
	return f.Query(repository.Filter{})
}

func (f *fakeRepo) Query(filter repository.Filter) ([]model.AttendanceRecord, error) {
	var out []model.AttendanceRecord
	for _, r := range f.records {
		if filter.UserID != "" && r.UserID != filter.UserID {
			continue
		}
		if filter.Status != "" && r.Status != filter.Status {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Timestamp != out[j].Timestamp {
			return out[i].Timestamp > out[j].Timestamp
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (f *fakeRepo) GetByID(id string) (*model.AttendanceRecord, error) {
	r, ok := f.records[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &r, nil
}

func (f *fakeRepo) UpdateStatus(id, fromStatus, toStatus string) error {
	r, ok := f.records[id]
	if !ok || r.Status != fromStatus {
		return repository.ErrNotFound
	}
	r.Status = toStatus
	f.records[id] = r
	return nil
}

type recordingNotifier struct {
	notified []model.AttendanceRecord
}

func (n *recordingNotifier) NotifyStatusChange(record model.AttendanceRecord) {
	n.notified = append(n.notified, record)
}

var testOffice = config.Office{
	Name:        "HQ",
	Latitude:    37.7750,
	Longitude:   -122.4200,
	RadiusMeter: 100,
}

func newTestService(repo repository.AttendanceRepository) *AttendanceService {
	return NewAttendanceService(repo, testOffice, nil)
}

func submitAt(t *testing.T, svc *AttendanceService, lat, lng float64) *model.AttendanceRecord {
	t.Helper()
	rec, err := svc.Submit(SubmitInput{
		UserID:   "worker-1",
		UserName: "Dana",
		Position: &geofence.Position{Lat: lat, Lng: lng},
	})
	require.NoError(t, err)
	return rec
}

func TestSubmitAssignsFreshIDAndPendingStatus(t *testing.T) {
	svc := newTestService(newFakeRepo())

	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		rec := submitAt(t, svc, 37.7749, -122.4194)
		assert.Equal(t, model.StatusPending, rec.Status)
		assert.False(t, seen[rec.ID], "id %q assigned twice", rec.ID)
		seen[rec.ID] = true
	}
}

func TestSubmitComputesDistanceFromOffice(t *testing.T) {
	svc := newTestService(newFakeRepo())

	rec := submitAt(t, svc, 37.7749, -122.4194)
	assert.InDelta(t, 55, rec.DistanceFromOffice, 5)

	// Submitting from the office itself.
	atOffice := submitAt(t, svc, testOffice.Latitude, testOffice.Longitude)
	assert.Equal(t, float64(0), atOffice.DistanceFromOffice)
}

func TestSubmitValidation(t *testing.T) {
	svc := newTestService(newFakeRepo())

	_, err := svc.Submit(SubmitInput{UserName: "Dana", Position: &geofence.Position{Lat: 1, Lng: 1}})
	assert.ErrorIs(t, err, ErrMissingUser)

	_, err = svc.Submit(SubmitInput{UserID: "worker-1", UserName: "Dana"})
	assert.ErrorIs(t, err, ErrMissingLocation)
}

func TestSubmitPersistenceFailureWritesNothing(t *testing.T) {
	repo := newFakeRepo()
	repo.failing = true
	svc := newTestService(repo)

	_, err := svc.Submit(SubmitInput{
		UserID:   "worker-1",
		Position: &geofence.Position{Lat: 1, Lng: 1},
	})
	require.Error(t, err)
	assert.Empty(t, repo.records)
}

func TestSubmitStampsTimestamp(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	fixed := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	rec := submitAt(t, svc, 1, 1)
	assert.Equal(t, fixed.UnixMilli(), rec.Timestamp)
}

func TestUpdateStatusRequiresAdmin(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	rec := submitAt(t, svc, 1, 1)

	worker := model.User{ID: "worker-1", Role: model.RoleWorker}
	err := svc.UpdateStatus(rec.ID, model.StatusApproved, worker)
	assert.ErrorIs(t, err, ErrNotAdmin)

	stored, _ := repo.GetByID(rec.ID)
	assert.Equal(t, model.StatusPending, stored.Status)
}

func TestUpdateStatusTerminalIsImmutable(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	rec := submitAt(t, svc, 1, 1)

	admin := model.User{ID: "admin-1", Role: model.RoleAdmin}
	require.NoError(t, svc.UpdateStatus(rec.ID, model.StatusRejected, admin))

	// Second decision must fail and leave the first one standing.
	err := svc.UpdateStatus(rec.ID, model.StatusApproved, admin)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	stored, _ := repo.GetByID(rec.ID)
	assert.Equal(t, model.StatusRejected, stored.Status)
}

func TestUpdateStatusRejectsOtherTargets(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	rec := submitAt(t, svc, 1, 1)

	admin := model.User{ID: "admin-1", Role: model.RoleAdmin}
	err := svc.UpdateStatus(rec.ID, model.StatusPending, admin)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	err = svc.UpdateStatus(rec.ID, "archived", admin)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUpdateStatusUnknownID(t *testing.T) {
	svc := newTestService(newFakeRepo())
	admin := model.User{ID: "admin-1", Role: model.RoleAdmin}

	err := svc.UpdateStatus("nope", model.StatusApproved, admin)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUpdateStatusNotifies(t *testing.T) {
	repo := newFakeRepo()
	notifier := &recordingNotifier{}
	svc := NewAttendanceService(repo, testOffice, notifier)
	rec := submitAt(t, svc, 1, 1)

	admin := model.User{ID: "admin-1", Role: model.RoleAdmin}
	require.NoError(t, svc.UpdateStatus(rec.ID, model.StatusApproved, admin))

	require.Len(t, notifier.notified, 1)
	assert.Equal(t, rec.ID, notifier.notified[0].ID)
	assert.Equal(t, model.StatusApproved, notifier.notified[0].Status)
}

func TestQueryFiltersAndSorts(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	svc.now = func() time.Time { return time.Unix(100, 0) }
	first := submitAt(t, svc, 1, 1)
	svc.now = func() time.Time { return time.Unix(200, 0) }
	second := submitAt(t, svc, 2, 2)

	other, err := svc.Submit(SubmitInput{
		UserID:   "worker-2",
		UserName: "Sam",
		Position: &geofence.Position{Lat: 3, Lng: 3},
	})
	require.NoError(t, err)

	admin := model.User{ID: "admin-1", Role: model.RoleAdmin}
	require.NoError(t, svc.UpdateStatus(other.ID, model.StatusApproved, admin))

	mine, err := svc.HistoryFor("worker-1")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	// Newest first.
	assert.Equal(t, second.ID, mine[0].ID)
	assert.Equal(t, first.ID, mine[1].ID)

	pending, err := svc.PendingQueue()
	require.NoError(t, err)
	require.Len(t, pending, 2)
	for _, r := range pending {
		assert.Equal(t, model.StatusPending, r.Status)
	}
}
