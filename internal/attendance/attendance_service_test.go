package attendance_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-attendance/internal/attendance"
	attendanceerrors "go-attendance/internal/attendance/errors"
	attendancemock "go-attendance/internal/attendance/mock"
	mediamock "go-attendance/internal/media/mock"
	"go-attendance/internal/messaging/kafka"
	kafkamock "go-attendance/internal/messaging/kafka/mock"
	"go-attendance/internal/user"
	usererrors "go-attendance/internal/user/errors"
	usermock "go-attendance/internal/user/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	testNow = time.Date(2024, 3, 11, 17, 30, 0, 0, time.UTC)
	testDay = time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
)

type serviceDeps struct {
	sqlMock   sqlmock.Sqlmock
	service   attendance.Service
	repo      *attendancemock.MockRepository
	directory *usermock.MockRepository
	media     *mediamock.MockGateway
	outbox    *kafkamock.MockOutboxRepository
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := attendancemock.NewMockRepository(ctrl)
	directory := usermock.NewMockRepository(ctrl)
	media := mediamock.NewMockGateway(ctrl)
	outbox := kafkamock.NewMockOutboxRepository(ctrl)

	svc := attendance.NewService(db, repo, directory, media, outbox, time.UTC, zap.NewNop())
	attendance.SetClock(svc, func() time.Time { return testNow })

	return &serviceDeps{
		sqlMock:   sqlMock,
		service:   svc,
		repo:      repo,
		directory: directory,
		media:     media,
		outbox:    outbox,
	}
}

func testEmployee() *user.User {
	return &user.User{EmployeeID: "EMP001", FullName: "Asha Rao", Role: user.RoleEmployee, IsActive: true}
}

func openRecord(checkIn time.Time) *attendance.Attendance {
	return &attendance.Attendance{
		ID:              uuid.New(),
		EmployeeID:      "EMP001",
		EmployeeName:    "Asha Rao",
		AttendanceDate:  testDay,
		CheckInTime:     checkIn,
		CheckInPhotoURL: "https://bucket/checkin.jpg",
	}
}

func TestAttendanceService_CheckIn(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		d := setupServiceTest(t)

		d.repo.EXPECT().FindByEmployeeAndDate(ctx, "EMP001", testDay).Return(nil, gorm.ErrRecordNotFound)
		d.media.EXPECT().StorePhoto(ctx, "checkin", "EMP001", testDay, "aGVsbG8=").Return("https://bucket/checkin.jpg")
		d.sqlMock.ExpectBegin()
		d.repo.EXPECT().WithTx(gomock.Any()).Return(d.repo)
		d.repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, a *attendance.Attendance) error {
			assert.Equal(t, "EMP001", a.EmployeeID)
			assert.Equal(t, "Asha Rao", a.EmployeeName)
			assert.Equal(t, testDay, a.AttendanceDate)
			assert.Equal(t, testNow, a.CheckInTime)
			assert.Nil(t, a.CheckOutTime)
			return nil
		})
		d.outbox.EXPECT().WithTx(gomock.Any()).Return(d.outbox)
		d.outbox.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, e kafka.OutboxEvent) error {
			assert.Equal(t, "attendance_checked_in", e.EventType)
			assert.Equal(t, "EMP001", e.AggregateID)
			return nil
		})
		d.sqlMock.ExpectCommit()

		resp, err := d.service.CheckIn(ctx, testEmployee(), "aGVsbG8=")

		assert.NoError(t, err)
		assert.Equal(t, "Checked in successfully", resp.Message)
		assert.Equal(t, "2024-03-11", resp.Attendance.Date)
		assert.Equal(t, "https://bucket/checkin.jpg", resp.Attendance.CheckInPhotoURL)
		assert.Nil(t, resp.Attendance.CheckOutTime)
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})

	t.Run("already checked in", func(t *testing.T) {
		d := setupServiceTest(t)

		d.repo.EXPECT().FindByEmployeeAndDate(ctx, "EMP001", testDay).Return(openRecord(testNow), nil)

		_, err := d.service.CheckIn(ctx, testEmployee(), "aGVsbG8=")

		assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyCheckedIn)
	})

	t.Run("lost race on unique index", func(t *testing.T) {
		d := setupServiceTest(t)

		d.repo.EXPECT().FindByEmployeeAndDate(ctx, "EMP001", testDay).Return(nil, gorm.ErrRecordNotFound)
		d.media.EXPECT().StorePhoto(ctx, "checkin", "EMP001", testDay, "aGVsbG8=").Return("ref")
		d.sqlMock.ExpectBegin()
		d.repo.EXPECT().WithTx(gomock.Any()).Return(d.repo)
		d.repo.EXPECT().Create(ctx, gomock.Any()).
			Return(&pgconn.PgError{Code: "23505", ConstraintName: "uq_attendance_employee_date"})
		d.sqlMock.ExpectRollback()

		_, err := d.service.CheckIn(ctx, testEmployee(), "aGVsbG8=")

		assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyCheckedIn)
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})

	t.Run("lookup error", func(t *testing.T) {
		d := setupServiceTest(t)
		dbErr := errors.New("connection reset")

		d.repo.EXPECT().FindByEmployeeAndDate(ctx, "EMP001", testDay).Return(nil, dbErr)

		_, err := d.service.CheckIn(ctx, testEmployee(), "aGVsbG8=")

		assert.ErrorIs(t, err, dbErr)
	})
}

func TestAttendanceService_CheckOut(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		d := setupServiceTest(t)
		row := openRecord(testNow.Add(-8*time.Hour - 20*time.Minute))

		d.repo.EXPECT().FindByEmployeeAndDate(ctx, "EMP001", testDay).Return(row, nil)
		d.media.EXPECT().StorePhoto(ctx, "checkout", "EMP001", testDay, "aGVsbG8=").Return("https://bucket/checkout.jpg")
		d.sqlMock.ExpectBegin()
		d.repo.EXPECT().WithTx(gomock.Any()).Return(d.repo)
		d.repo.EXPECT().CompleteCheckOut(ctx, row.ID, testNow, "https://bucket/checkout.jpg", 8.33).Return(true, nil)
		d.outbox.EXPECT().WithTx(gomock.Any()).Return(d.outbox)
		d.outbox.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		d.sqlMock.ExpectCommit()

		resp, err := d.service.CheckOut(ctx, testEmployee(), "aGVsbG8=")

		assert.NoError(t, err)
		assert.Equal(t, "Checked out successfully", resp.Message)
		assert.Equal(t, 8.33, resp.TotalHours)
		if assert.NotNil(t, resp.Attendance.CheckOutTime) {
			assert.Equal(t, "2024-03-11T17:30:00Z", *resp.Attendance.CheckOutTime)
		}
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})

	t.Run("no check in", func(t *testing.T) {
		d := setupServiceTest(t)

		d.repo.EXPECT().FindByEmployeeAndDate(ctx, "EMP001", testDay).Return(nil, gorm.ErrRecordNotFound)

		_, err := d.service.CheckOut(ctx, testEmployee(), "aGVsbG8=")

		assert.ErrorIs(t, err, attendanceerrors.ErrNoCheckInFound)
	})

	t.Run("already checked out", func(t *testing.T) {
		d := setupServiceTest(t)
		row := openRecord(testNow.Add(-time.Hour))
		out := testNow.Add(-time.Minute)
		row.CheckOutTime = &out

		d.repo.EXPECT().FindByEmployeeAndDate(ctx, "EMP001", testDay).Return(row, nil)

		_, err := d.service.CheckOut(ctx, testEmployee(), "aGVsbG8=")

		assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyCheckedOut)
	})

	t.Run("concurrent check out wins", func(t *testing.T) {
		d := setupServiceTest(t)
		row := openRecord(testNow.Add(-time.Hour))

		d.repo.EXPECT().FindByEmployeeAndDate(ctx, "EMP001", testDay).Return(row, nil)
		d.media.EXPECT().StorePhoto(ctx, "checkout", "EMP001", testDay, "aGVsbG8=").Return("ref")
		d.sqlMock.ExpectBegin()
		d.repo.EXPECT().WithTx(gomock.Any()).Return(d.repo)
		d.repo.EXPECT().CompleteCheckOut(ctx, row.ID, testNow, "ref", 1.0).Return(false, nil)
		d.sqlMock.ExpectRollback()

		_, err := d.service.CheckOut(ctx, testEmployee(), "aGVsbG8=")

		assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyCheckedOut)
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})
}

func TestAttendanceService_MarkForEmployee(t *testing.T) {
	ctx := context.Background()
	hr := &user.User{EmployeeID: "HR001", FullName: "HR Admin", Role: user.RoleHRAdmin, IsActive: true}

	t.Run("invalid action", func(t *testing.T) {
		d := setupServiceTest(t)

		_, err := d.service.MarkForEmployee(ctx, hr, "EMP001", "lunch")

		assert.ErrorIs(t, err, attendanceerrors.ErrInvalidAction)
	})

	t.Run("unknown employee", func(t *testing.T) {
		d := setupServiceTest(t)

		d.directory.EXPECT().FindByEmployeeID(ctx, "EMP404").Return(nil, gorm.ErrRecordNotFound)

		_, err := d.service.MarkForEmployee(ctx, hr, "EMP404", attendance.ActionCheckIn)

		assert.ErrorIs(t, err, usererrors.ErrUserNotFound)
	})

	t.Run("check in uses sentinel photo", func(t *testing.T) {
		d := setupServiceTest(t)

		d.directory.EXPECT().FindByEmployeeID(ctx, "EMP001").Return(testEmployee(), nil)
		d.repo.EXPECT().FindByEmployeeAndDate(ctx, "EMP001", testDay).Return(nil, gorm.ErrRecordNotFound)
		d.sqlMock.ExpectBegin()
		d.repo.EXPECT().WithTx(gomock.Any()).Return(d.repo)
		d.repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, a *attendance.Attendance) error {
			assert.Equal(t, attendance.PhotoHRMarked, a.CheckInPhotoURL)
			return nil
		})
		d.outbox.EXPECT().WithTx(gomock.Any()).Return(d.outbox)
		d.outbox.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		d.sqlMock.ExpectCommit()

		resp, err := d.service.MarkForEmployee(ctx, hr, "EMP001", attendance.ActionCheckIn)

		assert.NoError(t, err)
		assert.Equal(t, "Check-in marked for Asha Rao", resp.Message)
		assert.Nil(t, resp.TotalHours)
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})

	t.Run("check out reports hours", func(t *testing.T) {
		d := setupServiceTest(t)
		row := openRecord(testNow.Add(-4*time.Hour - 30*time.Minute))

		d.directory.EXPECT().FindByEmployeeID(ctx, "EMP001").Return(testEmployee(), nil)
		d.repo.EXPECT().FindByEmployeeAndDate(ctx, "EMP001", testDay).Return(row, nil)
		d.sqlMock.ExpectBegin()
		d.repo.EXPECT().WithTx(gomock.Any()).Return(d.repo)
		d.repo.EXPECT().CompleteCheckOut(ctx, row.ID, testNow, attendance.PhotoHRMarked, 4.5).Return(true, nil)
		d.outbox.EXPECT().WithTx(gomock.Any()).Return(d.outbox)
		d.outbox.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		d.sqlMock.ExpectCommit()

		resp, err := d.service.MarkForEmployee(ctx, hr, "EMP001", attendance.ActionCheckOut)

		assert.NoError(t, err)
		assert.Equal(t, "Check-out marked for Asha Rao", resp.Message)
		if assert.NotNil(t, resp.TotalHours) {
			assert.Equal(t, 4.5, *resp.TotalHours)
		}
	})
}

func TestAttendanceService_History(t *testing.T) {
	ctx := context.Background()

	t.Run("open ended start", func(t *testing.T) {
		d := setupServiceTest(t)
		from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

		d.repo.EXPECT().FindByEmployee(ctx, "EMP001", &from, (*time.Time)(nil)).
			Return([]attendance.Attendance{*openRecord(testNow)}, nil)

		resp, err := d.service.History(ctx, "EMP001", attendance.HistoryQuery{StartDate: "2024-03-01"})

		assert.NoError(t, err)
		assert.Len(t, resp.Attendance, 1)
	})

	t.Run("invalid date", func(t *testing.T) {
		d := setupServiceTest(t)

		_, err := d.service.History(ctx, "EMP001", attendance.HistoryQuery{StartDate: "03/01/2024"})

		assert.ErrorIs(t, err, attendanceerrors.ErrInvalidDate)
	})

	t.Run("reversed range", func(t *testing.T) {
		d := setupServiceTest(t)

		_, err := d.service.History(ctx, "EMP001", attendance.HistoryQuery{StartDate: "2024-03-10", EndDate: "2024-03-01"})

		assert.ErrorIs(t, err, attendanceerrors.ErrInvalidDateRange)
	})
}

func TestAttendanceService_Today(t *testing.T) {
	ctx := context.Background()

	t.Run("not checked in", func(t *testing.T) {
		d := setupServiceTest(t)

		d.repo.EXPECT().FindByEmployeeAndDate(ctx, "EMP001", testDay).Return(nil, gorm.ErrRecordNotFound)

		resp, err := d.service.Today(ctx, "EMP001")

		assert.NoError(t, err)
		assert.Equal(t, attendance.StatusNotCheckedIn, resp.Status)
		assert.Nil(t, resp.Attendance)
	})

	t.Run("checked in", func(t *testing.T) {
		d := setupServiceTest(t)

		d.repo.EXPECT().FindByEmployeeAndDate(ctx, "EMP001", testDay).Return(openRecord(testNow), nil)

		resp, err := d.service.Today(ctx, "EMP001")

		assert.NoError(t, err)
		assert.Equal(t, attendance.StatusCheckedIn, resp.Status)
		assert.NotNil(t, resp.Attendance)
	})
}

func TestAttendanceService_Report(t *testing.T) {
	ctx := context.Background()
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	t.Run("employee wins over domain", func(t *testing.T) {
		d := setupServiceTest(t)

		d.repo.EXPECT().FindReport(ctx, attendance.ReportFilter{
			From: from, To: to, EmployeeIDs: []string{"EMP001"}, RestrictEmployees: true,
		}).Return([]attendance.Attendance{*openRecord(testNow)}, nil)

		resp, err := d.service.Report(ctx, attendance.ReportQuery{
			StartDate: "2024-03-01", EndDate: "2024-03-31", Domain: "SAP", EmployeeID: "EMP001",
		})

		assert.NoError(t, err)
		assert.Equal(t, 1, resp.Count)
	})

	t.Run("domain with no employees", func(t *testing.T) {
		d := setupServiceTest(t)

		d.directory.EXPECT().FindEmployeeIDsByDomain(ctx, "PowerBI").Return([]string{}, nil)
		d.repo.EXPECT().FindReport(ctx, attendance.ReportFilter{
			From: from, To: to, EmployeeIDs: []string{}, RestrictEmployees: true,
		}).Return(nil, nil)

		resp, err := d.service.Report(ctx, attendance.ReportQuery{
			StartDate: "2024-03-01", EndDate: "2024-03-31", Domain: "PowerBI",
		})

		assert.NoError(t, err)
		assert.Equal(t, 0, resp.Count)
	})

	t.Run("reversed range", func(t *testing.T) {
		d := setupServiceTest(t)

		_, err := d.service.Report(ctx, attendance.ReportQuery{StartDate: "2024-03-31", EndDate: "2024-03-01"})

		assert.ErrorIs(t, err, attendanceerrors.ErrInvalidDateRange)
	})
}

func TestRoundHours(t *testing.T) {
	tests := []struct {
		name string
		d    time.Duration
		want float64
	}{
		{"whole", 8 * time.Hour, 8},
		{"third", 8*time.Hour + 20*time.Minute, 8.33},
		{"short", 45 * time.Minute, 0.75},
		{"half rounds to even down", 7*time.Minute + 30*time.Second, 0.12},
		{"half rounds to even up", 22*time.Minute + 30*time.Second, 0.38},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, attendance.RoundHours(tt.d))
		})
	}
}
