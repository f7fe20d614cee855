package leave_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-attendance/internal/leave"
	leaveerrors "go-attendance/internal/leave/errors"
	leavemock "go-attendance/internal/leave/mock"
	"go-attendance/internal/messaging/kafka"
	kafkamock "go-attendance/internal/messaging/kafka/mock"
	"go-attendance/internal/notification"
	notificationmock "go-attendance/internal/notification/mock"
	"go-attendance/internal/user"
	usermock "go-attendance/internal/user/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var testNow = time.Date(2024, 2, 20, 9, 15, 0, 0, time.UTC)

type serviceDeps struct {
	sqlMock   sqlmock.Sqlmock
	service   leave.Service
	repo      *leavemock.MockRepository
	directory *usermock.MockRepository
	notifier  *notificationmock.MockGateway
	outbox    *kafkamock.MockOutboxRepository
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := leavemock.NewMockRepository(ctrl)
	directory := usermock.NewMockRepository(ctrl)
	notifier := notificationmock.NewMockGateway(ctrl)
	outbox := kafkamock.NewMockOutboxRepository(ctrl)

	svc := leave.NewService(db, repo, directory, notifier, outbox, zap.NewNop())
	leave.SetClock(svc, func() time.Time { return testNow })

	return &serviceDeps{
		sqlMock:   sqlMock,
		service:   svc,
		repo:      repo,
		directory: directory,
		notifier:  notifier,
		outbox:    outbox,
	}
}

func testEmployee() *user.User {
	return &user.User{EmployeeID: "EMP001", FullName: "Asha Rao", Email: "asha@priacc.com", Role: user.RoleEmployee, IsActive: true}
}

func testHR() *user.User {
	return &user.User{EmployeeID: "HR001", FullName: "HR Admin", Role: user.RoleHRAdmin, IsActive: true}
}

func pendingLeave(id uuid.UUID) *leave.Leave {
	return &leave.Leave{
		ID:           id,
		EmployeeID:   "EMP001",
		EmployeeName: "Asha Rao",
		LeaveType:    leave.TypeCasual,
		StartDate:    time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC),
		DaysCount:    3,
		Reason:       "family function",
		Status:       leave.StatusPending,
		AppliedOn:    testNow.Add(-24 * time.Hour),
	}
}

func TestLeaveService_Apply(t *testing.T) {
	ctx := context.Background()

	t.Run("success counts inclusive days", func(t *testing.T) {
		d := setupServiceTest(t)

		d.sqlMock.ExpectBegin()
		d.repo.EXPECT().WithTx(gomock.Any()).Return(d.repo)
		d.repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, l *leave.Leave) error {
			assert.Equal(t, 3, l.DaysCount)
			assert.Equal(t, leave.StatusPending, l.Status)
			assert.Equal(t, "Asha Rao", l.EmployeeName)
			assert.Equal(t, testNow, l.AppliedOn)
			return nil
		})
		d.outbox.EXPECT().WithTx(gomock.Any()).Return(d.outbox)
		d.outbox.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, e kafka.OutboxEvent) error {
			assert.Equal(t, "leave_applied", e.EventType)
			return nil
		})
		d.sqlMock.ExpectCommit()

		resp, err := d.service.Apply(ctx, testEmployee(), leave.ApplyLeaveRequest{
			LeaveType: leave.TypeCasual, StartDate: "2024-03-01", EndDate: "2024-03-03", Reason: "family function",
		})

		assert.NoError(t, err)
		assert.Equal(t, "Leave applied successfully", resp.Message)
		assert.Equal(t, 3, resp.Leave.DaysCount)
		assert.Equal(t, "pending", resp.Leave.Status)
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})

	t.Run("single day", func(t *testing.T) {
		d := setupServiceTest(t)

		d.sqlMock.ExpectBegin()
		d.repo.EXPECT().WithTx(gomock.Any()).Return(d.repo)
		d.repo.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		d.outbox.EXPECT().WithTx(gomock.Any()).Return(d.outbox)
		d.outbox.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		d.sqlMock.ExpectCommit()

		resp, err := d.service.Apply(ctx, testEmployee(), leave.ApplyLeaveRequest{
			LeaveType: leave.TypeSick, StartDate: "2024-03-05", EndDate: "2024-03-05", Reason: "fever",
		})

		assert.NoError(t, err)
		assert.Equal(t, 1, resp.Leave.DaysCount)
	})

	t.Run("end before start creates nothing", func(t *testing.T) {
		d := setupServiceTest(t)

		_, err := d.service.Apply(ctx, testEmployee(), leave.ApplyLeaveRequest{
			LeaveType: leave.TypeCasual, StartDate: "2024-03-03", EndDate: "2024-03-01", Reason: "x",
		})

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateRange)
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})

	t.Run("bad date", func(t *testing.T) {
		d := setupServiceTest(t)

		_, err := d.service.Apply(ctx, testEmployee(), leave.ApplyLeaveRequest{
			LeaveType: leave.TypeCasual, StartDate: "2024-02-30", EndDate: "2024-03-01", Reason: "x",
		})

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateFormat)
	})

	t.Run("persist error rolls back", func(t *testing.T) {
		d := setupServiceTest(t)
		dbErr := errors.New("insert failed")

		d.sqlMock.ExpectBegin()
		d.repo.EXPECT().WithTx(gomock.Any()).Return(d.repo)
		d.repo.EXPECT().Create(ctx, gomock.Any()).Return(dbErr)
		d.sqlMock.ExpectRollback()

		_, err := d.service.Apply(ctx, testEmployee(), leave.ApplyLeaveRequest{
			LeaveType: leave.TypeCasual, StartDate: "2024-03-01", EndDate: "2024-03-01", Reason: "x",
		})

		assert.ErrorIs(t, err, dbErr)
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})
}

func TestLeaveService_ListAll(t *testing.T) {
	ctx := context.Background()

	t.Run("status filter", func(t *testing.T) {
		d := setupServiceTest(t)

		d.repo.EXPECT().FindAll(ctx, leave.StatusPending).Return([]leave.Leave{*pendingLeave(uuid.New())}, nil)

		resp, err := d.service.ListAll(ctx, leave.StatusPending)

		assert.NoError(t, err)
		assert.Len(t, resp.Leaves, 1)
	})

	t.Run("unknown status", func(t *testing.T) {
		d := setupServiceTest(t)

		_, err := d.service.ListAll(ctx, "cancelled")

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidStatus)
	})
}

func TestLeaveService_ListMine(t *testing.T) {
	d := setupServiceTest(t)
	ctx := context.Background()

	d.repo.EXPECT().FindByEmployee(ctx, "EMP001").Return(nil, nil)

	resp, err := d.service.ListMine(ctx, "EMP001")

	assert.NoError(t, err)
	assert.Empty(t, resp.Leaves)
}

func TestLeaveService_Decide(t *testing.T) {
	ctx := context.Background()

	t.Run("approve notifies employee", func(t *testing.T) {
		d := setupServiceTest(t)
		id := uuid.New()

		d.repo.EXPECT().FindByID(ctx, id).Return(pendingLeave(id), nil)
		d.sqlMock.ExpectBegin()
		d.repo.EXPECT().WithTx(gomock.Any()).Return(d.repo)
		d.repo.EXPECT().UpdateStatus(ctx, id, leave.StatusApproved, "HR001", testNow).Return(true, nil)
		d.outbox.EXPECT().WithTx(gomock.Any()).Return(d.outbox)
		d.outbox.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		d.sqlMock.ExpectCommit()
		d.directory.EXPECT().FindByEmployeeID(ctx, "EMP001").Return(testEmployee(), nil)
		d.notifier.EXPECT().SendLeaveDecision(ctx, notification.LeaveDecisionMail{
			To:        "asha@priacc.com",
			LeaveType: leave.TypeCasual,
			StartDate: "2024-03-01",
			EndDate:   "2024-03-03",
			DaysCount: 3,
			Status:    leave.StatusApproved,
		}).Return(true)

		resp, err := d.service.Decide(ctx, testHR(), id.String(), leave.StatusApproved)

		assert.NoError(t, err)
		assert.Equal(t, "Leave approved successfully", resp.Message)
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})

	t.Run("invalid status leaves record untouched", func(t *testing.T) {
		d := setupServiceTest(t)

		_, err := d.service.Decide(ctx, testHR(), uuid.NewString(), "cancelled")

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidStatus)
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})

	t.Run("unknown id", func(t *testing.T) {
		d := setupServiceTest(t)
		id := uuid.New()

		d.repo.EXPECT().FindByID(ctx, id).Return(nil, gorm.ErrRecordNotFound)

		_, err := d.service.Decide(ctx, testHR(), id.String(), leave.StatusRejected)

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotFound)
	})

	t.Run("malformed id", func(t *testing.T) {
		d := setupServiceTest(t)

		_, err := d.service.Decide(ctx, testHR(), "L1", leave.StatusRejected)

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotFound)
	})

	t.Run("mail failure does not fail the decision", func(t *testing.T) {
		d := setupServiceTest(t)
		id := uuid.New()
		decided := pendingLeave(id)
		decided.Status = leave.StatusApproved

		d.repo.EXPECT().FindByID(ctx, id).Return(decided, nil)
		d.sqlMock.ExpectBegin()
		d.repo.EXPECT().WithTx(gomock.Any()).Return(d.repo)
		d.repo.EXPECT().UpdateStatus(ctx, id, leave.StatusRejected, "HR001", testNow).Return(true, nil)
		d.outbox.EXPECT().WithTx(gomock.Any()).Return(d.outbox)
		d.outbox.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		d.sqlMock.ExpectCommit()
		d.directory.EXPECT().FindByEmployeeID(ctx, "EMP001").Return(testEmployee(), nil)
		d.notifier.EXPECT().SendLeaveDecision(ctx, gomock.Any()).Return(false)

		resp, err := d.service.Decide(ctx, testHR(), id.String(), leave.StatusRejected)

		assert.NoError(t, err)
		assert.Equal(t, "Leave rejected successfully", resp.Message)
	})
}
