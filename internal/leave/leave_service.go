package leave

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go-attendance/internal/events"
	leaveerrors "go-attendance/internal/leave/errors"
	"go-attendance/internal/messaging/kafka"
	"go-attendance/internal/notification"
	"go-attendance/internal/shared/contextutil"
	"go-attendance/internal/shared/dateutil"
	"go-attendance/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EmployeeDirectory resolves the mailbox a decision is sent to.
type EmployeeDirectory interface {
	FindByEmployeeID(ctx context.Context, employeeID string) (*user.User, error)
}

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Apply(ctx context.Context, employee *user.User, req ApplyLeaveRequest) (ApplyResponse, error)
	ListMine(ctx context.Context, employeeID string) (ListResponse, error)
	ListAll(ctx context.Context, status string) (ListResponse, error)
	Decide(ctx context.Context, actor *user.User, leaveID, status string) (MessageResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	directory EmployeeDirectory
	notifier  notification.Gateway
	outbox    kafka.OutboxRepository
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	directory EmployeeDirectory,
	notifier notification.Gateway,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		directory: directory,
		notifier:  notifier,
		outbox:    outboxRepo,
		now:       time.Now,
		logger:    l,
	}
}

func (s *service) Apply(ctx context.Context, employee *user.User, req ApplyLeaveRequest) (ApplyResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	start, err := dateutil.Parse(req.StartDate)
	if err != nil {
		return ApplyResponse{}, leaveerrors.ErrInvalidDateFormat
	}
	end, err := dateutil.Parse(req.EndDate)
	if err != nil {
		return ApplyResponse{}, leaveerrors.ErrInvalidDateFormat
	}

	days := dateutil.InclusiveDays(start, end)
	if days <= 0 {
		log.Warn("apply leave rejected, end before start",
			zap.String("employee_id", employee.EmployeeID),
			zap.String("start_date", req.StartDate),
			zap.String("end_date", req.EndDate),
		)
		return ApplyResponse{}, leaveerrors.ErrInvalidDateRange
	}

	l := &Leave{
		ID:           uuid.New(),
		EmployeeID:   employee.EmployeeID,
		EmployeeName: employee.FullName,
		LeaveType:    req.LeaveType,
		StartDate:    start,
		EndDate:      end,
		DaysCount:    days,
		Reason:       req.Reason,
		Status:       StatusPending,
		AppliedOn:    s.now(),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("apply leave begin tx failed", zap.Error(err))
		return ApplyResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, l); err != nil {
		log.Error("apply leave persist failed", zap.Error(err))
		return ApplyResponse{}, err
	}

	if err := s.enqueue(ctx, tx, events.LeaveApplied, l, ""); err != nil {
		log.Error("apply leave outbox persist failed", zap.Error(err))
		return ApplyResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("apply leave commit failed", zap.Error(err))
		return ApplyResponse{}, err
	}

	log.Info("leave applied",
		zap.String("leave_id", l.ID.String()),
		zap.String("employee_id", l.EmployeeID),
		zap.Int("days_count", l.DaysCount),
	)
	return ApplyResponse{Message: "Leave applied successfully", Leave: mapToResponse(*l)}, nil
}

func (s *service) ListMine(ctx context.Context, employeeID string) (ListResponse, error) {
	leaves, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		return ListResponse{}, err
	}
	return ListResponse{Leaves: mapToListResponse(leaves)}, nil
}

func (s *service) ListAll(ctx context.Context, status string) (ListResponse, error) {
	if status != "" && !IsStatus(status) {
		return ListResponse{}, leaveerrors.ErrInvalidStatus
	}
	leaves, err := s.repo.FindAll(ctx, status)
	if err != nil {
		return ListResponse{}, err
	}
	return ListResponse{Leaves: mapToListResponse(leaves)}, nil
}

// Decide moves a request to approved or rejected. A request that was already
// decided is overwritten; the previous status is logged.
func (s *service) Decide(ctx context.Context, actor *user.User, leaveID, status string) (MessageResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	if !IsDecision(status) {
		return MessageResponse{}, leaveerrors.ErrInvalidStatus
	}

	id, err := uuid.Parse(leaveID)
	if err != nil {
		return MessageResponse{}, leaveerrors.ErrLeaveNotFound
	}

	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return MessageResponse{}, leaveerrors.ErrLeaveNotFound
		}
		log.Error("decide leave lookup failed", zap.Error(err))
		return MessageResponse{}, err
	}
	if l.Decided() {
		log.Warn("leave decided again",
			zap.String("leave_id", leaveID),
			zap.String("previous_status", l.Status),
			zap.String("status", status),
		)
	}

	now := s.now()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("decide leave begin tx failed", zap.Error(err))
		return MessageResponse{}, err
	}
	defer tx.Rollback()

	updated, err := s.repo.WithTx(tx).UpdateStatus(ctx, id, status, actor.EmployeeID, now)
	if err != nil {
		log.Error("decide leave persist failed", zap.Error(err))
		return MessageResponse{}, err
	}
	if !updated {
		return MessageResponse{}, leaveerrors.ErrLeaveNotFound
	}

	l.Status = status
	l.DecidedBy = &actor.EmployeeID
	l.DecidedAt = &now

	if err := s.enqueue(ctx, tx, events.LeaveDecided, l, actor.EmployeeID); err != nil {
		log.Error("decide leave outbox persist failed", zap.Error(err))
		return MessageResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("decide leave commit failed", zap.Error(err))
		return MessageResponse{}, err
	}

	log.Info("leave decided",
		zap.String("leave_id", leaveID),
		zap.String("status", status),
		zap.String("decided_by", actor.EmployeeID),
	)

	s.notifyDecision(ctx, l)
	return MessageResponse{Message: fmt.Sprintf("Leave %s successfully", status)}, nil
}

func (s *service) notifyDecision(ctx context.Context, l *Leave) {
	if s.notifier == nil {
		return
	}
	employee, err := s.directory.FindByEmployeeID(ctx, l.EmployeeID)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Warn("leave decision mail skipped, employee lookup failed",
			zap.String("employee_id", l.EmployeeID),
			zap.Error(err),
		)
		return
	}
	s.notifier.SendLeaveDecision(ctx, notification.LeaveDecisionMail{
		To:        employee.Email,
		LeaveType: l.LeaveType,
		StartDate: dateutil.Format(l.StartDate),
		EndDate:   dateutil.Format(l.EndDate),
		DaysCount: l.DaysCount,
		Status:    l.Status,
	})
}

func (s *service) enqueue(ctx context.Context, tx *sql.Tx, eventType string, l *Leave, decidedBy string) error {
	if s.outbox == nil {
		return nil
	}

	rid := contextutil.GetRequestID(ctx)
	event, err := kafka.NewOutboxEvent(rid, "leave", l.ID.String(), eventType, events.LeaveLifecycleTopic,
		events.LeaveEvent{
			EventType:  eventType,
			RequestID:  rid,
			LeaveID:    l.ID.String(),
			EmployeeID: l.EmployeeID,
			LeaveType:  l.LeaveType,
			Status:     l.Status,
			DaysCount:  l.DaysCount,
			DecidedBy:  decidedBy,
			OccurredAt: s.now().UTC(),
		})
	if err != nil {
		return err
	}
	return s.outbox.WithTx(tx).Create(ctx, event)
}
