package attendance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	attendanceerrors "go-attendance/internal/attendance/errors"
	"go-attendance/internal/events"
	"go-attendance/internal/media"
	"go-attendance/internal/messaging/kafka"
	"go-attendance/internal/shared/contextutil"
	"go-attendance/internal/shared/dateutil"
	"go-attendance/internal/user"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EmployeeDirectory is the slice of the identity store attendance needs.
type EmployeeDirectory interface {
	FindByEmployeeID(ctx context.Context, employeeID string) (*user.User, error)
	FindEmployeeIDsByDomain(ctx context.Context, domain string) ([]string, error)
}

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	CheckIn(ctx context.Context, employee *user.User, photo string) (CheckInResponse, error)
	CheckOut(ctx context.Context, employee *user.User, photo string) (CheckOutResponse, error)
	MarkForEmployee(ctx context.Context, actor *user.User, employeeID, action string) (MarkResponse, error)
	History(ctx context.Context, employeeID string, query HistoryQuery) (HistoryResponse, error)
	Today(ctx context.Context, employeeID string) (TodayResponse, error)
	Report(ctx context.Context, query ReportQuery) (ReportResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	directory EmployeeDirectory
	media     media.Gateway
	outbox    kafka.OutboxRepository
	loc       *time.Location
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	directory EmployeeDirectory,
	mediaGateway media.Gateway,
	outboxRepo kafka.OutboxRepository,
	loc *time.Location,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	if loc == nil {
		loc = time.Local
	}
	return &service{
		db:        db,
		repo:      repo,
		directory: directory,
		media:     mediaGateway,
		outbox:    outboxRepo,
		loc:       loc,
		now:       time.Now,
		logger:    l,
	}
}

// photoSource yields the reference stored on the record for a given day.
type photoSource func(ctx context.Context, day time.Time) string

func (s *service) CheckIn(ctx context.Context, employee *user.User, photo string) (CheckInResponse, error) {
	row, err := s.checkIn(ctx, employee, s.uploaded(media.KindCheckIn, employee.EmployeeID, photo), "")
	if err != nil {
		return CheckInResponse{}, err
	}
	return CheckInResponse{Message: "Checked in successfully", Attendance: mapToResponse(*row)}, nil
}

func (s *service) CheckOut(ctx context.Context, employee *user.User, photo string) (CheckOutResponse, error) {
	row, err := s.checkOut(ctx, employee.EmployeeID, s.uploaded(media.KindCheckOut, employee.EmployeeID, photo), "")
	if err != nil {
		return CheckOutResponse{}, err
	}
	return CheckOutResponse{
		Message:    "Checked out successfully",
		TotalHours: *row.TotalHours,
		Attendance: mapToResponse(*row),
	}, nil
}

// MarkForEmployee runs the same state machine for HR, with the photo replaced
// by PhotoHRMarked.
func (s *service) MarkForEmployee(ctx context.Context, actor *user.User, employeeID, action string) (MarkResponse, error) {
	if action != ActionCheckIn && action != ActionCheckOut {
		return MarkResponse{}, attendanceerrors.ErrInvalidAction
	}

	employee, err := s.directory.FindByEmployeeID(ctx, employeeID)
	if err != nil {
		return MarkResponse{}, user.MapRepositoryError(err)
	}

	hrMarked := func(context.Context, time.Time) string { return PhotoHRMarked }

	if action == ActionCheckIn {
		row, err := s.checkIn(ctx, employee, hrMarked, actor.EmployeeID)
		if err != nil {
			return MarkResponse{}, err
		}
		return MarkResponse{
			Message:    fmt.Sprintf("Check-in marked for %s", employee.FullName),
			Attendance: mapToResponse(*row),
		}, nil
	}

	row, err := s.checkOut(ctx, employee.EmployeeID, hrMarked, actor.EmployeeID)
	if err != nil {
		return MarkResponse{}, err
	}
	return MarkResponse{
		Message:    fmt.Sprintf("Check-out marked for %s", employee.FullName),
		TotalHours: row.TotalHours,
		Attendance: mapToResponse(*row),
	}, nil
}

func (s *service) checkIn(ctx context.Context, employee *user.User, photo photoSource, markedBy string) (*Attendance, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	now := s.now().In(s.loc)
	day := dateutil.Day(now)

	_, err := s.repo.FindByEmployeeAndDate(ctx, employee.EmployeeID, day)
	if err == nil {
		return nil, attendanceerrors.ErrAlreadyCheckedIn
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Error("check in lookup failed", zap.Error(err))
		return nil, err
	}

	// upload happens outside the transaction; it never fails
	photoURL := photo(ctx, day)

	row := &Attendance{
		ID:              uuid.New(),
		EmployeeID:      employee.EmployeeID,
		EmployeeName:    employee.FullName,
		AttendanceDate:  day,
		CheckInTime:     now,
		CheckInPhotoURL: photoURL,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("check in begin tx failed", zap.Error(err))
		return nil, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, row); err != nil {
		if isDuplicateDay(err) {
			log.Info("check in lost race on unique index", zap.String("employee_id", employee.EmployeeID))
			return nil, attendanceerrors.ErrAlreadyCheckedIn
		}
		log.Error("check in persist failed", zap.Error(err))
		return nil, err
	}

	if err := s.enqueue(ctx, tx, events.AttendanceCheckedIn, row, markedBy); err != nil {
		log.Error("check in outbox persist failed", zap.Error(err))
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("check in commit failed", zap.Error(err))
		return nil, err
	}

	log.Info("checked in",
		zap.String("employee_id", row.EmployeeID),
		zap.String("date", dateutil.Format(day)),
		zap.String("marked_by", markedBy),
	)
	return row, nil
}

func (s *service) checkOut(ctx context.Context, employeeID string, photo photoSource, markedBy string) (*Attendance, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	now := s.now().In(s.loc)
	day := dateutil.Day(now)

	row, err := s.repo.FindByEmployeeAndDate(ctx, employeeID, day)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, attendanceerrors.ErrNoCheckInFound
		}
		log.Error("check out lookup failed", zap.Error(err))
		return nil, err
	}
	if row.CheckedOut() {
		return nil, attendanceerrors.ErrAlreadyCheckedOut
	}

	photoURL := photo(ctx, day)
	hours := RoundHours(now.Sub(row.CheckInTime))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("check out begin tx failed", zap.Error(err))
		return nil, err
	}
	defer tx.Rollback()

	updated, err := s.repo.WithTx(tx).CompleteCheckOut(ctx, row.ID, now, photoURL, hours)
	if err != nil {
		log.Error("check out persist failed", zap.Error(err))
		return nil, err
	}
	if !updated {
		return nil, attendanceerrors.ErrAlreadyCheckedOut
	}

	row.CheckOutTime = &now
	row.CheckOutPhotoURL = &photoURL
	row.TotalHours = &hours

	if err := s.enqueue(ctx, tx, events.AttendanceCheckedOut, row, markedBy); err != nil {
		log.Error("check out outbox persist failed", zap.Error(err))
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("check out commit failed", zap.Error(err))
		return nil, err
	}

	log.Info("checked out",
		zap.String("employee_id", employeeID),
		zap.Float64("total_hours", hours),
		zap.String("marked_by", markedBy),
	)
	return row, nil
}

// History with a single bound is open-ended on the other side.
func (s *service) History(ctx context.Context, employeeID string, query HistoryQuery) (HistoryResponse, error) {
	from, err := dateutil.ParseOptional(query.StartDate)
	if err != nil {
		return HistoryResponse{}, attendanceerrors.ErrInvalidDate
	}
	to, err := dateutil.ParseOptional(query.EndDate)
	if err != nil {
		return HistoryResponse{}, attendanceerrors.ErrInvalidDate
	}
	if from != nil && to != nil && to.Before(*from) {
		return HistoryResponse{}, attendanceerrors.ErrInvalidDateRange
	}

	rows, err := s.repo.FindByEmployee(ctx, employeeID, from, to)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("attendance history failed", zap.Error(err))
		return HistoryResponse{}, err
	}
	return HistoryResponse{Attendance: mapToListResponse(rows)}, nil
}

func (s *service) Today(ctx context.Context, employeeID string) (TodayResponse, error) {
	day := dateutil.Day(s.now().In(s.loc))

	row, err := s.repo.FindByEmployeeAndDate(ctx, employeeID, day)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return TodayResponse{Status: StatusNotCheckedIn}, nil
	}
	if err != nil {
		return TodayResponse{}, err
	}

	resp := mapToResponse(*row)
	return TodayResponse{Status: StatusCheckedIn, Attendance: &resp}, nil
}

// Report restricts to one employee when EmployeeID is set, otherwise to the
// domain's employees when Domain is set.
func (s *service) Report(ctx context.Context, query ReportQuery) (ReportResponse, error) {
	from, err := dateutil.Parse(query.StartDate)
	if err != nil {
		return ReportResponse{}, attendanceerrors.ErrInvalidDate
	}
	to, err := dateutil.Parse(query.EndDate)
	if err != nil {
		return ReportResponse{}, attendanceerrors.ErrInvalidDate
	}
	if to.Before(from) {
		return ReportResponse{}, attendanceerrors.ErrInvalidDateRange
	}

	filter := ReportFilter{From: from, To: to}
	switch {
	case query.EmployeeID != "":
		filter.RestrictEmployees = true
		filter.EmployeeIDs = []string{query.EmployeeID}
	case query.Domain != "":
		ids, err := s.directory.FindEmployeeIDsByDomain(ctx, query.Domain)
		if err != nil {
			return ReportResponse{}, err
		}
		filter.RestrictEmployees = true
		filter.EmployeeIDs = ids
	}

	rows, err := s.repo.FindReport(ctx, filter)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("attendance report failed", zap.Error(err))
		return ReportResponse{}, err
	}

	return ReportResponse{Attendance: mapToListResponse(rows), Count: len(rows)}, nil
}

func (s *service) uploaded(kind, employeeID, photo string) photoSource {
	return func(ctx context.Context, day time.Time) string {
		return s.media.StorePhoto(ctx, kind, employeeID, day, photo)
	}
}

func (s *service) enqueue(ctx context.Context, tx *sql.Tx, eventType string, row *Attendance, markedBy string) error {
	if s.outbox == nil {
		return nil
	}

	rid := contextutil.GetRequestID(ctx)
	event, err := kafka.NewOutboxEvent(rid, "attendance", row.EmployeeID, eventType, events.AttendanceLifecycleTopic,
		events.AttendanceEvent{
			EventType:  eventType,
			RequestID:  rid,
			EmployeeID: row.EmployeeID,
			Date:       dateutil.Format(row.AttendanceDate),
			MarkedBy:   markedBy,
			TotalHours: row.TotalHours,
			OccurredAt: s.now().UTC(),
		})
	if err != nil {
		return err
	}
	return s.outbox.WithTx(tx).Create(ctx, event)
}

// RoundHours converts d to hours rounded half-to-even at two decimals.
func RoundHours(d time.Duration) float64 {
	return math.RoundToEven(d.Hours()*100) / 100
}

func isDuplicateDay(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "uq_attendance_employee_date"
}
