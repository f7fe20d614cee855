package dashboard

import (
	"context"
	"time"

	"go-attendance/internal/attendance"
	"go-attendance/internal/leave"
	"go-attendance/internal/shared/contextutil"
	"go-attendance/internal/shared/dateutil"
	"go-attendance/internal/user"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type EmployeeSource interface {
	CountActiveEmployees(ctx context.Context) (int64, error)
	CountActiveByDomain(ctx context.Context, domains []string) (map[string]int64, error)
	FindActiveEmployees(ctx context.Context) ([]user.User, error)
}

type AttendanceSource interface {
	CountByDate(ctx context.Context, day time.Time) (int64, error)
	FindByDate(ctx context.Context, day time.Time) ([]attendance.Attendance, error)
}

type LeaveSource interface {
	CountByStatus(ctx context.Context, status string) (int64, error)
}

type Service interface {
	Stats(ctx context.Context) (StatsResponse, error)
	EmployeeStatusToday(ctx context.Context) (EmployeeStatusResponse, error)
}

type service struct {
	employees  EmployeeSource
	attendance AttendanceSource
	leaves     LeaveSource
	domains    []string
	loc        *time.Location
	now        func() time.Time
	logger     *zap.Logger
}

func NewService(
	employees EmployeeSource,
	attendanceSource AttendanceSource,
	leaves LeaveSource,
	domains []string,
	loc *time.Location,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("dashboard.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("dashboard.service")
	}
	if loc == nil {
		loc = time.Local
	}
	return &service{
		employees:  employees,
		attendance: attendanceSource,
		leaves:     leaves,
		domains:    domains,
		loc:        loc,
		now:        time.Now,
		logger:     l,
	}
}

func (s *service) today() time.Time {
	return dateutil.Day(s.now().In(s.loc))
}

// Stats counts attendance records dated today as present. Absent is not
// clamped, so it goes negative if records outnumber active employees.
func (s *service) Stats(ctx context.Context) (StatsResponse, error) {
	day := s.today()
	var resp StatsResponse

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		resp.TotalEmployees, err = s.employees.CountActiveEmployees(gctx)
		return err
	})
	g.Go(func() (err error) {
		resp.PresentToday, err = s.attendance.CountByDate(gctx, day)
		return err
	})
	g.Go(func() (err error) {
		resp.PendingLeaves, err = s.leaves.CountByStatus(gctx, leave.StatusPending)
		return err
	})
	g.Go(func() (err error) {
		resp.DomainCounts, err = s.employees.CountActiveByDomain(gctx, s.domains)
		return err
	})
	if err := g.Wait(); err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("dashboard stats failed", zap.Error(err))
		return StatsResponse{}, err
	}

	resp.AbsentToday = resp.TotalEmployees - resp.PresentToday
	return resp, nil
}

func (s *service) EmployeeStatusToday(ctx context.Context) (EmployeeStatusResponse, error) {
	day := s.today()

	var (
		employees []user.User
		records   []attendance.Attendance
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		employees, err = s.employees.FindActiveEmployees(gctx)
		return err
	})
	g.Go(func() (err error) {
		records, err = s.attendance.FindByDate(gctx, day)
		return err
	})
	if err := g.Wait(); err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("employee status failed", zap.Error(err))
		return EmployeeStatusResponse{}, err
	}

	byEmployee := make(map[string]attendance.Attendance, len(records))
	for _, r := range records {
		byEmployee[r.EmployeeID] = r
	}

	statuses := make([]EmployeeStatus, 0, len(employees))
	for _, e := range employees {
		st := EmployeeStatus{
			EmployeeID:   e.EmployeeID,
			EmployeeName: e.FullName,
			Domain:       e.Domain,
		}
		if r, ok := byEmployee[e.EmployeeID]; ok {
			in := r.CheckInTime.Format(time.RFC3339)
			st.IsPresent = true
			st.CheckInTime = &in
			if r.CheckOutTime != nil {
				out := r.CheckOutTime.Format(time.RFC3339)
				st.CheckOutTime = &out
			}
			st.TotalHours = r.TotalHours
		}
		statuses = append(statuses, st)
	}

	return EmployeeStatusResponse{Date: dateutil.Format(day), Employees: statuses}, nil
}
