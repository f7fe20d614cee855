package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"slices"
	"time"

	employeeerrors "go-attendance/internal/employee/errors"
	"go-attendance/internal/events"
	"go-attendance/internal/messaging/kafka"
	"go-attendance/internal/notification"
	"go-attendance/internal/shared/cache"
	"go-attendance/internal/shared/contextutil"
	"go-attendance/internal/shared/counter"
	"go-attendance/internal/user"
	usererrors "go-attendance/internal/user/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	EmployeeOptionsGenerationKey = "employees:options:generation"
	optionsTTL                   = time.Hour
)

// EmployeeOptionsKey is the picker cache key under a cache generation.
func EmployeeOptionsKey(gen int64) string {
	return cache.VersionedKey("employees:options", gen, "active")
}

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (user.Profile, error)
	GetAll(ctx context.Context, domain string) ([]user.Profile, error)
	GetOptions(ctx context.Context) ([]EmployeeOption, error)
	GetByEmployeeID(ctx context.Context, requester *user.User, employeeID string) (user.Profile, error)
	Update(ctx context.Context, employeeID string, req UpdateEmployeeRequest) error
	Deactivate(ctx context.Context, employeeID string) error
	Domains() []string
}

type service struct {
	db       *sql.DB
	repo     user.Repository
	counter  counter.Repository
	outbox   kafka.OutboxRepository
	rdb      *redis.Client
	notifier notification.Gateway
	domains  []string
	sf       *singleflight.Group
	now      func() time.Time
	logger   *zap.Logger
}

func NewService(
	db *sql.DB,
	repo user.Repository,
	counter counter.Repository,
	rdb *redis.Client,
	notifier notification.Gateway,
	domains []string,
	logger ...*zap.Logger,
) Service {
	return NewServiceWithOutbox(db, repo, counter, nil, rdb, notifier, domains, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo user.Repository,
	counter counter.Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	notifier notification.Gateway,
	domains []string,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		counter:  counter,
		outbox:   outboxRepo,
		rdb:      rdb,
		notifier: notifier,
		domains:  domains,
		sf:       &singleflight.Group{},
		now:      time.Now,
		logger:   l,
	}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (user.Profile, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	rid := contextutil.GetRequestID(ctx)
	log.Debug("create employee requested",
		zap.String("email", req.Email),
		zap.String("domain", req.Domain),
	)

	if req.Role == "" {
		req.Role = user.RoleEmployee
	}
	if !user.ValidRole(req.Role) {
		return user.Profile{}, usererrors.ErrInvalidRole
	}
	if err := s.validateDomain(req.Domain); err != nil {
		return user.Profile{}, err
	}
	if !validDate(req.DateOfBirth) {
		return user.Profile{}, employeeerrors.ErrInvalidDateOfBirth
	}
	if !validDate(req.JoiningDate) {
		return user.Profile{}, employeeerrors.ErrInvalidJoiningDate
	}

	hashed, err := user.HashPassword(req.Password)
	if err != nil {
		return user.Profile{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("create employee begin tx failed", zap.Error(err))
		return user.Profile{}, err
	}
	defer tx.Rollback()

	if req.EmployeeID == "" {
		nextVal, err := s.counter.GetNextValue(ctx, counter.TypeEmployee)
		if err != nil {
			log.Error("create employee generate id failed", zap.Error(err))
			return user.Profile{}, err
		}
		req.EmployeeID = counter.FormatEmployeeID(nextVal)
	}

	u := &user.User{
		ID:             uuid.New(),
		EmployeeID:     req.EmployeeID,
		Email:          user.NormalizeEmail(req.Email),
		FullName:       req.FullName,
		Role:           req.Role,
		Domain:         req.Domain,
		DateOfBirth:    req.DateOfBirth,
		JoiningDate:    req.JoiningDate,
		Address:        req.Address,
		HierarchyLevel: req.HierarchyLevel,
		Manager:        req.Manager,
		Password:       hashed,
		IsActive:       true,
		CreatedAt:      s.now(),
	}

	if err := s.repo.WithTx(tx).Create(ctx, u); err != nil {
		log.Warn("create employee persist failed", zap.Error(err))
		return user.Profile{}, user.MapRepositoryError(err)
	}

	if err := s.enqueue(ctx, tx, events.EmployeeCreated, u); err != nil {
		log.Error("create employee outbox persist failed",
			zap.String("employee_id", u.EmployeeID),
			zap.Error(err),
		)
		return user.Profile{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("create employee commit failed", zap.String("request_id", rid), zap.Error(err))
		return user.Profile{}, err
	}

	s.invalidateOptions(ctx)

	s.notifier.SendWelcome(ctx, notification.WelcomeMail{
		To:           u.Email,
		FullName:     u.FullName,
		EmployeeID:   u.EmployeeID,
		TempPassword: req.Password,
	})

	log.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", u.EmployeeID),
	)
	return user.ToProfile(*u), nil
}

func (s *service) GetAll(ctx context.Context, domain string) ([]user.Profile, error) {
	users, err := s.repo.FindAll(ctx, domain)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("get all employees failed", zap.Error(err))
		return nil, user.MapRepositoryError(err)
	}
	return user.ToProfiles(users), nil
}

func (s *service) GetOptions(ctx context.Context) ([]EmployeeOption, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	var gen int64
	cacheable := false
	if s.rdb != nil {
		gen, cacheable = cache.Generation(ctx, s.rdb, EmployeeOptionsGenerationKey)
	}
	key := EmployeeOptionsKey(gen)

	if cacheable {
		if cached, err := s.rdb.Get(ctx, key).Result(); err == nil {
			var resp []EmployeeOption
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	// collapse concurrent misses into a single query
	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		users, err := s.repo.FindActiveEmployees(ctx)
		if err != nil {
			return nil, user.MapRepositoryError(err)
		}

		resp := toOptions(users)

		if cacheable {
			if payload, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, key, string(payload), optionsTTL).Err(); err != nil {
					log.Warn("cache employee options failed", zap.Error(err))
				}
			}
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]EmployeeOption), nil
}

// GetByEmployeeID lets HR read anyone; employees may only read themselves.
func (s *service) GetByEmployeeID(ctx context.Context, requester *user.User, employeeID string) (user.Profile, error) {
	if requester == nil || (!requester.IsHRAdmin() && requester.EmployeeID != employeeID) {
		return user.Profile{}, employeeerrors.ErrNotAuthorized
	}

	u, err := s.repo.FindByEmployeeID(ctx, employeeID)
	if err != nil {
		return user.Profile{}, user.MapRepositoryError(err)
	}
	return user.ToProfile(*u), nil
}

func (s *service) Update(ctx context.Context, employeeID string, req UpdateEmployeeRequest) error {
	log := contextutil.GetLogger(ctx, s.logger)

	fields := req.fields()
	if len(fields) == 0 {
		return usererrors.ErrNoDataToUpdate
	}
	if req.Domain != nil {
		if err := s.validateDomain(*req.Domain); err != nil {
			return err
		}
	}
	if !validDate(req.DateOfBirth) {
		return employeeerrors.ErrInvalidDateOfBirth
	}

	found, err := s.repo.Update(ctx, employeeID, fields)
	if err != nil {
		log.Error("update employee persist failed", zap.Error(err))
		return user.MapRepositoryError(err)
	}
	if !found {
		return usererrors.ErrUserNotFound
	}

	s.invalidateOptions(ctx)

	log.Info("update employee success",
		zap.String("employee_id", employeeID),
		zap.Int("fields", len(fields)),
	)
	return nil
}

func (s *service) Deactivate(ctx context.Context, employeeID string) error {
	log := contextutil.GetLogger(ctx, s.logger)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("deactivate employee begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	u, err := qtx.FindByEmployeeID(ctx, employeeID)
	if err != nil {
		return user.MapRepositoryError(err)
	}

	if _, err := qtx.Update(ctx, employeeID, map[string]any{"is_active": false}); err != nil {
		log.Error("deactivate employee persist failed", zap.Error(err))
		return user.MapRepositoryError(err)
	}

	if err := s.enqueue(ctx, tx, events.EmployeeDeactivated, u); err != nil {
		log.Error("deactivate employee outbox persist failed", zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		log.Error("deactivate employee commit failed", zap.Error(err))
		return err
	}

	s.invalidateOptions(ctx)

	log.Info("deactivate employee success", zap.String("employee_id", employeeID))
	return nil
}

func (s *service) Domains() []string {
	return slices.Clone(s.domains)
}

func (s *service) enqueue(ctx context.Context, tx *sql.Tx, eventType string, u *user.User) error {
	if s.outbox == nil {
		return nil
	}

	rid := contextutil.GetRequestID(ctx)
	event, err := kafka.NewOutboxEvent(rid, "employee", u.EmployeeID, eventType, events.EmployeeLifecycleTopic,
		events.EmployeeEvent{
			EventType:  eventType,
			RequestID:  rid,
			EmployeeID: u.EmployeeID,
			Email:      u.Email,
			Role:       u.Role,
			Domain:     u.Domain,
			OccurredAt: s.now().UTC(),
		})
	if err != nil {
		return err
	}
	return s.outbox.WithTx(tx).Create(ctx, event)
}

func (s *service) invalidateOptions(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := cache.Bump(ctx, s.rdb, EmployeeOptionsGenerationKey); err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("failed to invalidate employee options cache",
			zap.Error(err),
			zap.String("key", EmployeeOptionsGenerationKey),
		)
	}
}

func (s *service) validateDomain(domain string) error {
	if domain == "" || slices.Contains(s.domains, domain) {
		return nil
	}
	return usererrors.ErrInvalidDomain
}

func validDate(v *string) bool {
	if v == nil || *v == "" {
		return true
	}
	_, err := time.Parse(time.DateOnly, *v)
	return err == nil
}
