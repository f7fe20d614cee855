package holiday

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	holidayerrors "go-attendance/internal/holiday/errors"
	"go-attendance/internal/shared/cache"
	"go-attendance/internal/shared/contextutil"
	"go-attendance/internal/shared/dateutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	HolidayGenerationKey = "holidays:generation"
	listTTL              = 6 * time.Hour
)

// HolidayListKey is the cache key of a year's list under a cache generation;
// year 0 is the full calendar.
func HolidayListKey(gen int64, year int) string {
	suffix := "year:all"
	if year != 0 {
		suffix = "year:" + strconv.Itoa(year)
	}
	return cache.VersionedKey("holidays", gen, suffix)
}

//go:generate mockgen -source=holiday_service.go -destination=mock/holiday_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateHolidayRequest) (CreateResponse, error)
	List(ctx context.Context, year int) (ListResponse, error)
	Delete(ctx context.Context, id string) (MessageResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("holiday.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("holiday.service")
	}
	return &service{db: db, repo: repo, rdb: rdb, sf: &singleflight.Group{}, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateHolidayRequest) (CreateResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	date, err := dateutil.Parse(req.Date)
	if err != nil {
		return CreateResponse{}, holidayerrors.ErrInvalidDate
	}

	h := &Holiday{
		ID:          uuid.New(),
		Name:        req.Name,
		Date:        date,
		Description: req.Description,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("create holiday begin tx failed", zap.Error(err))
		return CreateResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, h); err != nil {
		log.Error("create holiday persist failed", zap.Error(err))
		return CreateResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("create holiday commit failed", zap.Error(err))
		return CreateResponse{}, err
	}

	s.invalidate(ctx)
	log.Info("holiday created", zap.String("holiday_id", h.ID.String()), zap.String("date", req.Date))

	return CreateResponse{Message: "Holiday created successfully", Holiday: mapToResponse(*h)}, nil
}

func (s *service) List(ctx context.Context, year int) (ListResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	var gen int64
	cacheable := false
	if s.rdb != nil {
		gen, cacheable = cache.Generation(ctx, s.rdb, HolidayGenerationKey)
	}
	key := HolidayListKey(gen, year)

	if cacheable {
		if cached, err := s.rdb.Get(ctx, key).Result(); err == nil {
			var resp ListResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		holidays, err := s.repo.FindAll(ctx, year)
		if err != nil {
			return nil, err
		}
		resp := ListResponse{Holidays: mapToListResponse(holidays)}

		if cacheable {
			if payload, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, key, string(payload), listTTL).Err(); err != nil {
					log.Warn("cache holidays failed", zap.String("key", key), zap.Error(err))
				}
			}
		}
		return resp, nil
	})
	if err != nil {
		log.Error("list holidays failed", zap.Error(err))
		return ListResponse{}, err
	}
	return v.(ListResponse), nil
}

func (s *service) Delete(ctx context.Context, id string) (MessageResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	holidayID, err := uuid.Parse(id)
	if err != nil {
		return MessageResponse{}, holidayerrors.ErrHolidayNotFound
	}

	h, err := s.repo.FindByID(ctx, holidayID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return MessageResponse{}, holidayerrors.ErrHolidayNotFound
		}
		return MessageResponse{}, err
	}

	deleted, err := s.repo.Delete(ctx, holidayID)
	if err != nil {
		log.Error("delete holiday failed", zap.Error(err))
		return MessageResponse{}, err
	}
	if !deleted {
		return MessageResponse{}, holidayerrors.ErrHolidayNotFound
	}

	s.invalidate(ctx)
	log.Info("holiday deleted", zap.String("holiday_id", id), zap.String("date", dateutil.Format(h.Date)))

	return MessageResponse{Message: "Holiday deleted successfully"}, nil
}

func (s *service) invalidate(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := cache.Bump(ctx, s.rdb, HolidayGenerationKey); err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("failed to invalidate holiday cache",
			zap.String("key", HolidayGenerationKey),
			zap.Error(err),
		)
	}
}
