package media

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"go-attendance/internal/shared/apperror"
	"go-attendance/internal/shared/contextutil"

	"github.com/segmentio/ksuid"
	"go.uber.org/zap"
)

const (
	KindCheckIn  = "checkin"
	KindCheckOut = "checkout"

	contentTypeJPEG = "image/jpeg"
	dataURLPrefix   = "data:image/jpeg;base64,"
)

// Gateway persists attendance photos and returns a reference to store on the
// record. It never fails: when the upload cannot happen the photo is kept
// inline as a data URL.
//
//go:generate mockgen -source=media.go -destination=mock/media_mock.go -package=mock
type Gateway interface {
	StorePhoto(ctx context.Context, kind, employeeID string, day time.Time, photo string) string
}

type gateway struct {
	uploader Uploader
	logger   *zap.Logger
}

func NewGateway(uploader Uploader, logger ...*zap.Logger) Gateway {
	l := zap.L().Named("media.gateway")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("media.gateway")
	}
	return &gateway{uploader: uploader, logger: l}
}

func (g *gateway) StorePhoto(ctx context.Context, kind, employeeID string, day time.Time, photo string) string {
	log := contextutil.GetLogger(ctx, g.logger)
	raw := StripDataURL(photo)

	if g.uploader == nil {
		return dataURLPrefix + raw
	}

	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		log.Warn("photo is not valid base64, storing inline",
			zap.String("employee_id", employeeID),
			zap.Error(err),
		)
		return dataURLPrefix + raw
	}

	key := ObjectKey(kind, employeeID, day)
	url, err := g.uploader.Put(ctx, key, data, contentTypeJPEG)
	if err != nil {
		degraded := apperror.Degraded("s3", err)
		log.Warn("photo upload failed, storing inline",
			zap.String("code", degraded.Code),
			zap.String("key", key),
			zap.Error(err),
		)
		return dataURLPrefix + raw
	}

	return url
}

// ObjectKey builds checkin/EMP001/2024-03-04_<ksuid>.jpg.
func ObjectKey(kind, employeeID string, day time.Time) string {
	return fmt.Sprintf("%s/%s/%s_%s.jpg", kind, employeeID, day.Format(time.DateOnly), ksuid.New().String())
}

// StripDataURL accepts both a bare base64 payload and a browser data URL.
func StripDataURL(photo string) string {
	photo = strings.TrimSpace(photo)
	if strings.HasPrefix(photo, "data:") {
		if i := strings.Index(photo, ","); i >= 0 {
			return photo[i+1:]
		}
	}
	return photo
}
