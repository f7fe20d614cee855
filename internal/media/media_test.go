package media_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go-attendance/internal/media"
	"go-attendance/internal/media/mock"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

var day = time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

func TestGateway_StorePhoto(t *testing.T) {
	ctx := context.Background()

	t.Run("uploads decoded bytes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		up := mock.NewMockUploader(ctrl)
		gw := media.NewGateway(up, zap.NewNop())

		up.EXPECT().
			Put(gomock.Any(), gomock.Any(), []byte("jpeg"), "image/jpeg").
			DoAndReturn(func(_ context.Context, key string, _ []byte, _ string) (string, error) {
				assert.True(t, strings.HasPrefix(key, "checkin/EMP001/2024-03-04_"))
				assert.True(t, strings.HasSuffix(key, ".jpg"))
				return "https://bucket.s3.us-east-1.amazonaws.com/" + key, nil
			})

		ref := gw.StorePhoto(ctx, media.KindCheckIn, "EMP001", day, "data:image/jpeg;base64,anBlZw==")
		assert.True(t, strings.HasPrefix(ref, "https://bucket.s3.us-east-1.amazonaws.com/checkin/EMP001/"))
	})

	t.Run("upload failure falls back to inline data", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		up := mock.NewMockUploader(ctrl)
		gw := media.NewGateway(up, zap.NewNop())

		up.EXPECT().Put(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("", errors.New("AccessDenied"))

		ref := gw.StorePhoto(ctx, media.KindCheckOut, "EMP001", day, "anBlZw==")
		assert.Equal(t, "data:image/jpeg;base64,anBlZw==", ref)
	})

	t.Run("invalid base64 never reaches the uploader", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		up := mock.NewMockUploader(ctrl)
		gw := media.NewGateway(up, zap.NewNop())

		ref := gw.StorePhoto(ctx, media.KindCheckIn, "EMP001", day, "%%%")
		assert.Equal(t, "data:image/jpeg;base64,%%%", ref)
	})

	t.Run("no uploader configured", func(t *testing.T) {
		gw := media.NewGateway(nil, zap.NewNop())
		assert.Equal(t, "data:image/jpeg;base64,anBlZw==", gw.StorePhoto(ctx, media.KindCheckIn, "EMP001", day, "anBlZw=="))
	})
}

func TestObjectURL(t *testing.T) {
	assert.Equal(t,
		"https://priacc-attendance-photos.s3.us-east-1.amazonaws.com/checkin/E1/x.jpg",
		media.ObjectURL("", "priacc-attendance-photos", "us-east-1", "checkin/E1/x.jpg"),
	)
	assert.Equal(t,
		"http://localhost:9000/photos/checkin/E1/x.jpg",
		media.ObjectURL("http://localhost:9000", "photos", "us-east-1", "checkin/E1/x.jpg"),
	)
}
