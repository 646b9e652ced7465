package checks

import (
	"context"
	"errors"
	"testing"

	"animal-search-admin/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

var folders = []string{"audit", "images"}

func TestCheckStructure(t *testing.T) {
	t.Run("Bucket Missing", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "animalsearch").Return(false, nil)

		_, err := CheckStructure(context.Background(), mockClient, "animalsearch", folders)
		assert.ErrorIs(t, err, ErrBucketMissing)
	})

	t.Run("Bucket Error", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "animalsearch").Return(false, errors.New("access denied"))

		_, err := CheckStructure(context.Background(), mockClient, "animalsearch", folders)
		assert.ErrorContains(t, err, "access denied")
		assert.NotErrorIs(t, err, ErrBucketMissing)
	})

	t.Run("All Missing", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "animalsearch").Return(true, nil)
		ch := make(chan minio.ObjectInfo)
		close(ch)
		mockClient.On("ListObjects", mock.Anything, "animalsearch", mock.Anything).Return((<-chan minio.ObjectInfo)(ch))

		missing, err := CheckStructure(context.Background(), mockClient, "animalsearch", folders)
		assert.NoError(t, err)
		assert.Equal(t, folders, missing)
	})

	t.Run("All Present", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "animalsearch").Return(true, nil)

		for _, folder := range folders {
			ch := make(chan minio.ObjectInfo, 1)
			ch <- minio.ObjectInfo{Key: folder + "/"}
			close(ch)
			mockClient.On("ListObjects", mock.Anything, "animalsearch", mock.MatchedBy(func(opts minio.ListObjectsOptions) bool {
				return opts.Prefix == folder+"/"
			})).Return((<-chan minio.ObjectInfo)(ch))
		}

		missing, err := CheckStructure(context.Background(), mockClient, "animalsearch", folders)
		assert.NoError(t, err)
		assert.Empty(t, missing)
	})
}

func TestFixStructure(t *testing.T) {
	t.Run("Existing Bucket", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "animalsearch").Return(true, nil)
		mockClient.On("PutObject", mock.Anything, "animalsearch", "audit/", mock.Anything, int64(0), mock.Anything).Return(minio.UploadInfo{}, nil)

		err := FixStructure(context.Background(), mockClient, "animalsearch", zap.NewNop(), []string{"audit"})
		assert.NoError(t, err)
		mockClient.AssertNumberOfCalls(t, "PutObject", 1)
		mockClient.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Creates Bucket", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "animalsearch").Return(false, nil)
		mockClient.On("MakeBucket", mock.Anything, "animalsearch", mock.Anything).Return(nil)
		mockClient.On("PutObject", mock.Anything, "animalsearch", mock.Anything, mock.Anything, int64(0), mock.Anything).Return(minio.UploadInfo{}, nil)

		err := FixStructure(context.Background(), mockClient, "animalsearch", zap.NewNop(), folders)
		assert.NoError(t, err)
		mockClient.AssertNumberOfCalls(t, "PutObject", 2)
	})

	t.Run("Put Failure", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "animalsearch").Return(true, nil)
		mockClient.On("PutObject", mock.Anything, "animalsearch", mock.Anything, mock.Anything, int64(0), mock.Anything).
			Return(minio.UploadInfo{}, errors.New("quota exceeded"))

		err := FixStructure(context.Background(), mockClient, "animalsearch", zap.NewNop(), folders)
		assert.Error(t, err)
		mockClient.AssertNumberOfCalls(t, "PutObject", 1)
	})
}
