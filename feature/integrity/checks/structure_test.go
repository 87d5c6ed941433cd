package checks

import (
	"context"
	"testing"

	"ingress-identity/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestCheckStructure(t *testing.T) {
	t.Run("Bucket Missing", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "identity").Return(false, nil)

		_, err := CheckStructure(context.Background(), mockClient, "identity")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "does not exist")
	})

	t.Run("All Missing", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "identity").Return(true, nil)
		ch := make(chan minio.ObjectInfo)
		close(ch)
		mockClient.On("ListObjects", mock.Anything, "identity", mock.Anything).Return((<-chan minio.ObjectInfo)(ch))

		missing, err := CheckStructure(context.Background(), mockClient, "identity")
		assert.NoError(t, err)
		assert.Len(t, missing, len(RequiredFolders))
	})

	t.Run("All Present", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "identity").Return(true, nil)

		for _, folder := range RequiredFolders {
			ch := make(chan minio.ObjectInfo, 1)
			ch <- minio.ObjectInfo{Key: folder + "/"}
			close(ch)
			mockClient.On("ListObjects", mock.Anything, "identity", mock.MatchedBy(func(opts minio.ListObjectsOptions) bool {
				return opts.Prefix == folder+"/"
			})).Return((<-chan minio.ObjectInfo)(ch))
		}

		missing, err := CheckStructure(context.Background(), mockClient, "identity")
		assert.NoError(t, err)
		assert.Len(t, missing, 0)
	})
}

func TestCheckStructure_Disabled(t *testing.T) {
	_, err := CheckStructure(context.Background(), nil, "identity")
	assert.ErrorIs(t, err, ErrStorageDisabled)
}

func TestFixStructure(t *testing.T) {
	logger := zap.NewNop()

	t.Run("Creates Marker", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "identity").Return(true, nil)
		mockClient.On("PutObject", mock.Anything, "identity", "snapshots/", mock.Anything, int64(0), mock.Anything).Return(minio.UploadInfo{}, nil)

		err := FixStructure(context.Background(), mockClient, "identity", "", logger, []string{"snapshots"})
		assert.NoError(t, err)
		mockClient.AssertNumberOfCalls(t, "PutObject", 1)
	})

	t.Run("Creates Bucket", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "identity").Return(false, nil)
		mockClient.On("MakeBucket", mock.Anything, "identity", mock.Anything).Return(nil)
		mockClient.On("PutObject", mock.Anything, "identity", "snapshots/", mock.Anything, int64(0), mock.Anything).Return(minio.UploadInfo{}, nil)

		err := FixStructure(context.Background(), mockClient, "identity", "eu-west-1", logger, RequiredFolders)
		assert.NoError(t, err)
		mockClient.AssertExpectations(t)
	})
}
