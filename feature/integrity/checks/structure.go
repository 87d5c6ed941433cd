package checks

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"ingress-identity/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// ErrStorageDisabled is returned when no storage client is configured.
var ErrStorageDisabled = errors.New("storage is disabled")

// RequiredFolders lists the folders that must exist in the bucket.
var RequiredFolders = []string{strings.TrimSuffix(storage.SnapshotPrefix, "/")}

// CheckStructure returns a list of missing folders.
func CheckStructure(ctx context.Context, client storage.Client, bucket string) ([]string, error) {
	if client == nil {
		return nil, ErrStorageDisabled
	}
	missing := []string{}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", bucket)
	}

	for _, folder := range RequiredFolders {
		opts := minio.ListObjectsOptions{
			Prefix:    folder + "/",
			Recursive: false,
			MaxKeys:   1,
		}

		found := false
		for range client.ListObjects(ctx, bucket, opts) {
			found = true
			break
		}

		if !found {
			missing = append(missing, folder)
		}
	}

	return missing, nil
}

// FixStructure creates the bucket if needed and a marker object for each
// missing folder.
func FixStructure(ctx context.Context, client storage.Client, bucket, region string, logger *zap.Logger, missing []string) error {
	if client == nil {
		return ErrStorageDisabled
	}
	if err := storage.EnsureBucket(ctx, client, bucket, region); err != nil {
		return err
	}
	for _, folder := range missing {
		marker := folder + "/"
		_, err := client.PutObject(ctx, bucket, marker, bytes.NewReader([]byte{}), 0, minio.PutObjectOptions{})
		if err != nil {
			logger.Error("Failed to create folder", zap.String("folder", folder), zap.Error(err))
			return err
		}
		logger.Info("Created missing folder", zap.String("folder", folder))
	}
	return nil
}
