package spreadsheet

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"

	"ingress-identity/core/auth"
	"ingress-identity/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Fetcher returns the raw grid of a tab, header row first.
type Fetcher interface {
	Fetch(ctx context.Context, key Key) ([][]string, error)
}

// HTTPFetcher reads the CSV export through a credential supplier.
type HTTPFetcher struct {
	supplier auth.Supplier
	baseURL  string
}

// NewHTTPFetcher creates a fetcher. An empty baseURL uses BaseURL.
func NewHTTPFetcher(supplier auth.Supplier, baseURL string) *HTTPFetcher {
	return &HTTPFetcher{supplier: supplier, baseURL: baseURL}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, key Key) ([][]string, error) {
	body, err := f.supplier.FetchAuthenticated(ctx, key.ExportURL(f.baseURL))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sheet %s: %w", key, err)
	}
	grid, err := DecodeCSV(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse sheet %s: %w", key, err)
	}
	return grid, nil
}

// DecodeCSV parses CSV data with ragged rows allowed.
func DecodeCSV(data []byte) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	return r.ReadAll()
}

// EncodeCSV writes grid as CSV.
func EncodeCSV(grid [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(grid); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MirroredFetcher stores every successful read in object storage and serves the
// stored snapshot when the live read fails.
type MirroredFetcher struct {
	next   Fetcher
	client storage.Client
	bucket string
	logger *zap.Logger
}

// NewMirroredFetcher wraps next.
func NewMirroredFetcher(next Fetcher, client storage.Client, bucket string, logger *zap.Logger) *MirroredFetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MirroredFetcher{next: next, client: client, bucket: bucket, logger: logger}
}

func (f *MirroredFetcher) Fetch(ctx context.Context, key Key) ([][]string, error) {
	object := key.SnapshotName(storage.SnapshotPrefix)
	log := f.logger.With(zap.String("sheet", key.String()), zap.String("object", object))

	grid, err := f.next.Fetch(ctx, key)
	if err == nil {
		f.store(ctx, object, grid, log)
		return grid, nil
	}

	snapshot, snapErr := f.load(ctx, object)
	if snapErr != nil {
		if !storage.IsNotFound(snapErr) {
			log.Warn("Snapshot unavailable", zap.Error(snapErr))
		}
		return nil, err
	}
	log.Warn("Serving snapshot after fetch failure", zap.Error(err))
	return snapshot, nil
}

func (f *MirroredFetcher) store(ctx context.Context, object string, grid [][]string, log *zap.Logger) {
	data, err := EncodeCSV(grid)
	if err != nil {
		log.Warn("Failed to encode snapshot", zap.Error(err))
		return
	}
	_, err = f.client.PutObject(ctx, f.bucket, object, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{ContentType: "text/csv"})
	if err != nil {
		log.Warn("Failed to store snapshot", zap.Error(err))
	}
}

func (f *MirroredFetcher) load(ctx context.Context, object string) ([][]string, error) {
	obj, err := f.client.GetObject(ctx, f.bucket, object, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(obj); err != nil {
		return nil, err
	}
	return DecodeCSV(buf.Bytes())
}
