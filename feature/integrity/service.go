package integrity

import (
	"context"

	"ingress-identity/core/storage"
	"ingress-identity/feature/identity/sources"
	"ingress-identity/feature/integrity/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service runs the infrastructure checks. Any of client, db or root may be
// nil when the matching subsystem is disabled.
type Service struct {
	client storage.Client
	bucket string
	region string
	db     *gorm.DB
	root   *sources.RootSource
	logger *zap.Logger
}

// NewService creates a new integrity service.
func NewService(client storage.Client, bucket, region string, db *gorm.DB, root *sources.RootSource, logger *zap.Logger) *Service {
	return &Service{
		client: client,
		bucket: bucket,
		region: region,
		db:     db,
		root:   root,
		logger: logger,
	}
}

// CheckStructure returns a list of missing folders.
func (s *Service) CheckStructure(ctx context.Context) ([]string, error) {
	return checks.CheckStructure(ctx, s.client, s.bucket)
}

// FixStructure creates the missing folders.
func (s *Service) FixStructure(ctx context.Context, missing []string) error {
	return checks.FixStructure(ctx, s.client, s.bucket, s.region, s.logger, missing)
}

// CheckDatabase verifies the settings table.
func (s *Service) CheckDatabase() (*checks.SchemaReport, error) {
	return checks.CheckSettingsSchema(s.db)
}

// CheckSources summarizes the loaded player tree.
func (s *Service) CheckSources() *checks.SourcesReport {
	if s.root == nil {
		return &checks.SourcesReport{FailedManifests: []string{}, FailedSources: []string{}, Status: "ok"}
	}
	return checks.CheckSources(s.root)
}
