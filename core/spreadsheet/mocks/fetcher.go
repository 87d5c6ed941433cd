package mocks

import (
	"context"

	"ingress-identity/core/spreadsheet"

	"github.com/stretchr/testify/mock"
)

// Fetcher is a mock implementation of spreadsheet.Fetcher
type Fetcher struct {
	mock.Mock
}

func (m *Fetcher) Fetch(ctx context.Context, key spreadsheet.Key) ([][]string, error) {
	args := m.Called(ctx, key)
	if grid, ok := args.Get(0).([][]string); ok {
		return grid, args.Error(1)
	}
	return nil, args.Error(1)
}
