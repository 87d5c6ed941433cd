package checks

import (
	"context"
	"errors"
	"testing"

	"ingress-identity/core/spreadsheet"
	"ingress-identity/core/spreadsheet/mocks"
	"ingress-identity/feature/identity/sources"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func key(s string) spreadsheet.Key {
	return spreadsheet.MustParseKey(s)
}

func TestCheckSources(t *testing.T) {
	fetcher := new(mocks.Fetcher)
	fetcher.On("Fetch", mock.Anything, key("m1")).Return([][]string{
		{"key", "tag", "lastupdated", "refresh"},
		{"s1", "Good", "1", "1"},
		{"s2", "Broken", "1", "1"},
	}, nil)
	fetcher.On("Fetch", mock.Anything, key("s1")).Return([][]string{
		{"oid", "nickname", "level"},
		{"1", "john", "8"},
		{"", "ghost", "3"},
	}, nil)
	fetcher.On("Fetch", mock.Anything, key("s2")).Return(nil, errors.New("unreachable"))
	fetcher.On("Fetch", mock.Anything, key("m2")).Return(nil, errors.New("unreachable"))

	root := sources.NewRootSource(spreadsheet.NewAccessor(fetcher, nil))
	_ = root.Load(context.Background(), []string{"m1", "m2"})

	report := CheckSources(root)
	assert.Equal(t, 2, report.Manifests)
	assert.Equal(t, 2, report.Sources)
	assert.Equal(t, []string{"m2"}, report.FailedManifests)
	assert.Equal(t, []string{"m1/s2"}, report.FailedSources)
	assert.Positive(t, report.ErrorCount)
	assert.Equal(t, "error", report.Status)
}

func TestCheckSources_Healthy(t *testing.T) {
	fetcher := new(mocks.Fetcher)
	fetcher.On("Fetch", mock.Anything, key("m1")).Return([][]string{
		{"key", "tag", "faction", "lastupdated", "refresh"},
		{"s1", "Good", "enlightened", "1", "1"},
	}, nil)
	fetcher.On("Fetch", mock.Anything, key("s1")).Return([][]string{
		{"oid", "nickname"},
		{"1", "john"},
	}, nil)

	root := sources.NewRootSource(spreadsheet.NewAccessor(fetcher, nil))
	assert.NoError(t, root.Load(context.Background(), []string{"m1"}))

	report := CheckSources(root)
	assert.Equal(t, "ok", report.Status)
	assert.Empty(t, report.FailedSources)
	assert.Zero(t, report.ErrorCount)
}
