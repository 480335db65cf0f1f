package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bferrors "github.com/lepinkainen/bookflow/internal/errors"
	"github.com/lepinkainen/bookflow/internal/googlebooks"
	"github.com/lepinkainen/bookflow/internal/transform"
)

func testVolumes() []googlebooks.Volume {
	return []googlebooks.Volume{
		{VolumeInfo: googlebooks.VolumeInfo{Title: "Quilting Basics", Authors: []string{"Jane Doe"}, PublishedDate: "2001-05-01"}},
		{VolumeInfo: googlebooks.VolumeInfo{Title: "Patchwork Patterns", Authors: []string{"John Roe"}}},
		{VolumeInfo: googlebooks.VolumeInfo{Title: "Modern Quilts", Authors: []string{"Ann Poe"}, PublishedDate: "2015"}},
	}
}

func TestRunExecutesStagesInOrder(t *testing.T) {
	var order []string
	var loaded []transform.Record

	p := New(DefaultJob("quilting", 5),
		func(ctx context.Context) ([]googlebooks.Volume, error) {
			order = append(order, "fetch")
			return testVolumes(), nil
		},
		func(volumes []googlebooks.Volume) []transform.Record {
			order = append(order, "transform")
			return transform.Records(volumes)
		},
		func(ctx context.Context, records []transform.Record) error {
			order = append(order, "load")
			loaded = records
			return nil
		},
	)

	err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"fetch", "transform", "load"}, order)

	require.Len(t, loaded, 3)
	assert.Equal(t, "2001-05-01", loaded[0].PublishedDate)
	assert.Equal(t, transform.PlaceholderDate, loaded[1].PublishedDate)
	assert.Equal(t, "2015", loaded[2].PublishedDate)
}

func TestRunFetchFailureSkipsLoad(t *testing.T) {
	loadCalled := false

	p := New(DefaultJob("quilting", 5),
		func(ctx context.Context) ([]googlebooks.Volume, error) {
			return nil, bferrors.NewRemoteServiceError(403, "quota exceeded")
		},
		transform.Records,
		func(ctx context.Context, records []transform.Record) error {
			loadCalled = true
			return nil
		},
	)

	err := p.Run(context.Background())
	require.Error(t, err)
	assert.False(t, loadCalled, "load must not run after a failed fetch")
	assert.True(t, bferrors.IsRemoteServiceError(err))
	assert.Contains(t, err.Error(), "fetch stage")
}

func TestRunLoadFailurePropagates(t *testing.T) {
	p := New(DefaultJob("quilting", 5),
		func(ctx context.Context) ([]googlebooks.Volume, error) {
			return testVolumes(), nil
		},
		transform.Records,
		func(ctx context.Context, records []transform.Record) error {
			return bferrors.NewPersistenceError("connect", assert.AnError)
		},
	)

	err := p.Run(context.Background())
	require.Error(t, err)
	assert.True(t, bferrors.IsPersistenceError(err))
	assert.Contains(t, err.Error(), "load stage")
}

func TestRunEmptyFetchLoadsEmptyBatch(t *testing.T) {
	var loaded []transform.Record
	loadCalled := false

	p := New(DefaultJob("nothing", 5),
		func(ctx context.Context) ([]googlebooks.Volume, error) {
			return nil, nil
		},
		transform.Records,
		func(ctx context.Context, records []transform.Record) error {
			loadCalled = true
			loaded = records
			return nil
		},
	)

	err := p.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, loadCalled)
	assert.Empty(t, loaded)
}
