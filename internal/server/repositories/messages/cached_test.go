package messages

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/toldya/internal/common"
	"github.com/dmitrijs2005/toldya/internal/server/metrics"
	"github.com/dmitrijs2005/toldya/internal/server/repositories/messages/mocks"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestCachedRepository_GetCachesHits(t *testing.T) {
	ctrl := gomock.NewController(t)
	next := mocks.NewMockRepository(ctrl)
	repo := NewCachedRepository(next, 100, time.Minute)
	ctx := context.Background()

	m := sampleMessage("m1")
	next.EXPECT().Get(gomock.Any(), "m1").Return(m, nil).Times(1)

	hits := testutil.ToFloat64(metrics.CacheLookups.WithLabelValues("hit"))
	misses := testutil.ToFloat64(metrics.CacheLookups.WithLabelValues("miss"))

	got, err := repo.Get(ctx, "m1")
	require.NoError(t, err)
	require.Equal(t, m, got)

	got, err = repo.Get(ctx, "m1")
	require.NoError(t, err)
	require.Equal(t, m, got)

	require.Equal(t, hits+1, testutil.ToFloat64(metrics.CacheLookups.WithLabelValues("hit")))
	require.Equal(t, misses+1, testutil.ToFloat64(metrics.CacheLookups.WithLabelValues("miss")))
}

func TestCachedRepository_MissesAreNotCached(t *testing.T) {
	ctrl := gomock.NewController(t)
	next := mocks.NewMockRepository(ctrl)
	repo := NewCachedRepository(next, 100, 0)
	ctx := context.Background()

	next.EXPECT().Get(gomock.Any(), "m1").Return(nil, common.ErrorNotFound).Times(2)

	_, err := repo.Get(ctx, "m1")
	require.ErrorIs(t, err, common.ErrorNotFound)
	_, err = repo.Get(ctx, "m1")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestCachedRepository_PutWritesThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	next := mocks.NewMockRepository(ctrl)
	repo := NewCachedRepository(next, 100, time.Minute)
	ctx := context.Background()

	m := sampleMessage("m1")
	next.EXPECT().Put(gomock.Any(), m).Return(nil)

	require.NoError(t, repo.Put(ctx, m))

	got, err := repo.Get(ctx, "m1")
	require.NoError(t, err)
	require.Equal(t, "secret", got.Body)
}

func TestCachedRepository_FailedPutIsNotCached(t *testing.T) {
	ctrl := gomock.NewController(t)
	next := mocks.NewMockRepository(ctrl)
	repo := NewCachedRepository(next, 100, time.Minute)
	ctx := context.Background()

	m := sampleMessage("m1")
	next.EXPECT().Put(gomock.Any(), m).Return(errors.New("boom"))
	next.EXPECT().Get(gomock.Any(), "m1").Return(nil, common.ErrorNotFound)

	require.Error(t, repo.Put(ctx, m))
	_, err := repo.Get(ctx, "m1")
	require.ErrorIs(t, err, common.ErrorNotFound)
}
