package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/gurmatacademy/portal/internal/domain/model"
	"github.com/gurmatacademy/portal/internal/mocks"
)

func TestGurbaniService_RaagIndex_CacheFillUsesConfiguredTTL(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	entries := []model.RaagEntry{
		{ID: 1, RaagKey: "sri-raag", PageRef: "14-93"},
		{ID: 2, RaagKey: "raag-majh", PageRef: "94-150"},
	}
	upstream := &fakeUpstream{raagEntries: entries}
	cache := mocks.NewMockRaagCache(ctrl)

	cache.EXPECT().Get(gomock.Any()).Return(nil, false, nil)
	// the configured TTL must reach the cache write untouched
	cache.EXPECT().Set(gomock.Any(), entries, 45*time.Minute).Return(nil)

	svc, err := NewGurbaniService(GurbaniServiceOptions{
		Upstream: upstream,
		Cache:    cache,
		CacheTTL: 45 * time.Minute,
	})
	require.NoError(t, err)

	got, err := svc.RaagIndex(context.Background())
	require.NoError(t, err)
	assert.Equal(t, entries, got)
	assert.Equal(t, 1, upstream.fetchCalls)
}
