//go:build integration

package geocode_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"relief-api/internal/geocode"
	"relief-api/internal/geocode/mocks"
	"relief-api/internal/postal"
	"relief-api/pkg/testutil/containers"
)

type SharedStageSuite struct {
	suite.Suite
	redis *containers.RedisContainer
}

func TestSharedStageSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(SharedStageSuite))
}

func (s *SharedStageSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
}

func (s *SharedStageSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *SharedStageSuite) TestMissThenRecordThenHit() {
	ctx := context.Background()
	stage := geocode.NewSharedStage(s.redis.Client, time.Hour)

	_, err := stage.Lookup(ctx, "N1G 2W1", "N1G2W1")
	s.ErrorIs(err, geocode.ErrMiss)

	stage.Record(ctx, "N1G2W1", guelph)
	got, err := stage.Lookup(ctx, "N1G 2W1", "N1G2W1")
	s.Require().NoError(err)
	s.Equal(guelph, got)

	ttl, err := s.redis.Client.TTL(ctx, "geocode:N1G2W1").Result()
	s.Require().NoError(err)
	s.Positive(ttl)
}

func (s *SharedStageSuite) TestCorruptValueIsAMiss() {
	ctx := context.Background()
	s.Require().NoError(s.redis.Client.Set(ctx, "geocode:N1G2W1", "not json", 0).Err())
	_, err := geocode.NewSharedStage(s.redis.Client, time.Hour).Lookup(ctx, "", "N1G2W1")
	s.ErrorIs(err, geocode.ErrMiss)
}

// 两个副本共享 Redis：第一个外呼后，第二个不再外呼
func (s *SharedStageSuite) TestReplicasShareProviderResults() {
	ctrl := gomock.NewController(s.T())
	provider := mocks.NewMockProvider(ctrl)
	provider.EXPECT().FetchCoordinate(gomock.Any(), gomock.Any()).Return(guelph, nil).Times(1)

	newReplica := func() *geocode.Resolver {
		return geocode.NewResolver(
			&geocode.StaticStage{Index: postal.NewTorontoIndex()},
			&geocode.CacheStage{Cache: geocode.NewCache(10, time.Hour)},
			geocode.NewSharedStage(s.redis.Client, time.Hour),
			&geocode.ProviderStage{Provider: provider},
		)
	}
	a, b := newReplica(), newReplica()

	got, err := a.Resolve(context.Background(), "N1G 2W1")
	s.Require().NoError(err)
	s.Equal(guelph, got)

	got, err = b.Resolve(context.Background(), "n1g2w1")
	s.Require().NoError(err)
	s.Equal(guelph, got)
}
