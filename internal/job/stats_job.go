package job

import (
	"context"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/micropost/internal/metrics"
)

type Counter interface {
	Count(ctx context.Context) (int, error)
}

// StatsJob refreshes the user and post total gauges.
type StatsJob struct {
	users Counter
	posts Counter
}

func NewStatsJob(users, posts Counter) *StatsJob {
	return &StatsJob{users: users, posts: posts}
}

func (j *StatsJob) Name() string {
	return "store_stats"
}

func (j *StatsJob) Run(ctx context.Context) error {
	users, err := j.users.Count(ctx)
	if err != nil {
		return err
	}
	posts, err := j.posts.Count(ctx)
	if err != nil {
		return err
	}
	metrics.UsersTotal.Set(float64(users))
	metrics.PostsTotal.Set(float64(posts))
	logutil.GetLogger(ctx).Debug("store stats refreshed", zap.Int("users", users), zap.Int("posts", posts))
	return nil
}
