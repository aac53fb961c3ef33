package services

import (
	"context"
	"log/slog"
	"sort"

	"github.com/ci-research/learninghub-service/internal/cache"
	"github.com/ci-research/learninghub-service/internal/models"
	"github.com/ci-research/learninghub-service/internal/store"
)

const leaderboardCacheKey = "boards"

type leaderboardService struct {
	store  *store.Store
	cache  *cache.CacheHelper
	logger *slog.Logger
}

func NewLeaderboardService(st *store.Store, cacheHelper *cache.CacheHelper, logger *slog.Logger) LeaderboardService {
	return &leaderboardService{
		store:  st,
		cache:  cacheHelper,
		logger: logger,
	}
}

// Leaderboard computes the three rankings: top ten by points, top five
// recommenders by recommended course count, top five completers by
// completed course count. Results are cached briefly; a cache miss or an
// unavailable cache just recomputes.
func (s *leaderboardService) Leaderboard(ctx context.Context) (*LeaderboardResponse, error) {
	var cached LeaderboardResponse
	if err := s.cache.Get(ctx, leaderboardCacheKey, &cached); err == nil {
		return &cached, nil
	}

	snap := s.store.Snapshot()

	recommendations := func(u models.User) int {
		n := 0
		for _, c := range snap.Courses {
			if c.RecommendedBy == u.ID {
				n++
			}
		}
		return n
	}
	completions := func(u models.User) int {
		n := 0
		for _, e := range snap.Enrollments {
			if e.UserID == u.ID && e.Status == models.StatusFullyCompleted {
				n++
			}
		}
		return n
	}

	resp := &LeaderboardResponse{
		TopByPoints:     topByPoints(snap.Users, 10),
		TopRecommenders: topByCount(snap.Users, 5, recommendations),
		TopCompleters:   topByCount(snap.Users, 5, completions),
	}

	if err := s.cache.Set(ctx, leaderboardCacheKey, resp, cache.LeaderboardTTL); err != nil {
		s.logger.Warn("failed to cache leaderboard", "error", err)
	}

	return resp, nil
}

func topByPoints(users []models.User, limit int) []RankedUser {
	sorted := make([]models.User, len(users))
	copy(sorted, users)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Points > sorted[j].Points
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}

	out := make([]RankedUser, len(sorted))
	for i, u := range sorted {
		out[i] = RankedUser{User: u}
	}
	return out
}

func topByCount(users []models.User, limit int, count func(models.User) int) []RankedUser {
	ranked := make([]RankedUser, 0, len(users))
	for _, u := range users {
		ranked = append(ranked, RankedUser{User: u, Count: count(u)})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
