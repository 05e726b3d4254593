// Package dashboard coordinates the data layer of the StartupLens
// dashboard. Queries go through the entity cache under declared tags;
// mutations go to the API and invalidate their tag set on success
// only. On failure no invalidation happens and the error is returned
// for user-facing reporting.
package dashboard

import (
	"context"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/startuplens/lens/internal/api"
	"github.com/startuplens/lens/internal/apierr"
	"github.com/startuplens/lens/internal/cache"
	"github.com/startuplens/lens/internal/validate"
)

// Service is the query/mutation coordinator.
type Service struct {
	api    *api.Client
	cache  *cache.Store
	logger zerolog.Logger
}

// New creates a service over the API client and entity cache.
func New(apiClient *api.Client, store *cache.Store, logger zerolog.Logger) *Service {
	return &Service{
		api:    apiClient,
		cache:  store,
		logger: logger.With().Str("component", "dashboard").Logger(),
	}
}

func ideaTags(id int) []cache.Tag {
	return []cache.Tag{
		cache.List(cache.TypeIdea),
		cache.Entity(cache.TypeIdea, strconv.Itoa(id)),
	}
}

func planTags(id int) []cache.Tag {
	return []cache.Tag{
		cache.List(cache.TypeReport),
		cache.Entity(cache.TypeReport, strconv.Itoa(id)),
	}
}

// Profile returns the cached user profile.
func (s *Service) Profile(ctx context.Context) (*api.UserProfile, error) {
	return cache.Fetch(ctx, s.cache, "users/profile", []cache.Tag{cache.List(cache.TypeUser)},
		func(ctx context.Context) (*api.UserProfile, error) {
			return s.api.Profile(ctx)
		})
}

// RecentIdeas returns the cached dashboard idea subset.
func (s *Service) RecentIdeas(ctx context.Context) (*api.IdeasResponse, error) {
	return cache.Fetch(ctx, s.cache, "ideas/recent", []cache.Tag{cache.List(cache.TypeIdea)},
		func(ctx context.Context) (*api.IdeasResponse, error) {
			return s.api.RecentIdeas(ctx)
		})
}

// Validations returns one cached page of the idea list. The cache key
// carries the full parameter tuple: changing page, search, or ordering
// is a miss, never a merge.
func (s *Service) Validations(ctx context.Context, params api.ListParams) (*api.ValidationsResponse, error) {
	key := "ideas/validations?" + params.Encode()
	return cache.Fetch(ctx, s.cache, key, []cache.Tag{cache.List(cache.TypeIdea)},
		func(ctx context.Context) (*api.ValidationsResponse, error) {
			return s.api.Validations(ctx, params)
		})
}

// Idea returns one cached idea with its reports.
func (s *Service) Idea(ctx context.Context, id int) (*api.Idea, error) {
	key := "ideas/detail/" + strconv.Itoa(id)
	return cache.Fetch(ctx, s.cache, key, ideaTags(id),
		func(ctx context.Context) (*api.Idea, error) {
			return s.api.Idea(ctx, id)
		})
}

// BusinessPlans returns one cached page of the business-plan list.
func (s *Service) BusinessPlans(ctx context.Context, params api.ListParams) (*api.BusinessPlansResponse, error) {
	key := "plans?" + params.Encode()
	return cache.Fetch(ctx, s.cache, key, []cache.Tag{cache.List(cache.TypeReport)},
		func(ctx context.Context) (*api.BusinessPlansResponse, error) {
			return s.api.BusinessPlans(ctx, params)
		})
}

// BusinessPlan returns one cached long-form plan document.
func (s *Service) BusinessPlan(ctx context.Context, id int) (*api.BusinessPlanDetail, error) {
	key := "plans/detail/" + strconv.Itoa(id)
	return cache.Fetch(ctx, s.cache, key, planTags(id),
		func(ctx context.Context) (*api.BusinessPlanDetail, error) {
			return s.api.BusinessPlanDetail(ctx, id)
		})
}

// CreateIdea validates locally, submits the idea for analysis, and
// invalidates the idea views. Invalid input never reaches the network.
func (s *Service) CreateIdea(ctx context.Context, title, description string) (*api.CreateIdeaResponse, error) {
	if fields := validate.Idea(title, description); fields != nil {
		return nil, apierr.Validation(fields)
	}

	resp, err := s.api.CreateIdea(ctx, title, description)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(cache.List(cache.TypeIdea))
	s.logger.Info().Int("idea_id", resp.ID).Msg("idea submitted for analysis")
	return resp, nil
}

// DeleteIdea soft-deletes an idea and invalidates the idea views.
func (s *Service) DeleteIdea(ctx context.Context, id int) error {
	if err := s.api.DeleteIdea(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(cache.List(cache.TypeIdea))
	s.logger.Info().Int("idea_id", id).Msg("idea deleted")
	return nil
}

// UpdateReportSteps replaces a report's checklist and invalidates both
// report and idea views, since idea details embed the steps.
func (s *Service) UpdateReportSteps(ctx context.Context, reportID int, steps []api.Step) error {
	if err := s.api.UpdateReportSteps(ctx, reportID, steps); err != nil {
		return err
	}
	s.cache.Invalidate(cache.List(cache.TypeReport), cache.List(cache.TypeIdea))
	return nil
}

// GenerateBusinessPlan derives a plan from an idea and invalidates the
// plan views.
func (s *Service) GenerateBusinessPlan(ctx context.Context, ideaID int) (*api.GenerateBusinessPlanResponse, error) {
	resp, err := s.api.GenerateBusinessPlan(ctx, ideaID)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(cache.List(cache.TypeReport))
	s.logger.Info().Int("plan_id", resp.BusinessPlanID).Msg("business plan generated")
	return resp, nil
}

// DeleteBusinessPlan soft-deletes a plan and invalidates the plan views.
func (s *Service) DeleteBusinessPlan(ctx context.Context, id int) error {
	if err := s.api.DeleteBusinessPlan(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(cache.List(cache.TypeReport))
	s.logger.Info().Int("plan_id", id).Msg("business plan deleted")
	return nil
}
