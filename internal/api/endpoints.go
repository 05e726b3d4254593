package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/startuplens/lens/pkg/session"
)

// Login implements session.AuthService against POST /users/login/.
func (c *Client) Login(ctx context.Context, creds session.Credentials) (session.Grant, error) {
	var out LoginResponse
	err := c.do(ctx, http.MethodPost, "/users/login/", LoginRequest{
		UsernameOrEmail: creds.UsernameOrEmail,
		Password:        creds.Password,
	}, &out)
	if err != nil {
		return session.Grant{}, err
	}
	return session.Grant{
		AccessToken:  out.AccessToken,
		RefreshToken: out.RefreshToken,
		ExpiresTime:  out.ExpiresTime,
	}, nil
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	var out RegisterResponse
	if err := c.do(ctx, http.MethodPost, "/users/register/", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Profile fetches the authenticated user's profile.
func (c *Client) Profile(ctx context.Context) (*UserProfile, error) {
	var out userProfileResponse
	if err := c.do(ctx, http.MethodGet, "/users/my-profile/", nil, &out); err != nil {
		return nil, err
	}
	return &out.Results, nil
}

// RecentIdeas fetches the unpaginated idea subset for the dashboard.
func (c *Client) RecentIdeas(ctx context.Context) (*IdeasResponse, error) {
	var out IdeasResponse
	if err := c.do(ctx, http.MethodGet, "/ideas/my-ideas/", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Validations fetches one page of the idea list.
func (c *Client) Validations(ctx context.Context, params ListParams) (*ValidationsResponse, error) {
	var out ValidationsResponse
	path := "/ideas/my-ideas/?" + params.Encode()
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Idea fetches one idea with its reports.
func (c *Client) Idea(ctx context.Context, id int) (*Idea, error) {
	var out Idea
	path := fmt.Sprintf("/ideas/my-ideas/%d/", id)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateIdea submits an idea for analysis.
func (c *Client) CreateIdea(ctx context.Context, title, description string) (*CreateIdeaResponse, error) {
	var out CreateIdeaResponse
	body := map[string]string{"title": title, "description": description}
	if err := c.do(ctx, http.MethodPost, "/ideas/analyze-create/", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteIdea soft-deletes an idea. The record stays in authoritative
// storage with is_deleted set; it only disappears from filtered lists.
func (c *Client) DeleteIdea(ctx context.Context, id int) error {
	path := fmt.Sprintf("/ideas/idea-delete/%d/", id)
	body := map[string]bool{"is_deleted": true}
	return c.do(ctx, http.MethodPatch, path, body, nil)
}

// UpdateReportSteps replaces a report's step checklist.
func (c *Client) UpdateReportSteps(ctx context.Context, reportID int, steps []Step) error {
	path := fmt.Sprintf("/ideas/update-report-steps/%d/", reportID)
	body := map[string][]Step{"steps": steps}
	return c.do(ctx, http.MethodPatch, path, body, nil)
}

// BusinessPlans fetches one page of the business-plan list.
func (c *Client) BusinessPlans(ctx context.Context, params ListParams) (*BusinessPlansResponse, error) {
	var out BusinessPlansResponse
	path := "/ideas/business-plans/?" + params.Encode()
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// BusinessPlanDetail fetches the long-form plan document.
func (c *Client) BusinessPlanDetail(ctx context.Context, id int) (*BusinessPlanDetail, error) {
	var out BusinessPlanDetail
	path := fmt.Sprintf("/ideas/business-plan-detail/%d/", id)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GenerateBusinessPlan derives a new business plan from an idea.
func (c *Client) GenerateBusinessPlan(ctx context.Context, ideaID int) (*GenerateBusinessPlanResponse, error) {
	var out GenerateBusinessPlanResponse
	path := fmt.Sprintf("/ideas/generate-business-plan/%d/", ideaID)
	if err := c.do(ctx, http.MethodPost, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteBusinessPlan soft-deletes a business plan.
func (c *Client) DeleteBusinessPlan(ctx context.Context, id int) error {
	path := fmt.Sprintf("/ideas/business-plans/%d/delete/", id)
	return c.do(ctx, http.MethodPatch, path, nil, nil)
}
