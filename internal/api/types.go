package api

import (
	"net/url"
	"strconv"
)

// LoginRequest is the body of POST /users/login/.
type LoginRequest struct {
	UsernameOrEmail string `json:"username_or_email"`
	Password        string `json:"password"`
}

// LoginResponse carries the issued tokens. ExpiresTime is minutes
// until the access token expires.
type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresTime  int    `json:"expires_time"`
}

// RegisterRequest is the body of POST /users/register/.
type RegisterRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// RegisterResponse is the newly created account.
type RegisterResponse struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// UserProfile is the authenticated user's profile.
type UserProfile struct {
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// userProfileResponse is the envelope around GET /users/my-profile/.
type userProfileResponse struct {
	Status  int         `json:"status"`
	Results UserProfile `json:"results"`
}

// Step statuses.
const (
	StepPending = "pending"
	StepSuccess = "success"
)

// Step is one item of a report's next-step checklist.
type Step struct {
	Task   string `json:"task"`
	Status string `json:"status"`
}

// SwotAnalysis groups the four SWOT quadrants.
type SwotAnalysis struct {
	Strengths     []string `json:"strengths"`
	Weaknesses    []string `json:"weaknesses"`
	Opportunities []string `json:"opportunities"`
	Threats       []string `json:"threats"`
}

// AiAnalysis is the opaque analysis payload generated server-side.
type AiAnalysis struct {
	Swot               SwotAnalysis `json:"swot"`
	Competitors        []string     `json:"competitors"`
	Steps              []Step       `json:"steps"`
	MarketGap          string       `json:"market_gap"`
	FullReportMarkdown string       `json:"full_report_markdown"`
	Score              float64      `json:"score"`
}

// IdeaReport is the AI-generated analysis attached to an idea.
type IdeaReport struct {
	ID       int         `json:"id"`
	Score    float64     `json:"score"`
	Analysis *AiAnalysis `json:"ai_analysis,omitempty"`
	Steps    []Step      `json:"steps,omitempty"`
}

// Idea is a submitted startup concept with its reports.
type Idea struct {
	ID          int          `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	CreatedAt   string       `json:"created_at"`
	Score       float64      `json:"score"`
	Reports     []IdeaReport `json:"reports"`
}

// IdeasResponse is the unpaginated dashboard subset of ideas.
type IdeasResponse struct {
	Count   int    `json:"count"`
	Results []Idea `json:"results"`
}

// ValidationItem is one row of the paginated idea list.
type ValidationItem struct {
	ID          int     `json:"id"`
	User        int     `json:"user"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	IsDeleted   bool    `json:"is_deleted"`
	CreatedAt   string  `json:"created_at"`
	Score       float64 `json:"score"`
}

// ValidationsResponse is a page of the idea list. Count is the
// server's total, independent of the page size.
type ValidationsResponse struct {
	Count    int              `json:"count"`
	Next     *string          `json:"next"`
	Previous *string          `json:"previous"`
	Results  []ValidationItem `json:"results"`
}

// BusinessPlan is one row of the paginated business-plan list.
type BusinessPlan struct {
	ID          int    `json:"id"`
	IdeaID      int    `json:"idea_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
}

// BusinessPlansResponse is a page of the business-plan list.
type BusinessPlansResponse struct {
	Count    int            `json:"count"`
	Next     *string        `json:"next"`
	Previous *string        `json:"previous"`
	Results  []BusinessPlan `json:"results"`
}

// RoadmapEntry is one month of a business plan's roadmap.
type RoadmapEntry struct {
	Month string `json:"month"`
	Focus string `json:"focus"`
}

// BusinessPlanDetail is the long-form business-plan document.
type BusinessPlanDetail struct {
	ID                    int            `json:"id"`
	Title                 string         `json:"title"`
	Description           string         `json:"description"`
	ExecutiveSummary      string         `json:"executive_summary"`
	MarketAnalysis        string         `json:"market_analysis"`
	CompetitorPositioning string         `json:"competitor_positioning"`
	TargetAudience        string         `json:"target_audience"`
	RevenueModel          string         `json:"revenue_model"`
	MarketingStrategy     string         `json:"marketing_strategy"`
	TechArchitecture      string         `json:"tech_architecture"`
	Roadmap               []RoadmapEntry `json:"roadmap"`
	CreatedAt             string         `json:"created_at"`
}

// CreateIdeaResponse is the id of a newly analyzed idea.
type CreateIdeaResponse struct {
	ID int `json:"id"`
}

// GenerateBusinessPlanResponse confirms a generated plan.
type GenerateBusinessPlanResponse struct {
	Message        string `json:"message"`
	BusinessPlanID int    `json:"business_plan_id"`
}

// Orderings accepted by the list endpoints.
const (
	OrderNewestFirst  = "-created_at"
	OrderOldestFirst  = "created_at"
	OrderHighestScore = "-score"
	OrderLowestScore  = "score"
)

// ListParams is the full parameter tuple of a paginated list request.
// Two tuples that differ in any field address different pages.
type ListParams struct {
	Page     int
	Search   string
	Ordering string
}

// withDefaults fills in page 1 and newest-first ordering.
func (p ListParams) withDefaults() ListParams {
	if p.Page == 0 {
		p.Page = 1
	}
	if p.Ordering == "" {
		p.Ordering = OrderNewestFirst
	}
	return p
}

// Encode renders the tuple as a query string. The encoding is
// canonical, so it doubles as a cache key suffix.
func (p ListParams) Encode() string {
	p = p.withDefaults()
	q := url.Values{}
	q.Set("page", strconv.Itoa(p.Page))
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	q.Set("ordering", p.Ordering)
	return q.Encode()
}
