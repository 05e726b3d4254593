package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_ValidationsQueryParams(t *testing.T) {
	client, _ := setupTestServer(t, authedStore(t), func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ideas/my-ideas/", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "2", q.Get("page"))
		assert.Equal(t, "fintech", q.Get("search"))
		assert.Equal(t, "-score", q.Get("ordering"))
		json.NewEncoder(w).Encode(ValidationsResponse{Count: 14})
	})

	resp, err := client.Validations(context.Background(), ListParams{Page: 2, Search: "fintech", Ordering: OrderHighestScore})
	require.NoError(t, err)
	assert.Equal(t, 14, resp.Count)
}

func TestClient_ValidationsDefaults(t *testing.T) {
	client, _ := setupTestServer(t, authedStore(t), func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "1", q.Get("page"))
		assert.Equal(t, OrderNewestFirst, q.Get("ordering"))
		assert.False(t, q.Has("search"))
		json.NewEncoder(w).Encode(ValidationsResponse{})
	})

	_, err := client.Validations(context.Background(), ListParams{})
	require.NoError(t, err)
}

func TestClient_Profile(t *testing.T) {
	client, _ := setupTestServer(t, authedStore(t), func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/my-profile/", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"status": 200,
			"results": UserProfile{
				Username:  "demo",
				FirstName: "Demo",
				LastName:  "User",
				Email:     "demo@example.com",
			},
		})
	})

	profile, err := client.Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "demo", profile.Username)
	assert.Equal(t, "demo@example.com", profile.Email)
}

func TestClient_Idea(t *testing.T) {
	client, _ := setupTestServer(t, authedStore(t), func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ideas/my-ideas/7/", r.URL.Path)
		json.NewEncoder(w).Encode(Idea{
			ID:    7,
			Title: "Meal-prep robots",
			Reports: []IdeaReport{{
				ID:    5,
				Score: 82,
				Steps: []Step{{Task: "Register domain", Status: StepPending}},
			}},
		})
	})

	idea, err := client.Idea(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 7, idea.ID)
	require.Len(t, idea.Reports, 1)
	assert.Equal(t, StepPending, idea.Reports[0].Steps[0].Status)
}

func TestClient_CreateIdea(t *testing.T) {
	client, _ := setupTestServer(t, authedStore(t), func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/ideas/analyze-create/", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Meal-prep robots", body["title"])

		json.NewEncoder(w).Encode(CreateIdeaResponse{ID: 11})
	})

	resp, err := client.CreateIdea(context.Background(), "Meal-prep robots", "Robots that cook weekly meals")
	require.NoError(t, err)
	assert.Equal(t, 11, resp.ID)
}

func TestClient_DeleteIdeaIsSoft(t *testing.T) {
	client, _ := setupTestServer(t, authedStore(t), func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/ideas/idea-delete/7/", r.URL.Path)

		var body map[string]bool
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.True(t, body["is_deleted"])

		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, client.DeleteIdea(context.Background(), 7))
}

func TestClient_UpdateReportSteps(t *testing.T) {
	client, _ := setupTestServer(t, authedStore(t), func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/ideas/update-report-steps/5/", r.URL.Path)

		var body map[string][]Step
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body["steps"], 1)
		assert.Equal(t, "Register domain", body["steps"][0].Task)
		assert.Equal(t, StepSuccess, body["steps"][0].Status)

		w.WriteHeader(http.StatusOK)
	})

	steps := []Step{{Task: "Register domain", Status: StepSuccess}}
	require.NoError(t, client.UpdateReportSteps(context.Background(), 5, steps))
}

func TestClient_BusinessPlanEndpoints(t *testing.T) {
	client, _ := setupTestServer(t, authedStore(t), func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/ideas/business-plans/" && r.Method == http.MethodGet:
			json.NewEncoder(w).Encode(BusinessPlansResponse{
				Count:   1,
				Results: []BusinessPlan{{ID: 3, IdeaID: 7, Title: "Meal-prep robots"}},
			})
		case r.URL.Path == "/ideas/business-plan-detail/3/":
			json.NewEncoder(w).Encode(BusinessPlanDetail{
				ID:      3,
				Title:   "Meal-prep robots",
				Roadmap: []RoadmapEntry{{Month: "Month 1", Focus: "MVP"}},
			})
		case r.URL.Path == "/ideas/generate-business-plan/7/":
			assert.Equal(t, http.MethodPost, r.Method)
			json.NewEncoder(w).Encode(GenerateBusinessPlanResponse{Message: "ok", BusinessPlanID: 3})
		case r.URL.Path == "/ideas/business-plans/3/delete/":
			assert.Equal(t, http.MethodPatch, r.Method)
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	ctx := context.Background()

	plans, err := client.BusinessPlans(ctx, ListParams{})
	require.NoError(t, err)
	require.Len(t, plans.Results, 1)
	assert.Equal(t, 7, plans.Results[0].IdeaID)

	detail, err := client.BusinessPlanDetail(ctx, 3)
	require.NoError(t, err)
	require.Len(t, detail.Roadmap, 1)
	assert.Equal(t, "MVP", detail.Roadmap[0].Focus)

	gen, err := client.GenerateBusinessPlan(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 3, gen.BusinessPlanID)

	require.NoError(t, client.DeleteBusinessPlan(ctx, 3))
}

func TestClient_Register(t *testing.T) {
	client, _ := setupTestServer(t, authedStore(t), func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/register/", r.URL.Path)

		var req RegisterRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "demo", req.Username)

		json.NewEncoder(w).Encode(RegisterResponse{ID: 1, Username: "demo", Email: "demo@example.com"})
	})

	resp, err := client.Register(context.Background(), RegisterRequest{
		FirstName: "Demo",
		LastName:  "User",
		Username:  "demo",
		Email:     "demo@example.com",
		Password:  "longenough",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.ID)
}

func TestListParams_EncodeIsCanonical(t *testing.T) {
	a := ListParams{Page: 1, Ordering: OrderNewestFirst}.Encode()
	b := ListParams{}.Encode()
	assert.Equal(t, a, b)

	c := ListParams{Page: 2}.Encode()
	assert.NotEqual(t, a, c)
}
