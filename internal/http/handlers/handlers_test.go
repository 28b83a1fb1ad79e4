package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/yungbote/careercompass-backend/internal/domain"
	"github.com/yungbote/careercompass-backend/internal/data/repos"
	"github.com/yungbote/careercompass-backend/internal/modules/chat"
	"github.com/yungbote/careercompass-backend/internal/modules/planning"
	"github.com/yungbote/careercompass-backend/internal/modules/planrun"
)

type fakeRuns struct {
	generateErr error
	saved       *types.UserInfo
	plan        *repos.StoredPlan
	run         *types.PlanRun
}

func (f *fakeRuns) Generate(_ context.Context, userID uuid.UUID) (*planrun.Outcome, error) {
	if f.generateErr != nil {
		return nil, f.generateErr
	}
	themes, tasks := planning.Assemble([]planning.MonthEntry{{
		Month: 1,
		Plan: planning.MonthPlan{Theme: "Foundations", Tasks: []planning.Task{
			{Number: 1, Title: "Learn X", Description: "Do Y.", TimeFrame: "2 weeks"},
		}},
	}})
	return &planrun.Outcome{Run: &types.PlanRun{ID: uuid.New(), UserID: userID}, Themes: themes, Tasks: tasks}, nil
}

func (f *fakeRuns) GetRun(_ context.Context, id uuid.UUID) (*types.PlanRun, error) {
	if f.run == nil || f.run.ID != id {
		return nil, planrun.ErrRunNotFound
	}
	return f.run, nil
}

func (f *fakeRuns) GetPlan(context.Context, uuid.UUID) (*repos.StoredPlan, error) {
	if f.plan == nil {
		return nil, planrun.ErrPlanNotFound
	}
	return f.plan, nil
}

func (f *fakeRuns) SaveUserInfo(_ context.Context, info *types.UserInfo) (*types.UserInfo, error) {
	if err := planrun.ValidateUserInfo(info); err != nil {
		return nil, err
	}
	f.saved = info
	return info, nil
}

type fakeChat struct{ got string }

func (f *fakeChat) Answer(_ context.Context, query string, _ []chat.Message) (string, error) {
	f.got = query
	if strings.TrimSpace(query) == "" {
		return "", chat.ErrEmptyQuery
	}
	return "answer to " + query, nil
}

func newRouter(runs *fakeRuns, ch *fakeChat) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	ph := NewPlanHandler(runs)
	r.GET("/healthcheck", NewHealthHandler().HealthCheck)
	r.POST("/generate_plan", ph.GeneratePlan)
	r.GET("/api/plan-runs/:id", ph.GetRun)
	r.GET("/api/users/:user_id/plan", ph.GetPlan)
	r.PUT("/api/users/:user_id/info", ph.PutUserInfo)
	r.POST("/api/chat", NewChatHandler(ch).Chat)
	return r
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHealthCheck(t *testing.T) {
	rec := do(newRouter(&fakeRuns{}, &fakeChat{}), http.MethodGet, "/healthcheck", "")
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("got %d %q", rec.Code, rec.Body.String())
	}
}

func TestGeneratePlan(t *testing.T) {
	r := newRouter(&fakeRuns{}, &fakeChat{})
	rec := do(r, http.MethodPost, "/generate_plan", fmt.Sprintf(`{"user_id":%q}`, uuid.New().String()))
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var body generatePlanResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Message != "Plan generated and stored successfully" || body.RunID == "" {
		t.Fatalf("unexpected body %#v", body)
	}
	if body.Months["month_1"] != "Foundations" || len(body.Tasks["1"]) != 1 {
		t.Fatalf("unexpected plan %#v", body)
	}
}

func TestGeneratePlanErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		body string
		want int
	}{
		{"missing user", nil, `{}`, http.StatusBadRequest},
		{"bad uuid", nil, `{"user_id":"abc"}`, http.StatusBadRequest},
		{"unknown user", planrun.ErrUserNotFound, "", http.StatusNotFound},
		{"non convergence", fmt.Errorf("%w: month 4", planning.ErrNonConvergence), "", http.StatusUnprocessableEntity},
		{"upstream", fmt.Errorf("%w: 503", planning.ErrGenerationFailed), "", http.StatusBadGateway},
		{"validator", planning.ErrValidationUnavailable, "", http.StatusBadGateway},
		{"other", fmt.Errorf("boom"), "", http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body := tc.body
			if body == "" {
				body = fmt.Sprintf(`{"user_id":%q}`, uuid.New().String())
			}
			rec := do(newRouter(&fakeRuns{generateErr: tc.err}, &fakeChat{}), http.MethodPost, "/generate_plan", body)
			if rec.Code != tc.want {
				t.Fatalf("status: got %d want %d (%s)", rec.Code, tc.want, rec.Body.String())
			}
		})
	}
}

func TestGetPlan(t *testing.T) {
	userID := uuid.New()
	theme := &types.UserPlanTheme{UserID: userID}
	theme.SetMonth(1, "One")
	theme.SetMonth(2, "Two")
	runs := &fakeRuns{plan: &repos.StoredPlan{
		Theme: theme,
		Tasks: []*types.UserPlanTaskOutline{
			{UserID: userID, Month: 1, TaskNumber: 1, TaskOutline: "a"},
			{UserID: userID, Month: 1, TaskNumber: 2, TaskOutline: "b"},
			{UserID: userID, Month: 2, TaskNumber: 1, TaskOutline: "c"},
		},
	}}
	rec := do(newRouter(runs, &fakeChat{}), http.MethodGet, "/api/users/"+userID.String()+"/plan", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var body storedPlanResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Themes) != 2 || body.Themes["month_2"] != "Two" {
		t.Fatalf("themes: %#v", body.Themes)
	}
	if len(body.Tasks["1"]) != 2 || body.Tasks["1"][1].TaskOutline != "b" {
		t.Fatalf("tasks: %#v", body.Tasks)
	}

	rec = do(newRouter(&fakeRuns{}, &fakeChat{}), http.MethodGet, "/api/users/"+userID.String()+"/plan", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing plan: got %d", rec.Code)
	}
}

func TestPutUserInfo(t *testing.T) {
	runs := &fakeRuns{}
	r := newRouter(runs, &fakeChat{})
	userID := uuid.New()
	body := `{"age":30,"field_of_work":"Tech","current_position":"Engineer","gender":"male",
		"marital_status":"married","education":"MSc","work_experience":"5 years",
		"resume":"gs://b/r.pdf","q2":"Lead","q3":"Time","q4":"CTO"}`
	rec := do(r, http.MethodPut, "/api/users/"+userID.String()+"/info", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	if runs.saved == nil || runs.saved.UserID != userID || runs.saved.Q4 != "CTO" {
		t.Fatalf("not saved: %#v", runs.saved)
	}

	rec = do(r, http.MethodPut, "/api/users/"+userID.String()+"/info", `{"age":30}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("incomplete info: got %d", rec.Code)
	}
	rec = do(r, http.MethodPut, "/api/users/not-a-uuid/info", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad uuid: got %d", rec.Code)
	}
}

func TestGetRun(t *testing.T) {
	run := &types.PlanRun{ID: uuid.New(), Status: types.PlanRunStatusRunning, CurrentMonth: 4}
	r := newRouter(&fakeRuns{run: run}, &fakeChat{})
	rec := do(r, http.MethodGet, "/api/plan-runs/"+run.ID.String(), "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"current_month":4`) {
		t.Fatalf("got %d %s", rec.Code, rec.Body.String())
	}
	rec = do(r, http.MethodGet, "/api/plan-runs/"+uuid.New().String(), "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown run: got %d", rec.Code)
	}
}

func TestChat(t *testing.T) {
	ch := &fakeChat{}
	r := newRouter(&fakeRuns{}, ch)
	rec := do(r, http.MethodPost, "/api/chat", `{"message":"python courses","conversation_history":[{"role":"user","content":"hi"}]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["response"] != "answer to python courses" {
		t.Fatalf("unexpected body %#v", body)
	}
	rec = do(r, http.MethodPost, "/api/chat", `{"message":"  "}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("empty message: got %d", rec.Code)
	}
}
