package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/yungbote/careercompass-backend/internal/domain"
	"github.com/yungbote/careercompass-backend/internal/http/response"
	"github.com/yungbote/careercompass-backend/internal/modules/planning"
	"github.com/yungbote/careercompass-backend/internal/modules/planrun"
)

type PlanHandler struct {
	runs planrun.Service
}

func NewPlanHandler(runs planrun.Service) *PlanHandler {
	return &PlanHandler{runs: runs}
}

type generatePlanRequest struct {
	UserID string `json:"user_id"`
}

type taskView struct {
	TaskNumber  float64 `json:"task_number"`
	TaskOutline string  `json:"task_outline"`
}

type generatePlanResponse struct {
	Message string                `json:"message"`
	RunID   string                `json:"run_id"`
	Months  map[string]string     `json:"months"`
	Tasks   map[string][]taskView `json:"tasks"`
}

type storedPlanResponse struct {
	Themes map[string]string     `json:"themes"`
	Tasks  map[string][]taskView `json:"tasks"`
}

// POST /generate_plan and POST /api/plans
func (h *PlanHandler) GeneratePlan(c *gin.Context) {
	var req generatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.UserID) == "" {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", errors.New("User ID is required"))
		return
	}
	userID, err := uuid.Parse(strings.TrimSpace(req.UserID))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", errors.New("user_id must be a uuid"))
		return
	}

	out, err := h.runs.Generate(c.Request.Context(), userID)
	if err != nil {
		response.RespondAPIError(c, mapError(err), "internal_error")
		return
	}
	response.RespondOK(c, generatePlanResponse{
		Message: "Plan generated and stored successfully",
		RunID:   out.Run.ID.String(),
		Months:  out.Themes.Columns(),
		Tasks:   tasksFromTable(out.Tasks),
	})
}

// GET /api/users/:user_id/plan
func (h *PlanHandler) GetPlan(c *gin.Context) {
	userID, ok := parseUUIDParam(c, "user_id")
	if !ok {
		return
	}
	p, err := h.runs.GetPlan(c.Request.Context(), userID)
	if err != nil {
		response.RespondAPIError(c, mapError(err), "internal_error")
		return
	}
	themes := map[string]string{}
	for m := 1; m <= 12; m++ {
		if t := p.Theme.Month(m); t != "" {
			themes["month_"+strconv.Itoa(m)] = t
		}
	}
	tasks := map[string][]taskView{}
	for _, t := range p.Tasks {
		k := strconv.Itoa(t.Month)
		tasks[k] = append(tasks[k], taskView{TaskNumber: t.TaskNumber, TaskOutline: t.TaskOutline})
	}
	response.RespondOK(c, storedPlanResponse{Themes: themes, Tasks: tasks})
}

type userInfoRequest struct {
	Age             int    `json:"age"`
	FieldOfWork     string `json:"field_of_work"`
	CurrentPosition string `json:"current_position"`
	Gender          string `json:"gender"`
	MaritalStatus   string `json:"marital_status"`
	Education       string `json:"education"`
	WorkExperience  string `json:"work_experience"`
	Resume          string `json:"resume"`
	Q2              string `json:"q2"`
	Q3              string `json:"q3"`
	Q4              string `json:"q4"`
}

// PUT /api/users/:user_id/info
func (h *PlanHandler) PutUserInfo(c *gin.Context) {
	userID, ok := parseUUIDParam(c, "user_id")
	if !ok {
		return
	}
	var req userInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	saved, err := h.runs.SaveUserInfo(c.Request.Context(), &types.UserInfo{
		UserID:          userID,
		Age:             req.Age,
		FieldOfWork:     strings.TrimSpace(req.FieldOfWork),
		CurrentPosition: strings.TrimSpace(req.CurrentPosition),
		Gender:          strings.TrimSpace(req.Gender),
		MaritalStatus:   strings.TrimSpace(req.MaritalStatus),
		Education:       strings.TrimSpace(req.Education),
		WorkExperience:  strings.TrimSpace(req.WorkExperience),
		Resume:          strings.TrimSpace(req.Resume),
		Q2:              strings.TrimSpace(req.Q2),
		Q3:              strings.TrimSpace(req.Q3),
		Q4:              strings.TrimSpace(req.Q4),
	})
	if err != nil {
		response.RespondAPIError(c, mapError(err), "internal_error")
		return
	}
	response.RespondOK(c, gin.H{"user_info": saved})
}

// GET /api/plan-runs/:id
func (h *PlanHandler) GetRun(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	run, err := h.runs.GetRun(c.Request.Context(), id)
	if err != nil {
		response.RespondAPIError(c, mapError(err), "internal_error")
		return
	}
	response.RespondOK(c, gin.H{"plan_run": run})
}

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(c.Param(name)))
	if err != nil || id == uuid.Nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", errors.New(name+" must be a uuid"))
		return uuid.Nil, false
	}
	return id, true
}

func tasksFromTable(t planning.TasksTable) map[string][]taskView {
	out := map[string][]taskView{}
	for _, r := range t.Rows {
		k := strconv.Itoa(r.Month)
		out[k] = append(out[k], taskView{TaskNumber: r.TaskNumber, TaskOutline: r.TaskOutline})
	}
	return out
}
