package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/yungbote/careercompass-backend/internal/modules/chat"
	"github.com/yungbote/careercompass-backend/internal/modules/planning"
	"github.com/yungbote/careercompass-backend/internal/modules/planrun"
	"github.com/yungbote/careercompass-backend/internal/platform/apierr"
)

// statusClientClosedRequest is the de facto status for a caller that went away.
const statusClientClosedRequest = 499

func mapError(err error) *apierr.Error {
	switch {
	case errors.Is(err, planrun.ErrInvalidUserInfo), errors.Is(err, chat.ErrEmptyQuery):
		return apierr.New(http.StatusBadRequest, "invalid_request", err)
	case errors.Is(err, planrun.ErrUserNotFound):
		return apierr.New(http.StatusNotFound, "user_not_found", err)
	case errors.Is(err, planrun.ErrPlanNotFound):
		return apierr.New(http.StatusNotFound, "plan_not_found", err)
	case errors.Is(err, planrun.ErrRunNotFound):
		return apierr.New(http.StatusNotFound, "plan_run_not_found", err)
	case errors.Is(err, planning.ErrNonConvergence):
		return apierr.New(http.StatusUnprocessableEntity, "plan_not_converged", err)
	case errors.Is(err, planning.ErrInvalidPlan):
		return apierr.New(http.StatusUnprocessableEntity, "invalid_plan", err)
	case errors.Is(err, planning.ErrGenerationFailed), errors.Is(err, planning.ErrValidationUnavailable):
		return apierr.New(http.StatusBadGateway, "upstream_unavailable", err)
	case errors.Is(err, context.Canceled):
		return apierr.New(statusClientClosedRequest, "client_closed_request", err)
	case errors.Is(err, context.DeadlineExceeded):
		return apierr.New(http.StatusGatewayTimeout, "timeout", err)
	}
	return apierr.New(http.StatusInternalServerError, "internal_error", err)
}
