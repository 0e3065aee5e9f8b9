package adaptor

import (
	"net/http"

	"go.uber.org/zap"

	"staffly/internal/authz"
	"staffly/internal/usecase"
	"staffly/pkg/utils"
)

type DashboardHandler struct {
	service usecase.DashboardService
	log     *zap.Logger
}

func NewDashboardHandler(service usecase.DashboardService, log *zap.Logger) *DashboardHandler {
	return &DashboardHandler{service: service, log: log}
}

// Route sends the caller to the dashboard for their role.
func (h *DashboardHandler) Route(w http.ResponseWriter, r *http.Request) {
	role, ok := utils.GetRoleFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	http.Redirect(w, r, authz.DashboardPath(role), http.StatusFound)
}

func (h *DashboardHandler) Admin(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.AdminOverview(r.Context())
	if err != nil {
		handleServiceError(w, err, h.log)
		return
	}

	utils.ResponseSuccess(w, "Admin dashboard", resp)
}

func (h *DashboardHandler) Staff(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	resp, err := h.service.StaffOverview(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err, h.log)
		return
	}

	utils.ResponseSuccess(w, "Staff dashboard", resp)
}

func (h *DashboardHandler) User(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	resp, err := h.service.UserOverview(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err, h.log)
		return
	}

	utils.ResponseSuccess(w, "Your dashboard", resp)
}
