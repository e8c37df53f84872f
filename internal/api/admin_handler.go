package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/taskdeck/taskdeck-api/internal/api/shared"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/redact"
	"github.com/taskdeck/taskdeck-api/internal/service/admin"
)

// AdminHandler handles the staff-only endpoints: the per-user task
// overview and bulk notification dispatch. Routes using it must sit
// behind the Authenticate and RequireStaff middleware.
type AdminHandler struct {
	adminService *admin.Service
	validator    *validator.Validate
}

// NewAdminHandler creates a new AdminHandler with the given dependencies.
func NewAdminHandler(adminService *admin.Service) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		validator:    validator.New(),
	}
}

// Overview handles GET /admin/overview. The body is a JSON array of
// per-user summaries; every user appears, including those with no
// tasks at all.
func (h *AdminHandler) Overview(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.adminService.Overview(r.Context())
	if err != nil {
		slog.Error("failed to compute user task overview", "error", redact.Error(err))
		HandleAPIError(w, r, err, "Failed to compute overview")
		return
	}

	// An empty directory still serializes as [], not null.
	if summaries == nil {
		summaries = []*domain.UserTaskSummary{}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, summaries)
}

// Notify handles POST /admin/notify. Recipients that do not resolve to
// an enabled account are dropped silently; the response reports how
// many survived. A 202 means the job was queued, not that any mail was
// delivered.
func (h *AdminHandler) Notify(w http.ResponseWriter, r *http.Request) {
	var req NotifyRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	result, err := h.adminService.Notify(r.Context(), req.Recipients, req.Message)
	if err != nil {
		if errors.Is(err, admin.ErrNoValidRecipients) {
			shared.RespondWithError(w, r, http.StatusBadRequest, "No valid recipients found")
			return
		}
		HandleAPIError(w, r, err, "Failed to queue notification")
		return
	}

	if sc, ok := shared.GetStaffContext(r.Context()); ok {
		slog.Info("notification accepted",
			"job_id", result.JobID,
			"recipients_count", result.RecipientsCount,
			"requested_by", sc.UserID)
	}

	shared.RespondWithJSON(w, r, http.StatusAccepted, NotifyResponse{
		JobID:           result.JobID,
		RecipientsCount: result.RecipientsCount,
	})
}
