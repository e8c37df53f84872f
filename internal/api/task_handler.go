package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/api/shared"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// TaskHandler handles the per-user task board API requests. Every
// operation is scoped to the authenticated owner; tasks belonging to
// other users are reported as not found rather than forbidden, so task
// IDs leak nothing about other boards.
type TaskHandler struct {
	taskStore store.TaskStore
	validator *validator.Validate
}

// NewTaskHandler creates a new TaskHandler with the given dependencies.
func NewTaskHandler(taskStore store.TaskStore) *TaskHandler {
	return &TaskHandler{
		taskStore: taskStore,
		validator: validator.New(),
	}
}

// List handles GET /tasks. Supports optional status, priority and q
// (title substring) query filters.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	filter, err := taskFilterFromQuery(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	tasks, err := h.taskStore.ListByUser(r.Context(), userID, filter)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list tasks")
		return
	}

	resp := TaskListResponse{Tasks: make([]TaskResponse, 0, len(tasks)), Count: len(tasks)}
	for _, t := range tasks {
		resp.Tasks = append(resp.Tasks, NewTaskResponse(t))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// Create handles POST /tasks.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	task, err := domain.NewTask(
		userID,
		req.Title,
		req.Description,
		domain.TaskStatus(req.Status),
		domain.TaskPriority(req.Priority),
		req.DueDate,
	)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task data: "+err.Error())
		return
	}

	if err := h.taskStore.Create(r.Context(), task); err != nil {
		HandleAPIError(w, r, err, "Failed to create task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, NewTaskResponse(task))
}

// Get handles GET /tasks/{id}.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, taskID, ok := requireUserAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	task, err := h.ownedTask(w, r, userID, taskID)
	if err != nil {
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewTaskResponse(task))
}

// Update handles PUT /tasks/{id}.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, taskID, ok := requireUserAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	task, err := h.ownedTask(w, r, userID, taskID)
	if err != nil {
		return
	}

	task.Title = req.Title
	task.Description = req.Description
	task.Status = domain.TaskStatus(req.Status)
	task.Priority = domain.TaskPriority(req.Priority)
	task.DueDate = req.DueDate
	if task.Status == domain.TaskStatusDone && task.CompletedAt == nil {
		task.Complete()
	} else if task.Status != domain.TaskStatusDone {
		task.CompletedAt = nil
	}

	if err := task.Validate(); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task data: "+err.Error())
		return
	}

	if err := h.taskStore.Update(r.Context(), task); err != nil {
		HandleAPIError(w, r, err, "Failed to update task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewTaskResponse(task))
}

// Complete handles POST /tasks/{id}/complete, moving the task to DONE
// and stamping the completion time. Completing a DONE task is a no-op.
func (h *TaskHandler) Complete(w http.ResponseWriter, r *http.Request) {
	userID, taskID, ok := requireUserAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	task, err := h.ownedTask(w, r, userID, taskID)
	if err != nil {
		return
	}

	if task.Status != domain.TaskStatusDone {
		task.Complete()
		if err := h.taskStore.Update(r.Context(), task); err != nil {
			HandleAPIError(w, r, err, "Failed to complete task")
			return
		}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewTaskResponse(task))
}

// Delete handles DELETE /tasks/{id}.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, taskID, ok := requireUserAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	if _, err := h.ownedTask(w, r, userID, taskID); err != nil {
		return
	}

	if err := h.taskStore.Delete(r.Context(), taskID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete task")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ownedTask loads the task and verifies ownership. On failure it writes
// the error response and returns a non-nil error; a foreign task is
// indistinguishable from a missing one.
func (h *TaskHandler) ownedTask(
	w http.ResponseWriter,
	r *http.Request,
	userID, taskID uuid.UUID,
) (*domain.Task, error) {
	task, err := h.taskStore.GetByID(r.Context(), taskID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return nil, err
	}

	if task.UserID != userID {
		HandleAPIError(w, r, store.ErrTaskNotFound, "")
		return nil, store.ErrTaskNotFound
	}

	return task, nil
}

// taskFilterFromQuery builds a store.TaskFilter from the request's
// query string, rejecting unknown status or priority values.
func taskFilterFromQuery(r *http.Request) (store.TaskFilter, error) {
	var filter store.TaskFilter

	if raw := r.URL.Query().Get("status"); raw != "" {
		status := domain.TaskStatus(raw)
		if !status.Valid() {
			return filter, domain.NewValidationError("status", "has invalid value", domain.ErrValidation)
		}
		filter.Status = status
	}

	if raw := r.URL.Query().Get("priority"); raw != "" {
		priority := domain.TaskPriority(raw)
		if !priority.Valid() {
			return filter, domain.NewValidationError("priority", "has invalid value", domain.ErrValidation)
		}
		filter.Priority = priority
	}

	filter.Search = r.URL.Query().Get("q")

	return filter, nil
}
