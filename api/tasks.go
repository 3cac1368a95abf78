package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/kavia-common/fullstack-application-scaffold-7150-7159/errors"
	"github.com/kavia-common/fullstack-application-scaffold-7150-7159/logger"
	"github.com/kavia-common/fullstack-application-scaffold-7150-7159/tasks"
	"github.com/kavia-common/fullstack-application-scaffold-7150-7159/tasks/service"
)

const (
	maxBodySize       = 1024 * 1024 // 1 MB
	maxTitleLen       = 200
	maxDescriptionLen = 4000
)

// ErrorResponse defines the JSON structure for error responses
type ErrorResponse struct {
	Error   string         `json:"error"`
	Type    string         `json:"type,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// createTaskRequest defines the expected payload to create a Task.
type createTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// deleteTaskResponse acknowledges a successful delete.
type deleteTaskResponse struct {
	Deleted bool   `json:"deleted"`
	ID      string `json:"id"`
}

// NewTasksCollectionHandler returns the handler for the task collection:
// GET lists all tasks, POST creates one.
func NewTasksCollectionHandler(svc service.TaskService, lg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			listTasks(w, r, svc, lg)
		case http.MethodPost:
			createTask(w, r, svc, lg)
		default:
			respondWithError(w, errors.NewValidationError("method not allowed"), lg)
		}
	}
}

// NewTaskItemHandler returns the handler for a single task addressed by ID:
// GET fetches, PATCH partially updates, DELETE removes.
func NewTaskItemHandler(svc service.TaskService, lg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		taskID, ok := taskIDFromPath(r.URL.Path)
		if !ok {
			respondWithError(w, errors.NewValidationError("invalid URL format"), lg)
			return
		}

		switch r.Method {
		case http.MethodGet:
			getTask(w, r, svc, taskID, lg)
		case http.MethodPatch:
			updateTask(w, r, svc, taskID, lg)
		case http.MethodDelete:
			deleteTask(w, r, svc, taskID, lg)
		default:
			respondWithError(w, errors.NewValidationError("method not allowed"), lg)
		}
	}
}

// taskIDFromPath extracts the task ID from /api/v1/tasks/{id}.
func taskIDFromPath(path string) (string, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 4 || parts[0] != "api" || parts[1] != "v1" || parts[2] != "tasks" {
		return "", false
	}
	if parts[3] == "" {
		return "", false
	}
	return parts[3], true
}

func listTasks(w http.ResponseWriter, r *http.Request, svc service.TaskService, lg *logger.Logger) {
	list, err := svc.ListTasks(r.Context())
	if err != nil {
		respondWithServiceError(w, err, lg)
		return
	}

	respondJSON(w, http.StatusOK, list, lg)
}

func createTask(w http.ResponseWriter, r *http.Request, svc service.TaskService, lg *logger.Logger) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, decodeError(err), lg)
		return
	}

	if err := checkFieldLengths(req.Title, req.Description); err != nil {
		respondWithError(w, err, lg)
		return
	}

	task, err := svc.CreateTask(r.Context(), req.Title, req.Description, req.Completed)
	if err != nil {
		respondWithServiceError(w, err, lg)
		return
	}

	respondJSON(w, http.StatusCreated, task, lg)
}

func getTask(w http.ResponseWriter, r *http.Request, svc service.TaskService, taskID string, lg *logger.Logger) {
	task, err := svc.GetTask(r.Context(), taskID)
	if err != nil {
		respondWithServiceError(w, err, lg)
		return
	}

	respondJSON(w, http.StatusOK, task, lg)
}

func updateTask(w http.ResponseWriter, r *http.Request, svc service.TaskService, taskID string, lg *logger.Logger) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var patch tasks.TaskPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondWithError(w, decodeError(err), lg)
		return
	}

	var title, description string
	if patch.Title != nil {
		title = *patch.Title
	}
	if patch.Description != nil {
		description = *patch.Description
	}
	if err := checkFieldLengths(title, description); err != nil {
		respondWithError(w, err, lg)
		return
	}

	task, err := svc.UpdateTask(r.Context(), taskID, patch)
	if err != nil {
		respondWithServiceError(w, err, lg)
		return
	}

	respondJSON(w, http.StatusOK, task, lg)
}

func deleteTask(w http.ResponseWriter, r *http.Request, svc service.TaskService, taskID string, lg *logger.Logger) {
	if err := svc.DeleteTask(r.Context(), taskID); err != nil {
		respondWithServiceError(w, err, lg)
		return
	}

	respondJSON(w, http.StatusOK, deleteTaskResponse{Deleted: true, ID: taskID}, lg)
}

// checkFieldLengths enforces the request-level size caps on text fields.
func checkFieldLengths(title, description string) *errors.TaskError {
	if len(title) > maxTitleLen {
		return errors.NewValidationError("task title too long", map[string]any{
			"max_length":    maxTitleLen,
			"actual_length": len(title),
		})
	}
	if len(description) > maxDescriptionLen {
		return errors.NewValidationError("task description too long", map[string]any{
			"max_length":    maxDescriptionLen,
			"actual_length": len(description),
		})
	}
	return nil
}

// decodeError classifies body-decoding failures.
func decodeError(err error) *errors.TaskError {
	if strings.Contains(err.Error(), "http: request body too large") {
		return errors.NewValidationError("request body too large", map[string]any{
			"max_size_bytes": maxBodySize,
		})
	}
	return errors.NewValidationError("invalid JSON payload", map[string]any{
		"error": err.Error(),
	})
}

// respondWithServiceError translates errors raised by the store into HTTP
// responses. This is the only place that mapping happens.
func respondWithServiceError(w http.ResponseWriter, err error, lg *logger.Logger) {
	if taskErr, ok := errors.IsTaskError(err); ok {
		respondWithError(w, taskErr, lg)
		return
	}
	respondWithError(w, errors.NewInternalError(err.Error()), lg)
}

func respondJSON(w http.ResponseWriter, status int, body any, lg *logger.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		lg.Error("failed to encode response", map[string]any{
			"error": err.Error(),
		})
	}
}

// respondWithError sends a structured error response
func respondWithError(w http.ResponseWriter, taskErr *errors.TaskError, lg *logger.Logger) {
	lg.Error("HTTP error response", map[string]any{
		"error_type":    string(taskErr.Type),
		"error_message": taskErr.Message,
		"status_code":   taskErr.Code,
		"error_details": taskErr.Details,
	})

	respondJSON(w, taskErr.Code, ErrorResponse{
		Error:   taskErr.Message,
		Type:    string(taskErr.Type),
		Details: taskErr.Details,
	}, lg)
}
