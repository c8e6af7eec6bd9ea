package task

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gateprep/connection"
	"gateprep/model"
	"gateprep/services"
)

const lockedMessage = "This task was marked done more than 6 hours ago and cannot be changed"

// respondError maps domain errors onto HTTP responses. Repository failures
// are logged server-side and surfaced with a generic message.
func respondError(c *gin.Context, app *connection.App, op string, err error) {
	switch {
	case errors.Is(err, model.ErrNotAuthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
	case model.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, model.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
	default:
		app.Logger.Error("task operation failed", zap.String("op", op), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + op})
	}
}

// refreshTasks re-reads the full list after a write settles. The fetched
// list is the source of truth: clients replace any optimistic state with it.
// It also rewrites the offline snapshot.
func refreshTasks(c *gin.Context, app *connection.App, uid string) ([]model.Task, bool) {
	tasks, err := services.ListTasks(c.Request.Context(), app.Firestore, uid)
	if err != nil {
		app.Logger.Error("authoritative refresh failed", zap.String("userId", uid), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Write applied but refresh failed"})
		return nil, false
	}
	if err := app.Cache.Save(uid, tasks); err != nil {
		app.Logger.Warn("task snapshot save failed", zap.String("userId", uid), zap.Error(err))
	}
	return tasks, true
}

// optionalString trims an optional field and collapses empty strings to nil
// so documents store explicit nulls.
func optionalString(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
