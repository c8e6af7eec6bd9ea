package task

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"gateprep/connection"
	"gateprep/dto"
	"gateprep/middleware"
	"gateprep/model"
	"gateprep/services"
)

func UpdateTaskController(router *gin.Engine, app *connection.App) {
	router.PUT("/task/:id", middleware.AccessTokenMiddleware(), func(c *gin.Context) {
		Updatetask(c, app)
	})
}

// Updatetask edits a task's content. Status, completion stamp and study
// hours are deliberately absent from the patch so the merge write preserves
// them.
func Updatetask(c *gin.Context, app *connection.App) {
	userId := c.MustGet("userId").(string)
	taskID := c.Param("id")

	var updateReq dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&updateReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	title := strings.TrimSpace(updateReq.Title)
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
		return
	}
	if updateReq.Date != "" {
		if _, err := time.Parse(model.DateLayout, updateReq.Date); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Date must be formatted YYYY-MM-DD"})
			return
		}
	}
	if updateReq.EstimatedMinutes != nil && *updateReq.EstimatedMinutes < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Estimated minutes must not be negative"})
		return
	}

	ctx := c.Request.Context()
	existing, err := services.GetTask(ctx, app.Firestore, userId, taskID)
	if err != nil && !errors.Is(err, model.ErrTaskNotFound) {
		respondError(c, app, "load task", err)
		return
	}
	if !services.CanMutate(existing, time.Now()) {
		c.JSON(http.StatusLocked, gin.H{"error": lockedMessage})
		return
	}

	patch := map[string]interface{}{
		"title":            title,
		"link":             optionalString(updateReq.Link),
		"subject":          optionalString(updateReq.Subject),
		"description":      optionalString(updateReq.Description),
		"estimatedMinutes": updateReq.EstimatedMinutes,
	}
	if updateReq.Date != "" {
		patch["date"] = updateReq.Date
	}

	if err := services.UpdateTask(ctx, app.Firestore, userId, taskID, patch); err != nil {
		respondError(c, app, "update task", err)
		return
	}

	tasks, ok := refreshTasks(c, app, userId)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task updated successfully", "tasks": tasks})
}
