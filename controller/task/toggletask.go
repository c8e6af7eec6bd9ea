package task

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"gateprep/connection"
	"gateprep/dto"
	"gateprep/middleware"
	"gateprep/model"
	"gateprep/services"
)

func ToggleTaskController(router *gin.Engine, app *connection.App) {
	router.PATCH("/task/:id/status", middleware.AccessTokenMiddleware(), func(c *gin.Context) {
		Toggletask(c, app)
	})
}

func Toggletask(c *gin.Context, app *connection.App) {
	userId := c.MustGet("userId").(string)
	taskID := c.Param("id")

	var toggleReq dto.ToggleTaskRequest
	if err := c.ShouldBindJSON(&toggleReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	ctx := c.Request.Context()
	existing, err := services.GetTask(ctx, app.Firestore, userId, taskID)
	if err != nil && !errors.Is(err, model.ErrTaskNotFound) {
		respondError(c, app, "load task", err)
		return
	}

	now := time.Now()
	var patch map[string]interface{}
	if *toggleReq.Done {
		patch = services.MarkDonePatch(existing, now)
	} else {
		// Un-marking is refused once the lock window has passed; no store
		// call is made for a rejected transition.
		if !services.CanMutate(existing, now) {
			c.JSON(http.StatusLocked, gin.H{"error": lockedMessage})
			return
		}
		patch = services.MarkPendingPatch()
	}

	if err := services.UpdateTask(ctx, app.Firestore, userId, taskID, patch); err != nil {
		respondError(c, app, "update task", err)
		return
	}

	tasks, ok := refreshTasks(c, app, userId)
	if !ok {
		return
	}

	message := "Task marked pending"
	if *toggleReq.Done {
		message = "Marked done. After 6 hours you will be unable to unmark, edit, or delete this task."
	}
	c.JSON(http.StatusOK, gin.H{"message": message, "tasks": tasks})
}
