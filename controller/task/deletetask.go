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

// DeleteTaskController registers the two-phase delete: requesting a delete
// only issues a confirmation token, and the removal happens when the token
// is redeemed. Cancelling discards the token without side effects.
func DeleteTaskController(router *gin.Engine, app *connection.App) {
	routes := router.Group("/task", middleware.AccessTokenMiddleware())
	{
		routes.POST("/:id/delete", func(c *gin.Context) {
			Requestdelete(c, app)
		})
		routes.POST("/delete/confirm", func(c *gin.Context) {
			Confirmdelete(c, app)
		})
		routes.POST("/delete/cancel", func(c *gin.Context) {
			Canceldelete(c, app)
		})
	}
}

func Requestdelete(c *gin.Context, app *connection.App) {
	userId := c.MustGet("userId").(string)
	taskID := c.Param("id")

	ctx := c.Request.Context()
	existing, err := services.GetTask(ctx, app.Firestore, userId, taskID)
	if err != nil {
		respondError(c, app, "load task", err)
		return
	}
	if !services.CanMutate(existing, time.Now()) {
		c.JSON(http.StatusLocked, gin.H{"error": lockedMessage})
		return
	}

	token, expiresAt := app.Confirms.Request(userId, taskID)
	c.JSON(http.StatusOK, gin.H{
		"token":     token,
		"expiresAt": expiresAt.Format(time.RFC3339),
	})
}

func Confirmdelete(c *gin.Context, app *connection.App) {
	userId := c.MustGet("userId").(string)

	var confirmReq dto.ConfirmDeleteRequest
	if err := c.ShouldBindJSON(&confirmReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	taskID, ok := app.Confirms.Redeem(userId, confirmReq.Token)
	if !ok {
		c.JSON(http.StatusGone, gin.H{"error": "Confirmation expired or unknown"})
		return
	}

	// The lock is re-evaluated at redemption time; the window may have
	// closed while the confirmation sat open.
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

	if err := services.DeleteTask(ctx, app.Firestore, userId, taskID); err != nil {
		respondError(c, app, "delete task", err)
		return
	}

	tasks, ok := refreshTasks(c, app, userId)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully", "tasks": tasks})
}

func Canceldelete(c *gin.Context, app *connection.App) {
	userId := c.MustGet("userId").(string)

	var cancelReq dto.ConfirmDeleteRequest
	if err := c.ShouldBindJSON(&cancelReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	if !app.Confirms.Cancel(userId, cancelReq.Token) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Confirmation not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Delete cancelled"})
}
