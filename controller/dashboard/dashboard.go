package dashboard

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gateprep/connection"
	"gateprep/middleware"
	"gateprep/model"
	"gateprep/services"
)

func DashboardController(router *gin.Engine, app *connection.App) {
	router.GET("/dashboard", middleware.AccessTokenMiddleware(), func(c *gin.Context) {
		Dashboard(c, app)
	})
}

// Dashboard returns the full task list along with every derived figure the
// client renders: streak, heatmap, subject completion, weekly trend and the
// completion percentages. Everything is recomputed from the list on each
// request.
func Dashboard(c *gin.Context, app *connection.App) {
	userId := c.MustGet("userId").(string)

	ctx := c.Request.Context()
	tasks, err := services.ListTasks(ctx, app.Firestore, userId)
	if err != nil {
		if errors.Is(err, model.ErrNotAuthenticated) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}
		app.Logger.Error("dashboard load failed", zap.String("userId", userId), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard"})
		return
	}

	summary := services.Summarize(tasks, time.Now())
	c.JSON(http.StatusOK, gin.H{
		"tasks":   tasks,
		"summary": summary,
	})
}
