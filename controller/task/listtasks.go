package task

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gateprep/connection"
	"gateprep/middleware"
	"gateprep/model"
	"gateprep/services"
)

func ListTasksController(router *gin.Engine, app *connection.App) {
	router.GET("/tasks", middleware.AccessTokenMiddleware(), func(c *gin.Context) {
		Listtasks(c, app)
	})
}

func Listtasks(c *gin.Context, app *connection.App) {
	userId := c.MustGet("userId").(string)

	ctx := c.Request.Context()
	tasks, err := services.ListTasks(ctx, app.Firestore, userId)
	if err != nil {
		// When Firestore is unreachable, answer from the last good snapshot
		// and flag the list as stale so clients can tell.
		if model.IsRepository(err) {
			cached, savedAt, cacheErr := app.Cache.Load(userId)
			if cacheErr == nil {
				app.Logger.Warn("serving cached task list",
					zap.String("userId", userId), zap.Error(err))
				c.JSON(http.StatusOK, gin.H{
					"tasks":    cached,
					"stale":    true,
					"cachedAt": savedAt,
				})
				return
			}
		}
		respondError(c, app, "list tasks", err)
		return
	}

	if err := app.Cache.Save(userId, tasks); err != nil {
		app.Logger.Warn("task snapshot save failed", zap.String("userId", userId), zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{"tasks": tasks, "stale": false})
}
