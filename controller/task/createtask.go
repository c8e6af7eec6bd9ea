package task

import (
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

func CreateTaskController(router *gin.Engine, app *connection.App) {
	router.POST("/task", middleware.AccessTokenMiddleware(), func(c *gin.Context) {
		Createtask(c, app)
	})
}

func Createtask(c *gin.Context, app *connection.App) {
	userId := c.MustGet("userId").(string)

	var taskReq dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&taskReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	// Ids are minted caller-side; the server fills one in for clients that
	// don't, before the repository sees the task.
	taskID := strings.TrimSpace(taskReq.ID)
	if taskID == "" {
		taskID = model.NewTaskID()
	}

	date := taskReq.Date
	if date == "" {
		date = time.Now().Format(model.DateLayout)
	}

	newTask := model.Task{
		TaskID:           taskID,
		Title:            strings.TrimSpace(taskReq.Title),
		Link:             optionalString(taskReq.Link),
		Subject:          optionalString(taskReq.Subject),
		Description:      optionalString(taskReq.Description),
		Date:             date,
		Status:           model.StatusPending,
		CreatedAt:        time.Now().Format(time.RFC3339),
		CompletedAt:      nil,
		EstimatedMinutes: taskReq.EstimatedMinutes,
		StudyHours:       nil,
	}

	ctx := c.Request.Context()
	if err := services.CreateTask(ctx, app.Firestore, userId, &newTask); err != nil {
		respondError(c, app, "create task", err)
		return
	}

	tasks, ok := refreshTasks(c, app, userId)
	if !ok {
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Task created successfully",
		"taskId":  taskID,
		"tasks":   tasks,
	})
}
