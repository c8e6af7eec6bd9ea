package note

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gateprep/connection"
	"gateprep/dto"
	"gateprep/middleware"
	"gateprep/model"
	"gateprep/services"
)

// NoteController registers the video-note routes nested under a task.
func NoteController(router *gin.Engine, app *connection.App) {
	routes := router.Group("/task/:id/notes", middleware.AccessTokenMiddleware())
	{
		routes.GET("", func(c *gin.Context) {
			Listnotes(c, app)
		})
		routes.POST("", func(c *gin.Context) {
			Createnote(c, app)
		})
		routes.DELETE("/:noteId", func(c *gin.Context) {
			Deletenote(c, app)
		})
	}
}

func Listnotes(c *gin.Context, app *connection.App) {
	userId := c.MustGet("userId").(string)
	taskID := c.Param("id")

	notes, err := services.ListNotes(c.Request.Context(), app.Firestore, userId, taskID)
	if err != nil {
		respondNoteError(c, app, "list notes", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notes": notes})
}

func Createnote(c *gin.Context, app *connection.App) {
	userId := c.MustGet("userId").(string)
	taskID := c.Param("id")

	var noteReq dto.CreateNoteRequest
	if err := c.ShouldBindJSON(&noteReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	newNote := model.Note{
		NoteID:    model.NewTaskID(),
		Text:      noteReq.Text,
		VideoTime: noteReq.VideoTime,
		CreatedAt: time.Now().Format(time.RFC3339),
	}

	if err := services.CreateNote(c.Request.Context(), app.Firestore, userId, taskID, &newNote); err != nil {
		respondNoteError(c, app, "create note", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Note created successfully",
		"noteId":  newNote.NoteID,
	})
}

func Deletenote(c *gin.Context, app *connection.App) {
	userId := c.MustGet("userId").(string)
	taskID := c.Param("id")
	noteID := c.Param("noteId")

	if err := services.DeleteNote(c.Request.Context(), app.Firestore, userId, taskID, noteID); err != nil {
		respondNoteError(c, app, "delete note", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Note deleted successfully"})
}

func respondNoteError(c *gin.Context, app *connection.App, op string, err error) {
	switch {
	case errors.Is(err, model.ErrNotAuthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
	case model.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		app.Logger.Error("note operation failed", zap.String("op", op), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + op})
	}
}
