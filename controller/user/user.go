package user

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	cloudstorage "cloud.google.com/go/storage"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"gateprep/connection"
	"gateprep/dto"
	"gateprep/middleware"
	"gateprep/model"
	"gateprep/services"
)

const maxAvatarBytes = 5 << 20

func UserController(router *gin.Engine, app *connection.App) {
	routes := router.Group("/user", middleware.AccessTokenMiddleware())
	{
		routes.GET("/profile", func(c *gin.Context) {
			GetProfile(c, app)
		})
		routes.PUT("/profile", func(c *gin.Context) {
			UpdateProfileUser(c, app)
		})
		routes.POST("/avatar", func(c *gin.Context) {
			UploadAvatar(c, app)
		})
		routes.DELETE("/account", func(c *gin.Context) {
			DeleteUser(c, app)
		})
	}
}

func GetProfile(c *gin.Context, app *connection.App) {
	userId := c.MustGet("userId").(string)

	user, err := services.GetUser(c.Request.Context(), app.Firestore, userId)
	if errors.Is(err, model.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		app.Logger.Error("loading user failed", zap.String("userId", userId), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":     user,
		"subjects": model.SubjectsForExam(user.Exam),
	})
}

func UpdateProfileUser(c *gin.Context, app *connection.App) {
	userId := c.MustGet("userId").(string)

	var updateProfile dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&updateProfile); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	var updates []firestore.Update

	if updateProfile.Name != "" {
		name := strings.TrimSpace(updateProfile.Name)
		if len(name) < 2 || len(name) > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name must be between 2 and 100 characters"})
			return
		}
		updates = append(updates, firestore.Update{Path: "name", Value: name})
	}

	if updateProfile.Exam != "" {
		if _, ok := model.ExamSubjects[updateProfile.Exam]; !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown exam type"})
			return
		}
		updates = append(updates, firestore.Update{Path: "exam", Value: updateProfile.Exam})
	}

	if updateProfile.ExamDate != "" {
		if _, err := time.Parse(model.DateLayout, updateProfile.ExamDate); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Exam date must be formatted YYYY-MM-DD"})
			return
		}
		updates = append(updates, firestore.Update{Path: "examDate", Value: updateProfile.ExamDate})
	}

	if updateProfile.Theme != "" {
		switch updateProfile.Theme {
		case "light", "dark", "system":
			updates = append(updates, firestore.Update{Path: "theme", Value: updateProfile.Theme})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Theme must be light, dark or system"})
			return
		}
	}

	if updateProfile.Password != "" {
		if len(updateProfile.Password) < 8 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at least 8 characters"})
			return
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(updateProfile.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		updates = append(updates, firestore.Update{Path: "password", Value: string(hashed)})
	}

	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No data to update"})
		return
	}

	ctx := c.Request.Context()
	userRef := app.Firestore.Collection("users").Doc(userId)
	if _, err := userRef.Update(ctx, updates); err != nil {
		app.Logger.Error("profile update failed", zap.String("userId", userId), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	user, err := services.GetUser(ctx, app.Firestore, userId)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Profile updated but reload failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Profile updated successfully",
		"user":     user,
		"subjects": model.SubjectsForExam(user.Exam),
	})
}

// UploadAvatar stores the image in the Storage bucket and writes its public
// URL back onto the profile.
func UploadAvatar(c *gin.Context, app *connection.App) {
	userId := c.MustGet("userId").(string)

	if app.Bucket == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Avatar storage is not configured"})
		return
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Avatar file is required"})
		return
	}
	if fileHeader.Size > maxAvatarBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Avatar must be smaller than 5MB"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read avatar file"})
		return
	}
	defer file.Close()

	ctx := c.Request.Context()
	objectName := "avatars/" + userId
	object := app.Bucket.Object(objectName)

	writer := object.NewWriter(ctx)
	writer.ContentType = fileHeader.Header.Get("Content-Type")
	if _, err := io.Copy(writer, file); err != nil {
		writer.Close()
		app.Logger.Error("avatar upload failed", zap.String("userId", userId), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload avatar"})
		return
	}
	if err := writer.Close(); err != nil {
		app.Logger.Error("avatar upload failed", zap.String("userId", userId), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload avatar"})
		return
	}

	// Buckets with uniform access control refuse per-object ACLs; the
	// public URL still works there when the bucket itself is readable.
	if err := object.ACL().Set(ctx, cloudstorage.AllUsers, cloudstorage.RoleReader); err != nil {
		app.Logger.Warn("setting avatar ACL failed", zap.String("userId", userId), zap.Error(err))
	}

	photoURL := fmt.Sprintf("https://storage.googleapis.com/%s/%s", app.BucketName, objectName)
	userRef := app.Firestore.Collection("users").Doc(userId)
	if _, err := userRef.Update(ctx, []firestore.Update{{Path: "photoURL", Value: photoURL}}); err != nil {
		app.Logger.Error("saving avatar url failed", zap.String("userId", userId), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save avatar URL"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Avatar updated successfully",
		"photoURL": photoURL,
	})
}

// DeleteUser removes the account and everything under it: tasks with their
// notes, the avatar object, the local snapshot and the profile document.
func DeleteUser(c *gin.Context, app *connection.App) {
	userId := c.MustGet("userId").(string)
	ctx := c.Request.Context()

	if err := services.DeleteAllTasks(ctx, app.Firestore, userId); err != nil {
		app.Logger.Error("task cleanup failed", zap.String("userId", userId), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete tasks"})
		return
	}

	if app.Bucket != nil {
		if err := app.Bucket.Object("avatars/" + userId).Delete(ctx); err != nil && err != cloudstorage.ErrObjectNotExist {
			app.Logger.Warn("avatar cleanup failed", zap.String("userId", userId), zap.Error(err))
		}
	}

	if err := services.DeleteUser(ctx, app.Firestore, userId); err != nil {
		app.Logger.Error("profile delete failed", zap.String("userId", userId), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete account"})
		return
	}

	if err := app.Cache.Drop(userId); err != nil {
		app.Logger.Warn("snapshot cleanup failed", zap.String("userId", userId), zap.Error(err))
	}

	// Firebase-managed identities are removed too; password accounts only
	// exist in Firestore and have nothing to clean up here.
	if err := app.Auth.DeleteUser(ctx, userId); err != nil {
		app.Logger.Warn("auth user cleanup skipped", zap.String("userId", userId), zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{"message": "Account deleted successfully"})
}
