package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gateprep/connection"
	"gateprep/dto"
	"gateprep/model"
	"gateprep/services"
)

func GoogleSignInController(router *gin.Engine, app *connection.App) {
	router.POST("/auth/googlelogin", func(c *gin.Context) {
		GoogleSignIn(c, app)
	})
}

// GoogleSignIn exchanges a Firebase ID token for the app's own token pair.
// First sign-in creates the default profile document, which also makes the
// tasks subcollection addressable.
func GoogleSignIn(c *gin.Context, app *connection.App) {
	var req dto.GoogleSignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID token is required"})
		return
	}

	ctx := c.Request.Context()
	decoded, err := app.Auth.VerifyIDToken(ctx, req.IDToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid ID token"})
		return
	}

	email, _ := decoded.Claims["email"].(string)
	name, _ := decoded.Claims["name"].(string)

	user, err := services.EnsureUser(ctx, app.Firestore, decoded.UID, email, name)
	if err != nil {
		app.Logger.Error("ensuring user document failed", zap.String("userId", decoded.UID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user profile"})
		return
	}

	accessToken, err := services.CreateAccessToken(user.UserID, user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create access token"})
		return
	}
	refreshToken, err := services.CreateRefreshToken(user.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create refresh token"})
		return
	}

	refreshHash, err := services.HashRefreshToken(refreshToken)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash refresh token"})
		return
	}
	if err := services.SaveRefreshHash(ctx, app.Firestore, user.UserID, refreshHash); err != nil {
		app.Logger.Error("storing refresh hash failed", zap.String("userId", user.UserID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to persist session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
		"user":         user,
		"subjects":     model.SubjectsForExam(user.Exam),
	})
}
