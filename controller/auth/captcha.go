package auth

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	recaptcha "cloud.google.com/go/recaptchaenterprise/v2/apiv1"
	"cloud.google.com/go/recaptchaenterprise/v2/apiv1/recaptchaenterprisepb"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"gateprep/connection"
	"gateprep/dto"
)

func CaptchaController(router *gin.Engine, app *connection.App) {
	router.POST("/auth/captcha", func(c *gin.Context) {
		VerifyCaptcha(c, app)
	})
}

// VerifyCaptcha scores a reCAPTCHA Enterprise token. The client calls this
// before /auth/signup so bot traffic never reaches the signup path.
func VerifyCaptcha(c *gin.Context, app *connection.App) {
	var req dto.CaptchaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request format",
		})
		return
	}

	projectID := os.Getenv("GOOGLE_CLOUD_PROJECT_ID")
	recaptchaKey := os.Getenv("RECAPTCHA_SITE_KEY")
	credentialsPath := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")

	result, err := createAssessment(c.Request.Context(), projectID, recaptchaKey, credentialsPath,
		req.Token, req.Action, clientIP(c), c.Request.UserAgent())
	if err != nil {
		app.Logger.Error("recaptcha assessment failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Internal server error",
		})
		return
	}
	if result == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "reCAPTCHA verification failed",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"score":   result.Score,
		"action":  result.Action,
		"reasons": result.Reasons,
		"message": "Captcha verified successfully",
	})
}

func clientIP(c *gin.Context) string {
	ip := c.ClientIP()
	if ip == "" {
		ip = c.Request.RemoteAddr
	}
	if idx := strings.Index(ip, ","); idx != -1 {
		ip = strings.TrimSpace(ip[:idx])
	}
	return ip
}

// createAssessment returns nil without error when the token is invalid or
// was issued for a different action.
func createAssessment(ctx context.Context, projectID, recaptchaKey, credentialsPath, token, action, userIP, userAgent string) (*dto.AssessmentResult, error) {
	client, err := recaptcha.NewClient(ctx, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, err
	}
	defer client.Close()

	req := &recaptchaenterprisepb.CreateAssessmentRequest{
		Parent: fmt.Sprintf("projects/%s", projectID),
		Assessment: &recaptchaenterprisepb.Assessment{
			Event: &recaptchaenterprisepb.Event{
				Token:         token,
				SiteKey:       recaptchaKey,
				UserIpAddress: userIP,
				UserAgent:     userAgent,
			},
		},
	}

	response, err := client.CreateAssessment(ctx, req)
	if err != nil {
		return nil, err
	}

	if response.TokenProperties == nil || !response.TokenProperties.Valid {
		return nil, nil
	}
	if action != "" && response.TokenProperties.Action != action {
		return nil, nil
	}

	result := &dto.AssessmentResult{
		Action: response.TokenProperties.Action,
	}
	if response.RiskAnalysis != nil {
		result.Score = response.RiskAnalysis.Score
		for _, reason := range response.RiskAnalysis.Reasons {
			result.Reasons = append(result.Reasons, reason.String())
		}
	}
	return result, nil
}
