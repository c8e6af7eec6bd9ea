package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"gateprep/connection"
	authctl "gateprep/controller/auth"
	"gateprep/controller/dashboard"
	notectl "gateprep/controller/note"
	taskctl "gateprep/controller/task"
	userctl "gateprep/controller/user"
)

func main() {
	gin.SetMode(gin.ReleaseMode)

	ctx := context.Background()
	app, err := connection.NewApp(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer app.Close()

	router := connection.NewRouter()

	authctl.OTPController(router, app)
	authctl.SignUpController(router, app)
	authctl.SignInController(router, app)
	authctl.GoogleSignInController(router, app)
	authctl.RefreshTokenController(router, app)
	authctl.CaptchaController(router, app)

	taskctl.CreateTaskController(router, app)
	taskctl.ListTasksController(router, app)
	taskctl.UpdateTaskController(router, app)
	taskctl.ToggleTaskController(router, app)
	taskctl.DeleteTaskController(router, app)

	dashboard.DashboardController(router, app)
	notectl.NoteController(router, app)
	userctl.UserController(router, app)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
