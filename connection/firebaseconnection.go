package connection

import (
	"context"
	"fmt"
	"os"

	"cloud.google.com/go/firestore"
	cloudstorage "cloud.google.com/go/storage"
	firebase "firebase.google.com/go"
	fbauth "firebase.google.com/go/auth"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"gateprep/services"
)

// App holds every client the controllers need. It is built once at startup
// so nothing is constructed as an import side effect.
type App struct {
	Firestore  *firestore.Client
	Auth       *fbauth.Client
	Bucket     *cloudstorage.BucketHandle
	BucketName string
	Cache      *services.TaskCache
	Confirms   *services.DeleteConfirmer
	Logger     *zap.Logger
}

// NewApp wires the Firebase clients, the local snapshot cache and the
// logger. Callers own the lifecycle and must Close the app on shutdown.
func NewApp(ctx context.Context) (*App, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: No .env file found or failed to load") // Use only in dev
	}

	logger := NewLogger()

	credentials := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
	if credentials == "" {
		return nil, fmt.Errorf("environment variable GOOGLE_APPLICATION_CREDENTIALS is not set")
	}

	bucketName := os.Getenv("STORAGE_BUCKET")
	fbApp, err := firebase.NewApp(ctx, &firebase.Config{StorageBucket: bucketName}, option.WithCredentialsFile(credentials))
	if err != nil {
		return nil, fmt.Errorf("initializing firebase app: %w", err)
	}

	fs, err := fbApp.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting firestore client: %w", err)
	}

	auth, err := fbApp.Auth(ctx)
	if err != nil {
		fs.Close()
		return nil, fmt.Errorf("getting auth client: %w", err)
	}

	var bucket *cloudstorage.BucketHandle
	if bucketName != "" {
		storageClient, err := fbApp.Storage(ctx)
		if err != nil {
			fs.Close()
			return nil, fmt.Errorf("getting storage client: %w", err)
		}
		bucket, err = storageClient.DefaultBucket()
		if err != nil {
			fs.Close()
			return nil, fmt.Errorf("getting storage bucket: %w", err)
		}
	}

	cachePath := os.Getenv("CACHE_PATH")
	if cachePath == "" {
		cachePath = "gateprep-cache.db"
	}
	cache, err := services.OpenTaskCache(cachePath)
	if err != nil {
		fs.Close()
		return nil, fmt.Errorf("opening task cache: %w", err)
	}

	logger.Info("firebase connection ready", zap.String("bucket", bucketName))

	return &App{
		Firestore:  fs,
		Auth:       auth,
		Bucket:     bucket,
		BucketName: bucketName,
		Cache:      cache,
		Confirms:   services.NewDeleteConfirmer(),
		Logger:     logger,
	}, nil
}

func (a *App) Close() {
	if a.Cache != nil {
		a.Cache.Close()
	}
	if a.Firestore != nil {
		a.Firestore.Close()
	}
	if a.Logger != nil {
		a.Logger.Sync()
	}
}
