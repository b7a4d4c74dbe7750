package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/beka-birhanu/shifting-maze/api"
	gameapi "github.com/beka-birhanu/shifting-maze/api/game"
	api_i "github.com/beka-birhanu/shifting-maze/api/i"
	"github.com/beka-birhanu/shifting-maze/api/identity"
	mazeapi "github.com/beka-birhanu/shifting-maze/api/maze"
	"github.com/beka-birhanu/shifting-maze/config"
	logger "github.com/beka-birhanu/shifting-maze/infrastruture/log"
	"github.com/beka-birhanu/shifting-maze/infrastruture/repo"
	"github.com/beka-birhanu/shifting-maze/infrastruture/snapshot"
	"github.com/beka-birhanu/shifting-maze/infrastruture/token"
	"github.com/beka-birhanu/shifting-maze/maze"
	"github.com/beka-birhanu/shifting-maze/service"
	"github.com/beka-birhanu/shifting-maze/service/i"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const maxRequestGridSize = 200

// Global variables for dependencies
var (
	mongoClient        *mongo.Client
	redisClient        *redis.Client
	userRepo           *repo.UserRepo
	sessionRecordRepo  *repo.SessionRecordRepo
	snapshotStore      i.SnapshotStore
	gameSessionManager *service.GameSessionManager
	sessionController  api_i.Controller
	mazeController     api_i.Controller
	jwtTokenizer       i.Tokenizer
	authService        i.Authenticator
	authController     api_i.Controller
	router             *api.Router
	appLogger          i.Logger
)

func initMongo(ctx context.Context) {
	uri := fmt.Sprintf("mongodb://%s:%s@%s:%v", config.Envs.DBUser, config.Envs.DBPassword, config.Envs.DBHost, config.Envs.DBPort)

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	mongoClient, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Failed to connect to MongoDB: %v", err))
		os.Exit(1)
	}
	if err = mongoClient.Ping(ctx, nil); err != nil {
		appLogger.Error(fmt.Sprintf("MongoDB ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to MongoDB")
}

func initRepos(ctx context.Context, client *mongo.Client) {
	userRepo = repo.NewUserRepo(client, config.Envs.DBName, "users")
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		appLogger.Error(fmt.Sprintf("Creating user indexes: %v", err))
		os.Exit(1)
	}
	appLogger.Info("User repository initialized")

	sessionRecordRepo = repo.NewSessionRecordRepo(client, config.Envs.DBName, "sessions")
	if err := sessionRecordRepo.EnsureIndexes(ctx); err != nil {
		appLogger.Error(fmt.Sprintf("Creating session record indexes: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Session record repository initialized")
}

func initRedis(ctx context.Context) {
	redisClient = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", config.Envs.RedisHost, config.Envs.RedisPort),
		Password: config.Envs.RedisPassword,
		DB:       config.Envs.RedisDB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Error(fmt.Sprintf("Redis ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to Redis")
}

func initSnapshotStore() {
	var err error
	snapshotStore, err = snapshot.NewRedisStore(redisClient, config.Envs.SnapshotTTL)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating snapshot store: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Snapshot store initialized")
}

func initSessionManager() {
	sessionLogger, err := logger.New("SESSION-MANAGER", config.ColorCyan, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating session manager logger: %v", err))
		os.Exit(1)
	}

	gameSessionManager, err = service.NewGameSessionManager(&service.Config{
		MazeConfig: maze.Config{
			GridSize:    config.Envs.GridSize,
			PathDensity: config.Envs.PathDensity,
		},
		RegenInterval:   config.Envs.RegenInterval,
		SessionDuration: config.Envs.SessionDuration,
		Snapshots:       snapshotStore,
		Records:         sessionRecordRepo,
		Users:           userRepo,
		Logger:          sessionLogger,
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating session manager: %v", err))
		os.Exit(1)
	}

	appLogger.Info("Session manager initialized")
}

func initControllers() {
	var err error
	sessionController, err = gameapi.NewSessionController(gameSessionManager)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating session controller: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Session controller initialized")

	mazeController, err = mazeapi.NewController(mazeapi.Config{
		DefaultConfig: maze.Config{
			GridSize:    config.Envs.GridSize,
			PathDensity: config.Envs.PathDensity,
		},
		MaxGridSize: max(maxRequestGridSize, config.Envs.GridSize),
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze controller: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Maze controller initialized")
}

func initJWTTokenizer() {
	jwtTokenizer = token.NewJwtService(config.Envs.JWTSecret, config.Envs.JWTIssuer)
	appLogger.Info("JWT Tokenizer initialized")
}

func initAuthService() {
	var err error
	authService, err = service.NewAuthService(userRepo, jwtTokenizer)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating auth service: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Auth service initialized")
}

func initAuthController() {
	authController = identity.NewIdentityServer(authService)
	appLogger.Info("Auth controller initialized")
}

func initRouter(t i.Tokenizer) {
	gin.SetMode(config.Envs.GinMode)
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:                 "/api",
		Controllers:             []api_i.Controller{authController, sessionController, mazeController},
		AuthorizationMiddleware: identity.Authoriz(t),
	})
	appLogger.Info("Router initialized")
}

func main() {
	var err error
	appLogger, err = logger.New("APP", config.ColorGreen, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "creating app logger: %v\n", err)
		os.Exit(1)
	}

	initCtx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel() // Ensure the context is always canceled

	// Initialize dependencies
	initMongo(initCtx)
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	initRepos(initCtx, mongoClient)
	initRedis(initCtx)
	defer redisClient.Close()

	initSnapshotStore()
	initSessionManager()
	initControllers()
	initJWTTokenizer()
	initAuthService()
	initAuthController()
	initRouter(jwtTokenizer)

	signalCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Run HTTP server
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- router.Run()
	}()

	select {
	case err := <-serverErr:
		appLogger.Error(fmt.Sprintf("Starting server: %v", err))
	case <-signalCtx.Done():
		appLogger.Info("Shutting down")
	}

	// Persist the final state of every running session before the stores close.
	gameSessionManager.StopAll()
	gameSessionManager.Wait()
	appLogger.Info("All sessions stopped")
}
