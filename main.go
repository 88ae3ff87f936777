package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/beka-birhanu/vinom-maze/api"
	api_i "github.com/beka-birhanu/vinom-maze/api/i"
	mazeapi "github.com/beka-birhanu/vinom-maze/api/maze"
	"github.com/beka-birhanu/vinom-maze/config"
	"github.com/beka-birhanu/vinom-maze/infrastruture/cache"
	"github.com/beka-birhanu/vinom-maze/infrastruture/memstore"
	"github.com/beka-birhanu/vinom-maze/infrastruture/repo"
	"github.com/beka-birhanu/vinom-maze/infrastruture/token"
	"github.com/beka-birhanu/vinom-maze/logger"
	"github.com/beka-birhanu/vinom-maze/render"
	"github.com/beka-birhanu/vinom-maze/service"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Global variables for dependencies
var (
	mongoClient    *mongo.Client
	redisClient    *redis.Client
	mazeRepo       i.MazeRepo
	renderCache    i.RenderCache
	jwtTokenizer   i.Tokenizer
	mazeService    i.MazeService
	mazeController api_i.Controller
	router         *api.Router
	appLogger      *logger.Logger
)

func initMongo(ctx context.Context) {
	if config.Envs.MongoURI == "" {
		mazeRepo = memstore.NewMazeRepo()
		appLogger.Warning("MONGO_URI not set, keeping maze records in memory")
		return
	}

	var err error
	mongoClient, err = mongo.Connect(ctx, options.Client().ApplyURI(config.Envs.MongoURI))
	if err != nil {
		appLogger.Error(fmt.Sprintf("Failed to connect to MongoDB: %v", err))
		os.Exit(1)
	}
	if err = mongoClient.Ping(ctx, nil); err != nil {
		appLogger.Error(fmt.Sprintf("MongoDB ping failed: %v", err))
		os.Exit(1)
	}

	mazeRepo = repo.NewMazeRepo(mongoClient, config.Envs.DBName, "mazes")
	appLogger.Info("Connected to MongoDB", logger.Fields{"db": config.Envs.DBName})
}

func initRedis(ctx context.Context) {
	if config.Envs.RedisAddr == "" {
		renderCache = memstore.NewRenderCache(config.Envs.RenderCacheTTL)
		appLogger.Warning("REDIS_ADDR not set, caching renders in memory")
		return
	}

	redisClient = redis.NewClient(&redis.Options{
		Addr:     config.Envs.RedisAddr,
		Password: config.Envs.RedisPassword,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Error(fmt.Sprintf("Redis ping failed: %v", err))
		os.Exit(1)
	}

	renderCache = cache.NewRedisRenderCache(redisClient, config.Envs.RenderCacheTTL, 2*mazeapi.RenderTimeout)
	appLogger.Info("Connected to Redis", logger.Fields{"addr": config.Envs.RedisAddr})
}

func initJWTTokenizer() {
	jwtTokenizer = token.NewJwtService(config.MustGetEnv("JWT_SECRET"), config.Envs.JWTIssuer)
	appLogger.Info("JWT Tokenizer initialized")
}

func initMazeService() {
	serviceLogger, err := logger.New("MAZE-SERVICE", config.ColorCyan, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze service logger: %v", err))
		os.Exit(1)
	}
	if err := serviceLogger.SetLevel(config.Envs.LogLevel); err != nil {
		appLogger.Warning(fmt.Sprintf("Ignoring LOG_LEVEL: %v", err))
	}

	mazeService, err = service.NewMazeService(&service.Config{
		Repo:            mazeRepo,
		Cache:           renderCache,
		Tokenizer:       jwtTokenizer,
		Logger:          serviceLogger,
		DefaultSize:     config.Envs.MazeSize,
		MaxSize:         config.Envs.MazeMaxSize,
		DefaultStrategy: config.Envs.MazeStrategy,
		IterationCap:    config.Envs.MazeIterationCap,
		Verify:          config.Envs.MazeVerify,
		RenderConfig: render.Config{
			LineWidth: config.Envs.LineWidth,
			CellSize:  config.Envs.CellSize,
		},
		ShareTTL: config.Envs.ShareTTL,
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze service: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Maze service initialized")
}

func initMazeController() {
	mazeController = mazeapi.NewMazeController(mazeService)
	appLogger.Info("Maze controller initialized")
}

func initRouter() {
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:                 "/api",
		Mode:                    config.Envs.GinMode,
		Controllers:             []api_i.Controller{mazeController},
		AuthorizationMiddleware: mazeapi.ShareToken(mazeService),
	})
	appLogger.Info("Router initialized")
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	appLogger, _ = logger.New("APP", config.ColorGreen, os.Stdout)

	initMongo(ctx)
	if mongoClient != nil {
		defer func() {
			_ = mongoClient.Disconnect(context.Background())
		}()
	}

	initRedis(ctx)
	if redisClient != nil {
		defer redisClient.Close()
	}

	initJWTTokenizer()
	initMazeService()
	initMazeController()
	initRouter()

	if err := router.Run(); err != nil {
		appLogger.Error(fmt.Sprintf("Starting server: %v", err))
		os.Exit(1)
	}
}
