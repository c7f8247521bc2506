package app

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"acadmin/api"
	"acadmin/config"
	"acadmin/database"
	"acadmin/router"
	"acadmin/services/cron"
	"acadmin/services/rubricgen"
	"acadmin/services/storage"
	"acadmin/utils/cache"
)

func SetupAndRunServer() error {

	// Load ENV
	if err := config.LoadENV(); err != nil {
		return err
	}

	getEnv, err := config.Get()
	if err != nil {
		return err
	}

	// Initialize GORM database connection
	store, err := database.StartGORM(getEnv)
	if err != nil {
		print("Check whether the Postgres is running or not\n")
		return err
	}

	if err := store.Init(); err != nil {
		print("Failed to initialize database tables\n")
		return err
	}

	if err := database.EnsureRootAdmin(store.DB(), getEnv); err != nil {
		return err
	}

	// Redis is optional; without it write throttling is disabled
	var redisCache *cache.RedisCache
	if getEnv.REDIS_URL != "" {
		redisCache, err = cache.NewRedisCache(getEnv.REDIS_URL)
		if err != nil {
			log.Printf("Warning: redis unavailable, write throttling disabled: %v", err)
			redisCache = nil
		}
	}

	// Object storage is optional; without it rubric generation keeps no
	// copy of the uploaded document
	var storageClient *storage.Client
	if getEnv.STORAGE_BUCKET != "" {
		storageClient, err = storage.NewClient(storage.Config{
			AccessKey: getEnv.STORAGE_ACCESS_KEY,
			SecretKey: getEnv.STORAGE_SECRET_KEY,
			Bucket:    getEnv.STORAGE_BUCKET,
			Region:    getEnv.STORAGE_REGION,
			Endpoint:  getEnv.STORAGE_ENDPOINT,
		})
		if err != nil {
			log.Printf("Warning: object storage unavailable: %v", err)
			storageClient = nil
		}
	}

	var generator *rubricgen.Client
	if getEnv.RUBRIC_SERVICE_URL != "" {
		generator = rubricgen.NewClient(getEnv.RUBRIC_SERVICE_URL)
	}

	// Initialize Cron Manager (only if enabled via environment variable)
	var cronManager *cron.CronManager
	if os.Getenv("CRON_ENABLED") != "false" { // Default to enabled
		cronManager = cron.NewCronManager(store.DB(), storageClient)
		if err := cronManager.Start(); err != nil {
			log.Printf("Warning: failed to start cron jobs: %v", err)
			// Don't fail the app, just log the warning
		}
	}

	// Defer Closing DB and stopping cron jobs
	defer func() {
		if cronManager != nil {
			cronManager.Stop()
		}
		if redisCache != nil {
			redisCache.Close()
		}
		store.Close()
	}()

	// Init API
	var server *api.APIServer = api.NewAPIServer(fmt.Sprintf(":%d", getEnv.PORT))
	app := server.GetEngine()

	// Setup Routes
	router.SetupRoutes(app, router.Dependencies{
		Store:     store,
		Env:       getEnv,
		Cache:     redisCache,
		Storage:   storageClient,
		Generator: generator,
	})

	// Shut down cleanly on SIGINT/SIGTERM so in-flight requests finish
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		if err := server.Shutdown(); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
	}()

	// Get the PORT & Start the Server
	return server.Run()
}
