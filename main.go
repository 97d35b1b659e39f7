package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"streamtoshelf/controllers"
	"streamtoshelf/controllers/platforms"
	"streamtoshelf/logger"
	"streamtoshelf/middleware"
	"streamtoshelf/services/discogs"
	"streamtoshelf/services/songlink"
	"streamtoshelf/services/spotify"
)

func init() {
	env := os.Getenv("ENV")
	if env == "" {
		log.Println("==⚠️ WARNING: env variable not set. Using dev ⚠️==")
		env = "dev"
	}
	err := godotenv.Load(".env." + env)
	if err != nil {
		log.Println("Error reading the env file")
		log.Println(err)
	}
}

func main() {
	appLogger := logger.NewLogger()
	app := fiber.New()

	/**
	 ===========================================================
	+ Redis connection here. The service runs without it, the
	+ upstream response cache just goes cold.
	*/
	var redisClient *redis.Client
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		redisOpts, err := redis.ParseURL(redisURL)
		if err != nil {
			log.Printf("Error parsing redis url")
			panic(err)
		}
		redisClient = redis.NewClient(redisOpts)
		if redisClient.Ping(context.Background()).Err() != nil {
			log.Printf("\n[main] [warning] - Could not connect to redis. Continuing without the response cache.")
			redisClient = nil
		}
	} else {
		log.Printf("\n[main] [warning] - REDIS_URL not set. Continuing without the response cache.")
	}

	tokenStore := spotify.NewTokenStore(os.Getenv("SPOTIFY_CLIENT_ID"), os.Getenv("SPOTIFY_CLIENT_SECRET"))
	spotifyService := spotify.NewService(tokenStore, redisClient, appLogger)
	songlinkService := songlink.NewService(os.Getenv("SONGLINK_API_URL"), redisClient, appLogger)
	discogsService := discogs.NewService(os.Getenv("DISCOGS_API_URL"), os.Getenv("DISCOGS_TOKEN"), redisClient, appLogger)

	appMiddleware := middleware.NewAppMiddleware(appLogger)
	platformsControllers := platforms.NewPlatform(spotifyService, songlinkService, discogsService)

	/**
	 ==================================================================
	+
	+	ROUTE DEFINITIONS GO HERE
	+
	 ==================================================================
	*/
	app.Use(cors.New(), appMiddleware.LogIncomingRequest)
	baseRouter := app.Group("/api/v1", middleware.NoStore)

	baseRouter.Get("/heartbeat", controllers.Heartbeat)
	baseRouter.Get("/search", platformsControllers.SearchAlbums)
	baseRouter.Get("/artists/autocomplete", platformsControllers.ArtistAutocomplete)
	baseRouter.Get("/links", platformsControllers.ResolveLinks)

	// prewarm the metadata provider token so the first search after a deploy
	// doesn't pay for the exchange
	c := cron.New()
	entryID, cErr := c.AddFunc("@every 45m", func() {
		if _, err := tokenStore.Token(context.Background()); err != nil {
			log.Printf("\n[main] [warning] - Token prewarm failed: %v", err)
		}
	})
	if cErr != nil {
		log.Printf("\n[main] [error] - Could not start cron job.")
		panic(cErr)
	}
	c.Start()
	log.Printf("\n[main] [info] - CRONJOB Entry ID is: %v", entryID)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	port = fmt.Sprintf(":%s", port)

	log.Printf("Server is up and running on port: %s", port)
	err := app.Listen(port)
	if err != nil {
		log.Printf("Error starting server: %v\n", err)
		os.Exit(1)
	}
}
