package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"nearby/cmd/fx/configfx"
	"nearby/cmd/fx/controllersfx"
	"nearby/cmd/fx/dbfx"
	"nearby/cmd/fx/gatewayfx"
	"nearby/cmd/fx/venuesfx"
	"nearby/internal/api/controllers"
	"nearby/internal/services"
	"nearby/pkg/config"
	"nearby/pkg/middleware"
)

func main() {
	app := fx.New(
		configfx.Module,
		dbfx.Module,
		gatewayfx.Module,
		venuesfx.Module,
		controllersfx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, cfg *config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Printf("Starting HTTP server at :%s", cfg.Port)
				if err := engine.Run(":" + cfg.Port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	cfg *config.Config,
	resolver services.LocationResolver,
	venuesController *controllers.VenuesController,
	tokenController *controllers.TokenController) *gin.Engine {

	r := gin.Default()
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r, cfg, resolver, venuesController, tokenController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	cfg *config.Config,
	resolver services.LocationResolver,
	venuesController *controllers.VenuesController,
	tokenController *controllers.TokenController) {

	v1 := r.Group("/v1")
	v1.POST("/token", tokenController.IssueToken)

	venues := v1.Group("/venues")
	venues.GET("", middleware.LocationMiddleware(resolver), venuesController.GetVenues)
	venues.POST("/:id/votes", middleware.JWTAuthMiddleware([]byte(cfg.JWTSecret)), venuesController.CastVote)
}
