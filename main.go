package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mohanmeesala2005/EventHub/config"
	"github.com/mohanmeesala2005/EventHub/controllers"
	"github.com/mohanmeesala2005/EventHub/middleware"
	"github.com/mohanmeesala2005/EventHub/models"
	"github.com/mohanmeesala2005/EventHub/storage"
	"github.com/mohanmeesala2005/EventHub/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}

	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	}

	client, db, err := config.ConnectDB(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to MongoDB")
	}
	logrus.WithField("database", cfg.MongoDB).Info("connected to MongoDB")

	users := store.NewMongoUserStore(db)
	events := store.NewMongoEventStore(db)
	registrations := store.NewMongoRegistrationStore(db)
	files := storage.NewFileStorage(cfg.UploadDir)

	authController := controllers.NewAuthController(users)
	eventController := controllers.NewEventController(events, registrations, users, files)

	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(middleware.RequestLogger(), gin.Recovery())

	router.Static("/uploads", cfg.UploadDir)

	auth := router.Group("/auth")
	{
		auth.POST("/signup", authController.Signup)
		auth.POST("/login", authController.Login)
		auth.POST("/update", middleware.Auth(), authController.UpdateProfile)
	}

	eventsGroup := router.Group("/events")
	{
		eventsGroup.POST("/create", middleware.Auth(), eventController.CreateEvent)
		eventsGroup.POST("/getevent", eventController.GetAllEvents)
		eventsGroup.PUT("/:id", middleware.Auth(), eventController.UpdateEvent)
		eventsGroup.DELETE("/:id", middleware.Auth(), eventController.DeleteEvent)
		eventsGroup.POST("/register", middleware.Auth(), eventController.RegisterForEvent)
		eventsGroup.GET("/registrations", middleware.Auth(), eventController.GetUserRegistrations)
		eventsGroup.GET("/registrations/:eventId", eventController.GetEventRegistrations)

		admin := eventsGroup.Group("/admin", middleware.Auth(), middleware.RequireRole(models.RoleAdmin))
		{
			admin.GET("/events-with-stats", eventController.GetAllEventsWithStats)
			admin.GET("/all-registrations", eventController.GetAllRegistrations)
		}
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logrus.WithField("port", cfg.Port).Info("server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("server forced to shutdown")
	}

	if err := client.Disconnect(ctx); err != nil {
		logrus.WithError(err).Error("error disconnecting MongoDB")
	}

	logrus.Info("server exited")
}
