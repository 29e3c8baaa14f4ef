package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"reservas/internal/api"
	"reservas/internal/config"
	"reservas/internal/db"
	"reservas/internal/logger"
	"reservas/internal/repository"
	"reservas/internal/service"
)

func main() {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zlog, err := logger.New(cfg.Environment)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zlog.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	database, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		zlog.Fatal("failed to connect to mongo", zap.Error(err))
	}
	defer db.Disconnect(context.Background(), database)

	if err := db.EnsureIndexes(ctx, database); err != nil {
		zlog.Fatal("failed to ensure indexes", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(database)
	vehicleRepo := repository.NewVehicleRepository(database)
	reservationRepo := repository.NewReservationRepository(database)

	sender := service.NewSenderService(zlog)
	userSvc := service.NewUserService(userRepo, zlog)
	vehicleSvc := service.NewVehicleService(vehicleRepo, zlog)
	reservationSvc := service.NewReservationService(reservationRepo, userRepo, vehicleRepo, sender, zlog)
	reportSvc := service.NewReportService(reservationRepo, userRepo, vehicleRepo, zlog)
	jobSvc := service.NewJobService(reservationRepo, zlog)

	userHandler := api.NewUserHandler(userSvc)
	vehicleHandler := api.NewVehicleHandler(vehicleSvc)
	reservationHandler := api.NewReservationHandler(reservationSvc)
	reportHandler := api.NewReportHandler(reportSvc)

	r := mux.NewRouter()
	r.Use(api.RequestLogger(zlog))

	// Users
	r.HandleFunc("/users", userHandler.List).Methods("GET")
	r.HandleFunc("/users", userHandler.Create).Methods("POST")
	r.HandleFunc("/users/{id}", userHandler.Get).Methods("GET")
	r.HandleFunc("/users/{id}", userHandler.Update).Methods("PUT")
	r.HandleFunc("/users/{id}", userHandler.Delete).Methods("DELETE")
	r.HandleFunc("/users/{id}/activate", reservationHandler.ReactivateUser).Methods("PUT")

	// Vehicles
	r.HandleFunc("/vehicles", vehicleHandler.List).Methods("GET")
	r.HandleFunc("/vehicles", vehicleHandler.Create).Methods("POST")
	r.HandleFunc("/vehicles/{id}", vehicleHandler.Get).Methods("GET")
	r.HandleFunc("/vehicles/{id}", vehicleHandler.Update).Methods("PUT")
	r.HandleFunc("/vehicles/{id}", vehicleHandler.Delete).Methods("DELETE")

	// Reservations
	r.HandleFunc("/reservations", reservationHandler.List).Methods("GET")
	r.HandleFunc("/reservations", reservationHandler.Create).Methods("POST")
	r.HandleFunc("/reservations/user/{id}", reservationHandler.ListByUser).Methods("GET")
	r.HandleFunc("/reservations/{id}", reservationHandler.Cancel).Methods("DELETE")

	// Reports
	r.HandleFunc("/reports/most-reserved-vehicle", reportHandler.MostReservedVehicle).Methods("GET")
	r.HandleFunc("/reports/top-cancelling-users", reportHandler.TopCancellingUsers).Methods("GET")

	c := cron.New()
	if _, err := c.AddFunc(cfg.RetentionSchedule, func() {
		jobCtx, jobCancel := context.WithTimeout(context.Background(), time.Minute)
		defer jobCancel()
		if err := jobSvc.PurgeExpiredCancellations(jobCtx); err != nil {
			zlog.Error("retention job failed", zap.Error(err))
		}
	}); err != nil {
		zlog.Fatal("failed to schedule retention job", zap.Error(err))
	}
	c.Start()
	defer c.Stop()

	handler := handlers.RecoveryHandler()(
		handlers.CORS(
			handlers.AllowedOrigins(cfg.AllowedOrigins),
			handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
			handlers.AllowedHeaders([]string{"Content-Type"}),
		)(r))

	zlog.Info("server running", zap.String("port", cfg.Port))
	zlog.Fatal("server stopped", zap.Error(http.ListenAndServe(":"+cfg.Port, handler)))
}
