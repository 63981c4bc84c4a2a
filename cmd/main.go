package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/ukydev/fleet-maintenance/internal/auth"
	"github.com/ukydev/fleet-maintenance/internal/db"
	"github.com/ukydev/fleet-maintenance/internal/engine"
	"github.com/ukydev/fleet-maintenance/internal/handlers"
	"github.com/ukydev/fleet-maintenance/internal/ingest"
	"github.com/ukydev/fleet-maintenance/internal/middleware"
	"github.com/ukydev/fleet-maintenance/pkg/metrics"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file found, using environment")
	}
	log.SetFormatter(&log.JSONFormatter{})

	client, err := db.ConnectMongo()
	if err != nil {
		log.WithError(err).Fatal("failed to connect to MongoDB")
	}
	log.Info("connected to MongoDB")

	database := client.Database(db.DatabaseName())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := db.EnsureIndexes(ctx, database); err != nil {
		cancel()
		log.WithError(err).Fatal("failed to create indexes")
	}
	cancel()

	credentials := &db.MongoCredentialCollection{Collection: database.Collection("credentials")}
	technicians := &db.MongoTechnicianCollection{Collection: database.Collection("technicians")}
	vehicles := &db.MongoVehicleCollection{Collection: database.Collection("vehicles")}
	services := &db.MongoServiceCollection{Collection: database.Collection("services")}
	histories := &db.MongoHistoryCollection{Collection: database.Collection("histories")}
	txn := &db.SessionRunner{Client: client}

	eng := engine.New(technicians, vehicles, services, histories, txn)

	authService, err := auth.NewService()
	if err != nil {
		log.WithError(err).Fatal("failed to create auth service")
	}
	authMiddleware := middleware.NewAuthMiddleware(authService)
	rateLimiter := middleware.NewRateLimitMiddleware()

	m := metrics.NewMetrics("fleet_maintenance")

	authHandler := handlers.NewAuthHandler(authService, credentials, technicians)
	vehicleHandler := handlers.NewVehicleHandler(eng, vehicles)
	scheduleHandler := handlers.NewScheduleHandler(eng, m)
	technicianHandler := handlers.NewTechnicianHandler(eng, m)
	odometerHandler := handlers.NewOdometerHandler(eng, m)
	historyHandler := handlers.NewHistoryHandler(eng, m)

	router := mux.NewRouter()
	router.HandleFunc("/api/auth/login", authHandler.Login).Methods(http.MethodPost)
	router.HandleFunc("/api/register", authHandler.Register).Methods(http.MethodPost)

	router.HandleFunc("/api/vehicles", vehicleHandler.Create).Methods(http.MethodPost)
	router.HandleFunc("/api/vehicles", vehicleHandler.List).Methods(http.MethodGet)
	router.HandleFunc("/api/vehicles/{id}/odometer", odometerHandler.Record).Methods(http.MethodPost)
	router.HandleFunc("/api/vehicles/{id}/odometer", odometerHandler.Readings).Methods(http.MethodGet)

	router.HandleFunc("/api/scheduling/schedule", scheduleHandler.Schedule).Methods(http.MethodPost)

	router.HandleFunc("/api/technician/assignments", technicianHandler.CreateAssignment).Methods(http.MethodPost)
	router.HandleFunc("/api/technician/assignments", technicianHandler.ListAssignments).Methods(http.MethodGet)
	router.HandleFunc("/api/technician/assignments/{id}/status", technicianHandler.UpdateStatus).Methods(http.MethodPatch)
	router.HandleFunc("/api/technician/unassigned-services", technicianHandler.ListUnassigned).Methods(http.MethodGet)

	router.HandleFunc("/api/history/addService", historyHandler.AddService).Methods(http.MethodPost)
	router.HandleFunc("/api/history/allHistories", historyHandler.ListAll).Methods(http.MethodGet)

	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	// Optional MQTT odometer feed
	if broker := os.Getenv("MQTT_BROKER"); broker != "" {
		ingestor, err := ingest.NewOdometerIngestor(broker, eng)
		if err != nil {
			log.WithError(err).Error("failed to start odometer ingestor")
		} else {
			defer ingestor.Close()
		}
	}

	handler := rateLimiter.RateLimit(100, 60)(authMiddleware.Authenticate(router))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.WithField("port", port).Info("HTTP server listening")
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
