package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rusingacademy/ecosystem-crm/internal/infra/cache"
	"github.com/rusingacademy/ecosystem-crm/internal/infra/database"
	"github.com/rusingacademy/ecosystem-crm/internal/infra/http/handlers"
	"github.com/rusingacademy/ecosystem-crm/internal/infra/http/middleware"
	"github.com/rusingacademy/ecosystem-crm/internal/infra/mail"
	"github.com/rusingacademy/ecosystem-crm/internal/infra/queue"
	"github.com/rusingacademy/ecosystem-crm/internal/infra/worker"
	"github.com/rusingacademy/ecosystem-crm/internal/usecase"
)

func main() {
	godotenv.Load()

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	rabbitMQ, err := queue.NewRabbitMQ(
		getEnv("RABBITMQ_USER", "guest"),
		getEnv("RABBITMQ_PASS", "guest"),
		getEnv("RABBITMQ_HOST", "localhost"),
		getEnv("RABBITMQ_PORT", "5672"),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	redisClient := cache.NewRedisClient(
		getEnv("REDIS_ADDR", "localhost:6379"),
		os.Getenv("REDIS_PASSWORD"),
	)
	defer redisClient.Close()

	// 1. Repositories
	leadRepo := database.NewLeadRepository(db)
	segmentRepo := database.NewSegmentRepository(db)
	automationRepo := database.NewAutomationRepository(db)
	runRepo := database.NewRunRepository(db)
	funnelRepo := database.NewFunnelRepository(db)

	// 2. Adapters
	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)
	countCache := cache.NewSegmentCountCache(redisClient, 10*time.Minute)
	mailPort, _ := strconv.Atoi(getEnv("MAIL_PORT", "587"))
	mailSender := mail.NewEmailSender(
		os.Getenv("MAIL_HOST"), mailPort,
		os.Getenv("MAIL_USER"), os.Getenv("MAIL_PASS"),
		getEnv("MAIL_FROM", "no-reply@rusingacademy.com"),
		getEnv("ADMIN_EMAIL", "sales@rusingacademy.com"),
	)

	// 3. UseCases
	segmentUC := usecase.NewSegmentUseCase(segmentRepo, leadRepo, countCache)
	automationUC := usecase.NewAutomationUseCase(automationRepo)
	funnelUC := usecase.NewFunnelUseCase(funnelRepo)
	runUC := usecase.NewRunUseCase(automationRepo, runRepo, leadRepo, mailSender, producer)
	triggerUC := usecase.NewTriggerUseCase(automationRepo, runRepo, runUC)

	// 4. Workers (trigger consumer + wait-step scheduler)
	triggerWorker := queue.NewWorker(rabbitMQ.Ch, triggerUC)
	go triggerWorker.Start(queue.TriggerQueue)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	scheduler := worker.NewRunScheduler(runUC)
	go scheduler.Start(ctx)

	// 5. Handlers
	leadHandler := handlers.NewLeadHandler(leadRepo)
	segmentHandler := handlers.NewSegmentHandler(segmentUC)
	automationHandler := handlers.NewAutomationHandler(automationUC, producer)
	funnelHandler := handlers.NewFunnelHandler(funnelUC)
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn, redisClient)

	// 6. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173", "*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
	}))

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/leads", leadHandler.CaptureLead)
	r.Get("/leads", leadHandler.List)

	r.Route("/segments", func(r chi.Router) {
		r.Get("/", segmentHandler.List)
		r.Post("/", segmentHandler.Create)
		r.Post("/preview", segmentHandler.Preview)
		r.Put("/{id}", segmentHandler.Update)
		r.Delete("/{id}", segmentHandler.Delete)
		r.Post("/{id}/recount", segmentHandler.Recount)
		r.Get("/{id}/count", segmentHandler.Count)
	})

	r.Route("/automations", func(r chi.Router) {
		r.Get("/", automationHandler.List)
		r.Get("/stats", automationHandler.Stats)
		r.Post("/", automationHandler.Create)
		r.Post("/trigger", automationHandler.Trigger)
		r.Put("/{id}", automationHandler.Update)
		r.Patch("/{id}/status", automationHandler.UpdateStatus)
		r.Post("/{id}/duplicate", automationHandler.Duplicate)
		r.Delete("/{id}", automationHandler.Delete)
	})

	r.Route("/funnels", func(r chi.Router) {
		r.Get("/", funnelHandler.List)
		r.Get("/stats", funnelHandler.Stats)
		r.Post("/", funnelHandler.Create)
		r.Put("/{id}", funnelHandler.Update)
		r.Patch("/{id}/status", funnelHandler.UpdateStatus)
		r.Post("/{id}/duplicate", funnelHandler.Duplicate)
		r.Delete("/{id}", funnelHandler.Delete)
	})

	port := ":" + getEnv("PORT", "8080")
	log.Printf("🔥 Ecosystem CRM API listening on %s", port)
	http.ListenAndServe(port, r)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
