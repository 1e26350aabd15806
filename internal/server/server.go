package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"notification-service/internal/config"
	"notification-service/internal/domain"
	httphandler "notification-service/internal/handler/http"
	wshandler "notification-service/internal/handler/ws"
	"notification-service/internal/repository"
	"notification-service/internal/router"
	"notification-service/internal/service"
	"notification-service/internal/usecase"
	"notification-service/internal/worker"
	"notification-service/pkg/notifier"
	ws "notification-service/pkg/notifier/ws"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	HTTP    *http.Server
	workers *worker.Workers
}

func NewServer(cfg config.AppConfig) *Server {
	// --- DB connection ---
	dbpool, err := config.ConnectDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	// --- Repositories ---
	notifStore := repository.NewNotificationStore(dbpool)
	prefStore := repository.NewPreferenceStore(dbpool)
	dirStore := repository.NewDirectoryStore(dbpool)
	bookingStore := repository.NewBookingStore(dbpool)

	// --- Redis ---
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       0,
	})

	// --- WS manager and realtime emitter ---
	wsManager := ws.NewManager()
	go wsManager.Heartbeat(30 * time.Second)
	notif := notifier.NewNotifier(wsManager, rdb)
	go notif.RunBridge(context.Background())

	// --- Services ---
	schema := domain.NewPreferenceSchema()
	prefs := service.NewPreferenceService(prefStore, schema)
	recipients := service.NewRecipientService(dirStore)
	writer := service.NewWriter(prefs, notifStore, notif)
	events := service.NewEvents(writer, recipients)
	scheduler := service.NewScheduler(bookingStore, events)

	// --- Usecases ---
	uc := usecase.NewNotificationUsecase(notifStore, prefs)

	// --- Handlers ---
	restHandler := httphandler.NewNotificationHandler(uc, schema)
	wsHandler := wshandler.NewWSHandler(wsManager)

	// --- HTTP routes ---
	r := chi.NewRouter()
	r = router.SetupRoutes(r, restHandler, wsHandler, []byte(cfg.JWTSecret), rdb).(*chi.Mux)

	// --- Background workers ---
	workers := worker.NewWorkers(scheduler, cfg.ScheduleHour)
	workers.Start()

	return &Server{
		HTTP: &http.Server{
			Addr:    cfg.HTTPAddr,
			Handler: r,
		},
		workers: workers,
	}
}

func (s *Server) ListenAndServe() error {
	return s.HTTP.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.workers.Stop()
	return s.HTTP.Shutdown(ctx)
}
