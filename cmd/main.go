package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/velikanov/CPS-ParkingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/velikanov/CPS-ParkingService/internal/api/handlers/create_booking"
	createSlotHandler "github.com/velikanov/CPS-ParkingService/internal/api/handlers/create_slot"
	deleteSlotHandler "github.com/velikanov/CPS-ParkingService/internal/api/handlers/delete_slot"
	getAvailabilityHandler "github.com/velikanov/CPS-ParkingService/internal/api/handlers/get_availability"
	getBookingHandler "github.com/velikanov/CPS-ParkingService/internal/api/handlers/get_booking"
	getProfileHandler "github.com/velikanov/CPS-ParkingService/internal/api/handlers/get_profile"
	getSlotHandler "github.com/velikanov/CPS-ParkingService/internal/api/handlers/get_slot"
	getSlotBookingsHandler "github.com/velikanov/CPS-ParkingService/internal/api/handlers/get_slot_bookings"
	getUserBookingsHandler "github.com/velikanov/CPS-ParkingService/internal/api/handlers/get_user_bookings"
	listSlotsHandler "github.com/velikanov/CPS-ParkingService/internal/api/handlers/list_slots"
	updateProfileHandler "github.com/velikanov/CPS-ParkingService/internal/api/handlers/update_profile"
	updateSlotHandler "github.com/velikanov/CPS-ParkingService/internal/api/handlers/update_slot"
	"github.com/velikanov/CPS-ParkingService/internal/api/middleware"
	"github.com/velikanov/CPS-ParkingService/internal/config"
	bookingRepo "github.com/velikanov/CPS-ParkingService/internal/infra/storage/booking"
	communityRepo "github.com/velikanov/CPS-ParkingService/internal/infra/storage/community"
	slotRepo "github.com/velikanov/CPS-ParkingService/internal/infra/storage/slot"
	userRepo "github.com/velikanov/CPS-ParkingService/internal/infra/storage/user"
	availabilityService "github.com/velikanov/CPS-ParkingService/internal/service/availability"
	bookingsService "github.com/velikanov/CPS-ParkingService/internal/service/bookings"
	slotsService "github.com/velikanov/CPS-ParkingService/internal/service/slots"
	usersService "github.com/velikanov/CPS-ParkingService/internal/service/users"
	createBookingUC "github.com/velikanov/CPS-ParkingService/internal/usecase/create_booking"
	"github.com/velikanov/CPS-ParkingService/pkg/dbmetrics"
	"github.com/velikanov/CPS-ParkingService/pkg/logger"
	"github.com/velikanov/CPS-ParkingService/pkg/metrics"
	"github.com/velikanov/CPS-ParkingService/pkg/simpletxmanager"
	"github.com/velikanov/CPS-ParkingService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting CPS-ParkingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем репозитории (с метриками или без)
	var (
		slotRepository      *slotRepo.Repository
		bookingRepository   *bookingRepo.Repository
		userRepository      *userRepo.Repository
		communityRepository *communityRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		slotRepository = slotRepo.NewRepository(wrappedDB)
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		userRepository = userRepo.NewRepository(wrappedDB)
		communityRepository = communityRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		slotRepository = slotRepo.NewRepository(db)
		bookingRepository = bookingRepo.NewRepository(db)
		userRepository = userRepo.NewRepository(db)
		communityRepository = communityRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	slotSvc := slotsService.NewService(slotRepository, bookingRepository, log)
	bookingSvc := bookingsService.NewService(bookingRepository, slotRepository, log)
	availabilitySvc := availabilityService.NewService(slotRepository, bookingRepository, log)
	userSvc := usersService.NewService(userRepository, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		slotRepository,
		bookingRepository,
		txMgr,
		log,
	)

	// Инициализируем handlers
	createSlot := createSlotHandler.NewHandler(slotSvc, log)
	listSlots := listSlotsHandler.NewHandler(slotSvc, log)
	getSlot := getSlotHandler.NewHandler(slotSvc, log)
	updateSlot := updateSlotHandler.NewHandler(slotSvc, log)
	deleteSlot := deleteSlotHandler.NewHandler(slotSvc, log)
	getAvailability := getAvailabilityHandler.NewHandler(availabilitySvc, log)
	getSlotBookings := getSlotBookingsHandler.NewHandler(bookingSvc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getProfile := getProfileHandler.NewHandler(userSvc, log)
	updateProfile := updateProfileHandler.NewHandler(userSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// Все маршруты за Auth middleware: тенант-контекст строится из
	// токена и актуального состояния пользователя и ЖК в БД
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(cfg.Auth.JWTSecret, userRepository, communityRepository, log))

	// --- Парковочные места ---
	protected.HandleFunc("/slots", createSlot.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/slots", listSlots.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/slots/{slotId}", getSlot.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/slots/{slotId}", updateSlot.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/slots/{slotId}", deleteSlot.Handle).Methods(http.MethodDelete)

	// Доступность и календарь места
	protected.HandleFunc("/slots/{slotId}/availability", getAvailability.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/slots/{slotId}/bookings", getSlotBookings.Handle).Methods(http.MethodGet)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// --- Профиль ---
	protected.HandleFunc("/users/me", getProfile.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/users/me", updateProfile.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/users/me/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
