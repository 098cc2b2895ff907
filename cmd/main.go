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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	broadcastHandler "github.com/m04kA/PT-BookingService/internal/api/handlers/broadcast"
	cancelBookingHandler "github.com/m04kA/PT-BookingService/internal/api/handlers/cancel_booking"
	copyScheduleDayHandler "github.com/m04kA/PT-BookingService/internal/api/handlers/copy_schedule_day"
	createBookingHandler "github.com/m04kA/PT-BookingService/internal/api/handlers/create_booking"
	getBookingsRangeHandler "github.com/m04kA/PT-BookingService/internal/api/handlers/get_bookings_range"
	getMeHandler "github.com/m04kA/PT-BookingService/internal/api/handlers/get_me"
	getMyBookingsHandler "github.com/m04kA/PT-BookingService/internal/api/handlers/get_my_bookings"
	getScheduleDayHandler "github.com/m04kA/PT-BookingService/internal/api/handlers/get_schedule_day"
	getScheduleSettingsHandler "github.com/m04kA/PT-BookingService/internal/api/handlers/get_schedule_settings"
	getSlotDaysHandler "github.com/m04kA/PT-BookingService/internal/api/handlers/get_slot_days"
	getSlotsHandler "github.com/m04kA/PT-BookingService/internal/api/handlers/get_slots"
	listClientsHandler "github.com/m04kA/PT-BookingService/internal/api/handlers/list_clients"
	setDurationHandler "github.com/m04kA/PT-BookingService/internal/api/handlers/set_duration"
	telegramWebhookHandler "github.com/m04kA/PT-BookingService/internal/api/handlers/telegram_webhook"
	trainerCreateBookingHandler "github.com/m04kA/PT-BookingService/internal/api/handlers/trainer_create_booking"
	updateClientHandler "github.com/m04kA/PT-BookingService/internal/api/handlers/update_client"
	updateProfileHandler "github.com/m04kA/PT-BookingService/internal/api/handlers/update_profile"
	upsertScheduleDayHandler "github.com/m04kA/PT-BookingService/internal/api/handlers/upsert_schedule_day"
	"github.com/m04kA/PT-BookingService/internal/api/middleware"
	"github.com/m04kA/PT-BookingService/internal/bot"
	"github.com/m04kA/PT-BookingService/internal/config"
	auditlogRepo "github.com/m04kA/PT-BookingService/internal/infra/storage/auditlog"
	bookingRepo "github.com/m04kA/PT-BookingService/internal/infra/storage/booking"
	scheduledayRepo "github.com/m04kA/PT-BookingService/internal/infra/storage/scheduleday"
	settingsRepo "github.com/m04kA/PT-BookingService/internal/infra/storage/settings"
	userRepo "github.com/m04kA/PT-BookingService/internal/infra/storage/user"
	calendarClient "github.com/m04kA/PT-BookingService/internal/integrations/calendar"
	telegramClient "github.com/m04kA/PT-BookingService/internal/integrations/telegram"
	"github.com/m04kA/PT-BookingService/internal/scheduler"
	bookingsService "github.com/m04kA/PT-BookingService/internal/service/bookings"
	scheduleService "github.com/m04kA/PT-BookingService/internal/service/schedule"
	usersService "github.com/m04kA/PT-BookingService/internal/service/users"
	createBookingUC "github.com/m04kA/PT-BookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/PT-BookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/PT-BookingService/pkg/dbmetrics"
	"github.com/m04kA/PT-BookingService/pkg/logger"
	"github.com/m04kA/PT-BookingService/pkg/metrics"
	"github.com/m04kA/PT-BookingService/pkg/simpletxmanager"
	"github.com/m04kA/PT-BookingService/pkg/txmanager"
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

	log.Info("Starting PT-BookingService...")

	// Все вычисления времени идут в зоне тренера
	loc, err := time.LoadLocation(cfg.Calendar.Timezone)
	if err != nil {
		log.Fatal("Failed to load timezone %s: %v", cfg.Calendar.Timezone, err)
	}

	// Инициализируем метрики. При выключенном экспорте коллектор
	// регистрируется в изолированном registry и наружу не отдается
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	} else {
		metricsCollector = metrics.NewWith(prometheus.NewRegistry(), cfg.Metrics.ServiceName)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем интеграционных клиентов
	calClient := calendarClient.NewClient(
		cfg.Calendar.URL,
		cfg.Calendar.Secret,
		cfg.Calendar.CalendarID,
		cfg.Calendar.Location,
		time.Duration(cfg.Calendar.Timeout)*time.Second,
		log,
	)
	tgClient, err := telegramClient.NewClient(cfg.Telegram.BotToken, cfg.Telegram.WebAppURL, log)
	if err != nil {
		log.Fatal("Failed to initialize telegram client: %v", err)
	}
	log.Info("Integration clients initialized (calendar=%s, webapp=%s)",
		cfg.Calendar.URL, cfg.Telegram.WebAppURL)

	// Интерфейс transaction manager для use cases
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}

	var (
		userRepository     *userRepo.Repository
		scheduleRepository *scheduledayRepo.Repository
		bookingRepository  *bookingRepo.Repository
		settingsRepository *settingsRepo.Repository
		auditRepository    *auditlogRepo.Repository
		txMgr              TxManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		userRepository = userRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduledayRepo.NewRepository(wrappedDB)
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		settingsRepository = settingsRepo.NewRepository(wrappedDB)
		auditRepository = auditlogRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		userRepository = userRepo.NewRepository(db)
		scheduleRepository = scheduledayRepo.NewRepository(db)
		bookingRepository = bookingRepo.NewRepository(db)
		settingsRepository = settingsRepo.NewRepository(db)
		auditRepository = auditlogRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		userRepository,
		auditRepository,
		calClient,
		tgClient,
		txMgr,
		loc,
		cfg.Telegram.TrainerID,
		log,
	)
	scheduleSvc := scheduleService.NewService(
		scheduleRepository,
		settingsRepository,
		auditRepository,
		calClient,
		log,
	)
	usersSvc := usersService.NewService(
		userRepository,
		auditRepository,
		tgClient,
		log,
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		scheduleRepository,
		settingsRepository,
		calClient,
		loc,
		cfg.Bookings.HorizonDays,
		log,
	)
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		userRepository,
		scheduleRepository,
		settingsRepository,
		auditRepository,
		calClient,
		tgClient,
		txMgr,
		loc,
		cfg.Telegram.TrainerID,
		cfg.Scheduler.LowBalanceThreshold,
		cfg.Scheduler.LowBalanceNotify,
		log,
	)

	// Планировщик напоминаний и поздравлений
	sched := scheduler.New(
		bookingRepository,
		userRepository,
		auditRepository,
		tgClient,
		metricsCollector,
		time.Duration(cfg.Scheduler.TickMinutes)*time.Minute,
		cfg.Scheduler.BirthdayHour,
		loc,
		cfg.Telegram.TrainerID,
		log,
	)

	// Обработчик обновлений Telegram-бота
	botHandler := bot.NewHandler(bookingSvc, userRepository, auditRepository, tgClient, log)

	// Инициализируем handlers
	getMe := getMeHandler.NewHandler(cfg.Telegram.TrainerUsername, log)
	updateProfile := updateProfileHandler.NewHandler(usersSvc, log)
	getSlotDays := getSlotDaysHandler.NewHandler(getAvailableSlotsUseCase, log)
	getSlots := getSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, loc, log)
	getMyBookings := getMyBookingsHandler.NewHandler(bookingSvc, loc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, loc, log)
	getScheduleSettings := getScheduleSettingsHandler.NewHandler(scheduleSvc, log)
	setDuration := setDurationHandler.NewHandler(scheduleSvc, log)
	getScheduleDay := getScheduleDayHandler.NewHandler(scheduleSvc, log)
	upsertScheduleDay := upsertScheduleDayHandler.NewHandler(scheduleSvc, log)
	copyScheduleDay := copyScheduleDayHandler.NewHandler(scheduleSvc, log)
	listClients := listClientsHandler.NewHandler(usersSvc, log)
	updateClient := updateClientHandler.NewHandler(usersSvc, log)
	trainerCreateBooking := trainerCreateBookingHandler.NewHandler(createBookingUseCase, loc, log)
	getBookingsRange := getBookingsRangeHandler.NewHandler(bookingSvc, loc, log)
	broadcast := broadcastHandler.NewHandler(usersSvc, log)
	telegramWebhook := telegramWebhookHandler.NewHandler(botHandler, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		metricsMW := middleware.NewMetrics(metricsCollector)
		r.Use(metricsMW.Handler)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	// Webhook Telegram (аутентифицируется самим Telegram, initData не несет)
	r.HandleFunc("/bot/webhook", telegramWebhook.Handle).Methods(http.MethodPost)

	// API для Telegram WebApp, все запросы несут initData
	authMW := middleware.NewAuth(
		cfg.Telegram.BotToken,
		time.Duration(cfg.Telegram.InitDataMaxAge)*time.Second,
		cfg.Telegram.TrainerID,
		userRepository,
		log,
	)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(authMW.Handler)

	// --- Клиентские маршруты ---
	api.HandleFunc("/me", getMe.Handle).Methods(http.MethodGet)
	api.HandleFunc("/me", updateProfile.Handle).Methods(http.MethodPut)
	api.HandleFunc("/slots/days", getSlotDays.Handle).Methods(http.MethodGet)
	api.HandleFunc("/slots", getSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/my", getMyBookings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPost)

	// --- Маршруты тренера ---
	trainer := api.PathPrefix("").Subrouter()
	trainer.Use(authMW.RequireTrainer)

	trainer.HandleFunc("/schedule/settings", getScheduleSettings.Handle).Methods(http.MethodGet)
	trainer.HandleFunc("/schedule/settings/duration", setDuration.Handle).Methods(http.MethodPut)
	trainer.HandleFunc("/schedule/days/{day}", getScheduleDay.Handle).Methods(http.MethodGet)
	trainer.HandleFunc("/schedule/days/{day}", upsertScheduleDay.Handle).Methods(http.MethodPut)
	trainer.HandleFunc("/schedule/days/{day}/copy", copyScheduleDay.Handle).Methods(http.MethodPost)
	trainer.HandleFunc("/clients", listClients.Handle).Methods(http.MethodGet)
	trainer.HandleFunc("/clients/{clientId}", updateClient.Handle).Methods(http.MethodPatch)
	trainer.HandleFunc("/trainer/bookings", trainerCreateBooking.Handle).Methods(http.MethodPost)
	trainer.HandleFunc("/trainer/bookings", getBookingsRange.Handle).Methods(http.MethodGet)
	trainer.HandleFunc("/broadcast", broadcast.Handle).Methods(http.MethodPost)

	// Запускаем планировщик
	schedCtx, stopScheduler := context.WithCancel(context.Background())
	go sched.Run(schedCtx)

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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	stopScheduler()
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
