package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"smarthub/config"
	"smarthub/cron"
	"smarthub/database"
	"smarthub/database/repository"
	"smarthub/database/repository/memory"
	"smarthub/database/seed"
	"smarthub/handlers"
	"smarthub/middleware"
	"smarthub/routes"
	"smarthub/services/booking"
	"smarthub/services/complaint"
	"smarthub/services/notification"
	"smarthub/services/payment"
	"smarthub/services/provider"
	"smarthub/services/review"
	"smarthub/services/tasks"
	"smarthub/services/user"
	"smarthub/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer func() { _ = logger.Sync() }()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := config.AppConfig.Validate(); err != nil {
		logger.Fatal("main: invalid configuration", zap.Error(err))
	}
	utils.SetJWTSecret(config.AppConfig.JWTSecret)
	if config.AppConfig.JWTSecret == "" {
		logger.Warn("JWT_SECRET is empty; authenticated endpoints will reject every request")
	}

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	// Storage.
	checks := map[string]utils.HealthCheck{}
	var set *repository.Set
	switch config.AppConfig.StoreDriver {
	case "memory":
		logger.Warn("Using in-memory store; data is lost on restart")
		store := memory.New()
		set = store.Set()
		checks["store"] = store.Ping
	default:
		if err := database.InitDB(); err != nil {
			logger.Fatal("main: failed to initialize database", zap.Error(err))
		}
		set = repository.NewMongoSet()
		checks["mongo"] = func(ctx context.Context) error { return database.MongoClient.Ping(ctx, nil) }
	}
	if config.AppConfig.SeedDemoData {
		if err := seed.Demo(rootCtx, set, logger); err != nil {
			logger.Fatal("main: failed to seed demo data", zap.Error(err))
		}
	}

	// Redis cache and task queue are optional.
	if err := utils.InitCache(); err != nil {
		logger.Fatal("main: failed to initialize cache", zap.Error(err))
	}
	var (
		unreadCache notification.UnreadCache
		queue       *tasks.Queue
		asynqClient *asynq.Client
	)
	if cache := utils.GetCacheClient(); cache != nil {
		unreadCache = notification.NewRedisUnreadCache(cache, config.AppConfig.UnreadCacheTTL, logger)
		checks["redis"] = func(ctx context.Context) error { return cache.Ping(ctx).Err() }

		asynqClient = asynq.NewClient(cron.RedisOpt())
		queue = tasks.NewQueue(asynqClient, logger)
	} else {
		logger.Info("REDIS_ADDR not set; unread cache, push delivery and reminders are disabled")
	}

	if err := utils.FirebaseInit(rootCtx); err != nil {
		logger.Fatal("main: failed to initialize firebase", zap.Error(err))
	}
	stripe.Key = config.AppConfig.StripeKey

	// Services.
	notificationService := &notification.DefaultNotificationService{
		Repo:      set.Notifications,
		Users:     set.Users,
		Providers: set.Providers,
		Cache:     unreadCache,
		Logger:    logger.Named("notification"),
	}
	bookingService := &booking.DefaultBookingService{
		Bookings:      set.Bookings,
		Users:         set.Users,
		Providers:     set.Providers,
		Notifications: notificationService,
		Tx:            set.Tx,
		Policy: booking.Policy{
			AllowCancelAccepted: config.AppConfig.BookingAllowCancelAccepted,
			Location:            config.BookingLocation(),
			ReminderLead:        config.AppConfig.ReminderLead,
		},
		Logger: logger.Named("booking"),
	}
	if queue != nil {
		notificationService.Dispatcher = queue
		bookingService.Reminders = queue
	}
	providerService := provider.NewDefaultProviderService(set.Providers, logger.Named("provider"))
	userService := &user.DefaultUserService{Repo: set.Users}
	reviewService := &review.DefaultReviewService{Reviews: set.Reviews, Bookings: set.Bookings, Logger: logger.Named("review")}
	complaintService := &complaint.DefaultComplaintService{Complaints: set.Complaints, Providers: set.Providers, Logger: logger.Named("complaint")}
	paymentService := &payment.DefaultPaymentService{
		Bookings: set.Bookings,
		Currency: config.AppConfig.PaymentCurrency,
		Logger:   logger.Named("payment"),
	}
	if config.AppConfig.StripeKey != "" {
		paymentService.Charger = payment.NewStripeCharger()
	}

	// Background worker.
	var worker *cron.Worker
	if queue != nil {
		pusher := &notification.Pusher{Users: set.Users, Providers: set.Providers, Logger: logger.Named("push")}
		if utils.FCMClient != nil {
			pusher.Sender = utils.FCMClient
		}
		worker = cron.NewWorker(cron.RedisOpt(), pusher, bookingService, logger.Named("worker"))
		if err := worker.Start(); err != nil {
			logger.Fatal("main: failed to start worker", zap.Error(err))
		}
	}

	utils.StartHealthMonitor(rootCtx, 30*time.Second, checks)

	// Create the Gin router.
	router := gin.New()
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger.Named("http")))
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	handlerBundle := &handlers.HandlerBundle{
		Booking:      handlers.NewBookingHandler(bookingService),
		Notification: handlers.NewNotificationHandler(notificationService),
		Provider:     handlers.NewProviderHandler(providerService, reviewService),
		Feedback: &handlers.FeedbackHandler{
			Reviews:    reviewService,
			Complaints: complaintService,
			Payments:   paymentService,
		},
		Admin: &handlers.AdminHandler{
			UserService:      userService,
			ProviderService:  providerService,
			BookingService:   bookingService,
			ComplaintService: complaintService,
		},
	}
	routes.RegisterRoutes(router, handlerBundle, routes.Options{
		AllowOrigins:   config.AppConfig.CORSAllowOrigins,
		AdminTokenHash: config.AppConfig.AdminTokenHash,
	})

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              "0.0.0.0:" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	if worker != nil {
		worker.Shutdown()
	}
	if asynqClient != nil {
		_ = asynqClient.Close()
	}
	if err := database.CloseDB(ctx); err != nil {
		logger.Warn("main: failed to close database", zap.Error(err))
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
