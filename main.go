package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eventbook/config"
	"eventbook/cron"
	"eventbook/database"
	bondRepo "eventbook/database/repository/bond"
	catalogRepo "eventbook/database/repository/catalog"
	eventRepo "eventbook/database/repository/event"
	offerRepo "eventbook/database/repository/offer"
	"eventbook/handlers"
	"eventbook/middleware"
	"eventbook/routes"
	"eventbook/services/availability"
	"eventbook/services/booking"
	"eventbook/services/notification"
	"eventbook/services/payment"
	"eventbook/services/pricing"
	"eventbook/services/tasks"
	"eventbook/services/timeline"
	"eventbook/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	database.InitDB()
	utils.InitCache()
	stripe.Key = config.AppConfig.StripeKey

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()
	utils.StartHealthMonitor(rootCtx, utils.GetCacheClient(), database.MongoClient, 15*time.Second)

	// repositories.
	events := eventRepo.NewMongoEventRepo()
	catalog := catalogRepo.NewMongoCatalogRepo()
	offers := offerRepo.NewMongoOfferRepo()
	bonds := bondRepo.NewMongoBondRepo()

	indexCtx, cancelIdx := context.WithTimeout(rootCtx, 30*time.Second)
	for name, ensure := range map[string]func(context.Context) error{
		"events":     events.EnsureIndexes,
		"packages":   catalog.EnsureIndexes,
		"offers":     offers.EnsureIndexes,
		"cash_bonds": bonds.EnsureIndexes,
	} {
		if err := ensure(indexCtx); err != nil {
			logger.Warn("main: failed to ensure indexes", zap.String("collection", name), zap.Error(err))
		}
	}
	cancelIdx()

	if n, err := events.CountMalformed(rootCtx); err != nil {
		logger.Warn("main: failed to count malformed events", zap.Error(err))
	} else if n > 0 {
		logger.Warn("main: events with missing or non-ISO dates are excluded from availability",
			zap.Int64("count", n))
	}

	// engine components.
	classifierOpts := config.AppConfig.AvailabilityOptions()
	classifier, err := availability.NewClassifier(classifierOpts, logger.Named("availability"))
	if err != nil {
		logger.Sugar().Fatalf("main: invalid availability settings: %v", err)
	}
	timelineOpts, err := config.AppConfig.TimelineOptions()
	if err != nil {
		logger.Sugar().Fatalf("main: invalid timeline settings: %v", err)
	}
	scheduler := timeline.NewScheduler(timelineOpts, logger.Named("timeline"))

	// reminders.
	queueClient := asynq.NewClient(cron.QueueRedisOpt())
	defer queueClient.Close()
	reminders := tasks.NewBalanceReminderScheduler(queueClient, time.Local, logger.Named("reminders"))

	notifier, err := notification.NewLogNotifier(logger.Named("notification"))
	if err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}
	worker := cron.InitReminderWorker(notifier, logger.Named("worker"))

	sessionTTL := time.Duration(config.AppConfig.SessionTTLMinutes) * time.Minute
	bookingService := &booking.DefaultBookingService{
		Events:         events,
		Catalog:        catalog,
		Offers:         offers,
		Bonds:          bonds,
		Sessions:       booking.NewRedisSessionStore(utils.GetCacheClient(), sessionTTL),
		Classifier:     classifier,
		Scheduler:      scheduler,
		Pricing:        pricing.NewTieredCalculator(),
		Gateway:        payment.NewStripeGateway(config.AppConfig.Currency, config.AppConfig.CurrencyMinorUnits, logger.Named("stripe")),
		Reminders:      reminders,
		BalanceDueDays: config.AppConfig.BalanceDueDays,
		Currency:       config.AppConfig.Currency,
		Logger:         logger.Named("booking"),
	}

	// Create the Gin router.
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	bookingHandler := handlers.NewBookingHandler(bookingService, logger.Named("http"))
	routes.RegisterRoutes(router, handlers.NewHandlerBundle(bookingHandler))

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	worker.Shutdown()
	stop()
	if err := database.CloseDB(ctx); err != nil {
		logger.Warn("main: failed to close MongoDB", zap.Error(err))
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
