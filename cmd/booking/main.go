package main

import (
	"context"

	"lashstudio/internal/availability"
	"lashstudio/internal/calendar"
	"lashstudio/internal/catalog"
	"lashstudio/internal/confirmation"
	"lashstudio/internal/gallery"
	"lashstudio/internal/sessions/handler"
	"lashstudio/internal/sessions/repository"
	"lashstudio/internal/sessions/service"
	"lashstudio/internal/sessions/validator"
	"lashstudio/internal/wizard"
	"lashstudio/pkg/app"
	"lashstudio/pkg/config"
	"lashstudio/pkg/contracts"
	"lashstudio/pkg/kafka"
	kafka_config "lashstudio/pkg/kafka/config"
	kafka_middleware "lashstudio/pkg/kafka/middleware"
	"lashstudio/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const ServiceName = "booking"

func main() {
	cfg := config.Load(ServiceName)
	cfg.Log.Info("Starting booking service")

	serverApp := app.NewApplication(cfg)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	bookingMetrics := metrics.NewBookingMetrics(registry)

	cal := initCalendar(cfg)
	engine := service.Engine{
		Machine:    wizard.NewMachine(catalog.Default(), cal),
		Provider:   initSchedule(cfg),
		Dispatcher: initDispatcher(cfg, serverApp, bookingMetrics),
		Metrics:    bookingMetrics,
		Styles:     gallery.DefaultStyles(),
	}

	repo := initRepository(cfg, serverApp)
	sessionService := service.NewSessionService(repo, validator.NewEventValidator(), engine, cfg)
	studioService := service.NewStudioService(engine, cfg)

	serverApp.OnShutdown("clients", func(context.Context) error {
		cfg.GracefulShutdown()
		return nil
	})
	serverApp.SetApp(
		contracts.Handlers{
			handler.NewHealthHandler(sessionService, cfg.Log),
			handler.NewMetricsHandler(registry),
		},
		handler.NewSessionHandler(sessionService, cal, cfg.Log),
		handler.NewStudioHandler(studioService, cfg.Log),
	)
	serverApp.Run()
}

func initCalendar(cfg *config.Config) *calendar.Engine {
	policy, err := calendar.ParseShiftPolicy(cfg.MonthShiftPolicy)
	if err != nil {
		cfg.Log.Fatal("Invalid month shift policy", "error", err)
	}
	return calendar.NewEngine(
		calendar.WithLocation(cfg.Location),
		calendar.WithShiftPolicy(policy),
	)
}

func initSchedule(cfg *config.Config) availability.Provider {
	days, err := availability.ParseWeekdays(cfg.WorkingDays)
	if err != nil {
		cfg.Log.Fatal("Invalid working days", "error", err)
	}
	schedule, err := availability.NewDailySchedule(availability.ScheduleConfig{
		StartOfDay:  cfg.StartOfDay,
		EndOfDay:    cfg.EndOfDay,
		Interval:    cfg.SlotInterval,
		WorkingDays: days,
	})
	if err != nil {
		cfg.Log.Fatal("Invalid studio schedule", "error", err)
	}
	cfg.Log.Info("Studio schedule configured",
		"start_of_day", cfg.StartOfDay,
		"end_of_day", cfg.EndOfDay,
		"slot_interval", cfg.SlotInterval,
		"working_days", len(days),
	)
	return schedule
}

func initRepository(cfg *config.Config, serverApp *app.Application) repository.SessionRepository {
	switch cfg.SessionStore {
	case config.SessionStoreRedis:
		cfg.SetRedis()
		cfg.Log.Info("Using Redis session store", "addr", cfg.RedisAddr, "ttl", cfg.SessionTTL)
		return repository.NewRedisSessionRepository(cfg.Client.Redis, cfg.SessionTTL)
	default:
		repo := repository.NewMemorySessionRepository(cfg.SessionTTL)
		serverApp.OnShutdown("session-store", func(context.Context) error {
			repo.Stop()
			return nil
		})
		cfg.Log.Info("Using in-memory session store", "ttl", cfg.SessionTTL)
		return repo
	}
}

func initDispatcher(cfg *config.Config, serverApp *app.Application, m *metrics.BookingMetrics) *confirmation.Dispatcher {
	var sinks []confirmation.Sink

	if cfg.ConfirmationArchiveEnabled {
		cfg.SetMongo()
		db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
		sinks = append(sinks, confirmation.NewArchiveSink(confirmation.NewMongoRepository(db, cfg.MongoConnTimeout)))
		cfg.Log.Info("Confirmation archive enabled", "database", cfg.MongoDatabaseName, "collection", confirmation.CollectionName)
	}

	if cfg.ConfirmationEventsEnabled {
		kafkaCfg, err := kafka_config.Load()
		if err != nil {
			cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
		}
		kafkaCfg.LogConfiguration(cfg.Log)
		producer, err := kafka.NewProducer(kafkaCfg, cfg.ConfirmationTopic, cfg.Log)
		if err != nil {
			cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
		}
		if kafkaCfg.EnableMiddleware {
			producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))
		}
		serverApp.OnShutdown("kafka-producer", func(context.Context) error {
			return producer.Close()
		})
		sinks = append(sinks, confirmation.NewEventSink(producer))
		cfg.Log.Info("Confirmation events enabled", "topic", producer.Topic(), "brokers", kafkaCfg.Brokers)
	}

	return confirmation.NewDispatcher(
		confirmation.ReceiptConfig{
			Location:       cfg.StudioLocation,
			CurrencySymbol: cfg.CurrencySymbol,
		},
		sinks,
		confirmation.WithMetrics(m),
		confirmation.WithLogger(cfg.Log),
	)
}
