package config

import "time"

const (
	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultRateLimitRequests = 60
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 64 * 1024 // 64KB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultStudioTimezone = "Europe/London"
	DefaultStudioLocation = "Bristol, UK"
	DefaultStudioRegion   = "GB"
	DefaultCurrencySymbol = "£"

	DefaultStartOfDay          = "09:00"
	DefaultEndOfDay            = "17:00"
	DefaultSlotInterval        = 1 * time.Hour
	DefaultAvailabilityTimeout = 5 * time.Second
	DefaultMonthShiftPolicy    = "calendar"

	SessionStoreMemory  = "memory"
	SessionStoreRedis   = "redis"
	DefaultSessionStore = SessionStoreMemory
	DefaultSessionTTL   = 2 * time.Hour

	DefaultRedisAddr = "localhost:6379"
	DefaultRedisDB   = 0

	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "lashstudio"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultConfirmationArchiveEnabled = false
	DefaultConfirmationEventsEnabled  = false
	DefaultConfirmationTopic          = "booking.completed"
)

var DefaultWorkingDays = []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}
