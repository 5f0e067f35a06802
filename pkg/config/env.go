package config

const (
	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvStudioTimezone = "STUDIO_TIMEZONE"
	EnvStudioLocation = "STUDIO_LOCATION"
	EnvStudioRegion   = "STUDIO_REGION"
	EnvCurrencySymbol = "CURRENCY_SYMBOL"

	EnvStartOfDay          = "START_OF_DAY"
	EnvEndOfDay            = "END_OF_DAY"
	EnvSlotInterval        = "SLOT_INTERVAL"
	EnvWorkingDays         = "WORKING_DAYS"
	EnvAvailabilityTimeout = "AVAILABILITY_TIMEOUT"
	EnvMonthShiftPolicy    = "MONTH_SHIFT_POLICY"

	EnvSessionStore = "SESSION_STORE"
	EnvSessionTTL   = "SESSION_TTL"

	EnvRedisAddr     = "REDIS_ADDR"
	EnvRedisPassword = "REDIS_PASSWORD"
	EnvRedisDB       = "REDIS_DB"

	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvConfirmationArchiveEnabled = "CONFIRMATION_ARCHIVE_ENABLED"
	EnvConfirmationEventsEnabled  = "CONFIRMATION_EVENTS_ENABLED"
	EnvConfirmationTopic          = "CONFIRMATION_TOPIC"
)
