package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"lashstudio/pkg/client"
	"lashstudio/pkg/locale"
	"lashstudio/pkg/logger"

	"github.com/joho/godotenv"
)

var (
	clockRegex      = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)
	mongoURIRegex   = regexp.MustCompile(`^mongodb(\+srv)?://`)
	credentialRegex = regexp.MustCompile(`(mongodb(\+srv)?://)[^:]+:[^@]+@`)
)

type Config struct {
	Port     string
	LogLevel string

	RateLimitRequests int
	RateLimitWindow   time.Duration

	RequestTimeout time.Duration
	IdempotencyTTL time.Duration
	MaxRequestSize int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	StudioTimezone string
	StudioLocation string
	StudioRegion   string
	CurrencySymbol string
	Location       *time.Location

	StartOfDay          string
	EndOfDay            string
	SlotInterval        time.Duration
	WorkingDays         []string
	AvailabilityTimeout time.Duration
	MonthShiftPolicy    string

	SessionStore string
	SessionTTL   time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	MongoURI          string
	MongoDatabaseName string
	MongoConnTimeout  time.Duration

	ConfirmationArchiveEnabled bool
	ConfirmationEventsEnabled  bool
	ConfirmationTopic          string

	Log    *logger.Logger
	Client *client.Client
}

// Load reads .env (when present) and the process environment, validates the
// result and exits on invalid configuration.
func Load(serviceName string) *Config {
	_ = godotenv.Load()

	cfg := FromEnv()
	cfg.Log = logger.New(logger.Config{
		Level:     cfg.LogLevel,
		Format:    logger.JSON,
		AddSource: true,
		Service:   serviceName,
	})
	cfg.Client = client.NewClient()

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

// FromEnv builds a Config from the environment without validating it.
func FromEnv() *Config {
	cfg := &Config{
		Port:     getEnvStr(EnvPort, DefaultPort),
		LogLevel: getEnvStr(EnvLogLevel, DefaultLogLevel),

		RateLimitRequests: getEnvNum(EnvRateLimitRequests, DefaultRateLimitRequests),
		RateLimitWindow:   getEnvDuration(EnvRateLimitWindow, DefaultRateLimitWindow),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		IdempotencyTTL: getEnvDuration(EnvIdempotencyTTL, DefaultIdempotencyTTL),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		StudioTimezone: getEnvStr(EnvStudioTimezone, DefaultStudioTimezone),
		StudioLocation: getEnvStr(EnvStudioLocation, DefaultStudioLocation),

		StartOfDay:          getEnvStr(EnvStartOfDay, DefaultStartOfDay),
		EndOfDay:            getEnvStr(EnvEndOfDay, DefaultEndOfDay),
		SlotInterval:        getEnvDuration(EnvSlotInterval, DefaultSlotInterval),
		WorkingDays:         getEnvList(EnvWorkingDays, DefaultWorkingDays),
		AvailabilityTimeout: getEnvDuration(EnvAvailabilityTimeout, DefaultAvailabilityTimeout),
		MonthShiftPolicy:    getEnvStr(EnvMonthShiftPolicy, DefaultMonthShiftPolicy),

		SessionStore: strings.ToLower(getEnvStr(EnvSessionStore, DefaultSessionStore)),
		SessionTTL:   getEnvDuration(EnvSessionTTL, DefaultSessionTTL),

		RedisAddr:     getEnvStr(EnvRedisAddr, DefaultRedisAddr),
		RedisPassword: getEnvStr(EnvRedisPassword, ""),
		RedisDB:       getEnvNum(EnvRedisDB, DefaultRedisDB),

		MongoURI:          getEnvStr(EnvMongoURI, DefaultMongoURI),
		MongoDatabaseName: getEnvStr(EnvMongoDatabaseName, DefaultMongoDatabaseName),
		MongoConnTimeout:  getEnvDuration(EnvMongoConnTimeout, DefaultMongoConnTimeout),

		ConfirmationArchiveEnabled: getEnvBool(EnvConfirmationArchiveEnabled, DefaultConfirmationArchiveEnabled),
		ConfirmationEventsEnabled:  getEnvBool(EnvConfirmationEventsEnabled, DefaultConfirmationEventsEnabled),
		ConfirmationTopic:          getEnvStr(EnvConfirmationTopic, DefaultConfirmationTopic),
	}

	// Region and currency follow the studio's timezone unless set.
	region := locale.RegionForTimezone(cfg.StudioTimezone, DefaultStudioRegion)
	cfg.StudioRegion = strings.ToUpper(getEnvStr(EnvStudioRegion, region))
	cfg.CurrencySymbol = getEnvStr(EnvCurrencySymbol, locale.CurrencyForRegion(cfg.StudioRegion, DefaultCurrencySymbol))

	if loc, err := time.LoadLocation(cfg.StudioTimezone); err == nil {
		cfg.Location = loc
	}
	return cfg
}

func (cfg *Config) SetMongo() {
	cfg.Client.SetMongo(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
}

func (cfg *Config) SetRedis() {
	cfg.Client.SetRedis(cfg.Log, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.MongoConnTimeout)
}

func (cfg *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}
	if !logger.IsValidLevel(cfg.LogLevel) {
		errors = append(errors, fmt.Sprintf("LogLevel must be one of debug, info, warn, error, got: %s", cfg.LogLevel))
	}

	if cfg.RateLimitRequests <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitRequests must be positive, got: %d", cfg.RateLimitRequests))
	}
	if cfg.MaxRequestSize <= 0 {
		errors = append(errors, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}

	durations := []struct {
		name  string
		value time.Duration
	}{
		{"RateLimitWindow", cfg.RateLimitWindow},
		{"RequestTimeout", cfg.RequestTimeout},
		{"IdempotencyTTL", cfg.IdempotencyTTL},
		{"ReadTimeout", cfg.ReadTimeout},
		{"WriteTimeout", cfg.WriteTimeout},
		{"IdleTimeout", cfg.IdleTimeout},
		{"ShutdownTimeout", cfg.ShutdownTimeout},
		{"AvailabilityTimeout", cfg.AvailabilityTimeout},
		{"SessionTTL", cfg.SessionTTL},
	}
	for _, d := range durations {
		if d.value <= 0 {
			errors = append(errors, fmt.Sprintf("%s must be positive, got: %s", d.name, d.value))
		}
	}

	if cfg.Location == nil {
		errors = append(errors, fmt.Sprintf("StudioTimezone must be a valid IANA zone name, got: %s", cfg.StudioTimezone))
	}
	if len(cfg.StudioRegion) != 2 {
		errors = append(errors, fmt.Sprintf("StudioRegion must be a two-letter region code, got: %s", cfg.StudioRegion))
	}

	startValid := clockRegex.MatchString(cfg.StartOfDay)
	endValid := clockRegex.MatchString(cfg.EndOfDay)
	if !startValid {
		errors = append(errors, fmt.Sprintf("StartOfDay must be in HH:MM format (00:00-23:59), got: %s", cfg.StartOfDay))
	}
	if !endValid {
		errors = append(errors, fmt.Sprintf("EndOfDay must be in HH:MM format (00:00-23:59), got: %s", cfg.EndOfDay))
	}
	if startValid && endValid && cfg.EndOfDay < cfg.StartOfDay {
		errors = append(errors, fmt.Sprintf("EndOfDay (%s) must not be before StartOfDay (%s)", cfg.EndOfDay, cfg.StartOfDay))
	}
	if cfg.SlotInterval < time.Minute {
		errors = append(errors, fmt.Sprintf("SlotInterval must be at least 1m, got: %s", cfg.SlotInterval))
	}
	if len(cfg.WorkingDays) == 0 {
		errors = append(errors, "WorkingDays cannot be empty")
	}
	for _, day := range cfg.WorkingDays {
		if !isWeekdayName(day) {
			errors = append(errors, fmt.Sprintf("WorkingDays contains an unknown weekday: %s", day))
		}
	}

	switch cfg.MonthShiftPolicy {
	case "calendar", "thirty_days":
	default:
		errors = append(errors, fmt.Sprintf("MonthShiftPolicy must be 'calendar' or 'thirty_days', got: %s", cfg.MonthShiftPolicy))
	}

	switch cfg.SessionStore {
	case SessionStoreMemory:
	case SessionStoreRedis:
		if cfg.RedisAddr == "" {
			errors = append(errors, "RedisAddr cannot be empty when SessionStore is redis")
		}
		if cfg.RedisDB < 0 {
			errors = append(errors, fmt.Sprintf("RedisDB cannot be negative, got: %d", cfg.RedisDB))
		}
	default:
		errors = append(errors, fmt.Sprintf("SessionStore must be 'memory' or 'redis', got: %s", cfg.SessionStore))
	}

	if cfg.ConfirmationArchiveEnabled {
		if cfg.MongoURI == "" {
			errors = append(errors, "MongoURI cannot be empty")
		} else if !mongoURIRegex.MatchString(cfg.MongoURI) {
			errors = append(errors, fmt.Sprintf("MongoURI must start with 'mongodb://' or 'mongodb+srv://', got: %s", redactMongoURI(cfg.MongoURI)))
		}
		if cfg.MongoDatabaseName == "" {
			errors = append(errors, "MongoDatabaseName cannot be empty")
		}
		if cfg.MongoConnTimeout <= 0 {
			errors = append(errors, fmt.Sprintf("MongoConnTimeout must be positive, got: %s", cfg.MongoConnTimeout))
		}
	}
	if cfg.ConfirmationEventsEnabled && cfg.ConfirmationTopic == "" {
		errors = append(errors, "ConfirmationTopic cannot be empty when confirmation events are enabled")
	}

	if len(errors) > 0 {
		errMsg := "Configuration validation failed:\n"
		for i, err := range errors {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, err)
		}
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"port", cfg.Port,
		"log_level", cfg.LogLevel,
		"rate_limit_requests", cfg.RateLimitRequests,
		"rate_limit_window", cfg.RateLimitWindow,
		"request_timeout", cfg.RequestTimeout,
		"idempotency_ttl", cfg.IdempotencyTTL,
		"max_request_size", cfg.MaxRequestSize,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
		"studio_timezone", cfg.StudioTimezone,
		"studio_location", cfg.StudioLocation,
		"studio_region", cfg.StudioRegion,
		"start_of_day", cfg.StartOfDay,
		"end_of_day", cfg.EndOfDay,
		"slot_interval", cfg.SlotInterval,
		"working_days", strings.Join(cfg.WorkingDays, ","),
		"availability_timeout", cfg.AvailabilityTimeout,
		"month_shift_policy", cfg.MonthShiftPolicy,
		"session_store", cfg.SessionStore,
		"session_ttl", cfg.SessionTTL,
		"redis_addr", cfg.RedisAddr,
		"redis_password_set", cfg.RedisPassword != "",
		"mongo_uri", redactMongoURI(cfg.MongoURI),
		"mongo_database", cfg.MongoDatabaseName,
		"confirmation_archive_enabled", cfg.ConfirmationArchiveEnabled,
		"confirmation_events_enabled", cfg.ConfirmationEventsEnabled,
		"confirmation_topic", cfg.ConfirmationTopic,
	)
}

func (cfg *Config) GracefulShutdown() {
	if cfg.Client != nil {
		cfg.Client.GracefulShutdown(cfg.Log)
	}
}

func redactMongoURI(uri string) string {
	return credentialRegex.ReplaceAllString(uri, "${1}***:***@")
}

func isWeekdayName(name string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	for d := time.Sunday; d <= time.Saturday; d++ {
		full := strings.ToLower(d.String())
		if name == full || name == full[:3] {
			return true
		}
	}
	return false
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return append([]string(nil), fallback...)
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
