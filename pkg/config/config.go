package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Store     StoreConfig
	NATS      NATSConfig // task/pomodoro events (optional)
	Redis     RedisConfig
	JWT       JWTConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Tasks     TaskConfig
	CORS      CORSConfig
	Log       LogConfig
}

type AppConfig struct {
	Name string
	Port string
	Env  string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN สำหรับ gorm postgres driver
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		d.Host, d.User, d.Password, d.DBName, d.Port, d.SSLMode)
}

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// StoreConfig เลือก storage ของ users/tasks
type StoreConfig struct {
	Driver string // postgres, memory
}

// RedisConfig สำหรับ cache dashboard stats; URL ว่าง = ปิด
type RedisConfig struct {
	URL      string // redis://localhost:6379
	Password string
	DB       int
	StatsTTL time.Duration
}

// NATSConfig; URL ว่าง = ไม่ publish event
type NATSConfig struct {
	URL string // nats://localhost:4222
}

type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

type AuthConfig struct {
	BcryptCost int
}

// RateLimitConfig จำกัดจำนวนครั้ง login ต่อ IP
type RateLimitConfig struct {
	LoginPerMinute int
	LoginBurst     int
}

const (
	OrderPolicyCount     = "count"
	OrderPolicyMonotonic = "monotonic"
)

type TaskConfig struct {
	OrderPolicy string // count, monotonic
}

type CORSConfig struct {
	Origins string // comma-separated, "*" = all
}

type LogConfig struct {
	Level      string // debug, info, warn, error
	Format     string // json, text
	Output     string // stdout, file, both
	FilePath   string // logs/app.log
	MaxSize    int    // MB
	MaxBackups int    // จำนวน backup files
	MaxAge     int    // วัน
	Compress   bool   // บีบอัด backup
}

func LoadConfig() (*Config, error) {
	// ไม่ error ถ้าไม่มี .env file (ใช้ environment variables แทน)
	_ = godotenv.Load()

	logMaxSize, _ := strconv.Atoi(getEnv("LOG_MAX_SIZE", "100"))
	logMaxBackups, _ := strconv.Atoi(getEnv("LOG_MAX_BACKUPS", "5"))
	logMaxAge, _ := strconv.Atoi(getEnv("LOG_MAX_AGE", "30"))
	logCompress := getEnv("LOG_COMPRESS", "true") == "true"

	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	statsTTL, err := time.ParseDuration(getEnv("REDIS_STATS_TTL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_STATS_TTL: %w", err)
	}

	jwtTTLHours, err := strconv.Atoi(getEnv("JWT_TTL_HOURS", "168")) // 7 วัน
	if err != nil || jwtTTLHours <= 0 {
		return nil, fmt.Errorf("invalid JWT_TTL_HOURS %q", os.Getenv("JWT_TTL_HOURS"))
	}

	bcryptCost, err := strconv.Atoi(getEnv("BCRYPT_COST", "10"))
	if err != nil || bcryptCost < 4 || bcryptCost > 31 {
		return nil, fmt.Errorf("invalid BCRYPT_COST %q", os.Getenv("BCRYPT_COST"))
	}

	loginPerMinute, _ := strconv.Atoi(getEnv("LOGIN_RATE_PER_MIN", "10"))
	loginBurst, _ := strconv.Atoi(getEnv("LOGIN_BURST", "5"))

	config := &Config{
		App: AppConfig{
			Name: getEnv("APP_NAME", "Study Tracker"),
			Port: getEnv("APP_PORT", "5000"),
			Env:  getEnv("APP_ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "study_tracker"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		Store: StoreConfig{
			Driver: strings.ToLower(getEnv("STORE_DRIVER", StoreDriverPostgres)),
		},
		NATS: NATSConfig{
			URL: getEnv("NATS_URL", ""),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
			StatsTTL: statsTTL,
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "your-secret-key"),
			TTL:    time.Duration(jwtTTLHours) * time.Hour,
		},
		Auth: AuthConfig{
			BcryptCost: bcryptCost,
		},
		RateLimit: RateLimitConfig{
			LoginPerMinute: loginPerMinute,
			LoginBurst:     loginBurst,
		},
		Tasks: TaskConfig{
			OrderPolicy: strings.ToLower(getEnv("TASK_ORDER_POLICY", OrderPolicyCount)),
		},
		CORS: CORSConfig{
			Origins: getEnv("CORS_ORIGINS", "*"),
		},
		Log: LogConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			Format:     getEnv("LOG_FORMAT", "json"),
			Output:     getEnv("LOG_OUTPUT", "stdout"),
			FilePath:   getEnv("LOG_FILE", "logs/app.log"),
			MaxSize:    logMaxSize,
			MaxBackups: logMaxBackups,
			MaxAge:     logMaxAge,
			Compress:   logCompress,
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate ตรวจค่าที่เป็น enum
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case StoreDriverPostgres, StoreDriverMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.Store.Driver)
	}
	switch c.Tasks.OrderPolicy {
	case OrderPolicyCount, OrderPolicyMonotonic:
	default:
		return fmt.Errorf("unknown TASK_ORDER_POLICY %q", c.Tasks.OrderPolicy)
	}
	if c.RateLimit.LoginPerMinute <= 0 || c.RateLimit.LoginBurst <= 0 {
		return fmt.Errorf("login rate limit must be positive")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// IsDevelopment ตรวจสอบว่าเป็น development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// IsProduction ตรวจสอบว่าเป็น production mode
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
