package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type ServerConfig struct {
	Address string `json:"address"`
}

type LogConfig struct {
	Level string `json:"level"` // trace|debug|info|warn|error
}

type SecurityConfig struct {
	MaxBodySize    int64    `json:"maxBodySize"` // bytes
	AllowedMethods []string `json:"allowedMethods"`
}

type CORSConfig struct {
	AllowAllOrigins  bool          `json:"allowAllOrigins"`
	AllowOrigins     []string      `json:"allowOrigins"`
	AllowMethods     []string      `json:"allowMethods"`
	AllowHeaders     []string      `json:"allowHeaders"`
	ExposeHeaders    []string      `json:"exposeHeaders"`
	AllowCredentials bool          `json:"allowCredentials"`
	MaxAge           time.Duration `json:"maxAge"`
	TrustedDomains   []string      `json:"trustedDomains"`
}

type JWTAuthConfig struct {
	Secret         string        `json:"secret"`
	ExpireDuration time.Duration `json:"expireDuration"`
	Issuer         string        `json:"issuer"`
	SigningMethod  string        `json:"signingMethod"`
}

type RateLimitConfig struct {
	Rate     int           `json:"rate"` // 0 disables the limiter
	Interval time.Duration `json:"interval"`
}

type MiddlewareConfig struct {
	Security  SecurityConfig  `json:"security"`
	JWT       JWTAuthConfig   `json:"jwt"`
	CORS      CORSConfig      `json:"cors"`
	RateLimit RateLimitConfig `json:"rateLimit"`
}

type DatabaseConfig struct {
	Driver       string        `json:"driver"` // mysql|postgres|sqlite
	Host         string        `json:"host"`
	Port         int           `json:"port"`
	Username     string        `json:"username"`
	Password     string        `json:"password"`
	DBName       string        `json:"dbname"`
	UseUnixSock  bool          `json:"useUnixSock"` // mysql only, Host is the socket path
	SSLMode      string        `json:"sslMode"`     // postgres only
	SQLitePath   string        `json:"sqlitePath"`
	MinPoolSize  int           `json:"minPoolSize"`
	MaxPoolSize  int           `json:"maxPoolSize"`
	LogLevel     string        `json:"logLevel"` // GORM logger level
	QueryTimeout time.Duration `json:"queryTimeout"`
	Seed         bool          `json:"seed"` // seed sample books on serve
}

type AuthConfig struct {
	BcryptCost int `json:"bcryptCost"`
}

type Config struct {
	Server     ServerConfig     `json:"server"`
	Log        LogConfig        `json:"log"`
	Database   DatabaseConfig   `json:"database"`
	Auth       AuthConfig       `json:"auth"`
	Middleware MiddlewareConfig `json:"middleware"`
	Env        string           `json:"env"`
}

var defaultConfig = Config{
	Server: ServerConfig{
		Address: ":5000",
	},
	Log: LogConfig{
		Level: "info",
	},
	Database: DatabaseConfig{
		Driver:       DriverMySQL,
		Host:         "localhost",
		Port:         3306,
		Username:     "root",
		Password:     "root",
		DBName:       "libreria",
		SSLMode:      "disable",
		SQLitePath:   "libreria.db",
		MinPoolSize:  5,
		MaxPoolSize:  50,
		LogLevel:     "warn",
		QueryTimeout: 5 * time.Second,
		Seed:         true,
	},
	Auth: AuthConfig{
		BcryptCost: bcrypt.DefaultCost,
	},
	Middleware: MiddlewareConfig{
		Security: SecurityConfig{
			MaxBodySize:    1 << 20, // 1MB
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		},
		JWT: JWTAuthConfig{
			Secret:         "dev-secret-change-me-in-production",
			ExpireDuration: 24 * time.Hour,
			Issuer:         "book-catalog",
			SigningMethod:  "HS256",
		},
		CORS: CORSConfig{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Content-Type", "Authorization", "X-Requested-With"},
			ExposeHeaders:    []string{"Content-Length", "X-Request-Id"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		},
		RateLimit: RateLimitConfig{
			Rate:     50,
			Interval: time.Second,
		},
	},
	Env: "development",
}

// Default returns a copy of the built-in defaults.
func Default() *Config {
	cfg := defaultConfig
	return &cfg
}

// IsProd reports whether the service runs in production.
func (c *Config) IsProd() bool {
	return c.Env == "production"
}

// Load builds the configuration. Precedence: env vars > .env.local > config file > defaults.
func Load() *Config {
	config := defaultConfig

	if configPath := getConfigPath(); configPath != "" {
		if err := loadFromFile(&config, configPath); err != nil {
			hlog.Warnf("Failed to load config file %s: %v", configPath, err)
		}
	}

	loadEnvFile()
	loadFromEnv(&config)

	return &config
}

func getConfigPath() string {
	if path := os.Getenv("APP_CONFIG"); path != "" {
		return path
	}

	searchPaths := []string{
		"./config.json",
		"../config.json",
		"/etc/book-catalog/config.json",
	}

	for _, path := range searchPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

func loadFromFile(config *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, config)
}

// loadEnvFile reads .env.local from the working directory or its parent.
// godotenv never overrides variables already present in the environment.
func loadEnvFile() {
	if err := godotenv.Load(".env.local"); err == nil {
		return
	}

	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	parent := filepath.Dir(cwd)
	if parent == "" || parent == cwd {
		return
	}

	_ = godotenv.Load(filepath.Join(parent, ".env.local"))
}

func loadFromEnv(config *Config) {
	if v := os.Getenv("SERVER_ADDR"); v != "" {
		config.Server.Address = v
	}

	if v := os.Getenv("APP_ENV"); v != "" {
		config.Env = v
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		config.Log.Level = strings.ToLower(v)
	}

	if v := os.Getenv("MAX_BODY_SIZE"); v != "" {
		if size, err := strconv.ParseInt(v, 10, 64); err == nil {
			config.Middleware.Security.MaxBodySize = size
		}
	}

	if v := os.Getenv("RATE_LIMIT"); v != "" {
		if rate, err := strconv.Atoi(v); err == nil {
			config.Middleware.RateLimit.Rate = rate
		}
	}

	if v := os.Getenv("CORS_ALLOW_ORIGINS"); v != "" {
		origins := splitEnvList(v)
		config.Middleware.CORS.AllowAllOrigins = len(origins) == 1 && origins[0] == "*"
		if !config.Middleware.CORS.AllowAllOrigins {
			config.Middleware.CORS.AllowOrigins = origins
		}
	}

	if v := os.Getenv("JWT_SECRET"); v != "" {
		config.Middleware.JWT.Secret = v
	}

	if v := os.Getenv("JWT_EXPIRATION"); v != "" {
		if duration, err := time.ParseDuration(v); err == nil {
			config.Middleware.JWT.ExpireDuration = duration
		} else {
			hlog.Warnf("Invalid JWT_EXPIRATION format: %v", err)
		}
	}

	if v := os.Getenv("JWT_ISSUER"); v != "" {
		config.Middleware.JWT.Issuer = v
	}

	if v := os.Getenv("JWT_ALGORITHM"); v != "" {
		algorithm := strings.ToLower(strings.ReplaceAll(v, " ", ""))

		validAlgorithms := map[string]bool{
			"hs256": true,
			"hs384": true,
			"hs512": true,
		}

		if validAlgorithms[algorithm] {
			config.Middleware.JWT.SigningMethod = strings.ToUpper(algorithm)
		} else {
			hlog.Warnf("Unsupported JWT algorithm: %s", v)
		}
	}

	if v := os.Getenv("BCRYPT_COST"); v != "" {
		if cost, err := strconv.Atoi(v); err == nil && cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			config.Auth.BcryptCost = cost
		} else {
			hlog.Warnf("Invalid BCRYPT_COST: %s", v)
		}
	}

	// database
	if v := os.Getenv("DB_DRIVER"); v != "" {
		config.Database.Driver = strings.ToLower(v)
	}

	if v := os.Getenv("DB_HOST"); v != "" {
		config.Database.Host = v
	}

	if v := os.Getenv("DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			config.Database.Port = port
		}
	}

	if v := os.Getenv("DB_USER"); v != "" {
		config.Database.Username = v
	}

	if v := os.Getenv("DB_PASSWORD"); v != "" {
		config.Database.Password = v
	}

	if v := os.Getenv("DB_NAME"); v != "" {
		config.Database.DBName = v
	}

	if v := os.Getenv("DB_SOCKET"); v != "" {
		config.Database.UseUnixSock = parseBool(v)
	}

	if v := os.Getenv("DB_SSLMODE"); v != "" {
		config.Database.SSLMode = v
	}

	if v := os.Getenv("DB_SQLITE_PATH"); v != "" {
		config.Database.SQLitePath = v
	}

	if v := os.Getenv("DB_MIN_POOL"); v != "" {
		if size, err := strconv.Atoi(v); err == nil {
			config.Database.MinPoolSize = size
		}
	}

	if v := os.Getenv("DB_MAX_POOL"); v != "" {
		if size, err := strconv.Atoi(v); err == nil {
			config.Database.MaxPoolSize = size
		}
	}

	if v := os.Getenv("DB_LOG_LEVEL"); v != "" {
		config.Database.LogLevel = strings.ToLower(v)
	}

	if v := os.Getenv("DB_QUERY_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			config.Database.QueryTimeout = d
		} else {
			hlog.Warnf("Invalid DB_QUERY_TIMEOUT format: %v", err)
		}
	}

	if v := os.Getenv("DB_SEED"); v != "" {
		config.Database.Seed = parseBool(v)
	}
}

// splitEnvList splits a comma separated value, dropping blanks.
func splitEnvList(value string) []string {
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseBool(value string) bool {
	value = strings.ToLower(value)
	return value == "true" || value == "1" || value == "yes"
}

// HlogLevel maps Log.Level onto hlog levels; unknown values mean info.
func (c *Config) HlogLevel() hlog.Level {
	switch c.Log.Level {
	case "trace":
		return hlog.LevelTrace
	case "debug":
		return hlog.LevelDebug
	case "warn":
		return hlog.LevelWarn
	case "error":
		return hlog.LevelError
	default:
		return hlog.LevelInfo
	}
}

// Dialector picks the GORM dialector for Database.Driver.
func (c *Config) Dialector() (gorm.Dialector, error) {
	db := c.Database
	switch db.Driver {
	case DriverMySQL, "":
		charsetParam := "charset=utf8mb4&parseTime=True&loc=Local"
		if db.UseUnixSock {
			return mysql.Open(fmt.Sprintf("%s:%s@unix(%s)/%s?%s",
				db.Username, db.Password, db.Host, db.DBName, charsetParam)), nil
		}
		return mysql.Open(fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
			db.Username, db.Password, db.Host, db.Port, db.DBName, charsetParam)), nil
	case DriverPostgres:
		return postgres.Open(fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
			db.Host, db.Port, db.Username, db.Password, db.DBName, db.SSLMode)), nil
	case DriverSQLite:
		return sqlite.Open(db.SQLitePath), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", db.Driver)
	}
}

// GormConfig returns the GORM settings derived from Database.LogLevel.
func (c *Config) GormConfig() *gorm.Config {
	gormConfig := &gorm.Config{}
	switch c.Database.LogLevel {
	case "silent":
		gormConfig.Logger = logger.Default.LogMode(logger.Silent)
	case "error":
		gormConfig.Logger = logger.Default.LogMode(logger.Error)
	case "warn":
		gormConfig.Logger = logger.Default.LogMode(logger.Warn)
	case "info":
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	}
	return gormConfig
}

func (c *Config) InitDB() (*gorm.DB, error) {
	dialector, err := c.Dialector()
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, c.GormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(c.Database.MinPoolSize)
	sqlDB.SetMaxOpenConns(c.Database.MaxPoolSize)

	return db, nil
}
