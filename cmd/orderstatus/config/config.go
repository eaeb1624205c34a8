package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"go-artstore/internal/orderstatus"
	"go-artstore/internal/orderstatus/carrier"
	"go-artstore/internal/orderstatus/data/database"
	"go-artstore/internal/orderstatus/service"

	"github.com/joho/godotenv"
)

const (
	serverAddressFlag         = "a"
	serverAddressEnv          = "RUN_ADDRESS"
	serverAddressDefault      = "localhost:8080"
	carrierAddressFlag        = "c"
	carrierAddressEnv         = "CARRIER_API_ADDRESS"
	carrierAddressDefault     = "http://localhost:8081"
	carrierTimeoutFlag        = "t"
	carrierTimeoutEnv         = "CARRIER_TIMEOUT"
	carrierTimeoutDefault     = 5 * time.Second
	dbConnectionStringFlag    = "d"
	dbConnectionStringEnv     = "DATABASE_URI"
	dbConnectionStringDefault = ""
	jwtSecretFlag             = "s"
	jwtSecretEnv              = "JWT_SECRET"
	jwtSecretDefault          = ""
	corsOriginsFlag           = "o"
	corsOriginsEnv            = "CORS_ORIGINS"
	corsOriginsDefault        = "http://localhost:3000"
	logLevelFlag              = "l"
	logLevelEnv               = "LOG_LEVEL"
	logLevelDefault           = "info"
	logOutputFlag             = "g"
	logOutputEnv              = "LOG_OUTPUT"
	logOutputDefault          = "stderr"
	dotEnvFile                = ".env"
	shutdownTimeout           = 5 * time.Second
	jwtAlgorithm              = "HS256"
)

var (
	ErrNoDatabase  = errors.New("database connection string is required")
	ErrNoJWTSecret = errors.New("jwt secret is required")
)

type Config struct {
	Server          orderstatus.Config
	Carrier         carrier.Config
	Orders          service.Config
	JWTConfig       JWTConfig
	DB              database.Config
	LogLevel        string
	LogOutputs      []string
	ShutdownTimeout time.Duration
}

type JWTConfig struct {
	Algorithm string
	Secret    string
}

// Load reads flags from the command line; environment variables (optionally
// seeded from a .env file) take precedence over flags.
func Load() (*Config, error) {
	if err := godotenv.Load(dotEnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", dotEnvFile, err)
	}
	return load(os.Args[0], os.Args[1:], os.LookupEnv)
}

func load(name string, args []string, lookupEnv func(string) (string, bool)) (*Config, error) {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)

	serverAddress := flags.String(serverAddressFlag, serverAddressDefault, "Server address host:port")
	carrierAddress := flags.String(carrierAddressFlag, carrierAddressDefault, "Carrier tracking API base URL")
	carrierTimeout := flags.Duration(carrierTimeoutFlag, carrierTimeoutDefault, "Carrier request timeout")
	dbConnectionString := flags.String(dbConnectionStringFlag, dbConnectionStringDefault, "PostgreSQL connection string")
	jwtSecret := flags.String(jwtSecretFlag, jwtSecretDefault, "Secret used to verify customer tokens")
	corsOrigins := flags.String(corsOriginsFlag, corsOriginsDefault, "Comma separated storefront origins")
	logLevel := flags.String(logLevelFlag, logLevelDefault, "Log level")
	logOutput := flags.String(logOutputFlag, logOutputDefault, "Comma separated log output paths")

	if err := flags.Parse(args); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}

	if valStr, ok := lookupEnv(serverAddressEnv); ok {
		*serverAddress = valStr
	}
	if valStr, ok := lookupEnv(carrierAddressEnv); ok {
		*carrierAddress = valStr
	}
	if valStr, ok := lookupEnv(carrierTimeoutEnv); ok {
		d, err := time.ParseDuration(valStr)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", carrierTimeoutEnv, err)
		}
		*carrierTimeout = d
	}
	if valStr, ok := lookupEnv(dbConnectionStringEnv); ok {
		*dbConnectionString = valStr
	}
	if valStr, ok := lookupEnv(jwtSecretEnv); ok {
		*jwtSecret = valStr
	}
	if valStr, ok := lookupEnv(corsOriginsEnv); ok {
		*corsOrigins = valStr
	}
	if valStr, ok := lookupEnv(logLevelEnv); ok {
		*logLevel = valStr
	}
	if valStr, ok := lookupEnv(logOutputEnv); ok {
		*logOutput = valStr
	}

	if *dbConnectionString == "" {
		return nil, ErrNoDatabase
	}
	if *jwtSecret == "" {
		return nil, ErrNoJWTSecret
	}

	return &Config{
		Server: orderstatus.Config{
			ServerAddress:   *serverAddress,
			ShutdownTimeout: shutdownTimeout,
			AllowedOrigins:  splitList(*corsOrigins),
		},
		Carrier: carrier.Config{
			ServerAddress: *carrierAddress,
		},
		Orders: service.Config{
			TrackingTimeout: *carrierTimeout,
		},
		JWTConfig: JWTConfig{
			Algorithm: jwtAlgorithm,
			Secret:    *jwtSecret,
		},
		DB: database.Config{
			ConnectionString: *dbConnectionString,
			RetryAttemptDelays: []time.Duration{
				time.Second,
				3 * time.Second,
				5 * time.Second,
			},
		},
		LogLevel:        *logLevel,
		LogOutputs:      splitList(*logOutput),
		ShutdownTimeout: shutdownTimeout,
	}, nil
}

func splitList(value string) []string {
	res := make([]string, 0)
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			res = append(res, item)
		}
	}
	return res
}
