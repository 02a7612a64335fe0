package config

import (
	"fmt"
	"net/http"
	"os"

	"go.uber.org/zap"
)

// Config holds the project config values
type Config struct {
	StorePath            string
	BaseUrl              string
	Port                 string
	Env                  string
	JWTSecret            string
	AdminSecret          string
	EmployeeEmail        string
	EmployeePasswordHash string
}

// New sets up all config related services
func New() *Config {
	env := os.Getenv("ENV")

	//setup zap logger and replace default logger
	logger, err := setLogger(env)
	if err != nil {
		logger = zap.NewExample()
	}
	defer logger.Sync()
	_ = zap.ReplaceGlobals(logger)

	storePath := os.Getenv("STORE_PATH")
	if storePath == "" {
		storePath = "car.txt"
	}

	return &Config{
		StorePath:            storePath,
		BaseUrl:              os.Getenv("BASE_URL"),
		Port:                 os.Getenv("PORT"),
		Env:                  env,
		JWTSecret:            os.Getenv("JWT_SECRET"),
		AdminSecret:          os.Getenv("ADMIN_SECRET"),
		EmployeeEmail:        os.Getenv("EMPLOYEE_EMAIL"),
		EmployeePasswordHash: os.Getenv("EMPLOYEE_PASSWORD_HASH"),
	}
}

func setLogger(env string) (*zap.Logger, error) {
	switch env {
	case "development":
		return zap.NewDevelopment()
	case "production":
		return zap.NewProduction()
	default:
		return zap.NewExample(), nil
	}
}

// ErrorStatus is a useful function that will log, write http headers and body for a
// give message, status code and err
func ErrorStatus(message string, httpStatusCode int, w http.ResponseWriter, err error) {
	zap.S().With(err).Error(message)
	w.WriteHeader(httpStatusCode)
	w.Write([]byte(fmt.Sprintf(`{"response": "%s, %v"}`, message, err)))
}
