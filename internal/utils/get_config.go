package utils

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	// Database configuration
	DBDriver   string `yaml:"DB_DRIVER"`
	DBFile     string `yaml:"DB_FILE"`
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`

	// Server configuration
	Host         string `yaml:"HOST"`
	Port         string `yaml:"PORT"`
	ImagesDir    string `yaml:"IMAGES_DIR"`
	LogFile      string `yaml:"LOG_FILE"`
	RateLimitMax string `yaml:"RATE_LIMIT_MAX"`

	// AWS S3 configuration, image mirroring is disabled when the bucket is empty
	AWSS3Bucket  string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region  string `yaml:"AWS_S3_REGION"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY"`
}

var config = defaultConfig()

func defaultConfig() Config {
	return Config{
		DBDriver:     "sqlite",
		DBFile:       "recipes.sqlite",
		Host:         "127.0.0.1",
		Port:         "8080",
		ImagesDir:    "./images",
		LogFile:      "./logs/app.log",
		RateLimitMax: "0",
	}
}

// LoadConfig reads .env and config.yaml, then lets environment variables
// override whatever the file set. Missing files are not an error.
func LoadConfig() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Error loading .env file: %s\n", err)
	}

	file, err := os.ReadFile("config.yaml")
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Error reading YAML file: %s\n", err)
		}
	} else if err := yaml.Unmarshal(file, &config); err != nil {
		log.Printf("Error parsing YAML file: %s\n", err)
	}

	for _, key := range configKeys {
		if value, ok := os.LookupEnv(key); ok && value != "" {
			*configField(&config, key) = value
		}
	}
}

var configKeys = []string{
	"DB_DRIVER", "DB_FILE", "DB_USER", "DB_NAME", "DB_PASSWORD", "DB_PORT", "DB_HOST",
	"HOST", "PORT", "IMAGES_DIR", "LOG_FILE", "RATE_LIMIT_MAX",
	"AWS_S3_BUCKET", "AWS_S3_REGION", "AWS_ACCESS_KEY", "AWS_SECRET_KEY",
}

func configField(c *Config, key string) *string {
	switch key {
	case "DB_DRIVER":
		return &c.DBDriver
	case "DB_FILE":
		return &c.DBFile
	case "DB_USER":
		return &c.DBUser
	case "DB_NAME":
		return &c.DBName
	case "DB_PASSWORD":
		return &c.DBPassword
	case "DB_PORT":
		return &c.DBPort
	case "DB_HOST":
		return &c.DBHost
	case "HOST":
		return &c.Host
	case "PORT":
		return &c.Port
	case "IMAGES_DIR":
		return &c.ImagesDir
	case "LOG_FILE":
		return &c.LogFile
	case "RATE_LIMIT_MAX":
		return &c.RateLimitMax
	case "AWS_S3_BUCKET":
		return &c.AWSS3Bucket
	case "AWS_S3_REGION":
		return &c.AWSS3Region
	case "AWS_ACCESS_KEY":
		return &c.AWSAccessKey
	case "AWS_SECRET_KEY":
		return &c.AWSSecretKey
	default:
		return nil
	}
}

func GetConfig(key string) string {
	field := configField(&config, key)
	if field == nil {
		return ""
	}
	return *field
}
