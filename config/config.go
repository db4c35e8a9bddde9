package config

import (
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"go.yaml.in/yaml/v4"
)

type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Storage  StorageConfig  `yaml:"storage"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	RabbitMQ RabbitMQConfig `yaml:"rabbitmq"`
	Redis    RedisConfig    `yaml:"redis"`
	Satwa    SatwaConfig    `yaml:"satwa"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	DBName   string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

func (c DatabaseConfig) ConnString() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Username, c.Password, c.Host, c.Port, c.DBName, sslMode)
}

// StorageConfig описывает S3-совместимое хранилище документов (MinIO).
type StorageConfig struct {
	Endpoint      string `yaml:"endpoint"`
	Port          int    `yaml:"port"`
	AccessKey     string `yaml:"access_key"`
	SecretKey     string `yaml:"secret_key"`
	Bucket        string `yaml:"bucket"`
	Region        string `yaml:"region"`
	UseSSL        bool   `yaml:"use_ssl"`
	PublicBaseURL string `yaml:"public_base_url"`
}

// Addr склеивает endpoint и порт, если порт задан отдельно.
func (c StorageConfig) Addr() string {
	if c.Port == 0 {
		return c.Endpoint
	}
	if _, _, err := net.SplitHostPort(c.Endpoint); err == nil {
		return c.Endpoint
	}
	return net.JoinHostPort(c.Endpoint, strconv.Itoa(c.Port))
}

type KafkaConfig struct {
	Host                string `yaml:"host"`
	Port                int    `yaml:"port"`
	SatwaEventTopicName string `yaml:"satwa_event_topic_name"`
}

type RabbitMQConfig struct {
	URL string `yaml:"url"`
}

type RedisConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Addr пустой, если Redis не настроен.
func (c RedisConfig) Addr() string {
	if c.Host == "" {
		return ""
	}
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type SatwaConfig struct {
	HTTPAddr    string `yaml:"http_addr"`
	SwaggerPath string `yaml:"swagger_path"`

	JWTSecret       string `yaml:"jwt_secret"`
	TokenTTLSeconds int    `yaml:"token_ttl_seconds"`

	LoginRateLimit         int `yaml:"login_rate_limit"`
	LoginRateWindowSeconds int `yaml:"login_rate_window_seconds"`

	// Только за своим reverse proxy: иначе X-Forwarded-For задаёт сам клиент.
	TrustProxyHeaders bool `yaml:"trust_proxy_headers"`

	// EventsDriver: "kafka" | "rabbitmq" | "none"
	EventsDriver string `yaml:"events_driver"`

	LogFile  string `yaml:"log_file"`
	LogLevel string `yaml:"log_level"`
}

func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal YAML: %w", err)
	}

	return &config, nil
}

// LoadDotEnv подхватывает .env, если он есть; отсутствие файла не ошибка.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	var existing []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("failed to load env file: %w", err)
	}
	return nil
}

// ApplyEnv перекрывает значения из файла переменными окружения.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	num := func(key string, dst *int) error {
		v, ok := lookup(key)
		if !ok || v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
		*dst = n
		return nil
	}

	str("DB_HOST", &c.Database.Host)
	if err := num("DB_PORT", &c.Database.Port); err != nil {
		return err
	}
	str("DB_NAME", &c.Database.DBName)
	str("DB_USER", &c.Database.Username)
	str("DB_PASSWORD", &c.Database.Password)

	str("MINIO_ENDPOINT", &c.Storage.Endpoint)
	if err := num("MINIO_PORT", &c.Storage.Port); err != nil {
		return err
	}
	str("MINIO_ACCESS_KEY", &c.Storage.AccessKey)
	str("MINIO_SECRET_KEY", &c.Storage.SecretKey)
	str("MINIO_BUCKET", &c.Storage.Bucket)
	str("MINIO_PUBLIC_URL", &c.Storage.PublicBaseURL)
	if v, ok := lookup("MINIO_USE_SSL"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid MINIO_USE_SSL: %w", err)
		}
		c.Storage.UseSSL = b
	}

	if v, ok := lookup("REDIS_ADDR"); ok && v != "" {
		host, port, err := net.SplitHostPort(v)
		if err != nil {
			return fmt.Errorf("invalid REDIS_ADDR: %w", err)
		}
		p, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid REDIS_ADDR port: %w", err)
		}
		c.Redis.Host, c.Redis.Port = host, p
	}

	str("RABBITMQ_URL", &c.RabbitMQ.URL)
	str("JWT_SECRET", &c.Satwa.JWTSecret)
	str("HTTP_ADDR", &c.Satwa.HTTPAddr)
	str("EVENTS_DRIVER", &c.Satwa.EventsDriver)
	if v, ok := lookup("TRUST_PROXY_HEADERS"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid TRUST_PROXY_HEADERS: %w", err)
		}
		c.Satwa.TrustProxyHeaders = b
	}
	return nil
}
