package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port    string
	BaseURL string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	JWTAccessSecret    string
	JWTRefreshSecret   string
	JWTAccessTTLHours  int
	JWTRefreshTTLHours int

	// ✅ Redis Config
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// ✅ Kafka Config
	KafkaBrokers       string
	KafkaDeliveryTopic string

	// ✅ SMTP Config
	SMTPHost      string
	SMTPPort      int
	SMTPUsername  string
	SMTPPassword  string
	SMTPFromName  string
	SMTPFromEmail string

	// ✅ WhatsApp Config (whatsmeow session store)
	WhatsAppDataDir string

	// ✅ Dispatch retry policy
	DispatchMaxAttempts int
	DispatchBaseDelay   time.Duration
	DispatchMultiplier  int
	ProviderTimeout     time.Duration

	// ✅ Storage paths
	TempPath   string // generated QR artifacts, served at /temp
	UploadPath string // uploaded invitation images, served at /uploads

	// ✅ Public confirmation form (two-stage protocol, stage 1 link target)
	FormBaseURL string

	// ✅ Initial admin account, seeded when admin_users is empty
	AdminCorreo   string
	AdminPassword string
}

// Load reads environment variables and returns a Config object
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file, using environment variables")
	}

	accessTTL, _ := strconv.Atoi(os.Getenv("JWT_ACCESS_TTL_HOURS"))
	refreshTTL, _ := strconv.Atoi(os.Getenv("JWT_REFRESH_TTL_HOURS"))
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	smtpPort, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))

	return &Config{
		Port:    getEnv("PORT", "8080"),
		BaseURL: getEnv("BASE_URL", "http://localhost:8080"),

		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),

		JWTAccessSecret:    os.Getenv("JWT_ACCESS_SECRET"),
		JWTRefreshSecret:   os.Getenv("JWT_REFRESH_SECRET"),
		JWTAccessTTLHours:  accessTTL,
		JWTRefreshTTLHours: refreshTTL,

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,

		KafkaBrokers:       os.Getenv("KAFKA_BROKERS"),
		KafkaDeliveryTopic: getEnv("KAFKA_DELIVERY_TOPIC", "invitaciones.envios"),

		SMTPHost:      os.Getenv("SMTP_HOST"),
		SMTPPort:      smtpPort,
		SMTPUsername:  os.Getenv("SMTP_USERNAME"),
		SMTPPassword:  os.Getenv("SMTP_PASSWORD"),
		SMTPFromName:  os.Getenv("SMTP_FROM_NAME"),
		SMTPFromEmail: os.Getenv("SMTP_FROM_EMAIL"),

		WhatsAppDataDir: getEnv("WHATSAPP_DATA_DIR", "./data/whatsapp"),

		DispatchMaxAttempts: getEnvInt("DISPATCH_MAX_ATTEMPTS", 3),
		DispatchBaseDelay:   time.Duration(getEnvInt("DISPATCH_BASE_DELAY_MS", 1000)) * time.Millisecond,
		DispatchMultiplier:  getEnvInt("DISPATCH_MULTIPLIER", 2),
		ProviderTimeout:     time.Duration(getEnvInt("PROVIDER_TIMEOUT_SECONDS", 15)) * time.Second,

		TempPath:   getEnv("TEMP_PATH", "./temp"),
		UploadPath: getEnv("UPLOAD_PATH", "./uploads"),

		FormBaseURL: getEnv("FORM_BASE_URL", "http://localhost:5173/confirmar"),

		AdminCorreo:   os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
