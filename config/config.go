package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

// Config 结构体用于存储应用程序的配置信息
type Config struct {
	DBHost           string
	DBPort           string
	DBUser           string
	DBPassword       string
	DBName           string
	AutoMigrate      bool
	ServerPort       string
	JWTSecret        string
	JWTExpiration    time.Duration
	AdminSecret      string
	LogLevel         string
	SMTPHost         string
	SMTPPort         int
	SMTPUsername     string
	SMTPPassword     string
	FrontendURL      string
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	ProductCacheTTL  time.Duration
	StorageDriver    string // local, s3, gcs
	LocalStoragePath string
	S3Region         string
	S3Bucket         string
	GCSBucketName    string
	GCSCredentials   string
	Debug            bool // 是否开启调试模式
}

// AppConfig 是全局配置变量
var AppConfig Config

// Init 函数用于初始化配置
func Init() {
	// 加载 .env 文件
	err := godotenv.Load()
	if err != nil {
		log.Printf("警告：无法加载 .env 文件: %v", err)
	}

	AppConfig = Load()

	validateConfig()

	if AppConfig.Debug {
		gin.SetMode(gin.DebugMode)
		log.Println("应用程序运行在调试模式")
	} else {
		gin.SetMode(gin.ReleaseMode)
		log.Println("应用程序运行在生产模式")
	}

	log.Printf("配置加载完成。数据库：%s:%s，存储：%s", AppConfig.DBHost, AppConfig.DBPort, AppConfig.StorageDriver)
}

// Load 从环境变量中读取配置，不做校验
func Load() Config {
	return Config{
		DBHost:           getEnv("DB_HOST", ""),
		DBPort:           getEnv("DB_PORT", "3306"),
		DBUser:           getEnv("DB_USER", ""),
		DBPassword:       getEnv("DB_PASSWORD", ""),
		DBName:           getEnv("DB_NAME", ""),
		AutoMigrate:      getEnvAsBool("AUTO_MIGRATE", false),
		ServerPort:       getEnv("SERVER_PORT", "8080"),
		JWTSecret:        getEnv("JWT_SECRET", ""),
		JWTExpiration:    getEnvAsDuration("JWT_EXPIRATION", 24*time.Hour),
		AdminSecret:      getEnv("ADMIN_SECRET", ""),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		SMTPHost:         getEnv("SMTP_HOST", ""),
		SMTPPort:         getEnvAsInt("SMTP_PORT", 465),
		SMTPUsername:     getEnv("SMTP_USERNAME", ""),
		SMTPPassword:     getEnv("SMTP_PASSWORD", ""),
		FrontendURL:      getEnv("FRONTEND_URL", "http://localhost:5173"),
		RedisAddr:        getEnv("REDIS_ADDR", ""),
		RedisPassword:    getEnv("REDIS_PASSWORD", ""),
		RedisDB:          getEnvAsInt("REDIS_DB", 0),
		ProductCacheTTL:  getEnvAsDuration("PRODUCT_CACHE_TTL", 10*time.Minute),
		StorageDriver:    getEnv("STORAGE_DRIVER", "local"),
		LocalStoragePath: getEnv("LOCAL_STORAGE_PATH", "./uploads"),
		S3Region:         getEnv("S3_REGION", "us-west-2"),
		S3Bucket:         getEnv("S3_BUCKET", ""),
		GCSBucketName:    getEnv("GCS_BUCKET_NAME", ""),
		GCSCredentials:   getEnv("GCS_CREDENTIALS_FILE", ""),
		Debug:            getEnvAsBool("DEBUG", false),
	}
}

// SMTPEnabled 邮件通知是否可用
func (c Config) SMTPEnabled() bool {
	return c.SMTPHost != "" && c.SMTPUsername != "" && c.SMTPPassword != ""
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultVal int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	valStr := getEnv(key, "")
	if val, err := strconv.ParseBool(valStr); err == nil {
		return val
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	valStr := getEnv(key, "")
	if val, err := time.ParseDuration(valStr); err == nil {
		return val
	}
	return defaultVal
}

func validateConfig() {
	if AppConfig.DBHost == "" || AppConfig.DBUser == "" || AppConfig.DBName == "" {
		log.Fatal("错误：数据库配置不完整")
	}
	if AppConfig.JWTSecret == "" {
		log.Fatal("错误：JWT密钥未设置")
	}
	if AppConfig.AdminSecret == "" {
		log.Println("警告：ADMIN_SECRET 未设置，商品管理接口将全部拒绝")
	}
	switch AppConfig.StorageDriver {
	case "local", "s3", "gcs":
	default:
		log.Fatalf("错误：未知的存储驱动 %q", AppConfig.StorageDriver)
	}
	if !AppConfig.SMTPEnabled() {
		log.Println("警告：SMTP配置不完整，邮件通知已禁用")
	}
}
