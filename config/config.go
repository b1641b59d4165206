package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config 结构体用于存储客户端的配置信息
type Config struct {
	APIBaseURL         string
	SocketURL          string
	IdentityURL        string
	TokenPath          string
	LogLevel           string
	StorageBackend     string // local / s3 / gcs
	S3Region           string
	S3Bucket           string
	GCSProjectID       string
	GCSBucketName      string
	GCSCredentialsFile string
	LocalStoragePath   string
	AlertTTLSeconds    int
	DemoEmail          string
	DemoPassword       string
	Debug              bool // 是否开启调试模式
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

	// 从环境变量中读取配置
	AppConfig = Config{
		APIBaseURL:         getEnv("API_BASE_URL", "http://localhost:4000/api"),
		SocketURL:          getEnv("SOCKET_URL", "ws://localhost:4000"),
		IdentityURL:        getEnv("IDENTITY_URL", "http://localhost:4000/auth"),
		TokenPath:          getEnv("TOKEN_PATH", defaultTokenPath()),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		StorageBackend:     getEnv("STORAGE_BACKEND", "local"),
		S3Region:           getEnv("S3_REGION", "us-west-2"),
		S3Bucket:           getEnv("S3_BUCKET", "tuiter-images"),
		GCSProjectID:       getEnv("GCS_PROJECT_ID", ""),
		GCSBucketName:      getEnv("GCS_BUCKET_NAME", ""),
		GCSCredentialsFile: getEnv("GCS_CREDENTIALS_FILE", ""),
		LocalStoragePath:   getEnv("LOCAL_STORAGE_PATH", "./uploads"),
		AlertTTLSeconds:    getEnvAsInt("ALERT_TTL_SECONDS", 5),
		DemoEmail:          getEnv("TUITER_EMAIL", ""),
		DemoPassword:       getEnv("TUITER_PASSWORD", ""),
		Debug:              getEnvAsBool("DEBUG", false),
	}

	validateConfig()

	log.Printf("配置加载完成。API地址：%s", AppConfig.APIBaseURL)
}

func defaultTokenPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tuiter_token"
	}
	return filepath.Join(home, ".tuiter_token")
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

func validateConfig() {
	if AppConfig.APIBaseURL == "" || AppConfig.SocketURL == "" {
		log.Fatal("错误：API地址配置不完整")
	}
	if AppConfig.IdentityURL == "" {
		log.Fatal("错误：身份提供方地址未设置")
	}
	switch AppConfig.StorageBackend {
	case "local", "s3", "gcs":
	default:
		log.Fatalf("错误：未知的存储后端 %q", AppConfig.StorageBackend)
	}
}
