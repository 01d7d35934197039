package config

// Config 配置主体
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Mongo     MongoConfig     `mapstructure:"mongo"`
	Redis     RedisConfig     `mapstructure:"redis"`
	MinIO     MinIOConfig     `mapstructure:"minio"`
	Auth      AuthConfig      `mapstructure:"auth"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port       int    `mapstructure:"port"`
	APIVersion string `mapstructure:"api_version"`
}

// MongoConfig Mongo配置
type MongoConfig struct {
	URL      string `mapstructure:"url"`
	Database string `mapstructure:"database"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// MinIOConfig MinIO配置
type MinIOConfig struct {
	Endpoint   string `mapstructure:"endpoint"`
	AccessKey  string `mapstructure:"access_key"`
	SecretKey  string `mapstructure:"secret_key"`
	MainBucket string `mapstructure:"main_bucket"`
	UseSSL     bool   `mapstructure:"use_ssl"`
}

// AuthConfig JWT 密钥与有效期（秒）
type AuthConfig struct {
	Secret           string `mapstructure:"secret"`
	RefreshSecret    string `mapstructure:"refresh_secret"`
	AccessExpireSec  int    `mapstructure:"access_expire_sec"`
	RefreshExpireSec int    `mapstructure:"refresh_expire_sec"`
}

// RateLimitConfig 固定窗口限流
type RateLimitConfig struct {
	Enable      bool `mapstructure:"enable"`
	WindowSec   int  `mapstructure:"window_sec"`
	MaxRequests int  `mapstructure:"max_requests"`
}
