package configuration

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"flickr-embed/infrastructure/logger"

	"github.com/spf13/viper"
)

type Config struct {
	App         App         `json:"app"`
	Flickr      Flickr      `json:"flickr"`
	Embed       Embed       `json:"embed"`
	Cache       Cache       `json:"cache"`
	RedisClient RedisClient `json:"redisClient"`
	Database    Database    `json:"database"`
	Sentry      Sentry      `json:"sentry"`
}

type App struct {
	Port        int    `json:"port"`
	SecretKey   string `json:"secretKey"`
	TLSEnabled  bool   `json:"tlsEnabled"`
	TLSCertFile string `json:"tlsCertFile"`
	TLSKeyFile  string `json:"tlsKeyFile"`
	// AllowOrigins lists CORS origins; empty allows any origin.
	AllowOrigins []string `json:"allowOrigins"`
}

type Flickr struct {
	APIKey         string `json:"apiKey"`
	APISecret      string `json:"apiSecret"`
	Endpoint       string `json:"endpoint"`
	TimeoutSeconds int    `json:"timeoutSeconds"`
}

type Embed struct {
	Defaults  EmbedDefaults `json:"defaults"`
	Direction string        `json:"direction"`
}

type EmbedDefaults struct {
	Type     string `json:"type"`
	Location string `json:"location"`
	Size     string `json:"size"`
}

// Cache selects the metadata cache backend and its expiry policy.
// ExpiresAt (RFC3339) wins over TTLSeconds when both are set.
type Cache struct {
	Backend      string `json:"backend"`
	Namespace    string `json:"namespace"`
	TTLSeconds   int    `json:"ttlSeconds"`
	ExpiresAt    string `json:"expiresAt"`
	SingleFlight bool   `json:"singleFlight"`
}

type RedisClient struct {
	Host         string `json:"host"`
	Port         string `json:"port"`
	Password     string `json:"password"`
	DatabaseName string `json:"databaseName"`
	Username     string `json:"username"`
}

type Database struct {
	Psql  Db `json:"psql"`
	MySql Db `json:"mysql"`
	Mongo Db `json:"mongo"`
	Mssql Db `json:"mssql"`
}

type Db struct {
	Name     string `json:"name"`
	Host     string `json:"host"`
	Port     string `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
}

type Sentry struct {
	DSN         string `json:"dsn"`
	Environment string `json:"environment"`
}

const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendMSSQL    = "mssql"
	BackendMySQL    = "mysql"
	BackendMongo    = "mongo"
)

var C Config

func init() {
	LoadConfig()
	Normalize(&C)
}

func LoadConfig() {
	name := getConfig()
	viper.SetConfigName(name)
	viper.SetConfigType("json")
	viper.AddConfigPath(".")
	viper.AddConfigPath("../")
	viper.AddConfigPath("../../")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logger.GetLogger().Warn("Config file not found")
		} else {
			logger.GetLogger().WithField("error", err).Error("Error reading config file")
		}
	}

	logger.GetLogger().WithField("config", name).Info("Config set up successfully")
	if err := viper.Unmarshal(&C); err != nil {
		logger.GetLogger().WithField("error", err).Error("Viper unable to decode into struct")
	}
}

func getConfig() string {
	name := "config"
	env := os.Getenv("ENV")
	if env != "" {
		name = fmt.Sprintf("%s-%s", name, env)
	}
	return name
}

// Normalize applies environment overrides and defaults. It is exported so
// tests can run it against a hand-built Config.
func Normalize(c *Config) {
	initApp(c)
	initFlickr(c)
	initEmbed(c)
	initCache(c)
	initDatabase(c)
	c.Sentry.DSN = getConfigValue(c.Sentry.DSN, "SENTRY_DSN", "")
	c.Sentry.Environment = getConfigValue(c.Sentry.Environment, "ENV", "local")
}

func initApp(c *Config) {
	if v := os.Getenv("SECRET_KEY"); v != "" {
		c.App.SecretKey = v
	}
	// APP_PORT -> PORT -> config -> 10001
	if v := os.Getenv("APP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.App.Port = p
		}
	} else if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.App.Port = p
		}
	}
	if c.App.Port == 0 {
		c.App.Port = 10001
	}
	if v := os.Getenv("TLS_ENABLED"); v != "" {
		switch v {
		case "1", "true", "TRUE", "True":
			c.App.TLSEnabled = true
		case "0", "false", "FALSE", "False":
			c.App.TLSEnabled = false
		}
	}
	if c.App.TLSCertFile == "" {
		c.App.TLSCertFile = os.Getenv("TLS_CERT_FILE")
	}
	if c.App.TLSKeyFile == "" {
		c.App.TLSKeyFile = os.Getenv("TLS_KEY_FILE")
	}
	if v := os.Getenv("CORS_ALLOW_ORIGINS"); v != "" {
		c.App.AllowOrigins = nil
		for _, origin := range strings.Split(v, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				c.App.AllowOrigins = append(c.App.AllowOrigins, origin)
			}
		}
	}
	if c.App.SecretKey == "" {
		logger.GetLogger().Warn("App.SecretKey not set; /api routes will reject every token. Provide SECRET_KEY via environment.")
	}
}

func initCache(c *Config) {
	c.Cache.Backend = getConfigValue(c.Cache.Backend, "CACHE_BACKEND", BackendMemory)
	c.Cache.Namespace = getConfigValue(c.Cache.Namespace, "CACHE_NAMESPACE", "flickrapi")
	if v := os.Getenv("CACHE_TTL_SECONDS"); v != "" {
		if ttl, err := strconv.Atoi(v); err == nil {
			c.Cache.TTLSeconds = ttl
		}
	}
	if c.Cache.TTLSeconds <= 0 {
		c.Cache.TTLSeconds = 600
	}
	c.Cache.ExpiresAt = getConfigValue(c.Cache.ExpiresAt, "CACHE_EXPIRES_AT", "")

	c.RedisClient.Host = getConfigValue(c.RedisClient.Host, "REDIS_HOST", "localhost")
	c.RedisClient.Port = getConfigValue(c.RedisClient.Port, "REDIS_PORT", "6379")
	c.RedisClient.Username = getConfigValue(c.RedisClient.Username, "REDIS_USERNAME", "")
	c.RedisClient.Password = getConfigValue(c.RedisClient.Password, "REDIS_PASSWORD", "")
}

func initDatabase(c *Config) {
	c.Database.Psql.Name = getConfigValue(c.Database.Psql.Name, "DB_NAME", "")
	c.Database.Psql.Host = getConfigValue(c.Database.Psql.Host, "DB_HOST", "")
	c.Database.Psql.Port = getConfigValue(c.Database.Psql.Port, "DB_PORT", "5432")
	c.Database.Psql.User = getConfigValue(c.Database.Psql.User, "DB_USER", "")
	c.Database.Psql.Password = getConfigValue(c.Database.Psql.Password, "DB_PASSWORD", "")

	c.Database.MySql.Name = getConfigValue(c.Database.MySql.Name, "MYSQL_DB_NAME", "")
	c.Database.MySql.Host = getConfigValue(c.Database.MySql.Host, "MYSQL_HOST", "localhost")
	c.Database.MySql.Port = getConfigValue(c.Database.MySql.Port, "MYSQL_PORT", "3306")
	c.Database.MySql.User = getConfigValue(c.Database.MySql.User, "MYSQL_USER", "")
	c.Database.MySql.Password = getConfigValue(c.Database.MySql.Password, "MYSQL_PASSWORD", "")

	c.Database.Mssql.Name = getConfigValue(c.Database.Mssql.Name, "MSSQL_DB_NAME", "")
	c.Database.Mssql.Host = getConfigValue(c.Database.Mssql.Host, "MSSQL_HOST", "localhost")
	c.Database.Mssql.Port = getConfigValue(c.Database.Mssql.Port, "MSSQL_PORT", "1433")
	c.Database.Mssql.User = getConfigValue(c.Database.Mssql.User, "MSSQL_USER", "")
	c.Database.Mssql.Password = getConfigValue(c.Database.Mssql.Password, "MSSQL_PASSWORD", "")

	c.Database.Mongo.Name = getConfigValue(c.Database.Mongo.Name, "MONGO_DB_NAME", "flickr_embed")
	c.Database.Mongo.Host = getConfigValue(c.Database.Mongo.Host, "MONGO_HOST", "localhost")
	c.Database.Mongo.Port = getConfigValue(c.Database.Mongo.Port, "MONGO_PORT", "27017")
	c.Database.Mongo.User = getConfigValue(c.Database.Mongo.User, "MONGO_USER", "")
	c.Database.Mongo.Password = getConfigValue(c.Database.Mongo.Password, "MONGO_PASSWORD", "")
}
