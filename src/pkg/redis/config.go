package redis

import (
	"fmt"
	"strings"
	"time"
)

type CfgRedis struct {
	UseCluster           bool
	EnableTLS            bool
	RedisHost            string
	RedisPort            string
	RedisPassword        string
	RedisDB              int
	RedisClusterNode     string
	RedisClusterPassword string
	PoolSize             int
	MaxRetries           int
	DialTimeoutSec       int
	ReadTimeoutSec       int
	WriteTimeoutSec      int
}

type AppConfig struct {
	UseCluster bool
}

// Tuning holds the connection knobs shared by both client shapes.
type Tuning struct {
	PoolSize     int
	MaxRetries   int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type RedisConfig struct {
	Host      string
	Port      string
	Password  string
	DB        int
	EnableTLS bool
}

type RedisClusterConfig struct {
	Hosts     []string
	Username  string
	Password  string
	EnableTLS bool
}

var (
	AppConfigData          AppConfig
	TuningData             Tuning
	RedisConfigData        RedisConfig
	RedisClusterConfigData RedisClusterConfig
)

func LoadConfig(config *CfgRedis) {

	AppConfigData = AppConfig{
		UseCluster: config.UseCluster,
	}

	TuningData = tuningFrom(config)

	RedisConfigData = RedisConfig{
		Host:      fmt.Sprintf("%v", config.RedisHost),
		Port:      fmt.Sprintf("%v", config.RedisPort),
		Password:  fmt.Sprintf("%v", config.RedisPassword),
		DB:        config.RedisDB,
		EnableTLS: config.EnableTLS,
	}

	clusterHost := strings.Split(config.RedisClusterNode, ";")
	RedisClusterConfigData = RedisClusterConfig{
		Hosts:     clusterHost,
		Password:  config.RedisClusterPassword,
		EnableTLS: config.EnableTLS,
	}
}

func tuningFrom(config *CfgRedis) Tuning {
	tuning := Tuning{
		PoolSize:     config.PoolSize,
		MaxRetries:   config.MaxRetries,
		DialTimeout:  time.Duration(config.DialTimeoutSec) * time.Second,
		ReadTimeout:  time.Duration(config.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(config.WriteTimeoutSec) * time.Second,
	}
	if tuning.PoolSize <= 0 {
		tuning.PoolSize = 10
	}
	if tuning.MaxRetries <= 0 {
		tuning.MaxRetries = 2
	}
	if tuning.DialTimeout <= 0 {
		tuning.DialTimeout = 5 * time.Second
	}
	if tuning.ReadTimeout <= 0 {
		tuning.ReadTimeout = 3 * time.Second
	}
	if tuning.WriteTimeout <= 0 {
		tuning.WriteTimeout = 3 * time.Second
	}
	return tuning
}
