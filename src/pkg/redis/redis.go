package redis

import (
	"context"
	"crypto/tls"
	"fmt"

	"github.com/redis/go-redis/v9"
)

var redisClient redis.UniversalClient

func tlsConfig(enabled bool) *tls.Config {
	if !enabled {
		return nil
	}
	return &tls.Config{
		MinVersion: tls.VersionTLS12,
	}
}

func InitConnection() {
	tuning := TuningData

	if !AppConfigData.UseCluster {
		redisClient = redis.NewClient(&redis.Options{
			Addr:         fmt.Sprintf("%s:%v", RedisConfigData.Host, RedisConfigData.Port),
			Password:     RedisConfigData.Password,
			DB:           RedisConfigData.DB,
			TLSConfig:    tlsConfig(RedisConfigData.EnableTLS),
			DialTimeout:  tuning.DialTimeout,
			ReadTimeout:  tuning.ReadTimeout,
			WriteTimeout: tuning.WriteTimeout,
			PoolSize:     tuning.PoolSize,
			MaxRetries:   tuning.MaxRetries,
		})
	} else {
		redisClient = redis.NewClusterClient(&redis.ClusterOptions{
			Addrs:        RedisClusterConfigData.Hosts,
			Username:     RedisClusterConfigData.Username,
			Password:     RedisClusterConfigData.Password,
			TLSConfig:    tlsConfig(RedisClusterConfigData.EnableTLS),
			DialTimeout:  tuning.DialTimeout,
			ReadTimeout:  tuning.ReadTimeout,
			WriteTimeout: tuning.WriteTimeout,
			PoolSize:     tuning.PoolSize,
			MaxRetries:   tuning.MaxRetries,
		})
	}

	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		fmt.Println("REDIS ERROR:", err.Error())
		panic("cannot connect to Redis")
	}
}

func GetClient() redis.UniversalClient {
	return redisClient
}
