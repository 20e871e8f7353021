package utils

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/mmartinez10/event-invitations-backend/config"
)

var (
	RedisClient *redis.Client
	Ctx         = context.Background()
)

// InitRedis connects the shared client. The app runs without Redis: live
// dashboard updates are skipped, nothing else depends on it.
func InitRedis(cfg *config.Config) {
	if cfg.RedisAddr == "" {
		fmt.Println("⚠️ Redis no configurado, eventos en vivo deshabilitados")
		return
	}

	RedisClient = redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	if err := RedisClient.Ping(Ctx).Err(); err != nil {
		fmt.Printf("⚠️ No se pudo conectar a Redis: %v\n", err)
		RedisClient = nil
		return
	}

	fmt.Println("✅ Redis conectado")
}

// Publish pushes a JSON payload onto a pub/sub channel, best effort:
// failures are logged and never bubble into the calling workflow.
func Publish(ctx context.Context, canal string, payload interface{}) {
	if RedisClient == nil {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		fmt.Printf("⚠️ No se pudo serializar el evento para %s: %v\n", canal, err)
		return
	}

	if err := RedisClient.Publish(ctx, canal, data).Err(); err != nil {
		fmt.Printf("⚠️ No se pudo publicar en %s: %v\n", canal, err)
	}
}
