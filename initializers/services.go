package initializers

import (
	"context"
	"fmt"
	"time"

	"github.com/nilamroots/nilamroots-api/payments"
	"github.com/nilamroots/nilamroots-api/storage"
	"github.com/nilamroots/nilamroots-api/utils"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var (
	Payments    *payments.Razorpay
	Files       storage.FileStore
	Revocations utils.RevocationStore
)

func InitPayments(cfg *AppConfig) {
	Payments = payments.NewRazorpay(payments.Config{
		KeyID:     cfg.RazorpayKeyID,
		KeySecret: cfg.RazorpayKeySecret,
		BaseURL:   cfg.RazorpayBaseURL,
		Timeout:   cfg.RazorpayTimeout,
	})
	if cfg.RazorpayKeyID == "" || cfg.RazorpayKeySecret == "" {
		Logger.Warn("Razorpay credentials missing; online payments will fail")
	}
}

func InitStorage(ctx context.Context, cfg *AppConfig) error {
	if cfg.StorageDriver == "s3" {
		store, err := storage.NewS3Store(ctx, cfg.S3Bucket, cfg.S3Prefix)
		if err != nil {
			return err
		}
		Files = store
		Logger.Info("Profile pictures stored in S3", zap.String("bucket", cfg.S3Bucket))
		return nil
	}

	store, err := storage.NewDiskStore(cfg.UploadDir)
	if err != nil {
		return err
	}
	Files = store
	return nil
}

// InitRevocations uses Redis when REDIS_ADDR is set, process memory otherwise.
func InitRevocations(ctx context.Context, cfg *AppConfig) error {
	if cfg.RedisAddr == "" {
		Revocations = utils.NewMemoryRevocationStore()
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr,
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	Revocations = utils.NewRedisRevocationStore(client)
	Logger.Info("Token revocations stored in Redis", zap.String("addr", cfg.RedisAddr))
	return nil
}
