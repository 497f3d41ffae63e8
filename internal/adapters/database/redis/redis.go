package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"event-manager-api/internal/adapters/database/redis/tokens"
)

type Client struct {
	Tokens *tokens.Storage
}

type Options struct {
	Host     string
	Port     string
	Password string
}

func New(opts Options) (*Client, error) {
	tokenStorage := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", opts.Host, opts.Port),
		Password: opts.Password,
		DB:       0,
	})
	if err := tokenStorage.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping token storage: %w", err)
	}

	return &Client{
		Tokens: tokens.NewStorage(tokenStorage),
	}, nil
}
