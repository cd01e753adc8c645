package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"

	"github.com/ElamanNis/ecoscanAI/internal/api"
	"github.com/ElamanNis/ecoscanAI/internal/pkg/ai"
	"github.com/ElamanNis/ecoscanAI/internal/pkg/constants"
	"github.com/ElamanNis/ecoscanAI/internal/pkg/logger"
	"github.com/ElamanNis/ecoscanAI/internal/pkg/providers"
	"github.com/ElamanNis/ecoscanAI/internal/pkg/ratelimit"
	"github.com/ElamanNis/ecoscanAI/internal/pkg/store"
	"github.com/ElamanNis/ecoscanAI/internal/pkg/store/xpgx"
)

func main() {
	viper.AutomaticEnv()
	viper.SetDefault(constants.ViperHTTPAddr, ":8080")
	viper.SetDefault(constants.ViperGroqModel, "llama-3.1-8b-instant")
	viper.SetDefault(constants.ViperHFModel, "HuggingFaceH4/zephyr-7b-beta")
	viper.SetDefault(constants.ViperHFEndpoint, "https://router.huggingface.co")

	logger.Init(viper.GetBool("debug"))
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool := connectDB(ctx)
	defer pool.Close()

	st := store.NewStore(pool)

	var limiter ratelimit.Limiter = ratelimit.NewMemoryLimiter()
	if addr := viper.GetString(constants.ViperRedisAddr); addr != "" {
		limiter = ratelimit.NewRedisLimiter(redis.NewClient(&redis.Options{Addr: addr}))
		logger.Infof(ctx, "rate limiting via redis at %s", addr)
	}

	svc, err := api.NewAPIService(st, limiter, providers.NewSet(), ai.NewFromConfig())
	if err != nil {
		logger.Fatal(ctx, err)
	}

	go svc.Serve(viper.GetString(constants.ViperHTTPAddr))
	logger.Infof(ctx, "listening on %s", viper.GetString(constants.ViperHTTPAddr))

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := svc.Shutdown(shutdownCtx); err != nil {
		logger.Errorf(shutdownCtx, "shutdown: %s", err.Error())
	}
}

// connectDB retries the initial connection so the service survives the
// database coming up after it in orchestrated environments.
func connectDB(ctx context.Context) store.Pool {
	var pool store.Pool

	connect := func() error {
		p, err := xpgx.NewPool(ctx, viper.GetString(constants.ViperDatabaseURL))
		if err != nil {
			return err
		}
		if err := p.Ping(ctx); err != nil {
			p.Close()
			return err
		}
		pool = p
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 5), ctx)
	if err := backoff.Retry(connect, policy); err != nil {
		logger.Fatal(ctx, err)
	}

	return pool
}
