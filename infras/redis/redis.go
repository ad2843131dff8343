package redis

import (
	"context"
	"fmt"
	"net"
	"time"

	"hotel/config"

	"github.com/cenkalti/backoff/v5"
	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	dialTimeout   = 5 * time.Second
	ioTimeout     = 3 * time.Second
	connectTries  = 5
	firstRetryGap = 500 * time.Millisecond
)

// Options maps the primary node settings onto go-redis options.
func Options(config *config.Config) *goRedis.Options {
	primary := config.Cache.Redis.Primary

	return &goRedis.Options{
		Addr:         net.JoinHostPort(primary.Host, primary.Port),
		Password:     primary.Password,
		DB:           primary.DB,
		DialTimeout:  dialTimeout,
		ReadTimeout:  ioTimeout,
		WriteTimeout: ioTimeout,
	}
}

// New returns a client whose primary answered PING. The read models and the
// rate limiter both live here, so startup fails when it never does.
func New(config *config.Config) *goRedis.Client {
	client := goRedis.NewClient(Options(config))

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = firstRetryGap

	_, err := backoff.Retry(context.Background(),
		func() (string, error) {
			return client.Ping(context.Background()).Result() //nolint:wrapcheck
		},
		backoff.WithBackOff(policy),
		backoff.WithMaxTries(connectTries),
		backoff.WithNotify(func(err error, wait time.Duration) {
			log.Warn().Err(err).Str("addr", client.Options().Addr).Dur("retry_in", wait).Msg("redis not reachable, retrying")
		}),
	)
	if err != nil {
		log.Fatal().Err(fmt.Errorf("pinging redis: %w", err)).Msg("Failed to connect to Redis")
	}

	log.Info().Str("addr", client.Options().Addr).Int("db", config.Cache.Redis.Primary.DB).Msg("Connected to Redis")

	return client
}
