package postgres

//nolint:revive
import (
	"context"
	"fmt"
	"time"

	"hotel/config"

	"github.com/cenkalti/backoff/v5"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	driverName      = "postgres"
	connMaxIdleTime = 5 * time.Minute
)

// Connection splits reads from writes. Transactions and row locks always use
// Write, list and summary queries use Read.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

// New connects both nodes and exits the process when either stays unreachable
// after the configured retries.
func New(config *config.Config) *Connection {
	ctx := context.Background()

	write, err := Connect(ctx, "write", config.DB.Postgres.Write, config)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to write database")
	}

	read, err := Connect(ctx, "read", config.DB.Postgres.Read, config)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to read database")
	}

	return &Connection{Read: read, Write: write}
}

// Connect opens a pool to node, retrying with exponential backoff starting at
// DB_POSTGRES_RETRY_WAIT_TIME seconds for DB_POSTGRES_MAX_RETRY attempts.
func Connect(ctx context.Context, name string, node config.PostgresNode, config *config.Config) (*sqlx.DB, error) {
	dbName := config.DatabaseName(node.Name)
	dsn := node.DSN(dbName, nil)

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = time.Duration(max(1, config.DB.Postgres.RetryWaitTime)) * time.Second

	db, err := backoff.Retry(ctx,
		func() (*sqlx.DB, error) {
			return sqlx.ConnectContext(ctx, driverName, dsn)
		},
		backoff.WithBackOff(policy),
		backoff.WithMaxTries(uint(max(1, config.DB.Postgres.MaxRetry))),
		backoff.WithNotify(func(err error, wait time.Duration) {
			log.Warn().Err(err).Str("name", name).Str("host", node.Host).Dur("retry_in", wait).Msg("database not reachable, retrying")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s database %s: %w", name, dbName, err)
	}

	maxConns := max(1, config.DB.Postgres.MaxConnections)
	db.SetMaxOpenConns(maxConns)
	db.SetMaxIdleConns(maxConns)
	db.SetConnMaxIdleTime(connMaxIdleTime)

	log.Info().Str("name", name).Str("host", node.Host).Str("port", node.Port).Str("dbName", dbName).Msg("Connected to database")

	return db, nil
}
