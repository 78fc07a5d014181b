//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"boxbook/cmd/bootstrap"
	"boxbook/cmd/bootstrap/components"
	"boxbook/internal/domain/user"
	"boxbook/internal/infra/db"
	"boxbook/internal/pkg/config"
	"boxbook/internal/pkg/jwt"

	"github.com/docker/go-connections/nat"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"
)

var (
	postgresOnce      sync.Once
	postgresContainer testcontainers.Container
	redisOnce         sync.Once
	redisContainer    testcontainers.Container

	testUser     = "test"
	testPassword = "testpass"
)

// Reference rows every e2e run starts from. The venue has no weekend rate so
// totals stay the same regardless of which day the test picks.
var (
	SeedOwnerID    = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	SeedCustomerID = uuid.MustParse("22222222-2222-2222-2222-222222222222")
	SeedVenueID    = uuid.MustParse("33333333-3333-3333-3333-333333333333")
	SeedVenueSlug  = "powerplay-arena"
)

type containerInfo struct {
	Host string
	Port nat.Port
}

func setupEnvironment(t *testing.T) (*pgxpool.Pool, *gin.Engine, config.Config) {
	gin.SetMode(gin.TestMode)

	pgInfo := startPostgres(t)
	redisInfo := startRedis(t)

	pool, dbConfig := prepareDatabase(t, pgInfo)

	cfg := config.NewTestConfig()
	cfg.DB = dbConfig
	cfg.Redis.Addr = redisInfo.Host + ":" + redisInfo.Port.Port()

	client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
	t.Cleanup(func() { _ = client.Close() })

	router, app := buildApp(pool, client, cfg)
	require.NotNil(t, router)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.Stop(ctx); err != nil {
			slog.Warn("failed to stop fx app", "error", err.Error())
		}
	})

	return pool, router, cfg
}

func prepareDatabase(t *testing.T, info containerInfo) (*pgxpool.Pool, config.DBConfig) {
	dbName := "testdb_" + strings.ReplaceAll(uuid.New().String(), "-", "")

	adminDSN := fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable",
		testUser, testPassword, info.Host, info.Port.Port())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	adminPool, err := pgxpool.New(ctx, adminDSN)
	require.NoError(t, err)
	defer adminPool.Close()

	_, err = adminPool.Exec(ctx, "CREATE DATABASE "+dbName)
	require.NoError(t, err)

	t.Cleanup(func() {
		cleanupCtx, cleanupCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cleanupCancel()

		cleanupPool, err := pgxpool.New(cleanupCtx, adminDSN)
		if err != nil {
			return
		}
		defer cleanupPool.Close()
		_, _ = cleanupPool.Exec(cleanupCtx, "DROP DATABASE IF EXISTS "+dbName)
	})

	dbConfig := config.DBConfig{
		Host:     info.Host,
		Port:     info.Port.Port(),
		User:     testUser,
		Password: testPassword,
		DBName:   dbName,
		SSLMode:  "disable",
		TimeZone: "Asia/Kolkata",
	}

	pool, _, err := db.Connect(dbConfig)
	require.NoError(t, err)

	require.NoError(t, applyMigrations(t, pool))
	require.NoError(t, seedReferenceData(pool))

	return pool, dbConfig
}

func applyMigrations(t *testing.T, pool *pgxpool.Pool) error {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	file := "migrations/000001_init.up.sql"
	candidates := []string{
		file,
		filepath.Join("..", file),
		filepath.Join("..", "..", file),
	}
	var (
		sqlContent []byte
		readErr    error
	)
	for _, cand := range candidates {
		sqlContent, readErr = os.ReadFile(cand)
		if readErr == nil {
			break
		}
	}
	if readErr != nil {
		return fmt.Errorf("failed to read migration file: %w", readErr)
	}

	if _, err := pool.Exec(ctx, string(sqlContent)); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

func seedReferenceData(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := pool.Exec(ctx, `
INSERT INTO users (id, phone, name, role, password_hash, active) VALUES
	($1, '+919820000001', 'Arjun Mehta', 'owner', '$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy', true),
	($2, '+919820000002', 'Rahul Sharma', 'customer', NULL, true)`,
		SeedOwnerID, SeedCustomerID)
	if err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	_, err = pool.Exec(ctx, `
INSERT INTO venues (
	id, slug, name, area, city, hourly_rate_paise, weekend_rate_paise,
	open_min, close_min, amenities, rules, owner_id, active
) VALUES (
	$1, $2, 'PowerPlay Arena', 'Andheri West', 'Mumbai', 120000, NULL,
	360, 1380, '{floodlights,parking}', '{"no metal spikes"}', $3, true
)`, SeedVenueID, SeedVenueSlug, SeedOwnerID)
	if err != nil {
		return fmt.Errorf("failed to seed venue: %w", err)
	}
	return nil
}

// ResetBookings clears booking rows between subtests. Users and venues are
// static reference data and stay in place.
func ResetBookings(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := pool.Exec(ctx, "TRUNCATE bookings")
	return err
}

func buildApp(pool *pgxpool.Pool, client *redis.Client, cfg config.Config) (*gin.Engine, *fx.App) {
	var router *gin.Engine

	app := fx.New(
		fx.Provide(
			func() *pgxpool.Pool { return pool },
			func() *redis.Client { return client },
			func() config.Config { return cfg },
			func() *gin.Engine { return gin.New() },
		),
		bootstrap.JWTModule,
		components.PersistenceModule,
		components.UseCaseModule,
		components.HandlerModule,

		fx.Populate(&router),
		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		panic(fmt.Sprintf("failed to start fx app: %v", err))
	}
	return router, app
}

func startPostgres(t *testing.T) containerInfo {
	postgresOnce.Do(func() {
		req := testcontainers.ContainerRequest{
			Image:        "postgres:17",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     testUser,
				"POSTGRES_PASSWORD": testPassword,
				"POSTGRES_DB":       "postgres",
			},
			Tmpfs: map[string]string{
				"/var/lib/postgresql/data": "rw,size=512m",
			},
			Cmd: []string{
				"postgres",
				"-c", "fsync=off",
				"-c", "synchronous_commit=off",
				"-c", "max_connections=200",
			},
			WaitingFor: wait.ForSQL("5432/tcp", "pgx", func(host string, port nat.Port) string {
				return fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable",
					testUser, testPassword, host, port.Port())
			}).WithStartupTimeout(60 * time.Second),
		}

		var err error
		postgresContainer, err = startContainer(req)
		require.NoError(t, err)

		t.Cleanup(func() { terminate(postgresContainer) })
	})

	info, err := hostPort(postgresContainer, "5432/tcp")
	require.NoError(t, err)
	return info
}

func startRedis(t *testing.T) containerInfo {
	redisOnce.Do(func() {
		req := testcontainers.ContainerRequest{
			Image:        "redis:7",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(30 * time.Second),
		}

		var err error
		redisContainer, err = startContainer(req)
		require.NoError(t, err)

		t.Cleanup(func() { terminate(redisContainer) })
	})

	info, err := hostPort(redisContainer, "6379/tcp")
	require.NoError(t, err)
	return info
}

func startContainer(req testcontainers.ContainerRequest) (testcontainers.Container, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 180*time.Second)
	defer cancel()

	return testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
}

func terminate(c testcontainers.Container) {
	if c == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := c.Terminate(ctx); err != nil {
		slog.Warn("failed to terminate container", "error", err.Error())
	}
}

func hostPort(c testcontainers.Container, port string) (containerInfo, error) {
	ctx := context.Background()
	mappedPort, err := c.MappedPort(ctx, nat.Port(port))
	if err != nil {
		return containerInfo{}, err
	}
	host, err := c.Host(ctx)
	if err != nil {
		return containerInfo{}, err
	}
	return containerInfo{Host: host, Port: mappedPort}, nil
}

// SharedSuite boots the full stack once per suite: containers, a fresh
// database, and the fx-wired router.
type SharedSuite struct {
	suite.Suite
	Router *gin.Engine
	DB     *pgxpool.Pool
	Config config.Config
}

func (s *SharedSuite) SetupSuite() {
	db, router, cfg := setupEnvironment(s.T())
	s.DB = db
	s.Router = router
	s.Config = cfg
}

func (s *SharedSuite) SetupTest() {
	require.NoError(s.T(), ResetBookings(s.DB))
}

// TokenFor mints a bearer token the way the login flow would.
func (s *SharedSuite) TokenFor(userID uuid.UUID, role string) string {
	svc := jwt.NewService(s.Config.JWT.Secret, s.Config.JWT.Duration)
	r, err := user.NewRole(role)
	require.NoError(s.T(), err)
	token, err := svc.GenerateToken(userID, r)
	require.NoError(s.T(), err)
	return token
}
