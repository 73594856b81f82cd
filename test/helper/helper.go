package helper_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/go-faker/faker/v4"
	"github.com/go-redis/redis"
	"github.com/golang-migrate/migrate/v4"
	migratePostgres "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/ory/dockertest"
	"github.com/ory/dockertest/docker"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/mdating/mdating-backend/internal"
	"github.com/mdating/mdating-backend/internal/config"
	"github.com/mdating/mdating-backend/internal/entity"
	"github.com/mdating/mdating-backend/pkg/http_util"
	"github.com/mdating/mdating-backend/pkg/path"
)

const baseURL = "http://localhost:8080"

// TestServerResources holds resources needed for test server setup
type TestServerResources struct {
	Cancel        context.CancelFunc
	Config        *config.Config
	Pool          *dockertest.Pool
	DBResource    *dockertest.Resource
	RedisResource *dockertest.Resource
	ORM           *gorm.DB
	Redis         *redis.Client
}

// SetupTestServer starts postgres and redis containers, migrates the schema
// and runs the service against them.
func SetupTestServer(ctx context.Context) (*TestServerResources, error) {
	ctx, cancel := context.WithCancel(ctx)
	var gormDB *gorm.DB
	var redisClient *redis.Client

	cfg, err := config.NewConfig("TEST")
	if err != nil {
		cancel()
		return nil, fmt.Errorf("could not load configuration: %w", err)
	}

	pool, dbResource, redisResource, err := setupDockerResources(cfg)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("could not set up Docker resources: %w", err)
	}

	pool.MaxWait = 60 * time.Second
	if err := pool.Retry(func() error {
		gormDB, err = connectToPostgres(dbResource, cfg)
		return err
	}); err != nil {
		cancel()
		return nil, fmt.Errorf("could not connect to postgreSQL: %s", err)
	}

	fmt.Println("ℹ️ Database Connected")

	if err := pool.Retry(func() error {
		redisClient, err = connectToRedis(redisResource)
		return err
	}); err != nil {
		cancel()
		return nil, fmt.Errorf("could not connect to redis: %s", err)
	}

	fmt.Println("ℹ️ Redis Connected")

	sqlDB, err := gormDB.DB()
	if err != nil {
		cancel()
		return nil, err
	}

	if err := runMigrations(sqlDB); err != nil {
		cancel()
		return nil, fmt.Errorf("could not run migrations: %w", err)
	}

	go internal.Run(ctx, os.Stdout, []string{"test"})

	if !waitForServer(ctx, cfg.Get("PORT")) {
		pool.Purge(redisResource)
		pool.Purge(dbResource)
		cancel()
		return nil, fmt.Errorf("server did not start within timeout")
	}

	return &TestServerResources{
		Cancel:        cancel,
		Config:        cfg,
		Pool:          pool,
		DBResource:    dbResource,
		RedisResource: redisResource,
		ORM:           gormDB,
		Redis:         redisClient,
	}, nil
}

// CleanupTestServer stops the server and purges Docker resources
func (resources *TestServerResources) CleanupTestServer() {
	if resources == nil {
		return
	}

	if resources.Cancel != nil {
		resources.Cancel()
	}

	if resources.Pool != nil {
		if resources.DBResource != nil {
			if err := resources.Pool.Purge(resources.DBResource); err != nil {
				log.Printf("Could not purge PostgreSQL: %s", err)
			}
		}

		if resources.RedisResource != nil {
			if err := resources.Pool.Purge(resources.RedisResource); err != nil {
				log.Printf("Could not purge Redis: %s", err)
			}
		}
	}
}

func setupDockerResources(cfg *config.Config) (*dockertest.Pool, *dockertest.Resource, *dockertest.Resource, error) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		return nil, nil, nil, fmt.Errorf("could not connect to docker: %s", err)
	}

	dbOptions := &dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "14",
		Env: []string{
			fmt.Sprintf("POSTGRES_USER=%s", cfg.Get("POSTGRES_USER")),
			fmt.Sprintf("POSTGRES_PASSWORD=%s", cfg.Get("POSTGRES_PASSWORD")),
			fmt.Sprintf("POSTGRES_DB=%s", cfg.Get("POSTGRES_DB_NAME")),
		},
		PortBindings: map[docker.Port][]docker.PortBinding{
			"5432/tcp": {{HostIP: "127.0.0.1", HostPort: fmt.Sprintf("%s/tcp", cfg.Get("POSTGRES_PORT"))}},
		},
	}
	dbResource, err := pool.RunWithOptions(dbOptions)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("could not start postgres: %s", err)
	}

	redisOptions := &dockertest.RunOptions{
		Repository: "redis",
		Tag:        "7",
		PortBindings: map[docker.Port][]docker.PortBinding{
			"6379/tcp": {{HostIP: "127.0.0.1", HostPort: fmt.Sprintf("%s/tcp", cfg.Get("REDIS_PORT"))}},
		},
	}
	redisResource, err := pool.RunWithOptions(redisOptions)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("could not start redis: %s", err)
	}

	return pool, dbResource, redisResource, nil
}

func connectToPostgres(dbResource *dockertest.Resource, cfg *config.Config) (*gorm.DB, error) {
	hostPort := strings.Split(dbResource.GetHostPort("5432/tcp"), ":")
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		hostPort[0],
		hostPort[1],
		cfg.Get("POSTGRES_USER"),
		cfg.Get("POSTGRES_PASSWORD"),
		cfg.Get("POSTGRES_DB_NAME"))

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}

	return gormDB, sqlDB.Ping()
}

func connectToRedis(redisResource *dockertest.Resource) (*redis.Client, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr: "localhost:" + redisResource.GetPort("6379/tcp"),
	})
	return redisClient, redisClient.Ping().Err()
}

func runMigrations(db *sql.DB) error {
	driver, err := migratePostgres.WithInstance(db, &migratePostgres.Config{})
	if err != nil {
		return err
	}

	basePath, err := os.Getwd()
	if err != nil {
		return err
	}

	migrationPath, err := path.FindRoot(basePath, "migrations", true)
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://"+migrationPath+"/migrations",
		"postgres", driver)
	if err != nil {
		return err
	}

	return m.Up()
}

func waitForServer(ctx context.Context, port string) bool {
	loopContext, cancelLoopContext := context.WithTimeout(ctx, 120*time.Second)
	defer cancelLoopContext()

	for {
		select {
		case <-loopContext.Done():
			return false
		default:
			resp, err := http.Get(fmt.Sprintf("http://localhost:%s/healthz", port))
			if err != nil {
				time.Sleep(1 * time.Second)
				continue
			}
			resp.Body.Close()

			if resp.StatusCode == http.StatusOK {
				log.Println("✅ Server is ready")
				return true
			}
			time.Sleep(1 * time.Second)
		}
	}
}

// SignUpUser registers a user over HTTP and returns the created profile.
func SignUpUser(t *testing.T, name, email, password string, sex entity.SexType) entity.SignUpResponse {
	t.Helper()

	reqBody := entity.SignUpRequest{
		Name:     name,
		Email:    email,
		Password: password,
		Sex:      sex,
	}

	status, body := PostJSON(t, "/v1/auth/sign-up", "", reqBody)
	if status != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d: %s", http.StatusOK, status, body)
	}

	response, err := http_util.DecodeBody[http_util.HTTPResponse[entity.SignUpResponse]](body)
	if err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return response.Data
}

func SignInUser(t *testing.T, email, password string) string {
	t.Helper()

	status, body := PostJSON(t, "/v1/auth/sign-in", "", entity.SignInRequest{
		Email:    email,
		Password: password,
	})
	if status != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d: %s", http.StatusOK, status, body)
	}

	response, err := http_util.DecodeBody[http_util.HTTPResponse[entity.SignInResponse]](body)
	if err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return response.Data.Token
}

// SwipeProfile records one swipe over HTTP and returns the response along
// with the HTTP status so callers can assert quota rejections.
func SwipeProfile(t *testing.T, token, swipedUserID string, swipeType entity.SwipeType) (entity.SwipeResponse, int, string) {
	t.Helper()

	status, body := PostJSON(t, "/v1/swipe", token, entity.SwipeRequest{
		SwipedUserID: swipedUserID,
		SwipeType:    swipeType,
	})
	if status != http.StatusOK {
		return entity.SwipeResponse{}, status, string(body)
	}

	response, err := http_util.DecodeBody[http_util.HTTPResponse[entity.SwipeResponse]](body)
	if err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return response.Data, status, string(body)
}

func ListCandidates(t *testing.T, token string, page, limit int) entity.SwipeListResponse {
	t.Helper()

	url := fmt.Sprintf("%s/v1/swipe?page=%d&limit=%d", baseURL, page, limit)
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Failed to send request: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read response body: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d: %s", http.StatusOK, resp.StatusCode, body)
	}

	response, err := http_util.DecodeBody[http_util.HTTPResponse[entity.SwipeListResponse]](body)
	if err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return response.Data
}

func UpgradePremium(t *testing.T, token, phone string) int {
	t.Helper()

	status, _ := PostJSON(t, "/v1/user/upgrade", token, entity.UpgradePremiumRequest{Phone: phone})
	return status
}

// PopulateUsers seeds profiles of the given sex directly through the ORM.
func PopulateUsers(db *gorm.DB, count int, sex entity.SexType) ([]entity.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(faker.Password()), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	var users []entity.User
	for i := 0; i < count; i++ {
		user := entity.User{
			Name:        faker.Name(),
			Email:       faker.Email(),
			Password:    string(hashed),
			Sex:         sex,
			AccountType: entity.AccountFree,
		}
		if err := db.Create(&user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

// PostJSON sends an authenticated JSON POST and returns status and body.
func PostJSON(t *testing.T, route, token string, payload any) (int, []byte) {
	t.Helper()

	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("Failed to marshal request body: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, baseURL+route, bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Failed to send request: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read response body: %v", err)
	}
	return resp.StatusCode, respBody
}
