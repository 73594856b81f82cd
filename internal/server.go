package internal

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo"
	"gorm.io/gorm"

	"github.com/mdating/mdating-backend/internal/config"
	"github.com/mdating/mdating-backend/internal/datastore/postgres"
	redisClient "github.com/mdating/mdating-backend/internal/datastore/redis"
	matchRepo "github.com/mdating/mdating-backend/internal/repository/match"
	swipeRepo "github.com/mdating/mdating-backend/internal/repository/swipe"
	userRepo "github.com/mdating/mdating-backend/internal/repository/user"
	routesV1 "github.com/mdating/mdating-backend/internal/routes/v1"
	authUseCase "github.com/mdating/mdating-backend/internal/usecase/auth"
	swipeUseCase "github.com/mdating/mdating-backend/internal/usecase/swipe"
	userUseCase "github.com/mdating/mdating-backend/internal/usecase/user"
	"github.com/mdating/mdating-backend/pkg/jwt"
)

type Server struct {
	writer     io.Writer
	httpServer *http.Server
	database   *gorm.DB
}

// Run wires the service from configuration and blocks serving HTTP until
// the context is cancelled. args[0] selects the environment prefix for
// configuration keys ("dev", "test").
func Run(ctx context.Context, w io.Writer, args []string) error {
	env := "dev"
	if len(args) > 0 && args[0] != "" {
		env = args[0]
	}

	cfg, err := config.NewConfig(env)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	server, err := NewServer(ctx, w, cfg)
	if err != nil {
		return err
	}

	go func() {
		<-ctx.Done()
		server.Shutdown(context.Background())
	}()

	if err := server.StartServer(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func NewServer(ctx context.Context, w io.Writer, cfg *config.Config) (*Server, error) {
	jwt.Configure(cfg.Get("JWT_SECRET"))

	database, err := postgres.InitializeDB(
		cfg.Get("POSTGRES_USER"),
		cfg.Get("POSTGRES_PASSWORD"),
		cfg.Get("POSTGRES_DB_NAME"),
		cfg.Get("POSTGRES_HOST"),
		cfg.Get("POSTGRES_PORT"),
	)
	if err != nil {
		return nil, fmt.Errorf("initialize database: %w", err)
	}

	rdb, err := redisClient.NewRedis(cfg.Get("REDIS_HOST"), cfg.Get("REDIS_PORT"))
	if err != nil {
		return nil, fmt.Errorf("initialize redis: %w", err)
	}

	users := userRepo.New(database)
	swipes := swipeRepo.New(database, rdb)
	matches := matchRepo.New(database)

	authCase := authUseCase.New(users)
	swipeCase := swipeUseCase.New(database, users, swipes, matches)
	userCase := userUseCase.New(users)

	e := echo.New()

	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	})

	server := &Server{
		writer: w,
		httpServer: &http.Server{
			Addr:    ":" + cfg.Get("PORT"),
			Handler: e,
		},
		database: database,
	}

	e.GET("/healthz", server.handleHealthCheck)
	routesV1.InitV1Routes(e, users, authCase, swipeCase, userCase)

	return server, nil
}

func (s *Server) StartServer() error {
	fmt.Fprintf(s.writer, "Server starting on %s\n", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "healthy",
	})
}
