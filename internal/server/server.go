package server

import (
	"backend-trailpace/internal/analysis"
	"backend-trailpace/internal/auth"
	"backend-trailpace/internal/config"
	"backend-trailpace/internal/export"
	"backend-trailpace/internal/route"
	"backend-trailpace/internal/share"
	"backend-trailpace/internal/stream"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App    *fiber.App
	Cfg    config.Config
	DB     *pgxpool.Pool
	Redis  *redis.Client
	Stream *stream.Hub
}

func NewServer(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	s := &Server{
		App:    app,
		Cfg:    cfg,
		DB:     db,
		Redis:  redisClient,
		Stream: stream.NewHub(redisClient),
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	jwtMiddleware := auth.JWTMiddleware(s.Cfg.JWTSecret)

	routeSvc := route.NewService(s.DB, s.Stream)
	analysisSvc := analysis.NewService(s.DB, s.Stream, s.Cfg.RaceSampleStride)

	auth.RegisterRoutes(s.App.Group("/auth"), auth.NewService(s.Cfg.JWTSecret, s.DB))
	route.RegisterRoutes(s.App.Group("/routes"), routeSvc, jwtMiddleware)
	analysis.RegisterRoutes(s.App.Group("/analyses"), analysisSvc, jwtMiddleware)
	share.RegisterRoutes(s.App.Group("/share"), share.NewService(s.DB), jwtMiddleware)
	export.RegisterRoutes(s.App.Group("/export"), routeSvc, analysisSvc, jwtMiddleware)
	stream.RegisterRoutes(s.App.Group("/stream"), s.Stream)
}
