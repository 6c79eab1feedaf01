package server

import (
	"time"

	"github.com/davidrmellors/peeper-webportal/internal/config"
	"github.com/davidrmellors/peeper-webportal/internal/organisation"
	"github.com/davidrmellors/peeper-webportal/internal/report"
	"github.com/davidrmellors/peeper-webportal/internal/staticmap"
	"github.com/davidrmellors/peeper-webportal/internal/student"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App   *fiber.App
	Cfg   config.Config
	DB    *pgxpool.Pool
	Redis *redis.Client
}

func NewServer(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	s := &Server{
		App:   app,
		Cfg:   cfg,
		DB:    db,
		Redis: redisClient,
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	students := student.NewService(s.DB)
	orgs := organisation.NewCache(organisation.NewService(s.DB), s.Redis)
	maps := staticmap.NewClient(s.Cfg.MapsBaseURL, s.Cfg.MapsAPIKey)
	reports := report.NewService(students, orgs, maps, time.Duration(s.Cfg.ReportTimeoutSec)*time.Second)

	student.RegisterRoutes(s.App.Group("/students"), students)
	organisation.RegisterRoutes(s.App.Group("/organisations"), orgs)
	report.RegisterRoutes(s.App.Group("/reports"), reports)
}
