package main

import (
	"context"
	"database/sql"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/gofiber/template/django/v3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	useradmin "github.com/imanager/go-useradmin"
	"github.com/imanager/go-useradmin/redisstore"
)

func main() {
	ctx := context.Background()

	db, err := openDatabase(ctx)
	if err != nil {
		log.Fatal(err)
	}

	engine, err := viewEngine()
	if err != nil {
		log.Fatal(err)
	}

	app := fiber.New(fiber.Config{
		Views: engine,
	})

	sessions := session.New(sessionConfig())

	cfg := useradmin.NewAppConfigFromEnv()
	repo := useradmin.NewRepositoryManager(db)
	repo.MustValidate()

	mailer := useradmin.NewSMTPMailer(
		envOr("USERADMIN_SMTP_ADDR", "localhost:25"),
		os.Getenv("USERADMIN_SMTP_USER"),
		os.Getenv("USERADMIN_SMTP_PASSWORD"),
		cfg.GetMailFrom(),
	)

	processor := useradmin.NewProcessor(repo, mailer, cfg)
	controller := useradmin.NewController(processor, sessions)

	useradmin.RegisterRoutes(app, controller)

	go func() {
		if err := app.Listen(envOr("USERADMIN_LISTEN", ":8080")); err != nil {
			log.Fatal(err)
		}
	}()

	waitExitSignal()

	if err := app.Shutdown(); err != nil {
		log.Printf("shutdown: %v", err)
	}
}

func openDatabase(ctx context.Context) (*bun.DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, envOr("USERADMIN_DSN", "file:useradmin.db?cache=shared"))
	if err != nil {
		return nil, err
	}

	db := bun.NewDB(sqldb, sqlitedialect.New())

	if _, err := db.NewCreateTable().
		Model((*useradmin.Account)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return nil, err
	}

	return db, nil
}

func viewEngine() (*django.Engine, error) {
	views, err := fs.Sub(useradmin.GetViewsFS(), "views")
	if err != nil {
		return nil, err
	}
	return django.NewFileSystem(http.FS(views), ".html"), nil
}

func sessionConfig() session.Config {
	cfg := session.ConfigDefault

	if addr := os.Getenv("USERADMIN_REDIS_ADDR"); addr != "" {
		cfg.Storage = redisstore.New(redisstore.Config{
			Addr:     addr,
			Password: os.Getenv("USERADMIN_REDIS_PASSWORD"),
		})
	}

	return cfg
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func waitExitSignal() os.Signal {
	ch := make(chan os.Signal, 3)
	signal.Notify(ch,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	return <-ch
}
