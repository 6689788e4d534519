package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bookstore-catalog/internal/auth"
	"bookstore-catalog/internal/cache"
	"bookstore-catalog/internal/config"
	"bookstore-catalog/internal/database"
	"bookstore-catalog/internal/handlers"
	"bookstore-catalog/internal/logger"
	"bookstore-catalog/internal/middleware"
	"bookstore-catalog/internal/models"
	"bookstore-catalog/internal/repository"
	"bookstore-catalog/internal/routes"
	"bookstore-catalog/internal/service"
)

func main() {
	cfg := config.LoadConfig()
	log := logger.New(logger.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := database.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatal("cannot connect to mongo", zap.Error(err))
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	db := client.Database(cfg.MongoDB)
	if err := database.EnsureIndexes(ctx, db); err != nil {
		log.Fatal("cannot create indexes", zap.Error(err))
	}
	if cfg.AuthSecret == "" {
		log.Warn("AUTH_SECRET is empty, every authenticated route will answer 401")
	}

	timeout := cfg.RequestTimeout
	authors := repository.NewSlugRepository[models.Reference](db.Collection(database.Authors), timeout)
	editorials := repository.NewSlugRepository[models.Reference](db.Collection(database.Editorials), timeout)
	countries := repository.NewSlugRepository[models.Reference](db.Collection(database.Countries), timeout)
	categories := repository.NewSlugRepository[models.Reference](db.Collection(database.Categories), timeout)
	subcategories := repository.NewSlugRepository[models.Subcategory](db.Collection(database.Subcategories), timeout)
	books := repository.NewBookRepository(db.Collection(database.Books), timeout)
	users := repository.NewUserRepository(db.Collection(database.Users), timeout)

	bookService := service.NewBookService(service.BookStores{
		Books:      books,
		Authors:    authors,
		Editorials: editorials,
		Countries:  countries,
		Categories: categories,
	}, cache.New(ctx, cfg.CacheTTL), cfg.BookPageSize)
	userService := service.NewUserService(users)

	if gin.Mode() == gin.DebugMode && cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.Recovery(log),
		middleware.AccessLog(log),
		middleware.NewRateLimiter(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst).Handler(),
	)

	routes.RegisterRoutes(router, routes.Handlers{
		Books:         handlers.NewBookHandler(bookService, log),
		Authors:       handlers.NewReferenceHandler(service.NewReferenceService("author", authors), log),
		Editorials:    handlers.NewReferenceHandler(service.NewReferenceService("editorial", editorials), log),
		Countries:     handlers.NewReferenceHandler(service.NewReferenceService("country", countries), log),
		Categories:    handlers.NewReferenceHandler(service.NewReferenceService("category", categories), log),
		Subcategories: handlers.NewSubcategoryHandler(service.NewSubcategoryService(subcategories, categories), log),
		Users:         handlers.NewUserHandler(userService, log),
		Health:        handlers.NewHealthHandler(database.Pinger{Client: client}),
	}, routes.Guards{
		Auth:  middleware.AuthCheck(auth.NewJWTVerifier(cfg.AuthSecret)),
		Admin: middleware.AdminCheck(userService, log),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("🚀 Server running", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
	log.Info("server stopped")
}
