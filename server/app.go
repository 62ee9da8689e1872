package server

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"octopus/config"
	"octopus/internal/api"
	"octopus/internal/auth"
	"octopus/internal/db"
	"octopus/internal/health"
	"octopus/internal/logs"
	"octopus/internal/middleware"
	"octopus/internal/models"
	"octopus/internal/repo"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type App struct {
	cfg        *config.Config
	db         *gorm.DB
	Router     *mux.Router
	httpServer *http.Server

	ctx    context.Context
	cancel context.CancelFunc
}

func (a *App) Initialize(cfg *config.Config) {
	a.cfg = cfg

	/* 1) Логи */
	logs.Init(logs.Options{
		Level:  a.cfg.Logging.Level,
		Format: a.cfg.Logging.Format,
		File:   a.cfg.Logging.File,
	})

	/* 2) DB */
	d, err := db.Open(a.cfg.Database.Driver, a.cfg.Database.DSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	a.db = d

	if err := a.db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Ticket{},
		&models.WikiPage{},
		&models.InventoryItem{},
		&models.TwoFactorChallenge{},
	); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	users := repo.NewUserStore(a.db)
	projects := repo.NewProjectStore(a.db)
	tickets := repo.NewTicketStore(a.db)
	wikis := repo.NewWikiStore(a.db)
	inventory := repo.NewInventoryStore(a.db)
	challenges := repo.NewTwoFactorStore(a.db)
	stats := repo.NewStatsStore(a.db)

	tokens := auth.NewTokenService(
		[]byte(a.cfg.Auth.SecretKey),
		time.Duration(a.cfg.Auth.TokenTTLHours)*time.Hour,
	)
	authSvc := auth.NewService(users, challenges, tokens)

	if err := a.bootstrapAdmin(users); err != nil {
		log.Fatalf("bootstrap admin failed: %v", err)
	}

	/* 3) Router + middleware */
	a.Router = mux.NewRouter().StrictSlash(true)
	a.Router.Use(
		middleware.RequestID,
		middleware.Recoverer,
		middleware.LoggerMW,
	)

	/* 4) Health */
	health.RegisterRoutes(a.Router, a.db)

	/* 5) API */
	h := api.NewHandler(authSvc, users, projects, tickets, wikis, inventory, stats)
	api.RegisterRoutes(a.Router, h, auth.RequireAuth(tokens, users))

	/* (необязательно) вывести известные маршруты в лог при старте */
	_ = a.Router.Walk(func(rt *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		path, _ := rt.GetPathTemplate()
		methods, _ := rt.GetMethods()
		if len(methods) == 0 {
			methods = []string{"ANY"}
		}
		log.Printf("route: %-6v %s", methods, path)
		return nil
	})
}

// bootstrapAdmin создаёт стартового администратора, если его ещё нет.
func (a *App) bootstrapAdmin(users *repo.UserStore) error {
	email := a.cfg.Auth.BootstrapAdminEmail
	password := a.cfg.Auth.BootstrapAdminPassword
	if email == "" || password == "" {
		logs.Logger.Warn("bootstrap admin not configured, skipping")
		return nil
	}

	ctx := context.Background()
	existing, err := users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	if err := users.Create(ctx, &models.User{
		Email:          email,
		FullName:       "Administrator",
		HashedPassword: hash,
		Role:           models.RoleAdmin,
		IsActive:       true,
	}); err != nil {
		return err
	}
	logs.Logger.Infof("bootstrap admin created: %s", email)
	return nil
}

func (a *App) Run() error {
	if a.Router == nil || a.cfg == nil {
		return fmt.Errorf("server not initialized")
	}

	bind := net.JoinHostPort(a.cfg.Server.Address, a.cfg.Server.HTTPPort)

	a.ctx, a.cancel = context.WithCancel(context.Background())
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		s := <-sigs
		logs.Logger.Infof("shutdown signal: %s", s)
		a.cancel()
	}()

	origins := a.cfg.CORS.Origins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	root := handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions,
		}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type", "X-Request-Id"}),
		handlers.AllowCredentials(),
	)(a.Router)

	// Жёсткие таймауты — это важно для production
	a.httpServer = &http.Server{
		Addr:              bind,
		Handler:           root,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logs.Logger.Infof("HTTP listening on %s", bind)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logs.Logger.Fatalf("http server error: %v", err)
		}
	}()

	<-a.ctx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.httpServer.Shutdown(ctx); err != nil {
		logs.Logger.Errorf("http shutdown: %v", err)
	}
	return nil
}
