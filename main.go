// SignalForge is a retail-trading content service: trading signals, market
// analyses, blog posts and an indicator catalog, gated by a session-based
// auth layer with an admin role resolved from the profiles table.
//
// @title SignalForge API
// @version 1.0
// @description Trading signals, market analyses and blog content with session-based auth.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	"github.com/user/signalforge-go/account"
	"github.com/user/signalforge-go/analyses"
	"github.com/user/signalforge-go/authstate"
	"github.com/user/signalforge-go/background"
	"github.com/user/signalforge-go/blog"
	"github.com/user/signalforge-go/config"
	"github.com/user/signalforge-go/db"
	_ "github.com/user/signalforge-go/docs"
	"github.com/user/signalforge-go/guard"
	"github.com/user/signalforge-go/indicators"
	"github.com/user/signalforge-go/newsletter"
	"github.com/user/signalforge-go/profiles"
	"github.com/user/signalforge-go/signals"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := run(logger); err != nil {
		logger.Fatal("service failed", zap.Error(err))
	}
}

func run(log *zap.Logger) error {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		log.Info("no .env file loaded", zap.Error(err))
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	if err := db.RunMigrations(cfg.DB, "./migrations"); err != nil {
		return err
	}

	pool, err := db.NewPool(cfg.DB)
	if err != nil {
		return err
	}
	defer pool.Close()

	feed := account.NewFeed()
	accounts := account.NewService(pool, *cfg.Auth, *cfg.OAuth, feed, log)
	accountHandlers := account.NewHandlers(accounts, log)

	profileSvc := profiles.NewService(pool, log)
	profileHandlers := profiles.NewHandlers(profileSvc, accounts, log)
	roles := profiles.NewResolver(pool, log)

	guards := guard.NewMiddleware(accounts, roles, log)

	clientFactory := func(ctx context.Context, accessToken string) (account.Backend, func()) {
		client := account.NewClientWithToken(ctx, accounts, accessToken)
		return client, client.Close
	}
	stateHandlers := authstate.NewHandlers(clientFactory, roles, profileSvc, log)

	signalSvc := signals.NewService(pool, log)
	signalHandlers := signals.NewHandlers(signalSvc, log)
	analysisSvc := analyses.NewService(pool, log)
	analysisHandlers := analyses.NewHandlers(analysisSvc, log)
	blogSvc := blog.NewService(pool, log)
	blogHandlers := blog.NewHandlers(blogSvc, log)
	indicatorHandlers := indicators.NewHandlers(indicators.NewCatalog())
	newsletterHandlers := newsletter.NewHandlers(newsletter.NewService(pool, log))

	sweeperStop := make(chan struct{})
	background.StartOAuthCodeSweeper(accounts, log, sweeperStop)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(log))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Route("/auth", func(r chi.Router) {
		accountHandlers.RegisterRoutes(r)
		r.Get("/state", stateHandlers.HandleState())
		r.Get("/events", stateHandlers.HandleEvents())
	})

	r.Route("/signals", func(r chi.Router) {
		signalHandlers.RegisterPublicRoutes(r)
		r.Group(func(r chi.Router) {
			r.Use(guards.RequireAdmin)
			signalHandlers.RegisterAdminRoutes(r)
		})
	})
	r.Route("/analyses", func(r chi.Router) {
		analysisHandlers.RegisterPublicRoutes(r)
		r.Group(func(r chi.Router) {
			r.Use(guards.RequireAdmin)
			analysisHandlers.RegisterAdminRoutes(r)
		})
	})
	r.Route("/blog", func(r chi.Router) {
		blogHandlers.RegisterPublicRoutes(r)
		r.Group(func(r chi.Router) {
			r.Use(guards.RequireAdmin)
			blogHandlers.RegisterAdminRoutes(r)
		})
	})
	r.Route("/indicators", indicatorHandlers.RegisterRoutes)
	r.Route("/newsletter", newsletterHandlers.RegisterRoutes)

	r.Route("/api/profile", func(r chi.Router) {
		r.Use(guards.RequireUser)
		profileHandlers.RegisterRoutes(r)
	})

	r.Route("/dashboard", func(r chi.Router) {
		r.Use(guards.RequireUser)
		r.Get("/*", func(w http.ResponseWriter, req *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
	})

	// Admin shell pages render nothing themselves; the layout guard decides
	// whether the client may stay on the page at all.
	r.Route("/admin", func(r chi.Router) {
		r.Use(guards.AdminLayout)
		r.Get("/*", func(w http.ResponseWriter, req *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // SSE connections on /auth/events stay open
		IdleTimeout:  120 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		close(sweeperStop)
		return err
	case sig := <-quit:
		log.Info("shutting down", zap.String("signal", sig.String()))
	}

	close(sweeperStop)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return err
	}
	log.Info("server stopped")
	return nil
}

// requestLogger emits one structured line per request.
func requestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}
