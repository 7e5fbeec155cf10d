package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sakshamkanojia19/wishlist-server/internal/auth"
	"github.com/sakshamkanojia19/wishlist-server/internal/config"
	"github.com/sakshamkanojia19/wishlist-server/internal/data"
	"github.com/sakshamkanojia19/wishlist-server/internal/db"
	"github.com/sakshamkanojia19/wishlist-server/internal/logger"
	"github.com/sakshamkanojia19/wishlist-server/internal/middleware"
	"github.com/sakshamkanojia19/wishlist-server/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log, err := logger.New(cfg.AppEnv)
	if err != nil {
		os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer log.Sync()

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	database, err := db.New(ctx, cfg.MongoURI, cfg.Database)
	if err != nil {
		log.Fatal("mongo connect failed", "err", err)
	}
	if err := database.CreateIndexes(ctx); err != nil {
		log.Fatal("create indexes failed", "err", err)
	}
	log.Info("connected to mongodb", "database", cfg.Database)

	users := data.NewUsersStore(database.UsersCollection())
	wishlists := data.NewWishlistsStore(database.WishlistsCollection())
	invitations := data.NewInvitationsStore(database.InvitationsCollection())

	tokens := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)

	accounts := service.NewAccounts(users, tokens)
	wishlistSvc := service.NewWishlists(wishlists, users)
	invitationSvc := service.NewInvitations(invitations, wishlists, users)

	limiter := middleware.NewLimiterStore(cfg.AuthRateRPM, cfg.AuthRateRPM, 5*time.Minute)
	defer limiter.Stop()

	srv := newServer(accounts, wishlistSvc, invitationSvc, log)
	router := newRouter(srv, tokens, users, limiter, cfg.ClientOrigins, log)

	httpSrv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "port", cfg.Port, "env", cfg.AppEnv)
		errCh <- httpSrv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", "err", err)
		}
	case sig := <-stop:
		log.Info("shutting down", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			log.Error("server shutdown failed", "err", err)
		}
		if err := database.Close(shutdownCtx); err != nil {
			log.Error("mongo disconnect failed", "err", err)
		}
	}

	log.Info("server stopped")
}
