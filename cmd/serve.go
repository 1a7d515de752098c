package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"episodemap/galaxy/internal/engine"
	"episodemap/galaxy/internal/graph"
	"episodemap/galaxy/internal/logger"
	"episodemap/galaxy/internal/server"
)

var (
	serveAddr string
	serveFPS  int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the live layout loop and serve frames over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.Get()

		addr := cfg.Server.Addr
		if cmd.Flags().Changed("addr") {
			addr = serveAddr
		}
		fps := cfg.Server.FPS
		if cmd.Flags().Changed("fps") {
			fps = serveFPS
		}

		d, err := OpenDatabase()
		if err != nil {
			return err
		}
		scene, err := loadScene(d, cfg.Graph.Seed)
		if err != nil {
			d.Close()
			return err
		}
		facets := graph.Facets(scene.Full().Items())
		// everything the server needs is in memory now
		d.Close()

		if cfg.IsProduction() {
			gin.SetMode(gin.ReleaseMode)
		}
		eng := engine.New(scene, engine.Options{FPS: fps, Logger: log})
		srv := &http.Server{
			Addr:    addr,
			Handler: server.New(eng, facets, log).Router(),
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		g, ctx := errgroup.WithContext(ctx)

		g.Go(func() error {
			return eng.Run(ctx)
		})
		g.Go(func() error {
			log.Info("Server started", zap.String("addr", addr), zap.Int("fps", fps))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("http server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			log.Info("Shutting down server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Error("Server forced to shutdown", zap.Error(err))
			}
			return nil
		})

		err = g.Wait()
		log.Info("Server exited")
		return err
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "HTTP listen address")
	serveCmd.Flags().IntVar(&serveFPS, "fps", 60, "Layout ticks per second")
	rootCmd.AddCommand(serveCmd)
}
