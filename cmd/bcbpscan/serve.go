package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/gyeh/bcbpscan/internal/api"
	"github.com/gyeh/bcbpscan/internal/exitcode"
	"github.com/gyeh/bcbpscan/internal/logging"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the code registries and the decode endpoint over HTTP",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&cfg.ListenAddr, "listen", os.Getenv("BCBP_LISTEN"), "Listen address (or set BCBP_LISTEN)")
	addCityFlags(serveCmd)
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	cities := loadCities(log)

	gin.SetMode(gin.ReleaseMode)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := api.NewServer(log, cities).Run(ctx, cfg.ListenAddr); err != nil {
		log.Error().Err(err).Msg("http server failed")
		stop()
		os.Exit(exitcode.ServeError)
	}
	return nil
}
