/* Copyright (c) 2021 David Bulkow */

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dbulkow/roomreserve/internal/httpapi"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var listen string

func init() {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve reservations to a local browser",
		Long: `Serve the reservation API on a loopback address

GET    /api/rooms                  - configured rooms
GET    /api/slots                  - time of day choices
GET    /api/reservations           - all reservations in start order
POST   /api/reservations           - create reservation
DELETE /api/reservations/<id>      - cancel reservation
GET    /api/reservations/export    - CSV download
GET    /api/reservations/stream    - websocket list updates
`,
		Args: cobra.NoArgs,
		RunE: serve,
	}

	serveCmd.Flags().StringVar(&listen, "listen", "", "Listen address (defaults to the configured address)")

	RootCmd.AddCommand(serveCmd)
}

func serve(cmd *cobra.Command, args []string) error {
	if listen == "" {
		listen = cfg.Listen
	}

	gin.SetMode(gin.ReleaseMode)

	api := httpapi.New(sess, log)
	defer api.Close()

	srv := &http.Server{
		Addr:           listen,
		Handler:        api.Routes(),
		ReadTimeout:    60 * time.Second,
		WriteTimeout:   60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	go func() {
		<-ctx.Done()

		log.Info("stopping web server")

		shutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdown); err != nil {
			log.Error("shutdown", zap.Error(err))
		}
	}()

	log.Info("serving http", zap.String("addr", listen), zap.Int("reservations", sess.Store().Len()))

	err := srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	log.Info("http server stopped")

	return nil
}
