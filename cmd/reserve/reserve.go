/* Copyright (c) 2021 David Bulkow */

package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dbulkow/roomreserve/internal/codec"
	"github.com/dbulkow/roomreserve/internal/config"
	"github.com/dbulkow/roomreserve/internal/logging"
	"github.com/dbulkow/roomreserve/internal/session"
	"github.com/dbulkow/roomreserve/internal/slot"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	GitHash   = "unknown"
	BuildTime = "unknown"
)

var RootCmd = &cobra.Command{
	Use:   "reserve",
	Short: "Reserve a meeting room",
	Long: `Reserve a meeting room for a time interval

Reservations are kept in a local slot and never overlap within a room.

environment:
    RESERVE_CONFIG config filename
                   RESERVE_CONFIG_VALUE
    RESERVE_SLOT   slot DSN (memory:, file:<dir>, sqlite:<file>)
    RESERVE_LOCALE ja or en
    RESERVE_ROOMS  comma separated room codes
`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: teardown,
}

var (
	conffile string
	slotdsn  string
	locale   string
	loglevel string

	cfg  *config.Config
	log  *zap.Logger
	kv   slot.Slot
	sess *session.Session
)

// commands that must run without a working slot
var noSession = map[string]bool{
	"config":     true,
	"version":    true,
	"slots":      true,
	"help":       true,
	"completion": true,
	"__complete": true,
}

func setup(cmd *cobra.Command, args []string) error {
	var err error

	cfg, err = config.Load(conffile)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("slot") {
		cfg.Slot = slotdsn
	}
	if cmd.Flags().Changed("locale") {
		cfg.Locale = locale
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = loglevel
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err = logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}

	if noSession[cmd.Name()] {
		return nil
	}

	kv, err = slot.Open(cfg.Slot)
	if err != nil {
		return fmt.Errorf("open slot: %w", err)
	}

	c := codec.New(kv, session.CodecOptions(cfg.Locale)...)

	sess, err = session.Open(c, cfg.Rooms, cfg.Locale, log)
	if err != nil {
		kv.Close()
		return err
	}

	return nil
}

func teardown(cmd *cobra.Command, args []string) {
	if kv != nil {
		if err := kv.Close(); err != nil {
			log.Warn("close slot", zap.Error(err))
		}
		kv = nil
	}
	if log != nil {
		log.Sync()
	}
}

const datefmt = "2006/01/02 15:04"

func init() {
	conffile = os.Getenv("RESERVE_CONFIG")
	if conffile == "" {
		conffile = config.File()
	}

	RootCmd.Long = strings.ReplaceAll(RootCmd.Long, "RESERVE_CONFIG_VALUE", conffile)

	RootCmd.PersistentFlags().StringVar(&conffile, "config", conffile, "config file")
	RootCmd.PersistentFlags().StringVar(&slotdsn, "slot", "", "slot DSN, overrides config")
	RootCmd.PersistentFlags().StringVar(&locale, "locale", "", "message and export locale (ja, en)")
	RootCmd.PersistentFlags().StringVar(&loglevel, "log-level", "", "log level")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Display git hash and build data",
		Long:  "Display git hash and build data",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "Git Commit Hash: %s\n", GitHash)
			fmt.Fprintf(cmd.OutOrStdout(), "Build Time:      %s\n", BuildTime)
		},
	}

	RootCmd.AddCommand(versionCmd)
}

func main() {
	err := RootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// now is replaced in tests.
var now = time.Now
