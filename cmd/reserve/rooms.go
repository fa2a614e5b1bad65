/* Copyright (c) 2021 David Bulkow */

package main

import (
	"fmt"
	"strings"

	"github.com/dbulkow/roomreserve/internal/session"
	"github.com/spf13/cobra"
)

func init() {
	roomsCmd := &cobra.Command{
		Use:   "rooms",
		Short: "List bookable rooms",
		Long:  "List the configured rooms and whether each is reserved right now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			current := now()
			for _, r := range sess.Rooms() {
				busy := sess.Store().Overlapping(r, current, current.Add(1))
				if len(busy) > 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\tin use by %s until %s\n", r, busy[0].ReserverName, busy[0].End.Local().Format(datefmt))
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\tfree\n", r)
				}
			}
			return nil
		},
	}

	slotsCmd := &cobra.Command{
		Use:   "slots",
		Short: "List time of day choices",
		Long:  "List the quarter hour times offered by reservation forms",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(session.TimeSlots(), " "))
		},
	}

	RootCmd.AddCommand(roomsCmd, slotsCmd)
}
