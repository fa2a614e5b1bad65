/* Copyright (c) 2021 David Bulkow */

package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	. "github.com/dbulkow/roomreserve/api"
	"github.com/dbulkow/roomreserve/internal/session"
	"github.com/spf13/cobra"
)

var (
	long       bool
	quiet      bool
	jsonOutput bool
	sortby     string
	showres    bool
	room       string
)

func init() {
	listCmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List reservations",
		Long: `List reservations

Reservations are listed in start order. Reservations starting today are
marked.
`,
		Args: cobra.NoArgs,
		RunE: list,
	}

	listCmd.Flags().BoolVarP(&long, "long", "l", false, "Long listing")
	listCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Don't display header")
	listCmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "JSON output")
	listCmd.Flags().StringVar(&sortby, "sort-by", "date", "Sort by [date, room]")
	listCmd.Flags().BoolVarP(&showres, "showres", "r", false, "Show reservation id")
	listCmd.Flags().StringVar(&room, "room", "", "Only list this room")

	RootCmd.AddCommand(listCmd)
}

func list(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	var reservations []Reservation
	for _, r := range sess.Store().List() {
		if room != "" && r.Room != room {
			continue
		}
		reservations = append(reservations, r)
	}

	switch sortby {
	case "date":
	case "room":
		sort.Stable(ByRoom(reservations))
	default:
		return fmt.Errorf("unknown sort order \"%s\"", sortby)
	}

	if jsonOutput {
		if reservations == nil {
			reservations = []Reservation{}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "    ")
		return enc.Encode(reservations)
	}

	if len(reservations) == 0 {
		fmt.Fprintln(out, sess.Messages().NoReservations)
		return nil
	}

	today := sess.Messages().Today
	current := now()

	if long {
		for _, r := range reservations {
			badge := ""
			if session.IsToday(r, current) {
				badge = " [" + today + "]"
			}
			fmt.Fprintf(out, "%s\n", r.ID)
			fmt.Fprintf(out, "\t       Room: %s%s\n", r.Room, badge)
			fmt.Fprintf(out, "\tReservation: %s - %s\n", r.Start.Local().Format(datefmt), r.End.Local().Format(datefmt))
			fmt.Fprintf(out, "\t       Name: %s\n", r.ReserverName)
			fmt.Fprintf(out, "\t    Created: %s\n", r.CreatedAt.Local().Format(datefmt))
			fmt.Fprintln(out)
		}
		return nil
	}

	var (
		reslen  = len("Res")
		roomlen = len("Room")
		namelen = len("Name")
		datelen = len(datefmt)
	)

	for _, r := range reservations {
		if l := len(r.ID.String()); l > reslen {
			reslen = l
		}
		if len(r.Room) > roomlen {
			roomlen = len(r.Room)
		}
		if len(r.ReserverName) > namelen {
			namelen = len(r.ReserverName)
		}
	}

	if !quiet {
		if showres {
			fmt.Fprintf(out, "%-*s ", reslen, "Res")
		}
		fmt.Fprintf(out, "%-*s %-*s  %-*s   %-*s\n", roomlen, "Room", namelen, "Name", datelen, "Start", datelen, "End")
		if showres {
			fmt.Fprintf(out, "%s ", strings.Repeat("-", reslen))
		}
		fmt.Fprintf(out, "%s %s  %s   %s\n", strings.Repeat("-", roomlen), strings.Repeat("-", namelen),
			strings.Repeat("-", datelen), strings.Repeat("-", datelen))
	}

	for _, r := range reservations {
		if showres {
			fmt.Fprintf(out, "%-*s ", reslen, r.ID)
		}
		fmt.Fprintf(out, "%-*s %-*s  %-*s - %-*s", roomlen, r.Room, namelen, r.ReserverName,
			datelen, r.Start.Local().Format(datefmt), datelen, r.End.Local().Format(datefmt))
		if session.IsToday(r, current) {
			fmt.Fprintf(out, " %s", today)
		}
		fmt.Fprintln(out)
	}

	return nil
}
