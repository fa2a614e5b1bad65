/* Copyright (c) 2021 David Bulkow */

package main

import (
	"errors"
	"fmt"

	. "github.com/dbulkow/roomreserve/api"
	"github.com/dbulkow/roomreserve/internal/session"
	"github.com/spf13/cobra"
)

var (
	name      string
	startDate string
	startTime string
	endDate   string
	endTime   string
)

func init() {
	addCmd := &cobra.Command{
		Use:     "add <room> [<start> <end>]",
		Aliases: []string{"new", "create"},
		Short:   "Add a Reservation",
		Long: `Add a reservation for a room.

Start and end are given either as two date-time arguments:

    reserve add A 2024-06-01T10:00 2024-06-01T11:00

or as separate dates and times of day:

    reserve add A --start-date 2024-06-01 --start-time 10:00 \
                  --end-date 2024-06-01 --end-time 11:00

The reservation is refused when the room is already reserved for any part of
the interval. A reservation ending exactly when another starts is allowed.
`,
		Args: cobra.RangeArgs(1, 3),
		RunE: add,
	}

	addCmd.Flags().StringVar(&name, "name", "", "Reserver name (defaults to the configured name)")
	addCmd.Flags().StringVar(&startDate, "start-date", "", "Start date, YYYY-MM-DD")
	addCmd.Flags().StringVar(&startTime, "start-time", "", "Start time of day, HH:MM")
	addCmd.Flags().StringVar(&endDate, "end-date", "", "End date, YYYY-MM-DD (defaults to start date)")
	addCmd.Flags().StringVar(&endTime, "end-time", "", "End time of day, HH:MM")

	RootCmd.AddCommand(addCmd)
}

func add(cmd *cobra.Command, args []string) error {
	in := session.CreateInput{
		Room:         args[0],
		StartDate:    startDate,
		StartTime:    startTime,
		EndDate:      endDate,
		EndTime:      endTime,
		ReserverName: name,
	}

	switch len(args) {
	case 3:
		in.Start = args[1]
		in.End = args[2]
	case 2:
		return errors.New("start and end must both be given")
	}

	if in.EndDate == "" {
		in.EndDate = in.StartDate
	}

	if in.ReserverName == "" {
		in.ReserverName = cfg.Name
	}

	res := sess.HandleCreateRequest(in)
	if !res.OK() {
		return fmt.Errorf("%s (%v)", res.Message, res.Err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), res.Message)
	printReservation(cmd, *res.Reservation)

	return nil
}

func printReservation(cmd *cobra.Command, r Reservation) {
	fmt.Fprintf(cmd.OutOrStdout(), "\n%s %s %s - %s %s\n", r.ID, r.Room,
		r.Start.Local().Format(datefmt), r.End.Local().Format(datefmt), r.ReserverName)
}
