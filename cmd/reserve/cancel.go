/* Copyright (c) 2021 David Bulkow */

package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var force bool

func init() {
	cancelCmd := &cobra.Command{
		Use:     "cancel <reservation id>",
		Aliases: []string{"rm", "del", "delete"},
		Short:   "Cancel a reservation",
		Long: `Cancel a reservation

The id is shown by "reserve list --showres". Cancelling frees the interval
for new reservations.
`,
		Args: cobra.ExactArgs(1),
		RunE: cancel,
	}

	cancelCmd.Flags().BoolVarP(&force, "force", "f", false, "Force remove, don't prompt")

	RootCmd.AddCommand(cancelCmd)
}

func cancel(cmd *cobra.Command, args []string) error {
	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("%s (%v)", sess.Messages().NotFound, err)
	}

	res, err := sess.Store().Get(id)
	if err != nil {
		return fmt.Errorf("%s (%v)", sess.Messages().NotFound, err)
	}

	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Cancel the following entry:")
	printReservation(cmd, res)

	if !force {
		reader := bufio.NewReader(cmd.InOrStdin())
		fmt.Fprint(out, "\nProceed? (y/N) ")
		text, _ := reader.ReadString('\n')

		if strings.ToLower(strings.TrimSpace(text)) != "y" {
			return errors.New("cancelled")
		}
	}

	result := sess.HandleCancelRequest(args[0])
	if !result.OK() {
		return fmt.Errorf("%s (%v)", result.Message, result.Err)
	}

	fmt.Fprintln(out, result.Message)

	return nil
}
