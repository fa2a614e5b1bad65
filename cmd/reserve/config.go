/* Copyright (c) 2021 David Bulkow */

package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	configCmd := &cobra.Command{
		Use:     "config",
		Aliases: []string{"cfg"},
		Short:   "Write or display configuration fields",
		Long:    "Write or display configuration fields",
		Args:    cobra.NoArgs,
		RunE:    configure,
	}

	RootCmd.AddCommand(configCmd)
}

func configure(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	reader := bufio.NewReader(cmd.InOrStdin())

	prompt := func(label, current string) string {
		if current == "" {
			fmt.Fprintf(out, "%s: ", label)
		} else {
			fmt.Fprintf(out, "%s (default \"%s\"): ", label, current)
		}
		text, _ := reader.ReadString('\n')
		text = strings.TrimSpace(text)
		if text == "" {
			return current
		}
		return text
	}

	cfg.Name = prompt("Full Name    ", cfg.Name)
	if cfg.Name == "" {
		return errors.New("Name not entered")
	}

	cfg.Locale = prompt("Locale (ja/en)", cfg.Locale)

	rooms := prompt("Rooms        ", strings.Join(cfg.Rooms, ","))
	cfg.Rooms = nil
	for _, r := range strings.Split(rooms, ",") {
		if r = strings.TrimSpace(r); r != "" {
			cfg.Rooms = append(cfg.Rooms, r)
		}
	}

	cfg.Slot = prompt("Slot         ", cfg.Slot)

	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := cfg.Save(conffile); err != nil {
		return fmt.Errorf("Unable to write config data %v", err)
	}

	fmt.Fprintf(out, "wrote %s\n", conffile)

	return nil
}
