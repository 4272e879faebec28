// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/replica-keeper/internal/config"
	"github.com/MKhiriev/replica-keeper/models"
)

const appRole = "replica-keeper"

func newRootCmd() *cobra.Command {
	var noConsole bool

	root := &cobra.Command{
		Use:           "replica-keeper",
		Short:         "Keeps a local replica of a sync partition",
		Long:          "replica-keeper downloads a partition into a local SQLite replica, keeps it in sync\nand recovers local changes when the server forces a client reset.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := config.BindFlags(root.PersistentFlags())
	root.PersistentFlags().BoolVar(&noConsole, "no-console", false, "Run without the terminal console")

	root.AddCommand(
		newRunCmd(flags, &noConsole),
		newRestoreCmd(flags),
		newCleanCmd(flags),
		newSeedCmd(flags),
		newVersionCmd(),
	)

	return root
}

func newRunCmd(flags *config.Flags, noConsole *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Open the replica and keep it in sync",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := build(flags, !*noConsole)
			if err != nil {
				return err
			}
			return d.app.Run(cmd.Context())
		},
	}
}

func newRestoreCmd(flags *config.Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "restore",
		Short: "Merge a backup left behind by an interrupted reset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := build(flags, false)
			if err != nil {
				return err
			}
			return d.app.Restore(cmd.Context())
		},
	}
}

func newCleanCmd(flags *config.Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Delete the local replica and any pending backup",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := build(flags, false)
			if err != nil {
				return err
			}
			return d.app.Clean(cmd.Context())
		},
	}
}

func newSeedCmd(flags *config.Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "seed [count]",
		Short: "Insert random records into the replica",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := build(flags, false)
			if err != nil {
				return err
			}

			count := d.cfg.App.SeedCount
			if len(args) == 1 {
				if count, err = strconv.Atoi(args[0]); err != nil {
					return fmt.Errorf("invalid count %q: %w", args[0], err)
				}
			}

			changes, err := d.app.Seed(cmd.Context(), count)
			if err != nil {
				return err
			}
			cmd.Printf("Added %d objects\n", len(changes.Insertions)+len(changes.Modifications))
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			info := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
			cmd.Printf("Build version: %s\n", info.BuildVersion())
			cmd.Printf("Build date: %s\n", info.BuildDate())
			cmd.Printf("Build commit: %s\n", info.BuildCommit())
		},
	}
}
