// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"github.com/mdhender/webcfg/pipelines/stages"
	"github.com/mdhender/webcfg/settings"
	store "github.com/mdhender/webcfg/stores/sqlite"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// addDBFlag adds --db to the command. WEBCFG_DB overrides the default.
func addDBFlag(cmd *cobra.Command) {
	cmd.Flags().String("db", "webcfg.db", "path to the SQLite database")
}

func dbPath(cmd *cobra.Command) string {
	if cmd.Flags().Changed("db") {
		path, _ := cmd.Flags().GetString("db")
		return path
	}
	if path := viper.GetString("db"); path != "" {
		return path
	}
	path, _ := cmd.Flags().GetString("db")
	return path
}

func openStore(cmd *cobra.Command) (*store.SQLiteStore, error) {
	return store.NewSQLiteStoreWithConfig(store.StoreConfig{Path: dbPath(cmd)})
}

func cmdInitDB() *cobra.Command {
	var cmd = &cobra.Command{
		Use:          "init-db",
		Short:        "create a new settings database",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := dbPath(cmd)
			if err := store.InitDatabase(path); err != nil {
				return err
			}
			if quiet, _, _ := logLevel(); !quiet {
				log.Printf("%s: created database\n", path)
			}
			return nil
		},
	}
	addDBFlag(cmd)
	return cmd
}

func cmdImport() *cobra.Command {
	withEnvironment := false
	addFlags := func(cmd *cobra.Command) error {
		addDBFlag(cmd)
		cmd.Flags().BoolVar(&withEnvironment, "with-environment", withEnvironment, "fall back to environment variables when resolving Env")
		return nil
	}
	var cmd = &cobra.Command{
		Use:          "import <config-file>...",
		Short:        "record the settings from config files in the database",
		SilenceUsage: true,
		Args:         cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			quiet, verbose, _ := logLevel()

			s, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			opts := []settings.Option{
				settings.WithLogger(libraryLogger()),
				settings.WithParseOptions(parseOptions()...),
			}
			if !withEnvironment {
				opts = append(opts, settings.WithoutEnvironment())
			}
			svc := stages.NewIngestService(s, opts...)

			started := time.Now()
			results, err := svc.IngestFiles(ctx, args)
			for _, result := range results {
				if quiet {
					continue
				}
				if result.Duplicate {
					log.Printf("%s: unchanged (snapshot %d)\n", result.Path, result.SnapshotID)
				} else {
					log.Printf("%s: snapshot %d, %d settings\n", result.Path, result.SnapshotID, len(result.Settings))
				}
			}
			if err != nil {
				reportError(args[len(results)], err)
				return fmt.Errorf("import failed: %s", stages.ErrorCode(err))
			}
			if verbose {
				stats, err := s.Stats(ctx)
				if err != nil {
					return err
				}
				log.Printf("import: %d files in %v: %d snapshots, %d settings stored\n",
					len(results), time.Since(started), stats.Snapshots, stats.Settings)
			}
			return nil
		},
	}
	if err := addFlags(cmd); err != nil {
		log.Fatal(err)
	}
	return cmd
}

func cmdHistory() *cobra.Command {
	var cmd = &cobra.Command{
		Use:          "history",
		Short:        "list the recorded snapshots",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			snapshots, err := s.ListSnapshots(ctx)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tLOADED\tENV\tSHA256\tSOURCE")
			for _, snap := range snapshots {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%.12s\t%s\n",
					snap.ID, snap.LoadedAt.Format(time.RFC3339), snap.Env, snap.SHA256, snap.Source)
			}
			return tw.Flush()
		},
	}
	addDBFlag(cmd)
	return cmd
}

func cmdGet() *cobra.Command {
	var cmd = &cobra.Command{
		Use:          "get <key>",
		Short:        "print the most recently recorded value of a setting",
		SilenceUsage: true,
		Args:         cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			setting, snapshotID, err := s.LookupSetting(ctx, args[0])
			if err != nil {
				return err
			} else if setting == nil {
				return fmt.Errorf("%s: not found", args[0])
			}
			if _, verbose, _ := logLevel(); verbose {
				log.Printf("%s: from snapshot %d\n", setting.Key, snapshotID)
			}
			fmt.Println(setting.Value)
			return nil
		},
	}
	addDBFlag(cmd)
	return cmd
}
