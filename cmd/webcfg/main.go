// Copyright (c) 2025 Michael D Henderson. All rights reserved.

// Command webcfg loads web.config style files, prints their settings and
// keeps a history of them in a SQLite database.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mdhender/webcfg"
	"github.com/mdhender/webcfg/settings"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	addFlags := func(cmd *cobra.Command) error {
		cmd.PersistentFlags().Bool("debug", false, "log debugging information")
		cmd.PersistentFlags().Bool("log-with-default-flags", false, "log with default flags")
		cmd.PersistentFlags().Bool("log-with-shortfile", false, "log with short file name")
		cmd.PersistentFlags().Bool("log-with-timestamp", false, "log with timestamp")
		cmd.PersistentFlags().Bool("quiet", false, "log less information")
		cmd.PersistentFlags().Bool("show-version", false, "show version")
		cmd.PersistentFlags().Bool("verbose", false, "log more information")
		cmd.PersistentFlags().Int("max-depth", webcfg.DefaultMaxDepth, "maximum element nesting depth (0 for no limit)")
		for _, name := range []string{"debug", "quiet", "verbose", "max-depth"} {
			if err := viper.BindPFlag(strings.ReplaceAll(name, "-", "_"), cmd.PersistentFlags().Lookup(name)); err != nil {
				return err
			}
		}
		return nil
	}
	var cmdRoot = &cobra.Command{
		Use:   "webcfg",
		Short: "web.config command line utility",
		Long:  `Check, print and record settings from web.config files`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logWithDefaultFlags, _ := cmd.Flags().GetBool("log-with-default-flags")
			logWithShortFileName, _ := cmd.Flags().GetBool("log-with-shortfile")
			logWithTimestamp, _ := cmd.Flags().GetBool("log-with-timestamp")
			logFlags := 0
			if logWithShortFileName {
				logFlags |= log.Lshortfile
			}
			if logWithTimestamp {
				logFlags |= log.Ltime
			}
			if logWithDefaultFlags {
				logFlags = log.LstdFlags
			}
			log.SetFlags(logFlags)

			if showVersion, _ := cmd.Flags().GetBool("show-version"); showVersion {
				fmt.Printf("webcfg: version %q\n", webcfg.Version().Core())
			}

			return nil
		},
	}
	cobra.OnInitialize(initConfig)
	cmdRoot.AddCommand(cmdParse())
	cmdRoot.AddCommand(cmdCheck())
	cmdRoot.AddCommand(cmdSettings())
	cmdRoot.AddCommand(cmdInitDB())
	cmdRoot.AddCommand(cmdImport())
	cmdRoot.AddCommand(cmdHistory())
	cmdRoot.AddCommand(cmdGet())
	cmdRoot.AddCommand(cmdVersion())
	if err := addFlags(cmdRoot); err != nil {
		log.Fatal(err)
	}

	if err := cmdRoot.Execute(); err != nil {
		os.Exit(1)
	}
}

// initConfig lets WEBCFG_* environment variables override flags that are
// read through viper.
func initConfig() {
	viper.SetEnvPrefix("WEBCFG")
	viper.AutomaticEnv()
}

// logLevel returns the verbosity requested by the --quiet, --verbose and
// --debug flags (or the WEBCFG_QUIET, WEBCFG_VERBOSE and WEBCFG_DEBUG
// environment variables).
func logLevel() (quiet, verbose, debug bool) {
	quiet, verbose, debug = viper.GetBool("quiet"), viper.GetBool("verbose"), viper.GetBool("debug")
	if quiet {
		verbose = false
	}
	return quiet, verbose, debug
}

// libraryLogger returns the logger handed to the library packages.
// It is nil, and the libraries silent, unless debugging is on.
func libraryLogger() *slog.Logger {
	if _, _, debug := logLevel(); !debug {
		return nil
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func parseOptions() []webcfg.Option {
	return []webcfg.Option{
		webcfg.WithLogger(libraryLogger()),
		webcfg.WithMaxDepth(viper.GetInt("max_depth")),
	}
}

// reportError prints a diagnostic for parse errors and a plain log line for
// everything else.
func reportError(path string, err error) {
	if diag, ok := webcfg.DiagnosticFromError(err); ok {
		webcfg.PrintDiagnostic(os.Stderr, diag, path)
		return
	}
	log.Printf("%s: %v\n", path, err)
}

func cmdParse() *cobra.Command {
	format := "tree"
	addFlags := func(cmd *cobra.Command) error {
		cmd.Flags().StringVarP(&format, "format", "f", format, "output format (tree, xml, json)")
		return nil
	}
	var cmd = &cobra.Command{
		Use:          "parse <file>",
		Short:        "parse a file and print its element tree",
		SilenceUsage: true,
		Args:         cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := webcfg.Load(args[0], parseOptions()...)
			if err != nil {
				reportError(args[0], err)
				return fmt.Errorf("%s: parse failed", args[0])
			}
			return printTree(os.Stdout, root, format)
		},
	}
	if err := addFlags(cmd); err != nil {
		log.Fatal(err)
	}
	return cmd
}

func printTree(w io.Writer, root *webcfg.Node, format string) error {
	switch strings.ToLower(format) {
	case "tree":
		root.Walk(func(node *webcfg.Node, depth int) bool {
			var sb strings.Builder
			sb.WriteString(strings.Repeat("  ", depth))
			sb.WriteString(node.Name)
			for _, attr := range node.Attributes {
				fmt.Fprintf(&sb, " [%s]", attr)
			}
			fmt.Fprintln(w, sb.String())
			return true
		})
		return nil
	case "xml":
		return webcfg.EncodeIndent(w, root, "  ")
	case "json":
		data, err := json.MarshalIndent(root, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	}
	return fmt.Errorf("unknown format %q: want tree, xml or json", format)
}

func cmdCheck() *cobra.Command {
	var cmd = &cobra.Command{
		Use:          "check <file>...",
		Short:        "check that files are well formed",
		SilenceUsage: true,
		Args:         cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			quiet, verbose, _ := logLevel()
			failed := 0
			for _, path := range args {
				root, err := webcfg.Load(path, parseOptions()...)
				if err != nil {
					failed++
					reportError(path, err)
					continue
				}
				if verbose {
					elements := 0
					root.Walk(func(*webcfg.Node, int) bool { elements++; return true })
					log.Printf("%s: ok: root <%s>, %d elements\n", path, root.Name, elements)
				} else if !quiet {
					log.Printf("%s: ok\n", path)
				}
			}
			if failed != 0 {
				return fmt.Errorf("%d of %d files failed", failed, len(args))
			}
			return nil
		},
	}
	return cmd
}

func cmdSettings() *cobra.Command {
	var contentRoot, webRoot, appName string
	format := "text"
	addFlags := func(cmd *cobra.Command) error {
		cmd.Flags().StringVar(&contentRoot, "content-root", contentRoot, "content root (defaults to the current directory)")
		cmd.Flags().StringVar(&webRoot, "web-root", webRoot, "web root (defaults to <content-root>/wwwroot)")
		cmd.Flags().StringVar(&appName, "app-name", appName, "application name (defaults to the last segment of the content root)")
		cmd.Flags().StringVarP(&format, "format", "f", format, "output format (text, json, yaml, toml)")
		return nil
	}
	var cmd = &cobra.Command{
		Use:          "settings [config-file]",
		Short:        "load settings from a config file and print them",
		SilenceUsage: true,
		Args:         cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputFormat, err := settings.ParseFormat(format)
			if err != nil {
				return err
			}
			if contentRoot == "" {
				if contentRoot, err = os.Getwd(); err != nil {
					return err
				}
			}
			configFile := settings.DefaultConfigFile
			if len(args) == 1 {
				configFile = args[0]
			}

			s, err := settings.Setup(configFile, contentRoot,
				settings.WithWebRoot(webRoot),
				settings.WithAppName(appName),
				settings.WithLogger(libraryLogger()),
				settings.WithParseOptions(parseOptions()...),
			)
			if err != nil {
				path := filepath.Join(contentRoot, configFile)
				reportError(path, err)
				return fmt.Errorf("%s: settings failed", path)
			}
			if _, verbose, _ := logLevel(); verbose {
				log.Printf("settings: %s\n", s.DebugConfig())
			}
			return s.Export(os.Stdout, outputFormat)
		},
	}
	if err := addFlags(cmd); err != nil {
		log.Fatal(err)
	}
	return cmd
}

func cmdVersion() *cobra.Command {
	showBuildInfo := false
	addFlags := func(cmd *cobra.Command) error {
		cmd.Flags().BoolVar(&showBuildInfo, "build-info", showBuildInfo, "show build information")
		return nil
	}
	var cmd = &cobra.Command{
		Use:   "version",
		Short: "display the application's version number",
		RunE: func(cmd *cobra.Command, args []string) error {
			if showBuildInfo {
				fmt.Println(webcfg.Version().String())
				return nil
			}
			fmt.Println(webcfg.Version().Core())
			return nil
		},
	}
	if err := addFlags(cmd); err != nil {
		log.Fatal(err)
	}
	return cmd
}
