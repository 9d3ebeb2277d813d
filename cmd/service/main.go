package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"plume/internal/buildinfo"
	"plume/internal/infrastructure/fixture"
	"plume/internal/service"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "plume",
		Short:        "Plume e-signature API",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDefault(cmd, configPath)
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config.yaml (default: search . and ./config)")

	root.AddCommand(
		newServeCmd(&configPath),
		newServiceCmd(&configPath),
		newFixturesCmd(),
		newVersionCmd(),
	)
	return root
}

// runDefault lets the service manager start the bare binary; from a
// console it behaves like serve
func runDefault(cmd *cobra.Command, configPath string) error {
	isService, err := service.IsWindowsService()
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: could not determine if running as service: %v\n", err)
	}
	if isService {
		if err := chdirToExecutable(); err != nil {
			return err
		}
		return service.RunService(false, service.NewApplication(configPath))
	}
	return serve(cmd, configPath)
}

func serve(cmd *cobra.Command, configPath string) error {
	fmt.Fprintln(cmd.OutOrStdout(), buildinfo.String())
	fmt.Fprintln(cmd.OutOrStdout(), "Running in console mode. Press Ctrl+C to stop.")
	return service.NewApplication(configPath).Run()
}

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the API in the foreground",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd, *configPath)
		},
	}
}

// chdirToExecutable makes config.yaml next to the binary discoverable when
// the service manager starts us from system32
func chdirToExecutable() error {
	exePath, err := os.Executable()
	if err != nil {
		return err
	}
	return os.Chdir(filepath.Dir(exePath))
}

func newServiceCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "service",
		Short: "Manage the Windows service",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "install",
			Short: "Install and start the service",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				exePath, err := os.Executable()
				if err != nil {
					return err
				}
				if err := service.InstallService(exePath); err != nil {
					return fmt.Errorf("failed to install service: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Service installed successfully")

				if err := service.StartService(); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "Warning: failed to start service: %v\n", err)
					fmt.Fprintln(cmd.OutOrStdout(), "You may need to start the service manually")
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Service started")
				return nil
			},
		},
		&cobra.Command{
			Use:   "uninstall",
			Short: "Stop and remove the service",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				_ = service.StopService()
				if err := service.UninstallService(); err != nil {
					return fmt.Errorf("failed to uninstall service: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Service uninstalled successfully")
				return nil
			},
		},
		&cobra.Command{
			Use:   "start",
			Short: "Start the installed service",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := service.StartService(); err != nil {
					return fmt.Errorf("failed to start service: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Service started")
				return nil
			},
		},
		&cobra.Command{
			Use:   "stop",
			Short: "Stop the running service",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := service.StopService(); err != nil {
					return fmt.Errorf("failed to stop service: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Service stopped")
				return nil
			},
		},
		&cobra.Command{
			Use:   "debug",
			Short: "Run under the service debugger in this console",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return service.RunService(true, service.NewApplication(*configPath))
			},
		},
	)
	return cmd
}

func newFixturesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fixtures",
		Short: "Inspect fixture data",
	}

	var dir string
	check := &cobra.Command{
		Use:   "check",
		Short: "Load and cross-check fixtures, then print counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fsys, source := fixture.Embedded(), "embedded"
			if dir != "" {
				fsys, source = os.DirFS(dir), dir
			}

			set, err := fixture.Load(fsys)
			if err != nil {
				return fmt.Errorf("%s: %w", source, err)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(set.Counts())
		},
	}
	check.Flags().StringVar(&dir, "dir", "", "fixture directory (default: embedded fixtures)")

	cmd.AddCommand(check)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), buildinfo.String())
		},
	}
}
