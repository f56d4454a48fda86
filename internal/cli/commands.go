package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/bilgehannal/dnsredir/internal/config"
	"github.com/bilgehannal/dnsredir/internal/env"
	"github.com/bilgehannal/dnsredir/internal/storage"
	"github.com/bilgehannal/dnsredir/pkg/dnsredir"
	"github.com/spf13/cobra"
)

var (
	configPath string
)

// NewRootCommand creates the root command for dnsredirctl
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dnsredirctl",
		Short: "dnsredir hosts-file redirection management tool",
		Long:  `dnsredirctl is a CLI tool for inspecting and managing dnsredir hostname redirections.`,
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultConfigPath, "Path to config file")

	// Add subcommands
	cmd.AddCommand(newEntriesCommand())
	cmd.AddCommand(newResolveCommand())
	cmd.AddCommand(newSelectCommand())
	cmd.AddCommand(newCheckCommand())
	cmd.AddCommand(newSetEmummcCommand())
	cmd.AddCommand(newSetBindCommand())

	return cmd
}

// buildResolver constructs a resolver from the config and loads the
// redirection table, provisioning the default hosts file if needed.
func buildResolver(cfg *config.Config) (*dnsredir.Resolver, error) {
	st, err := storage.NewDir(cfg.StorageRoot)
	if err != nil {
		return nil, err
	}

	resolver := dnsredir.New(st, env.NewEmummc(cfg.Emummc.Active, cfg.Emummc.ID))
	if err := resolver.Initialize(cfg.AddDefaults); err != nil {
		return nil, fmt.Errorf("failed to initialize redirections: %w", err)
	}

	return resolver, nil
}

// newEntriesCommand creates the entries command
func newEntriesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "entries",
		Short: "List the loaded redirection entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			resolver, err := buildResolver(cfg)
			if err != nil {
				return err
			}

			PrintEntries(resolver.Entries())
			return nil
		},
	}
}

// newResolveCommand creates the resolve command
func newResolveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <hostname>",
		Short: "Resolve a hostname against the redirection table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			resolver, err := buildResolver(cfg)
			if err != nil {
				return err
			}

			addr, found := resolver.Resolve(args[0])
			if !found {
				return fmt.Errorf("no redirection for '%s'", args[0])
			}

			fmt.Printf("%s -> %s\n", args[0], addr)
			return nil
		},
	}
}

// newSelectCommand creates the select command
func newSelectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "select",
		Short: "Show which hosts file would be loaded",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			st, err := storage.NewDir(cfg.StorageRoot)
			if err != nil {
				return err
			}

			det := env.NewEmummc(cfg.Emummc.Active, cfg.Emummc.ID)
			path := dnsredir.SelectHostsFile(st, det, func(format string, args ...any) {
				fmt.Printf(format, args...)
			})

			fmt.Printf("Selected %s\n", path)
			return nil
		},
	}
}

// newCheckCommand creates the check command
func newCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "Parse a hosts file and print its entries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := os.Stat(args[0])
			if err != nil {
				return fmt.Errorf("failed to stat hosts file: %w", err)
			}
			if info.Size() >= dnsredir.MaxFileSize {
				return &dnsredir.FileSizeError{Path: args[0], Size: info.Size()}
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read hosts file: %w", err)
			}

			entries, err := dnsredir.Parse(data)
			if err != nil {
				return err
			}

			PrintSuccess("%s parsed cleanly (%d entries)", args[0], len(entries))
			PrintEntries(entries)
			return nil
		},
	}
}

// newSetEmummcCommand creates the set-emummc command
func newSetEmummcCommand() *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:   "set-emummc <on|off>",
		Short: "Set the emulated-storage selection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var active bool
			switch args[0] {
			case "on":
				active = true
			case "off":
				active = false
			default:
				return fmt.Errorf("expected 'on' or 'off', got '%s'", args[0])
			}

			unit, err := strconv.ParseUint(id, 16, 32)
			if err != nil {
				return fmt.Errorf("invalid emummc id '%s': %w", id, err)
			}

			writer := config.NewWriter(configPath)
			if err := writer.SetEmummc(active, uint32(unit)); err != nil {
				return err
			}

			fmt.Printf("✓ Emummc set to %s (id %04x)\n", args[0], unit)
			return nil
		},
	}

	cmd.Flags().StringVarP(&id, "id", "i", "0", "Emummc id (hex)")

	return cmd
}

// newSetBindCommand creates the set-bind command
func newSetBindCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-bind <addr>",
		Short: "Set the DNS listen address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			writer := config.NewWriter(configPath)
			if err := writer.SetBind(args[0]); err != nil {
				return err
			}

			fmt.Printf("✓ Bind address changed to: %s\n", args[0])
			return nil
		},
	}
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
