// Package cli implements storectl, the operator command line for the storefront.
package cli

import (
	"fmt"
	"slices"
	"time"

	"github.com/spf13/cobra"
)

const defaultTimeout = 30 * time.Second

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigDir string
	Format    string // "json" | "text"
	Timeout   time.Duration
	Verbose   bool

	// openStore replaces the configured realtime store; tests inject a memory store.
	openStore storeOpener
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for storectl.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "storectl",
		Short: "Operate the storefront from a terminal",
		Long:  "storectl reads and mutates the storefront's realtime store: list and resolve orders, inspect and rate products, and issue operator tokens.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			if opts.Timeout <= 0 {
				return fmt.Errorf("invalid timeout %s: must be positive", opts.Timeout)
			}

			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().StringVarP(&opts.ConfigDir, "config-dir", "c", "", "directory holding config.yaml (default: ./config)")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().DurationVar(&opts.Timeout, "timeout", defaultTimeout, "how long to wait for the store")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log at the configured level instead of warnings only")

	// Add subcommands
	cmd.AddCommand(NewOrdersCommand(opts))
	cmd.AddCommand(NewProductsCommand(opts))
	cmd.AddCommand(NewTokenCommand(opts))
	cmd.AddCommand(NewIdentityCommand(opts))

	return cmd
}
