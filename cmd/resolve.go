package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/tranvictor/abiscope/config"
	"github.com/tranvictor/abiscope/resolver"
	"github.com/tranvictor/abiscope/ui"
)

// the resolver has no internal timeout; the whole pipeline gets one deadline
const resolveTimeout = 2 * time.Minute

var resolveCmd = &cobra.Command{
	Use:   "resolve <address or name>",
	Short: "Resolve an address into the best ABI available",
	Long: `Resolve an address (or an address-book name) into a best-effort ABI.
A verified registry ABI is returned as-is. Otherwise the deployed bytecode is
scanned for selectors, which are then enriched from public signature
databases. Lookup misses are not errors: the output just carries less detail,
down to a bare selector list.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		u := ui.NewTerminalUI()
		defer u.Done()

		network, err := currentNetwork()
		if err != nil {
			return err
		}
		cfg, err := buildResolveConfig(network, u)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), resolveTimeout)
		defer cancel()

		result, err := resolver.Resolve(ctx, args[0], cfg)
		if err != nil {
			return err
		}
		u.Done()
		return printABI(u, result)
	},
}

func init() {
	resolveCmd.Flags().BoolVar(&config.NoRegistry, "no-registry", false,
		"skip verified-source registries")
	resolveCmd.Flags().BoolVar(&config.NoSigDB, "no-sigdb", false,
		"skip signature-database enrichment")
	resolveCmd.Flags().BoolVarP(&config.Experimental, "experimental", "x", false,
		"keep heuristic metadata extracted from bytecode (types, mutability, event topics)")
	rootCmd.AddCommand(resolveCmd)
}
