package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"

	"github.com/tranvictor/abiscope/config"
	"github.com/tranvictor/abiscope/resolver"
	"github.com/tranvictor/abiscope/selectors"
	"github.com/tranvictor/abiscope/ui"
)

var selectorsCmd = &cobra.Command{
	Use:   "selectors <address or 0x-bytecode>",
	Short: "Dump raw candidate selectors extracted from bytecode",
	Long: `Scan deployed bytecode for candidate 4-byte selectors without consulting
any registry or signature database. The argument is either a contract address
(the bytecode is fetched from the network) or raw deployed bytecode as a hex
string. With --experimental the heuristic metadata and candidate event topics
are printed too.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		u := ui.NewTerminalUI()
		defer u.Done()

		code, err := bytecodeFromArg(cmd.Context(), args[0], u)
		if err != nil {
			return err
		}

		candidates := selectors.Extract(code)
		if !config.Experimental {
			candidates = resolver.Filter(candidates)
		}
		u.Done()
		return printABI(u, candidates)
	},
}

func bytecodeFromArg(ctx context.Context, arg string, u ui.UI) ([]byte, error) {
	if resolver.IsAddress(arg) {
		network, err := currentNetwork()
		if err != nil {
			return nil, err
		}
		p, err := buildProvider(network, u)
		if err != nil {
			return nil, err
		}
		ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		u.Busy(fmt.Sprintf("fetching bytecode of %s", arg))
		return p.GetCode(ctx, arg)
	}
	if strings.HasPrefix(arg, "0x") {
		code, err := hexutil.Decode(arg)
		if err != nil {
			return nil, fmt.Errorf("'%s' is neither an address nor valid hex bytecode: %w", arg, err)
		}
		return code, nil
	}
	return nil, fmt.Errorf("'%s' is neither an address nor 0x-prefixed bytecode", arg)
}

func init() {
	selectorsCmd.Flags().BoolVarP(&config.Experimental, "experimental", "x", false,
		"keep heuristic metadata extracted from bytecode (types, mutability, event topics)")
	rootCmd.AddCommand(selectorsCmd)
}
