// Copyright © 2018 Victor Tran
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/tranvictor/abiscope/config"
	"github.com/tranvictor/abiscope/networks"
)

var rootCmd = &cobra.Command{
	Use:   "abiscope",
	Short: "Resolve a contract address into a best-effort ABI",
	Long: fmt.Sprintf(`Abiscope resolves a contract address (or a human-readable name from your
address book) into the best ABI description it can assemble, layering three
sources from most to least trustworthy:

	1. Verified-source registries (Etherscan and friends). A verified ABI
	ends the search immediately.

	2. Static inspection of the deployed bytecode: 4-byte selectors are
	recovered from the contract's dispatch table. By default everything
	beyond the bare selector is discarded as unreliable; pass
	--experimental to keep the heuristic guesses.

	3. Public signature databases (openchain.xyz, 4byte.directory), which
	map selectors back to candidate human-readable signatures.

Supported networks: %s.
Custom RPC nodes come from per-network env vars (e.g. ETHEREUM_MAINNET_NODE);
your own etherscan API key from ETHERSCAN_API_KEY. Both can live in a .env
file in the working directory or in ~/.abiscope/config.yaml.`,
		strings.Join(networks.SupportedNetworkNames(), ", "),
	),
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	// flags beat rc file beats built-in defaults
	godotenv.Load()
	rc, err := config.LoadRC()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defaultNetwork := rc.Network
	if defaultNetwork == "" {
		defaultNetwork = "mainnet"
	}

	rootCmd.PersistentFlags().StringVarP(&config.Network, "network", "k", defaultNetwork,
		fmt.Sprintf("network to resolve on. Valid values: %s", strings.Join(networks.SupportedNetworkNames(), ", ")))
	rootCmd.PersistentFlags().StringVar(&config.AddressBookPath, "address-book", rc.AddressBookPath,
		"JSON file mapping addresses to names, used to resolve names to addresses")
	rootCmd.PersistentFlags().BoolVar(&config.NoCache, "no-cache", false,
		"skip the on-disk registry ABI cache")
	rootCmd.PersistentFlags().BoolVar(&config.JSONOutput, "json", false,
		"print the resolved ABI as JSON instead of tables")
	rootCmd.PersistentFlags().BoolVarP(&config.Verbose, "verbose", "v", false,
		"report per-stage progress and non-fatal errors")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
