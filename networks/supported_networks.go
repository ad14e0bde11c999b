package networks

import "time"

const DEFAULT_ETHERSCAN_APIKEY string = "UBB257TI824FC7HUSPT66KZUMGBPRN3IWV"

var EthereumMainnet = Network{
	Name:              "mainnet",
	AlternativeNames:  []string{"ethereum", "eth"},
	ChainID:           1,
	NativeTokenSymbol: "ETH",
	BlockTime:         12 * time.Second,
	NodeVariableName:  "ETHEREUM_MAINNET_NODE",
	DefaultNodes: map[string]string{
		"mainnet-infura":  "https://mainnet.infura.io/v3/247128ae36b6444d944d4c3793c8e3f5",
		"mainnet-ankr":    "https://rpc.ankr.com/eth",
		"mainnet-publicn": "https://ethereum-rpc.publicnode.com",
	},
	BlockExplorerAPIKeyVariableName: "ETHERSCAN_API_KEY",
	BlockExplorerAPIURL:             "https://api.etherscan.io",
	DefaultBlockExplorerAPIKey:      DEFAULT_ETHERSCAN_APIKEY,
}

var Sepolia = Network{
	Name:              "sepolia",
	ChainID:           11155111,
	NativeTokenSymbol: "ETH",
	BlockTime:         12 * time.Second,
	NodeVariableName:  "ETHEREUM_SEPOLIA_NODE",
	DefaultNodes: map[string]string{
		"sepolia-infura":  "https://sepolia.infura.io/v3/247128ae36b6444d944d4c3793c8e3f5",
		"sepolia-publicn": "https://ethereum-sepolia-rpc.publicnode.com",
	},
	BlockExplorerAPIKeyVariableName: "ETHERSCAN_API_KEY",
	BlockExplorerAPIURL:             "https://api.etherscan.io",
	DefaultBlockExplorerAPIKey:      DEFAULT_ETHERSCAN_APIKEY,
}

var BSCMainnet = Network{
	Name:              "bsc",
	AlternativeNames:  []string{"bsc-mainnet", "binance"},
	ChainID:           56,
	NativeTokenSymbol: "BNB",
	BlockTime:         3 * time.Second,
	NodeVariableName:  "BSC_MAINNET_NODE",
	DefaultNodes: map[string]string{
		"binance":  "https://bsc-dataseed.binance.org",
		"defibit":  "https://bsc-dataseed1.defibit.io",
		"ninicoin": "https://bsc-dataseed1.ninicoin.io",
	},
	BlockExplorerAPIKeyVariableName: "ETHERSCAN_API_KEY",
	BlockExplorerAPIURL:             "https://api.etherscan.io",
	DefaultBlockExplorerAPIKey:      DEFAULT_ETHERSCAN_APIKEY,
}

var Polygon = Network{
	Name:              "polygon",
	AlternativeNames:  []string{"matic"},
	ChainID:           137,
	NativeTokenSymbol: "POL",
	BlockTime:         2 * time.Second,
	NodeVariableName:  "POLYGON_MAINNET_NODE",
	DefaultNodes: map[string]string{
		"polygon-rpc":     "https://polygon-rpc.com",
		"polygon-publicn": "https://polygon-bor-rpc.publicnode.com",
	},
	BlockExplorerAPIKeyVariableName: "ETHERSCAN_API_KEY",
	BlockExplorerAPIURL:             "https://api.etherscan.io",
	DefaultBlockExplorerAPIKey:      DEFAULT_ETHERSCAN_APIKEY,
}
