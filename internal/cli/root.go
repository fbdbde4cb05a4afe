package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	configFile string
	quiet      bool
)

var rootCmd = &cobra.Command{
	Use:   "lampd",
	Short: "lampd - MagicLamp token suite daemon",
	Long: `lampd runs the MagicLamp token suite: the ALDN reflected governance
token, the GNI emission token, the MagicLamps NFT collection, the
MagicLampWallet multi-asset vault and the swap-and-liquify module,
served over a JSON-RPC API.`,
	Version: "0.1.0-dev",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "conf", "", "configuration file path")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress output to console after startup")
}
