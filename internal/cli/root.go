// Package cli implements the verdant command line client for the ledger
// daemon.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"verdant.eco/ledger/ledgerrpc"
	"verdant.eco/ledger/model"
)

var (
	cfgFile  string
	server   string
	identity string
	timeout  time.Duration
	verbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "verdant",
	Short: "Verdant - impact claim verification ledger client",
	Long: `verdant talks to a verdant-ledgerd daemon: register projects and
impact types, submit claims, attest to them as a validator or data-source
interface, and inspect credentials minted for verified claims.

The acting identity is taken from --as (or VERDANT_IDENTITY); the daemon
trusts the transport to have authenticated it.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("verdant v0.3.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.verdant/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&server, "server", "127.0.0.1:7780", "ledger daemon gRPC address")
	rootCmd.PersistentFlags().StringVar(&identity, "as", "", "acting identity")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "per-RPC timeout")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	_ = viper.BindPFlag("server", rootCmd.PersistentFlags().Lookup("server"))
	_ = viper.BindPFlag("identity", rootCmd.PersistentFlags().Lookup("as"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}
		viper.AddConfigPath(home + "/.verdant")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("VERDANT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

func newClient() (*ledgerrpc.Client, error) {
	c, err := ledgerrpc.Dial(viper.GetString("server"), ledgerrpc.DialOptions{
		Identity: model.Identity(viper.GetString("identity")),
		Timeout:  timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", viper.GetString("server"), err)
	}
	c.Timeout = timeout
	return c, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
