package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"verdant.eco/ledger/model"
)

var (
	sourceInterface   string
	sourceName        string
	sourceDescription string
)

var sourceCmd = &cobra.Command{
	Use:   "source",
	Short: "Manage external data sources (admin only)",
}

var sourceRegisterCmd = &cobra.Command{
	Use:   "register <source-id>",
	Short: "Register a data source and bind its interface identity",
	Long: `Register an external data source platform-wide. Only the bound
interface identity may submit readings on the source's behalf; source
attestations count double toward a claim's verification threshold.

Example:
  verdant --as admin source register sat-feed-1 --interface satco --name "Satellite feed"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		defer c.Close()
		if err := c.RegisterDataSource(args[0], model.Identity(sourceInterface), sourceName, sourceDescription); err != nil {
			return err
		}
		fmt.Printf("registered data source %q (interface %s)\n", args[0], sourceInterface)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sourceCmd)
	sourceCmd.AddCommand(sourceRegisterCmd)

	sourceRegisterCmd.Flags().StringVar(&sourceInterface, "interface", "", "identity allowed to submit for this source")
	sourceRegisterCmd.Flags().StringVar(&sourceName, "name", "", "human-readable source name")
	sourceRegisterCmd.Flags().StringVar(&sourceDescription, "description", "", "source description")
	_ = sourceRegisterCmd.MarkFlagRequired("interface")
}
