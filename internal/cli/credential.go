package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"verdant.eco/ledger/model"
)

var credentialCmd = &cobra.Command{
	Use:   "credential",
	Short: "Inspect minted verification credentials",
}

var credentialShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a credential",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid credential id %q", args[0])
		}
		c, err := newClient()
		if err != nil {
			return err
		}
		defer c.Close()
		cred, err := c.GetCredential(id)
		if err != nil {
			return err
		}
		return printJSON(cred)
	},
}

var credentialListCmd = &cobra.Command{
	Use:   "list <owner>",
	Short: "List credentials held by an identity",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		defer c.Close()
		creds, err := c.ListOwnerCredentials(model.Identity(args[0]))
		if err != nil {
			return err
		}
		return printJSON(creds)
	},
}

func init() {
	rootCmd.AddCommand(credentialCmd)
	credentialCmd.AddCommand(credentialShowCmd)
	credentialCmd.AddCommand(credentialListCmd)
}
