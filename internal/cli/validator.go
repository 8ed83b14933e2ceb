package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"verdant.eco/ledger/model"
)

var validatorCmd = &cobra.Command{
	Use:   "validator",
	Short: "Manage per-project validator authorizations (project owner only)",
}

var validatorAuthorizeCmd = &cobra.Command{
	Use:   "authorize <project-id> <identity>",
	Short: "Authorize a validator for a project",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		projectID, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid project id %q", args[0])
		}
		c, err := newClient()
		if err != nil {
			return err
		}
		defer c.Close()
		if err := c.AuthorizeValidator(projectID, model.Identity(args[1])); err != nil {
			return err
		}
		fmt.Printf("authorized %s as validator for project %d\n", args[1], projectID)
		return nil
	},
}

var validatorRevokeCmd = &cobra.Command{
	Use:   "revoke <project-id> <identity>",
	Short: "Revoke a validator for a project",
	Long: `Revoke a validator's authorization. Attestations already recorded by
the validator keep counting; only future attestations are blocked.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		projectID, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid project id %q", args[0])
		}
		c, err := newClient()
		if err != nil {
			return err
		}
		defer c.Close()
		if err := c.RevokeValidator(projectID, model.Identity(args[1])); err != nil {
			return err
		}
		fmt.Printf("revoked %s as validator for project %d\n", args[1], projectID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validatorCmd)
	validatorCmd.AddCommand(validatorAuthorizeCmd)
	validatorCmd.AddCommand(validatorRevokeCmd)
}
