package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Register and inspect projects",
}

var projectRegisterCmd = &cobra.Command{
	Use:   "register <name>",
	Short: "Register a project owned by the acting identity",
	Long: `Register a project. The owner is automatically authorized as a
validator for the project's claims.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		defer c.Close()
		id, err := c.RegisterProject(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("registered project %d\n", id)
		return nil
	},
}

var projectShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid project id %q", args[0])
		}
		c, err := newClient()
		if err != nil {
			return err
		}
		defer c.Close()
		p, err := c.GetProject(id)
		if err != nil {
			return err
		}
		return printJSON(p)
	},
}

var projectClaimsCmd = &cobra.Command{
	Use:   "claims <id>",
	Short: "List a project's claims",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid project id %q", args[0])
		}
		c, err := newClient()
		if err != nil {
			return err
		}
		defer c.Close()
		claims, err := c.ListProjectClaims(id)
		if err != nil {
			return err
		}
		return printJSON(claims)
	},
}

func init() {
	rootCmd.AddCommand(projectCmd)
	projectCmd.AddCommand(projectRegisterCmd)
	projectCmd.AddCommand(projectShowCmd)
	projectCmd.AddCommand(projectClaimsCmd)
}
