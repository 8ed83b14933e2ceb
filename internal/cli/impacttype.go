package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var (
	typeFactor uint64
	typeUnit   string
)

var typeCmd = &cobra.Command{
	Use:   "type",
	Short: "Manage impact types (admin only)",
}

var typeRegisterCmd = &cobra.Command{
	Use:   "register <name>",
	Short: "Register or reactivate an impact type",
	Long: `Register an impact type with a conversion factor into the platform's
normalized impact unit. Re-registering an existing name updates the factor
and unit and reactivates the type; already-verified claims are unaffected.

Example:
  verdant --as admin type register reforestation --factor 10 --unit kg-co2`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		defer c.Close()
		if err := c.RegisterImpactType(args[0], typeFactor, typeUnit); err != nil {
			return err
		}
		fmt.Printf("registered impact type %q (factor %s, unit %s)\n",
			args[0], strconv.FormatUint(typeFactor, 10), typeUnit)
		return nil
	},
}

var typeDeactivateCmd = &cobra.Command{
	Use:   "deactivate <name>",
	Short: "Deactivate an impact type",
	Long: `Deactivate an impact type. Claims of this type that finalize later
normalize to zero impact; existing credentials keep their recorded values.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		defer c.Close()
		if err := c.DeactivateImpactType(args[0]); err != nil {
			return err
		}
		fmt.Printf("deactivated impact type %q\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(typeCmd)
	typeCmd.AddCommand(typeRegisterCmd)
	typeCmd.AddCommand(typeDeactivateCmd)

	typeRegisterCmd.Flags().Uint64Var(&typeFactor, "factor", 1, "conversion factor into the normalized unit")
	typeRegisterCmd.Flags().StringVar(&typeUnit, "unit", "", "unit label (e.g. kg-co2)")
	_ = typeRegisterCmd.MarkFlagRequired("unit")
}
