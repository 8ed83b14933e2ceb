package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var platformCmd = &cobra.Command{
	Use:   "platform",
	Short: "Platform-wide queries",
}

var platformTotalCmd = &cobra.Command{
	Use:   "total",
	Short: "Show the platform-wide verified impact total",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		defer c.Close()
		total, err := c.PlatformTotal()
		if err != nil {
			return err
		}
		fmt.Println(total)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(platformCmd)
	platformCmd.AddCommand(platformTotalCmd)
}
