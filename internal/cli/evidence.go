package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var evidenceOut string

var evidenceCmd = &cobra.Command{
	Use:   "evidence",
	Short: "Archive and fetch claim evidence",
}

var evidencePutCmd = &cobra.Command{
	Use:   "put <file>",
	Short: "Archive a file and print its CID",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		c, err := newClient()
		if err != nil {
			return err
		}
		defer c.Close()
		ref, err := c.ArchiveEvidence(data)
		if err != nil {
			return err
		}
		fmt.Println(ref)
		return nil
	},
}

var evidenceGetCmd = &cobra.Command{
	Use:   "get <cid>",
	Short: "Fetch archived evidence by CID",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		defer c.Close()
		data, err := c.GetEvidence(args[0])
		if err != nil {
			return err
		}
		if evidenceOut == "" || evidenceOut == "-" {
			_, err = os.Stdout.Write(data)
			return err
		}
		return os.WriteFile(evidenceOut, data, 0o644)
	},
	Args: cobra.ExactArgs(1),
}

func init() {
	rootCmd.AddCommand(evidenceCmd)
	evidenceCmd.AddCommand(evidencePutCmd)
	evidenceCmd.AddCommand(evidenceGetCmd)

	evidenceGetCmd.Flags().StringVar(&evidenceOut, "out", "", "write to file instead of stdout")
}
