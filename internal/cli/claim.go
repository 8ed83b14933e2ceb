package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"verdant.eco/ledger/ledgerrpc"
	"verdant.eco/ledger/model"
)

var (
	claimProject      uint64
	claimType         string
	claimAmount       uint64
	claimDeadline     uint64
	claimRequired     uint64
	claimEvidenceRef  string
	claimEvidenceFile string
)

var claimCmd = &cobra.Command{
	Use:   "claim",
	Short: "Submit, inspect, and finalize impact claims",
}

var claimSubmitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit an impact claim for a project (project owner only)",
	Long: `Submit a claim asserting a quantity of impact for a project. The
claim stays pending until it collects the required verification weight
before its deadline; validator attestations count one, data-source
attestations count two.

With --evidence-file, the file is archived on the daemon first and the
resulting CID becomes the claim's evidence reference.

Example:
  verdant --as alice claim submit --project 1 --type reforestation \
      --amount 100 --deadline 1767225600 --required 2 --evidence-file plot7.jpg`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		defer c.Close()

		ref := claimEvidenceRef
		if claimEvidenceFile != "" {
			if ref != "" {
				return fmt.Errorf("--evidence-ref and --evidence-file are mutually exclusive")
			}
			data, err := os.ReadFile(claimEvidenceFile)
			if err != nil {
				return err
			}
			ref, err = c.ArchiveEvidence(data)
			if err != nil {
				return fmt.Errorf("archive evidence: %w", err)
			}
			if verbose {
				fmt.Fprintf(os.Stderr, "archived evidence as %s\n", ref)
			}
		}

		id, err := c.SubmitClaim(ledgerrpc.SubmitClaimParams{
			ProjectID:             claimProject,
			ImpactType:            claimType,
			Amount:                claimAmount,
			EvidenceRef:           ref,
			Deadline:              model.Time(claimDeadline),
			RequiredVerifications: claimRequired,
		})
		if err != nil {
			return err
		}
		fmt.Printf("submitted claim %d\n", id)
		return nil
	},
}

var claimShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a claim",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid claim id %q", args[0])
		}
		c, err := newClient()
		if err != nil {
			return err
		}
		defer c.Close()
		claim, err := c.GetClaim(id)
		if err != nil {
			return err
		}
		return printJSON(claim)
	},
}

var claimFinalizeCmd = &cobra.Command{
	Use:   "finalize <id>",
	Short: "Finalize a claim whose deadline has passed",
	Long: `Finalize a pending claim after its verification deadline. Anyone may
call this; the claim verifies if it met its threshold and is rejected
otherwise.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid claim id %q", args[0])
		}
		c, err := newClient()
		if err != nil {
			return err
		}
		defer c.Close()
		status, err := c.FinalizeExpired(id)
		if err != nil {
			return err
		}
		fmt.Printf("claim %d finalized: %s\n", id, status)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(claimCmd)
	claimCmd.AddCommand(claimSubmitCmd)
	claimCmd.AddCommand(claimShowCmd)
	claimCmd.AddCommand(claimFinalizeCmd)

	claimSubmitCmd.Flags().Uint64Var(&claimProject, "project", 0, "project id")
	claimSubmitCmd.Flags().StringVar(&claimType, "type", "", "impact type name")
	claimSubmitCmd.Flags().Uint64Var(&claimAmount, "amount", 0, "claimed amount")
	claimSubmitCmd.Flags().Uint64Var(&claimDeadline, "deadline", 0, "verification deadline (daemon clock)")
	claimSubmitCmd.Flags().Uint64Var(&claimRequired, "required", 1, "required verification weight")
	claimSubmitCmd.Flags().StringVar(&claimEvidenceRef, "evidence-ref", "", "CID of already-archived evidence")
	claimSubmitCmd.Flags().StringVar(&claimEvidenceFile, "evidence-file", "", "file to archive as evidence")
	_ = claimSubmitCmd.MarkFlagRequired("project")
	_ = claimSubmitCmd.MarkFlagRequired("type")
	_ = claimSubmitCmd.MarkFlagRequired("amount")
	_ = claimSubmitCmd.MarkFlagRequired("deadline")
}
