package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var (
	attestAmount      uint64
	attestComments    string
	attestSourceID    string
	attestReject      bool
	attestEvidenceRef string
)

var attestCmd = &cobra.Command{
	Use:   "attest",
	Short: "Attest to pending claims",
}

var attestApproveCmd = &cobra.Command{
	Use:   "approve <claim-id>",
	Short: "Approve a claim as an authorized validator",
	Long: `Approve a pending claim with an independent estimate. The estimate
folds into the claim's running verified amount; the attestation counts one
toward the threshold.

Example:
  verdant --as bob attest approve 3 --amount 120`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidatorAttest(args[0], true)
	},
}

var attestRejectCmd = &cobra.Command{
	Use:   "reject <claim-id>",
	Short: "Reject a claim as an authorized validator",
	Long: `Reject a pending claim. The attestation still counts toward the
verification threshold; the claim's running estimate is unchanged.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidatorAttest(args[0], false)
	},
}

func runValidatorAttest(arg string, approve bool) error {
	claimID, err := strconv.ParseUint(arg, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid claim id %q", arg)
	}
	c, err := newClient()
	if err != nil {
		return err
	}
	defer c.Close()
	claim, err := c.AttestValidator(claimID, approve, attestAmount, attestComments)
	if err != nil {
		return err
	}
	return printJSON(claim)
}

var attestSourceCmd = &cobra.Command{
	Use:   "source <claim-id>",
	Short: "Submit a data-source reading (interface identity only)",
	Long: `Submit a reading on behalf of a registered data source. The acting
identity must be the source's bound interface. Source attestations count
two toward the threshold and weigh double in the running estimate; a
resubmission by the same source overwrites its stored reading.

Example:
  verdant --as satco attest source 3 --source sat-feed-1 --amount 95`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		claimID, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid claim id %q", args[0])
		}
		c, err := newClient()
		if err != nil {
			return err
		}
		defer c.Close()
		claim, err := c.AttestSource(attestSourceID, claimID, !attestReject, attestAmount, attestEvidenceRef)
		if err != nil {
			return err
		}
		return printJSON(claim)
	},
}

func init() {
	rootCmd.AddCommand(attestCmd)
	attestCmd.AddCommand(attestApproveCmd)
	attestCmd.AddCommand(attestRejectCmd)
	attestCmd.AddCommand(attestSourceCmd)

	attestApproveCmd.Flags().Uint64Var(&attestAmount, "amount", 0, "independent estimate of the impact amount")
	attestApproveCmd.Flags().StringVar(&attestComments, "comments", "", "optional comments")
	_ = attestApproveCmd.MarkFlagRequired("amount")
	attestRejectCmd.Flags().StringVar(&attestComments, "comments", "", "optional comments")

	attestSourceCmd.Flags().StringVar(&attestSourceID, "source", "", "data source id")
	attestSourceCmd.Flags().Uint64Var(&attestAmount, "amount", 0, "source reading")
	attestSourceCmd.Flags().BoolVar(&attestReject, "reject", false, "submit a rejecting reading")
	attestSourceCmd.Flags().StringVar(&attestEvidenceRef, "evidence-ref", "", "CID of supporting evidence")
	_ = attestSourceCmd.MarkFlagRequired("source")
}
