package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/wikibase/display"
	"github.com/teranos/wikibase/wikibase"
)

// AddClaimCmd creates a claim
var AddClaimCmd = &cobra.Command{
	Use:   "add-claim <entity> <property>",
	Short: "Create a claim (wbcreateclaim)",
	Long: `Create a value claim on an entity.

Exactly one value flag is required.

Examples:
  wbapi add-claim Q4115189 P31 --item Q5
  wbapi add-claim Q4115189 P585 --time 2013-01-01
  wbapi add-claim Q4115189 P625 --coord 52.52,13.40 --summary "add location"`,
	Args: cobra.ExactArgs(2),
	RunE: runAddClaim,
}

// SetClaimCmd replaces the value of a claim
var SetClaimCmd = &cobra.Command{
	Use:   "set-claim <claim-guid>",
	Short: "Replace the value of a claim (wbsetclaimvalue)",
	Args:  cobra.ExactArgs(1),
	RunE:  runSetClaim,
}

// RemoveClaimsCmd removes claims
var RemoveClaimsCmd = &cobra.Command{
	Use:   "remove-claims <claim-guid>...",
	Short: "Remove claims (wbremoveclaims)",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runRemoveClaims,
}

func init() {
	for _, cmd := range []*cobra.Command{AddClaimCmd, SetClaimCmd, RemoveClaimsCmd} {
		cmd.Flags().String("summary", "", "Edit summary")
		addOptionFlag(cmd)
	}
	addValueFlags(AddClaimCmd)
	addValueFlags(SetClaimCmd)
}

func runAddClaim(cmd *cobra.Command, args []string) error {
	value, err := valueFromFlags(cmd)
	if err != nil {
		return err
	}
	opts, err := optionsFromFlags(cmd)
	if err != nil {
		return err
	}
	summary, _ := cmd.Flags().GetString("summary")

	client, err := connect(cmd)
	if err != nil {
		return err
	}

	resp, err := client.AddClaim(cmd.Context(), args[0], args[1], value, summary, opts)
	if err != nil {
		return err
	}
	return reportEdit(cmd, resp)
}

func runSetClaim(cmd *cobra.Command, args []string) error {
	value, err := valueFromFlags(cmd)
	if err != nil {
		return err
	}
	opts, err := optionsFromFlags(cmd)
	if err != nil {
		return err
	}
	summary, _ := cmd.Flags().GetString("summary")

	client, err := connect(cmd)
	if err != nil {
		return err
	}

	resp, err := client.SetClaim(cmd.Context(), args[0], value, summary, opts)
	if err != nil {
		return err
	}
	return reportEdit(cmd, resp)
}

func runRemoveClaims(cmd *cobra.Command, args []string) error {
	opts, err := optionsFromFlags(cmd)
	if err != nil {
		return err
	}
	summary, _ := cmd.Flags().GetString("summary")

	client, err := connect(cmd)
	if err != nil {
		return err
	}

	resp, err := client.DelClaims(cmd.Context(), splitIDs(args), summary, opts)
	if err != nil {
		return err
	}
	if display.ShouldOutputJSON(cmd) || resp.Error != nil {
		return printResponse(cmd, resp)
	}
	pterm.Success.Printfln("Removed %d claim(s)", len(splitIDs(args)))
	return nil
}

// reportEdit prints the claim an edit produced, or the raw reply in JSON mode
func reportEdit(cmd *cobra.Command, resp *wikibase.Response) error {
	if display.ShouldOutputJSON(cmd) || resp.Error != nil {
		return printResponse(cmd, resp)
	}

	claim, err := resp.Claim()
	if err != nil {
		return printResponse(cmd, resp)
	}
	pterm.Success.Printfln("Saved claim %s", claim.ID)
	return display.ClaimsTable(cmd.OutOrStdout(), []wikibase.Claim{*claim})
}
