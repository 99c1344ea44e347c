package commands

import (
	"github.com/spf13/cobra"

	"github.com/teranos/wikibase/display"
	"github.com/teranos/wikibase/errors"
	"github.com/teranos/wikibase/wikibase"
)

// EntitiesCmd fetches entities
var EntitiesCmd = &cobra.Command{
	Use:   "entities <id>...",
	Short: "Fetch entities (wbgetentities)",
	Long: `Fetch one or more entities and print the API reply as JSON.

Ids may be given as separate arguments or joined with "|".

Examples:
  wbapi entities Q42
  wbapi entities Q42 Q1 --opt props=labels|claims --opt languages=en`,
	Args: cobra.MinimumNArgs(1),
	RunE: runEntities,
}

// ClaimsCmd lists claims
var ClaimsCmd = &cobra.Command{
	Use:   "claims",
	Short: "List claims (wbgetclaims)",
	Long: `List the claims of an entity, or a single claim by GUID, as a table.

Examples:
  wbapi claims --entity Q42
  wbapi claims --entity Q42 --property P31
  wbapi claims --claim 'Q42$F078E5B3-F9A8-480E-B7AC-D97778CBBEF9' --json`,
	RunE: runClaims,
}

func init() {
	addOptionFlag(EntitiesCmd)

	ClaimsCmd.Flags().String("entity", "", "Entity id")
	ClaimsCmd.Flags().String("claim", "", "Claim GUID")
	ClaimsCmd.Flags().String("property", "", "Only claims for this property")
	ClaimsCmd.MarkFlagsOneRequired("entity", "claim")
	addOptionFlag(ClaimsCmd)
}

func runEntities(cmd *cobra.Command, args []string) error {
	opts, err := optionsFromFlags(cmd)
	if err != nil {
		return err
	}

	client, err := connect(cmd)
	if err != nil {
		return err
	}

	resp, err := client.GetEntities(cmd.Context(), splitIDs(args), opts)
	if err != nil {
		return err
	}
	return printResponse(cmd, resp)
}

func runClaims(cmd *cobra.Command, args []string) error {
	opts, err := optionsFromFlags(cmd)
	if err != nil {
		return err
	}

	var q wikibase.ClaimsQuery
	q.Entity, _ = cmd.Flags().GetString("entity")
	q.Claim, _ = cmd.Flags().GetString("claim")
	q.Property, _ = cmd.Flags().GetString("property")

	client, err := connect(cmd)
	if err != nil {
		return err
	}

	resp, err := client.GetClaims(cmd.Context(), q, opts)
	if err != nil {
		return err
	}
	if display.ShouldOutputJSON(cmd) || resp.Error != nil {
		return printResponse(cmd, resp)
	}

	claims, err := resp.Claims()
	if err != nil {
		return errors.Wrap(err, "unexpected wbgetclaims reply")
	}
	return display.ClaimsTable(cmd.OutOrStdout(), claims)
}
