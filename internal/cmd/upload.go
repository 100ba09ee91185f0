package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var uploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Upload an RFP or organization profile for analysis",
	Long: `Upload documents for analysis. Files must be PDF, TXT or DOCX and no larger
than the configured limit (16 MB by default); other files are rejected
before anything is sent.`,
}

var uploadRFPCmd = &cobra.Command{
	Use:   "rfp <file>",
	Short: "Upload an RFP and extract its requirements",
	Long: `Upload an RFP. The backend extracts the requirements and starts a new
session for it.`,
	Args: cobra.ExactArgs(1),
	RunE: runUploadRFP,
}

var uploadOrgCmd = &cobra.Command{
	Use:   "org <file>",
	Short: "Upload an organization profile and match it against the RFP",
	Long: `Upload an organization profile. The backend analyzes it, matches its
capabilities against the requirements of the most recent session and
proposes a response prompt.`,
	Args: cobra.ExactArgs(1),
	RunE: runUploadOrg,
}

func init() {
	rootCmd.AddCommand(uploadCmd)
	uploadCmd.AddCommand(uploadRFPCmd)
	uploadCmd.AddCommand(uploadOrgCmd)
}

func runUploadRFP(cmd *cobra.Command, args []string) error {
	format, err := outputFormatFor(cmd)
	if err != nil {
		return err
	}
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	res, err := e.backend.UploadRFP(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	e.logger.Info("rfp analyzed", "file", res.Filename)

	out := cmd.OutOrStdout()
	if format != formatTable {
		return writeStructured(out, format, res)
	}
	fmt.Fprintf(out, "RFP analyzed successfully: %s\n\n", res.Filename)
	writeRequirements(out, res.Requirements)
	return nil
}

func runUploadOrg(cmd *cobra.Command, args []string) error {
	format, err := outputFormatFor(cmd)
	if err != nil {
		return err
	}
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	res, err := e.backend.UploadOrg(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	e.logger.Info("organization analyzed", "file", res.Filename, "matches", len(res.MatchingTable))

	out := cmd.OutOrStdout()
	if format != formatTable {
		return writeStructured(out, format, res)
	}
	fmt.Fprintf(out, "Organization profile analyzed successfully: %s\n", res.Filename)
	fmt.Fprintln(out, "\nOrganization Analysis")
	fmt.Fprintln(out, plain(res.OrgAnalysis))
	fmt.Fprintln(out, "\nCapability Matches")
	writeMatches(out, res.MatchingTable)
	if res.ResponsePrompt != "" {
		fmt.Fprintln(out, "\nResponse Prompt")
		fmt.Fprintln(out, plain(res.ResponsePrompt))
	}
	return nil
}
