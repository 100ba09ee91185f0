package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	deskerrors "github.com/Iron-Ham/rfpdesk/internal/errors"
	"github.com/Iron-Ham/rfpdesk/internal/session"
	"github.com/Iron-Ham/rfpdesk/internal/workflow"
	"github.com/spf13/cobra"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Manage saved sessions",
	Long:  `Commands for listing, inspecting, and deleting the sessions the backend keeps.`,
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved sessions",
	Long: `List the sessions the backend keeps, newest first, with:
- Session ID
- RFP file name
- Creation date
- Status (Complete once a document was generated)`,
	Args: cobra.NoArgs,
	RunE: runSessionsList,
}

var sessionsShowCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Show a session's requirements, analysis and matches",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionsShow,
}

var sessionsDeleteCmd = &cobra.Command{
	Use:   "delete <session-id>",
	Short: "Delete a session",
	Long: `Delete a session and everything the backend stored for it.

Asks for confirmation unless --yes is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runSessionsDelete,
}

var deleteYes bool

func init() {
	rootCmd.AddCommand(sessionsCmd)
	sessionsCmd.AddCommand(sessionsListCmd)
	sessionsCmd.AddCommand(sessionsShowCmd)
	sessionsCmd.AddCommand(sessionsDeleteCmd)

	sessionsDeleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Delete without asking")
}

func runSessionsList(cmd *cobra.Command, args []string) error {
	format, err := outputFormatFor(cmd)
	if err != nil {
		return err
	}
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	list, err := e.backend.ListSessions(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if format != formatTable {
		return writeStructured(out, format, list)
	}

	if len(list) == 0 {
		fmt.Fprintln(out, "No sessions yet. Upload an RFP with 'rfpdesk upload rfp <file>'.")
		return nil
	}

	rows := make([][]string, 0, len(list))
	for _, s := range list {
		rows = append(rows, []string{strconv.Itoa(s.ID), s.DisplayName(), sessionDate(s), s.Status()})
	}
	fmt.Fprintln(out, renderTable([]string{"ID", "RFP", "CREATED", "STATUS"}, rows))
	return nil
}

func runSessionsShow(cmd *cobra.Command, args []string) error {
	id, err := parseSessionID(args[0])
	if err != nil {
		return err
	}
	format, err := outputFormatFor(cmd)
	if err != nil {
		return err
	}
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	list, err := e.backend.ListSessions(cmd.Context())
	if err != nil {
		return err
	}
	sess, ok := session.FindByID(list, id)
	if !ok {
		return deskerrors.NewNotFoundError("session", args[0])
	}

	out := cmd.OutOrStdout()
	if format != formatTable {
		return writeStructured(out, format, sess)
	}

	fmt.Fprintf(out, "Session %d: %s\n", sess.ID, sess.Summary())
	if sess.OrgFilename != "" {
		fmt.Fprintf(out, "Organization: %s\n", sess.OrgFilename)
	}
	if sess.HasOutput() {
		fmt.Fprintf(out, "Document: %s\n", sess.OutputFilename)
	}

	if sess.HasRequirements() {
		fmt.Fprintln(out, "\nRequirements")
		writeRequirements(out, sess.RFPRequirements)
	}
	if sess.OrgAnalysis != "" {
		fmt.Fprintln(out, "\nOrganization Analysis")
		fmt.Fprintln(out, plain(sess.OrgAnalysis))
	}
	if sess.MatchingTable != nil {
		fmt.Fprintln(out, "\nCapability Matches")
		writeMatches(out, sess.MatchingTable)
	}
	if sess.HasPrompt() {
		fmt.Fprintln(out, "\nResponse Prompt")
		fmt.Fprintln(out, plain(sess.ResponsePrompt))
	}
	return nil
}

func runSessionsDelete(cmd *cobra.Command, args []string) error {
	id, err := parseSessionID(args[0])
	if err != nil {
		return err
	}
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	list, err := e.backend.ListSessions(cmd.Context())
	if err != nil {
		return err
	}
	state := workflow.New().ApplySessions(list)
	sess, ok := session.FindByID(state.Sessions, id)
	if !ok {
		return deskerrors.NewNotFoundError("session", args[0])
	}

	out := cmd.OutOrStdout()
	if !deleteYes {
		fmt.Fprintf(out, "Delete session %d (%s)? [y/N] ", sess.ID, sess.DisplayName())
		if !confirm(cmd.InOrStdin()) {
			fmt.Fprintln(out, "Cancelled.")
			return nil
		}
	}

	state, err = state.DeleteSession(cmd.Context(), e.backend, id)
	if err != nil {
		return err
	}
	e.logger.WithSession(id).Info("session deleted")
	fmt.Fprintf(out, "Deleted session %d. %d remaining.\n", id, len(state.Sessions))
	return nil
}

func parseSessionID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, deskerrors.NewValidationError(fmt.Sprintf("invalid session id %q", arg)).
			WithField("session-id").
			WithValue(arg).
			WithCause(deskerrors.ErrInvalidInput)
	}
	return id, nil
}

func sessionDate(s session.Session) string {
	if t, ok := s.CreatedAt.Time(); ok {
		return t.Format("2006-01-02 15:04")
	}
	if !s.CreatedAt.IsZero() {
		return s.CreatedAt.String()
	}
	return "-"
}

// confirm reads one line and reports whether it starts with y.
func confirm(r io.Reader) bool {
	line, _ := bufio.NewReader(r).ReadString('\n')
	line = strings.ToLower(strings.TrimSpace(line))
	return line == "y" || line == "yes"
}
