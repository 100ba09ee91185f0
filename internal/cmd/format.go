package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Iron-Ham/rfpdesk/internal/formatter"
	"github.com/Iron-Ham/rfpdesk/internal/session"
	"github.com/Iron-Ham/rfpdesk/internal/util"
	"github.com/spf13/cobra"
)

// textWidth is the wrap width for plain-text command output.
const textWidth = 80

var formatCmd = &cobra.Command{
	Use:   "format [file]",
	Short: "Split requirement text into sections",
	Long: `Format requirement text the way the workspace shows it: headings become
sections, list lines become bullets and everything else becomes wrapped
paragraphs.

Reads from the file given, or from stdin when the argument is omitted or "-".
With --output json or yaml the parsed document structure is printed instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFormat,
}

func init() {
	rootCmd.AddCommand(formatCmd)
}

func runFormat(cmd *cobra.Command, args []string) error {
	format, err := outputFormatFor(cmd)
	if err != nil {
		return err
	}

	var data []byte
	if len(args) == 0 || args[0] == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	out := cmd.OutOrStdout()
	if format != formatTable {
		return writeStructured(out, format, formatter.Format(string(data)))
	}
	writeRequirements(out, string(data))
	return nil
}

// plain makes backend text safe to print and trims it.
func plain(s string) string {
	return strings.TrimSpace(util.SanitizeTerminal(s))
}

// writeRequirements prints requirement text as titled sections.
func writeRequirements(w io.Writer, text string) {
	doc := formatter.Format(plain(text))
	switch {
	case doc.Empty():
		fmt.Fprintln(w, "No requirements were extracted.")
		return
	case doc.Unsectioned:
		fmt.Fprintln(w, util.Wrap(doc.Raw, textWidth))
		return
	}

	for i, sec := range doc.Sections {
		if i > 0 {
			fmt.Fprintln(w)
		}
		title := sec.Title
		if title == "" {
			title = "Overview"
		}
		fmt.Fprintf(w, "## %s\n", title)
		for _, block := range sec.Blocks {
			if block.Kind == formatter.BlockList {
				for _, item := range block.Items {
					fmt.Fprintln(w, indent(util.Wrap(item, textWidth-4), "  - ", "    "))
				}
				continue
			}
			fmt.Fprintln(w, util.Wrap(block.Text, textWidth))
		}
	}
}

// writeMatches prints the capability matches as a table.
func writeMatches(w io.Writer, matches []session.Match) {
	if len(matches) == 0 {
		fmt.Fprintln(w, "No capability matches were found.")
		return
	}
	rows := make([][]string, 0, len(matches))
	for _, m := range matches {
		level := string(m.Match)
		if strings.TrimSpace(level) == "" {
			level = "Unrated"
		}
		rows = append(rows, []string{
			util.Wrap(plain(m.Requirement), 30),
			util.Wrap(plain(m.Capability), 30),
			level,
			util.Wrap(plain(m.Notes), 30),
		})
	}
	fmt.Fprintln(w, renderTable([]string{"REQUIREMENT", "CAPABILITY", "MATCH", "NOTES"}, rows))
}

// indent prefixes the first line of s with first and the rest with rest.
func indent(s, first, rest string) string {
	lines := strings.Split(s, "\n")
	for i := range lines {
		if i == 0 {
			lines[i] = first + lines[i]
		} else {
			lines[i] = rest + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}
