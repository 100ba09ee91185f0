package cmd

import (
	"fmt"
	"io"
	"os"

	deskerrors "github.com/Iron-Ham/rfpdesk/internal/errors"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the response document",
	Long: `Generate the response document for the most recent session.

The prompt comes from --prompt, from --prompt-file ("-" reads stdin), or,
when neither is given, from the prompt stored with the most recent session.
With --download the document is saved right away.`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

var (
	generatePrompt     string
	generatePromptFile string
	generateDownload   bool
	generateDir        string
)

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(&generatePrompt, "prompt", "p", "", "Prompt text")
	generateCmd.Flags().StringVarP(&generatePromptFile, "prompt-file", "f", "", "Read the prompt from a file (- for stdin)")
	generateCmd.Flags().BoolVarP(&generateDownload, "download", "d", false, "Download the document when done")
	generateCmd.Flags().StringVar(&generateDir, "dir", "", "Download directory (default: download.dir)")
	generateCmd.MarkFlagsMutuallyExclusive("prompt", "prompt-file")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	prompt, err := resolvePrompt(cmd, e)
	if err != nil {
		return err
	}

	res, err := e.backend.GenerateDocument(cmd.Context(), prompt)
	if err != nil {
		return err
	}
	name := res.Filename()
	e.logger.Info("document generated", "file", name)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Document generated successfully: %s\n", name)

	if !generateDownload {
		fmt.Fprintf(out, "Run 'rfpdesk download %s' to save it.\n", name)
		return nil
	}
	return download(cmd, e, name, generateDir)
}

// resolvePrompt returns the prompt from the flags, or the stored prompt of
// the newest session.
func resolvePrompt(cmd *cobra.Command, e *env) (string, error) {
	switch {
	case generatePrompt != "":
		return generatePrompt, nil
	case generatePromptFile == "-":
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read prompt: %w", err)
		}
		return string(data), nil
	case generatePromptFile != "":
		data, err := os.ReadFile(generatePromptFile)
		if err != nil {
			return "", fmt.Errorf("failed to read prompt file: %w", err)
		}
		return string(data), nil
	}

	list, err := e.backend.ListSessions(cmd.Context())
	if err != nil {
		return "", err
	}
	if len(list) == 0 || !list[0].HasPrompt() {
		return "", deskerrors.NewValidationError("No stored prompt; pass --prompt or --prompt-file").
			WithField("prompt").
			WithCause(deskerrors.ErrEmptyPrompt)
	}
	return list[0].ResponsePrompt, nil
}
