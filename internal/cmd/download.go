package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var downloadCmd = &cobra.Command{
	Use:   "download <filename>",
	Short: "Save a generated document",
	Long: `Save a generated response document. The file is written under its own
name into --dir, or the configured download directory.`,
	Args: cobra.ExactArgs(1),
	RunE: runDownload,
}

var downloadDir string

func init() {
	rootCmd.AddCommand(downloadCmd)

	downloadCmd.Flags().StringVar(&downloadDir, "dir", "", "Download directory (default: download.dir)")
}

func runDownload(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	return download(cmd, e, args[0], downloadDir)
}

// download saves filename into dir, or the configured directory.
func download(cmd *cobra.Command, e *env, filename, dir string) error {
	if dir == "" {
		dir = e.cfg.Download.ResolveDir()
	}
	path, err := e.backend.DownloadToDir(cmd.Context(), filename, dir)
	if err != nil {
		return err
	}
	e.logger.Info("document saved", "path", path)
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", path)
	return nil
}
