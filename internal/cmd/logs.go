package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/Iron-Ham/rfpdesk/internal/logging"
	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "View the rfpdesk log",
	Long: `View and filter the rfpdesk debug log.

Examples:
  # Show the last 50 entries
  rfpdesk logs

  # Show everything
  rfpdesk logs -n 0

  # Follow new entries as they are written
  rfpdesk logs -f

  # Only warnings and errors from the last hour
  rfpdesk logs --level warn --since 1h

  # Everything logged for one session or one request
  rfpdesk logs --session 12
  rfpdesk logs --request 3f6c0a52-...

  # Search messages and attributes
  rfpdesk logs --grep "timeout|refused"`,
	Args: cobra.NoArgs,
	RunE: runLogs,
}

var (
	logsTail      int
	logsFollow    bool
	logsLevel     string
	logsSince     string
	logsOperation string
	logsRequest   string
	logsSession   int
	logsGrep      string
)

func init() {
	rootCmd.AddCommand(logsCmd)

	logsCmd.Flags().IntVarP(&logsTail, "tail", "n", 50, "Number of entries to show (0 for all)")
	logsCmd.Flags().BoolVarP(&logsFollow, "follow", "f", false, "Follow log output (like tail -f)")
	logsCmd.Flags().StringVar(&logsLevel, "level", "", "Filter by minimum level (debug/info/warn/error)")
	logsCmd.Flags().StringVar(&logsSince, "since", "", "Show entries since duration ago (e.g., 1h, 30m)")
	logsCmd.Flags().StringVar(&logsOperation, "operation", "", "Filter by backend operation (e.g., upload_rfp)")
	logsCmd.Flags().StringVar(&logsRequest, "request", "", "Filter by request id")
	logsCmd.Flags().IntVar(&logsSession, "session", 0, "Filter by session id")
	logsCmd.Flags().StringVar(&logsGrep, "grep", "", "Filter entries matching pattern (regex)")
}

// logQuery is the parsed filter flags.
type logQuery struct {
	filter logging.LogFilter
	grep   *regexp.Regexp
}

func (q logQuery) match(e logging.LogEntry) bool {
	if !q.filter.Match(e) {
		return false
	}
	return q.grep == nil || q.grep.MatchString(logging.FormatEntry(e))
}

func runLogs(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	dir := cfg.Logging.ResolveDir()

	q := logQuery{filter: logging.LogFilter{
		Operation: logsOperation,
		RequestID: logsRequest,
		SessionID: logsSession,
	}}
	if logsLevel != "" {
		q.filter.Level = logging.ParseLevel(logsLevel)
	}
	if logsSince != "" {
		d, err := time.ParseDuration(logsSince)
		if err != nil {
			return fmt.Errorf("invalid duration format: %w", err)
		}
		q.filter.StartTime = time.Now().Add(-d)
	}
	if logsGrep != "" {
		q.grep, err = regexp.Compile(logsGrep)
		if err != nil {
			return fmt.Errorf("invalid grep pattern: %w", err)
		}
	}

	out := cmd.OutOrStdout()
	if logsFollow {
		return followLogs(cmd, dir, q)
	}

	entries, err := logging.ReadLogs(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintln(out, "No logs found.")
			fmt.Fprintln(out, "Logs are stored at:", filepath.Join(dir, logging.FileName))
			return nil
		}
		return err
	}

	var matched []logging.LogEntry
	for _, e := range entries {
		if q.match(e) {
			matched = append(matched, e)
		}
	}
	matched = logging.Tail(matched, logsTail)

	if len(matched) == 0 {
		fmt.Fprintln(out, "No matching log entries found.")
		return nil
	}
	for _, e := range matched {
		fmt.Fprintln(out, colorEntry(e))
	}
	return nil
}

var levelStyles = map[string]lipgloss.Style{
	logging.LevelDebug: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	logging.LevelInfo:  lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	logging.LevelWarn:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	logging.LevelError: lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
}

// colorEntry formats e with its level colored.
func colorEntry(e logging.LogEntry) string {
	line := logging.FormatEntry(e)
	style, ok := levelStyles[e.Level]
	if !ok {
		return line
	}
	return style.Render(line)
}

// followLogs prints entries as they are appended. The directory is
// watched so a rotation starts reading the new file from the top.
func followLogs(cmd *cobra.Command, dir string, q logQuery) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to watch logs: %w", err)
	}
	defer func() { _ = watcher.Close() }()
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	out := cmd.OutOrStdout()
	path := filepath.Join(dir, logging.FileName)
	t := &tailer{path: path}
	if info, err := os.Stat(path); err == nil {
		t.offset = info.Size()
	}

	fmt.Fprintln(out, "Following logs... (Ctrl+C to stop)")
	fmt.Fprintln(out)

	ctx := cmd.Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch error: %w", err)
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(ev.Name) != logging.FileName {
				continue
			}
			if ev.Has(fsnotify.Create) {
				t.offset = 0
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			lines, err := t.read()
			if err != nil {
				return err
			}
			for _, line := range lines {
				e, err := logging.ParseEntry(line)
				if err != nil {
					fmt.Fprintln(out, line)
					continue
				}
				if q.match(e) {
					fmt.Fprintln(out, colorEntry(e))
				}
			}
		}
	}
}

// tailer reads complete lines appended to a file since the last read.
type tailer struct {
	path    string
	offset  int64
	partial string
}

func (t *tailer) read() ([]string, error) {
	f, err := os.Open(t.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if info, err := f.Stat(); err == nil && info.Size() < t.offset {
		// truncated
		t.offset = 0
		t.partial = ""
	}
	if _, err := f.Seek(t.offset, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to seek log file: %w", err)
	}

	var lines []string
	r := bufio.NewReader(f)
	for {
		chunk, err := r.ReadString('\n')
		t.offset += int64(len(chunk))
		if err != nil {
			t.partial += chunk
			break
		}
		line := strings.TrimSpace(t.partial + chunk)
		t.partial = ""
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}
