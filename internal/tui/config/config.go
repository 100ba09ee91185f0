// Package config implements the interactive editor behind
// "rfpdesk config edit".
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/Iron-Ham/rfpdesk/internal/config"
	"github.com/Iron-Ham/rfpdesk/internal/tui/styles"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/viper"
)

// Item types
const (
	TypeString   = "string"
	TypeBool     = "bool"
	TypeInt      = "int"
	TypeDuration = "duration"
	TypeSelect   = "select"
	TypeList     = "list"
)

// ConfigItem represents a single configuration item
type ConfigItem struct {
	Key         string
	Label       string
	Description string
	Type        string
	Options     []string // For select type
}

// Category represents a group of config items
type Category struct {
	Name  string
	Items []ConfigItem
}

// lines above the category list: header, blank, path, blank
const headerLines = 4

// lines below it: description or edit box, messages, help
const footerLines = 6

// Model is the Bubbletea model for the interactive config UI
type Model struct {
	path           string
	categories     []Category
	categoryIndex  int
	itemIndex      int
	scrollOffset   int
	width          int
	height         int
	editing        bool
	textInput      textinput.Model
	selectIndex    int
	errorMsg       string
	infoMsg        string
	quitting       bool
	configModified bool
}

// Categories returns the editable settings, grouped as in the config file.
func Categories() []Category {
	return []Category{
		{
			Name: "Backend",
			Items: []ConfigItem{
				{
					Key:         "backend.url",
					Label:       "URL",
					Description: "Base URL of the RFP analysis backend",
					Type:        TypeString,
				},
				{
					Key:         "backend.timeout",
					Label:       "Request Timeout",
					Description: "Upper bound for one request; analysis can take minutes (0s = none)",
					Type:        TypeDuration,
				},
			},
		},
		{
			Name: "Upload",
			Items: []ConfigItem{
				{
					Key:         "upload.max_size_mb",
					Label:       "Max Size (MB)",
					Description: "Files larger than this are rejected before sending (0 = no limit)",
					Type:        TypeInt,
				},
				{
					Key:         "upload.allowed_extensions",
					Label:       "Allowed Extensions",
					Description: "Comma-separated extensions accepted for upload, e.g. .pdf,.txt,.docx",
					Type:        TypeList,
				},
			},
		},
		{
			Name: "Download",
			Items: []ConfigItem{
				{
					Key:         "download.dir",
					Label:       "Directory",
					Description: "Where generated documents are saved (empty = current directory)",
					Type:        TypeString,
				},
			},
		},
		{
			Name: "Notifications",
			Items: []ConfigItem{
				{
					Key:         "notifications.success_timeout",
					Label:       "Success Timeout",
					Description: "How long success and info banners stay visible",
					Type:        TypeDuration,
				},
				{
					Key:         "notifications.error_timeout",
					Label:       "Error Timeout",
					Description: "How long error banners stay visible",
					Type:        TypeDuration,
				},
				{
					Key:         "notifications.bell",
					Label:       "Bell on Error",
					Description: "Ring the terminal bell when an error banner is shown",
					Type:        TypeBool,
				},
			},
		},
		{
			Name: "TUI",
			Items: []ConfigItem{
				{
					Key:         "tui.sidebar_width",
					Label:       "Sidebar Width",
					Description: "Width of the session list in columns",
					Type:        TypeInt,
				},
				{
					Key:         "tui.collapse_sections",
					Label:       "Collapse Sections",
					Description: "Show requirement sections folded to their titles",
					Type:        TypeBool,
				},
			},
		},
		{
			Name: "Logging",
			Items: []ConfigItem{
				{
					Key:         "logging.enabled",
					Label:       "Enabled",
					Description: "Write a debug log file",
					Type:        TypeBool,
				},
				{
					Key:         "logging.level",
					Label:       "Level",
					Description: "Minimum level written to the log",
					Type:        TypeSelect,
					Options:     config.ValidLogLevels(),
				},
				{
					Key:         "logging.dir",
					Label:       "Directory",
					Description: "Log directory (empty = <config dir>/logs)",
					Type:        TypeString,
				},
				{
					Key:         "logging.max_size_mb",
					Label:       "Max Size (MB)",
					Description: "Log file size before rotation",
					Type:        TypeInt,
				},
				{
					Key:         "logging.max_backups",
					Label:       "Max Backups",
					Description: "Rotated log files to keep",
					Type:        TypeInt,
				},
			},
		},
	}
}

// New creates a config editor that saves to path. An empty path saves to
// the default config file.
func New(path string) Model {
	if path == "" {
		path = config.ConfigFile()
	}

	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 40

	return Model{
		path:       path,
		categories: Categories(),
		textInput:  ti,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ensureSelectionVisible(m.availableLines())
		return m, nil

	case tea.KeyMsg:
		m.errorMsg = ""
		m.infoMsg = ""

		if m.editing {
			return m.handleEditingKeypress(msg)
		}

		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit

		case "up", "k":
			m.itemIndex--
			if m.itemIndex < 0 {
				m.categoryIndex--
				if m.categoryIndex < 0 {
					m.categoryIndex = len(m.categories) - 1
				}
				m.itemIndex = len(m.categories[m.categoryIndex].Items) - 1
			}

		case "down", "j":
			m.itemIndex++
			if m.itemIndex >= len(m.categories[m.categoryIndex].Items) {
				m.categoryIndex++
				if m.categoryIndex >= len(m.categories) {
					m.categoryIndex = 0
				}
				m.itemIndex = 0
			}

		case "tab":
			m.categoryIndex = (m.categoryIndex + 1) % len(m.categories)
			m.itemIndex = 0

		case "shift+tab":
			m.categoryIndex = (m.categoryIndex - 1 + len(m.categories)) % len(m.categories)
			m.itemIndex = 0

		case "enter", " ":
			item := m.currentItem()
			switch item.Type {
			case TypeBool:
				if err := m.apply(item, !viper.GetBool(item.Key)); err != nil {
					m.errorMsg = err.Error()
					break
				}
				m.saveConfig()
			case TypeSelect:
				m.editing = true
				m.selectIndex = m.currentSelectIndex()
			default:
				m.editing = true
				m.textInput.SetValue(m.displayValue(item))
				m.textInput.CursorEnd()
				m.textInput.Focus()
			}

		case "r":
			m.resetCurrentToDefault()
		}
		m.ensureSelectionVisible(m.availableLines())
	}

	return m, nil
}

func (m Model) handleEditingKeypress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	item := m.currentItem()

	switch msg.String() {
	case "esc":
		m.editing = false
		m.textInput.SetValue("")
		return m, nil

	case "enter":
		if item.Type == TypeSelect {
			if err := m.apply(item, item.Options[m.selectIndex]); err != nil {
				m.errorMsg = err.Error()
				return m, nil
			}
			m.saveConfig()
			m.editing = false
			return m, nil
		}
		if err := m.validateAndSet(item, m.textInput.Value()); err != nil {
			m.errorMsg = err.Error()
			return m, nil
		}
		m.saveConfig()
		m.editing = false
		m.textInput.SetValue("")
		return m, nil

	case "up", "k":
		if item.Type == TypeSelect {
			m.selectIndex = (m.selectIndex - 1 + len(item.Options)) % len(item.Options)
			return m, nil
		}

	case "down", "j":
		if item.Type == TypeSelect {
			m.selectIndex = (m.selectIndex + 1) % len(item.Options)
			return m, nil
		}
	}

	if item.Type == TypeSelect {
		return m, nil
	}
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder

	b.WriteString(styles.Header.Width(max(m.width-4, 1)).Render("rfpdesk Configuration"))
	b.WriteString("\n\n")

	path := m.path
	if _, err := os.Stat(path); err != nil {
		path += " (not created)"
	}
	b.WriteString(styles.Muted.Render("Config file: " + path))
	b.WriteString("\n\n")

	lines := m.categoryLines()
	available := m.availableLines()
	end := min(m.scrollOffset+available, len(lines))
	if m.scrollOffset > 0 {
		b.WriteString(styles.Muted.Render(fmt.Sprintf("  ▲ %d more", m.scrollOffset)))
		b.WriteString("\n")
	}
	for _, line := range lines[m.scrollOffset:end] {
		b.WriteString(line)
		b.WriteString("\n")
	}
	if end < len(lines) {
		b.WriteString(styles.Muted.Render(fmt.Sprintf("  ▼ %d more", len(lines)-end)))
		b.WriteString("\n")
	}

	if m.editing {
		b.WriteString(m.renderEditOverlay())
	} else {
		b.WriteString(styles.Muted.Render(m.currentItem().Description))
	}
	b.WriteString("\n")

	if m.errorMsg != "" {
		b.WriteString("\n")
		b.WriteString(styles.ErrorMsg.Render("Error: " + m.errorMsg))
	}
	if m.infoMsg != "" {
		b.WriteString("\n")
		b.WriteString(styles.SuccessMsg.Render(m.infoMsg))
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelp())

	return b.String()
}

// categoryLines renders every category header, item and separator line.
func (m Model) categoryLines() []string {
	var lines []string
	for ci, cat := range m.categories {
		active := ci == m.categoryIndex

		catStyle := styles.Muted.Bold(true)
		if active {
			catStyle = styles.Primary.Bold(true)
		}
		lines = append(lines, catStyle.Render(fmt.Sprintf("[ %s ]", cat.Name)))

		for ii, item := range cat.Items {
			lines = append(lines, m.renderItem(item, active && ii == m.itemIndex))
		}
		lines = append(lines, "")
	}
	return lines
}

// totalLines returns the number of lines categoryLines produces.
func (m Model) totalLines() int {
	n := 0
	for _, cat := range m.categories {
		n += len(cat.Items) + 2
	}
	return n
}

// currentSelectionLine returns the index into categoryLines of the
// selected item.
func (m Model) currentSelectionLine() int {
	line := 0
	for ci := range m.categoryIndex {
		line += len(m.categories[ci].Items) + 2
	}
	return line + 1 + m.itemIndex
}

func (m Model) availableLines() int {
	if m.height == 0 {
		return m.totalLines()
	}
	return max(m.height-headerLines-footerLines, 3)
}

// ensureSelectionVisible adjusts scrollOffset so the selected item is
// within the available lines. The category header is kept in view when
// the first item is selected.
func (m *Model) ensureSelectionVisible(available int) {
	if available <= 0 {
		return
	}
	line := m.currentSelectionLine()
	top := line
	if m.itemIndex == 0 {
		top = line - 1
	}
	if top < m.scrollOffset {
		m.scrollOffset = top
	}
	if line >= m.scrollOffset+available {
		m.scrollOffset = line - available + 1
	}
	m.scrollOffset = max(min(m.scrollOffset, m.totalLines()-available), 0)
}

func (m Model) renderItem(item ConfigItem, selected bool) string {
	value := m.displayValue(item)
	if value == "" {
		value = "(empty)"
	}

	label := item.Label
	if len(label) > 25 {
		label = label[:22] + "..."
	}
	paddedLabel := fmt.Sprintf("%-25s", label)

	if selected {
		return fmt.Sprintf("  %s %s  %s",
			styles.Secondary.Render(">"),
			styles.Text.Bold(true).Render(paddedLabel),
			styles.Primary.Render(value))
	}
	return fmt.Sprintf("    %s  %s", styles.Muted.Render(paddedLabel), styles.Text.Render(value))
}

func (m Model) renderEditOverlay() string {
	item := m.currentItem()

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.PrimaryColor).
		Padding(1, 2).
		Width(50)

	var content strings.Builder
	if item.Type == TypeSelect {
		fmt.Fprintf(&content, "Select %s:\n\n", item.Label)
		for i, opt := range item.Options {
			if i == m.selectIndex {
				content.WriteString(styles.Primary.Bold(true).Render(" > " + opt))
			} else {
				content.WriteString(styles.Muted.Render("   " + opt))
			}
			content.WriteString("\n")
		}
		content.WriteString("\n" + styles.Muted.Render("j/k to select, enter to confirm, esc to cancel"))
	} else {
		fmt.Fprintf(&content, "Edit %s:\n\n", item.Label)
		content.WriteString(m.textInput.View())
		content.WriteString("\n\n" + styles.Muted.Render("enter to save, esc to cancel"))
	}

	return "\n" + box.Render(content.String())
}

func (m Model) renderHelp() string {
	k := styles.HelpKey.Render
	if m.editing {
		return styles.HelpBar.Render(k("enter") + " save  " + k("esc") + " cancel")
	}
	return styles.HelpBar.Render(
		k("j/k") + " navigate  " +
			k("tab") + " next category  " +
			k("enter/space") + " edit  " +
			k("r") + " reset  " +
			k("q") + " quit",
	)
}

func (m Model) currentItem() ConfigItem {
	return m.categories[m.categoryIndex].Items[m.itemIndex]
}

func (m Model) displayValue(item ConfigItem) string {
	switch item.Type {
	case TypeBool:
		return strconv.FormatBool(viper.GetBool(item.Key))
	case TypeInt:
		return strconv.Itoa(viper.GetInt(item.Key))
	case TypeDuration:
		return viper.GetDuration(item.Key).String()
	case TypeList:
		return strings.Join(viper.GetStringSlice(item.Key), ",")
	default:
		return viper.GetString(item.Key)
	}
}

func (m Model) currentSelectIndex() int {
	item := m.currentItem()
	if i := slices.Index(item.Options, viper.GetString(item.Key)); i >= 0 {
		return i
	}
	return 0
}

// validateAndSet parses value for item and applies it.
func (m *Model) validateAndSet(item ConfigItem, value string) error {
	value = strings.TrimSpace(value)

	switch item.Type {
	case TypeInt:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("expected integer value")
		}
		if n < 0 {
			return fmt.Errorf("value must be non-negative")
		}
		return m.apply(item, n)
	case TypeDuration:
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("expected a duration such as 30s or 5m")
		}
		if d < 0 {
			return fmt.Errorf("value must be non-negative")
		}
		return m.apply(item, d)
	case TypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("expected true or false")
		}
		return m.apply(item, b)
	case TypeSelect:
		if !slices.Contains(item.Options, value) {
			return fmt.Errorf("invalid option: %s", value)
		}
		return m.apply(item, value)
	case TypeList:
		var list []string
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				list = append(list, part)
			}
		}
		return m.apply(item, list)
	default:
		return m.apply(item, value)
	}
}

// apply sets item to value and validates the resulting configuration.
// An invalid result is rolled back.
func (m *Model) apply(item ConfigItem, value any) error {
	previous := viper.Get(item.Key)
	viper.Set(item.Key, value)
	if _, err := config.Load(); err != nil {
		viper.Set(item.Key, previous)
		return err
	}
	return nil
}

func (m *Model) saveConfig() {
	if err := os.MkdirAll(filepath.Dir(m.path), 0o755); err != nil {
		m.errorMsg = fmt.Sprintf("Failed to create config directory: %v", err)
		return
	}
	if err := viper.WriteConfigAs(m.path); err != nil {
		m.errorMsg = fmt.Sprintf("Failed to save config: %v", err)
		return
	}
	m.infoMsg = "Saved!"
	m.configModified = true
}

// defaultValues maps each editable key to its default.
func defaultValues() map[string]any {
	d := config.Default()
	return map[string]any{
		"backend.url":                   d.Backend.URL,
		"backend.timeout":               d.Backend.Timeout,
		"upload.max_size_mb":            d.Upload.MaxSizeMB,
		"upload.allowed_extensions":     d.Upload.AllowedExtensions,
		"download.dir":                  d.Download.Dir,
		"notifications.success_timeout": d.Notifications.SuccessTimeout,
		"notifications.error_timeout":   d.Notifications.ErrorTimeout,
		"notifications.bell":            d.Notifications.Bell,
		"tui.sidebar_width":             d.TUI.SidebarWidth,
		"tui.collapse_sections":         d.TUI.CollapseSections,
		"logging.enabled":               d.Logging.Enabled,
		"logging.level":                 d.Logging.Level,
		"logging.dir":                   d.Logging.Dir,
		"logging.max_size_mb":           d.Logging.MaxSizeMB,
		"logging.max_backups":           d.Logging.MaxBackups,
	}
}

func (m *Model) resetCurrentToDefault() {
	item := m.currentItem()
	def, ok := defaultValues()[item.Key]
	if !ok {
		return
	}
	viper.Set(item.Key, def)
	m.saveConfig()
	if m.errorMsg == "" {
		m.infoMsg = fmt.Sprintf("Reset %s to default", item.Label)
	}
}

// Run starts the interactive config UI
func Run(path string) error {
	p := tea.NewProgram(New(path), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
