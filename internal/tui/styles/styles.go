package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors - all colors meet WCAG AA contrast (4.5:1) on both black and dark surfaces
	PrimaryColor   = lipgloss.Color("#A78BFA") // Purple
	SecondaryColor = lipgloss.Color("#10B981") // Green
	WarningColor   = lipgloss.Color("#F59E0B") // Amber
	ErrorColor     = lipgloss.Color("#F87171") // Red
	MutedColor     = lipgloss.Color("#9CA3AF") // Gray
	SurfaceColor   = lipgloss.Color("#1F2937") // Dark surface
	TextColor      = lipgloss.Color("#F9FAFB") // Light text
	BorderColor    = lipgloss.Color("#6B7280") // Gray
	BlueColor      = lipgloss.Color("#60A5FA") // Blue

	// Match strength colors
	MatchStrongColor  = lipgloss.Color("#10B981") // Green
	MatchPartialColor = lipgloss.Color("#F59E0B") // Amber
	MatchNoneColor    = lipgloss.Color("#F87171") // Red

	// Convenience styles for colors
	Primary   = lipgloss.NewStyle().Foreground(PrimaryColor)
	Secondary = lipgloss.NewStyle().Foreground(SecondaryColor)
	Warning   = lipgloss.NewStyle().Foreground(WarningColor)
	Error     = lipgloss.NewStyle().Foreground(ErrorColor)
	Muted     = lipgloss.NewStyle().Foreground(MutedColor)
	Text      = lipgloss.NewStyle().Foreground(TextColor)

	// Base styles
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(PrimaryColor).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Italic(true)

	// Panels
	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderColor).
		Padding(0, 1)

	PanelTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor)

	SectionTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(BlueColor)

	SectionCollapsed = lipgloss.NewStyle().
				Foreground(MutedColor)

	ListBullet = lipgloss.NewStyle().
			Foreground(SecondaryColor)

	// Step indicator
	StepActive = lipgloss.NewStyle().
			Bold(true).
			Foreground(TextColor).
			Background(PrimaryColor).
			Padding(0, 1)

	StepDone = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Padding(0, 1)

	StepTodo = lipgloss.NewStyle().
			Foreground(MutedColor).
			Padding(0, 1)

	// Help bar
	HelpBar = lipgloss.NewStyle().
		Foreground(MutedColor).
		MarginTop(1)

	HelpKey = lipgloss.NewStyle().
		Bold(true).
		Foreground(SecondaryColor)

	// Header
	Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(PrimaryColor).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(BorderColor).
		MarginBottom(1)

	// Footer / status bar
	StatusBar = lipgloss.NewStyle().
			Foreground(TextColor).
			Background(SurfaceColor).
			Padding(0, 1)

	// Sidebar styles
	Sidebar = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderColor).
		Padding(0, 1)

	SidebarItem = lipgloss.NewStyle().
			Padding(0, 1)

	SidebarItemActive = lipgloss.NewStyle().
				Bold(true).
				Foreground(TextColor).
				Background(PrimaryColor).
				Padding(0, 1)

	SidebarItemCursor = lipgloss.NewStyle().
				Foreground(TextColor).
				Background(SurfaceColor).
				Padding(0, 1)

	SidebarTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	// Download affordance
	DownloadButton = lipgloss.NewStyle().
			Bold(true).
			Foreground(TextColor).
			Background(SecondaryColor).
			Padding(0, 2)

	// Notifications
	ToastBase = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1)

	ToastSuccess = ToastBase.
			Foreground(TextColor).
			Background(SecondaryColor)

	ToastError = ToastBase.
			Foreground(TextColor).
			Background(ErrorColor)

	ToastInfo = ToastBase.
			Foreground(TextColor).
			Background(BlueColor)

	// Loading overlay
	Overlay = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(PrimaryColor).
		Padding(1, 3)

	// Error message
	ErrorMsg = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	// Success message
	SuccessMsg = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Bold(true)

	// Warning message
	WarningMsg = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)

	// Input prompt
	InputPrompt = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Bold(true)

	InputBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(PrimaryColor).
			Padding(0, 1)
)

// matchStyles maps match classes to their badge style.
var matchStyles = map[string]lipgloss.Style{
	"strong":  lipgloss.NewStyle().Bold(true).Foreground(MatchStrongColor),
	"partial": lipgloss.NewStyle().Bold(true).Foreground(MatchPartialColor),
	"none":    lipgloss.NewStyle().Bold(true).Foreground(MatchNoneColor),
}

// MatchFallback is used for match classes without a dedicated style.
var MatchFallback = lipgloss.NewStyle().Italic(true).Foreground(MutedColor)

// MatchStyle returns the style for a match class ("strong", "partial",
// "none"). Any other class gets MatchFallback.
func MatchStyle(class string) lipgloss.Style {
	if s, ok := matchStyles[class]; ok {
		return s
	}
	return MatchFallback
}

// MatchColor returns the color for a match class.
func MatchColor(class string) lipgloss.TerminalColor {
	return MatchStyle(class).GetForeground()
}

// StatusColor returns the color for a session status label
func StatusColor(status string) lipgloss.Color {
	switch status {
	case "Complete":
		return SecondaryColor
	case "In Progress":
		return WarningColor
	default:
		return MutedColor
	}
}

// StatusIcon returns an icon for a session status label
func StatusIcon(status string) string {
	switch status {
	case "Complete":
		return "✓"
	case "In Progress":
		return "●"
	default:
		return "○"
	}
}

// ToastStyle returns the style for a notification kind.
func ToastStyle(kind string) lipgloss.Style {
	switch kind {
	case "success":
		return ToastSuccess
	case "error":
		return ToastError
	default:
		return ToastInfo
	}
}
