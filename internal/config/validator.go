package config

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "backend.url")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// SupportedExtensions returns the file extensions the backend can analyze
func SupportedExtensions() []string {
	return []string{".pdf", ".txt", ".docx"}
}

// problems collects validation failures for one section.
type problems []ValidationError

func (p *problems) add(field string, value any, format string, args ...any) {
	*p = append(*p, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (p *problems) nonNegative(field string, value int) {
	if value < 0 {
		p.add(field, value, "must be non-negative")
	}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var all []ValidationError
	for _, section := range []func() []ValidationError{
		c.validateBackend,
		c.validateUpload,
		c.validateNotifications,
		c.validateTUI,
		c.validateLogging,
	} {
		all = append(all, section()...)
	}
	return all
}

func (c *Config) validateBackend() []ValidationError {
	var p problems
	if c.Backend.URL == "" {
		p.add("backend.url", c.Backend.URL, "must not be empty")
	} else if u, err := url.Parse(c.Backend.URL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		p.add("backend.url", c.Backend.URL, "must be an absolute http or https URL")
	}
	if c.Backend.Timeout < 0 {
		p.add("backend.timeout", c.Backend.Timeout, "must be non-negative (0 disables the timeout)")
	}
	return p
}

func (c *Config) validateUpload() []ValidationError {
	var p problems
	if c.Upload.MaxSizeMB < 0 {
		p.add("upload.max_size_mb", c.Upload.MaxSizeMB, "must be non-negative (0 disables the limit)")
	}
	if len(c.Upload.AllowedExtensions) == 0 {
		p.add("upload.allowed_extensions", c.Upload.AllowedExtensions, "must list at least one extension")
	}

	supported := SupportedExtensions()
	for i, ext := range c.Upload.AllowedExtensions {
		field := fmt.Sprintf("upload.allowed_extensions[%d]", i)
		switch {
		case !strings.HasPrefix(ext, "."):
			p.add(field, ext, "must start with a dot")
		case !slices.Contains(supported, strings.ToLower(ext)):
			p.add(field, ext, "backend only accepts: %s", strings.Join(supported, ", "))
		}
	}
	return p
}

// maxToastTimeout caps notification lifetimes; 0 keeps a toast until dismissed.
const maxToastTimeout = time.Minute

func (c *Config) validateNotifications() []ValidationError {
	var p problems
	for _, t := range []struct {
		field string
		d     time.Duration
	}{
		{"notifications.success_timeout", c.Notifications.SuccessTimeout},
		{"notifications.error_timeout", c.Notifications.ErrorTimeout},
	} {
		field, d := t.field, t.d
		if d < 0 {
			p.add(field, d, "must be non-negative (0 keeps the toast until dismissed)")
		} else if d > maxToastTimeout {
			p.add(field, d, "exceeds maximum of %s", maxToastTimeout)
		}
	}
	return p
}

// Sidebar width bounds. 0 selects the default width.
const (
	minSidebarWidth = 20
	maxSidebarWidth = 60
)

func (c *Config) validateTUI() []ValidationError {
	var p problems
	switch w := c.TUI.SidebarWidth; {
	case w == 0:
	case w < minSidebarWidth:
		p.add("tui.sidebar_width", w, "must be at least %d", minSidebarWidth)
	case w > maxSidebarWidth:
		p.add("tui.sidebar_width", w, "must be at most %d", maxSidebarWidth)
	}
	return p
}

func (c *Config) validateLogging() []ValidationError {
	var p problems
	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), strings.ToLower(c.Logging.Level)) {
		p.add("logging.level", c.Logging.Level, "must be one of: %s", strings.Join(ValidLogLevels(), ", "))
	}
	p.nonNegative("logging.max_size_mb", c.Logging.MaxSizeMB)
	p.nonNegative("logging.max_backups", c.Logging.MaxBackups)
	return p
}
