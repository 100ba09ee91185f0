package tui

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/Iron-Ham/rfpdesk/internal/config"
	"github.com/Iron-Ham/rfpdesk/internal/notify"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// App wraps the Bubbletea program
type App struct {
	program *tea.Program
	model   Model
}

// New creates a new TUI application
func New(backend Backend, opts Options) *App {
	return &App{
		model: NewModel(backend, opts),
	}
}

// OptionsFromConfig builds Model options from the loaded configuration.
func OptionsFromConfig(cfg *config.Config, backendURL string) Options {
	return Options{
		BackendURL:       backendURL,
		DownloadDir:      cfg.Download.ResolveDir(),
		SidebarWidth:     cfg.TUI.SidebarWidth,
		CollapseSections: cfg.TUI.CollapseSections,
		Notify:           NotifyConfig(cfg.Notifications),
	}
}

// NotifyConfig converts the notification settings into a notify.Config.
func NotifyConfig(nc config.NotificationConfig) notify.Config {
	c := notify.DefaultConfig()
	if nc.SuccessTimeout > 0 {
		c.SuccessTimeout = nc.SuccessTimeout
		c.InfoTimeout = nc.SuccessTimeout
	}
	if nc.ErrorTimeout > 0 {
		c.ErrorTimeout = nc.ErrorTimeout
	}
	c.Bell = nc.Bell
	return c
}

// Run starts the TUI application
func (a *App) Run() error {
	a.program = tea.NewProgram(
		a.model,
		tea.WithAltScreen(),
	)

	// Quit cleanly on termination so the terminal is restored
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	done := make(chan struct{})
	go forwardQuit(sigChan, done, a.program.Send)

	a.watchConfig()

	_, err := a.program.Run()

	signal.Stop(sigChan)
	close(done)

	return err
}

// forwardQuit sends a quit message on the first signal. It returns as soon
// as done is closed.
func forwardQuit(sigs <-chan os.Signal, done <-chan struct{}, send func(tea.Msg)) {
	select {
	case <-sigs:
		send(tea.Quit())
	case <-done:
	}
}

// watchConfig re-applies notification settings when the config file
// changes. Without a config file there is nothing to watch.
func (a *App) watchConfig() {
	if viper.ConfigFileUsed() == "" {
		return
	}

	viper.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		cfg, err := config.Load()
		if err != nil {
			a.program.Send(configChangedMsg{err: err})
			return
		}
		a.program.Send(configChangedMsg{notify: NotifyConfig(cfg.Notifications)})
	})
	viper.WatchConfig()
}
