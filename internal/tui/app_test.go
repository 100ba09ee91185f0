package tui

import (
	"os"
	"syscall"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func TestForwardQuit(t *testing.T) {
	t.Run("signal sends quit", func(t *testing.T) {
		sigs := make(chan os.Signal, 1)
		sent := make(chan tea.Msg, 1)
		sigs <- syscall.SIGTERM

		forwardQuit(sigs, make(chan struct{}), func(msg tea.Msg) { sent <- msg })

		select {
		case msg := <-sent:
			if _, ok := msg.(tea.QuitMsg); !ok {
				t.Errorf("sent %T, want tea.QuitMsg", msg)
			}
		default:
			t.Fatal("no message sent")
		}
	})

	t.Run("returns when done closes", func(t *testing.T) {
		done := make(chan struct{})
		returned := make(chan struct{})
		go func() {
			forwardQuit(make(chan os.Signal), done, func(tea.Msg) { t.Error("unexpected send") })
			close(returned)
		}()

		close(done)
		select {
		case <-returned:
		case <-time.After(time.Second):
			t.Fatal("forwardQuit did not return after done was closed")
		}
	})
}
