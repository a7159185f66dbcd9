package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rollcall-io/rollcall/internal/attendance"
	"github.com/rollcall-io/rollcall/internal/watcher"
)

func loginCmd(backend attendance.Backend, name string) tea.Cmd {
	return func() tea.Msg {
		r, err := backend.Login(context.Background(), name)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return ActionDoneMsg{Receipt: r}
	}
}

func logoffCmd(backend attendance.Backend, name string) tea.Cmd {
	return func() tea.Msg {
		r, err := backend.Logoff(context.Background(), name)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return ActionDoneMsg{Receipt: r}
	}
}

func loadLogsCmd(backend attendance.Backend, requested bool) tea.Cmd {
	return func() tea.Msg {
		table, err := backend.Logs(context.Background())
		if err != nil {
			return ErrorMsg{Err: err, Background: !requested}
		}
		return LogsLoadedMsg{Table: table, Requested: requested}
	}
}

// forwardFileEvents relays watcher events to the program until done is closed.
func forwardFileEvents(w *watcher.Watcher, program *programRef, done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case _, ok := <-w.Events():
			if !ok {
				return
			}
			program.Send(LogFileChangedMsg{})
		}
	}
}

func clockTick() tea.Cmd {
	return tea.Tick(time.Second, func(_ time.Time) tea.Msg {
		return clockTickMsg{}
	})
}

func clearErrorAfter(d time.Duration, seq int) tea.Cmd {
	return tea.Tick(d, func(_ time.Time) tea.Msg {
		return ClearErrorMsg{Seq: seq}
	})
}
