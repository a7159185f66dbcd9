// Package tui implements the interactive attendance form.
package tui

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rollcall-io/rollcall/internal/attendance"
	"github.com/rollcall-io/rollcall/internal/watcher"
)

// programRef is a shared reference to the tea.Program for goroutine sends.
// It's set after tea.NewProgram but before p.Run().
type programRef struct {
	mu sync.Mutex
	p  *tea.Program
}

func (r *programRef) Set(p *tea.Program) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.p = p
}

func (r *programRef) Send(msg tea.Msg) {
	r.mu.Lock()
	p := r.p
	r.mu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

// Clear nils out the program reference, preventing post-exit sends.
func (r *programRef) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.p = nil
}

// Run shows the form over backend with name pre-filled. It blocks until the user quits.
func Run(backend attendance.Backend, name string) error {
	ref := &programRef{}
	model := NewModel(backend, name, ref)

	done := make(chan struct{})
	defer close(done)

	if w, ok := backend.(attendance.Watchable); ok && w.WatchPath() != "" {
		fw, err := startWatcher(w.WatchPath())
		if err != nil {
			log.Printf("[tui] live refresh disabled: %v", err)
		} else {
			defer fw.Stop()
			model.watching = true
			go forwardFileEvents(fw, ref, done)
		}
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	// Store program reference for goroutine sends
	ref.Set(p)
	defer ref.Clear()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

func startWatcher(path string) (*watcher.Watcher, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	fw, err := watcher.New()
	if err != nil {
		return nil, err
	}
	if err := fw.WatchFile(path); err != nil {
		fw.Stop()
		return nil, err
	}
	fw.Start()
	return fw, nil
}
