package tray

import (
	"context"
	_ "embed"
	"log"
	"time"

	"github.com/getlantern/systray"

	"github.com/rollcall-io/rollcall/internal/watcher"
)

//go:embed icon.png
var iconData []byte

var (
	state      *State
	onExit     func()
	statusItem *systray.MenuItem
	loginItem  *systray.MenuItem
	logoffItem *systray.MenuItem
	recentMenu *systray.MenuItem
	quitItem   *systray.MenuItem

	// Pre-allocated recent entry slots
	recentSlots [maxRecentSlots]*systray.MenuItem
	noRecent    *systray.MenuItem

	fileWatcher *watcher.Watcher
)

// Run starts the system tray. This blocks the calling goroutine (must be main).
// When watchPath is set the Recent menu follows changes to that file.
// onExitFn is called when the tray exits (cleanup here).
func Run(s *State, watchPath string, onExitFn func()) {
	state = s
	onExit = onExitFn
	if watchPath != "" {
		w, err := watcher.New()
		if err != nil {
			log.Printf("[tray] live refresh disabled: %v", err)
		} else if err := w.WatchFile(watchPath); err != nil {
			log.Printf("[tray] live refresh disabled: %v", err)
			w.Stop()
		} else {
			fileWatcher = w
		}
	}
	systray.Run(onReady, onQuit)
}

func onReady() {
	systray.SetTemplateIcon(iconData, iconData)
	systray.SetTooltip(state.Tooltip())

	header := systray.AddMenuItem("Rollcall: "+state.Employee(), "")
	header.Disable()

	statusItem = systray.AddMenuItem(state.Status(), "")
	statusItem.Disable()

	systray.AddSeparator()

	loginItem = systray.AddMenuItem("Login", "Record login time")
	logoffItem = systray.AddMenuItem("Logoff", "Record logoff time")

	systray.AddSeparator()

	recentMenu = systray.AddMenuItem("Recent", "Latest attendance entries")
	for i := 0; i < maxRecentSlots; i++ {
		recentSlots[i] = recentMenu.AddSubMenuItem("", "")
		recentSlots[i].Disable()
		recentSlots[i].Hide()
	}
	noRecent = recentMenu.AddSubMenuItem("No attendance records yet", "")
	noRecent.Disable()

	systray.AddSeparator()
	quitItem = systray.AddMenuItem("Quit", "Quit Rollcall")

	refresh()

	if fileWatcher != nil {
		fileWatcher.Start()
		go watchLoop(fileWatcher)
	}
	go handleClicks()
}

func onQuit() {
	if fileWatcher != nil {
		fileWatcher.Stop()
	}
	if onExit != nil {
		onExit()
	}
}

func handleClicks() {
	for {
		select {
		case <-loginItem.ClickedCh:
			msg, err := state.Login()
			if err != nil {
				log.Printf("[tray] login failed: %v", err)
			} else {
				log.Printf("[tray] %s", msg)
			}
			refresh()

		case <-logoffItem.ClickedCh:
			msg, err := state.Logoff()
			if err != nil {
				log.Printf("[tray] logoff failed: %v", err)
			} else {
				log.Printf("[tray] %s", msg)
			}
			refresh()

		case <-recentMenu.ClickedCh:
			refresh()

		case <-quitItem.ClickedCh:
			systray.Quit()
			return
		}
	}
}

func watchLoop(w *watcher.Watcher) {
	for range w.Events() {
		refresh()
	}
}

// refresh updates the status line, button states and Recent slots.
func refresh() {
	statusItem.SetTitle(state.Status())
	systray.SetTooltip(state.Tooltip())
	setEnabled(loginItem, state.CanLogin())
	setEnabled(logoffItem, state.CanLogoff())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	recent, err := state.Recent(ctx, maxRecentSlots)
	if err != nil {
		log.Printf("[tray] failed to load recent entries: %v", err)
	}
	UpdateRecent(recent)
}

// UpdateRecent refreshes the Recent submenu.
func UpdateRecent(entries []string) {
	for i := 0; i < maxRecentSlots; i++ {
		recentSlots[i].Hide()
	}
	if len(entries) == 0 {
		noRecent.Show()
		return
	}
	noRecent.Hide()
	for i, e := range entries {
		if i >= maxRecentSlots {
			break
		}
		recentSlots[i].SetTitle(e)
		recentSlots[i].Show()
	}
}

func setEnabled(item *systray.MenuItem, on bool) {
	if on {
		item.Enable()
	} else {
		item.Disable()
	}
}
