// Package agent runs the resident tray process: a status item, a global
// hotkey and a picker dialog over the frontmost application's menu items.
package agent

import (
	"context"
	"errors"
	"fmt"
	"log"
	"runtime"
	"sync"

	"github.com/getlantern/systray"
	"github.com/ncruces/zenity"
	"golang.design/x/hotkey"

	"github.com/example/gomenu/internal/ax"
	"github.com/example/gomenu/internal/config"
	"github.com/example/gomenu/internal/dispatch"
	"github.com/example/gomenu/internal/launcher"
	"github.com/example/gomenu/internal/logging"
	"github.com/example/gomenu/internal/notify"
)

// Agent owns one tray session.
type Agent struct {
	system   *ax.System
	handler  *launcher.Handler
	notifier *notify.Notifier

	mu      sync.Mutex
	cfg     config.Config
	hk      *hotkey.Hotkey
	picking bool
}

// New builds the resident agent for the given settings.
func New(cfg config.Config) *Agent {
	system := ax.NewSystem()
	return &Agent{
		system:   system,
		handler:  launcher.New(system, dispatch.Call, cfg),
		notifier: notify.New(cfg.Notifications),
		cfg:      cfg,
	}
}

// Run serves the tray until Quit is chosen. The main OS thread stays
// parked in dispatch.Run; Run blocks the calling goroutine.
func (a *Agent) Run() {
	systray.Run(a.onReady, a.onExit)
}

func (a *Agent) onReady() {
	hideFromDock()
	icon := trayIcon()
	systray.SetIcon(icon)
	if runtime.GOOS == "darwin" {
		systray.SetTemplateIcon(icon, icon)
	}
	systray.SetTooltip("GoMenu")

	search := systray.AddMenuItem("Search Menus", "Pick a menu item of the frontmost application")
	notifications := systray.AddMenuItemCheckbox("Notifications", "Report failed actions as notifications", a.cfg.Notifications)
	settings := systray.AddMenuItem("Open Accessibility Settings", "Review the permission needed to read menus")
	systray.AddSeparator()
	quit := systray.AddMenuItem("Quit GoMenu", "Exit the application")

	go a.serveMenu(search, notifications, settings, quit)

	if err := a.registerHotkey(); err != nil {
		log.Printf("agent: global hotkey unavailable: %v", err)
	}
}

func (a *Agent) onExit() {
	a.mu.Lock()
	hk := a.hk
	a.hk = nil
	a.mu.Unlock()
	if hk != nil {
		if err := hk.Unregister(); err != nil {
			log.Printf("agent: unregister hotkey: %v", err)
		}
	}
	a.handler.Close()
	log.Printf("agent: stopped")
}

func (a *Agent) serveMenu(search, notifications, settings, quit *systray.MenuItem) {
	for {
		select {
		case <-search.ClickedCh:
			go a.pick()
		case <-notifications.ClickedCh:
			if a.toggleNotifications() {
				notifications.Check()
			} else {
				notifications.Uncheck()
			}
		case <-settings.ClickedCh:
			if err := notify.OpenSettings(); err != nil {
				log.Printf("agent: open settings: %v", err)
			}
		case <-quit.ClickedCh:
			systray.Quit()
			return
		}
	}
}

// toggleNotifications flips the setting, persists it and returns the new
// state.
func (a *Agent) toggleNotifications() bool {
	a.mu.Lock()
	a.cfg.Notifications = !a.cfg.Notifications
	cfg := a.cfg
	a.mu.Unlock()

	a.notifier.SetEnabled(cfg.Notifications)
	if err := config.Save(cfg); err != nil {
		log.Printf("agent: save settings: %v", err)
	}
	return cfg.Notifications
}

func (a *Agent) registerHotkey() error {
	a.mu.Lock()
	combo := a.cfg.Hotkey
	a.mu.Unlock()
	if combo == "" {
		return nil
	}

	mods, key, err := parseHotkey(combo)
	if err != nil {
		return err
	}
	hk := hotkey.New(mods, key)
	if err := hk.Register(); err != nil {
		return fmt.Errorf("agent: register %s: %w", combo, err)
	}

	a.mu.Lock()
	a.hk = hk
	a.mu.Unlock()
	log.Printf("agent: hotkey %s registered", FormatHotkey(combo))
	go a.listenHotkey(hk)
	return nil
}

// listenHotkey serves presses until Unregister closes the channel.
func (a *Agent) listenHotkey(hk *hotkey.Hotkey) {
	for range hk.Keydown() {
		go a.pick()
	}
}

// pick shows the picker for the frontmost application and performs the
// chosen entry. One picker at a time; extra triggers are dropped.
func (a *Agent) pick() {
	if !a.beginPick() {
		return
	}
	defer a.endPick()

	app, err := a.system.Frontmost()
	if err != nil {
		log.Printf("agent: no frontmost application: %v", err)
		return
	}

	ranked := a.handler.Handle(context.Background(), launcher.NewQuery(""))
	if len(ranked) == 0 {
		// A missing permission already raised its own prompt inside
		// the handler; only an accessible yet empty menu bar is news.
		if ax.Trusted() {
			a.notifier.NoMenus(app.Name)
		}
		return
	}

	labels := pickerLabels(ranked)
	choice, err := zenity.List(
		"Menu items of "+app.Name,
		labels,
		zenity.Title("GoMenu"),
		zenity.OKLabel("Perform"),
		zenity.CancelLabel("Cancel"),
	)
	if err != nil {
		if !errors.Is(err, zenity.ErrCanceled) {
			log.Printf("agent: picker: %v", err)
		}
		return
	}

	for i, label := range labels {
		if label != choice {
			continue
		}
		item := ranked[i].Item
		logging.Debugf("agent: performing %q", item.ID())
		if err := item.Perform(context.Background(), a.handler.Call()); err != nil {
			a.notifier.ActionFailed(item.Text(), err)
		}
		return
	}
}

// pickerLabels renders one selectable line per result: the breadcrumb
// plus the shortcut when the entry has one.
func pickerLabels(ranked []launcher.RankItem) []string {
	labels := make([]string, len(ranked))
	for i, r := range ranked {
		label := r.Item.Subtext()
		if sc := r.Item.Shortcut(); sc != "" {
			label += "   " + sc
		}
		labels[i] = label
	}
	return labels
}

func (a *Agent) beginPick() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.picking {
		return false
	}
	a.picking = true
	return true
}

func (a *Agent) endPick() {
	a.mu.Lock()
	a.picking = false
	a.mu.Unlock()
}
