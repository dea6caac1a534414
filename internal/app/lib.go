// Copyright (c) 2025, Kamaran Layne <kamaran@layne.dev>
// See LICENSE for licensing information

package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/getlantern/systray"
	"github.com/kamaranl/snowflake/internal/config"
	"github.com/kamaranl/snowflake/internal/feedback"
	"github.com/kamaranl/snowflake/internal/icon"
	"github.com/kamaranl/snowflake/internal/news"
	"github.com/kamaranl/snowflake/internal/snow"
	"github.com/kamaranl/snowflake/internal/state"
	"github.com/kamaranl/snowflake/internal/theme"
	"github.com/ncruces/zenity"
)

const (
	newsTimeout     = 10 * time.Second
	feedbackTimeout = 30 * time.Second
)

// Snowfall is the part of the overlay driven from the tray.
type Snowfall interface {
	SetProfile(p snow.ShapeProfile)
	TogglePause() bool
	Paused() bool
	Stop()
}

// API defines the actions behind the tray menu: changing the shape, pausing the
// snowfall, keeping the tray in sync with the overlay and the desktop theme,
// fetching the news banner and sending feedback.
type API interface {
	FetchNews(ctx context.Context)
	PromptFeedback(ctx context.Context)
	RefreshIcon()
	RefreshSystray()
	SelectShape(index int)
	SubmitFeedback(ctx context.Context, text string) error
	TogglePause()
	WatchTheme(ctx context.Context)
}

// Library implements API on top of an Application.
//
// Methods:
//   - FetchNews: Downloads the news file and shows its first line in the tray.
//   - PromptFeedback: Asks for a comment and mails it to the developers.
//   - RefreshIcon: Paints the tray icon for the current desktop theme.
//   - RefreshSystray: Syncs the shape checkmarks and pause label with the overlay.
//   - SelectShape: Switches the falling shape and remembers it.
//   - SubmitFeedback: Validates, composes and sends a feedback message, keeping it on the clipboard if sending fails.
//   - TogglePause: Freezes or resumes the snowfall.
//   - WatchTheme: Repaints the icon whenever the desktop theme flips.
type Library struct {
	App          *Application
	Snow         Snowfall
	Sender       feedback.Sender
	Clipboard    feedback.CopyFunc
	SettingsPath string
	mu           sync.Mutex
}

var _ API = (*Library)(nil)

// SelectShape switches the overlay to profile index, persists the choice and
// updates the tray. An unknown index is ignored.
func (l *Library) SelectShape(index int) {
	p, ok := snow.Lookup(index)
	if !ok {
		l.App.Log.Warnf("Ignoring unknown shape index %d", index)
		return
	}

	l.mu.Lock()
	l.Snow.SetProfile(p)
	state.Set(l.App.State, "shape_index", p.Index)
	l.mu.Unlock()

	if l.SettingsPath != "" {
		if err := config.SaveSettings(l.SettingsPath, config.Settings{ShapeIndex: p.Index}); err != nil {
			l.App.Log.Warnf("Failed to save settings: %v", err)
		} else {
			l.App.Log.Debugf("Saved shape %q to %q", p.Name, l.SettingsPath)
		}
	}

	l.RefreshSystray()
}

// TogglePause flips the overlay between falling and frozen.
func (l *Library) TogglePause() {
	l.mu.Lock()
	paused := l.Snow.TogglePause()
	l.mu.Unlock()

	if paused {
		l.App.Log.Info("Snowfall paused")
	} else {
		l.App.Log.Info("Snowfall resumed")
	}
	l.RefreshSystray()
}

// RefreshSystray updates the shape checkmarks, the pause label and the tooltip.
func (l *Library) RefreshSystray() {
	if !l.trayReady() {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	index, _ := state.Get[int](l.App.State, "shape_index")
	p, _ := snow.Lookup(index)
	paused := l.Snow.Paused()

	if shapes, ok := state.Get[[]*systray.MenuItem](l.App.State, "menu_shapes"); ok {
		for i, item := range shapes {
			if i == p.Index {
				item.Check()
			} else {
				item.Uncheck()
			}
		}
	}

	if mPause, ok := state.Get[*systray.MenuItem](l.App.State, "menu_pause"); ok {
		if paused {
			mPause.SetTitle("Resume snow")
		} else {
			mPause.SetTitle("Pause snow")
		}
	}

	tooltip := l.App.Meta.Name + ": " + p.Name
	if paused {
		tooltip += " (paused)"
	}
	systray.SetTooltip(tooltip)
}

func (l *Library) trayReady() bool {
	ready, _ := state.Get[bool](l.App.State, "tray_ready")
	return ready
}

// RefreshIcon paints the tray icon for the current theme.
func (l *Library) RefreshIcon() {
	dark, err := theme.Dark()
	if err != nil {
		l.App.Log.Warnf("Failed to read theme: %v", err)
	}
	l.setIcon(dark)
}

func (l *Library) setIcon(dark bool) {
	if !l.trayReady() {
		return
	}
	b, err := icon.Tray(dark)
	if err != nil {
		l.App.Log.Errorf("Failed to render tray icon: %v", err)
		return
	}
	systray.SetIcon(b)
}

// WatchTheme repaints the tray icon until ctx is done.
func (l *Library) WatchTheme(ctx context.Context) {
	go func() {
		err := theme.Watch(ctx, func(dark bool) {
			l.App.Log.Debugf("Theme changed (dark: %t)", dark)
			l.setIcon(dark)
		})
		if err != nil {
			l.App.ErrCh <- fmt.Errorf("theme watch stopped: %w", err)
		}
	}()
}

// FetchNews shows the first line of the configured news file in the tray.
// Failures are logged; the menu item stays hidden.
func (l *Library) FetchNews(ctx context.Context) {
	url := l.App.Config.NewsURL
	if url == "" {
		return
	}

	go func() {
		client := news.New(l.App.Meta.Name+"/"+strings.TrimSpace(l.App.Meta.Version), newsTimeout)
		text, err := client.Fetch(ctx, url)
		if err != nil {
			l.App.Log.Warnf("Failed to fetch news: %v", err)
			return
		}

		banner := news.Banner(text)
		if banner == "" {
			return
		}
		l.App.Log.Debugf("News: %s", banner)

		if mNews, ok := state.Get[*systray.MenuItem](l.App.State, "menu_news"); ok {
			mNews.SetTitle(banner)
			mNews.Show()
		}
	}()
}

// PromptFeedback asks for a comment and sends it. Only one prompt is open at
// a time; cancelling the prompt sends nothing.
func (l *Library) PromptFeedback(ctx context.Context) {
	if state.Swap(l.App.State, "dialog_feedback", true) {
		return
	}
	defer state.Set(l.App.State, "dialog_feedback", false)

	title := l.App.Meta.Name + " Feedback"
	text, err := zenity.Entry(
		fmt.Sprintf("Tell us what you think (at least %d characters):", feedback.MinLength),
		zenity.Title(title),
		zenity.OKLabel("Send"),
	)
	if errors.Is(err, zenity.ErrCanceled) {
		return
	}
	if err != nil {
		l.App.ErrCh <- fmt.Errorf("failed to show feedback prompt: %w", err)
		return
	}

	switch err := l.SubmitFeedback(ctx, text); {
	case errors.Is(err, feedback.ErrTooShort):
		l.App.msgbox("Feedback", "Please write a little more ("+feedback.Counter(text)+").", dialogWarning, -1)
	case errors.Is(err, feedback.ErrCopied):
		l.App.Log.Errorf("Failed to send feedback: %v", err)
		l.App.msgbox("Feedback", "Your feedback could not be sent, so it was copied to the clipboard.\n\n"+err.Error(), dialogError, -1)
	case err != nil:
		l.App.Log.Errorf("Failed to send feedback: %v", err)
		l.App.msgbox("Feedback", "Your feedback could not be sent.\n\n"+err.Error(), dialogError, -1)
	default:
		l.App.msgbox("Feedback", "Thank you! Your feedback was sent.", dialogInfo, -1)
	}
}

// SubmitFeedback composes text with the system details and sends it. If the
// send fails the comment is copied to the clipboard when one is available.
func (l *Library) SubmitFeedback(ctx context.Context, text string) error {
	ctx, cancel := context.WithTimeout(ctx, feedbackTimeout)
	defer cancel()

	info := feedback.Collect(l.App.Meta.Name, l.App.Meta.Version)
	msg, err := feedback.Submit(ctx, l.Sender, text, info, time.Now(), l.Clipboard)
	if err != nil {
		return err
	}
	l.App.Log.Infof("Feedback sent: %s", msg.Subject)
	return nil
}
