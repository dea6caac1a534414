// Copyright (c) 2025, Kamaran Layne <kamaran@layne.dev>
// See LICENSE for licensing information

package app

import (
	"os"
	"strings"

	"github.com/kamaranl/snowflake/internal/state"
	"github.com/ncruces/zenity"
)

type dialogKind int

const (
	dialogInfo dialogKind = iota
	dialogWarning
	dialogError
)

func (k dialogKind) icon() zenity.DialogIcon {
	switch k {
	case dialogWarning:
		return zenity.WarningIcon
	case dialogError:
		return zenity.ErrorIcon
	default:
		return zenity.InfoIcon
	}
}

// msgbox shows a dialog without blocking the caller. Only one dialog per title
// is open at a time. A non-negative exitCode ends the process once the dialog
// is dismissed.
func (a *Application) msgbox(title string, text string, kind dialogKind, exitCode int) {
	stateLabel := "msgbox_" + strings.ToLower(strings.ReplaceAll(title, " ", ""))
	if state.Swap(a.State, stateLabel, true) {
		return
	}

	go func() {
		showDialog(a.Meta.Name+" "+title, text, kind)
		state.Set(a.State, stateLabel, false)

		if exitCode >= 0 {
			os.Exit(exitCode)
		}
	}()
}

// showDialog blocks until the dialog is dismissed.
func showDialog(title, text string, kind dialogKind) {
	opts := []zenity.Option{zenity.Title(title), kind.icon()}
	if kind == dialogError {
		_ = zenity.Error(text, opts...)
		return
	}
	_ = zenity.Info(text, opts...)
}
