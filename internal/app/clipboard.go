// Copyright (c) 2025, Kamaran Layne <kamaran@layne.dev>
// See LICENSE for licensing information

package app

import (
	"fmt"
	"sync"

	"golang.design/x/clipboard"
)

var initClipboard = sync.OnceValue(clipboard.Init)

// copyToClipboard puts text on the system clipboard as plain text.
func copyToClipboard(text string) error {
	if err := initClipboard(); err != nil {
		return fmt.Errorf("clipboard unavailable: %w", err)
	}
	clipboard.Write(clipboard.FmtText, []byte(text))
	return nil
}
