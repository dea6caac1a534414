// Copyright (c) 2025, Kamaran Layne <kamaran@layne.dev>
// See LICENSE for licensing information

package feedback

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrCopied is joined to a delivery error once the comment was placed on the
// clipboard, so the user can paste it elsewhere.
var ErrCopied = errors.New("comment copied to the clipboard")

// CopyFunc places text on the clipboard.
type CopyFunc func(text string) error

// Submit composes text and delivers it through s. A nil s counts as
// ErrNotConfigured. When delivery fails and keep is set, the trimmed comment
// is handed to keep and the returned error also matches ErrCopied. Comments
// rejected by Validate are never copied.
func Submit(ctx context.Context, s Sender, text string, info SystemInfo, now time.Time, keep CopyFunc) (Message, error) {
	msg, err := Compose(text, info, now)
	if err != nil {
		return Message{}, err
	}

	if s == nil {
		err = ErrNotConfigured
	} else {
		err = s.Send(ctx, msg)
	}
	if err == nil {
		return msg, nil
	}

	if keep == nil {
		return msg, err
	}
	if cerr := keep(strings.TrimSpace(text)); cerr != nil {
		return msg, fmt.Errorf("%w; failed to copy to clipboard: %w", err, cerr)
	}
	return msg, fmt.Errorf("%w; %w", err, ErrCopied)
}
