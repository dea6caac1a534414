// Copyright (c) 2025, Kamaran Layne <kamaran@layne.dev>
// See LICENSE for licensing information

//go:build !windows

package theme

import "context"

func dark() (bool, error) {
	return true, nil
}

func watch(ctx context.Context, _ Func) error {
	<-ctx.Done()
	return nil
}
