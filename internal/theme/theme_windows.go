// Copyright (c) 2025, Kamaran Layne <kamaran@layne.dev>
// See LICENSE for licensing information

//go:build windows

package theme

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"
)

const (
	regKeyPath   = `Software\Microsoft\Windows\CurrentVersion\Themes\Personalize`
	regValueName = "SystemUsesLightTheme"
)

// dark opens the Personalize key and reads SystemUsesLightTheme.
// Windows builds without the value predate light taskbars, so a missing value counts as dark.
func dark() (bool, error) {
	key, err := registry.OpenKey(registry.CURRENT_USER, regKeyPath, registry.QUERY_VALUE)
	if err != nil {
		return true, fmt.Errorf("failed call to OpenKey: %w", err)
	}
	defer func() { _ = key.Close() }()

	value, _, err := key.GetIntegerValue(regValueName)
	if errors.Is(err, registry.ErrNotExist) {
		return true, nil
	}
	if err != nil {
		return true, fmt.Errorf("failed call to GetIntegerValue: %w", err)
	}

	return value == 0, nil
}

// watch opens a notify handle on the Personalize key and waits for either a
// change event or the stop event signalled when ctx ends. Each change re-reads
// the value and calls fn only if the theme actually flipped.
func watch(ctx context.Context, fn Func) error {
	var hKey windows.Handle
	if err := windows.RegOpenKeyEx(windows.HKEY_CURRENT_USER, windows.StringToUTF16Ptr(regKeyPath), 0, windows.KEY_NOTIFY, &hKey); err != nil {
		return fmt.Errorf("failed call to RegOpenKeyEx: %w", err)
	}
	defer func() { _ = windows.RegCloseKey(hKey) }()

	changed, err := windows.CreateEvent(nil, 0, 0, nil)
	if err != nil {
		return fmt.Errorf("failed call to CreateEvent: %w", err)
	}
	defer func() { _ = windows.CloseHandle(changed) }()

	stop, err := windows.CreateEvent(nil, 1, 0, nil)
	if err != nil {
		return fmt.Errorf("failed call to CreateEvent: %w", err)
	}
	defer func() { _ = windows.CloseHandle(stop) }()

	var wg sync.WaitGroup
	done := make(chan struct{})
	defer wg.Wait()
	defer close(done)

	wg.Add(1)
	go func() {
		defer wg.Done()
		select {
		case <-ctx.Done():
			_ = windows.SetEvent(stop)
		case <-done:
		}
	}()

	last, _ := dark()
	for {
		err = windows.RegNotifyChangeKeyValue(hKey, false, windows.REG_NOTIFY_CHANGE_LAST_SET, changed, true)
		if err != nil {
			return fmt.Errorf("failed call to RegNotifyChangeKeyValue: %w", err)
		}

		r1, err := windows.WaitForMultipleObjects([]windows.Handle{changed, stop}, false, windows.INFINITE)
		if err != nil {
			return fmt.Errorf("failed call to WaitForMultipleObjects: %w", err)
		}
		if r1 != windows.WAIT_OBJECT_0 {
			return nil
		}

		now, err := dark()
		if err != nil {
			return err
		}
		if now != last {
			last = now
			fn(now)
		}
	}
}
