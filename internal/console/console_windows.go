// Copyright (c) 2025, Kamaran Layne <kamaran@layne.dev>
// See LICENSE for licensing information

//go:build windows

package console

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/windows"
)

const supported = true

var (
	kernel32          = windows.NewLazySystemDLL("kernel32.dll")
	procAttachConsole = kernel32.NewProc("AttachConsole")
	procAllocConsole  = kernel32.NewProc("AllocConsole")
	procFreeConsole   = kernel32.NewProc("FreeConsole")
)

func attachConsole(pid uint32) error {
	if r1, _, err := procAttachConsole.Call(uintptr(pid)); r1 == 0 {
		return fmt.Errorf("failed call to AttachConsole: %w", err)
	}
	return nil
}

func allocConsole() error {
	if r1, _, err := procAllocConsole.Call(); r1 == 0 {
		return fmt.Errorf("failed call to AllocConsole: %w", err)
	}
	return nil
}

func freeConsole() error {
	if r1, _, err := procFreeConsole.Call(); r1 == 0 {
		return fmt.Errorf("failed call to FreeConsole: %w", err)
	}
	return nil
}

// bindConsole assigns a standard handle (stdin, stdout, stderr) to the given file.
func (c *Console) bindConsole(name string, hstd uint32, file *os.File) error {
	if err := windows.SetStdHandle(hstd, windows.Handle(file.Fd())); err != nil {
		return fmt.Errorf("failed to bind %s to %q: %w", name, file.Name(), err)
	}

	return nil
}

// launchConsole opens the console input ("CONIN$") and output ("CONOUT$") files, binds them to the
// standard handles, and replaces os.Stdin, os.Stdout and os.Stderr with them.
// If any step fails, the opened files are closed and a descriptive error is returned.
func (c *Console) launchConsole() error {
	in := "CONIN$"
	infile, err := os.OpenFile(in, os.O_RDWR, 0)
	if err != nil {
		return fmt.Errorf("failed to open %q: %w", in, err)
	}

	out := "CONOUT$"
	outfile, err := os.OpenFile(out, os.O_RDWR, 0)
	if err != nil {
		_ = infile.Close()

		return fmt.Errorf("failed to open %q: %w", out, err)
	}

	errs := []error{
		c.bindConsole("stdin", windows.STD_INPUT_HANDLE, infile),
		c.bindConsole("stdout", windows.STD_OUTPUT_HANDLE, outfile),
		c.bindConsole("stderr", windows.STD_ERROR_HANDLE, outfile),
	}
	if err = errors.Join(errs...); err != nil {
		_ = infile.Close()
		_ = outfile.Close()

		return err
	}

	c.infile, c.outfile = infile, outfile
	os.Stdin, os.Stdout, os.Stderr = infile, outfile, outfile
	c.bound = true

	return nil
}
