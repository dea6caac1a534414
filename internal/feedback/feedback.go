// Copyright (c) 2025, Kamaran Layne <kamaran@layne.dev>
// See LICENSE for licensing information

// Package feedback turns a user's comment into a timestamped message with
// system details attached and delivers it by mail.
package feedback

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"time"
	"unicode/utf8"
)

// MinLength is the shortest accepted comment, in characters.
const MinLength = 10

// SubjectLayout formats the timestamp in the subject line.
const SubjectLayout = "2006-01-02 15:04:05"

// ErrTooShort is returned by Validate for comments under MinLength characters.
var ErrTooShort = errors.New("feedback is too short")

// Validate rejects comments shorter than MinLength characters once surrounding
// whitespace is removed.
func Validate(text string) error {
	if n := utf8.RuneCountInString(strings.TrimSpace(text)); n < MinLength {
		return fmt.Errorf("%w: %d/%d characters", ErrTooShort, n, MinLength)
	}
	return nil
}

// Counter renders the character count shown next to the input. It counts
// the same trimmed text Validate checks.
func Counter(text string) string {
	n := utf8.RuneCountInString(strings.TrimSpace(text))
	if n < MinLength {
		return fmt.Sprintf("%d/at least %d characters", n, MinLength)
	}
	return fmt.Sprintf("characters: %d", n)
}

// SystemInfo is appended to every message.
type SystemInfo struct {
	App       string
	Version   string
	OS        string
	Arch      string
	GoVersion string
	CPUs      int
}

// Collect gathers SystemInfo for the running process.
func Collect(app, version string) SystemInfo {
	return SystemInfo{
		App:       app,
		Version:   strings.TrimSpace(version),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
		GoVersion: runtime.Version(),
		CPUs:      runtime.NumCPU(),
	}
}

func (i SystemInfo) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "App: %s %s\n", i.App, i.Version)
	fmt.Fprintf(&b, "OS: %s/%s\n", i.OS, i.Arch)
	fmt.Fprintf(&b, "Go: %s\n", i.GoVersion)
	fmt.Fprintf(&b, "CPUs: %d\n", i.CPUs)
	return b.String()
}

// Message is a composed feedback mail.
type Message struct {
	Subject string
	Body    string
}

// Compose validates text and builds the message sent at now.
func Compose(text string, info SystemInfo, now time.Time) (Message, error) {
	if err := Validate(text); err != nil {
		return Message{}, err
	}

	var b strings.Builder
	b.WriteString(strings.TrimSpace(text))
	b.WriteString("\n\n")
	b.WriteString(info.String())

	return Message{
		Subject: "Feedback - " + now.Format(SubjectLayout),
		Body:    b.String(),
	}, nil
}
