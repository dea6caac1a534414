// Copyright (c) 2025, Kamaran Layne <kamaran@layne.dev>
// See LICENSE for licensing information

// Package news fetches the remote text file whose first line is shown as a
// banner in the tray menu.
package news

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-resty/resty/v2"
)

// BannerWidth is the longest banner shown in the tray, in characters.
const BannerWidth = 64

// Client fetches remote text files.
type Client struct {
	r *resty.Client
}

// New returns a Client whose requests time out after timeout and identify
// themselves with userAgent.
func New(userAgent string, timeout time.Duration) *Client {
	r := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept", "text/plain")
	return &Client{r: r}
}

// Fetch returns the body of url with surrounding whitespace removed.
func (c *Client) Fetch(ctx context.Context, url string) (string, error) {
	body, err := c.get(ctx, url)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(body)), nil
}

// Size returns the length in bytes of the body served at url.
func (c *Client) Size(ctx context.Context, url string) (int64, error) {
	body, err := c.get(ctx, url)
	if err != nil {
		return 0, err
	}
	return int64(len(body)), nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	resp, err := c.r.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("failed to fetch %s: %s", url, resp.Status())
	}
	return resp.Body(), nil
}

// Banner picks the first non-empty line of text and shortens it to
// BannerWidth characters.
func Banner(text string) string {
	for line := range strings.Lines(text) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if utf8.RuneCountInString(line) <= BannerWidth {
			return line
		}
		r := []rune(line)
		return strings.TrimSpace(string(r[:BannerWidth-1])) + "…"
	}
	return ""
}
