// Copyright (c) 2025, Kamaran Layne <kamaran@layne.dev>
// See LICENSE for licensing information

//go:build !windows

package icon

import "image"

func encodeTray(img image.Image) ([]byte, error) {
	return PNG(img)
}
