// Copyright (c) 2025, Kamaran Layne <kamaran@layne.dev>
// See LICENSE for licensing information

package icon

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func opaquePixels(img *image.RGBA) int {
	n := 0
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] > 0 {
			n++
		}
	}
	return n
}

func TestRenderDrawsSomething(t *testing.T) {
	for _, dark := range []bool{true, false} {
		img := Render(Size, dark)
		assert.Equal(t, image.Rect(0, 0, Size, Size), img.Bounds())

		n := opaquePixels(img)
		assert.Greater(t, n, 0)
		assert.Less(t, n, Size*Size, "background must stay transparent")

		cx := img.RGBAAt(Size/2, Size/2)
		want := Slate
		if dark {
			want = Light
		}
		assert.Equal(t, want.R, cx.R, "center pixel colour")
	}
}

func TestRenderZeroSize(t *testing.T) {
	img := Render(0, true)
	assert.True(t, img.Bounds().Empty())
}

func TestICO(t *testing.T) {
	data, err := ICO(Render(Size, true))
	require.NoError(t, err)

	var dir [3]uint16
	require.NoError(t, binary.Read(bytes.NewReader(data[:6]), binary.LittleEndian, &dir))
	assert.Equal(t, [3]uint16{0, 1, 1}, dir)

	assert.Equal(t, byte(Size), data[6])
	assert.Equal(t, byte(Size), data[7])
	assert.Equal(t, uint16(32), binary.LittleEndian.Uint16(data[12:14]))

	size := binary.LittleEndian.Uint32(data[14:18])
	offset := binary.LittleEndian.Uint32(data[18:22])
	assert.Equal(t, uint32(22), offset)
	require.Equal(t, int(offset+size), len(data))

	img, err := png.Decode(bytes.NewReader(data[offset:]))
	require.NoError(t, err)
	assert.Equal(t, Size, img.Bounds().Dx())
}

func TestICOLargestSizeStoredAsZero(t *testing.T) {
	data, err := ICO(image.NewRGBA(image.Rect(0, 0, 256, 256)))
	require.NoError(t, err)
	assert.Equal(t, byte(0), data[6])
	assert.Equal(t, byte(0), data[7])
}

func TestICORejectsOversize(t *testing.T) {
	_, err := ICO(image.NewRGBA(image.Rect(0, 0, 512, 512)))
	assert.Error(t, err)
}

func TestTray(t *testing.T) {
	data, err := Tray(false)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}
