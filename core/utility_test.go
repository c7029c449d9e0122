// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core_test

import (
	"image"
	"image/color"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/devblok/verge/core"
)

var testImage image.Image

func init() {
	img := image.NewNRGBA(image.Rect(0, 0, 320, 240))
	for y := 0; y < 240; y++ {
		for x := 0; x < 320; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: uint8(x ^ y), A: 255})
		}
	}
	testImage = img
}

func TestSliceUint32(t *testing.T) {
	c := qt.New(t)
	c.Run("reslicesWholeWords", func(c *qt.C) {
		words := core.SliceUint32([]byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08})
		c.Assert(len(words), qt.Equals, 2)
		c.Assert(words[0], qt.Equals, uint32(0x04030201))
		c.Assert(words[1], qt.Equals, uint32(0x08070605))
	})
	c.Run("discardsTrailingBytes", func(c *qt.C) {
		words := core.SliceUint32(make([]byte, 10))
		c.Assert(len(words), qt.Equals, 2)
	})
	c.Run("sharesBackingMemory", func(c *qt.C) {
		data := []byte{0x01, 0x02, 0x03, 0x04}
		words := core.SliceUint32(data)
		words[0] = 0
		c.Assert(data, qt.DeepEquals, []byte{0, 0, 0, 0})
	})
}

func TestGetPixels(t *testing.T) {
	c := qt.New(t)
	c.Run("tightlyPacked", func(c *qt.C) {
		pixels, err := core.GetPixels(testImage, 0)
		c.Assert(err, qt.IsNil)
		c.Assert(len(pixels), qt.Equals, 4*320*240)

		offset := (5*320 + 10) * 4
		c.Assert(pixels[offset], qt.Equals, uint8(10))
		c.Assert(pixels[offset+1], qt.Equals, uint8(5))
		c.Assert(pixels[offset+2], qt.Equals, uint8(15))
		c.Assert(pixels[offset+3], qt.Equals, uint8(255))
	})
	c.Run("padsRowsToPitch", func(c *qt.C) {
		pixels, err := core.GetPixels(testImage, 2048)
		c.Assert(err, qt.IsNil)
		c.Assert(len(pixels), qt.Equals, 2048*240)

		offset := 5*2048 + 10*4
		c.Assert(pixels[offset], qt.Equals, uint8(10))
		c.Assert(pixels[offset+1], qt.Equals, uint8(5))
		c.Assert(pixels[offset+2], qt.Equals, uint8(15))
		c.Assert(pixels[offset+3], qt.Equals, uint8(255))

		// First byte past the packed row is padding.
		c.Assert(pixels[5*2048+4*320], qt.Equals, uint8(0))
	})
	c.Run("narrowPitchPacksTightly", func(c *qt.C) {
		pixels, err := core.GetPixels(testImage, 4)
		c.Assert(err, qt.IsNil)
		c.Assert(len(pixels), qt.Equals, 4*320*240)
	})
}

func BenchmarkGetPixelsNoRowPitch(b *testing.B) {
	for idx := 0; idx < b.N; idx++ {
		core.GetPixels(testImage, 0)
	}
}

func BenchmarkGetPixelsSmallRowPitch(b *testing.B) {
	for idx := 0; idx < b.N; idx++ {
		core.GetPixels(testImage, 4)
	}
}

func BenchmarkGetPixelsMediumRowPitch(b *testing.B) {
	for idx := 0; idx < b.N; idx++ {
		core.GetPixels(testImage, 200)
	}
}

func BenchmarkGetPixelsBigRowPitch(b *testing.B) {
	for idx := 0; idx < b.N; idx++ {
		core.GetPixels(testImage, 1000)
	}
}

func BenchmarkSliceUint32Small(b *testing.B) {
	data := make([]byte, 100)
	for idx := 0; idx < b.N; idx++ {
		core.SliceUint32(data)
	}
}

func BenchmarkSliceUint32Medium(b *testing.B) {
	data := make([]byte, 1000)
	for idx := 0; idx < b.N; idx++ {
		core.SliceUint32(data)
	}
}

func BenchmarkSliceUint32Big(b *testing.B) {
	data := make([]byte, 100000)
	for idx := 0; idx < b.N; idx++ {
		core.SliceUint32(data)
	}
}
