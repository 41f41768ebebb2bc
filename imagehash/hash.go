// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package imagehash

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"math/bits"

	// Cover images arrive as JPEG, PNG or occasionally GIF.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

const gridSize = 8

// ErrEmptyImage indicates a zero-length or degenerate image.
var ErrEmptyImage = errors.New("empty image")

// AverageHash computes the 64-bit average hash of an encoded image.
// Bits are laid out row-major from the top-left cell, most significant
// bit first.
func AverageHash(data []byte) (uint64, error) {
	if len(data) == 0 {
		return 0, ErrEmptyImage
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return 0, fmt.Errorf("decoding image: %w", err)
	}
	return hashImage(img)
}

func hashImage(img image.Image) (uint64, error) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width == 0 || height == 0 {
		return 0, ErrEmptyImage
	}

	// Box-sample the image down to an 8x8 luminance grid. Each cell
	// averages over its share of source pixels, so the hash is stable
	// across input resolutions.
	var grid [gridSize * gridSize]float64
	var total float64
	for gy := 0; gy < gridSize; gy++ {
		y0 := bounds.Min.Y + gy*height/gridSize
		y1 := bounds.Min.Y + (gy+1)*height/gridSize
		if y1 == y0 {
			y1 = y0 + 1
		}
		for gx := 0; gx < gridSize; gx++ {
			x0 := bounds.Min.X + gx*width/gridSize
			x1 := bounds.Min.X + (gx+1)*width/gridSize
			if x1 == x0 {
				x1 = x0 + 1
			}

			var sum float64
			for y := y0; y < y1; y++ {
				for x := x0; x < x1; x++ {
					sum += luminance(img.At(x, y).RGBA())
				}
			}
			cell := sum / float64((y1-y0)*(x1-x0))
			grid[gy*gridSize+gx] = cell
			total += cell
		}
	}

	mean := total / float64(gridSize*gridSize)
	var hash uint64
	for i, cell := range grid {
		if cell >= mean {
			hash |= 1 << (63 - i)
		}
	}
	return hash, nil
}

// luminance converts premultiplied 16-bit RGBA to Rec. 601 luma.
func luminance(r, g, b, _ uint32) float64 {
	return 0.299*float64(r>>8) + 0.587*float64(g>>8) + 0.114*float64(b>>8)
}

// Distance returns the Hamming distance between two hashes, the number
// of grid cells on which the covers disagree. Range 0 to 64.
func Distance(a, b uint64) int {
	return bits.OnesCount64(a ^ b)
}
