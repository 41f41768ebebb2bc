// Package imagehash computes 64-bit perceptual hashes of book cover
// images. The hash is an 8x8 average hash: the image is reduced to an
// 8x8 grayscale grid and each bit records whether its cell is brighter
// than the grid mean. Similar covers differ in few bits, so Hamming
// distance between hashes approximates visual distance.
package imagehash
