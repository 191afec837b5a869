// Package transform provides the color and geometric operations the editor
// applies to a [bitmap.Grid].
//
// # Ownership
//
// Every transform reads its input and returns a newly allocated grid. The
// input is never modified and the result never shares its pixel slice, so
// callers simply replace their reference:
//
//	g = transform.Grayscale(g)
//	g = transform.Mirror(g)
//
// # Arithmetic
//
// All averaging uses integer division, which truncates toward zero for the
// non-negative channel sums involved: (1+2)/2 is 1 and (255+254+0)/3 is 169.
//
// # Color Transforms
//
// [Grayscale] replaces each pixel with the truncated mean of its channels.
// [Posterize] snaps each channel to one of 0, 64, 128, 192 or 255.
//
// # Geometric Transforms
//
//   - [Mirror] doubles the width: the left half is the original and the right
//     half its horizontal flip.
//   - [Squash] halves the width by averaging horizontal pixel pairs.
//   - [Shrink] halves both dimensions by averaging 2×2 blocks.
//   - [Reflect] flips each row horizontally.
//   - [Rotate] transposes the image, swapping width and height.
//   - [Skew] shifts row y left by y positions in the flattened pixel buffer.
//
// # Preconditions
//
// Squash needs an even width and Shrink an even width and height. The
// transforms do not check this: with odd dimensions the last column or row
// is dropped. Callers that want a defined result check [Op.NeedsEvenWidth]
// and [Op.NeedsEvenHeight] first.
//
// # Compatibility Mode
//
// [Options.Compat] reproduces two defects of the program this editor
// replaces, for byte-level comparison with its output:
//
//   - [ReflectCompat] writes column x to flattened index y*w + (w-x+1)
//     instead of y*w + (w-1-x). Writes past the end of the buffer are
//     dropped and pixels nothing writes to stay black.
//   - [PosterizeCompat] leaves blue values 224-254 unchanged.
//
// # Registry
//
// [Lookup], [Names] and [Chain] expose the transforms by name and by their
// one-letter menu key so the CLI, the HTTP API and the pipeline share one
// table.
package transform
