// Package pkg provides the libraries behind bmpedit, an editor for
// uncompressed 24-bit BMP images.
//
// # Overview
//
// Data flows leaf to root:
//
//	file
//	  ↓  [fileio]            map read-only
//	  ↓  [bmp]               decode header and bottom-up BGR rows
//	[bitmap].Grid            row-major packed colors ([pixel])
//	  ↓  [bitmap/transform]  grayscale, posterize, mirror, squash,
//	  ↓                      reflect, rotate, skew, shrink
//	  ↓  [bmp]               encode into a writable mapping
//	file
//
// [pipeline] runs that flow with caching ([cache]) and instrumentation
// ([observability]); the CLI and HTTP server are thin layers over it.
//
// # Quick Start
//
//	data, _ := os.ReadFile("in.bmp")
//	g, err := bmp.Decode(data)
//	if err != nil {
//	    return err
//	}
//	g = transform.Mirror(g)
//	out, _ := bmp.Encode(g)
//
// # Packages
//
// [pixel] - Packing of 8-bit R, G, B channels into one integer.
//
// [bitmap] - The pixel grid shared by codec and transforms.
//
// [bitmap/transform] - Pure grid transforms and the named-op registry used by
// menus, the CLI and the HTTP API.
//
// [bmp] - Codec for the accepted BMP subset: "BM" magic, 24 bits per pixel,
// no compression, positive width and height.
//
// [fileio] - Scoped memory mappings of input and output files.
//
// [errors] - Coded errors shared by every layer.
//
// [pipeline] - Load → transform chain → save with result caching.
//
// [cache] - File (zstd), Redis and null result caches.
//
// [config] - TOML configuration.
//
// [observability] - Hook registry for decode, transform, encode, cache and
// HTTP events.
//
// [buildinfo] - Version variables set at link time.
//
// # Testing
//
//	go test ./...
//	go test -run Example ./pkg/...
//
// [pixel]: https://pkg.go.dev/github.com/matzehuels/bmpedit/pkg/pixel
// [bitmap]: https://pkg.go.dev/github.com/matzehuels/bmpedit/pkg/bitmap
// [bitmap/transform]: https://pkg.go.dev/github.com/matzehuels/bmpedit/pkg/bitmap/transform
// [bmp]: https://pkg.go.dev/github.com/matzehuels/bmpedit/pkg/bmp
// [fileio]: https://pkg.go.dev/github.com/matzehuels/bmpedit/pkg/fileio
// [errors]: https://pkg.go.dev/github.com/matzehuels/bmpedit/pkg/errors
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/bmpedit/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/bmpedit/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/bmpedit/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/bmpedit/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/bmpedit/pkg/buildinfo
package pkg
