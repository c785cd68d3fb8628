// Package sequences identifies, indexes and reformats families of strings
// that differ only by a fixed-width number embedded in them, such as the
// frame files of an image render ("shot010.0001.exr", "shot010.0002.exr",
// ...) or versioned asset names.
//
// A sequence is described by a source string containing exactly one numeric
// slot. The slot may be written in any of five flavors: literal digits
// ("0001"), a pound run ("####"), a regex literal (`\d{4}`), a format
// placeholder ("{item:04d}") or a printf verb ("%04d"). All five carry the
// same two facts, the slot position and its width, and every sequence can be
// re-rendered in any flavor.
//
// Construct a sequence with New (plain strings), NewFile (paths) or NewImage
// (paths restricted to image extensions), then query its items, ranges and
// gaps, or renumber the files on disk with Rename. Item discovery for file
// sequences goes through the backend package, which resolves the provider
// (Perforce for tracked paths, plain disk otherwise) per path.
package sequences
