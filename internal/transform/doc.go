// Package transform applies one simulation profile to one media item,
// producing exactly one output artifact or an isolated failure. Document
// profiles pass bytes through verbatim; image profiles decode, resize, and
// re-encode with the imaging library; video profiles shell out to ffmpeg.
// The engine never leaves a partial file at the output path and performs no
// skip logic of its own.
package transform
