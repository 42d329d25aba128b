// Package ffmpeg invokes the external ffmpeg binary for video re-encodes.
// The call is an opaque blocking child process; success means exit code
// zero plus a non-empty output file.
package ffmpeg
