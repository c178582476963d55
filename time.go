package sshcert

import (
	"io"
	"time"

	"github.com/boldsoftware/exe.dev/sshcert/wire"
)

// decodeTime reads a uint64 seconds-since-epoch timestamp (spec.md §4.2).
// Values with the high bit set are accepted but neither widened nor
// saturated: the int64 conversion turns them into negative seconds, i.e.
// times before 1970 (0xffffffffffffffff decodes as one second before the
// epoch). encodeTime's uint64 conversion writes the same bits back, so such
// values still round-trip byte-for-byte.
func decodeTime(r io.Reader) (time.Time, error) {
	secs, err := wire.ReadUint64(r)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(int64(secs), 0).UTC(), nil
}

// encodeTime writes t as a uint64 seconds-since-epoch timestamp.
func encodeTime(w io.Writer, t time.Time) error {
	return wire.WriteUint64(w, uint64(t.Unix()))
}
