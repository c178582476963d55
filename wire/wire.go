// Package wire implements the framed scalar types used by the SSH binary
// wire protocol: big-endian uint32/uint64, length-prefixed byte arrays and
// UTF-8 strings, and multi-precision integers (mpint). All scalars read
// from and write to the same cursor so a caller can compose them directly
// into a certificate body without hand-rolled offset bookkeeping.
package wire

import (
	"encoding/binary"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// ErrShortRead is wrapped around any read that ran out of input before a
// framed scalar was fully consumed.
var ErrShortRead = errors.New("wire: short read")

// ReadUint32 reads a 4-byte big-endian unsigned integer.
func ReadUint32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, errors.Wrap(ErrShortRead, err.Error())
	}
	return binary.BigEndian.Uint32(buf[:]), nil
}

// WriteUint32 writes v as a 4-byte big-endian unsigned integer.
func WriteUint32(w io.Writer, v uint32) error {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

// ReadUint64 reads an 8-byte big-endian unsigned integer.
func ReadUint64(r io.Reader) (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, errors.Wrap(ErrShortRead, err.Error())
	}
	return binary.BigEndian.Uint64(buf[:]), nil
}

// WriteUint64 writes v as an 8-byte big-endian unsigned integer.
func WriteUint64(w io.Writer, v uint64) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

// ReadByteArray reads a uint32 length prefix followed by exactly that many
// bytes.
func ReadByteArray(r io.Reader) ([]byte, error) {
	n, err := ReadUint32(r)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, errors.Wrap(ErrShortRead, err.Error())
	}
	return buf, nil
}

// WriteByteArray writes b preceded by its uint32 length.
func WriteByteArray(w io.Writer, b []byte) error {
	if err := WriteUint32(w, uint32(len(b))); err != nil {
		return err
	}
	_, err := w.Write(b)
	return err
}

// ReadString reads a length-prefixed UTF-8 string, replacing any
// ill-formed byte sequence rather than failing. This matches existing
// OpenSSH behavior, which never rejects a certificate merely because one
// of its body strings isn't valid UTF-8.
func ReadString(r io.Reader) (string, error) {
	buf, err := ReadByteArray(r)
	if err != nil {
		return "", err
	}
	return strings.ToValidUTF8(string(buf), "�"), nil
}

// WriteString writes s as a length-prefixed UTF-8 string.
func WriteString(w io.Writer, s string) error {
	return WriteByteArray(w, []byte(s))
}

// ReadMpint reads an SSH multi-precision unsigned integer: a ByteArray with
// any positive-sign padding byte (a leading 0x00) stripped.
func ReadMpint(r io.Reader) ([]byte, error) {
	buf, err := ReadByteArray(r)
	if err != nil {
		return nil, err
	}
	if len(buf) > 0 && buf[0] == 0x00 {
		buf = buf[1:]
	}
	return buf, nil
}

// WriteMpint writes b as an SSH mpint, prepending a 0x00 sign-padding byte
// when the high bit of the first byte would otherwise make the value read
// as negative.
func WriteMpint(w io.Writer, b []byte) error {
	if len(b) > 0 && b[0]&0x80 != 0 {
		if err := WriteUint32(w, uint32(len(b))+1); err != nil {
			return err
		}
		if _, err := w.Write([]byte{0x00}); err != nil {
			return err
		}
		_, err := w.Write(b)
		return err
	}
	if err := WriteUint32(w, uint32(len(b))); err != nil {
		return err
	}
	_, err := w.Write(b)
	return err
}
