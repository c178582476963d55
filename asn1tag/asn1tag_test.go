package asn1tag

import (
	"encoding/asn1"
	"testing"

	"github.com/stretchr/testify/require"
)

func utf8RawValue(s string) asn1.RawValue {
	return asn1.RawValue{Class: asn1.ClassUniversal, Tag: asn1.TagUTF8String, Bytes: []byte(s)}
}

// TestApplicationTagWorkedExample reproduces the worked example from
// picky-asn1-der's own application_tag tests: tag 10 wrapping the UTF8String
// "example.com".
func TestApplicationTagWorkedExample(t *testing.T) {
	expectedRaw := []byte{106, 13, 12, 11, 'e', 'x', 'a', 'm', 'p', 'l', 'e', '.', 'c', 'o', 'm'}

	tagged := New[asn1.RawValue](10, utf8RawValue("example.com"))

	raw, err := tagged.MarshalDER()
	require.NoError(t, err)
	require.Equal(t, expectedRaw, raw)

	decoded, err := Unmarshal[asn1.RawValue](expectedRaw, 10)
	require.NoError(t, err)
	require.Equal(t, "example.com", string(decoded.Value.Bytes))
	require.Equal(t, byte(10), decoded.Tag)
}

func TestApplicationTagRejectsWrongTagNumber(t *testing.T) {
	raw := []byte{106, 13, 12, 11, 'e', 'x', 'a', 'm', 'p', 'l', 'e', '.', 'c', 'o', 'm'}

	_, err := Unmarshal[asn1.RawValue](raw, 11)
	require.Error(t, err)
}

func TestApplicationTagLongFormTagNumber(t *testing.T) {
	tagged := New[asn1.RawValue](31, utf8RawValue("hi"))

	raw, err := tagged.MarshalDER()
	require.NoError(t, err)
	// identifier: class+constructed+0x1f marker, then one long-form tag byte (31).
	require.Equal(t, []byte{classApplication | constructedFlag | longFormTagMarker, 0x1f}, raw[:2])

	decoded, err := Unmarshal[asn1.RawValue](raw, 31)
	require.NoError(t, err)
	require.Equal(t, "hi", string(decoded.Value.Bytes))
}

func TestApplicationTagLongFormLength(t *testing.T) {
	longString := make([]byte, 200)
	for i := range longString {
		longString[i] = 'a'
	}

	tagged := New[asn1.RawValue](5, utf8RawValue(string(longString)))

	raw, err := tagged.MarshalDER()
	require.NoError(t, err)

	decoded, err := Unmarshal[asn1.RawValue](raw, 5)
	require.NoError(t, err)
	require.Equal(t, string(longString), string(decoded.Value.Bytes))
}

func TestApplicationTagRejectsTruncatedInput(t *testing.T) {
	_, err := Unmarshal[asn1.RawValue]([]byte{106, 13, 12}, 10)
	require.Error(t, err)
}
