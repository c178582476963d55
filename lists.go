package sshcert

import (
	"bytes"
	"io"

	"github.com/boldsoftware/exe.dev/sshcert/wire"
)

// decodePrincipals reads the valid_principals list: a ByteArray whose
// payload is a concatenation of SshStrings, with no separate element
// count -- the list ends exactly where the payload ends (spec.md §4.4).
func decodePrincipals(r io.Reader) ([]string, error) {
	payload, err := wire.ReadByteArray(r)
	if err != nil {
		return nil, err
	}
	cursor := bytes.NewReader(payload)
	var principals []string
	for cursor.Len() > 0 {
		s, err := wire.ReadString(cursor)
		if err != nil {
			return nil, err
		}
		principals = append(principals, s)
	}
	return principals, nil
}

// encodePrincipals writes valid_principals in caller-supplied order.
func encodePrincipals(w io.Writer, principals []string) error {
	var payload bytes.Buffer
	for _, s := range principals {
		if err := wire.WriteString(&payload, s); err != nil {
			return err
		}
	}
	return wire.WriteByteArray(w, payload.Bytes())
}

// decodeCriticalOptions reads the critical_options list. The decoder does
// not enforce the RFC's lexicographic-sort requirement on the input
// (spec.md §4.4 open question); it accepts whatever order the issuer used.
func decodeCriticalOptions(r io.Reader) ([]CriticalOption, error) {
	payload, err := wire.ReadByteArray(r)
	if err != nil {
		return nil, err
	}
	cursor := bytes.NewReader(payload)
	var opts []CriticalOption
	for cursor.Len() > 0 {
		typeName, err := wire.ReadString(cursor)
		if err != nil {
			return nil, err
		}
		optType, err := parseCriticalOptionType(typeName)
		if err != nil {
			return nil, err
		}
		data, err := wire.ReadString(cursor)
		if err != nil {
			return nil, err
		}
		opts = append(opts, CriticalOption{Type: optType, Data: data})
	}
	return opts, nil
}

// encodeCriticalOptions writes critical_options in caller-supplied order,
// matching Vec<SshCriticalOption>::encode in original_source/picky: the
// encoder does not re-sort. spec.md §8's certificate idempotence property
// (encode(decode(c)) == c, byte-identical) depends on this -- decode
// accepts any order, so encode must preserve whatever order it read.
func encodeCriticalOptions(w io.Writer, opts []CriticalOption) error {
	var payload bytes.Buffer
	for _, opt := range opts {
		if err := wire.WriteString(&payload, string(opt.Type)); err != nil {
			return err
		}
		if err := wire.WriteString(&payload, opt.Data); err != nil {
			return err
		}
	}
	return wire.WriteByteArray(w, payload.Bytes())
}

// decodeExtensions reads the extensions list, same framing as critical
// options.
func decodeExtensions(r io.Reader) ([]Extension, error) {
	payload, err := wire.ReadByteArray(r)
	if err != nil {
		return nil, err
	}
	cursor := bytes.NewReader(payload)
	var exts []Extension
	for cursor.Len() > 0 {
		typeName, err := wire.ReadString(cursor)
		if err != nil {
			return nil, err
		}
		extType, err := parseExtensionType(typeName)
		if err != nil {
			return nil, err
		}
		data, err := wire.ReadString(cursor)
		if err != nil {
			return nil, err
		}
		exts = append(exts, Extension{Type: extType, Data: data})
	}
	return exts, nil
}

// encodeExtensions writes extensions in caller-supplied order; unlike
// critical options, OpenSSH does not require extensions to be sorted.
func encodeExtensions(w io.Writer, exts []Extension) error {
	var payload bytes.Buffer
	for _, ext := range exts {
		if err := wire.WriteString(&payload, string(ext.Type)); err != nil {
			return err
		}
		if err := wire.WriteString(&payload, ext.Data); err != nil {
			return err
		}
	}
	return wire.WriteByteArray(w, payload.Bytes())
}
