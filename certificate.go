// Package sshcert codecs OpenSSH ssh-rsa-cert-v01@openssh.com user/host
// certificates: the textual "header base64 comment" envelope on disk, and
// the length-prefixed binary body inside it. Decode and Encode are exact
// inverses of each other for any syntactically valid input, modulo the
// trailing comment token (spec.md §8).
package sshcert

import (
	"bytes"
	"encoding/base64"
	"time"

	"github.com/pkg/errors"

	"github.com/boldsoftware/exe.dev/sshcert/wire"
)

// Certificate is an immutable, fully decoded ssh-rsa-cert-v01@openssh.com
// certificate. Construct one with Decode or CertificateBuilder; this
// package never modifies a Certificate after returning it. Its fields are
// exported, so nothing stops a caller from assigning to them.
type Certificate struct {
	KeyType         KeyType
	PublicKey       PublicKey
	Nonce           []byte
	Serial          uint64
	CertType        CertType
	KeyID           string
	ValidPrincipals []string
	ValidAfter      time.Time
	ValidBefore     time.Time
	CriticalOptions []CriticalOption
	Extensions      []Extension
	SignatureKey    PublicKey
	Signature       []byte
	Comment         string
}

// splitEnvelopeToken consumes data up to (but not including) the next
// ASCII space, returning the token and the remainder past that space. If
// no space remains, the token runs to end-of-input and the remainder is
// nil -- matching original_source/picky's read-till-whitespace-or-EOF
// behavior, which the textual envelope in spec.md §4.5 was distilled from.
func splitEnvelopeToken(data []byte) (token, rest []byte) {
	if idx := bytes.IndexByte(data, ' '); idx >= 0 {
		return data[:idx], data[idx+1:]
	}
	return data, nil
}

// Decode parses the textual single-line certificate representation
// (spec.md §6) into a structured Certificate.
func Decode(raw []byte) (*Certificate, error) {
	header, rest := splitEnvelopeToken(raw)
	if rest == nil {
		return nil, errors.New("sshcert: truncated certificate envelope")
	}
	if string(header) != rsaCertHeader {
		return nil, &UnsupportedCertificateTypeError{Name: string(header)}
	}

	body, rest := splitEnvelopeToken(rest)
	comment, _ := splitEnvelopeToken(rest)

	bin, err := base64.StdEncoding.DecodeString(string(body))
	if err != nil {
		return nil, errors.Wrap(err, "sshcert: invalid base64 body")
	}

	cert, err := decodeBody(bytes.NewReader(bin))
	if err != nil {
		return nil, err
	}
	cert.Comment = string(comment)
	return cert, nil
}

// decodeBody decodes the 14-field binary certificate record described in
// spec.md §4.5, in order. Any short read or unrecognized enum mapping
// aborts decode with a typed error; no partial certificate is returned.
func decodeBody(r *bytes.Reader) (*Certificate, error) {
	keyType, err := wire.ReadString(r)
	if err != nil {
		return nil, errors.Wrap(err, "sshcert: reading certificate key type")
	}
	if keyType != rsaCertHeader {
		return nil, &InvalidCertificateKeyTypeError{Name: keyType}
	}

	nonce, err := wire.ReadByteArray(r)
	if err != nil {
		return nil, errors.Wrap(err, "sshcert: reading nonce")
	}

	publicKey, err := decodeRSAPublicKeyFields(r)
	if err != nil {
		return nil, errors.Wrap(err, "sshcert: reading subject public key")
	}

	serial, err := wire.ReadUint64(r)
	if err != nil {
		return nil, errors.Wrap(err, "sshcert: reading serial")
	}

	rawCertType, err := wire.ReadUint32(r)
	if err != nil {
		return nil, errors.Wrap(err, "sshcert: reading cert type")
	}
	certType, err := parseCertType(rawCertType)
	if err != nil {
		return nil, err
	}

	keyID, err := wire.ReadString(r)
	if err != nil {
		return nil, errors.Wrap(err, "sshcert: reading key id")
	}

	principals, err := decodePrincipals(r)
	if err != nil {
		return nil, errors.Wrap(err, "sshcert: reading valid principals")
	}

	validAfter, err := decodeTime(r)
	if err != nil {
		return nil, errors.Wrap(err, "sshcert: reading valid-after")
	}
	validBefore, err := decodeTime(r)
	if err != nil {
		return nil, errors.Wrap(err, "sshcert: reading valid-before")
	}

	criticalOptions, err := decodeCriticalOptions(r)
	if err != nil {
		return nil, errors.Wrap(err, "sshcert: reading critical options")
	}

	extensions, err := decodeExtensions(r)
	if err != nil {
		return nil, errors.Wrap(err, "sshcert: reading extensions")
	}

	if _, err := wire.ReadByteArray(r); err != nil {
		return nil, errors.Wrap(err, "sshcert: reading reserved field")
	}

	signatureKeyPayload, err := wire.ReadByteArray(r)
	if err != nil {
		return nil, errors.Wrap(err, "sshcert: reading signature key")
	}
	signatureKey, err := decodePublicKeyFromByteArray(signatureKeyPayload)
	if err != nil {
		return nil, errors.Wrap(err, "sshcert: decoding embedded signature key")
	}

	signature, err := wire.ReadByteArray(r)
	if err != nil {
		return nil, errors.Wrap(err, "sshcert: reading signature")
	}

	return &Certificate{
		KeyType:         SshRsaV01,
		PublicKey:       publicKey,
		Nonce:           nonce,
		Serial:          serial,
		CertType:        certType,
		KeyID:           keyID,
		ValidPrincipals: principals,
		ValidAfter:      validAfter,
		ValidBefore:     validBefore,
		CriticalOptions: criticalOptions,
		Extensions:      extensions,
		SignatureKey:    signatureKey,
		Signature:       signature,
	}, nil
}

// Encode renders c as the textual single-line certificate representation:
// the exact inverse of Decode.
func (c *Certificate) Encode() ([]byte, error) {
	body, err := c.encodeBody()
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	out.WriteString(rsaCertHeader)
	out.WriteByte(' ')
	out.WriteString(base64.StdEncoding.EncodeToString(body))
	out.WriteByte(' ')
	out.WriteString(c.Comment)
	return out.Bytes(), nil
}

// encodeBody writes the 14-field binary certificate record, the exact
// inverse of decodeBody.
func (c *Certificate) encodeBody() ([]byte, error) {
	var buf bytes.Buffer

	if err := wire.WriteString(&buf, rsaCertHeader); err != nil {
		return nil, err
	}
	if err := wire.WriteByteArray(&buf, c.Nonce); err != nil {
		return nil, err
	}
	if err := encodeRSAPublicKeyFields(&buf, c.PublicKey); err != nil {
		return nil, err
	}
	if err := wire.WriteUint64(&buf, c.Serial); err != nil {
		return nil, err
	}
	if err := wire.WriteUint32(&buf, uint32(c.CertType)); err != nil {
		return nil, err
	}
	if err := wire.WriteString(&buf, c.KeyID); err != nil {
		return nil, err
	}
	if err := encodePrincipals(&buf, c.ValidPrincipals); err != nil {
		return nil, err
	}
	if err := encodeTime(&buf, c.ValidAfter); err != nil {
		return nil, err
	}
	if err := encodeTime(&buf, c.ValidBefore); err != nil {
		return nil, err
	}
	if err := encodeCriticalOptions(&buf, c.CriticalOptions); err != nil {
		return nil, err
	}
	if err := encodeExtensions(&buf, c.Extensions); err != nil {
		return nil, err
	}
	if err := wire.WriteByteArray(&buf, nil); err != nil { // reserved, always empty
		return nil, err
	}

	var sigKey bytes.Buffer
	if err := encodeRSAPublicKeyBody(&sigKey, c.SignatureKey); err != nil {
		return nil, err
	}
	if err := wire.WriteByteArray(&buf, sigKey.Bytes()); err != nil {
		return nil, err
	}
	if err := wire.WriteByteArray(&buf, c.Signature); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
