package sshcert

import (
	"crypto/rand"
	"time"
)

// CertificateBuilder accumulates the fields of a new Certificate and
// validates them at Build time (spec.md §4.6). The zero value is not
// usable; construct one with NewCertificateBuilder.
type CertificateBuilder struct {
	publicKey       *PublicKey
	serial          *uint64
	certType        *CertType
	keyID           *string
	validPrincipals []string
	validAfter      *time.Time
	validBefore     *time.Time
	criticalOptions []CriticalOption
	extensions      []Extension
	signatureKey    *PublicKey
	signature       []byte
	comment         string

	now func() time.Time
}

// NewCertificateBuilder returns an empty builder. ValidPrincipals,
// CriticalOptions, Extensions, and Comment default to empty if never set.
func NewCertificateBuilder() *CertificateBuilder {
	return &CertificateBuilder{now: time.Now}
}

// PublicKey sets the certificate's subject public key. Required.
func (b *CertificateBuilder) PublicKey(key PublicKey) *CertificateBuilder {
	b.publicKey = &key
	return b
}

// Serial sets the issuer-assigned serial number. Required.
func (b *CertificateBuilder) Serial(serial uint64) *CertificateBuilder {
	b.serial = &serial
	return b
}

// CertType sets whether this is a client or host certificate. Required.
func (b *CertificateBuilder) CertType(certType CertType) *CertificateBuilder {
	b.certType = &certType
	return b
}

// KeyID sets the free-form key identifier. Required.
func (b *CertificateBuilder) KeyID(keyID string) *CertificateBuilder {
	b.keyID = &keyID
	return b
}

// ValidPrincipals sets the usernames or hostnames this certificate is
// valid for. Optional; defaults to empty (valid for all principals).
func (b *CertificateBuilder) ValidPrincipals(principals []string) *CertificateBuilder {
	b.validPrincipals = principals
	return b
}

// ValidAfter sets the earliest time this certificate is valid. Required.
func (b *CertificateBuilder) ValidAfter(t time.Time) *CertificateBuilder {
	b.validAfter = &t
	return b
}

// ValidBefore sets the time after which this certificate is no longer
// valid. Required.
func (b *CertificateBuilder) ValidBefore(t time.Time) *CertificateBuilder {
	b.validBefore = &t
	return b
}

// CriticalOptions sets the critical options a verifier must understand.
// Optional; defaults to empty.
func (b *CertificateBuilder) CriticalOptions(opts []CriticalOption) *CertificateBuilder {
	b.criticalOptions = opts
	return b
}

// Extensions sets the certificate's extensions. Optional; defaults to
// empty.
func (b *CertificateBuilder) Extensions(exts []Extension) *CertificateBuilder {
	b.extensions = exts
	return b
}

// SignatureKey sets the issuer's public key. Required.
func (b *CertificateBuilder) SignatureKey(key PublicKey) *CertificateBuilder {
	b.signatureKey = &key
	return b
}

// Signature sets the issuer's signature over the certificate body.
// Required.
func (b *CertificateBuilder) Signature(sig []byte) *CertificateBuilder {
	b.signature = sig
	return b
}

// Comment sets the certificate's free-form trailing comment. Optional;
// defaults to empty.
func (b *CertificateBuilder) Comment(comment string) *CertificateBuilder {
	b.comment = comment
	return b
}

// Build validates all required fields, draws a fresh 32-byte nonce, and
// returns an immutable Certificate. It fails with a typed error naming
// the first missing or invalid field it encounters.
func (b *CertificateBuilder) Build() (*Certificate, error) {
	if b.publicKey == nil {
		return nil, ErrMissingPublicKey
	}
	if b.serial == nil {
		return nil, ErrMissingSerial
	}
	if b.certType == nil {
		return nil, ErrMissingCertificateType
	}
	if b.keyID == nil {
		return nil, ErrMissingKeyID
	}
	if b.signatureKey == nil {
		return nil, ErrMissingSignatureKey
	}
	if b.signature == nil {
		return nil, ErrMissingSignature
	}
	if b.validAfter == nil || b.validBefore == nil {
		return nil, ErrInvalidTime
	}

	now := b.now()
	if b.validAfter.After(now) || !now.Before(*b.validBefore) {
		return nil, ErrInvalidTime
	}

	nonce := make([]byte, 32)
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}

	return &Certificate{
		KeyType:         SshRsaV01,
		PublicKey:       *b.publicKey,
		Nonce:           nonce,
		Serial:          *b.serial,
		CertType:        *b.certType,
		KeyID:           *b.keyID,
		ValidPrincipals: b.validPrincipals,
		ValidAfter:      *b.validAfter,
		ValidBefore:     *b.validBefore,
		CriticalOptions: b.criticalOptions,
		Extensions:      b.extensions,
		SignatureKey:    *b.signatureKey,
		Signature:       b.signature,
		Comment:         b.comment,
	}, nil
}
