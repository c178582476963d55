package sshcert

import (
	"math/big"
)

// rsaCertHeader is both the outer textual header and the inner key-type
// SshString; OpenSSH reuses the same identifier for both (spec.md §4.5).
const rsaCertHeader = "ssh-rsa-cert-v01@openssh.com"

// rsaAlgName is the algorithm name prefixed to a standalone RSA public key
// body (used for the embedded signer key, never for the subject key -- the
// certificate's own header already fixes the algorithm for that one).
const rsaAlgName = "ssh-rsa"

// KeyType enumerates the certificate formats this package understands.
// It exists as a variant even though SshRsaV01 is the only member today:
// a new algorithm extends this type and the decode dispatch in
// certificate.go, not the field's representation.
type KeyType int

// KeyType values.
const (
	SshRsaV01 KeyType = iota
)

func (k KeyType) String() string {
	switch k {
	case SshRsaV01:
		return rsaCertHeader
	default:
		return "unknown"
	}
}

// CertType distinguishes user (client) certificates from host certificates.
type CertType uint32

// CertType values, per spec.md §3.
const (
	CertTypeClient CertType = 1
	CertTypeHost   CertType = 2
)

// parseCertType validates a raw cert_type field, matching
// SshCertType::try_from(u32) in original_source/picky.
func parseCertType(v uint32) (CertType, error) {
	switch CertType(v) {
	case CertTypeClient, CertTypeHost:
		return CertType(v), nil
	default:
		return 0, &InvalidCertificateTypeError{Value: v}
	}
}

// CriticalOptionType is one of the closed set of critical option names a
// verifier must understand. An unrecognized value is a decode error by
// design (spec.md §3): this codec does not tolerate unknown critical
// options.
type CriticalOptionType string

// Critical option type names, case-sensitive and round-tripped exactly.
const (
	CriticalOptionForceCommand    CriticalOptionType = "force-command"
	CriticalOptionSourceAddress   CriticalOptionType = "source-address"
	CriticalOptionVerifyRequired  CriticalOptionType = "verify-required"
)

func parseCriticalOptionType(s string) (CriticalOptionType, error) {
	switch CriticalOptionType(s) {
	case CriticalOptionForceCommand, CriticalOptionSourceAddress, CriticalOptionVerifyRequired:
		return CriticalOptionType(s), nil
	default:
		return "", &UnsupportedCriticalOptionTypeError{Name: s}
	}
}

// ExtensionType is one of the closed set of extension names this codec
// understands. Real OpenSSH verifiers may ignore an unknown extension;
// this codec rejects it anyway to enforce the closed set (spec.md
// GLOSSARY).
type ExtensionType string

// Extension type names, case-sensitive and round-tripped exactly.
const (
	ExtensionNoTouchRequired       ExtensionType = "no-touch-required"
	ExtensionPermitX11Forwarding   ExtensionType = "permit-X11-forwarding"
	ExtensionPermitAgentForwarding ExtensionType = "permit-agent-forwarding"
	ExtensionPermitPortForwarding  ExtensionType = "permit-port-forwarding"
	ExtensionPermitPty             ExtensionType = "permit-pty"
	ExtensionPermitUserRC          ExtensionType = "permit-user-rc"
)

func parseExtensionType(s string) (ExtensionType, error) {
	switch ExtensionType(s) {
	case ExtensionNoTouchRequired, ExtensionPermitX11Forwarding, ExtensionPermitAgentForwarding,
		ExtensionPermitPortForwarding, ExtensionPermitPty, ExtensionPermitUserRC:
		return ExtensionType(s), nil
	default:
		return "", &UnsupportedExtensionTypeError{Name: s}
	}
}

// CriticalOption is a name/value pair a verifier must understand or
// reject the certificate outright.
type CriticalOption struct {
	Type CriticalOptionType
	Data string
}

// Extension is a name/value pair a verifier may ignore if unrecognized --
// here the closed set is enforced anyway (see ExtensionType).
type Extension struct {
	Type ExtensionType
	Data string
}

// PublicKey is the RSA public key representation the codec consumes and
// produces: a modulus and exponent, nothing more. Keypair generation and
// signature verification are the caller's responsibility (spec.md §1).
type PublicKey struct {
	N *big.Int
	E *big.Int
}

// validate rejects a public key that cannot be a well-formed RSA key: a
// non-positive modulus or exponent.
func (k PublicKey) validate() error {
	if k.N == nil || k.E == nil {
		return &InvalidPublicKeyError{Reason: "missing modulus or exponent"}
	}
	if k.N.Sign() <= 0 {
		return &InvalidPublicKeyError{Reason: "modulus must be positive"}
	}
	if k.E.Sign() <= 0 {
		return &InvalidPublicKeyError{Reason: "exponent must be positive"}
	}
	return nil
}
