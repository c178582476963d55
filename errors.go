package sshcert

import "fmt"

// UnsupportedCertificateTypeError is returned when the outer textual header
// is not the RSA certificate identifier.
type UnsupportedCertificateTypeError struct{ Name string }

func (e *UnsupportedCertificateTypeError) Error() string {
	return fmt.Sprintf("unsupported certificate type: %s", e.Name)
}

// InvalidCertificateKeyTypeError is returned when the inner key-type
// SshString does not match the RSA certificate algorithm tag.
type InvalidCertificateKeyTypeError struct{ Name string }

func (e *InvalidCertificateKeyTypeError) Error() string {
	return fmt.Sprintf("invalid certificate key type: %s", e.Name)
}

// InvalidCertificateTypeError is returned when cert_type is not 1 or 2.
type InvalidCertificateTypeError struct{ Value uint32 }

func (e *InvalidCertificateTypeError) Error() string {
	return fmt.Sprintf("invalid certificate type, expected 1 or 2 but got: %d", e.Value)
}

// UnsupportedCriticalOptionTypeError is returned when a critical option's
// type string is not in the enumerated closed set.
type UnsupportedCriticalOptionTypeError struct{ Name string }

func (e *UnsupportedCriticalOptionTypeError) Error() string {
	return fmt.Sprintf("unsupported critical option type: %s", e.Name)
}

// UnsupportedExtensionTypeError is returned when an extension's type
// string is not in the enumerated closed set.
type UnsupportedExtensionTypeError struct{ Name string }

func (e *UnsupportedExtensionTypeError) Error() string {
	return fmt.Sprintf("unsupported extension type: %s", e.Name)
}

// InvalidPublicKeyError is returned when an (n, e) pair does not form a
// well-formed RSA public key.
type InvalidPublicKeyError struct{ Reason string }

func (e *InvalidPublicKeyError) Error() string {
	return fmt.Sprintf("invalid public key: %s", e.Reason)
}

// Certificate-builder error kinds. Each names exactly one missing or
// invalid required field, matching SshCertificateGenerationError in
// original_source/picky/src/ssh/certificate.rs.
var (
	ErrMissingPublicKey       = &buildError{"missing public key"}
	ErrMissingCertificateType = &buildError{"missing certificate type"}
	ErrMissingKeyID           = &buildError{"missing key id"}
	ErrMissingSignatureKey    = &buildError{"missing signature key"}
	ErrMissingSignature       = &buildError{"missing signature"}
	ErrMissingSerial          = &buildError{"missing serial number"}
	ErrInvalidTime            = &buildError{"invalid time"}
)

type buildError struct{ msg string }

func (e *buildError) Error() string { return e.msg }
