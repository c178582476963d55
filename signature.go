package sshcert

import (
	"bytes"

	"github.com/pkg/errors"

	"github.com/boldsoftware/exe.dev/sshcert/sshminisig"
	"github.com/boldsoftware/exe.dev/sshcert/wire"
)

// CompactSignature renders the certificate's signature field in sshminisig
// format: a one-byte algorithm prefix followed by the base64url-encoded
// signature data, instead of the full nested [algorithm, data] blob. This
// is convenient for logging or indexing certificates by signature without
// carrying the whole binary blob around.
//
// It fails for an ssh-rsa (SHA-1) issuer signature, since that algorithm
// name alone doesn't say which hash was used; sign certificates with
// rsa-sha2-256 or rsa-sha2-512 to get a compact form.
func (c *Certificate) CompactSignature() (string, error) {
	sigAlg, sigData, err := splitSignatureBlob(c.Signature)
	if err != nil {
		return "", errors.Wrap(err, "sshcert: parsing signature blob")
	}
	return sshminisig.EncodeBlob(sshminisig.SigAlg(sigAlg), sigData)
}

// splitSignatureBlob reads the two SSH strings packed into a certificate's
// signature field: the signing algorithm name, then the raw signature
// bytes (spec.md §4.5's signature field, an opaque blob with this internal
// structure per RFC 4253's signature format).
func splitSignatureBlob(blob []byte) (alg string, data []byte, err error) {
	r := bytes.NewReader(blob)
	alg, err = wire.ReadString(r)
	if err != nil {
		return "", nil, err
	}
	data, err = wire.ReadByteArray(r)
	if err != nil {
		return "", nil, err
	}
	return alg, data, nil
}
