package sshcert

import (
	"bytes"
	"io"
	"math/big"

	"github.com/boldsoftware/exe.dev/sshcert/wire"
)

// decodeRSAPublicKeyBody reads the inner RSA public key body -- algorithm
// name, then mpint e, then mpint n -- used both for the embedded signer
// key and for any standalone public key body (spec.md §4.3).
func decodeRSAPublicKeyBody(r io.Reader) (PublicKey, error) {
	name, err := wire.ReadString(r)
	if err != nil {
		return PublicKey{}, err
	}
	if name != rsaAlgName {
		return PublicKey{}, &InvalidPublicKeyError{Reason: "algorithm name is not ssh-rsa: " + name}
	}
	return decodeRSAPublicKeyFields(r)
}

// decodeRSAPublicKeyFields reads mpint e followed by mpint n, without the
// preceding algorithm name SshString -- used for the certificate's own
// subject key, whose algorithm is already fixed by the outer header
// (spec.md §4.5 step 3).
func decodeRSAPublicKeyFields(r io.Reader) (PublicKey, error) {
	e, err := wire.ReadMpint(r)
	if err != nil {
		return PublicKey{}, err
	}
	n, err := wire.ReadMpint(r)
	if err != nil {
		return PublicKey{}, err
	}
	key := PublicKey{N: new(big.Int).SetBytes(n), E: new(big.Int).SetBytes(e)}
	if err := key.validate(); err != nil {
		return PublicKey{}, err
	}
	return key, nil
}

// encodeRSAPublicKeyBody writes the algorithm name followed by mpint e,
// mpint n -- the full inner body, as used for the embedded signer key.
func encodeRSAPublicKeyBody(w io.Writer, key PublicKey) error {
	if err := wire.WriteString(w, rsaAlgName); err != nil {
		return err
	}
	return encodeRSAPublicKeyFields(w, key)
}

// encodeRSAPublicKeyFields writes mpint e, mpint n without the algorithm
// name -- used for the certificate's own subject key.
func encodeRSAPublicKeyFields(w io.Writer, key PublicKey) error {
	if err := wire.WriteMpint(w, key.E.Bytes()); err != nil {
		return err
	}
	return wire.WriteMpint(w, key.N.Bytes())
}

// decodePublicKeyFromByteArray parses the payload of a ByteArray field
// (the certificate's embedded signature_key field) as a full inner RSA
// public key body, matching SshParser::decode(signature_key.0.as_slice())
// in original_source/picky.
func decodePublicKeyFromByteArray(payload []byte) (PublicKey, error) {
	return decodeRSAPublicKeyBody(bytes.NewReader(payload))
}
