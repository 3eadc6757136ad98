// Package authority implements the request/response protocol served inside
// the trust boundary that holds the IBE master private key: Generate
// mints a fresh master keypair and returns the private half sealed,
// Reveal unseals a previously sealed master key and derives the
// decryption key for one label. Nothing outside this package ever sees an
// unsealed master private key.
//
// The wire encoding is CBOR, mirroring the upstream enclave's serde_cbor
// framing: every exchange is exactly one request object read from an
// io.Reader followed by one response object written to an io.Writer.
package authority

import (
	"github.com/Layr-Labs/dawn-ibe/pkg/ibe"
	"github.com/fxamacker/cbor/v2"
)

// Kind discriminates the variants of Request and Response. CBOR has no
// native sum type, so each message carries an explicit kind tag alongside
// whichever fields that variant uses.
type Kind string

const (
	KindGenerate Kind = "generate"
	KindReveal   Kind = "reveal"
)

// SealedMasterPrivateKey is an opaque, sealer-produced blob. The authority
// process can unseal it; nothing else can.
type SealedMasterPrivateKey struct {
	Blob []byte `cbor:"blob"`
}

// Request is a tagged union of the two operations the authority serves.
// Exactly one of the variant-specific fields is populated, selected by
// Kind.
type Request struct {
	Kind Kind `cbor:"kind"`

	// Reveal fields.
	Label  ibe.Label              `cbor:"label,omitempty"`
	Sealed SealedMasterPrivateKey `cbor:"sealed,omitempty"`
}

// GenerateRequest builds a Request asking the authority to mint a fresh
// master keypair.
func GenerateRequest() Request {
	return Request{Kind: KindGenerate}
}

// RevealRequest builds a Request asking the authority to unseal msk and
// derive the decryption key for label.
func RevealRequest(label ibe.Label, sealed SealedMasterPrivateKey) Request {
	return Request{Kind: KindReveal, Label: label, Sealed: sealed}
}

// Response is a tagged union mirroring Request's two operations.
type Response struct {
	Kind Kind `cbor:"kind"`

	// Generate fields.
	MasterPublicKey []byte                 `cbor:"master_public_key,omitempty"`
	Sealed          SealedMasterPrivateKey `cbor:"sealed,omitempty"`

	// Reveal fields.
	DecryptionKey []byte `cbor:"decryption_key,omitempty"`
}

// Marshal encodes v as CBOR.
func Marshal(v any) ([]byte, error) {
	return cbor.Marshal(v)
}

// Unmarshal decodes CBOR into v.
func Unmarshal(data []byte, v any) error {
	return cbor.Unmarshal(data, v)
}
