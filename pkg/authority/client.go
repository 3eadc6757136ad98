package authority

import (
	"io"

	"github.com/fxamacker/cbor/v2"
)

// WriteRequest CBOR-encodes req to w. Each authority exchange is exactly
// one request followed by one response; callers that hold a persistent
// pipe must not reuse it across exchanges without their own framing.
func WriteRequest(w io.Writer, req Request) error {
	return cbor.NewEncoder(w).Encode(req)
}

// ReadRequest decodes a single Request from r.
func ReadRequest(r io.Reader) (Request, error) {
	var req Request
	err := cbor.NewDecoder(r).Decode(&req)
	return req, err
}

// WriteResponse CBOR-encodes resp to w.
func WriteResponse(w io.Writer, resp Response) error {
	return cbor.NewEncoder(w).Encode(resp)
}

// ReadResponse decodes a single Response from r.
func ReadResponse(r io.Reader) (Response, error) {
	var resp Response
	err := cbor.NewDecoder(r).Decode(&resp)
	return resp, err
}
