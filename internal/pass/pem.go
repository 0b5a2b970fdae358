package pass

import (
	"encoding/base64"
	"encoding/pem"
	"errors"
	"strings"
)

const (
	BlockCertificate = "CERTIFICATE"
	BlockPrivateKey  = "PRIVATE KEY"
)

var ErrEmptyPEM = errors.New("empty pem input")

// DecodePEM turns base64 configuration text into PEM bytes. If the decoded
// bytes already hold a block of blockType (or a qualified variant such as
// "RSA PRIVATE KEY") they are returned as is. Otherwise the payload is taken
// as DER and wrapped into a PEM envelope.
func DecodePEM(b64, blockType string) ([]byte, error) {
	b64 = strings.Join(strings.Fields(b64), "")
	if b64 == "" {
		return nil, ErrEmptyPEM
	}

	decoded, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, err
	}

	if _, err := findBlock(decoded, blockType); err == nil {
		return decoded, nil
	}

	return pem.EncodeToMemory(&pem.Block{Type: blockType, Bytes: decoded}), nil
}

func matchesBlockType(got, want string) bool {
	return got == want || strings.HasSuffix(got, " "+want)
}
