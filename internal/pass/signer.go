package pass

import (
	"archive/zip"
	"bytes"
	"context"
	"crypto"
	"crypto/sha1"
	"crypto/x509"
	"encoding/hex"
	"encoding/json"
	"encoding/pem"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/youmark/pkcs8"
	"go.mozilla.org/pkcs7"
	"golang.org/x/exp/maps"
)

const (
	FilePassJSON  = "pass.json"
	FileManifest  = "manifest.json"
	FileSignature = "signature"
)

// Bundle is everything that ends up inside a .pkpass archive besides the
// manifest and the signature.
type Bundle struct {
	Descriptor Descriptor
	Assets     Assets
}

// Signer packages a bundle into a signed archive.
type Signer interface {
	Sign(ctx context.Context, b Bundle) ([]byte, error)
}

// Credentials hold PEM encoded signing material.
type Credentials struct {
	Certificate   []byte
	PrivateKey    []byte
	KeyPassphrase string
	WWDR          []byte
}

func (c Credentials) Complete() bool {
	return len(c.Certificate) > 0 && len(c.PrivateKey) > 0 && len(c.WWDR) > 0
}

var _ Signer = (*PKCS7Signer)(nil)

type PKCS7Signer struct {
	cert *x509.Certificate
	key  crypto.PrivateKey
	wwdr *x509.Certificate

	// zip entry timestamps
	modified time.Time
}

func NewPKCS7Signer(creds Credentials) (*PKCS7Signer, error) {
	cert, err := parseCertificate(creds.Certificate)
	if err != nil {
		return nil, fmt.Errorf("signer certificate: %w", err)
	}

	wwdr, err := parseCertificate(creds.WWDR)
	if err != nil {
		return nil, fmt.Errorf("wwdr certificate: %w", err)
	}

	key, err := parsePrivateKey(creds.PrivateKey, creds.KeyPassphrase)
	if err != nil {
		return nil, fmt.Errorf("signer key: %w", err)
	}

	return &PKCS7Signer{
		cert:     cert,
		key:      key,
		wwdr:     wwdr,
		modified: time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC),
	}, nil
}

func (s *PKCS7Signer) Sign(ctx context.Context, b Bundle) ([]byte, error) {
	passJSON, err := json.Marshal(b.Descriptor)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", FilePassJSON, err)
	}

	files := make(map[string][]byte, len(b.Assets)+3)
	for name, data := range b.Assets {
		files[name] = data
	}
	files[FilePassJSON] = passJSON

	manifest, err := json.Marshal(Manifest(files))
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", FileManifest, err)
	}
	files[FileManifest] = manifest

	signature, err := s.signManifest(manifest)
	if err != nil {
		return nil, err
	}
	files[FileSignature] = signature

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return s.archive(files)
}

// Manifest maps every file name to the hex SHA-1 of its content.
func Manifest(files map[string][]byte) map[string]string {
	manifest := make(map[string]string, len(files))
	for name, data := range files {
		sum := sha1.Sum(data)
		manifest[name] = hex.EncodeToString(sum[:])
	}
	return manifest
}

func (s *PKCS7Signer) signManifest(manifest []byte) ([]byte, error) {
	sd, err := pkcs7.NewSignedData(manifest)
	if err != nil {
		return nil, fmt.Errorf("pkcs7 init: %w", err)
	}
	sd.SetDigestAlgorithm(pkcs7.OIDDigestAlgorithmSHA256)

	if err := sd.AddSignerChain(s.cert, s.key, []*x509.Certificate{s.wwdr}, pkcs7.SignerInfoConfig{}); err != nil {
		return nil, fmt.Errorf("pkcs7 add signer: %w", err)
	}
	sd.Detach()

	signature, err := sd.Finish()
	if err != nil {
		return nil, fmt.Errorf("pkcs7 finish: %w", err)
	}

	return signature, nil
}

func (s *PKCS7Signer) archive(files map[string][]byte) ([]byte, error) {
	names := maps.Keys(files)
	slices.Sort(names)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range names {
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     name,
			Method:   zip.Deflate,
			Modified: s.modified,
		})
		if err != nil {
			return nil, fmt.Errorf("zip %s: %w", name, err)
		}
		if _, err := w.Write(files[name]); err != nil {
			return nil, fmt.Errorf("zip %s: %w", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("zip close: %w", err)
	}

	return buf.Bytes(), nil
}

func parseCertificate(data []byte) (*x509.Certificate, error) {
	block, err := findBlock(data, BlockCertificate)
	if err != nil {
		return nil, err
	}
	return x509.ParseCertificate(block.Bytes)
}

func parsePrivateKey(data []byte, passphrase string) (crypto.PrivateKey, error) {
	block, err := findBlock(data, BlockPrivateKey)
	if err != nil {
		return nil, err
	}

	switch block.Type {
	case "ENCRYPTED PRIVATE KEY":
		if passphrase == "" {
			return nil, errors.New("encrypted key without passphrase")
		}
		return pkcs8.ParsePKCS8PrivateKey(block.Bytes, []byte(passphrase))
	case "RSA PRIVATE KEY":
		return x509.ParsePKCS1PrivateKey(block.Bytes)
	case "EC PRIVATE KEY":
		return x509.ParseECPrivateKey(block.Bytes)
	default:
		return pkcs8.ParsePKCS8PrivateKey(block.Bytes)
	}
}

func findBlock(data []byte, blockType string) (*pem.Block, error) {
	rest := data
	for {
		var block *pem.Block
		block, rest = pem.Decode(rest)
		if block == nil {
			return nil, fmt.Errorf("no %s block", strings.ToLower(blockType))
		}
		if matchesBlockType(block.Type, blockType) {
			return block, nil
		}
	}
}
