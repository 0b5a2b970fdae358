package pass

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type testChain struct {
	caKey   *rsa.PrivateKey
	caCert  *x509.Certificate
	caPEM   []byte
	key     *rsa.PrivateKey
	cert    *x509.Certificate
	certPEM []byte
}

func newTestChain(t *testing.T) testChain {
	t.Helper()

	caKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	caTmpl := &x509.Certificate{
		SerialNumber:          big.NewInt(1),
		Subject:               pkix.Name{CommonName: "Test WWDR"},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(24 * time.Hour),
		IsCA:                  true,
		BasicConstraintsValid: true,
		KeyUsage:              x509.KeyUsageCertSign | x509.KeyUsageDigitalSignature,
	}
	caDER, err := x509.CreateCertificate(rand.Reader, caTmpl, caTmpl, &caKey.PublicKey, caKey)
	require.NoError(t, err)
	caCert, err := x509.ParseCertificate(caDER)
	require.NoError(t, err)

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(2),
		Subject:      pkix.Name{CommonName: "Pass Type ID: pass.test.card"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(24 * time.Hour),
		KeyUsage:     x509.KeyUsageDigitalSignature,
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, caCert, &key.PublicKey, caKey)
	require.NoError(t, err)
	cert, err := x509.ParseCertificate(der)
	require.NoError(t, err)

	return testChain{
		caKey:   caKey,
		caCert:  caCert,
		caPEM:   pem.EncodeToMemory(&pem.Block{Type: BlockCertificate, Bytes: caDER}),
		key:     key,
		cert:    cert,
		certPEM: pem.EncodeToMemory(&pem.Block{Type: BlockCertificate, Bytes: der}),
	}
}

func (c testChain) pkcs1KeyPEM() []byte {
	return pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(c.key)})
}

func (c testChain) credentials() Credentials {
	return Credentials{
		Certificate: c.certPEM,
		PrivateKey:  c.pkcs1KeyPEM(),
		WWDR:        c.caPEM,
	}
}

func testAssets() Assets {
	assets := make(Assets)
	for _, name := range []string{"icon", "logo", "strip"} {
		for _, density := range densities {
			assets[name+density+".png"] = []byte(name + density)
		}
	}
	return assets
}

func (d Descriptor) Field(key string) (Field, bool) {
	for _, group := range [][]Field{
		d.StoreCard.PrimaryFields,
		d.StoreCard.SecondaryFields,
		d.StoreCard.AuxiliaryFields,
		d.StoreCard.BackFields,
	} {
		for _, f := range group {
			if f.Key == key {
				return f, true
			}
		}
	}
	return Field{}, false
}
