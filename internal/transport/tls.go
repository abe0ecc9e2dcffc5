package transport

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
)

// TLSParams is the explicit TLS surface an endpoint may configure.
// It maps onto a tls.Config; fields left zero fall back to crypto/tls
// defaults.
type TLSParams struct {
	// CertFile and KeyFile, when both set, load a client certificate.
	CertFile string
	KeyFile  string

	// CAFile, when set, replaces the system roots with the given PEM bundle.
	CAFile string

	// ServerName overrides the name verified against the server certificate.
	ServerName string

	// InsecureSkipVerify disables certificate verification. Test use only.
	InsecureSkipVerify bool
}

// Config materializes the parameters into a tls.Config.
func (p *TLSParams) Config() (*tls.Config, error) {
	cfg := &tls.Config{
		ServerName:         p.ServerName,
		InsecureSkipVerify: p.InsecureSkipVerify,
	}

	if p.CertFile != "" || p.KeyFile != "" {
		cert, err := tls.LoadX509KeyPair(p.CertFile, p.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("load client key pair: %w", err)
		}
		cfg.Certificates = []tls.Certificate{cert}
	}

	if p.CAFile != "" {
		pem, err := os.ReadFile(p.CAFile)
		if err != nil {
			return nil, fmt.Errorf("read CA bundle: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("CA bundle %s contains no usable certificates", p.CAFile)
		}
		cfg.RootCAs = pool
	}

	return cfg, nil
}
