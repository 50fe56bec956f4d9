package httpfetch

import (
	"crypto/tls"
	"crypto/x509"
	"os"
	"path/filepath"
	"runtime"

	"github.com/gizzahub/lpmcore/errs"
)

// CertKind selects how Certs builds the process-wide TLS trust store.
type CertKind int

const (
	// CertDir parses every CA certificate found under a directory.
	CertDir CertKind = iota
	// CertFile parses a single CA bundle file.
	CertFile
	// CertSystem loads the platform's system trust store.
	CertSystem
	// CertNoVerify disables peer certificate verification.
	CertNoVerify
)

// tlsState is process-wide, written only by Certs and read through
// activeTLSConfig, both under tlsConfigMu.
var tlsState = &tls.Config{MinVersion: tls.VersionTLS12}

// Certs configures the process-wide TLS trust store used by every
// subsequent https Get call. Calls are serialized on tlsConfigMu; a Get
// already past its handshake keeps the configuration it started with.
func Certs(kind CertKind, path string) error {
	tlsConfigMu.Lock()
	defer tlsConfigMu.Unlock()

	switch kind {
	case CertNoVerify:
		tlsState = &tls.Config{MinVersion: tls.VersionTLS12, InsecureSkipVerify: true}
		return nil

	case CertDir:
		pool, err := poolFromDir(path)
		if err != nil {
			return &errs.TLSError{Reason: "load CA directory " + path, Err: err}
		}
		tlsState = &tls.Config{MinVersion: tls.VersionTLS12, RootCAs: pool}
		return nil

	case CertFile:
		pool, err := poolFromFile(path)
		if err != nil {
			return &errs.TLSError{Reason: "load CA file " + path, Err: err}
		}
		tlsState = &tls.Config{MinVersion: tls.VersionTLS12, RootCAs: pool}
		return nil

	case CertSystem:
		return certSystem(path)

	default:
		return &errs.TLSError{Reason: "unknown cert kind", Err: nil}
	}
}

func poolFromDir(dir string) (*x509.CertPool, error) {
	pool := x509.NewCertPool()
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		pool.AppendCertsFromPEM(data)
	}
	return pool, nil
}

func poolFromFile(path string) (*x509.CertPool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	pool := x509.NewCertPool()
	pool.AppendCertsFromPEM(data)
	return pool, nil
}

// certSystem is called with tlsConfigMu already held by Certs. It is only
// meaningfully implementable on platforms whose system trust store Go's
// crypto/x509 already knows how to load as the zero-value RootCAs (nil
// means "use system pool"); Windows ROOT-store enumeration and a macOS
// system store have no cgo-free Go equivalent this module can ship, so
// both fail clearly rather than silently pretending to succeed.
func certSystem(path string) error {
	switch runtime.GOOS {
	case "windows":
		return &errs.TLSError{Reason: "system cert store enumeration requires platform APIs this module does not bridge", Err: nil}
	case "darwin":
		return &errs.TLSError{Reason: "macOS system cert store is a stub in this module", Err: nil}
	default:
		return &errs.TLSError{Reason: "system cert store is unavailable on this platform", Err: nil}
	}
}

func activeTLSConfig(host string) *tls.Config {
	tlsConfigMu.Lock()
	defer tlsConfigMu.Unlock()
	cfg := tlsState.Clone()
	cfg.ServerName = host
	return cfg
}
