package httpfetch_test

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gizzahub/lpmcore/httpfetch"
)

func TestCertsNoVerifySucceeds(t *testing.T) {
	require.NoError(t, httpfetch.Certs(httpfetch.CertNoVerify, ""))
}

func TestCertsDirRejectsMissingDirectory(t *testing.T) {
	err := httpfetch.Certs(httpfetch.CertDir, "/does/not/exist")
	assert.Error(t, err)
}

func TestCertsFileRejectsMissingFile(t *testing.T) {
	err := httpfetch.Certs(httpfetch.CertFile, "/does/not/exist.pem")
	assert.Error(t, err)
}

func TestCertsSystemFailsOnWindowsAndDarwin(t *testing.T) {
	err := httpfetch.Certs(httpfetch.CertSystem, "")
	switch runtime.GOOS {
	case "windows", "darwin":
		assert.Error(t, err)
	}
}
