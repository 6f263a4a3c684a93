// Package all registers every bundled fingerprint.
package all

import (
	"github.com/jcorbin/gofunge/internal/fingerprint"
	"github.com/jcorbin/gofunge/internal/fingerprint/boolean"
	"github.com/jcorbin/gofunge/internal/fingerprint/cpli"
	"github.com/jcorbin/gofunge/internal/fingerprint/modu"
	"github.com/jcorbin/gofunge/internal/fingerprint/null"
	"github.com/jcorbin/gofunge/internal/fingerprint/refc"
	"github.com/jcorbin/gofunge/internal/fingerprint/roma"
)

// Fingerprints returns the bundled fingerprints.
func Fingerprints() []fingerprint.Fingerprint {
	return []fingerprint.Fingerprint{
		boolean.Fingerprint,
		cpli.Fingerprint,
		modu.Fingerprint,
		null.Fingerprint,
		refc.Fingerprint,
		roma.Fingerprint,
	}
}

// Register adds the bundled fingerprints to m.
func Register(m *fingerprint.Manager) error {
	return m.Register(Fingerprints()...)
}
