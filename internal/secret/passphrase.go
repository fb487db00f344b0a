// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package secret

// Passphrase holds secret material in a container that never implements
// string-like display and zeroes its backing memory once released. It must
// never be logged, printed, or placed in an audit record; see
// internal/redact for the last line of defense.
type Passphrase struct {
	b []byte
}

// NewPassphrase copies raw into a new Passphrase. Callers should zero their
// own copy of raw after this call if it came from an untrusted buffer they
// control (e.g. a terminal read).
func NewPassphrase(raw []byte) *Passphrase {
	b := make([]byte, len(raw))
	copy(b, raw)
	return &Passphrase{b: b}
}

// Bytes exposes the passphrase for direct use by a KDF. The returned slice
// aliases the container's backing array; callers must not retain it past
// the call.
func (p *Passphrase) Bytes() []byte { return p.b }

// Zero overwrites the backing memory. Safe to call more than once.
func (p *Passphrase) Zero() {
	for i := range p.b {
		p.b[i] = 0
	}
}

// String deliberately does not reveal the passphrase, guarding against
// accidental inclusion in fmt.Printf("%v", ...) or log fields.
func (p *Passphrase) String() string { return "<passphrase redacted>" }
