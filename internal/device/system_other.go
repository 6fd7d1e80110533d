//go:build !linux

package device

import "errors"

// ErrNoSystemPointer reports that no OS-level pointer sink is available on
// this platform; callers fall back to a NullPointer dry run.
var ErrNoSystemPointer = errors.New("device: no system pointer sink on this platform")

// NewSystemPointer opens the platform pointer sink.
func NewSystemPointer() (Pointer, func(), error) {
	return nil, nil, ErrNoSystemPointer
}
