package state

import (
	"errors"
	"fmt"
)

// ErrInvalidCredentials is the fixed login failure message. Transport
// failures and credential mismatches are deliberately not distinguished.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ReferenceNotFoundError reports that a record referencing a participant
// was submitted while that participant is not present in the loaded list.
// It is raised locally, before any network call.
type ReferenceNotFoundError struct {
	UsuarioID string
}

func (e *ReferenceNotFoundError) Error() string {
	return fmt.Sprintf("usuario %s not found in loaded participants", e.UsuarioID)
}
