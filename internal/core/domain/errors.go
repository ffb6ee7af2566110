package domain

import "errors"

var (
	// ErrConflict is returned when a username or email is already taken.
	ErrConflict = errors.New("username or email already exists")
	// ErrAuthFailure is returned for unknown credentials or a missing session.
	ErrAuthFailure = errors.New("invalid credentials")
	// ErrInvalidImport is returned for a bulk payload that cannot be applied.
	ErrInvalidImport = errors.New("invalid import payload")

	ErrInvalidInput = errors.New("invalid input")
	ErrUserNotFound = errors.New("user not found")
	ErrPostNotFound = errors.New("post not found")
	ErrForbidden    = errors.New("access forbidden")
	ErrBlobNotFound = errors.New("blob not found")
)

// User-facing messages, kept in the language of the browser client.
const (
	MsgConflict      = "Kullanıcı adı veya email zaten mevcut"
	MsgAuthFailure   = "Geçersiz kullanıcı bilgileri"
	MsgInvalidImport = "Geçersiz veri dosyası"
)

// Message returns the user-facing text for the three errors the client
// reports, or false for anything else.
func Message(err error) (string, bool) {
	switch {
	case errors.Is(err, ErrConflict):
		return MsgConflict, true
	case errors.Is(err, ErrAuthFailure):
		return MsgAuthFailure, true
	case errors.Is(err, ErrInvalidImport):
		return MsgInvalidImport, true
	}
	return "", false
}
