// Package apperr defines the closed set of failures the service reports to
// its clients, together with their stable codes, HTTP statuses and messages.
package apperr

import (
	"encoding/json"
	"errors"
	"net/http"
)

// Kind classifies a failure.
type Kind int

const (
	// KindUnknownServer is the zero value so that unclassified errors fall into it.
	KindUnknownServer Kind = iota
	KindStore
	KindUnauthorized
	KindUsernameAlreadyRegistered
	KindInvalidRequest
	KindDocumentNotProvided
	KindCustom
)

type descriptor struct {
	code    int
	status  int
	message string
}

var descriptors = map[Kind]descriptor{
	KindStore:                     {1000, http.StatusBadGateway, "Cannot connect to storage server."},
	KindUnknownServer:             {2000, http.StatusBadGateway, "Unknown server error."},
	KindUnauthorized:              {2001, http.StatusUnauthorized, "Unauthorized"},
	KindUsernameAlreadyRegistered: {2002, http.StatusPaymentRequired, "Username is already registered."},
	KindInvalidRequest:            {2003, http.StatusForbidden, "Invalid request"},
	KindDocumentNotProvided:       {2004, http.StatusForbidden, "Field 'document' not provided."},
	KindCustom:                    {3000, http.StatusInternalServerError, ""},
}

// Error is a classified failure. Err holds the underlying cause, which is
// never shown to clients.
type Error struct {
	Kind Kind
	// Msg overrides the default message. Only KindCustom uses it.
	Msg string
	Err error
}

// Sentinels for errors.Is comparisons.
var (
	ErrStore                     = &Error{Kind: KindStore}
	ErrUnknownServer             = &Error{Kind: KindUnknownServer}
	ErrUnauthorized              = &Error{Kind: KindUnauthorized}
	ErrUsernameAlreadyRegistered = &Error{Kind: KindUsernameAlreadyRegistered}
	ErrInvalidRequest            = &Error{Kind: KindInvalidRequest}
	ErrDocumentNotProvided       = &Error{Kind: KindDocumentNotProvided}
)

// New returns an error of the given kind without a cause.
func New(kind Kind) *Error {
	return &Error{Kind: kind}
}

// Wrap classifies err as kind.
func Wrap(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// Custom returns a KindCustom error carrying message.
func Custom(message string) *Error {
	return &Error{Kind: KindCustom, Msg: message}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message() + ": " + e.Err.Error()
	}
	return e.Message()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so wrapped errors compare equal to
// the package sentinels.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Code returns the stable application code.
func (e *Error) Code() int {
	return descriptors[e.Kind].code
}

// Status returns the HTTP status the error is reported with.
func (e *Error) Status() int {
	return descriptors[e.Kind].status
}

// Message returns the human readable message.
func (e *Error) Message() string {
	if e.Kind == KindCustom {
		return e.Msg
	}
	return descriptors[e.Kind].message
}

// Body is the JSON shape of every error response.
type Body struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// From extracts the classified error from err. Anything unclassified becomes
// an unknown server error wrapping err.
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(KindUnknownServer, err)
}

// Render maps err to the HTTP status and body sent to the client.
func Render(err error) (int, Body) {
	e := From(err)
	return e.Status(), Body{Code: e.Code(), Message: e.Message()}
}

// Write renders err into w.
func Write(w http.ResponseWriter, err error) {
	status, body := Render(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
