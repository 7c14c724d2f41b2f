package console

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Kind buckets every failure the console can surface. Callers branch on the
// kind, never on status codes or error strings.
type Kind int

const (
	// KindNetwork covers transport failures: the request never completed, so
	// nothing can be said about server state.
	KindNetwork Kind = iota
	// KindForbidden means the server refused the operation for this actor.
	KindForbidden
	// KindNotFound means the parcel (or other resource) does not exist, or is
	// not visible to this actor.
	KindNotFound
	// KindValidation means the server rejected the payload or the transition.
	KindValidation
	// KindServer covers everything else the server reported.
	KindServer
)

// Error is the classified failure returned by every Client call.
type Error struct {
	Kind       Kind
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("console: %s (status %d)", e.Message, e.StatusCode)
	}
	return "console: " + e.Message
}

// RoleCourier is the server's courier role name. UserMessage words the
// forbidden case differently for couriers, whose denials are almost always
// assignment related.
const RoleCourier = "courier"

// UserMessage is the text shown in the UI for this failure, worded for the
// role of the signed-in actor.
func (e *Error) UserMessage(role string) string {
	switch e.Kind {
	case KindNetwork:
		return "Connection problem. Check your network and try again."
	case KindForbidden:
		if role == RoleCourier {
			return "You may only modify parcels assigned to you."
		}
		return "You are not allowed to perform this action."
	case KindNotFound:
		return "This parcel no longer exists."
	case KindValidation:
		return e.Message
	default:
		return "Something went wrong. Please try again."
	}
}

// classifyStatus maps an HTTP error response to a console Error. The body is
// expected to carry the API's {"error": "..."} envelope; when it does not,
// the status text stands in.
func classifyStatus(status int, body []byte) *Error {
	msg := http.StatusText(status)
	var envelope struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &envelope) == nil && envelope.Error != "" {
		msg = envelope.Error
	}

	kind := KindServer
	switch status {
	case http.StatusForbidden:
		kind = KindForbidden
	case http.StatusNotFound:
		kind = KindNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		kind = KindValidation
	}

	return &Error{Kind: kind, StatusCode: status, Message: msg}
}

func networkError(err error) *Error {
	return &Error{Kind: KindNetwork, Message: err.Error()}
}
