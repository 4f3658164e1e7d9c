package handlers

import "net/http"

// User-facing messages for sign-in failures, keyed by the HTTP status the
// failure is reported with. Unmapped statuses fall back to the default.
const (
	MsgInvalidCredentials = "Invalid email or password."
	MsgRateLimited        = "Too many login attempts. Please try again later."
	MsgAccountLocked      = "Account is locked due to repeated failures. Try again later."
	MsgLoginDefault       = "Login failed. Please try again."
)

var loginMessages = map[int]string{
	http.StatusUnauthorized:    MsgInvalidCredentials,
	http.StatusTooManyRequests: MsgRateLimited,
	http.StatusForbidden:       MsgAccountLocked,
}

// MessageForStatus returns the fixed user-facing string for a sign-in
// failure status, or the default message for any unmapped code.
func MessageForStatus(code int) string {
	if msg, ok := loginMessages[code]; ok {
		return msg
	}
	return MsgLoginDefault
}
