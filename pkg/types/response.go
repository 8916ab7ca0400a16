package types

// ErrorBody is the JSON body written for non-2xx responses. Message is the
// field the access layer surfaces to callers.
type ErrorBody struct {
	Message string `json:"message"`
	Code    string `json:"code"`
	Details any    `json:"details,omitempty"`
}
