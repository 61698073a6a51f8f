package types

// SuccessEnvelope wraps every successful JSON body so clients always
// unwrap the same top-level key.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the wire form of a failed request.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope wraps APIError under the "error" key.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
