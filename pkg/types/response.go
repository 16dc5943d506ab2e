package types

// SuccessEnvelope wraps every successful response body so the mobile
// client can always read payloads from "data".
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the wire form of a coded error. Bulk adjustments also
// embed it per item, so failed items render the same way as failed
// requests.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope wraps a request-level failure.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
