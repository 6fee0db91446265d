package dto

// MessageResponse is the body of every non-2xx answer
type MessageResponse struct {
	Msg   string `json:"msg"`
	Code  string `json:"code,omitempty"`
	Error string `json:"error,omitempty"`
}
