package types

// Envelope is the JSON shape of every API response.
type Envelope struct {
	Success bool     `json:"success"`
	Data    any      `json:"data,omitempty"`
	Message string   `json:"message,omitempty"`
	Code    string   `json:"code,omitempty"`
	Errors  []string `json:"errors,omitempty"`
	Total   *int     `json:"total,omitempty"`
}
