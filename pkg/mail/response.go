package mail

import "fmt"

// SendEmailResponse is the decoded reply of the send_email endpoint
type SendEmailResponse struct {
	Data []Data `json:"data"`
	Meta Meta   `json:"meta"`
}

// Data is the processing result of a single message
type Data struct {
	MessageID string  `json:"message_id,omitempty"`
	CustomID  string  `json:"custom_id,omitempty"`
	Status    string  `json:"status,omitempty"`
	Errors    []Error `json:"errors,omitempty"`
	Code      string  `json:"code,omitempty"`
}

// HasErrors reports whether the service attached errors to this message
func (d Data) HasErrors() bool {
	return len(d.Errors) > 0
}

// Error is a service-side error. Field errors may carry nested errors.
type Error struct {
	Code        string  `json:"code,omitempty"`
	Description string  `json:"description,omitempty"`
	Field       string  `json:"field,omitempty"`
	Value       string  `json:"value,omitempty"`
	Errors      []Error `json:"errors,omitempty"`
}

func (e Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (field %s)", e.Code, e.Description, e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// Walk calls fn for e and every nested error, depth first
func (e Error) Walk(fn func(depth int, err Error)) {
	e.walk(0, fn)
}

func (e Error) walk(depth int, fn func(int, Error)) {
	fn(depth, e)
	for _, child := range e.Errors {
		child.walk(depth+1, fn)
	}
}

// Meta holds request metadata reported by the service
type Meta struct {
	RqTime string `json:"rq_time,omitempty"`
}
