package mail

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

var errEmptyBody = errors.New("empty response body")

// ParsingError describes a response body that could not be decoded
type ParsingError struct {
	OriginalBody string
	Err          error
}

func (e *ParsingError) Error() string {
	return fmt.Sprintf("unable to parse response body: %v", e.Err)
}

func (e *ParsingError) Unwrap() error {
	return e.Err
}

// Result is the outcome of one send request. Body is nil when the reply could not be
// decoded, in which case ParsingError explains why. Callers must check HasBody first.
type Result struct {
	StatusCode   int
	StatusText   string
	RawBody      []byte
	Body         *SendEmailResponse
	ParsingError *ParsingError
}

// NewResult decodes raw into a Result. It never fails: decode problems end up in ParsingError.
func NewResult(statusCode int, statusText string, raw []byte) *Result {
	res := &Result{
		StatusCode: statusCode,
		StatusText: statusText,
		RawBody:    raw,
	}
	body, err := DecodeResponse(raw)
	if err != nil {
		res.ParsingError = &ParsingError{OriginalBody: string(raw), Err: err}
		return res
	}
	res.Body = body
	return res
}

// HasBody reports whether the reply was decoded
func (r *Result) HasBody() bool {
	return r != nil && r.Body != nil
}

// Success reports a 2xx status code
func (r *Result) Success() bool {
	return r != nil && r.StatusCode >= 200 && r.StatusCode < 300
}

// schema names the fields of a JSON object that need normalizing before decoding
type schema struct {
	strings []string
	lists   map[string]*schema
	objects map[string]*schema
}

var responseSchema = func() *schema {
	errSchema := &schema{strings: []string{"code", "description", "field", "value"}}
	errSchema.lists = map[string]*schema{"errors": errSchema}

	return &schema{
		lists: map[string]*schema{
			"data": {
				strings: []string{"message_id", "custom_id", "status", "code"},
				lists:   map[string]*schema{"errors": errSchema},
			},
		},
		objects: map[string]*schema{
			"meta": {strings: []string{"rq_time"}},
		},
	}
}()

// DecodeResponse decodes a send_email reply. Unknown fields are ignored, a bare object is
// accepted wherever a list is expected and scalars in string fields are kept as their JSON text.
func DecodeResponse(raw []byte) (*SendEmailResponse, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, errEmptyBody
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var tree any
	if err := dec.Decode(&tree); err != nil {
		return nil, fmt.Errorf("malformed JSON: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("malformed JSON: trailing data after top-level value")
	}

	obj, ok := tree.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("unexpected top-level JSON %s, want object", jsonKind(tree))
	}
	normalize(obj, responseSchema)

	normalized, err := json.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("re-encode normalized body: %w", err)
	}

	var resp SendEmailResponse
	if err := json.Unmarshal(normalized, &resp); err != nil {
		return nil, fmt.Errorf("unexpected response shape: %w", err)
	}
	return &resp, nil
}

func normalize(obj map[string]any, s *schema) {
	for _, key := range s.strings {
		switch v := obj[key].(type) {
		case json.Number:
			obj[key] = v.String()
		case bool:
			obj[key] = fmt.Sprintf("%t", v)
		}
	}
	for key, sub := range s.lists {
		switch v := obj[key].(type) {
		case map[string]any:
			normalize(v, sub)
			obj[key] = []any{v}
		case []any:
			for _, el := range v {
				if m, ok := el.(map[string]any); ok {
					normalize(m, sub)
				}
			}
		}
	}
	for key, sub := range s.objects {
		if m, ok := obj[key].(map[string]any); ok {
			normalize(m, sub)
		}
	}
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case []any:
		return "array"
	case string:
		return "string"
	case json.Number:
		return "number"
	case bool:
		return "boolean"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// PrettyPrint renders v as indented JSON
func PrettyPrint(v any) (string, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// PrettyPrintResponse renders a decoded reply as indented JSON
func PrettyPrintResponse(resp *SendEmailResponse) string {
	out, err := PrettyPrint(resp)
	if err != nil {
		return fmt.Sprintf("%+v", resp)
	}
	return out
}
