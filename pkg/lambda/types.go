package lambda

import "context"

// Request represents a generic HTTP request for serverless functions
type Request struct {
	Method      string            `json:"method"`
	Path        string            `json:"path"`
	Resource    string            `json:"resource"`
	Headers     map[string]string `json:"headers"`
	QueryParams map[string]string `json:"query_params"`
	Body        []byte            `json:"body"`
	PathParams  map[string]string `json:"path_params"`
}

// Response represents a generic HTTP response for serverless functions
type Response struct {
	StatusCode int               `json:"status_code"`
	Headers    map[string]string `json:"headers"`
	Body       []byte            `json:"body"`
}

// HandlerFunc is a framework-agnostic handler interface
type HandlerFunc func(ctx context.Context, req *Request) (*Response, error)

// Query returns a query string parameter, or "" if absent
func (r *Request) Query(name string) string {
	if r.QueryParams == nil {
		return ""
	}
	return r.QueryParams[name]
}

// Param returns a path parameter, or "" if absent
func (r *Request) Param(name string) string {
	if r.PathParams == nil {
		return ""
	}
	return r.PathParams[name]
}

// HasBody reports whether the request carries a non-empty body
func (r *Request) HasBody() bool {
	return len(r.Body) > 0
}
