package appsync

// Response is the per-item output envelope. Exactly one of the success shape
// (Data, optionally FilterGroups for subscriptions) or the failure shape
// (ErrorType/ErrorMessage/ErrorInfo) is populated.
type Response struct {
	Data any `json:"data,omitzero"`

	// FilterGroups is the subscription filter slot: the compiled enhanced
	// filter a subscription handler returned, absent when the handler
	// requested no additional filtering.
	FilterGroups any `json:"filterGroups,omitzero"`

	ErrorType    string         `json:"errorType,omitzero"`
	ErrorMessage string         `json:"errorMessage,omitzero"`
	ErrorInfo    map[string]any `json:"errorInfo,omitzero"`
}

// NewDataResponse wraps a successful handler value.
func NewDataResponse(data any) *Response {
	return &Response{Data: data}
}

// NewErrorResponse renders err into the failure envelope. errorType and
// errorMessage come from the first constituent so single-error consumers keep
// working; a merged error additionally lists every constituent under
// errorInfo.errors in encounter order.
func NewErrorResponse(err *Error) *Response {
	resp := &Response{
		ErrorType:    err.ErrorType(),
		ErrorMessage: err.ErrorMessage(),
	}
	entries := err.Entries()
	if len(entries) > 1 {
		resp.ErrorInfo = map[string]any{"errors": entries}
	}
	for k, v := range err.Info() {
		if resp.ErrorInfo == nil {
			resp.ErrorInfo = map[string]any{}
		}
		resp.ErrorInfo[k] = v
	}
	return resp
}
