package common

type Headers map[string]string

// Body models errors as JSON in the API
type Body struct {
	Message string `json:"message" binding:"required" example:"Something went wrong :("`
	// Reason is an optional machine-readable code for callers that want to
	// branch on the failure, e.g. "revisions_login_required"
	Reason string `json:"reason,omitempty" example:"revisions_login_required"`
}

type ApiError struct {
	StatusCode int
	Body       Body
}

func (a *ApiError) Error() string {
	return a.Body.Message
}
