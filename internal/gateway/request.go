package gateway

import (
	"errors"
	"net/url"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

const (
	TypeGitHub = "github"
	TypeExcel  = "excel"
)

// GitHubRequest is the body of POST /api/parse/github. Type is accepted
// for compatibility and otherwise ignored.
type GitHubRequest struct {
	URL  string `json:"url"`
	Type string `json:"type,omitempty"`
}

// Validate rejects anything that is not an absolute http(s) URL before a
// request goes out.
func (r GitHubRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.URL,
			validation.Required.Error("url is required"),
			is.URL.Error("Invalid url"),
			validation.By(absoluteHTTP),
		),
		validation.Field(&r.Type, validation.In(TypeGitHub, TypeExcel).Error("type must be github or excel")),
	)
}

func absoluteHTTP(value any) error {
	s, _ := value.(string)
	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return validation.NewError("gateway.github.url_invalid", "Invalid url")
	}
	return nil
}

// ErrorBody is the JSON shape of every failed response.
type ErrorBody struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// validationBody reports the first failing field, url before type.
func validationBody(err error) ErrorBody {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		for _, field := range []string{"url", "type"} {
			if e, ok := verrs[field]; ok {
				return ErrorBody{Message: e.Error(), Field: field}
			}
		}
	}
	return ErrorBody{Message: err.Error()}
}
