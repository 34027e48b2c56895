package rest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	cerr "github.com/opst/scorch-console/pkg/errors"
)

// MessageDefault is the message of error responses without message.
const MessageDefault = "An error occurred."

// Error is an error response from Scorch.
type Error struct {
	// URL requested
	URL string

	// HTTP status code of the response
	Status int

	// Message from the response body, or MessageDefault.
	Message string

	// Body of the response, formatted if it is JSON.
	Body string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Summary() string {
	return e.Message
}

func (e *Error) Verbose() string {
	return fmt.Sprintf(
		"%s\n(%s: status code = %d, %s)\n%s",
		e.Message, e.URL, e.Status, StatusCodeRangeOfCode(e.Status), e.Body,
	)
}

var _ cerr.CUIError = &Error{}

// StatusOf returns HTTP status code which err came with.
//
// For ErrUnavailable, it is 503. For errors not from Scorch responses, 0.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	if errors.Is(err, ErrUnavailable) {
		return http.StatusServiceUnavailable
	}
	return 0
}

// unmarshal http response which has json content.
//
// args:
//   - resp: http response to be processed.
//   - v: value which response should be.
//
// return:
//
//	error if...
//	- can not read response body
//	- response body is not shaped of v
//	- status code is not 2xx (as *Error)
func unmarshalJsonResponse[T any](resp *http.Response, v *T) error {
	if StatusCodeRangeOf(resp) != Status2xx {
		return errorFromResponse(resp)
	}
	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return cerr.NewCuiError(
			fmt.Sprintf("cannot read response: %s", err.Error()),
			cerr.WithCause(err),
		)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		message := fmt.Sprintf("unexpected response: %s (status code = %d)", err.Error(), resp.StatusCode)
		return cerr.NewCuiError(
			message,
			cerr.WithCause(err),
			cerr.WithVerbose(string(body)),
		)
	}
	return nil
}

func unmarshalStreamResponse(resp *http.Response) (io.ReadCloser, error) {
	if StatusCodeRangeOf(resp) == Status2xx {
		return resp.Body, nil
	}
	return nil, errorFromResponse(resp)
}

func errorFromResponse(resp *http.Response) error {
	e := &Error{
		URL:     resp.Request.URL.String(),
		Status:  resp.StatusCode,
		Message: MessageDefault,
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		e.Body = fmt.Sprintf("cannot read server message: %s", err.Error())
		return e
	}

	if msg, err := jsonUnmarshal[struct {
		Message *string `json:"message"`
	}](body); err == nil && msg.Message != nil && *msg.Message != "" {
		e.Message = *msg.Message
	}
	e.Body = parseErrorMessage(body)
	return e
}

func jsonUnmarshal[T any](buf []byte) (*T, error) {
	ret := new(T)
	if err := json.Unmarshal(buf, ret); err != nil {
		return nil, err
	}
	return ret, nil
}

// parseErrorMessage formats body, if it is JSON. Otherwise it returns body as is.
func parseErrorMessage(body []byte) string {
	buf := new(bytes.Buffer)
	if err := json.Indent(buf, body, "", "    "); err != nil {
		return string(body)
	}
	return buf.String()
}
