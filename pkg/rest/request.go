package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"time"

	"github.com/opst/scorch-console/pkg/buildtime"
)

// Query is query parameters of a request.
//
// Entries with nil value (or nil pointer) are omitted.
// Other values are formatted with fmt.Sprint.
type Query map[string]any

func (q Query) Encode() string {
	values := url.Values{}
	for k, v := range q {
		if v == nil {
			continue
		}
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Pointer {
			if rv.IsNil() {
				continue
			}
			v = rv.Elem().Interface()
		}
		values.Set(k, fmt.Sprint(v))
	}
	return values.Encode()
}

// withQuery appends query string to URL, if any.
func withQuery(u string, q Query) string {
	if qs := q.Encode(); qs != "" {
		return u + "?" + qs
	}
	return u
}

// send a request with JSON payload.
//
// When payload is nil, the request has no body.
func (c *client) send(ctx context.Context, method string, u string, payload any) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", buildtime.UserAgent())

	if c.breaker == nil {
		return c.httpclient.Do(req)
	}

	var resp *http.Response
	_, err = c.breaker.Execute(func() (interface{}, error) {
		r, err := c.httpclient.Do(req)
		if err != nil {
			return nil, err
		}
		resp = r
		if StatusCodeRangeOf(r) == Status5xx {
			return r, errServerSide
		}
		return r, nil
	})
	switch {
	case err == nil, errors.Is(err, errServerSide):
		return resp, nil
	case isBreakerRejection(err):
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	default:
		return nil, err
	}
}

// call sends a request and decodes its JSON response as T.
//
// For 204 No Content or an empty body, it returns the zero value of T.
func call[T any](ctx context.Context, c *client, op string, method string, u string, payload any) (T, error) {
	start := time.Now()
	var zero T

	resp, err := c.send(ctx, method, u, payload)
	if err != nil {
		c.observe(op, 0, err, time.Since(start))
		return zero, err
	}
	defer resp.Body.Close()

	var ret T
	err = unmarshalJsonResponse(resp, &ret)
	c.observe(op, resp.StatusCode, err, time.Since(start))
	if err != nil {
		return zero, err
	}
	return ret, nil
}

func get[T any](ctx context.Context, c *client, op string, u string) (T, error) {
	return call[T](ctx, c, op, http.MethodGet, u, nil)
}

// discard sends a request and drops its response payload.
func discard(ctx context.Context, c *client, op string, method string, u string, payload any) error {
	_, err := call[any](ctx, c, op, method, u, payload)
	return err
}
