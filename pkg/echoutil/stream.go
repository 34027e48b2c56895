package echoutil

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// Attachment streams body to the client as a downloaded file.
//
// size is the length of body, or negative if unknown.
// The response is flushed for each chunk read, so a long download
// reaches the client progressively.
func Attachment(c echo.Context, filename string, contentType string, body io.Reader, size int64) error {
	ctx := c.Request().Context()

	resp := c.Response()
	header := resp.Header()
	header.Set(
		echo.HeaderContentDisposition,
		mime.FormatMediaType("attachment", map[string]string{"filename": filename}),
	)
	if contentType == "" {
		contentType = echo.MIMEOctetStream
	}
	header.Set(echo.HeaderContentType, contentType)
	if 0 <= size {
		header.Set(echo.HeaderContentLength, strconv.FormatInt(size, 10))
	}
	resp.WriteHeader(http.StatusOK)

	buf := make([]byte, 1024*1024)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		n, err := body.Read(buf)
		if 0 < n {
			if _, werr := resp.Write(buf[:n]); werr != nil {
				return werr
			}
			resp.Flush()
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("stream is broken: %w", err)
		}
	}
}
