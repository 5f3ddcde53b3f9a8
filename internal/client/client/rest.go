package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/fcpanel/internal/common"
	"github.com/dmitrijs2005/fcpanel/internal/logging"
)

// maxErrorBody caps how much of an error response is read for its message.
const maxErrorBody = 64 << 10

// call describes one API request.
type call struct {
	op       string
	method   string
	path     string
	query    url.Values
	token    string
	body     any
	fallback string
}

type restClient struct {
	baseURL string
	http    *http.Client
	logger  logging.Logger
}

func newRESTClient(baseURL string, httpClient *http.Client, logger logging.Logger) *restClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &restClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		logger:  logger,
	}
}

// do sends c and decodes a 2xx body into out when out is non-nil.
func (r *restClient) do(ctx context.Context, c call, out any) error {
	var body io.Reader
	if c.body != nil {
		b, err := json.Marshal(c.body)
		if err != nil {
			return &Error{Kind: KindValidation, Op: c.op, Detail: fmt.Sprintf("%s: cannot encode request: %v", c.op, err), Err: err}
		}
		body = bytes.NewReader(b)
	}

	u := r.baseURL + c.path
	if len(c.query) > 0 {
		u += "?" + c.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, c.method, u, body)
	if err != nil {
		return &Error{Kind: KindTransport, Op: c.op, Detail: fmt.Sprintf("%s: %v", c.op, err), Err: err}
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeaderName, requestID)
	if c.token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+c.token)
	}

	log := r.logger.With("op", c.op, "request_id", requestID)
	start := time.Now()

	resp, err := r.http.Do(req)
	if err != nil {
		log.Debug(ctx, "request failed", "method", c.method, "path", c.path, "error", err)
		return &Error{
			Kind:   KindTransport,
			Op:     c.op,
			Detail: fmt.Sprintf("%s: %v: %v", c.op, ErrUnavailable, unwrapURLError(err)),
			Err:    err,
		}
	}
	defer resp.Body.Close()

	log.Debug(ctx, "request done", "method", c.method, "path", c.path, "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &Error{
			Kind:   KindStatus,
			Op:     c.op,
			Status: resp.StatusCode,
			Detail: errorMessage(raw, c.fallback),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Kind: KindMalformed, Op: c.op, Detail: fmt.Sprintf("%s: unreadable response: %v", c.fallback, err), Err: err}
	}
	return nil
}

// errorMessage picks the user-facing text of an error response: the JSON
// "message" (or "error") field, else the raw body, else fallback.
func errorMessage(raw []byte, fallback string) string {
	text := strings.TrimSpace(string(raw))
	if text == "" {
		return fallback
	}

	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if strings.HasPrefix(text, "{") && json.Unmarshal([]byte(text), &payload) == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
		return fallback
	}
	return text
}

// unwrapURLError drops the *url.Error envelope, which repeats method and URL.
func unwrapURLError(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		return ue.Err
	}
	return err
}
