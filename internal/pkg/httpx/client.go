// Package httpx wraps outbound JSON calls in a bounded, non-throwing result.
// Every provider call in the analysis pipeline goes through Do so that a slow
// or failing upstream degrades to ok=false instead of aborting the request.
package httpx

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
)

const (
	DefaultTimeout = 15 * time.Second

	// maxBodyBytes bounds how much of an upstream body we are willing to parse.
	maxBodyBytes = 8 << 20
)

var client = &http.Client{}

// TimedResult is the uniform wrapper every provider call returns. It never
// carries a Go error out: failures are data.
type TimedResult[T any] struct {
	OK        bool
	Data      *T
	LatencyMs int64
	Err       string
}

type Request struct {
	Method  string
	URL     string
	Body    []byte
	Header  http.Header
	Timeout time.Duration
}

// Do performs the call and always returns within Timeout plus scheduling
// slack, regardless of upstream behavior.
func Do[T any](ctx context.Context, req Request) TimedResult[T] {
	start := time.Now()
	fail := func(msg string) TimedResult[T] {
		return TimedResult[T]{OK: false, LatencyMs: time.Since(start).Milliseconds(), Err: msg}
	}

	timeout := req.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, req.URL, body)
	if err != nil {
		return fail(err.Error())
	}
	for k, vals := range req.Header {
		for _, v := range vals {
			httpReq.Header.Add(k, v)
		}
	}

	resp, err := client.Do(httpReq)
	if err != nil {
		return fail(err.Error())
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fail(fmt.Sprintf("HTTP %d: %s", resp.StatusCode, resp.Status))
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fail(err.Error())
	}

	data := new(T)
	if err := sonic.Unmarshal(raw, data); err != nil {
		return fail(fmt.Sprintf("decode: %s", err.Error()))
	}

	return TimedResult[T]{OK: true, Data: data, LatencyMs: time.Since(start).Milliseconds()}
}

// Get fetches a JSON document with the default timeout.
func Get[T any](ctx context.Context, url string) TimedResult[T] {
	return Do[T](ctx, Request{URL: url})
}
