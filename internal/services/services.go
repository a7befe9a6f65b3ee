// Package services holds one thin wrapper per backend resource. Every
// call goes through the session client and comes back as a tagged Result,
// so calling code branches on OK instead of catching anywhere.
package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/abhidhakal/hready/internal/api"
)

// timeNow is swapped in tests that pin the calendar month.
var timeNow = time.Now

type Result[T any] struct {
	OK   bool
	Data T
	Err  error
}

func succeed[T any](data T) Result[T] {
	return Result[T]{OK: true, Data: data}
}

func failed[T any](err error) Result[T] {
	return Result[T]{Err: err}
}

// Empty marks calls whose response body carries nothing worth decoding.
type Empty struct{}

// call performs one request and folds every failure mode into the Result:
// transport errors (after the client's own retry) and error statuses alike.
// The client has already torn the session down on 401/403; the
// ErrSessionInvalidated sentinel still reaches the caller through Err.
func call[T any](ctx context.Context, client *api.Client, req api.Request) Result[T] {
	resp, err := client.Do(ctx, req)
	if err != nil {
		if errors.Is(err, api.ErrSessionInvalidated) && resp != nil {
			return failed[T](fmt.Errorf("%w: %s", err, resp.ErrorMessage(http.StatusText(resp.StatusCode))))
		}
		return failed[T](err)
	}
	if !resp.OK() {
		return failed[T](errors.New(resp.ErrorMessage(http.StatusText(resp.StatusCode))))
	}

	var data T
	if len(resp.Body) > 0 {
		if _, isEmpty := any(data).(Empty); !isEmpty {
			if err := resp.Decode(&data); err != nil {
				return failed[T](err)
			}
		}
	}
	return succeed(data)
}
