package instagramimpl

import (
	"context"
	"fmt"
)

// call runs a goinsta request, which has no context support, and gives up
// waiting once ctx is done. A panic inside the client is turned into an error.
func call(ctx context.Context, fn func() error) error {
	done := make(chan error, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- fmt.Errorf("panic in instagram client: %v", r)
			}
		}()
		done <- fn()
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
