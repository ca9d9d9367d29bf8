package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{name: "nil", err: nil, want: KindNone},
		{name: "unauthorized", err: fmt.Errorf("visit profile: %w", ErrUnauthorized), want: KindUnauthorized},
		{name: "rate limited", err: Classify(errors.New("please wait a few minutes"), KindRateLimited), want: KindRateLimited},
		{name: "not found", err: Classify(errors.New("user not found"), KindNotFound), want: KindNotFound},
		{name: "storage", err: Classify(errors.New("tx closed"), KindStorage), want: KindStorage},
		{name: "deadline counts as transient", err: fmt.Errorf("download: %w", context.DeadlineExceeded), want: KindTransient},
		{name: "canceled", err: context.Canceled, want: KindCanceled},
		{name: "anything else", err: errors.New("boom"), want: KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestClassify_KeepsOriginalInChain(t *testing.T) {
	root := errors.New("connection reset by peer")
	err := Classify(root, KindTransient)

	assert.ErrorIs(t, err, root)
	assert.ErrorIs(t, err, ErrTransient)
	assert.Equal(t, "transient network error: connection reset by peer", err.Error())
	assert.True(t, IsRetryable(err))
}

func TestClassify_AlreadyClassified(t *testing.T) {
	err := fmt.Errorf("list media: %w", ErrRateLimited)
	assert.Same(t, err, Classify(err, KindRateLimited))
	assert.Nil(t, Classify(nil, KindStorage))
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "transient", err: Classify(errors.New("connection reset"), KindTransient), want: true},
		{name: "unclassified remote error", err: errors.New("received unexpected status code 400"), want: true},
		{name: "local write", err: Classify(errors.New("no space left on device"), KindStorage), want: true},
		{name: "deadline", err: context.DeadlineExceeded, want: true},
		{name: "unauthorized", err: Classify(errors.New("login_required"), KindUnauthorized), want: false},
		{name: "rate limited", err: Classify(errors.New("429"), KindRateLimited), want: false},
		{name: "not found", err: Classify(errors.New("404"), KindNotFound), want: false},
		{name: "canceled", err: fmt.Errorf("download: %w", context.Canceled), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryable(tt.err))
		})
	}
}
