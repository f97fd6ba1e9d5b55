package llm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePrefersRequestedProvider(t *testing.T) {
	creds := Credentials{OpenAI: "o", Anthropic: "a", Gemini: "g"}

	p, key, err := resolve(creds, ProviderAnthropic)
	require.NoError(t, err)
	assert.Equal(t, ProviderAnthropic, p)
	assert.Equal(t, "a", key)
}

func TestResolveFallbackOrder(t *testing.T) {
	p, key, err := resolve(Credentials{Anthropic: "a", Gemini: "g"}, ProviderOpenAI)
	require.NoError(t, err)
	assert.Equal(t, ProviderAnthropic, p)
	assert.Equal(t, "a", key)

	p, key, err = resolve(Credentials{Gemini: "g"}, ProviderOpenAI)
	require.NoError(t, err)
	assert.Equal(t, ProviderGemini, p)
	assert.Equal(t, "g", key)
}

func TestResolveNoCredentials(t *testing.T) {
	_, _, err := resolve(Credentials{}, ProviderOpenAI)
	assert.ErrorIs(t, err, ErrNoCredentials)
}

type slowClient struct {
	delay  time.Duration
	closed bool
}

func (s *slowClient) Complete(ctx context.Context, _ *CompletionRequest) (*CompletionResponse, error) {
	select {
	case <-time.After(s.delay):
		return &CompletionResponse{Content: "ok"}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *slowClient) Name() string { return "slow" }

func (s *slowClient) Close() error {
	s.closed = true
	return nil
}

func TestWithTimeoutBoundsCompletion(t *testing.T) {
	factory := func(context.Context, Credentials) (Client, error) {
		return &slowClient{delay: time.Second}, nil
	}

	bounded := WithTimeout(factory, 10*time.Millisecond)
	client, err := bounded(context.Background(), Credentials{OpenAI: "k"})
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), &CompletionRequest{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestWithTimeoutForwardsClose(t *testing.T) {
	inner := &slowClient{delay: time.Millisecond}
	factory := func(context.Context, Credentials) (Client, error) {
		return inner, nil
	}

	client, err := WithTimeout(factory, time.Second)(context.Background(), Credentials{OpenAI: "k"})
	require.NoError(t, err)
	require.NoError(t, client.Close())
	assert.True(t, inner.closed)
}

func TestWithTimeoutDisabled(t *testing.T) {
	factory := func(context.Context, Credentials) (Client, error) {
		return &slowClient{delay: time.Millisecond}, nil
	}

	unbounded := WithTimeout(factory, 0)
	client, err := unbounded(context.Background(), Credentials{OpenAI: "k"})
	require.NoError(t, err)

	resp, err := client.Complete(context.Background(), &CompletionRequest{})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Content)
}
