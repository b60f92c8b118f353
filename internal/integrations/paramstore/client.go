package paramstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// ssmAPI is the part of *ssm.Client used here.
type ssmAPI interface {
	GetParameter(ctx context.Context, in *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// Getter resolves a named secret or setting.
type Getter interface {
	GetParameter(ctx context.Context, name string) (string, error)
}

var ErrNotFound = errors.New("paramstore: parameter not found")

// Client reads parameters from AWS Systems Manager Parameter Store.
type Client struct {
	api        ssmAPI
	decryption bool
}

type Option func(*Client)

// WithoutDecryption reads SecureString parameters as stored ciphertext.
func WithoutDecryption() Option {
	return func(c *Client) {
		c.decryption = false
	}
}

func New(api ssmAPI, opts ...Option) (*Client, error) {
	if api == nil {
		return nil, errors.New("paramstore: api must not be nil")
	}
	c := &Client{api: api, decryption: true}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) GetParameter(ctx context.Context, name string) (string, error) {
	if c.api == nil {
		return "", errors.New("paramstore: client not initialized")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("paramstore: name is required")
	}

	out, err := c.api.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           &name,
		WithDecryption: &c.decryption,
	})
	if err != nil {
		return "", fmt.Errorf("paramstore: get parameter %q: %w", name, err)
	}
	if out == nil || out.Parameter == nil || out.Parameter.Value == nil {
		return "", fmt.Errorf("paramstore: parameter %q missing value", name)
	}
	return *out.Parameter.Value, nil
}

// Static serves parameters from memory. It backs local runs where the
// values come from the environment instead of SSM.
type Static map[string]string

func (s Static) GetParameter(_ context.Context, name string) (string, error) {
	v, ok := s[strings.TrimSpace(name)]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return v, nil
}

// Name joins a parameter prefix and key into a hierarchical SSM name.
func Name(prefix, key string) string {
	prefix = strings.TrimRight(strings.TrimSpace(prefix), "/")
	key = strings.TrimLeft(strings.TrimSpace(key), "/")
	if prefix == "" {
		return "/" + key
	}
	return prefix + "/" + key
}
