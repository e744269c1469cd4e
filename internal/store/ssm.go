package store

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
)

// SSMAPI is the subset of the SSM client the store uses.
type SSMAPI interface {
	GetParameters(ctx context.Context, params *ssm.GetParametersInput, optFns ...func(*ssm.Options)) (*ssm.GetParametersOutput, error)
	PutParameter(ctx context.Context, params *ssm.PutParameterInput, optFns ...func(*ssm.Options)) (*ssm.PutParameterOutput, error)
}

// SSMStore keeps parameters in AWS Systems Manager Parameter Store.
type SSMStore struct {
	client SSMAPI
	logger *slog.Logger
}

// NewSSMStore wraps an existing SSM client.
func NewSSMStore(client SSMAPI, logger *slog.Logger) *SSMStore {
	return &SSMStore{client: client, logger: logger}
}

// NewSSMStoreForRegion builds an SSM client from the default AWS credential chain.
func NewSSMStoreForRegion(ctx context.Context, region string, logger *slog.Logger) (*SSMStore, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return NewSSMStore(ssm.NewFromConfig(cfg), logger), nil
}

// Get fetches keys with decryption enabled. Invalid (missing) names are left out.
func (s *SSMStore) Get(ctx context.Context, keys ...string) (map[string]string, error) {
	out, err := s.client.GetParameters(ctx, &ssm.GetParametersInput{
		Names:          keys,
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("ssm get parameters: %w", err)
	}

	result := make(map[string]string, len(out.Parameters))
	for _, p := range out.Parameters {
		result[aws.ToString(p.Name)] = aws.ToString(p.Value)
	}
	if len(out.InvalidParameters) > 0 {
		s.logger.DebugContext(ctx, "ssm parameters not found", "names", out.InvalidParameters)
	}
	return result, nil
}

// Put writes each parameter as a String, overwriting, in key order. Writes are not transactional:
// an error leaves earlier keys written.
func (s *SSMStore) Put(ctx context.Context, params map[string]string) error {
	for _, name := range slices.Sorted(maps.Keys(params)) {
		_, err := s.client.PutParameter(ctx, &ssm.PutParameterInput{
			Name:      aws.String(name),
			Value:     aws.String(params[name]),
			Type:      types.ParameterTypeString,
			Overwrite: aws.Bool(true),
		})
		if err != nil {
			return fmt.Errorf("ssm put parameter %s: %w", name, err)
		}
	}
	return nil
}
