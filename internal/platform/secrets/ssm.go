package secrets

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"

	"represent/pkg/platform/sentinel"
)

// ParameterGetter is the subset of the SSM client used here.
type ParameterGetter interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// SSMSource reads decrypted SecureString parameters from AWS Systems Manager.
type SSMSource struct {
	client ParameterGetter
}

// NewSSMSource wraps an existing SSM client.
func NewSSMSource(client ParameterGetter) *SSMSource {
	return &SSMSource{client: client}
}

// NewSSMSourceFromConfig builds an SSM client from the default AWS credential chain.
func NewSSMSourceFromConfig(ctx context.Context, region string) (*SSMSource, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return NewSSMSource(ssm.NewFromConfig(cfg)), nil
}

// Get implements Source.
func (s *SSMSource) Get(ctx context.Context, name string) (string, error) {
	out, err := s.client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		var notFound *types.ParameterNotFound
		if errors.As(err, &notFound) {
			return "", sentinel.ErrNotFound
		}
		return "", fmt.Errorf("ssm get parameter: %w", err)
	}
	if out == nil || out.Parameter == nil || out.Parameter.Value == nil {
		return "", sentinel.ErrNotFound
	}
	return aws.ToString(out.Parameter.Value), nil
}
