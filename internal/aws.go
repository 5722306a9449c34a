package internal

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// DefaultRegion is used when neither the session nor the config names one.
// IAM is a global service, so any commercial region signs correctly.
const DefaultRegion = "us-east-1"

// LoadSessionConfig builds an SDK config that signs with the session's
// credentials only, ignoring whatever the environment or shared files hold.
func LoadSessionConfig(ctx context.Context, s *Session, region string) (aws.Config, error) {
	if s.Region != "" {
		region = s.Region
	}
	if region == "" {
		region = DefaultRegion
	}

	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.AccessKeyID,
			s.SecretAccessKey,
			s.SessionToken,
		)),
	)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config for session %s: %w", s.Name, err)
	}
	return cfg, nil
}

// NewIAMClient returns an IAM client authenticated as the session.
func NewIAMClient(ctx context.Context, s *Session, region string) (*iam.Client, error) {
	cfg, err := LoadSessionConfig(ctx, s, region)
	if err != nil {
		return nil, err
	}
	return iam.NewFromConfig(cfg), nil
}

// AssumeRoleInput describes how to obtain temporary credentials for a session.
type AssumeRoleInput struct {
	Name      string // session name, also used as the STS role session name
	Profile   string // AWS CLI profile holding the source credentials
	RoleARN   string
	Region    string
	Duration  int32  // seconds; 0 lets STS pick its default
	MFASerial string // MFA device ARN, when the role requires MFA
	TokenCode string
}

// AssumeRole assumes in.RoleARN using a standard AWS CLI profile and returns
// the temporary credentials as a session.
func AssumeRole(ctx context.Context, in AssumeRoleInput) (*Session, error) {
	region := in.Region
	if region == "" {
		region = DefaultRegion
	}
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(region),
		config.WithSharedConfigProfile(in.Profile),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load source profile %s: %w", in.Profile, err)
	}

	input := &sts.AssumeRoleInput{
		RoleArn:         aws.String(in.RoleARN),
		RoleSessionName: aws.String(in.Name),
	}
	if in.Duration > 0 {
		input.DurationSeconds = aws.Int32(in.Duration)
	}
	if in.MFASerial != "" {
		input.SerialNumber = aws.String(in.MFASerial)
		input.TokenCode = aws.String(in.TokenCode)
	}

	out, err := sts.NewFromConfig(cfg).AssumeRole(ctx, input)
	if err != nil {
		return nil, err
	}

	return &Session{
		Name:            in.Name,
		AccessKeyID:     aws.ToString(out.Credentials.AccessKeyId),
		SecretAccessKey: aws.ToString(out.Credentials.SecretAccessKey),
		SessionToken:    aws.ToString(out.Credentials.SessionToken),
		Expiration:      aws.ToTime(out.Credentials.Expiration),
		Region:          in.Region,
		RoleARN:         in.RoleARN,
		SourceProfile:   in.Profile,
	}, nil
}

// Identity is the caller identity behind a session.
type Identity struct {
	Account string
	Arn     string
	UserID  string
}

// WhoAmI calls sts:GetCallerIdentity with the session's credentials.
func WhoAmI(ctx context.Context, s *Session, region string) (*Identity, error) {
	cfg, err := LoadSessionConfig(ctx, s, region)
	if err != nil {
		return nil, err
	}
	out, err := sts.NewFromConfig(cfg).GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return nil, err
	}
	return &Identity{
		Account: aws.ToString(out.Account),
		Arn:     aws.ToString(out.Arn),
		UserID:  aws.ToString(out.UserId),
	}, nil
}
