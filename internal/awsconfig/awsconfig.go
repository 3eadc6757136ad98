// Package awsconfig loads the AWS SDK configuration the authority's KMS
// sealer runs under: profile selection outside Kubernetes, optional region
// override, same as the rest of this module's AWS-backed components.
package awsconfig

import (
	"context"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// Load resolves an aws.Config the way every other AWS-backed component in
// this module does: the shared profile when running outside Kubernetes
// (service account credentials take over inside it), and regionOverride
// when non-empty.
func Load(ctx context.Context, regionOverride string) (aws.Config, error) {
	var options []func(*config.LoadOptions) error

	if !runningInKubernetes() {
		options = append(options, config.WithSharedConfigProfile(profile()))
	}
	if regionOverride != "" {
		options = append(options, config.WithRegion(regionOverride))
	}

	return config.LoadDefaultConfig(ctx, options...)
}

func runningInKubernetes() bool {
	_, err := os.Stat("/var/run/secrets/kubernetes.io/serviceaccount/token")
	return err == nil
}

func profile() string {
	if p := os.Getenv("AWS_PROFILE"); p != "" {
		return p
	}
	return "default"
}

// CallerIdentity reports the AWS identity cfg authenticates as, useful for
// the authority's selfcheck path to confirm it's pointed at the expected
// account before sealing anything.
func CallerIdentity(ctx context.Context, cfg aws.Config) (*sts.GetCallerIdentityOutput, error) {
	return sts.NewFromConfig(cfg).GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
}
