// Package deploy publishes a rendered site directory to its hosting target.
package deploy

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

// Options selects the deployment method and its parameters.
type Options struct {
	Method                   string
	S3Bucket                 string
	S3Region                 string
	CloudFrontDistributionID string
	RsyncTarget              string
	RsyncFlags               string
}

// runCommand executes an external tool; swappable in tests.
var runCommand = func(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// Deploy pushes siteDir to the configured target. Method "none" is a no-op.
func Deploy(ctx context.Context, siteDir string, opts Options) error {
	switch opts.Method {
	case "", "none":
		slog.Info("Deployment disabled, skipping")
		return nil
	case "s3":
		return deployS3(ctx, siteDir, opts)
	case "rsync":
		return deployRsync(ctx, siteDir, opts)
	default:
		return fmt.Errorf("unknown deploy method %q", opts.Method)
	}
}

// deployS3 syncs the site to an S3 bucket via the aws CLI, then invalidates
// the CloudFront distribution if one is configured.
func deployS3(ctx context.Context, siteDir string, opts Options) error {
	slog.Info("Deploying to S3", "bucket", opts.S3Bucket)

	args := []string{"s3", "sync", siteDir, "s3://" + opts.S3Bucket, "--delete"}
	if opts.S3Region != "" {
		args = append(args, "--region", opts.S3Region)
	}
	if out, err := runCommand(ctx, "aws", args...); err != nil {
		return fmt.Errorf("s3 sync failed: %w: %s", err, strings.TrimSpace(string(out)))
	}

	if opts.CloudFrontDistributionID != "" {
		slog.Info("Invalidating CloudFront distribution", "id", opts.CloudFrontDistributionID)
		out, err := runCommand(ctx, "aws",
			"cloudfront", "create-invalidation",
			"--distribution-id", opts.CloudFrontDistributionID,
			"--paths", "/*")
		if err != nil {
			return fmt.Errorf("cloudfront invalidation failed: %w: %s", err, strings.TrimSpace(string(out)))
		}
	}

	slog.Info("S3 deployment complete")
	return nil
}

// deployRsync pushes the site over rsync. The trailing slash on the source
// copies the directory contents rather than the directory itself.
func deployRsync(ctx context.Context, siteDir string, opts Options) error {
	slog.Info("Deploying via rsync", "target", opts.RsyncTarget)

	args := strings.Fields(opts.RsyncFlags)
	args = append(args, strings.TrimRight(siteDir, "/")+"/", opts.RsyncTarget)
	if out, err := runCommand(ctx, "rsync", args...); err != nil {
		return fmt.Errorf("rsync failed: %w: %s", err, strings.TrimSpace(string(out)))
	}

	slog.Info("Rsync deployment complete")
	return nil
}
