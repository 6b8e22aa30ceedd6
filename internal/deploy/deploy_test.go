package deploy

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type call struct {
	name string
	args []string
}

// captureCommands replaces the command runner with a recorder for the test.
func captureCommands(t *testing.T, fail bool) *[]call {
	t.Helper()

	var calls []call
	original := runCommand
	runCommand = func(_ context.Context, name string, args ...string) ([]byte, error) {
		calls = append(calls, call{name: name, args: args})
		if fail {
			return []byte("boom"), errors.New("exit status 1")
		}
		return nil, nil
	}
	t.Cleanup(func() { runCommand = original })
	return &calls
}

func TestDeployNoneRunsNothing(t *testing.T) {
	calls := captureCommands(t, false)

	if err := Deploy(context.Background(), "dist", Options{Method: "none"}); err != nil {
		t.Fatalf("Deploy() error = %v", err)
	}
	if len(*calls) != 0 {
		t.Errorf("Deploy() ran %d commands, want 0", len(*calls))
	}
}

func TestDeployUnknownMethod(t *testing.T) {
	captureCommands(t, false)

	if err := Deploy(context.Background(), "dist", Options{Method: "ftp"}); err == nil {
		t.Fatal("Deploy() error = nil, want unknown-method failure")
	}
}

func TestDeployS3(t *testing.T) {
	calls := captureCommands(t, false)

	opts := Options{
		Method:                   "s3",
		S3Bucket:                 "my-bucket",
		S3Region:                 "eu-north-1",
		CloudFrontDistributionID: "E123",
	}
	if err := Deploy(context.Background(), "dist", opts); err != nil {
		t.Fatalf("Deploy() error = %v", err)
	}

	if len(*calls) != 2 {
		t.Fatalf("Deploy() ran %d commands, want 2", len(*calls))
	}

	sync := (*calls)[0]
	if sync.name != "aws" {
		t.Errorf("first command = %q, want aws", sync.name)
	}
	got := strings.Join(sync.args, " ")
	want := "s3 sync dist s3://my-bucket --delete --region eu-north-1"
	if got != want {
		t.Errorf("s3 sync args = %q, want %q", got, want)
	}

	invalidate := (*calls)[1]
	got = strings.Join(invalidate.args, " ")
	want = "cloudfront create-invalidation --distribution-id E123 --paths /*"
	if invalidate.name != "aws" || got != want {
		t.Errorf("invalidation = %s %q, want aws %q", invalidate.name, got, want)
	}
}

func TestDeployS3SkipsInvalidationWithoutDistribution(t *testing.T) {
	calls := captureCommands(t, false)

	if err := Deploy(context.Background(), "dist", Options{Method: "s3", S3Bucket: "b"}); err != nil {
		t.Fatalf("Deploy() error = %v", err)
	}
	if len(*calls) != 1 {
		t.Errorf("Deploy() ran %d commands, want 1", len(*calls))
	}
}

func TestDeployRsync(t *testing.T) {
	calls := captureCommands(t, false)

	opts := Options{
		Method:      "rsync",
		RsyncTarget: "host:/srv/www",
		RsyncFlags:  "-avz --delete",
	}
	if err := Deploy(context.Background(), "dist", opts); err != nil {
		t.Fatalf("Deploy() error = %v", err)
	}

	if len(*calls) != 1 {
		t.Fatalf("Deploy() ran %d commands, want 1", len(*calls))
	}
	c := (*calls)[0]
	got := strings.Join(c.args, " ")
	want := "-avz --delete dist/ host:/srv/www"
	if c.name != "rsync" || got != want {
		t.Errorf("rsync call = %s %q, want rsync %q", c.name, got, want)
	}
}

func TestDeployReportsCommandFailure(t *testing.T) {
	captureCommands(t, true)

	err := Deploy(context.Background(), "dist", Options{Method: "s3", S3Bucket: "b"})
	if err == nil {
		t.Fatal("Deploy() error = nil, want failure")
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Errorf("Deploy() error %q does not include command output", err)
	}
}
