package archive

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type fakePutter struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = in
	if in.Body != nil {
		f.body, _ = io.ReadAll(in.Body)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestArchiveUploadsUnderUserPrefix(t *testing.T) {
	path := filepath.Join(t.TempDir(), "health-report-u-1-42.csv")
	if err := os.WriteFile(path, []byte("Date\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	putter := &fakePutter{}
	a := NewS3ArchiverWithClient(putter, "reports-bucket")

	if err := a.Archive(context.Background(), "u-1", path, "text/csv"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if aws.ToString(putter.input.Bucket) != "reports-bucket" {
		t.Fatalf("unexpected bucket %q", aws.ToString(putter.input.Bucket))
	}
	if got := aws.ToString(putter.input.Key); got != "reports/u-1/health-report-u-1-42.csv" {
		t.Fatalf("unexpected key %q", got)
	}
	if aws.ToString(putter.input.ContentType) != "text/csv" || string(putter.body) != "Date\n" {
		t.Fatalf("unexpected upload: %+v %q", putter.input, putter.body)
	}
}

func TestArchiveReportsErrors(t *testing.T) {
	a := NewS3ArchiverWithClient(&fakePutter{err: errors.New("denied")}, "b")
	if err := a.Archive(context.Background(), "u-1", filepath.Join(t.TempDir(), "missing.pdf"), "application/pdf"); err == nil {
		t.Fatal("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "health-report-u-1-1.pdf")
	if err := os.WriteFile(path, []byte("%PDF"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := a.Archive(context.Background(), "u-1", path, "application/pdf"); err == nil {
		t.Fatal("expected upload error")
	}
}
