package emfield

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
)

// Writer is the external-writer handoff §4.9/§6 calls for: the engine
// itself stays pure and format-agnostic, and a collaborator outside
// this package is responsible for turning a Result into GeoTIFF or
// Parquet bytes. Compute/Result never call an implementation directly;
// WriteTo below calls Serialize and moves the resulting bytes to a
// destination.
type Writer interface {
	// Serialize renders r into one or more named byte blobs (e.g.
	// "<band>.tif", "<band>.parquet") ready to hand to WriteTo.
	Serialize(r *Result) (map[string][]byte, error)
}

// WriteTo serializes r with w and writes the resulting blobs under
// destURL, which may be a local directory path or any gocloud.dev
// bucket URL (e.g. "s3://bucket/prefix"); OpenBucket resolves the
// scheme. This mirrors the cloud package's readBlob/writeBlob
// handoff, narrowed to a single bucket-agnostic write path instead of
// a Kubernetes job's full result-fetch lifecycle.
func WriteTo(ctx context.Context, w Writer, r *Result, destURL string) error {
	blobs, err := w.Serialize(r)
	if err != nil {
		return fmt.Errorf("emfield: serializing result: %w", err)
	}

	bucket, err := OpenBucket(ctx, destURL)
	if err != nil {
		return err
	}
	defer bucket.Close()

	for key, data := range blobs {
		if err := writeBlob(ctx, bucket, key, data); err != nil {
			return err
		}
	}
	return nil
}

// OpenBucket opens destURL as a gocloud.dev bucket. A bare filesystem
// path (no "scheme://" prefix) is treated as a local directory and
// adapted via fileblob, so callers needn't special-case local output.
func OpenBucket(ctx context.Context, destURL string) (*blob.Bucket, error) {
	if !hasScheme(destURL) {
		abs, err := filepath.Abs(destURL)
		if err != nil {
			return nil, fmt.Errorf("emfield: resolving output directory %s: %w", destURL, err)
		}
		if err := os.MkdirAll(abs, 0o755); err != nil {
			return nil, fmt.Errorf("emfield: creating output directory %s: %w", abs, err)
		}
		destURL = "file://" + abs
	}
	bucket, err := blob.OpenBucket(ctx, destURL)
	if err != nil {
		return nil, fmt.Errorf("emfield: opening output bucket %s: %w", destURL, err)
	}
	return bucket, nil
}

func hasScheme(s string) bool {
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z':
			continue
		case r == ':':
			return i > 0 && i+2 <= len(s) && s[i+1] == '/' && s[i+2] == '/'
		default:
			return false
		}
	}
	return false
}

// writeBlob writes data to bucket under key, the same read-fully-
// then-copy pattern cloud/blob.go's writeBlob uses.
func writeBlob(ctx context.Context, bucket *blob.Bucket, key string, data []byte) error {
	w, err := bucket.NewWriter(ctx, key, nil)
	if err != nil {
		return fmt.Errorf("emfield: creating writer for blob %s: %w", key, err)
	}
	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("emfield: writing blob %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("emfield: closing blob %s: %w", key, err)
	}
	return nil
}
