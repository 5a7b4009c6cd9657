// Package source opens graph files by location: local paths are memory
// mapped, "s3://bucket/key" locations are fetched from S3, and a ".sz"
// suffix on either selects snappy stream compression.
package source

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/golang/snappy"
	"golang.org/x/exp/mmap"

	"github.com/dd0wney/cluso-graphsim/pkg/logging"
)

const (
	s3Scheme         = "s3://"
	compressedSuffix = ".sz"
)

// S3API is the subset of the S3 client used here.
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Location is a parsed graph file location.
type Location struct {
	Bucket     string // empty for local files
	Key        string // object key, or the local path
	Compressed bool
}

// IsS3 reports whether the location names an S3 object.
func (l Location) IsS3() bool {
	return l.Bucket != ""
}

func (l Location) String() string {
	if l.IsS3() {
		return s3Scheme + l.Bucket + "/" + l.Key
	}
	return l.Key
}

// ParseLocation splits "s3://bucket/key" or a local path.
func ParseLocation(raw string) (Location, error) {
	loc := Location{Compressed: strings.HasSuffix(strings.ToLower(raw), compressedSuffix)}
	if !strings.HasPrefix(raw, s3Scheme) {
		if raw == "" {
			return Location{}, fmt.Errorf("empty location")
		}
		loc.Key = raw
		return loc, nil
	}

	bucket, key, ok := strings.Cut(strings.TrimPrefix(raw, s3Scheme), "/")
	if !ok || bucket == "" || key == "" {
		return Location{}, fmt.Errorf("invalid S3 location %q: want s3://bucket/key", raw)
	}
	loc.Bucket, loc.Key = bucket, key
	return loc, nil
}

// Options configures an Opener.
type Options struct {
	// S3 overrides the client built from the shared AWS configuration.
	S3      S3API
	Profile string
	Region  string
	Logger  logging.Logger
}

// Opener reads and writes graph files. The S3 client is created on first
// use of an S3 location.
type Opener struct {
	opts   Options
	logger logging.Logger

	mu     sync.Mutex
	client S3API
}

// NewOpener creates an Opener.
func NewOpener(opts Options) *Opener {
	return &Opener{
		opts:   opts,
		logger: logging.OrNop(opts.Logger).With(logging.Component("source")),
		client: opts.S3,
	}
}

// LoadAWSConfig loads the shared AWS configuration with optional profile
// and region overrides.
func LoadAWSConfig(ctx context.Context, profile, region string) (aws.Config, error) {
	var opts []func(*config.LoadOptions) error
	if profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("unable to load AWS config: %w", err)
	}
	return cfg, nil
}

func (o *Opener) s3Client(ctx context.Context) (S3API, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.client != nil {
		return o.client, nil
	}
	cfg, err := LoadAWSConfig(ctx, o.opts.Profile, o.opts.Region)
	if err != nil {
		return nil, err
	}
	o.client = s3.NewFromConfig(cfg)
	return o.client, nil
}

// Open returns a reader over the decompressed content of the location.
func (o *Opener) Open(ctx context.Context, raw string) (io.ReadCloser, error) {
	loc, err := ParseLocation(raw)
	if err != nil {
		return nil, err
	}

	var rc io.ReadCloser
	if loc.IsS3() {
		rc, err = o.openS3(ctx, loc)
	} else {
		rc, err = openMapped(loc.Key)
	}
	if err != nil {
		return nil, err
	}
	o.logger.Debug("opened graph source", logging.Path(loc.String()), logging.Bool("compressed", loc.Compressed))

	if loc.Compressed {
		return readCloser{Reader: snappy.NewReader(rc), Closer: rc}, nil
	}
	return rc, nil
}

// Create returns a writer to the location. Content is snappy compressed
// for ".sz" locations. S3 objects are uploaded when the writer is closed.
func (o *Opener) Create(ctx context.Context, raw string) (io.WriteCloser, error) {
	loc, err := ParseLocation(raw)
	if err != nil {
		return nil, err
	}

	var wc io.WriteCloser
	if loc.IsS3() {
		client, err := o.s3Client(ctx)
		if err != nil {
			return nil, err
		}
		wc = &s3Writer{ctx: ctx, client: client, loc: loc}
	} else {
		if dir := filepath.Dir(loc.Key); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create directory: %w", err)
			}
		}
		f, err := os.Create(loc.Key)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", loc.Key, err)
		}
		wc = f
	}

	if loc.Compressed {
		return &snappyWriter{Writer: snappy.NewBufferedWriter(wc), target: wc}, nil
	}
	return wc, nil
}

func (o *Opener) openS3(ctx context.Context, loc Location) (io.ReadCloser, error) {
	client, err := o.s3Client(ctx)
	if err != nil {
		return nil, err
	}
	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(loc.Bucket),
		Key:    aws.String(loc.Key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", loc, err)
	}
	return out.Body, nil
}

// openMapped memory-maps a local file.
func openMapped(path string) (io.ReadCloser, error) {
	r, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return readCloser{Reader: io.NewSectionReader(r, 0, int64(r.Len())), Closer: r}, nil
}

type readCloser struct {
	io.Reader
	io.Closer
}

type snappyWriter struct {
	*snappy.Writer
	target io.Closer
}

func (w *snappyWriter) Close() error {
	if err := w.Writer.Close(); err != nil {
		w.target.Close()
		return err
	}
	return w.target.Close()
}

// s3Writer buffers content and uploads it on Close.
type s3Writer struct {
	ctx    context.Context
	client S3API
	loc    Location
	buf    bytes.Buffer
}

func (w *s3Writer) Write(p []byte) (int, error) {
	return w.buf.Write(p)
}

func (w *s3Writer) Close() error {
	_, err := w.client.PutObject(w.ctx, &s3.PutObjectInput{
		Bucket: aws.String(w.loc.Bucket),
		Key:    aws.String(w.loc.Key),
		Body:   bytes.NewReader(w.buf.Bytes()),
	})
	if err != nil {
		return fmt.Errorf("failed to put %s: %w", w.loc, err)
	}
	return nil
}
