// Package source opens listing inputs from the local filesystem or S3,
// transparently decompressing snappy framed (.sz) streams.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/golang/snappy"
)

const (
	s3Scheme     = "s3://"
	snappySuffix = ".sz"
)

// ErrInvalidURI is returned for empty or malformed source URIs.
var ErrInvalidURI = errors.New("invalid source URI")

// Location is a parsed source URI.
type Location struct {
	Bucket string // empty for local files
	Key    string // object key or local path
}

// IsS3 reports whether the location refers to an S3 object.
func (l Location) IsS3() bool {
	return l.Bucket != ""
}

// Compressed reports whether the location holds a snappy framed stream.
func (l Location) Compressed() bool {
	return strings.HasSuffix(l.Key, snappySuffix)
}

func (l Location) String() string {
	if l.IsS3() {
		return s3Scheme + l.Bucket + "/" + l.Key
	}
	return l.Key
}

// Parse splits a source URI into a Location.
func Parse(uri string) (Location, error) {
	if uri == "" {
		return Location{}, fmt.Errorf("%w: empty", ErrInvalidURI)
	}
	if !strings.HasPrefix(uri, s3Scheme) {
		return Location{Key: uri}, nil
	}

	bucket, key, ok := strings.Cut(strings.TrimPrefix(uri, s3Scheme), "/")
	if !ok || bucket == "" || key == "" {
		return Location{}, fmt.Errorf("%w: %q must be s3://bucket/key", ErrInvalidURI, uri)
	}
	return Location{Bucket: bucket, Key: key}, nil
}

// Opener opens source locations.
type Opener struct {
	objects ObjectGetter // nil disables S3
}

// NewOpener creates an opener. objects may be nil when only local files are
// used.
func NewOpener(objects ObjectGetter) *Opener {
	return &Opener{objects: objects}
}

// Open returns a reader over the decompressed contents of uri. The caller
// must close it.
func (o *Opener) Open(ctx context.Context, uri string) (io.ReadCloser, error) {
	loc, err := Parse(uri)
	if err != nil {
		return nil, err
	}

	var rc io.ReadCloser
	if loc.IsS3() {
		if o.objects == nil {
			return nil, fmt.Errorf("open %s: no S3 client configured", loc)
		}
		rc, err = o.objects.GetObject(ctx, loc.Bucket, loc.Key)
	} else {
		rc, err = os.Open(loc.Key)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", loc, err)
	}

	if loc.Compressed() {
		return &snappyReadCloser{Reader: snappy.NewReader(rc), closer: rc}, nil
	}
	return rc, nil
}

type snappyReadCloser struct {
	*snappy.Reader
	closer io.Closer
}

func (s *snappyReadCloser) Close() error {
	return s.closer.Close()
}
