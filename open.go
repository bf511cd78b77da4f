package heredity

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
)

// GoogleStoragePrefix marks a path as a Google Cloud Storage object.
const GoogleStoragePrefix = "gs://"

// Open returns a reader over the decompressed contents of path, which may
// be a local file or a gs://bucket/object URL. Compression is inferred from
// the extension.
func Open(ctx context.Context, path string) (io.ReadCloser, error) {
	var (
		raw     io.Reader
		closers []io.Closer
		err     error
	)

	if strings.HasPrefix(path, GoogleStoragePrefix) {
		raw, closers, err = openGoogleStorage(ctx, path)
	} else {
		var file *os.File
		file, err = os.Open(path)
		raw, closers = file, []io.Closer{file}
	}
	if err != nil {
		return nil, pfx.Err(err)
	}

	dec, err := decompress(raw, DetectCompression(path))
	if err != nil {
		closeAll(closers)
		return nil, pfx.Err(err)
	}

	return &readCloser{
		Reader:  dec,
		closers: append([]io.Closer{dec}, closers...),
	}, nil
}

func openGoogleStorage(ctx context.Context, path string) (io.Reader, []io.Closer, error) {
	bucket, object, err := splitGoogleStoragePath(path)
	if err != nil {
		return nil, nil, err
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, nil, err
	}

	r, err := client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		client.Close()
		return nil, nil, err
	}

	return r, []io.Closer{r, client}, nil
}

func splitGoogleStoragePath(path string) (bucket, object string, err error) {
	rest := strings.TrimPrefix(path, GoogleStoragePrefix)
	parts := strings.SplitN(rest, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("%q is not of the form %sbucket/object", path, GoogleStoragePrefix)
	}
	return parts[0], parts[1], nil
}

// readCloser closes the decompressor and then the layers beneath it.
type readCloser struct {
	io.Reader
	closers []io.Closer
}

func (r *readCloser) Close() error {
	return closeAll(r.closers)
}

func closeAll(closers []io.Closer) error {
	var first error
	for _, c := range closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
