/*
Copyright © 2019 the Icecore authors.
This file is part of Icecore.

Icecore is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

Icecore is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with Icecore.  If not, see <http://www.gnu.org/licenses/>.
*/

package icecore

import (
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/google/go-cloud/blob"
	"github.com/google/go-cloud/blob/fileblob"
	"github.com/google/go-cloud/blob/gcsblob"
	"github.com/google/go-cloud/blob/s3blob"
	"github.com/google/go-cloud/gcp"
)

// fetchURL downloads the resource at rawurl to a temporary file and
// returns its contents. The temporary file is removed before
// returning on every path, including errors. http and https URLs are
// fetched directly; gs, s3, and file URLs are read through the
// corresponding blob-storage bucket.
func fetchURL(ctx context.Context, rawurl string) ([]byte, error) {
	u, err := url.Parse(rawurl)
	if err != nil {
		return nil, fmt.Errorf("icecore: parsing URL %s: %v", rawurl, err)
	}
	dir, err := ioutil.TempDir("", "icecore")
	if err != nil {
		return nil, fmt.Errorf("icecore: creating temporary download directory: %v", err)
	}
	defer os.RemoveAll(dir)

	fname := filepath.Join(dir, "download")
	w, err := os.Create(fname)
	if err != nil {
		return nil, fmt.Errorf("icecore: creating temporary download file: %v", err)
	}
	switch u.Scheme {
	case "http", "https":
		err = downloadHTTP(rawurl, w)
	case "gs", "s3", "file":
		err = downloadBlob(ctx, u, w)
	default:
		err = fmt.Errorf("icecore: downloading %s: unsupported scheme %q", rawurl, u.Scheme)
	}
	if err != nil {
		w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("icecore: writing download of %s: %v", rawurl, err)
	}
	b, err := ioutil.ReadFile(fname)
	if err != nil {
		return nil, fmt.Errorf("icecore: reading download of %s: %v", rawurl, err)
	}
	return b, nil
}

// downloadHTTP copies the resource at rawurl into w.
func downloadHTTP(rawurl string, w io.Writer) error {
	resp, err := http.Get(rawurl)
	if err != nil {
		return fmt.Errorf("icecore: downloading %s: %v", rawurl, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("icecore: downloading %s: %s", rawurl, resp.Status)
	}
	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("icecore: downloading %s: %v", rawurl, err)
	}
	return nil
}

// downloadBlob copies the blob at u into w. For gs and s3 URLs the
// host names the bucket and the path names the key within it; for
// file URLs the directory is the bucket and the file name is the key,
// so both relative (file://dir/name) and absolute
// (file:///abs/dir/name) forms work.
func downloadBlob(ctx context.Context, u *url.URL, w io.Writer) error {
	bucketName := u.Scheme + "://" + u.Host
	key := strings.TrimPrefix(u.Path, "/")
	if u.Scheme == "file" {
		full := path.Join(u.Host, u.Path)
		bucketName = "file://" + path.Dir(full)
		key = path.Base(full)
	}
	bucket, err := OpenBucket(ctx, bucketName)
	if err != nil {
		return err
	}
	r, err := bucket.NewReader(ctx, key)
	if err != nil {
		return fmt.Errorf("icecore: downloading %s: %v", u.String(), err)
	}
	defer r.Close()
	if _, err := io.Copy(w, r); err != nil {
		return fmt.Errorf("icecore: downloading %s: %v", u.String(), err)
	}
	return nil
}

// OpenBucket returns the blob storage bucket specified by bucketName,
// where bucketName must be in the format 'provider://name' where
// provider is the name of the storage provider and name is the name
// of the bucket. The accepted storage providers are "file" for the
// local filesystem (e.g., for testing or mirrored archives), "gs" for
// Google Cloud Storage, and "s3" for AWS S3.
func OpenBucket(ctx context.Context, bucketName string) (*blob.Bucket, error) {
	u, err := url.Parse(bucketName)
	if err != nil {
		return nil, fmt.Errorf("icecore.OpenBucket: %v", err)
	}
	switch u.Scheme {
	case "file":
		return fileblob.NewBucket(path.Join(u.Hostname(), u.Path))
	case "gs":
		return gsBucket(ctx, u.Hostname())
	case "s3":
		return s3Bucket(ctx, u.Hostname())
	default:
		return nil, fmt.Errorf("icecore.OpenBucket: invalid provider %s", u.Scheme)
	}
}

func gsBucket(ctx context.Context, name string) (*blob.Bucket, error) {
	// See here for information on credentials:
	// https://cloud.google.com/docs/authentication/getting-started
	creds, err := gcp.DefaultCredentials(ctx)
	if err != nil {
		return nil, err
	}
	c, err := gcp.NewHTTPClient(gcp.DefaultTransport(), gcp.CredentialsTokenSource(creds))
	if err != nil {
		return nil, err
	}
	return gcsblob.OpenBucket(ctx, name, c)
}

// s3Bucket opens an s3 storage bucket. It assumes the following
// environment variables are set: AWS_REGION, AWS_ACCESS_KEY_ID, and
// AWS_SECRET_ACCESS_KEY.
func s3Bucket(ctx context.Context, name string) (*blob.Bucket, error) {
	region := os.ExpandEnv("AWS_REGION")
	if region == "" {
		region = "us-east-2"
	}
	c := &aws.Config{
		Region:      aws.String(region),
		Credentials: credentials.NewEnvCredentials(),
	}
	s := session.Must(session.NewSession(c))
	return s3blob.OpenBucket(ctx, s, name)
}
