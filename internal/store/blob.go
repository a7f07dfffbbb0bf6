package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
	"github.com/pszt/botbench/internal/models"
)

// BlobStore keeps one summary blob per match in an Azure Storage container,
// using the same names as the file backend under an optional prefix.
type BlobStore struct {
	client    *azblob.Client
	container string
	prefix    string
}

// OpenBlobStore creates a BlobStore from a connection string (opts.DSN) or,
// when none is given, from opts.AccountURL and the default Azure credential
// chain.
func OpenBlobStore(opts Options) (*BlobStore, error) {
	if opts.Container == "" {
		return nil, fmt.Errorf("azblob store: container is required")
	}

	var client *azblob.Client
	var err error
	switch {
	case opts.DSN != "":
		client, err = azblob.NewClientFromConnectionString(opts.DSN, nil)
	case opts.AccountURL != "":
		cred, credErr := azidentity.NewDefaultAzureCredential(nil)
		if credErr != nil {
			return nil, fmt.Errorf("azblob store: loading Azure credential: %w", credErr)
		}
		client, err = azblob.NewClient(opts.AccountURL, cred, nil)
	default:
		return nil, fmt.Errorf("azblob store: a connection string or account URL is required")
	}
	if err != nil {
		return nil, fmt.Errorf("azblob store: creating client: %w", err)
	}

	return &BlobStore{client: client, container: opts.Container, prefix: blobPrefix(opts.Prefix)}, nil
}

func blobPrefix(p string) string {
	p = strings.Trim(p, "/")
	if p == "" {
		return ""
	}
	return p + "/"
}

// BlobName returns the blob a key is stored under.
func (b *BlobStore) BlobName(key models.MatchKey) string {
	return b.prefix + key.FileName()
}

func (b *BlobStore) Get(ctx context.Context, key models.MatchKey) (*models.MatchSummary, error) {
	resp, err := b.client.DownloadStream(ctx, b.container, b.BlobName(key), nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound, bloberror.ContainerNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("downloading %s: %w", b.BlobName(key), err)
	}
	defer resp.Body.Close() //nolint:errcheck

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", b.BlobName(key), err)
	}
	return decodeSummary(key, data)
}

func (b *BlobStore) Put(ctx context.Context, key models.MatchKey, summary *models.MatchSummary) error {
	data, err := summary.MarshalText()
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key.FileName(), err)
	}
	_, err = b.client.UploadBuffer(ctx, b.container, b.BlobName(key), data, &azblob.UploadBufferOptions{
		Metadata: map[string]*string{
			"white": to.Ptr(key.White.String()),
			"black": to.Ptr(key.Black.String()),
		},
	})
	if err != nil {
		return fmt.Errorf("uploading %s: %w", b.BlobName(key), err)
	}
	return nil
}

func (b *BlobStore) Has(ctx context.Context, key models.MatchKey) (bool, error) {
	_, err := b.Get(ctx, key)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	return false, err
}

func (b *BlobStore) Delete(ctx context.Context, key models.MatchKey) error {
	_, err := b.client.DeleteBlob(ctx, b.container, b.BlobName(key), nil)
	if err != nil && !bloberror.HasCode(err, bloberror.BlobNotFound, bloberror.ContainerNotFound) {
		return fmt.Errorf("deleting %s: %w", b.BlobName(key), err)
	}
	return nil
}

func (b *BlobStore) List(ctx context.Context) ([]models.MatchKey, error) {
	pager := b.client.NewListBlobsFlatPager(b.container, &azblob.ListBlobsFlatOptions{
		Prefix: to.Ptr(b.prefix),
	})

	var keys []models.MatchKey
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			if bloberror.HasCode(err, bloberror.ContainerNotFound) {
				return nil, nil
			}
			return nil, fmt.Errorf("listing blobs: %w", err)
		}
		for _, item := range page.Segment.BlobItems {
			if item.Name == nil {
				continue
			}
			name := strings.TrimPrefix(*item.Name, b.prefix)
			if strings.Contains(name, "/") {
				continue
			}
			key, err := models.ParseMatchKey(path.Base(name))
			if err != nil {
				continue
			}
			keys = append(keys, key)
		}
	}
	return sortKeys(keys), nil
}

func (b *BlobStore) Close() error { return nil }
