package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/admin"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"

	"github.com/linesmerrill/rider-docs-api/config"
)

// Cloudinary stores blobs in a Cloudinary folder. Uploaded assets are public:
// the secure_url returned by the upload api is what gets recorded and shared.
type Cloudinary struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewCloudinary builds a blob store from the regular upload credentials
func NewCloudinary(conf config.Cloudinary) (*Cloudinary, error) {
	cld, err := cloudinary.NewFromParams(conf.CloudName, conf.APIKey, conf.APISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloudinary client: %w", err)
	}
	return &Cloudinary{cld: cld, folder: conf.Folder}, nil
}

// EnsureFolder creates the upload folder with the admin credentials. Those
// credentials are never kept around for regular reads and writes.
func EnsureFolder(ctx context.Context, conf config.Cloudinary) error {
	if conf.AdminAPIKey == "" || conf.AdminAPISecret == "" {
		zap.S().Infow("no cloudinary admin credentials, assuming upload folder exists", "folder", conf.Folder)
		return nil
	}
	cld, err := cloudinary.NewFromParams(conf.CloudName, conf.AdminAPIKey, conf.AdminAPISecret)
	if err != nil {
		return fmt.Errorf("failed to create cloudinary admin client: %w", err)
	}
	resp, err := cld.Admin.CreateFolder(ctx, admin.CreateFolderParams{Folder: conf.Folder})
	if err != nil {
		return fmt.Errorf("failed to create folder %s: %w", conf.Folder, err)
	}
	if resp.Error.Message != "" && !strings.Contains(strings.ToLower(resp.Error.Message), "already exists") {
		return fmt.Errorf("failed to create folder %s: %s", conf.Folder, resp.Error.Message)
	}
	zap.S().Infow("cloudinary upload folder ready", "folder", conf.Folder)
	return nil
}

// Put uploads body under key inside the configured folder
func (c *Cloudinary) Put(ctx context.Context, key, contentType string, body io.Reader) (Object, error) {
	resp, err := c.cld.Upload.Upload(ctx, body, uploader.UploadParams{
		PublicID:     key,
		Folder:       c.folder,
		ResourceType: resourceType(contentType),
	})
	if err != nil {
		return Object{}, err
	}
	if resp.Error.Message != "" {
		return Object{}, errors.New(resp.Error.Message)
	}
	return Object{Key: resp.PublicID, URL: resp.SecureURL, Bytes: int64(resp.Bytes)}, nil
}

// Delete removes a previously uploaded blob. key is the public id Put returned.
func (c *Cloudinary) Delete(ctx context.Context, key string) error {
	resp, err := c.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: key})
	if err != nil {
		return err
	}
	if resp.Error.Message != "" {
		return errors.New(resp.Error.Message)
	}
	return nil
}

// pdfs are delivered as images by cloudinary, everything else we accept is an image too
func resourceType(contentType string) string {
	if strings.HasPrefix(contentType, "image/") || contentType == "application/pdf" {
		return "image"
	}
	return "auto"
}
