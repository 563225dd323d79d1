// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package upload

import (
	"context"
	"errors"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/mangotour/mtour-go/internal/fault"
)

// placeholderCreds are values shipped in sample configuration files.
// Credentials matching one of them count as not configured.
var placeholderCreds = map[string]struct{}{
	"your-cloud-name": {},
	"your-api-key":    {},
	"cloud name":      {},
	"changeme":        {},
}

// CloudinaryBackend uploads media to the Cloudinary CDN.
type CloudinaryBackend struct {
	cld       *cloudinary.Cloudinary
	cloudName string
	apiKey    string
}

// NewCloudinary builds the CDN backend. Missing or placeholder
// credentials yield a backend that reports itself as not configured
// rather than an error, so the chain can fall through to local storage.
func NewCloudinary(cloudName, apiKey, apiSecret string) (*CloudinaryBackend, error) {
	b := &CloudinaryBackend{cloudName: cloudName, apiKey: apiKey}
	if !b.Configured() {
		return b, nil
	}
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fault.Wrap(fault.KindConfigurationMissing, "invalid CDN credentials", err)
	}
	b.cld = cld
	return b, nil
}

func (b *CloudinaryBackend) Name() string { return "cloudinary" }

// Configured requires both credential fields to be present and not one
// of the sample placeholders.
func (b *CloudinaryBackend) Configured() bool {
	return realCredential(b.cloudName) && realCredential(b.apiKey)
}

func realCredential(v string) bool {
	if v == "" {
		return false
	}
	_, placeholder := placeholderCreds[strings.ToLower(v)]
	return !placeholder
}

func (b *CloudinaryBackend) Upload(ctx context.Context, folder string, f *File, progress ProgressFunc) (string, error) {
	if b.cld == nil {
		return "", fault.New(fault.KindConfigurationMissing, "CDN backend is not configured")
	}
	unique := true
	overwrite := false
	params := uploader.UploadParams{
		Folder:         folder,
		PublicID:       strings.TrimSuffix(f.Name, pathExt(f.Name)),
		UniqueFilename: &unique,
		Overwrite:      &overwrite,
	}

	result, err := b.cld.Upload.Upload(ctx, newProgressReader(f.Data, progress), params)
	if err != nil {
		return "", classifyCloudinary(err)
	}
	if result.Error.Message != "" {
		return "", classifyCloudinaryMessage(result.Error.Message)
	}
	if result.SecureURL == "" {
		return "", fault.New(fault.KindUnknown, "upload succeeded but no URL was returned")
	}
	return result.SecureURL, nil
}

func classifyCloudinary(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "api_key") || strings.Contains(msg, "invalid signature") ||
		strings.Contains(msg, "unauthorized") || strings.Contains(msg, "401"):
		return fault.Wrap(fault.KindAuthorizationDenied, "CDN rejected the credentials", err)
	case strings.Contains(msg, "file size too large") || strings.Contains(msg, "413"):
		return fault.Wrap(fault.KindQuotaOrSizeExceeded, "CDN rejected the file size", err)
	}
	return fault.FromTransport("CDN upload failed", err)
}

func classifyCloudinaryMessage(msg string) error {
	return classifyCloudinary(errors.New(msg))
}

func pathExt(name string) string {
	for i := len(name) - 1; i >= 0; i-- {
		switch name[i] {
		case '.':
			return name[i:]
		case '/', '\\':
			return ""
		}
	}
	return ""
}
