// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package storage writes uploaded images to a directory served under
// /blogimages/.
package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
)

// PublicPrefix is the URL path images are served under
const PublicPrefix = "/blogimages/"

var (
	ErrUnsupportedFormat = errors.New("only jpg, jpeg, png, webp and gif images are allowed")
	ErrTooLarge          = errors.New("file too large")
)

var allowedExtensions = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"png":  true,
	"webp": true,
	"gif":  true,
}

// Disk stores images in Dir and links them from BaseURL
type Disk struct {
	Dir     string
	BaseURL string
	MaxSize int64
}

// Ensure creates the upload directory if it does not exist
func (d Disk) Ensure() error {
	if err := os.MkdirAll(d.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}
	return nil
}

// Save validates an uploaded image and writes it under a random name.
// It returns the public URL of the stored file.
func (d Disk) Save(fh *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(fh.Filename), "."))
	if !allowedExtensions[ext] {
		return "", ErrUnsupportedFormat
	}
	if d.MaxSize > 0 && fh.Size > d.MaxSize {
		return "", fmt.Errorf("%w: %s exceeds the %s limit", ErrTooLarge,
			humanize.Bytes(uint64(fh.Size)), humanize.Bytes(uint64(d.MaxSize)))
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	// Reject files whose content is not an image whatever their name says
	head := make([]byte, 512)
	n, err := io.ReadFull(src, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	if !strings.HasPrefix(http.DetectContentType(head[:n]), "image/") {
		return "", ErrUnsupportedFormat
	}

	name := uuid.NewString() + "." + ext
	dst, err := os.OpenFile(filepath.Join(d.Dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}

	if _, err := io.Copy(dst, io.MultiReader(bytes.NewReader(head[:n]), src)); err != nil {
		dst.Close()
		os.Remove(dst.Name())
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return strings.TrimRight(d.BaseURL, "/") + PublicPrefix + name, nil
}

// Remove deletes the file behind a URL returned by Save
func (d Disk) Remove(url string) error {
	i := strings.LastIndex(url, PublicPrefix)
	if i < 0 {
		return fmt.Errorf("not an upload URL: %s", url)
	}
	name := url[i+len(PublicPrefix):]
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("not an upload URL: %s", url)
	}

	if err := os.Remove(filepath.Join(d.Dir, name)); err != nil {
		return fmt.Errorf("failed to remove file: %w", err)
	}
	return nil
}
