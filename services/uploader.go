package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gabriel-vasile/mimetype"
)

const MaxImageSize = 5 << 20

var allowedImageTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

// ImageUploader pushes images to Cloudinary with an unsigned upload preset.
type ImageUploader struct {
	endpoint string
	preset   string
	http     *http.Client
}

func NewImageUploader(cloudName, preset string) *ImageUploader {
	u := &ImageUploader{
		preset: preset,
		http:   &http.Client{Timeout: 60 * time.Second},
	}
	if cloudName != "" {
		u.endpoint = "https://api.cloudinary.com/v1_1/" + cloudName + "/image/upload"
	}
	return u
}

// WithEndpoint points the uploader somewhere else; used by tests.
func (u *ImageUploader) WithEndpoint(endpoint string) *ImageUploader {
	u.endpoint = endpoint
	return u
}

func (u *ImageUploader) Configured() bool {
	return u != nil && u.preset != "" && u.endpoint != ""
}

type cloudinaryResponse struct {
	SecureURL string `json:"secure_url"`
	Error     *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Upload checks size and content type, then uploads and returns the hosted URL.
func (u *ImageUploader) Upload(ctx context.Context, filename string, r io.Reader) (string, error) {
	if !u.Configured() {
		return "", fmt.Errorf("image uploads are not configured")
	}

	data, err := io.ReadAll(io.LimitReader(r, MaxImageSize+1))
	if err != nil {
		return "", fmt.Errorf("reading upload: %w", err)
	}
	if err := ValidateImage(data); err != nil {
		return "", err
	}

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(data); err != nil {
		return "", err
	}
	if err := w.WriteField("upload_preset", u.preset); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.endpoint, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := u.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("uploading image: %w", err)
	}
	defer resp.Body.Close()

	var out cloudinaryResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decoding upload response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		msg := "Image upload failed"
		if out.Error != nil && out.Error.Message != "" {
			msg = out.Error.Message
		}
		return "", &APIError{Status: resp.StatusCode, Message: msg}
	}
	if out.SecureURL == "" {
		return "", fmt.Errorf("upload response did not include a URL")
	}
	return out.SecureURL, nil
}

// ValidateImage rejects empty, oversized and non-image payloads.
func ValidateImage(data []byte) error {
	if len(data) == 0 {
		return invalid("image", "Please choose an image")
	}
	if len(data) > MaxImageSize {
		return invalid("image", "Image must be 5MB or smaller")
	}
	mt := mimetype.Detect(data)
	if !mimetype.EqualsAny(mt.String(), allowedImageTypes...) {
		return invalid("image", "Only JPEG, PNG, GIF or WebP images are allowed")
	}
	return nil
}
