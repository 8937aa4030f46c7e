// Package imagehost forwards locally staged files to the external image
// hosting service and returns durable public URLs.
package imagehost

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"minibook/config"
	"minibook/logger"
	"minibook/util/common"
)

// ErrUploadFailed wraps any transport or remote failure of the image host.
// Callers abort the enclosing operation when they see it.
var ErrUploadFailed = errors.New("image upload failed")

// Client talks to the image hosting API.
type Client struct {
	baseURL string
	apiKey  string
	folder  string

	httpClient *http.Client
}

// NewClient builds a client from the application configuration.
func NewClient() *Client {
	return NewClientWith(config.GetImageHostURL(), config.GetImageHostKey(), config.GetImageHostFolder())
}

// NewClientWith builds a client against an explicit endpoint. Used by tests.
func NewClientWith(baseURL, apiKey, folder string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		folder:     folder,
		httpClient: &http.Client{},
	}
}

type uploadResponse struct {
	URL string `json:"url"`
}

// Upload posts the staged file to the host under the configured folder and
// returns the public URL.
func (c *Client) Upload(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	defer file.Close()

	body := &strings.Builder{}
	writer := multipart.NewWriter(body)
	if err := writer.WriteField("key", c.apiKey); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	if err := writer.WriteField("folder", c.folder); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	part, err := writer.CreateFormFile("image", filepath.Base(filePath))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	req, err := http.NewRequest("POST", c.baseURL+"/upload", strings.NewReader(body.String()))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: host returned %s", ErrUploadFailed, resp.Status)
	}

	var parsed uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	if parsed.URL == "" {
		return "", fmt.Errorf("%w: host returned no url", ErrUploadFailed)
	}
	return parsed.URL, nil
}

// Remove asks the host to delete a previously uploaded image. Failures are
// logged by the caller and never abort anything.
func (c *Client) Remove(publicURL string) error {
	form := url.Values{}
	form.Set("key", c.apiKey)
	form.Set("url", publicURL)

	resp, err := c.httpClient.PostForm(c.baseURL+"/delete", form)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return common.NewErrorf("host returned %s", resp.Status)
	}
	logger.Debugf("removed hosted image %s", publicURL)
	return nil
}
