package syncqueue

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// APIClient implements UploadAPI against the portal HTTP API. The token is
// the portal session token from the auth endpoint.
type APIClient struct {
	baseURL string
	token   string
	client  Doer
}

func NewAPIClient(baseURL, token string, client Doer) *APIClient {
	if client == nil {
		client = http.DefaultClient
	}
	return &APIClient{
		baseURL: baseURL,
		token:   token,
		client:  client,
	}
}

func (c *APIClient) PresignUpload(fileName, contentType string) (string, string, error) {
	body, err := json.Marshal(map[string]string{
		"fileName":    fileName,
		"contentType": contentType,
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to marshal presign request: %w", err)
	}

	var result struct {
		URL string `json:"url"`
		Key string `json:"key"`
	}
	err = c.postJSON(c.baseURL+"/api/uploads/presign", body, &result)
	if err != nil {
		return "", "", err
	}

	return result.URL, result.Key, nil
}

func (c *APIClient) Transfer(url string, data []byte, contentType string) error {
	req, err := http.NewRequest(http.MethodPut, url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to build transfer request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("transfer request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("transfer rejected with status %d", resp.StatusCode)
	}
	return nil
}

func (c *APIClient) Submit(upload PendingUpload, storageKey string) error {
	body, err := json.Marshal(map[string]any{
		"fileName":  upload.FileName,
		"bytes":     len(upload.Data),
		"fileKey":   storageKey,
		"purpose":   upload.Purpose,
		"requestId": upload.RequestID,
		"itemKey":   upload.ItemKey,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal submit request: %w", err)
	}

	url := fmt.Sprintf("%s/portal/%s/submit", c.baseURL, upload.PortalID)
	return c.postJSON(url, body, nil)
}

func (c *APIClient) postJSON(url string, body []byte, out any) error {
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("request to %s rejected with status %d: %s", url, resp.StatusCode, data)
	}

	if out != nil {
		err = json.NewDecoder(resp.Body).Decode(out)
		if err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
