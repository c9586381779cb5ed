package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"tastebud/internal/domain/service"
	"tastebud/internal/errors"
)

const (
	uploadThingBaseURL = "https://uploadthing.com/api"
	uploadThingTimeout = 30 * time.Second
)

// uploadThingUploader talks to the hosted UploadThing service: request a
// presigned URL for the file, PUT the bytes there, return the public URL
// from the presign response.
type uploadThingUploader struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewUploadThingUploader builds the hosted-service uploader.
func NewUploadThingUploader(secret string) (service.Uploader, error) {
	if secret == "" {
		return nil, errors.New("upload.secret is required for the uploadthing driver")
	}

	return &uploadThingUploader{
		apiKey:  secret,
		baseURL: uploadThingBaseURL,
		client:  &http.Client{Timeout: uploadThingTimeout},
	}, nil
}

type presignRequest struct {
	Files []presignFile `json:"files"`
}

type presignFile struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type presignedTarget struct {
	URL     string `json:"url"`
	FileURL string `json:"fileUrl"`
}

type presignResponse struct {
	Data []presignedTarget `json:"data"`
}

// Upload performs the presign-then-PUT exchange.
func (u *uploadThingUploader) Upload(ctx context.Context, data []byte, fileName, contentType string) (string, error) {
	presigned, err := u.presign(ctx, fileName, contentType)
	if err != nil {
		return "", err
	}

	putReq, err := http.NewRequestWithContext(ctx, http.MethodPut, presigned.URL, bytes.NewReader(data))
	if err != nil {
		return "", errors.Wrap(err, "failed to build upload request")
	}
	putReq.Header.Set("Content-Type", contentType)

	putResp, err := u.client.Do(putReq)
	if err != nil {
		return "", errors.Wrap(err, "upload service connection error")
	}
	defer putResp.Body.Close()

	if putResp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(putResp.Body, 4096))

		return "", errors.Errorf("failed to upload file: status %d: %s", putResp.StatusCode, body)
	}

	return presigned.FileURL, nil
}

func (u *uploadThingUploader) presign(ctx context.Context, fileName, contentType string) (*presignedTarget, error) {
	payload, err := json.Marshal(presignRequest{
		Files: []presignFile{{Name: fileName, Type: contentType}},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode presign request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.baseURL+"/uploadFiles", bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(err, "failed to build presign request")
	}
	req.Header.Set("X-Upload-Key", u.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := u.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "upload service connection error")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

		return nil, errors.Errorf("failed to get upload URL: status %d: %s", resp.StatusCode, body)
	}

	var presigned presignResponse
	if err := json.NewDecoder(resp.Body).Decode(&presigned); err != nil {
		return nil, errors.Wrap(err, "invalid response from upload service")
	}
	if len(presigned.Data) == 0 || presigned.Data[0].URL == "" {
		return nil, errors.New("missing upload URL in presign response")
	}
	if presigned.Data[0].FileURL == "" {
		return nil, errors.New("missing file URL in presign response")
	}

	return &presigned.Data[0], nil
}
