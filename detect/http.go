package detect

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/screenpom/screenpom/model"
)

// HTTPDetector runs object detection through a remote inference
// service. The service accepts a multipart-encoded frame under the
// "file" field and responds with a JSON detections array.
type HTTPDetector struct {
	url    string
	client *http.Client
}

// NewHTTPDetector creates a detector talking to the inference service
// at url. A nil client falls back to http.DefaultClient.
func NewHTTPDetector(url string, client *http.Client) *HTTPDetector {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPDetector{url: url, client: client}
}

type wireDetection struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
	Box        [4]int  `json:"box"`
}

// Detect sends the frame to the inference service and parses the
// detected boxes, preserving the service's ordering.
func (d *HTTPDetector) Detect(ctx context.Context, frame []byte) ([]Detection, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", "frame.png")
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, bytes.NewReader(frame)); err != nil {
		return nil, fmt.Errorf("copy frame data: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("inference failed with status: %d", resp.StatusCode)
	}

	var result struct {
		Detections []wireDetection `json:"detections"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	out := make([]Detection, 0, len(result.Detections))
	for _, w := range result.Detections {
		out = append(out, Detection{
			Label:       w.Label,
			Confidence:  w.Confidence,
			TopLeft:     model.Point{X: w.Box[0], Y: w.Box[1]},
			BottomRight: model.Point{X: w.Box[2], Y: w.Box[3]},
		})
	}
	return out, nil
}

// CheckHealth verifies that the inference service is reachable.
func (d *HTTPDetector) CheckHealth(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.url+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("inference service unhealthy: %d", resp.StatusCode)
	}
	return nil
}
