package content

import (
	"context"
	"fmt"
	"io"
	"math"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/RovaFananganana/frontend/pkg/models"
	"github.com/RovaFananganana/frontend/pkg/protocol"
)

// UploadFiles sends files as one multipart request to the upload endpoint.
// onProgress, if non-nil, receives the completion percentage in [0,100].
// The request body is streamed and not replayable, so uploads are never
// retried.
func (c *Client) UploadFiles(ctx context.Context, files []models.UploadFile, folderID int64, onProgress func(pct int)) (*protocol.UploadResult, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no files to upload")
	}

	var total int64
	for _, f := range files {
		total += f.Size
	}

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		pw.CloseWithError(writeUploadBody(mw, files, folderID, total, onProgress))
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/files/upload", pr)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	c.applyAuth(req)

	resp, err := c.uploadClient.Do(req)
	if err != nil {
		c.setOnline(false)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, c.errorFrom(resp)
	}

	c.setOnline(true)

	var result protocol.UploadResult
	if err := decodeEnvelope(resp.Body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// writeUploadBody writes every file part plus the folder_id field, reporting
// progress as file bytes are consumed.
func writeUploadBody(mw *multipart.Writer, files []models.UploadFile, folderID, total int64, onProgress func(pct int)) error {
	counter := &progressCounter{total: total, report: onProgress}

	for _, f := range files {
		part, err := mw.CreateFormFile("files", f.Name)
		if err != nil {
			return fmt.Errorf("create part %s: %w", f.Name, err)
		}
		if _, err := io.Copy(io.MultiWriter(part, counter), f.Content); err != nil {
			return fmt.Errorf("write part %s: %w", f.Name, err)
		}
	}

	if err := mw.WriteField("folder_id", strconv.FormatInt(folderID, 10)); err != nil {
		return fmt.Errorf("write folder_id: %w", err)
	}
	return mw.Close()
}

// progressCounter tracks bytes written and reports percentage changes.
type progressCounter struct {
	total   int64
	loaded  int64
	lastPct int
	report  func(pct int)
}

func (p *progressCounter) Write(b []byte) (int, error) {
	p.loaded += int64(len(b))
	if p.report == nil || p.total <= 0 {
		return len(b), nil
	}

	pct := int(math.Round(float64(p.loaded) * 100 / float64(p.total)))
	if pct > 100 {
		pct = 100
	}
	if pct != p.lastPct {
		p.lastPct = pct
		p.report(pct)
	}
	return len(b), nil
}
