package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/devbush/swiftconvert/internal/domain"
	"github.com/devbush/swiftconvert/internal/ports"
)

// Converter uploads files to the conversion endpoint
type Converter struct {
	client *Client
}

// NewConverter creates a converter using client
func NewConverter(client *Client) *Converter {
	return &Converter{client: client}
}

type convertResponse struct {
	Results []domain.ConversionResult `json:"results"`
}

// Convert sends file as multipart form data. The body is streamed so
// progress reflects bytes actually handed to the transport.
func (c *Converter) Convert(ctx context.Context, file domain.SelectedFile, params ports.ConvertParams, progress func(sent, total int64)) (*ports.ConvertResponse, error) {
	src, err := file.Open()
	if err != nil {
		return nil, &domain.SubmitError{Kind: domain.KindRequest, Err: fmt.Errorf("open %s: %w", file.Name, err)}
	}
	defer src.Close()

	prefix, suffix, contentType, err := multipartFrame(file.Name, params)
	if err != nil {
		return nil, &domain.SubmitError{Kind: domain.KindRequest, Err: err}
	}

	total := int64(len(prefix)) + file.Size + int64(len(suffix))
	body := &progressReader{
		r:        io.MultiReader(bytes.NewReader(prefix), src, bytes.NewReader(suffix)),
		total:    total,
		progress: progress,
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.client.baseURL+convertPath, body)
	if err != nil {
		return nil, &domain.SubmitError{Kind: domain.KindRequest, Err: err}
	}
	req.ContentLength = total
	req.Header.Set("Content-Type", contentType)

	log.Debug().
		Str("file", file.Name).
		Int64("bytes", total).
		Str("format", string(params.TargetFormat)).
		Int("quality", params.Quality).
		Msg("conversion request")

	start := time.Now()
	resp, err := c.client.uploadClient.Do(req)
	if err != nil {
		return nil, &domain.SubmitError{Kind: domain.KindNoResponse, Err: err}
	}
	defer resp.Body.Close()

	log.Debug().Int("statusCode", resp.StatusCode).Dur("duration", time.Since(start)).Msg("conversion response")

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.SubmitError{Kind: domain.KindNoResponse, Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.SubmitError{
			Kind:       domain.KindServerResponse,
			StatusCode: resp.StatusCode,
			Body:       truncate(string(data), 500),
		}
	}

	var parsed convertResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, &domain.SubmitError{
			Kind:       domain.KindServerResponse,
			StatusCode: resp.StatusCode,
			Body:       truncate(string(data), 500),
			Err:        fmt.Errorf("parse response: %w", err),
		}
	}

	return &ports.ConvertResponse{
		Results:      parsed.Results,
		ServerTiming: ParseServerTiming(resp.Header.Get("Server-Timing")),
	}, nil
}

// multipartFrame renders everything around the file bytes: the form fields
// and file part header, then the closing boundary.
func multipartFrame(fileName string, params ports.ConvertParams) (prefix, suffix []byte, contentType string, err error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("convertToFormat", string(params.TargetFormat)); err != nil {
		return nil, nil, "", err
	}
	if err := w.WriteField("imageQuality", strconv.Itoa(params.Quality)); err != nil {
		return nil, nil, "", err
	}
	if _, err := w.CreateFormFile("file", fileName); err != nil {
		return nil, nil, "", err
	}

	prefix = append([]byte(nil), buf.Bytes()...)
	buf.Reset()

	if err := w.Close(); err != nil {
		return nil, nil, "", err
	}
	return prefix, append([]byte(nil), buf.Bytes()...), w.FormDataContentType(), nil
}

// progressReader reports cumulative bytes read
type progressReader struct {
	r        io.Reader
	total    int64
	progress func(sent, total int64)

	mu   sync.Mutex
	sent int64
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 && p.progress != nil {
		p.mu.Lock()
		p.sent += int64(n)
		sent := p.sent
		p.mu.Unlock()
		p.progress(sent, p.total)
	}
	return n, err
}

// ParseServerTiming extracts the total duration from a Server-Timing
// header such as `db;dur=53, total;dur=1234.5`. Missing or malformed
// values yield zero.
func ParseServerTiming(header string) time.Duration {
	for _, metric := range strings.Split(header, ",") {
		parts := strings.Split(strings.TrimSpace(metric), ";")
		if len(parts) == 0 || strings.TrimSpace(parts[0]) != "total" {
			continue
		}
		for _, param := range parts[1:] {
			key, value, ok := strings.Cut(strings.TrimSpace(param), "=")
			if !ok || strings.TrimSpace(key) != "dur" {
				continue
			}
			ms, err := strconv.ParseFloat(strings.Trim(strings.TrimSpace(value), `"`), 64)
			if err != nil || ms < 0 {
				return 0
			}
			return time.Duration(ms * float64(time.Millisecond))
		}
	}
	return 0
}

var _ ports.Converter = (*Converter)(nil)
