package lastfm

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Base represents the root XML response from Last.fm API.
type Base struct {
	XMLName xml.Name `xml:"lfm"`
	Status  string   `xml:"status,attr"`
	Inner   []byte   `xml:",innerxml"`
}

// APIError represents an error response from the Last.fm API.
type APIError struct {
	Code    int    `xml:"code,attr"`
	Message string `xml:",chardata"`
}

const (
	apiStatusOK     = "ok"
	apiStatusFailed = "failed"
)

// call makes a single HTTP request to the Last.fm API.
//
// It handles:
// - Request construction with proper headers
// - Signature calculation for signed requests
// - Response parsing (XML)
// - Context cancellation
//
// requiresAuth adds the session key (and implies signed); signed adds
// the api_sig parameter. The format parameter is never sent, so the
// response is always the XML envelope and the signature never has to
// exclude it.
//
// Exactly one round trip is made per call. This tool runs as a single
// manual invocation, so transport failures are fatal for the run and
// surfaced immediately rather than retried.
func (c *Client) call(ctx context.Context, method string, params map[string]string, requiresAuth, signed bool) ([]byte, error) {
	// Build request parameters
	reqParams := make(map[string]string)
	for k, v := range params {
		reqParams[k] = v
	}
	reqParams["method"] = method
	reqParams["api_key"] = c.apiKey

	if requiresAuth {
		if c.sessionKey == "" {
			return nil, ErrNoSessionKey
		}
		reqParams["sk"] = c.sessionKey
		signed = true
	}

	formData := url.Values{}
	for k, v := range reqParams {
		formData.Add(k, v)
	}
	if signed {
		formData.Add("api_sig", calculateSignature(reqParams, c.apiSecret))
	}

	c.logDebugf("lastfm: calling %s", method)

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL, strings.NewReader(formData.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", "offline-scrobbler/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request failed: %w", err)
	}

	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var base Base
	if err := xml.Unmarshal(body, &base); err != nil {
		return nil, fmt.Errorf("failed to parse XML response: %w", err)
	}

	if base.Status == apiStatusFailed {
		var apiErr APIError
		if err := xml.Unmarshal(base.Inner, &apiErr); err != nil {
			return nil, fmt.Errorf("failed to parse error response: %w", err)
		}
		return nil, &Error{
			Code:    apiErr.Code,
			Message: apiErr.Message,
		}
	}

	if base.Status != apiStatusOK {
		return nil, fmt.Errorf("unexpected response status %q", base.Status)
	}

	c.logDebugf("lastfm: %s succeeded", method)
	return base.Inner, nil
}
