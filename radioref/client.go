// Package radioref fetches nearby repeater listings from the Radio Reference
// HTTP API. A client is only constructed when an API key is configured; a
// nil *Client is the permanently-offline mode and callers fall back to cache
// and seeds without ever probing the network.
package radioref

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"towerwitch/dataset"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	DefaultBaseURL = "https://api.radioreference.com/v2"
	DefaultTimeout = 8 * time.Second

	onlineCheckTimeout = 5 * time.Second
	maxBodyBytes       = 8 << 20
)

// Client talks to the repeater listing API.
type Client struct {
	baseURL string
	apiKey  string
	timeout time.Duration
	httpc   *http.Client
}

// NewClient builds a client, or returns nil when no API key is configured.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		timeout: timeout,
		httpc:   &http.Client{Timeout: timeout},
	}
}

// apiRepeater tolerates both field spellings the API has used over time.
type apiRepeater struct {
	Call       string  `json:"call"`
	CallSign   string  `json:"call_sign"`
	Callsign   string  `json:"callsign"`
	Frequency  float64 `json:"frequency"`
	OutputFreq float64 `json:"output_freq"`
	InputFreq  float64 `json:"input_freq"`
	Tone       string  `json:"tone"`
	PLTone     string  `json:"pl_tone"`
	Location   string  `json:"location"`
	Descr      string  `json:"description"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
}

func (a apiRepeater) toRepeater() dataset.Repeater {
	call := a.Call
	if call == "" {
		call = a.CallSign
	}
	if call == "" {
		call = a.Callsign
	}
	loc := a.Location
	if loc == "" {
		loc = a.Descr
	}
	tone := a.Tone
	if tone == "" {
		tone = a.PLTone
	}
	return dataset.Repeater{
		Call:      call,
		Location:  loc,
		Frequency: a.Frequency,
		Output:    a.OutputFreq,
		Input:     a.InputFreq,
		Tone:      tone,
		Lat:       a.Lat,
		Lon:       a.Lon,
	}
}

// Repeaters fetches all repeaters within radiusMiles of a position. Any
// transport error, non-2xx status, or undecodable body is returned as an
// error for the caller to translate into a cache fallback.
func (c *Client) Repeaters(ctx context.Context, lat, lon float64, radiusMiles int) ([]dataset.Repeater, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', 4, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', 4, 64))
	q.Set("radius", strconv.Itoa(radiusMiles))
	q.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/repeaters?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("radioref: build request: %w", err)
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("radioref: fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("radioref: unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("radioref: read body: %w", err)
	}

	var raw []apiRepeater
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("radioref: decode: %w", err)
	}

	out := make([]dataset.Repeater, 0, len(raw))
	for _, r := range raw {
		rep := r.toRepeater()
		if rep.Call == "" || (rep.Lat == 0 && rep.Lon == 0) {
			continue
		}
		out = append(out, rep)
	}
	return out, nil
}

// Online checks the API with a HEAD request. It never returns an error; any
// failure simply reads as offline.
func (c *Client) Online(ctx context.Context) bool {
	if c == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, onlineCheckTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.baseURL+"/repeaters", nil)
	if err != nil {
		return false
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode < 500
}
