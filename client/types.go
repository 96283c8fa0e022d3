package client

import "encoding/json"

// ------------------------------
// Response envelope
// ------------------------------

// Result is one entry of a multi-result response.
type Result struct {
	URL      string `json:"url"`
	Filename string `json:"filename,omitempty"`
	Size     int64  `json:"size,omitempty"`
}

// Response is the envelope returned by every RenderJet endpoint. Its shape
// is defined by the remote API: single-output operations fill `url`,
// multi-output operations fill `results`, and the tools endpoint returns
// an analysis document that is preserved verbatim in Raw.
type Response struct {
	Status  string   `json:"status,omitempty"`
	URL     string   `json:"url,omitempty"`
	Results []Result `json:"results,omitempty"`
	Error   string   `json:"error,omitempty"`

	// Raw holds the unparsed response body.
	Raw json.RawMessage `json:"-"`
}

// FirstURL returns the single URL worth downloading: `url` when present,
// otherwise the first non-empty `results[].url`. Only the first URL of a
// multi-result response is ever considered; that is a documented
// limitation, not an error. ErrNoDownloadURL is returned when no URL
// exists at all.
func (r *Response) FirstURL() (string, error) {
	if r.URL != "" {
		return r.URL, nil
	}
	for _, res := range r.Results {
		if res.URL != "" {
			return res.URL, nil
		}
	}
	return "", ErrNoDownloadURL
}
