package studio

import "matchframe/internal/match"

// Flags carries the optimization switches forwarded with a batch submission.
type Flags struct {
	BoostOdds           bool `json:"boostOdds"`
	SubtractDayForNight bool `json:"subtractDayForNight"`
}

// RenderResult is the backend's verdict for one render job. Filename, when
// present, is the authoritative output name and supersedes any client-side
// derivation.
type RenderResult struct {
	Status   string `json:"status"`
	Message  string `json:"message,omitempty"`
	Filename string `json:"filename,omitempty"`
}

// Succeeded reports whether the backend accepted and completed the job.
func (r RenderResult) Succeeded() bool { return r.Status == statusSuccess }

const statusSuccess = "success"

type submitRequest struct {
	Matches             []match.Intent `json:"matches"`
	BoostOdds           bool           `json:"boostOdds"`
	SubtractDayForNight bool           `json:"subtractDayForNight"`
}

type submitResponse struct {
	Status  string         `json:"status"`
	Message string         `json:"message,omitempty"`
	Results []match.Record `json:"results"`
}

type renderRequest struct {
	Match      match.Record `json:"match"`
	TemplateID string       `json:"templateId"`
}

type assetsResponse struct {
	Status  string   `json:"status"`
	Message string   `json:"message,omitempty"`
	Files   []string `json:"files"`
}

type deleteResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type fixturesResponse struct {
	Status   string          `json:"status"`
	Message  string          `json:"message,omitempty"`
	Fixtures []match.Fixture `json:"fixtures"`
}
