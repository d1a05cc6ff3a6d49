package models

// HealthResponse represents health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// UpdateResponse represents the result of one update cycle
type UpdateResponse struct {
	Chart   string        `json:"chart"`
	State   string        `json:"state"`
	Records []ViewRecord  `json:"records"`
	Limits  *LimitResult  `json:"limits,omitempty"`
	Flags   *OutlierFlags `json:"outlier_flags,omitempty"`

	// Change-detection outcome for this cycle
	DataChanged     bool     `json:"data_changed"`
	ResizeOnly      bool     `json:"resize_only"`
	LimitsComputed  bool     `json:"limits_computed"`
	OutliersScanned bool     `json:"outliers_scanned"`
	RenderStages    []string `json:"render_stages"`

	Warning string `json:"warning,omitempty"`
}

// ViewResponse represents the retained view of a chart
type ViewResponse struct {
	Chart   string       `json:"chart"`
	Records []ViewRecord `json:"records"`
}

// ChartListResponse represents the set of registered charts
type ChartListResponse struct {
	Charts []string `json:"charts"`
}

// ErrorResponse represents error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Path    string `json:"path,omitempty"`
}
