package offload

import (
	"encoding/json"
	"fmt"

	"github.com/golang/snappy"

	"github.com/spcflow/spcflow/internal/limits"
	"github.com/spcflow/spcflow/internal/models"
	"github.com/spcflow/spcflow/internal/outliers"
)

// Requests and replies cross the transport by value: both sides decode into
// fresh structures, so no ownership or mutation race is possible. Payloads
// are snappy-compressed JSON; offloaded subgroups are large by definition.

type requestKind string

const (
	kindLimits   requestKind = "limits"
	kindOutliers requestKind = "outliers"
)

type limitsRequest struct {
	Model string       `json:"model"`
	Input limits.Input `json:"input"`
}

type outliersRequest struct {
	Rule   string          `json:"rule"`
	Values []float64       `json:"values"`
	Bounds outliers.Bounds `json:"bounds"`
	Params outliers.Params `json:"params"`
}

type request struct {
	ID       string           `json:"id"`       // correlation id
	ReplyTo  string           `json:"reply_to"` // subject the reply goes to
	Kind     requestKind      `json:"kind"`
	Limits   *limitsRequest   `json:"limits,omitempty"`
	Outliers *outliersRequest `json:"outliers,omitempty"`
}

type response struct {
	ID     string               `json:"id"`
	Error  string               `json:"error,omitempty"`
	Limits *models.LimitResult  `json:"limits,omitempty"`
	Flags  []models.OutlierFlag `json:"flags,omitempty"`
}

func encode(v interface{}) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal offload message: %w", err)
	}
	return snappy.Encode(nil, raw), nil
}

func decode(data []byte, v interface{}) error {
	raw, err := snappy.Decode(nil, data)
	if err != nil {
		return fmt.Errorf("snappy decompress failed: %w", err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("failed to unmarshal offload message: %w", err)
	}
	return nil
}
