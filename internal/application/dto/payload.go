package dto

import (
	"encoding/json"

	"github.com/JBB13/credit-risk-model/internal/domain/model"
)

// ScoreClientsPayload is the JSON body accepted by the REST, gRPC and Kafka
// transports. Record values may be JSON numbers or numeric strings.
type ScoreClientsPayload struct {
	RequestID  string           `json:"request_id,omitempty"`
	LGDPercent json.Number      `json:"lgd_percent,omitempty"`
	EAD        json.Number      `json:"ead,omitempty"`
	Currency   string           `json:"currency,omitempty"`
	Records    []map[string]any `json:"records"`
}

// ToRequest converts the payload to the use-case request.
func (p ScoreClientsPayload) ToRequest() ScoreClientsRequest {
	records := make([]model.ClientRecord, 0, len(p.Records))
	for _, values := range p.Records {
		records = append(records, model.ClientRecordFromValues(values))
	}
	return ScoreClientsRequest{
		LGDPercent: p.LGDPercent.String(),
		EAD:        p.EAD.String(),
		Currency:   p.Currency,
		Records:    records,
	}
}
