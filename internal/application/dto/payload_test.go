package dto_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JBB13/credit-risk-model/internal/application/dto"
	"github.com/JBB13/credit-risk-model/internal/domain/model"
)

func TestScoreClientsPayload_ToRequest(t *testing.T) {
	body := `{"lgd_percent": "45", "ead": 12000.5, "currency": "GBP",
		"records": [{"age": 45, "DebtRatio": "0.3", "MonthlyIncome": 5000.25}]}`

	dec := json.NewDecoder(bytes.NewBufferString(body))
	dec.UseNumber()
	var p dto.ScoreClientsPayload
	require.NoError(t, dec.Decode(&p))

	req := p.ToRequest()
	assert.Equal(t, "45", req.LGDPercent)
	assert.Equal(t, "12000.5", req.EAD)
	assert.Equal(t, "GBP", req.Currency)
	assert.Equal(t, []model.ClientRecord{{
		"age":           "45",
		"DebtRatio":     "0.3",
		"MonthlyIncome": "5000.25",
	}}, req.Records)
}

func TestScoreClientsPayload_EmptyParameters(t *testing.T) {
	req := dto.ScoreClientsPayload{Records: []map[string]any{{}}}.ToRequest()

	assert.Empty(t, req.LGDPercent)
	assert.Empty(t, req.EAD)
	assert.Len(t, req.Records, 1)
}
