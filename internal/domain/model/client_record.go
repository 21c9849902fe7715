package model

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// ClientRecord is one row of raw input values keyed by column name.
type ClientRecord map[string]string

// ClientRecordFromValues converts decoded JSON values into a ClientRecord.
// Values are kept textual so validation reports them as the caller sent them.
func ClientRecordFromValues(values map[string]any) ClientRecord {
	rec := make(ClientRecord, len(values))
	for k, v := range values {
		switch val := v.(type) {
		case nil:
			rec[k] = ""
		case string:
			rec[k] = val
		case float64:
			rec[k] = strconv.FormatFloat(val, 'f', -1, 64)
		case json.Number:
			rec[k] = val.String()
		case int:
			rec[k] = strconv.Itoa(val)
		case int64:
			rec[k] = strconv.FormatInt(val, 10)
		default:
			rec[k] = fmt.Sprint(val)
		}
	}
	return rec
}

// SampleRecord returns the simulated client scored when no input is supplied.
func SampleRecord() ClientRecord {
	return ClientRecord{
		FeatureRevolvingUtilization: "0.6",
		FeatureAge:                  "45",
		FeaturePastDue30To59:        "0",
		FeatureDebtRatio:            "0.3",
		FeatureMonthlyIncome:        "5000",
		FeatureOpenCreditLines:      "7",
		FeaturePastDue90Plus:        "0",
		FeatureRealEstateLoans:      "1",
		FeaturePastDue60To89:        "0",
		FeatureNumberOfDependents:   "2",
	}
}
