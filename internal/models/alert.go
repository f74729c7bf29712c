package models

import "time"

const AlertKindRisk = "risk.alert"

// RiskAlert is pushed to a user's realtime connections
type RiskAlert struct {
	Kind      string    `json:"kind"`
	RiskScore int       `json:"riskScore"`
	RiskLevel string    `json:"riskLevel"`
	Factors   []string  `json:"factors"`
	Date      time.Time `json:"date"`
}
