package entities

import "time"

// Insight categories
const (
	CategoryPreventive = "preventive"
	CategoryDiagnostic = "diagnostic"
	CategoryLifestyle  = "lifestyle"
	CategoryNutrition  = "nutrition"
	CategoryExercise   = "exercise"
	CategoryGeneral    = "general"
)

// AIInsight is an append-only log entry of one AI interaction.
type AIInsight struct {
	ID         string         `json:"id" bson:"_id"`
	UserID     string         `json:"userId" bson:"user_id"`
	Query      string         `json:"query" bson:"query"`
	AIResponse string         `json:"aiResponse" bson:"ai_response"`
	Category   string         `json:"category" bson:"category"`
	RiskScore  *int           `json:"riskScore,omitempty" bson:"risk_score,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty" bson:"metadata,omitempty"`
	CreatedAt  time.Time      `json:"createdAt" bson:"created_at"`
}

// ValidCategory reports whether c is a known insight category.
func ValidCategory(c string) bool {
	switch c {
	case CategoryPreventive, CategoryDiagnostic, CategoryLifestyle,
		CategoryNutrition, CategoryExercise, CategoryGeneral:
		return true
	}
	return false
}
