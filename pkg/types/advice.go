package types

import "github.com/kisanmitra/kisanmitra/pkg/enums"

// AgricultureAdvice is a piece of guidance shown to a farmer.
type AgricultureAdvice struct {
	ID          string               `json:"id"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Category    enums.AdviceCategory `json:"category"`
	Urgency     enums.Urgency        `json:"urgency"`
	DateCreated string               `json:"dateCreated"`
}
