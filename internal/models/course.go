package models

import "time"

type CourseType string

const (
	CourseOnline  CourseType = "Online"
	CourseOffline CourseType = "Offline"
)

// Categories is the closed suggestion list offered by clients. Category
// itself stays free text; this list is advisory only.
var Categories = []string{
	"AI Agents",
	"Machine Learning",
	"Programming",
	"Data Analysis",
	"Soft Skills",
	"Methodology",
}

type Course struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Link        string     `json:"link"`
	Type        CourseType `json:"type"`
	Category    string     `json:"category"`

	// RecommendedBy holds the recommending user's ID. It is a weak
	// reference: deleting that user does not cascade here.
	RecommendedBy string `json:"recommendedBy"`

	CreatedAt time.Time `json:"createdAt"`
	Tags      []string  `json:"tags"`
}
