package models

import "time"

const (
	MilestoneCategorySpeech   = "speech"
	MilestoneCategoryLanguage = "language"
	MilestoneCategorySocial   = "social"
	MilestoneCategoryMotor    = "motor"
)

type Milestone struct {
	ID          string     `json:"id" firestore:"-"`
	ChildID     string     `json:"child_id" firestore:"childId"`
	Title       string     `json:"title" firestore:"title"`
	Description string     `json:"description,omitempty" firestore:"description,omitempty"`
	Category    string     `json:"category" firestore:"category"`
	TargetDate  time.Time  `json:"target_date" firestore:"targetDate"`
	Achieved    bool       `json:"achieved" firestore:"achieved"`
	AchievedAt  *time.Time `json:"achieved_at,omitempty" firestore:"achievedAt,omitempty"`
	Notes       string     `json:"notes,omitempty" firestore:"notes,omitempty"`
	CreatedBy   string     `json:"created_by" firestore:"createdBy"`
	CreatedAt   time.Time  `json:"created_at" firestore:"createdAt"`
	UpdatedAt   time.Time  `json:"updated_at" firestore:"updatedAt"`
}
