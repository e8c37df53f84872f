package domain

import "github.com/google/uuid"

// UserTaskSummary is a read-only projection of a user together with
// counts over their tasks: how many are still open (TODO or DOING) and
// how many exist in total. It is produced by the stats store in a
// single grouped query and never written back.
type UserTaskSummary struct {
	ID         uuid.UUID `json:"id"`
	Email      string    `json:"email"`
	Username   string    `json:"username"`
	IsActive   bool      `json:"is_active"`
	OpenTasks  int       `json:"open_tasks"`
	TotalTasks int       `json:"total_tasks"`
}
