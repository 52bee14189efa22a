package exercise

import (
	"context"
)

// LogStore defines the persistence operations backing the tracker.
type LogStore interface {
	CreateUser(ctx context.Context, username string) (*UserLog, error)
	ListUsers(ctx context.Context) ([]UserSummary, error)
	AppendEntry(ctx context.Context, userID string, entry Entry) (*UserLog, error)
	GetUserLog(ctx context.Context, userID string) (*UserLog, error)
}

// LogService defines the business operations exposed to the API layer.
type LogService interface {
	CreateUser(ctx context.Context, req *CreateUserRequest) (*CreatedUser, error)
	ListUsers(ctx context.Context) ([]UserSummary, error)
	AddExercise(ctx context.Context, req *AddExerciseRequest) (*UserLog, error)
	FetchLog(ctx context.Context, q *LogQuery) (*LogResult, error)
}
