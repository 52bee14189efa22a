package exercise

import (
	"context"
	"time"
)

// LogServiceImpl implements the LogService interface: it owns the request
// validation order and the log filtering semantics, and delegates
// persistence to a LogStore.
type LogServiceImpl struct {
	store LogStore
	now   func() time.Time
}

// NewLogService creates a new log service instance.
func NewLogService(store LogStore) *LogServiceImpl {
	return &LogServiceImpl{store: store, now: time.Now}
}

// CreateUser persists a new user log and returns the canonical
// {username, id} shape. Username constraints (required, unique) are enforced
// at the persistence layer.
func (s *LogServiceImpl) CreateUser(ctx context.Context, req *CreateUserRequest) (*CreatedUser, error) {
	userLog, err := s.store.CreateUser(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	return &CreatedUser{Username: userLog.Username, ID: userLog.ID}, nil
}

// ListUsers returns the id/username/revision projection of every user log.
func (s *LogServiceImpl) ListUsers(ctx context.Context) ([]UserSummary, error) {
	return s.store.ListUsers(ctx)
}

// AddExercise validates the raw input in the documented order, then appends
// the entry and returns the full updated user log.
func (s *LogServiceImpl) AddExercise(ctx context.Context, req *AddExerciseRequest) (*UserLog, error) {
	if req.UserID == "" {
		return nil, NewMissingFieldError("userId")
	}
	if req.Description == "" {
		return nil, NewMissingFieldError("description")
	}
	if req.Duration == "" {
		return nil, NewMissingFieldError("duration")
	}

	duration, err := ParseWholeNumber(req.Duration)
	if err != nil {
		return nil, NewInvalidIntegerError("duration", req.Duration)
	}

	date, err := ParseEntryDate(req.Date, s.now)
	if err != nil {
		return nil, err
	}

	entry := Entry{
		Description: req.Description,
		Duration:    duration,
		Date:        date,
	}

	return s.store.AppendEntry(ctx, req.UserID, entry)
}

// FetchLog validates the query, looks up the user log, applies the range and
// limit filters, and shapes the entries for display. Count is the number of
// entries actually returned.
func (s *LogServiceImpl) FetchLog(ctx context.Context, q *LogQuery) (*LogResult, error) {
	if q.UserID == "" {
		return nil, NewMissingUserIDError()
	}

	var from, to time.Time
	hasFrom := q.From != ""
	hasTo := q.To != ""

	if hasFrom {
		parsed, err := ParseFilterDate(q.From)
		if err != nil {
			return nil, NewInvalidFromError(q.From)
		}
		from = parsed
	}
	if hasTo {
		parsed, err := ParseFilterDate(q.To)
		if err != nil {
			return nil, NewInvalidToError(q.To)
		}
		to = parsed
	}
	if hasFrom && hasTo && from.After(to) {
		return nil, NewRangeInvertedError(q.From, q.To)
	}

	limit := 0
	if q.Limit != "" {
		parsed, err := ParseWholeNumber(q.Limit)
		if err != nil || parsed < 1 {
			return nil, NewInvalidLimitError(q.Limit)
		}
		limit = parsed
	}

	userLog, err := s.store.GetUserLog(ctx, q.UserID)
	if err != nil {
		return nil, err
	}

	entries := filterEntries(userLog.Log, hasFrom, from, hasTo, to, limit)

	views := make([]LogEntryView, len(entries))
	for i, entry := range entries {
		views[i] = LogEntryView{
			Description: entry.Description,
			Duration:    entry.Duration,
			Date:        FormatDisplayDate(entry.Date),
		}
	}

	return &LogResult{
		ID:       userLog.ID,
		Username: userLog.Username,
		Count:    len(views),
		Log:      views,
	}, nil
}

// filterEntries applies the from/to bounds (whole-day inclusive) and the
// result-count cap while preserving entry order.
func filterEntries(entries []Entry, hasFrom bool, from time.Time, hasTo bool, to time.Time, limit int) []Entry {
	// entries on the "to" day count as in range regardless of time of day
	toExclusive := to.AddDate(0, 0, 1)

	out := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		if hasFrom && entry.Date.Before(from) {
			continue
		}
		if hasTo && !entry.Date.Before(toExclusive) {
			continue
		}
		out = append(out, entry)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
