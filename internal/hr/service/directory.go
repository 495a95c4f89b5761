package service

import (
	"context"
	"strings"
	"unicode"

	"github.com/hrdesk/hrdesk-backend/internal/hr/repository"
	"github.com/hrdesk/hrdesk-backend/pkg/activity"
	"github.com/hrdesk/hrdesk-backend/pkg/errors"
	"github.com/hrdesk/hrdesk-backend/pkg/logger"
)

const (
	defaultSearchLimit = 10
	maxSearchLimit     = 50
)

// searchFields is the projection whitelist for directory search results
var searchFields = map[string]func(*repository.Employee) any{
	"id":         func(e *repository.Employee) any { return e.ID },
	"name":       func(e *repository.Employee) any { return e.Name },
	"email":      func(e *repository.Employee) any { return e.Email },
	"phone":      func(e *repository.Employee) any { return e.Phone },
	"position":   func(e *repository.Employee) any { return e.Position },
	"team":       func(e *repository.Employee) any { return e.TeamName },
	"manager":    func(e *repository.Employee) any { return e.ManagerName },
	"hired_at":   func(e *repository.Employee) any { return e.HiredAt },
	"birth_date": func(e *repository.Employee) any { return e.BirthDate },
}

// defaultProjection is returned when the caller asks for no fields
var defaultProjection = []string{"id", "name", "position", "team"}

// DirectoryService answers employee directory searches
type DirectoryService struct {
	employees *repository.EmployeeRepository
	intents   *activity.Log
	logger    *logger.Logger
}

// NewDirectoryService creates a new directory service
func NewDirectoryService(employees *repository.EmployeeRepository, intents *activity.Log, log *logger.Logger) *DirectoryService {
	return &DirectoryService{
		employees: employees,
		intents:   intents,
		logger:    log,
	}
}

// SearchEmployees finds employees by free-text query. Letter tokens must
// all match the name; a digit token matches the id exactly or the phone
// as a substring. A bare single name narrows the search to the actor's
// own team, where a colleague of that name most likely is.
func (s *DirectoryService) SearchEmployees(ctx context.Context, actorID int64, query string, fields []string, limit int) ([]map[string]any, error) {
	words, digits := splitQuery(query)
	if len(words) == 0 && digits == "" {
		return nil, errors.MissingFields("query")
	}

	projection, err := resolveProjection(fields)
	if err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	params := repository.EmployeeSearchParams{
		Words:  words,
		Digits: digits,
		Limit:  limit,
	}

	if len(words) == 1 && digits == "" {
		teamID, err := s.employees.TeamID(ctx, actorID)
		if err != nil {
			return nil, err
		}
		params.TeamID = teamID
	}

	found, err := s.employees.Search(ctx, params)
	if err != nil {
		return nil, err
	}

	// A single name that finds nobody on the actor's team falls back to
	// the whole directory.
	if len(found) == 0 && params.TeamID != nil {
		params.TeamID = nil
		found, err = s.employees.Search(ctx, params)
		if err != nil {
			return nil, err
		}
	}

	results := make([]map[string]any, 0, len(found))
	for _, emp := range found {
		row := make(map[string]any, len(projection))
		for _, field := range projection {
			row[field] = searchFields[field](emp)
		}
		results = append(results, row)
	}

	s.intents.Record(actorID, "employee.search", query)

	return results, nil
}

// resolveProjection validates requested fields against the whitelist
func resolveProjection(fields []string) ([]string, error) {
	if len(fields) == 0 {
		return defaultProjection, nil
	}

	projection := make([]string, 0, len(fields))
	for _, field := range fields {
		name := strings.ToLower(strings.TrimSpace(field))
		if _, ok := searchFields[name]; !ok {
			return nil, errors.Validation(map[string]string{
				"fields": "unknown field: " + field,
			})
		}
		projection = append(projection, name)
	}
	return projection, nil
}

// splitQuery separates a query into name words and one digit token
func splitQuery(query string) (words []string, digits string) {
	for _, token := range strings.Fields(query) {
		if isDigits(token) {
			if digits == "" {
				digits = token
			}
			continue
		}
		words = append(words, token)
	}
	return words, digits
}

func isDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return len(s) > 0
}
