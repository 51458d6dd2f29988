package errors

import (
	"context"
	"errors"
	"os"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
)

// UUID format: xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx (36 characters)
var uuidRegex = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// third-party errors carrying the upstream status (llm, imaging)
type httpStatuser interface {
	HTTPStatus() int
}

// substring fallbacks for error types we cannot match structurally, checked in order
var keywordCategories = []struct {
	category  string
	keywords  []string
	sanitized string
}{
	{CategoryTimeout, []string{"timeout", "deadline"}, "request timed out"},
	{CategoryNotFound, []string{"not found", "no rows"}, "resource not found"},
	{CategoryDatabase, []string{"database", "sql", "postgres", "pgx", "redis"}, "database operation failed"},
	{CategoryNetwork, []string{"connection", "network", "dial"}, "connection error occurred"},
	{CategoryValidation, []string{"validation", "binding", "invalid", "required"}, "validation failed"},
	{CategoryAuth, []string{"unauthorized", "forbidden", "permission", "token"}, "permission denied"},
}

// analyzes an error and returns its category and sanitized message
func classifyError(err error) ErrorInfo {
	if err == nil {
		return ErrorInfo{CategoryUnknown, ""}
	}

	isProduction := os.Getenv("ENVIRONMENT") == "production"
	info := func(category, sanitized string) ErrorInfo {
		return ErrorInfo{category: category, sanitized: ternary(isProduction, sanitized, err.Error())}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return info(CategoryDatabase, "database operation failed")
	}

	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, redis.Nil) {
		return info(CategoryNotFound, "resource not found")
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return info(CategoryTimeout, "request timed out")
	}

	if errors.Is(err, context.Canceled) {
		return info(CategoryTimeout, "request canceled")
	}

	var upstream httpStatuser
	if errors.As(err, &upstream) {
		return info(CategoryUpstream, "external service error")
	}

	msg := strings.ToLower(err.Error())

	for _, kc := range keywordCategories {
		for _, kw := range kc.keywords {
			if strings.Contains(msg, kw) {
				return info(kc.category, kc.sanitized)
			}
		}
	}

	return info(CategoryUnknown, "an error occurred")
}

// ternary helper for cleaner conditional assignment
func ternary(condition bool, trueVal, falseVal string) string {
	if condition {
		return trueVal
	}

	return falseVal
}

// validates a UUID string format
func IsValidUUID(id string) bool {
	if id == "" {
		return false
	}

	return uuidRegex.MatchString(strings.ToLower(id))
}
