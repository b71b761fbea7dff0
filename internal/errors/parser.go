package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo pairs an error code with a displayable message
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError converts a raw error into a code and a message safe to show.
// Driver and constraint details stay out of the response.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "Something went wrong",
		}
	}

	errStr := err.Error()
	errStrLower := strings.ToLower(errStr)

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: getNotFoundMessage(context),
		}
	}

	// Constraint violations from the database

	if strings.Contains(errStrLower, "duplicate key") || strings.Contains(errStrLower, "unique constraint") {
		return parseDuplicateKeyError(errStr)
	}

	if strings.Contains(errStrLower, "null value") && strings.Contains(errStrLower, "violates not-null constraint") {
		return ErrorInfo{
			Code:    ValidationRequired,
			Message: "A required field is missing",
		}
	}

	// Network errors from the price provider
	if strings.Contains(errStrLower, "connection refused") ||
		strings.Contains(errStrLower, "no such host") ||
		strings.Contains(errStrLower, "timeout") {
		return ErrorInfo{
			Code:    InternalExternalAPI,
			Message: "An external service is unreachable. Please try again shortly",
		}
	}

	return ErrorInfo{
		Code:    InternalServerError,
		Message: getDefaultErrorMessage(context),
	}
}

func parseDuplicateKeyError(errStr string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	if strings.Contains(errLower, "workshop_templates") || strings.Contains(errLower, "idx_workshop_templates_name") {
		return ErrorInfo{
			Code:    ResourceAlreadyExists,
			Message: "A workshop template with that name already exists",
		}
	}

	if strings.Contains(errLower, "reference") || strings.Contains(errLower, "idx_commission_quotes_reference") {
		return ErrorInfo{
			Code:    ResourceAlreadyExists,
			Message: "A quote with that reference already exists. Please retry",
		}
	}

	return ErrorInfo{
		Code:    ResourceAlreadyExists,
		Message: "That record already exists",
	}
}

func getNotFoundMessage(context string) string {
	contextLower := strings.ToLower(context)

	if strings.Contains(contextLower, "stone") {
		return "Stone not found"
	}
	if strings.Contains(contextLower, "quote") {
		return "Quote not found"
	}
	if strings.Contains(contextLower, "template") || strings.Contains(contextLower, "workshop") {
		return "Workshop template not found"
	}
	if strings.Contains(contextLower, "price") {
		return "No spot price available"
	}

	return "The requested record was not found"
}

func getDefaultErrorMessage(context string) string {
	contextLower := strings.ToLower(context)

	if strings.Contains(contextLower, "create") || strings.Contains(contextLower, "import") {
		return "Saving failed. Please try again shortly"
	}
	if strings.Contains(contextLower, "update") {
		return "Updating failed. Please try again shortly"
	}
	if strings.Contains(contextLower, "delete") {
		return "Deleting failed. Please try again shortly"
	}

	return "Something went wrong. Please try again shortly"
}
