package errors

// Error code constants.
// Format: CATEGORY_SPECIFIC_DETAIL
// The frontend maps these codes to display messages.

const (
	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput  = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID     = "VALIDATION_INVALID_ID"
	ValidationInvalidFormat = "VALIDATION_INVALID_FORMAT"
	ValidationRequired      = "VALIDATION_REQUIRED"

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// ==================== Spot prices (PRICE_) ====================
	PriceNotFound      = "PRICE_NOT_FOUND"
	PriceInvalidSymbol = "PRICE_INVALID_SYMBOL"
	PriceFetchFailed   = "PRICE_FETCH_FAILED"

	// ==================== Stone catalog (STONE_) ====================
	StoneNotFound      = "STONE_NOT_FOUND"
	StoneInvalid       = "STONE_INVALID"
	StoneImportInvalid = "STONE_IMPORT_INVALID"

	// ==================== Quotes (QUOTE_) ====================
	QuoteNotFound = "QUOTE_NOT_FOUND"

	// ==================== Completed projects (PROJECT_) ====================
	ProjectNotFound = "PROJECT_NOT_FOUND"
	ProjectInvalid  = "PROJECT_INVALID"

	// ==================== Workshops (WORKSHOP_) ====================
	WorkshopTemplateNotFound = "WORKSHOP_TEMPLATE_NOT_FOUND"

	// ==================== Settings (SETTINGS_) ====================
	SettingsInvalid = "SETTINGS_INVALID"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
	InternalExternalAPI   = "INTERNAL_EXTERNAL_API"
)
