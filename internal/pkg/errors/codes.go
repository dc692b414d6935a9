package errors

import (
	"fmt"
	"net/http"
)

// Code represents an error code with HTTP status and message
type Code struct {
	Code    int    // Business error code
	Status  int    // HTTP status code
	Message string // Error message
}

// Error codes for different modules
const (
	// Success
	Success = 0

	// Common errors (1000-1999)
	ErrInternalServer = 1000
	ErrInvalidParams  = 1001
	ErrNotFound       = 1002
	ErrConflict       = 1003
	ErrBadRequest     = 1004
	ErrServiceUnavail = 1005

	// Selection errors (2000-2999)
	ErrStorageRead     = 2000
	ErrStorageWrite    = 2001
	ErrProvisioner     = 2002
	ErrCapabilityCheck = 2003
	ErrSelectionEmpty  = 2004

	// Assistant / topic errors (3000-3999)
	ErrAssistantNotFound     = 3000
	ErrTopicNotFound         = 3001
	ErrAssistantInvalidInput = 3002
	ErrTopicInvalidInput     = 3003
	ErrSettingNotFound       = 3004
)

// codeMap maps error codes to their details
var codeMap = map[int]Code{
	Success: {Success, http.StatusOK, "Success"},

	// Common errors
	ErrInternalServer: {ErrInternalServer, http.StatusInternalServerError, "Internal server error"},
	ErrInvalidParams:  {ErrInvalidParams, http.StatusBadRequest, "Invalid parameters"},
	ErrNotFound:       {ErrNotFound, http.StatusNotFound, "Resource not found"},
	ErrConflict:       {ErrConflict, http.StatusConflict, "Resource conflict"},
	ErrBadRequest:     {ErrBadRequest, http.StatusBadRequest, "Bad request"},
	ErrServiceUnavail: {ErrServiceUnavail, http.StatusServiceUnavailable, "Service unavailable"},

	// Selection errors
	ErrStorageRead:     {ErrStorageRead, http.StatusInternalServerError, "Durable storage read failed"},
	ErrStorageWrite:    {ErrStorageWrite, http.StatusInternalServerError, "Durable storage write failed"},
	ErrProvisioner:     {ErrProvisioner, http.StatusInternalServerError, "Default provisioning failed"},
	ErrCapabilityCheck: {ErrCapabilityCheck, http.StatusInternalServerError, "Capability check failed"},
	ErrSelectionEmpty:  {ErrSelectionEmpty, http.StatusNotFound, "No selection available"},

	// Assistant / topic errors
	ErrAssistantNotFound:     {ErrAssistantNotFound, http.StatusNotFound, "Assistant not found"},
	ErrTopicNotFound:         {ErrTopicNotFound, http.StatusNotFound, "Topic not found"},
	ErrAssistantInvalidInput: {ErrAssistantInvalidInput, http.StatusBadRequest, "Invalid assistant input"},
	ErrTopicInvalidInput:     {ErrTopicInvalidInput, http.StatusBadRequest, "Invalid topic input"},
	ErrSettingNotFound:       {ErrSettingNotFound, http.StatusNotFound, "Setting not found"},
}

// GetCode returns the Code for a given error code
func GetCode(code int) Code {
	if c, ok := codeMap[code]; ok {
		return c
	}
	return codeMap[ErrInternalServer]
}

// GetHTTPStatus returns HTTP status for a given error code
func GetHTTPStatus(code int) int {
	return GetCode(code).Status
}

// GetMessage returns the message for a given error code
func GetMessage(code int) string {
	return GetCode(code).Message
}

// IsSuccess checks if the code represents success
func IsSuccess(code int) bool {
	return code == Success
}

// FormatError formats an error message with code
func FormatError(code int, details ...string) string {
	msg := GetMessage(code)
	if len(details) > 0 && details[0] != "" {
		return fmt.Sprintf("%s: %s", msg, details[0])
	}
	return msg
}
