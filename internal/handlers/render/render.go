package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/eniolaomotee/Bookly/internal/apperrors"
)

const (
	ValidationErrorCode = "validation_failed"
	DecodingErrorCode   = "decoding_failed"
	InternalErrorCode   = "internal_server_error"
)

var validate = newValidator()

type Struct any

// Error body shape is fixed for compatibility: {message, error_code}
// plus optional resolution hint and per-field validation messages
type ErrorResponse struct {
	Message    string            `json:"message"`
	ErrorCode  string            `json:"error_code"`
	Resolution string            `json:"resolution,omitempty"`
	Fields     map[string]string `json:"fields,omitempty"`
}

func JSON(w http.ResponseWriter, data any) {
	jsonWithStatus(w, data, http.StatusOK)
}

func JSONWithStatus(w http.ResponseWriter, data any, code int) {
	jsonWithStatus(w, data, code)
}

// errorDef maps one domain error to its stable HTTP representation
type errorDef struct {
	err        error
	status     int
	code       string
	message    string
	resolution string
}

var errorDefs = []errorDef{
	{apperrors.ErrInvalidToken, http.StatusUnauthorized, "invalid_token", "Token is invalid or expired", "Please get a new token"},
	{apperrors.ErrRevokedToken, http.StatusUnauthorized, "token_revoked", "Token is invalid or has been revoked", "Please get a new token"},
	{apperrors.ErrAccessTokenRequired, http.StatusUnauthorized, "access_token_required", "Please provide a valid access token", "Please get an access token"},
	{apperrors.ErrRefreshTokenRequired, http.StatusForbidden, "refresh_token_required", "Please provide a valid refresh token", "Please get a refresh token"},
	{apperrors.ErrUserAlreadyExists, http.StatusForbidden, "user_exists", "User with email already exists", ""},
	{apperrors.ErrUserNotFound, http.StatusNotFound, "user_not_found", "User not found", ""},
	{apperrors.ErrInvalidCredentials, http.StatusBadRequest, "invalid_email_or_password", "Invalid Email Or Password", ""},
	{apperrors.ErrInsufficientPermissions, http.StatusUnauthorized, "insufficient_permission", "You do not have enough permissions to perform this action", ""},
	{apperrors.ErrAccountNotVerified, http.StatusForbidden, "account_not_verified", "Account not verified", "Please check your email for verification details"},
	{apperrors.ErrInvalidPassword, http.StatusBadRequest, "password_mismatch", "Passwords do not match", "Please check your passwords and try again"},
	{apperrors.ErrBookNotFound, http.StatusNotFound, "book_not_found", "Book not found", ""},
	{apperrors.ErrReviewNotFound, http.StatusNotFound, "review_not_found", "Review not found", "Please crosscheck for the review"},
	{apperrors.ErrTagNotFound, http.StatusNotFound, "tag_not_found", "Tag not found", ""},
	{apperrors.ErrTagAlreadyExists, http.StatusConflict, "tag_exists", "Tag already exists", ""},
}

// Error translates a domain error into its fixed JSON body and status.
// Anything outside the known taxonomy collapses to a generic 500: no
// internal detail ever reaches the caller.
func Error(w http.ResponseWriter, err error) {
	for _, def := range errorDefs {
		if errors.Is(err, def.err) {
			jsonWithStatus(w, ErrorResponse{
				Message:    def.message,
				ErrorCode:  def.code,
				Resolution: def.resolution,
			}, def.status)
			return
		}
	}

	jsonWithStatus(w, ErrorResponse{
		Message:   "Oops! Something went wrong",
		ErrorCode: InternalErrorCode,
	}, http.StatusInternalServerError)
}

// Render json DecodeError
func DecodeError(w http.ResponseWriter, err error) {
	response := ErrorResponse{
		ErrorCode: DecodingErrorCode,
	}

	// Try to provide more specific error message based on error type
	switch err := err.(type) {
	case *json.UnmarshalTypeError:
		response.Message = fmt.Sprintf("Invalid data type for field '%s'", err.Field)
	default:
		response.Message = fmt.Sprintf("Failed to parse JSON: %s", err.Error())
	}

	jsonWithStatus(w, response, http.StatusBadRequest)
}

// Render ValidationErrors
func ValidationErrors(w http.ResponseWriter, errs validator.ValidationErrors) {
	response := ErrorResponse{
		Message:   "Request validation failed",
		ErrorCode: ValidationErrorCode,
		Fields:    make(map[string]string, len(errs)),
	}

	// Create user-friendly error messages based on validation tag
	for _, fieldError := range errs {
		var message string
		switch fieldError.Tag() {
		case "required":
			message = "This field is required"
		case "min":
			message = fmt.Sprintf("Value is too short (minimum %s)", fieldError.Param())
		case "max":
			message = fmt.Sprintf("Value is too long (maximum %s)", fieldError.Param())
		case "email":
			message = "Must be a valid email address"
		default:
			message = "Invalid value"
		}

		response.Fields[fieldError.Field()] = message
	}

	jsonWithStatus(w, response, http.StatusBadRequest)
}

// BindAndValidate decodes JSON request body into type T and validates it using struct tags.
// Returns the decoded value and writes appropriate error responses for decoding or validation failures.
func BindAndValidate[T Struct](w http.ResponseWriter, r *http.Request) (T, error) {
	var value T

	err := json.NewDecoder(r.Body).Decode(&value)
	if err != nil {
		DecodeError(w, err)
		return value, err
	}

	err = validate.Struct(value)
	if err != nil {
		// pretty sure cast will be ok cause expecting T is valid struct
		errs := err.(validator.ValidationErrors)
		ValidationErrors(w, errs)
		return value, err
	}

	return value, nil
}

// jsonWithStatus sends data as json and enforces status code
func jsonWithStatus(w http.ResponseWriter, data any, code int) {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)

	if err := enc.Encode(data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write(buf.Bytes())
}
