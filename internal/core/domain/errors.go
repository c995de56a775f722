package domain

import "errors"

// CodeSuccess is the envelope code for successful responses.
const CodeSuccess = 1000

// AppError is a coded domain failure. Clients distinguish failures by Code;
// HTTPStatus only groups codes into transport-level classes.
type AppError struct {
	Code       int
	Message    string
	HTTPStatus int
}

func (e *AppError) Error() string {
	return e.Message
}

// Common errors
var (
	ErrUncategorized = &AppError{Code: 9999, Message: "An uncategorized error occurred", HTTPStatus: 500}
	ErrServer        = &AppError{Code: 9998, Message: "An internal server error occurred", HTTPStatus: 500}
)

// User / auth errors
var (
	ErrUserExists          = &AppError{Code: 1001, Message: "User already exists", HTTPStatus: 400}
	ErrInvalidEmail        = &AppError{Code: 1002, Message: "Email must be in a valid format", HTTPStatus: 400}
	ErrInvalidPassword     = &AppError{Code: 1003, Message: "Password must be at least 6 characters long", HTTPStatus: 400}
	ErrInvalidStatus       = &AppError{Code: 1003, Message: "Status must be either 'ACTIVE' or 'INACTIVE'", HTTPStatus: 400}
	ErrUserNotExist        = &AppError{Code: 1004, Message: "User does not exist", HTTPStatus: 404}
	ErrUnauthenticated     = &AppError{Code: 1005, Message: "User is not authenticated", HTTPStatus: 401}
	ErrUnauthorized        = &AppError{Code: 1006, Message: "Unauthorized access", HTTPStatus: 403}
	ErrUserAccountInactive = &AppError{Code: 1007, Message: "User account is inactive", HTTPStatus: 403}
	ErrRoleNotExist        = &AppError{Code: 1008, Message: "Role does not exist", HTTPStatus: 404}
	ErrPermissionNotExist  = &AppError{Code: 1009, Message: "Permission does not exist", HTTPStatus: 404}
)

// Loan product errors
var (
	ErrLoanProductNotFound        = &AppError{Code: 2001, Message: "Loan product not found", HTTPStatus: 404}
	ErrInvalidProductAmountRange  = &AppError{Code: 2002, Message: "Minimum loan amount must be less than maximum loan amount", HTTPStatus: 400}
	ErrInvalidProductTermRange    = &AppError{Code: 2003, Message: "Minimum loan term must be less than maximum loan term", HTTPStatus: 400}
	ErrInvalidProductDocuments    = &AppError{Code: 2004, Message: "At least one required document must be specified", HTTPStatus: 400}
	ErrInvalidProductInterestRate = &AppError{Code: 2005, Message: "Interest rate must be greater than 0 and at most 100", HTTPStatus: 400}
	ErrInvalidProductName         = &AppError{Code: 2007, Message: "Loan product name must be at least 3 characters long", HTTPStatus: 400}
)

// Loan application errors
var (
	ErrLoanApplicationNotFound        = &AppError{Code: 3001, Message: "Loan application not found", HTTPStatus: 404}
	ErrInvalidApplicationAmount       = &AppError{Code: 3002, Message: "Requested amount must be within the product amount range", HTTPStatus: 400}
	ErrInvalidApplicationTerm         = &AppError{Code: 3003, Message: "Requested term must be within the product term range", HTTPStatus: 400}
	ErrInvalidApplicationPersonalInfo = &AppError{Code: 3004, Message: "Personal information must not be empty", HTTPStatus: 400}
	ErrLoanApplicationAlreadyRejected = &AppError{Code: 3005, Message: "Loan application has already been rejected", HTTPStatus: 400}
)

// Notification / document errors
var (
	ErrNotificationNotFound = &AppError{Code: 4001, Message: "Notification not found", HTTPStatus: 404}
	ErrDocumentNotFound     = &AppError{Code: 5001, Message: "Document not found", HTTPStatus: 404}
)

// Verification token errors
var (
	ErrVerificationTokenNotFound        = &AppError{Code: 6001, Message: "Verification token not found", HTTPStatus: 404}
	ErrVerificationTokenAlreadyVerified = &AppError{Code: 6002, Message: "Verification token has already been verified", HTTPStatus: 400}
	ErrInvalidVerificationTokenType     = &AppError{Code: 6003, Message: "Invalid verification token type", HTTPStatus: 400}
	ErrVerificationTokenExpired         = &AppError{Code: 6004, Message: "Verification token has expired", HTTPStatus: 400}
)

// Disbursement errors
var (
	ErrDisbursementNotFound       = &AppError{Code: 7001, Message: "Disbursement transaction not found", HTTPStatus: 404}
	ErrLoanApplicationNotApproved = &AppError{Code: 7002, Message: "Loan application must be approved before disbursement", HTTPStatus: 400}
	ErrDisbursementExceedsCap     = &AppError{Code: 7003, Message: "Total disbursement amount cannot exceed approved loan amount", HTTPStatus: 400}
	ErrInvalidDisbursementAmount  = &AppError{Code: 7004, Message: "Disbursement amount must be greater than zero", HTTPStatus: 400}
)

// System configuration errors
var (
	ErrSystemConfigurationNotFound = &AppError{Code: 8001, Message: "System configuration not found", HTTPStatus: 404}
)

// AsAppError extracts the coded error from err, downgrading anything
// unmapped to ErrUncategorized so internals never reach the client.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return ErrUncategorized
}
