package usecase

import "errors"

const (
	CodeMissingFields      = "MISSING_FIELDS"
	CodeMissingIdentity    = "MISSING_IDENTITY"
	CodeConfigurationError = "CONFIGURATION_ERROR"
	CodeStoreError         = "STORE_ERROR"
	CodeDispatchError      = "DISPATCH_ERROR"
	CodeInvalidRow         = "INVALID_ROW"
)

// DomainError é erro de entrada do cliente (vira 4xx).
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

// TechnicalError é falha operacional (vira 5xx). Err guarda a causa original.
type TechnicalError struct {
	Code    string
	Message string
	Err     error
}

func (e *TechnicalError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *TechnicalError) Unwrap() error {
	return e.Err
}

func IsTechnicalError(err error) bool {
	var te *TechnicalError
	return errors.As(err, &te)
}

// ErrorCode devolve o Code de um DomainError ou TechnicalError, ou "" se não for nenhum dos dois.
func ErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	var te *TechnicalError
	if errors.As(err, &te) {
		return te.Code
	}
	return ""
}
