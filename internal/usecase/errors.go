package usecase

import (
	"errors"

	"github.com/xavierca1/leadgen/internal/entity"
)

const (
	CodeValidation        = "VALIDATION_ERROR"
	CodeLeadNotFound      = "LEAD_NOT_FOUND"
	CodeLeadAlreadyExists = "LEAD_ALREADY_EXISTS"
	CodeStorage           = "STORAGE_ERROR"
)

// DomainError é culpa de quem chamou (entrada inválida, lead inexistente).
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

// TechnicalError é falha de infraestrutura (banco fora, fila fora).
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

// ErrorCode devolve o código de um DomainError/TechnicalError, ou "".
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

// mapRepoError traduz os erros sentinela do repositório.
func mapRepoError(err error, action string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, entity.ErrLeadNotFound):
		return &DomainError{Code: CodeLeadNotFound, Message: "lead não encontrado", Err: err}
	case errors.Is(err, entity.ErrLeadAlreadyExists):
		return &DomainError{Code: CodeLeadAlreadyExists, Message: "lead já cadastrado (mesmo nome e cidade)", Err: err}
	case errors.Is(err, entity.ErrBusinessNameRequired),
		errors.Is(err, entity.ErrInvalidChannel),
		errors.Is(err, entity.ErrInvalidResponseStatus),
		errors.Is(err, entity.ErrInvalidLeadStatus):
		return &DomainError{Code: CodeValidation, Message: err.Error(), Err: err}
	}
	return &TechnicalError{Code: CodeStorage, Message: "erro ao " + action, Err: err}
}
