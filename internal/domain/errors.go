package domain

import "errors"

type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindValidation
	KindAuthorization
	KindNotFound
	KindConflict
	KindUnauthenticated
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthorization:
		return "authorization"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindUnauthenticated:
		return "unauthenticated"
	default:
		return "internal"
	}
}

// Error is the error type every service returns for failures a client can act on.
// Two errors are equal under errors.Is when kind and message match, so sentinels
// keep matching after WithDetails.
type Error struct {
	Kind    ErrorKind
	Message string
	Details string
}

func (e *Error) Error() string {
	if e.Details != "" {
		return e.Message + ": " + e.Details
	}
	return e.Message
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Message == e.Message
}

func (e *Error) WithDetails(details string) *Error {
	return &Error{Kind: e.Kind, Message: e.Message, Details: details}
}

func NewValidationError(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func NewAuthorizationError(message string) *Error {
	return &Error{Kind: KindAuthorization, Message: message}
}

func NewNotFoundError(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func NewConflictError(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func NewUnauthenticatedError(message string) *Error {
	return &Error{Kind: KindUnauthenticated, Message: message}
}

// KindOf reports the kind of err, KindInternal for anything that is not an *Error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

var (
	ErrPublicationNotFound  = NewNotFoundError("Publicação não encontrada")
	ErrCommentNotFound      = NewNotFoundError("Comentário não encontrado")
	ErrReportNotFound       = NewNotFoundError("Denúncia não encontrada")
	ErrCourseNotFound       = NewNotFoundError("Curso não encontrado")
	ErrForumTopicNotFound   = NewNotFoundError("Tópico do fórum não encontrado")
	ErrUserNotFound         = NewNotFoundError("Utilizador não encontrado")
	ErrNotificationNotFound = NewNotFoundError("Notificação não encontrada")

	ErrInvalidInput        = NewValidationError("Dados inválidos")
	ErrInvalidReportTarget = NewValidationError("A denúncia deve indicar uma publicação ou um comentário, nunca ambos")
	ErrDuplicateReport     = NewValidationError("Já existe uma denúncia pendente para este conteúdo")
	ErrInvalidParent       = NewValidationError("O comentário pai não pertence a esta publicação")
	ErrAlreadyEnrolled     = NewValidationError("O formando já está inscrito neste curso")
	ErrAttachmentTooLarge  = NewValidationError("O ficheiro excede o tamanho máximo permitido")
	ErrEmptyAttachment     = NewValidationError("O ficheiro está vazio")

	ErrForbidden     = NewAuthorizationError("Sem permissão para esta operação")
	ErrInactiveActor = NewAuthorizationError("Conta ou perfil inativo")

	ErrReportNotPending = NewConflictError("A denúncia já foi resolvida")
	ErrNoVacancies      = NewConflictError("O curso não tem vagas disponíveis")

	ErrInvalidCredentials = NewUnauthenticatedError("Email ou palavra-passe inválidos")
	ErrInvalidToken       = NewUnauthenticatedError("Token inválido ou expirado")
	ErrMissingToken       = NewUnauthenticatedError("Token de acesso em falta")
)
