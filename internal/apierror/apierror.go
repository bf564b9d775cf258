// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
//
// Every business failure carries a machine-checkable Code so the frontend can
// branch without parsing the human-readable detail.
package apierror

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes — stable wire contract.
const (
	CodeNoEncontrado         = "NO_ENCONTRADO"
	CodeEntradaInvalida      = "ENTRADA_INVALIDA"
	CodeLineaInvalida        = "LINEA_INVALIDA"
	CodeStockInsuficiente    = "STOCK_INSUFICIENTE"
	CodeLineaNoEnVenta       = "LINEA_NO_EN_VENTA"
	CodeAnularTiempoExcedido = "ANULAR_TIEMPO_EXCEDIDO"
	CodeConflicto            = "CONFLICTO"
	CodeConflictoDependencia = "CONFLICTO_DEPENDENCIA"
	CodeErrorInterno         = "ERROR_INTERNO"
)

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Code   string                 `json:"code"`
	Detail string                 `json:"detail"`
	Extra  map[string]interface{} `json:"extra,omitempty"`

	status int
}

func (e *APIError) Error() string { return e.Detail }

// Status returns the HTTP status the error maps to.
func (e *APIError) Status() int { return e.status }

// New builds an APIError with an explicit code and status.
func New(code string, status int, detail string) *APIError {
	return &APIError{Code: code, Detail: detail, status: status}
}

func NotFound(format string, args ...interface{}) *APIError {
	return New(CodeNoEncontrado, http.StatusNotFound, fmt.Sprintf(format, args...))
}

func InvalidInput(format string, args ...interface{}) *APIError {
	return New(CodeEntradaInvalida, http.StatusBadRequest, fmt.Sprintf(format, args...))
}

func InvalidLine(format string, args ...interface{}) *APIError {
	return New(CodeLineaInvalida, http.StatusBadRequest, fmt.Sprintf(format, args...))
}

// StockInsuficiente reports a failed quantity check on a lot. The offending
// lot, its availability and the requested amount travel in Extra so the client
// can render a precise message.
func StockInsuficiente(loteID string, disponible, solicitado int) *APIError {
	e := New(CodeStockInsuficiente, http.StatusBadRequest,
		fmt.Sprintf("Stock insuficiente. Lote %s: disponible %d, solicitado %d", loteID, disponible, solicitado))
	e.Extra = map[string]interface{}{
		"lote_id":    loteID,
		"disponible": disponible,
		"solicitado": solicitado,
	}
	return e
}

func LineaNoEnVenta(detalleVentaID, ventaID string) *APIError {
	return New(CodeLineaNoEnVenta, http.StatusBadRequest,
		fmt.Sprintf("La linea %s no pertenece a la venta %s", detalleVentaID, ventaID))
}

// AnularTiempoExcedido rejects a cancellation outside the business window.
func AnularTiempoExcedido(diffMinutes, limitMinutes int) *APIError {
	e := New(CodeAnularTiempoExcedido, http.StatusBadRequest,
		fmt.Sprintf("No se puede anular: han pasado %d minutos desde la venta (límite %d)", diffMinutes, limitMinutes))
	e.Extra = map[string]interface{}{
		"diff_minutes":  diffMinutes,
		"limit_minutes": limitMinutes,
	}
	return e
}

func Conflict(format string, args ...interface{}) *APIError {
	return New(CodeConflicto, http.StatusConflict, fmt.Sprintf(format, args...))
}

// DependencyConflict blocks a delete and names the relations that still
// reference the row.
func DependencyConflict(detail string, relations map[string]int64) *APIError {
	e := New(CodeConflictoDependencia, http.StatusConflict, detail)
	e.Extra = map[string]interface{}{"referencias": relations}
	return e
}

func Internal(detail string) *APIError {
	return New(CodeErrorInterno, http.StatusInternalServerError, detail)
}

// From normalizes any error into an APIError. Coded errors pass through;
// everything else becomes a generic 500 so internals never reach the client.
func From(err error) *APIError {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae
	}
	return Internal("Error interno del servidor")
}

// IsCode reports whether err is an APIError with the given code.
func IsCode(err error, code string) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.Code == code
}

// ValidationError wraps multiple field errors.
type ValidationError struct {
	Code   string            `json:"code"`
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Code: CodeEntradaInvalida, Detail: "Error de validacion", Fields: fields}
}
