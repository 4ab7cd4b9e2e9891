package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		wantCode   ErrorCode
		wantStatus int
	}{
		{"missing token", MissingToken(), ErrCodeMissingToken, http.StatusUnauthorized},
		{"invalid token", InvalidToken(), ErrCodeInvalidToken, http.StatusUnauthorized},
		{"wrong token type", WrongTokenType("access", "refresh"), ErrCodeWrongTokenType, http.StatusUnauthorized},
		{"unknown subject", UnknownSubject(), ErrCodeUnknownSubject, http.StatusUnauthorized},
		{"invalid credentials", InvalidCredentials(), ErrCodeInvalidCredentials, http.StatusUnauthorized},
		{"duplicate email", DuplicateEmail(), ErrCodeDuplicateEmail, http.StatusConflict},
		{"rate limited", RateLimited(), ErrCodeRateLimited, http.StatusTooManyRequests},
		{"store unavailable", StoreUnavailable(stderrors.New("down")), ErrCodeStoreUnavailable, http.StatusServiceUnavailable},
		{"not found", NotFound("task"), ErrCodeNotFound, http.StatusNotFound},
		{"forbidden", Forbidden("Not your task."), ErrCodeForbidden, http.StatusForbidden},
		{"invalid input", InvalidInput("bad"), ErrCodeInvalidInput, http.StatusUnprocessableEntity},
		{"internal", Internal(stderrors.New("boom")), ErrCodeInternal, http.StatusInternalServerError},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.err.Code != tc.wantCode {
				t.Errorf("code = %s, want %s", tc.err.Code, tc.wantCode)
			}
			if tc.err.HTTPStatus != tc.wantStatus {
				t.Errorf("status = %d, want %d", tc.err.HTTPStatus, tc.wantStatus)
			}
			if tc.err.Message == "" {
				t.Error("empty message")
			}
		})
	}
}

func TestWrongTokenType_Message(t *testing.T) {
	err := WrongTokenType("access", "refresh")
	want := `Wrong token type: "access" when "refresh" was expected.`
	if err.Message != want {
		t.Errorf("message = %q, want %q", err.Message, want)
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := StoreUnavailable(cause)

	if !stderrors.Is(err, cause) {
		t.Error("errors.Is() does not reach the cause")
	}

	wrapped := fmt.Errorf("handling request: %w", err)
	appErr, ok := AsAppError(wrapped)
	if !ok {
		t.Fatal("AsAppError() failed through a wrapping layer")
	}
	if appErr.Code != ErrCodeStoreUnavailable {
		t.Errorf("code = %s", appErr.Code)
	}
}

func TestHasCode(t *testing.T) {
	if !HasCode(RateLimited(), ErrCodeRateLimited) {
		t.Error("HasCode() missed a direct match")
	}
	if HasCode(RateLimited(), ErrCodeNotFound) {
		t.Error("HasCode() matched the wrong code")
	}
	if HasCode(stderrors.New("plain"), ErrCodeInternal) {
		t.Error("HasCode() matched a non-AppError")
	}
	if HasCode(nil, ErrCodeInternal) {
		t.Error("HasCode() matched nil")
	}
}

func TestWithDetail(t *testing.T) {
	err := InvalidInput("bad").WithDetail("fields", []string{"email"})
	if err.Details["fields"] == nil {
		t.Error("detail not recorded")
	}

	resp := err.ToResponse()
	if resp.Error.Code != ErrCodeInvalidInput || resp.Error.Details == nil {
		t.Errorf("ToResponse() = %+v", resp)
	}
}
