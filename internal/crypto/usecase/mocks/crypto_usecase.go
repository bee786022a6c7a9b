// Package mocks provides mock implementations for testing crypto handlers and decorators.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	cryptoDomain "github.com/allisson/cipherbox/internal/crypto/domain"
)

// MockCryptoUseCase is a mock implementation of CryptoUseCase for testing.
type MockCryptoUseCase struct {
	mock.Mock
}

// NewMockCryptoUseCase creates a MockCryptoUseCase whose expectations are
// asserted when the test finishes.
func NewMockCryptoUseCase(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockCryptoUseCase {
	m := &MockCryptoUseCase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// AESEncrypt mocks the AESEncrypt method of CryptoUseCase.
func (m *MockCryptoUseCase) AESEncrypt(ctx context.Context, text string) (*cryptoDomain.Envelope, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cryptoDomain.Envelope), args.Error(1)
}

// AESDecrypt mocks the AESDecrypt method of CryptoUseCase.
func (m *MockCryptoUseCase) AESDecrypt(ctx context.Context, envelope *cryptoDomain.Envelope) (string, error) {
	args := m.Called(ctx, envelope)
	return args.String(0), args.Error(1)
}

// RSAEncrypt mocks the RSAEncrypt method of CryptoUseCase.
func (m *MockCryptoUseCase) RSAEncrypt(ctx context.Context, text string) (string, error) {
	args := m.Called(ctx, text)
	return args.String(0), args.Error(1)
}

// RSADecrypt mocks the RSADecrypt method of CryptoUseCase.
func (m *MockCryptoUseCase) RSADecrypt(ctx context.Context, ciphertext string) (string, error) {
	args := m.Called(ctx, ciphertext)
	return args.String(0), args.Error(1)
}
