package services

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"time"

	"aula_backend/internal/auth"
	"aula_backend/internal/email"
	"aula_backend/internal/models"
	"aula_backend/internal/repositories"
	"aula_backend/internal/services/dto"
	"aula_backend/pkg/apperrors"
)

const pendingRegistrationTTL = 15 * time.Minute

type AuthService interface {
	Register(req *dto.RegisterRequest, role models.UserRole) (*dto.RegisterResponse, error)
	Confirm(req *dto.ConfirmRequest) (*dto.ConfirmResponse, error)
	Login(req *dto.LoginRequest) (*dto.LoginResponse, error)
}

type AuthServiceImpl struct {
	userRepo      repositories.UserRepository
	emailProvider email.Provider
}

func NewAuthService(userRepo repositories.UserRepository, emailProvider email.Provider) AuthService {
	return &AuthServiceImpl{
		userRepo:      userRepo,
		emailProvider: emailProvider,
	}
}

// Register starts the two-phase registration: the user record is only
// created once the emailed code is confirmed.
func (s *AuthServiceImpl) Register(req *dto.RegisterRequest, role models.UserRole) (*dto.RegisterResponse, error) {
	emailAddr := strings.TrimSpace(req.Email)

	exists, err := s.userRepo.EmailExists(emailAddr)
	if err != nil {
		return nil, apperrors.StoreError("auth", err)
	}
	if exists {
		return nil, apperrors.New(apperrors.CodeAlreadyExists, "auth",
			"Email is already registered", http.StatusConflict)
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	token, err := randomToken()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	code, err := verificationCode()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	pending := &models.PendingRegistration{
		Token:        token,
		Name:         strings.TrimSpace(req.Name),
		Email:        emailAddr,
		PasswordHash: hashedPassword,
		Role:         role,
		Code:         code,
		ExpiresAt:    time.Now().Add(pendingRegistrationTTL),
	}
	if err := s.userRepo.CreatePending(pending); err != nil {
		return nil, apperrors.StoreError("auth", err)
	}

	if err := s.emailProvider.SendVerificationCode(emailAddr, code); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternalError, "auth",
			"Failed to send verification email", http.StatusInternalServerError)
	}

	return &dto.RegisterResponse{Status: "ok", Token: token}, nil
}

// Confirm exchanges a pending-registration token plus the emailed code for a
// real user account.
func (s *AuthServiceImpl) Confirm(req *dto.ConfirmRequest) (*dto.ConfirmResponse, error) {
	pending, err := s.userRepo.FindPendingByToken(req.Token)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPendingNotFound) {
			return nil, apperrors.New(apperrors.CodeInvalidToken, "auth",
				"Invalid token or wrong/expired code", http.StatusBadRequest)
		}
		return nil, apperrors.StoreError("auth", err)
	}

	if pending.Code != req.Code || time.Now().After(pending.ExpiresAt) {
		return nil, apperrors.New(apperrors.CodeInvalidToken, "auth",
			"Invalid token or wrong/expired code", http.StatusBadRequest)
	}

	// The address may have been claimed between register and confirm.
	exists, err := s.userRepo.EmailExists(pending.Email)
	if err != nil {
		return nil, apperrors.StoreError("auth", err)
	}
	if exists {
		return nil, apperrors.New(apperrors.CodeAlreadyExists, "auth",
			"Email is already registered", http.StatusConflict)
	}

	user := &models.User{
		Name:         pending.Name,
		Email:        pending.Email,
		PasswordHash: pending.PasswordHash,
		Role:         pending.Role,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, apperrors.StoreError("auth", err)
	}

	if err := s.userRepo.DeletePending(pending.Token); err != nil {
		return nil, apperrors.StoreError("auth", err)
	}

	return &dto.ConfirmResponse{Status: "ok", UserID: user.ID}, nil
}

func (s *AuthServiceImpl) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(strings.TrimSpace(req.Email))
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, invalidCredentials()
		}
		return nil, apperrors.StoreError("auth", err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, invalidCredentials()
	}

	token, err := auth.GenerateToken(user)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.LoginResponse{
		Status: "ok",
		Token:  token,
		User: dto.UserResponse{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Role:  user.Role,
		},
	}, nil
}

func invalidCredentials() *apperrors.AppError {
	return apperrors.New(apperrors.CodeInvalidCredentials, "auth",
		"Invalid email or password", http.StatusUnauthorized)
}

func randomToken() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func verificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
