package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"authcore/api/middleware"
	"authcore/internal/dto"
	"authcore/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type AuthHandler struct {
	Service  *service.AuthService
	Validate *validator.Validate
	Logger   *logrus.Logger
}

func NewAuthHandler(svc *service.AuthService, validate *validator.Validate, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Service: svc, Validate: validate, Logger: logger}
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req dto.RegisterRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	input := service.RegisterInput{Name: req.Name, Email: req.Email, Password: req.Password}
	userID, err := h.Service.Register(c.Request().Context(), input)
	if err != nil {
		return h.writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, dto.RegisterResponse{
		Msg:    "user created, check mail for email confirmation",
		UserID: userID,
	})
}

func (h *AuthHandler) ConfirmEmail(c echo.Context) error {
	var req dto.ConfirmEmailRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.Service.ConfirmEmail(c.Request().Context(), c.Param("userId"), req.Token); err != nil {
		return h.writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{Msg: "token verified successfully"})
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	input := service.LoginInput{Email: req.Email, Password: req.Password}
	token, err := h.Service.Login(c.Request().Context(), input)
	if err != nil {
		return h.writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.LoginResponse{Msg: "login successfully", Token: token})
}

func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req dto.ForgotPasswordRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.Service.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		return h.writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{Msg: "check your email for verification code"})
}

func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req dto.ResetPasswordRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.Service.ResetPassword(c.Request().Context(), c.Param("email"), req.Token, req.Password); err != nil {
		return h.writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{Msg: "password reset successful"})
}

func (h *AuthHandler) ForgotPasswordLink(c echo.Context) error {
	var req dto.ForgotPasswordRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.Service.ForgotPasswordLink(c.Request().Context(), req.Email); err != nil {
		return h.writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{Msg: "check email for reset link"})
}

func (h *AuthHandler) ResetPasswordLink(c echo.Context) error {
	var req dto.ResetPasswordLinkRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.Service.ResetPasswordWithToken(c.Request().Context(), c.Param("token"), req.Password); err != nil {
		return h.writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{Msg: "password reset successful"})
}

func (h *AuthHandler) Me(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	user, err := h.Service.GetUser(c.Request().Context(), userID)
	if err != nil {
		return h.writeServiceError(c, err)
	}
	if user == nil {
		return writeError(c, http.StatusNotFound, service.ErrUserNotFound)
	}
	return c.JSON(http.StatusOK, dto.UserResponseFromEntity(user))
}

func (h *AuthHandler) AdminListUsers(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	users, err := h.Service.ListUsers(c.Request().Context(), limit, offset)
	if err != nil {
		return h.writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.UserResponsesFromEntities(users))
}

func (h *AuthHandler) AdminCreateGroup(c echo.Context) error {
	var req dto.CreateGroupRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	group, err := h.Service.CreateGroup(c.Request().Context(), req.Name)
	if err != nil {
		return h.writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, dto.GroupResponseFromEntity(group))
}

func (h *AuthHandler) AdminListGroups(c echo.Context) error {
	groups, err := h.Service.ListGroups(c.Request().Context())
	if err != nil {
		return h.writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.GroupResponsesFromEntities(groups))
}

func (h *AuthHandler) AdminCreatePermission(c echo.Context) error {
	var req dto.CreatePermissionRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	permission, err := h.Service.CreatePermission(c.Request().Context(), req.Name)
	if err != nil {
		return h.writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, dto.PermissionResponseFromEntity(permission))
}

func (h *AuthHandler) AdminListPermissions(c echo.Context) error {
	permissions, err := h.Service.ListPermissions(c.Request().Context())
	if err != nil {
		return h.writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.PermissionResponsesFromEntities(permissions))
}

func (h *AuthHandler) validate(payload any) error {
	if h.Validate == nil {
		return nil
	}
	return h.Validate.Struct(payload)
}

func decodeJSON(c echo.Context, target any) error {
	decoder := json.NewDecoder(c.Request().Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(target)
}

func writeError(c echo.Context, status int, err error) error {
	return c.JSON(status, dto.MessageResponse{Msg: err.Error()})
}

// writeServiceError maps service sentinels onto HTTP statuses. Anything
// unrecognized is a storage or transport failure: logged in full, surfaced
// as a generic 500.
func (h *AuthHandler) writeServiceError(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrMissingFields):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrEmailTaken), errors.Is(err, service.ErrNameTaken):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrAccountNotVerified):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrInvalidOrExpiredCode),
		errors.Is(err, service.ErrResetTokenExpired),
		errors.Is(err, service.ErrResetTokenInvalid):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrUnknownEmail):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrUserNotFound):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		if h.Logger != nil {
			h.Logger.WithError(err).Error("internal error")
		}
		return writeError(c, status, errors.New("server error"))
	}
	return writeError(c, status, err)
}
