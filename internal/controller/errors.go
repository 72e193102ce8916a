package controller

import (
	"errors"

	"promptlycoach-be/internal/constant"
	"promptlycoach-be/internal/pkg/serverutils"
	"promptlycoach-be/internal/service"
)

// toAppError maps service sentinels onto HTTP statuses. Anything else stays a 500.
func toAppError(err error) error {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		return serverutils.NewNotFoundError(err.Error())
	case errors.Is(err, service.ErrInvalidSenderType),
		errors.Is(err, service.ErrEmptyMessage),
		errors.Is(err, service.ErrContactRequired),
		errors.Is(err, service.ErrInvalidPhoneNumber):
		return serverutils.NewBadRequestError(err.Error())
	case errors.Is(err, service.ErrAuthenticationRequired):
		return serverutils.NewUnauthorizedError(constant.ToastAuthRequiredTitle)
	}
	return err
}
