package middleware

import (
	"fmt"

	pkgError "github.com/AzielCF/az-planner/pkg/error"
	"github.com/AzielCF/az-planner/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// Recovery turns panics raised by utils.PanicIfNeeded into the JSON envelope.
func Recovery() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		defer func() {
			err := recover()
			if err == nil {
				return
			}

			res := utils.ResponseData{
				Status:  fiber.StatusInternalServerError,
				Code:    "INTERNAL_SERVER_ERROR",
				Message: fmt.Sprintf("%v", err),
			}

			if appErr, ok := err.(pkgError.GenericError); ok {
				res.Status = appErr.StatusCode()
				res.Code = appErr.ErrCode()
				res.Message = appErr.Error()
			}

			entry := logrus.WithFields(logrus.Fields{
				"path":       ctx.Path(),
				"request_id": ctx.Locals("requestid"),
			})
			if res.Status >= fiber.StatusInternalServerError {
				entry.Errorf("[REST] panic recovered: %v", err)
			} else {
				entry.Debugf("[REST] request rejected: %v", err)
			}

			_ = ctx.Status(res.Status).JSON(res)
		}()

		return ctx.Next()
	}
}
