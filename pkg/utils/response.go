package utils

import (
	pkgError "github.com/AzielCF/az-planner/pkg/error"
	"github.com/sirupsen/logrus"
)

// ResponseData is the JSON envelope every REST handler answers with.
// Status is only used to pick the HTTP status code and is not serialized.
type ResponseData struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Results any    `json:"results,omitempty"`
}

// PanicIfNeeded hands err over to the recovery middleware.
// Errors that are not a GenericError are wrapped as internal errors.
func PanicIfNeeded(err any) {
	if err == nil {
		return
	}
	switch e := err.(type) {
	case pkgError.GenericError:
		panic(e)
	case error:
		logrus.Errorf("[REST] unexpected error: %v", e)
		panic(pkgError.InternalServerError(e.Error()))
	default:
		panic(err)
	}
}
