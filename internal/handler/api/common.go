// Package api holds the mini-app facing HTTP handlers.
package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Response is the envelope every API endpoint returns.
type Response struct {
	Status bool        `json:"status"`
	Msg    string      `json:"msg"`
	Obj    interface{} `json:"obj"`
}

func successResponse(c echo.Context, msg string, obj interface{}) error {
	return c.JSON(http.StatusOK, Response{
		Status: true,
		Msg:    msg,
		Obj:    obj,
	})
}

func errorResponse(c echo.Context, msg string) error {
	return c.JSON(http.StatusOK, Response{
		Status: false,
		Msg:    msg,
		Obj:    nil,
	})
}
