package main

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/thebartekbanach/woundfn/pkg/function"
	"github.com/thebartekbanach/woundfn/pkg/records"
)

func handleInvocation(functionService function.FunctionService) echo.HandlerFunc {
	return func(c echo.Context) error {
		body, err := io.ReadAll(c.Request().Body)
		if err != nil {
			return c.JSON(http.StatusBadRequest, function.Response{Success: false, Message: "Invalid request body"})
		}

		writer := &echoResponseWriter{c: c}
		functionService.Handle(c.Request().Context(), body, writer)
		return writer.err
	}
}

func handleProbe(c echo.Context) error {
	writer := &echoResponseWriter{c: c}
	writer.Text("ok", http.StatusOK)
	return writer.err
}

func handleGetInvocation(invocations records.InvocationsRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		record, err := invocations.Get(c.Request().Context(), c.Param("id"))
		if errors.Is(err, records.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, function.Response{Success: false, Message: "Invocation not found"})
		}

		if err != nil {
			return c.JSON(http.StatusInternalServerError, function.Response{Success: false, Message: "Cannot read invocation record"})
		}

		return c.JSON(http.StatusOK, record)
	}
}
