package main

import (
	"fmt"
	"io"

	"github.com/bytedance/sonic"
	"github.com/labstack/echo/v4"
	"github.com/thebartekbanach/woundfn/pkg/function"
)

type echoResponseWriter struct {
	c   echo.Context
	err error
}

var _ function.ResponseWriter = (*echoResponseWriter)(nil)

func (w *echoResponseWriter) JSON(data interface{}, status int) {
	w.err = w.c.JSON(status, data)
}

func (w *echoResponseWriter) Text(data string, status int) {
	w.err = w.c.String(status, data)
}

// cliResponseWriter prints the response for the invoke command. With idOnly
// a successful response is printed as the bare processed image id.
type cliResponseWriter struct {
	out    io.Writer
	idOnly bool
	status int
	err    error
}

var _ function.ResponseWriter = (*cliResponseWriter)(nil)

func (w *cliResponseWriter) JSON(data interface{}, status int) {
	if response, ok := data.(function.Response); ok && w.idOnly && response.Success {
		w.Text(response.ProcessedImageID, status)
		return
	}

	w.status = status

	encoded, err := sonic.ConfigStd.MarshalIndent(data, "", "  ")
	if err != nil {
		w.err = err
		return
	}

	_, w.err = fmt.Fprintln(w.out, string(encoded))
}

func (w *cliResponseWriter) Text(data string, status int) {
	w.status = status
	_, w.err = fmt.Fprintln(w.out, data)
}

type sonicSerializer struct{}

var _ echo.JSONSerializer = (*sonicSerializer)(nil)

func (s *sonicSerializer) Serialize(c echo.Context, i interface{}, indent string) error {
	encoder := sonic.ConfigStd.NewEncoder(c.Response())
	if indent != "" {
		encoder.SetIndent("", indent)
	}
	return encoder.Encode(i)
}

func (s *sonicSerializer) Deserialize(c echo.Context, i interface{}) error {
	if err := sonic.ConfigStd.NewDecoder(c.Request().Body).Decode(i); err != nil {
		return echo.NewHTTPError(400, "invalid json: "+err.Error())
	}
	return nil
}
