package function

import "context"

// ResponseWriter is the response-building half of the trigger contract.
type ResponseWriter interface {
	JSON(data interface{}, status int)
	Text(data string, status int)
}

type FunctionService interface {
	Handle(ctx context.Context, body []byte, responseWriter ResponseWriter)
}
