package function

import "net/http"

const MessageSuccess = "Image processed successfully"

type Response struct {
	Success          bool   `json:"success"`
	Message          string `json:"message"`
	ProcessedImageID string `json:"processed_image_id,omitempty"`
}

func successResponse(processedImageID string) (Response, int) {
	return Response{
		Success:          true,
		Message:          MessageSuccess,
		ProcessedImageID: processedImageID,
	}, http.StatusOK
}

func failureResponse(err *Error) (Response, int) {
	return Response{Success: false, Message: err.Message}, err.Status
}
