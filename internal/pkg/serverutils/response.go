package serverutils

type ErrorBody struct {
	Code  int    `json:"-"`
	Error string `json:"error"`
}

type SuccessBody struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func ErrorResponse(code int, message string) *ErrorBody {
	return &ErrorBody{Code: code, Error: message}
}

func SuccessResponse(message string, data interface{}) *SuccessBody {
	return &SuccessBody{Message: message, Data: data}
}
