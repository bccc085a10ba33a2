package api

// Response はAPIレスポンスの統一フォーマット
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// OK は成功レスポンスを作成する
func OK(message string, data interface{}) Response {
	return Response{Success: true, Message: message, Data: data}
}

// Fail は失敗レスポンスを作成する
func Fail(message string) Response {
	return Response{Success: false, Message: message}
}
