package templates

type BaseData struct {
	Title       string
	CurrentUser *string
	RequestID   string
}

type ShellData struct {
	BaseData
	Route string
}

type ErrorData struct {
	BaseData
	StatusCode int
	Message    string
}
