package i

// Logger is a leveled logger bound to one component.
type Logger interface {
	Info(msg string)
	Warning(msg string)
	Error(msg string)
}
