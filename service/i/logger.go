package i

import "github.com/beka-birhanu/vinom-maze/logger"

// Logger is the leveled logger services write to.
type Logger interface {
	Debug(msg string, fields ...logger.Fields)
	Info(msg string, fields ...logger.Fields)
	Warning(msg string, fields ...logger.Fields)
	Error(msg string, fields ...logger.Fields)
}
