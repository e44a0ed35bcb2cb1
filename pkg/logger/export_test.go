package logger

var NewLoggerTo = newLogger
