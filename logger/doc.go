// Package logger provides structured logging for meetingminds built on
// zerolog. It exposes a configurable service logger, component-tagged
// child loggers, and package-level helpers backed by a global instance.
package logger
