package util

import (
	"crypto/rand"
	"fmt"
	"log"
	"net/http"
)

// Log severities
const (
	DEBUG  = "Debug"
	INFO   = "Info"
	NOTICE = "Notice"
	WARN   = "Warning"
	ERROR  = "Error"
	FATAL  = "Fatal"
)

// LogContext is the interface for log context information carried
// through an operation
type LogContext interface {
	AppName() string
	SessionID() string
	LogRootDir() string
}

// BasicLogContext is a minimal LogContext for operations without their own
type BasicLogContext struct {
	sessionID string
}

// AppName returns the application name
func (c *BasicLogContext) AppName() string {
	return "reflectra"
}

// SessionID returns a Session ID, creating one if needed
func (c *BasicLogContext) SessionID() string {
	if c.sessionID == "" {
		c.sessionID, _ = PsuUUID()
	}
	return c.sessionID
}

// LogRootDir returns an empty string
func (c *BasicLogContext) LogRootDir() string {
	return ""
}

// PsuUUID generates a pseudorandom UUID-shaped string. Not a proper
// RFC 4122 UUID; session correlation only.
func PsuUUID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x-%x-%x-%x-%x", b[0:4], b[4:6], b[6:8], b[8:10], b[10:]), nil
}

func logMessage(ctx LogContext, severity, message string) {
	appName := "unknown"
	sessionID := ""
	if ctx != nil {
		appName = ctx.AppName()
		sessionID = ctx.SessionID()
	}
	log.Printf("[%s] %s (%s): %s", severity, appName, sessionID, message)
}

// LogInfo logs an informational message
func LogInfo(ctx LogContext, message string) {
	logMessage(ctx, INFO, message)
}

// LogAlert logs a message that requires attention but is not tied to
// a Go error value
func LogAlert(ctx LogContext, message string) {
	logMessage(ctx, WARN, message)
}

// LogSimpleErr logs a message together with its underlying error and returns
// an error wrapping both, suitable for returning up the call stack
func LogSimpleErr(ctx LogContext, message string, err error) error {
	logMessage(ctx, ERROR, message+" "+err.Error())
	return fmt.Errorf("%s %w", message, err)
}

// LogAuditInput is the parameter object for LogAudit
type LogAuditInput struct {
	Actor    string
	Action   string
	Actee    string
	Message  string
	Severity string
}

// LogAudit writes an audit-style log line recording who did what to whom
func LogAudit(ctx LogContext, input LogAuditInput) {
	severity := input.Severity
	if severity == "" {
		severity = INFO
	}
	logMessage(ctx, severity, fmt.Sprintf("[audit] %s -> %s -> %s: %s", input.Actor, input.Action, input.Actee, input.Message))
}

// Error is a logging-oriented error with both an internal and a
// user-safe message
type Error struct {
	LogMsg     string
	SimpleMsg  string
	Response   string
	URL        string
	HTTPStatus int
}

// Log writes the error out and returns an error object wrapping the
// user-safe message
func (e Error) Log(ctx LogContext, prefix string) error {
	message := e.LogMsg
	if prefix != "" {
		message = prefix + ": " + message
	}
	if e.URL != "" {
		message += " URL: " + e.URL
	}
	if e.Response != "" {
		message += " Response: " + e.Response
	}
	logMessage(ctx, ERROR, message)
	if e.SimpleMsg != "" {
		return fmt.Errorf("%s", e.SimpleMsg)
	}
	return fmt.Errorf("%s", e.LogMsg)
}

// HTTPErr is an error that carries an HTTP status code
type HTTPErr struct {
	Status  int
	Message string
}

func (e HTTPErr) Error() string {
	return e.Message
}

// HTTPError writes an error message out to an HTTP response
func HTTPError(r *http.Request, w http.ResponseWriter, ctx LogContext, message string, status int) {
	http.Error(w, message, status)
}
