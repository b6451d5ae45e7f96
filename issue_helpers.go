package goedm

import "github.com/reoring/goedm/i18n"

// ErrorAt creates an Error-severity ValidationError at loc. The message comes
// from the current i18n translator; data fills its placeholders.
func ErrorAt(loc, code string, data map[string]string) ValidationError {
	return ValidationError{Code: code, Message: i18n.T(code, data), Severity: Error, Location: loc}
}

// WarningAt is ErrorAt with Warn severity.
func WarningAt(loc, code string, data map[string]string) ValidationError {
	e := ErrorAt(loc, code, data)
	e.Severity = Warn
	return e
}

func nameData(name string) map[string]string { return map[string]string{"name": name} }
