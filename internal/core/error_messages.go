// Package core provides the business logic for payment-reminder
// reconciliation.
//
// # Error Codes Reference
//
// This file defines user-friendly error messages with codes for support
// reference. When operators encounter errors they can quote the code for
// faster diagnosis.
//
// Codes are grouped by category:
//
//	SCH001 - Missing columns: a mandatory column could not be resolved
//	SCH002 - Ambiguous upload: the two files could not be told apart
//	FILE001 - No file provided in the upload form
//	FILE002 - File is not a readable workbook
//	FILE003 - Ledger worksheet not found in the workbook
//	SMTP001 - SMTP authentication rejected
//	SMTP002 - Send timed out
//	SMTP003 - Mail server unreachable
//	SMTP004 - Credentials not configured
//	ERR000  - Fallback for anything unmatched
//
// Patterns are matched case-insensitively with strings.Contains; the first
// match wins, so specific patterns come before general ones.
package core

import "strings"

// UserMessage provides user-friendly error information with actionable
// guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	{
		pattern: "missing columns",
		msg: UserMessage{
			Message: "A required column is missing from an uploaded file",
			Action:  "Compare the file's headers against the expected template and re-export",
			Code:    "SCH001",
		},
	},
	{
		pattern: "could not classify",
		msg: UserMessage{
			Message: "The two uploaded files could not be identified as one directory and one ledger",
			Action:  "Upload the customer directory and the aging ledger, one of each",
			Code:    "SCH002",
		},
	},
	{
		pattern: "no file provided",
		msg: UserMessage{
			Message: "A file is missing from the upload",
			Action:  "Select both Excel files before submitting",
			Code:    "FILE001",
		},
	},
	{
		pattern: "open workbook",
		msg: UserMessage{
			Message: "The uploaded file is not a readable Excel workbook",
			Action:  "Re-export the file as .xlsx and try again",
			Code:    "FILE002",
		},
	},
	{
		pattern: "sheet not found",
		msg: UserMessage{
			Message: "The aging worksheet was not found in the ledger workbook",
			Action:  "Verify the workbook contains the \"Cartera por edades\" sheet",
			Code:    "FILE003",
		},
	},
	{
		pattern: "authentication",
		msg: UserMessage{
			Message: "The mail server rejected the configured credentials",
			Action:  "Check EMAIL_USER and EMAIL_PASSWORD (use an app password for Gmail)",
			Code:    "SMTP001",
		},
	},
	{
		pattern: "auth",
		msg: UserMessage{
			Message: "The mail server rejected the configured credentials",
			Action:  "Check EMAIL_USER and EMAIL_PASSWORD (use an app password for Gmail)",
			Code:    "SMTP001",
		},
	},
	{
		pattern: "timeout",
		msg: UserMessage{
			Message: "The mail server did not respond in time",
			Action:  "Try again; if it persists, check EMAIL_HOST and EMAIL_PORT",
			Code:    "SMTP002",
		},
	},
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Could not reach the mail server",
			Action:  "Check EMAIL_HOST and EMAIL_PORT and your network connection",
			Code:    "SMTP003",
		},
	},
	{
		pattern: "credentials not configured",
		msg: UserMessage{
			Message: "Mail credentials are not configured",
			Action:  "Set EMAIL_USER and EMAIL_PASSWORD in the environment or .env file",
			Code:    "SMTP004",
		},
	},
}

// defaultMessage is the fallback when no pattern matches.
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error into a user-friendly message with a
// support code. The original error should still be logged server-side.
func MapError(err error) UserMessage {
	if err == nil {
		return defaultMessage
	}
	lower := strings.ToLower(err.Error())
	for _, p := range errorPatterns {
		if strings.Contains(lower, p.pattern) {
			return p.msg
		}
	}
	return defaultMessage
}
