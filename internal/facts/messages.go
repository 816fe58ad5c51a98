package facts

// Text shown to the user. Tests and the terminal UI match on these.
const (
	PlaceholderText   = "No fact received."
	ErrorText         = "Oops! Something went wrong. Try again."
	StatusCheckConn   = "Please check your connection and try again."
	StatusCopied      = "Copied to clipboard!"
	StatusCopyFailed  = "Copy failed. Select the text to copy it manually."
	StatusShareCopied = "Fact copied — paste it to share!"
	StatusShareFailed = "Unable to share"

	ShareTitle    = "Did You Know?"
	PromptMessage = "Copy this fact to share it:"
)
