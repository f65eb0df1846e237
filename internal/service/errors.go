package service

import "errors"

// Service layer errors. Chain, account and governance failures keep their
// own sentinels and are wrapped, so handlers match them with errors.Is.

// ===== Guild Errors =====
var (
	ErrGuildNotFound = errors.New("guild not found")
)

// ===== Submission Errors =====
var (
	ErrSubmissionNotFound = errors.New("submission not found")
)
