package models

import "errors"

var (
	// ErrQuotaExceeded means the tier-based attempt-creation limit was hit.
	// Recoverable by upgrading the membership, not by retrying.
	ErrQuotaExceeded = errors.New("attempt limit reached for membership tier")

	// ErrAttemptCompleted rejects any mutation of a finalized attempt.
	ErrAttemptCompleted = errors.New("attempt is already completed")

	// ErrForeignAttempt rejects access to another user's attempt.
	ErrForeignAttempt = errors.New("attempt belongs to another user")

	// ErrChoiceMismatch rejects a submission referencing a choice that does
	// not belong to the stated question. Fails closed, never substitutes.
	ErrChoiceMismatch = errors.New("choice does not belong to question")

	// ErrAttemptNotCompleted rejects result access before completion.
	ErrAttemptNotCompleted = errors.New("attempt is not completed yet")

	ErrAttemptNotFound  = errors.New("attempt not found")
	ErrSurveyNotFound   = errors.New("survey not found")
	ErrQuestionNotFound = errors.New("question not found")
	ErrAnswerNotFound   = errors.New("answer not found")
	ErrFileTooLarge     = errors.New("file exceeds the maximum allowed size")
)
