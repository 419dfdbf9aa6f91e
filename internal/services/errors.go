// Package services holds the business rules that sit between the HTTP
// handlers and the Store / LLM gateway: username uniqueness and hashing,
// mood validation, day resolution for self-care checklists, the chat
// exchange, and quotes.
//
// This file centralizes service-level error values so that handlers can map
// them to HTTP results consistently.
package services

import "errors"

// User errors.
var (
	// ErrInvalidUsername is returned when a username is empty after normalization.
	ErrInvalidUsername = errors.New("username is empty")

	// ErrUsernameTaken is returned when another account already uses the username.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrUserNotFound indicates that the requested user does not exist.
	ErrUserNotFound = errors.New("user not found")
)

// Mood and community board errors.
var (
	// ErrInvalidMood is returned for a mood outside the fixed set.
	ErrInvalidMood = errors.New("invalid mood")

	// ErrEmptyContent is returned when a post has no visible content.
	ErrEmptyContent = errors.New("content is empty")

	// ErrPostNotFound indicates that the requested thought post does not exist.
	ErrPostNotFound = errors.New("thought post not found")
)

// Self-care errors.
var (
	// ErrChecklistNotFound indicates there is no checklist for the id or day.
	ErrChecklistNotFound = errors.New("self-care checklist not found")
)

// Chat errors.
var (
	// ErrConversationNotFound indicates the user has no conversation yet.
	ErrConversationNotFound = errors.New("conversation not found")

	// ErrEmptyMessage is returned when a send request carries neither a
	// message nor a message list.
	ErrEmptyMessage = errors.New("message is empty")

	// ErrInvalidRole is returned for a chat turn whose role is not
	// user, assistant or system.
	ErrInvalidRole = errors.New("invalid chat role")

	// ErrConcurrentSend is returned when another send updated the
	// conversation while this one waited for the model.
	ErrConcurrentSend = errors.New("conversation changed by a concurrent send")
)
