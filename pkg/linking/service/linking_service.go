package service

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrUsernameNotFound = errors.New("username not found")
	ErrAccountHijack    = errors.New("account already linked to a different phone")
)

type State int

const (
	Unlinked State = iota
	PendingUsername
	Linked
)

func (s State) String() string {
	switch s {
	case PendingUsername:
		return "pending_username"
	case Linked:
		return "linked"
	}
	return "unlinked"
}

type Kind int

const (
	KindAlreadyLinked Kind = iota
	KindPromptUsername
	KindPendingStarted
	KindUsernameNotFound
	KindRelinked
	KindLinked
	KindHijackRefused
)

// Outcome is the result of one linking step. Err carries the domain error
// for the refusal kinds.
type Outcome struct {
	Kind       Kind
	State      State
	FarmerID   string
	FarmerName string
	Err        error
}

// Reply renders the outcome for the farmer.
func (o Outcome) Reply() string {
	switch o.Kind {
	case KindAlreadyLinked:
		return fmt.Sprintf("Your phone is already linked to farmer %s.", o.FarmerID)
	case KindPromptUsername:
		return "Your phone is not linked to any account yet.\nPlease type your username to link your account."
	case KindPendingStarted:
		return "Hello! Your phone is not linked to an account yet.\nPlease type your username to link it."
	case KindUsernameNotFound:
		return "Username not found. Please check it and try again."
	case KindRelinked:
		return "Great! Your phone is now linked."
	case KindLinked:
		return fmt.Sprintf("Great, %s! Your phone is now linked.\nYou can now ask about your parcels.", o.FarmerName)
	case KindHijackRefused:
		return "This account is already linked to a different phone number."
	}
	return ""
}

// LinkingService resolves text from a phone that is not linked yet.
type LinkingService interface {
	Resolve(ctx context.Context, phone, text string) (Outcome, error)
}
