// Package session holds the per-user navigation state machine and the
// in-memory store that keeps it between requests. State is an explicit value
// passed into every transition and returned as its result; nothing here is
// process-global.
package session

import (
	"fmt"

	"github.com/wayfarer-app/wayfarer/internal/app/models"
)

// Page enumerates the navigation destinations.
type Page string

const (
	PageLogin            Page = "login"
	PageSignUp           Page = "signup"
	PageHome             Page = "home"
	PageMap              Page = "map"
	PageWeather          Page = "weather"
	PageRecentInfo       Page = "recent_info"
	PageAccommodations   Page = "accommodations"
	PageCafesRestaurants Page = "cafes_restaurants"
)

// Language is the response-language radio selection on the home page.
type Language string

const (
	LanguageEnglish Language = "English"
	LanguageSpanish Language = "Spanish"
	LanguageHindi   Language = "Hindi"
)

// Languages is the fixed option set offered to the user.
var Languages = []Language{LanguageEnglish, LanguageSpanish, LanguageHindi}

var validPages = map[Page]bool{
	PageLogin:            true,
	PageSignUp:           true,
	PageHome:             true,
	PageMap:              true,
	PageWeather:          true,
	PageRecentInfo:       true,
	PageAccommodations:   true,
	PageCafesRestaurants: true,
}

// State is the per-session navigation and auth context.
type State struct {
	Page          Page
	Authenticated bool
	UserID        int64
	Username      string

	// Transient form buffers.
	Query    string
	Image    []byte
	Language Language
}

// NewState returns the initial session state: the login page, unauthenticated.
func NewState() State {
	return State{Page: PageLogin, Language: LanguageEnglish}
}

// Navigate transitions to the selected page. Login and SignUp are always
// reachable; every other page requires an authenticated session. On a denied
// or invalid transition the input state is returned unchanged.
func Navigate(s State, target Page) (State, error) {
	if !validPages[target] {
		return s, fmt.Errorf("unknown page %q: %w", target, models.ErrValidation)
	}
	if target == PageLogin || target == PageSignUp {
		s.Page = target
		return s, nil
	}
	if !s.Authenticated {
		return s, fmt.Errorf("page %q requires login: %w", target, models.ErrUnauthenticated)
	}
	s.Page = target
	return s, nil
}

// LoginSucceeded marks the session authenticated and moves it to Home.
func LoginSucceeded(s State, userID int64, username string) State {
	s.Authenticated = true
	s.UserID = userID
	s.Username = username
	s.Page = PageHome
	return s
}

// SignUpSucceeded returns the session to the login page. Signing up does not
// log the user in.
func SignUpSucceeded(s State) State {
	s.Page = PageLogin
	return s
}

// ParseLanguage maps a form value to a Language, defaulting to English for
// anything outside the fixed option set.
func ParseLanguage(v string) Language {
	switch Language(v) {
	case LanguageSpanish:
		return LanguageSpanish
	case LanguageHindi:
		return LanguageHindi
	default:
		return LanguageEnglish
	}
}
