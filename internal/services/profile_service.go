package services

import (
	"strconv"
	"strings"

	"github.com/franciscosanchezn/little-lemon-app/internal/kvstore"
	"github.com/franciscosanchezn/little-lemon-app/internal/models"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Key-value store keys. The flat namespace is a fixed set of named keys;
// booleans are encoded as the literal strings "true"/"false".
const (
	keyIsLoggedIn            = "isloggedin"
	keyName                  = "name"
	keyFirstName             = "firstName"
	keyLastName              = "lastName"
	keyEmail                 = "email"
	keyPhone                 = "phone"
	keyAvatarURL             = "avatarUrl"
	keyNotifyOrderStatuses   = "emailNotifications_status"
	keyNotifyPasswordChanges = "emailNotifications_passwordReset"
	keyNotifySpecialOffers   = "emailNotifications_specialOffers"
	keyNotifyNewsletter      = "emailNotifications_newsletter"
	keyDatabaseSeeded        = "databaseSeeded"
)

// ProfileService owns session and profile state on top of the key-value store
type ProfileService interface {
	// IsLoggedIn reports whether a persisted session exists
	IsLoggedIn() bool
	// CompleteOnboarding validates and persists the initial name/email,
	// derives first/last name and marks the session as logged in
	CompleteOnboarding(name, email string) error
	// LoadProfile reads every profile field; missing fields default to
	// zero values instead of failing the load
	LoadProfile() (models.Profile, error)
	// SaveProfile writes every provided field; partial failures are not
	// rolled back, each key write is independent
	SaveProfile(profile models.Profile) error
	// Logout clears the entire key-value store and ends the session
	Logout() error
}

type profileService struct {
	kv kvstore.Store
}

// NewProfileService creates a new instance of ProfileService
func NewProfileService(kv kvstore.Store) ProfileService {
	return &profileService{kv: kv}
}

func (s *profileService) IsLoggedIn() bool {
	value, err := s.kv.Get(keyIsLoggedIn)
	if err != nil {
		log.WithError(err).Error("Failed to read login flag")
		return false
	}
	return value == "true"
}

func (s *profileService) CompleteOnboarding(name, email string) error {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	if name == "" {
		return models.NewFieldError("name", "name is required")
	}
	if email == "" {
		return models.NewFieldError("email", "email is required")
	}
	if !strings.Contains(email, "@") {
		return models.NewFieldError("email", "email must be a valid email address")
	}

	firstName, lastName := splitName(name)

	// The login flag is written last so a partial failure never leaves a
	// logged-in session without its profile fields
	writes := []struct {
		key   string
		value string
	}{
		{keyName, name},
		{keyFirstName, firstName},
		{keyLastName, lastName},
		{keyEmail, email},
		{keyIsLoggedIn, "true"},
	}
	for _, w := range writes {
		if err := s.kv.Set(w.key, w.value); err != nil {
			log.WithFields(log.Fields{"key": w.key, "error": err.Error()}).Error("Failed to persist onboarding data")
			return err
		}
	}

	log.WithField("email", email).Info("Onboarding completed")
	return nil
}

// splitName derives first and last name from the full name: everything
// before the first space is the first name, everything after it (internal
// spaces included) is the last name. No space means no last name.
func splitName(name string) (string, string) {
	first, last, found := strings.Cut(name, " ")
	if !found {
		return name, ""
	}
	return first, last
}

func (s *profileService) LoadProfile() (models.Profile, error) {
	var profile models.Profile

	// The keys are disjoint, so the reads can fan out safely
	var g errgroup.Group
	g.Go(func() error { return s.readString(keyFirstName, &profile.FirstName) })
	g.Go(func() error { return s.readString(keyLastName, &profile.LastName) })
	g.Go(func() error { return s.readString(keyEmail, &profile.Email) })
	g.Go(func() error { return s.readString(keyPhone, &profile.Phone) })
	g.Go(func() error { return s.readString(keyAvatarURL, &profile.AvatarURL) })
	g.Go(func() error { return s.readBool(keyNotifyOrderStatuses, &profile.Notifications.OrderStatuses) })
	g.Go(func() error { return s.readBool(keyNotifyPasswordChanges, &profile.Notifications.PasswordChanges) })
	g.Go(func() error { return s.readBool(keyNotifySpecialOffers, &profile.Notifications.SpecialOffers) })
	g.Go(func() error { return s.readBool(keyNotifyNewsletter, &profile.Notifications.Newsletter) })

	if err := g.Wait(); err != nil {
		log.WithError(err).Error("Failed to load profile")
		return profile, err
	}
	return profile, nil
}

func (s *profileService) SaveProfile(profile models.Profile) error {
	var g errgroup.Group
	g.Go(func() error { return s.kv.Set(keyFirstName, profile.FirstName) })
	g.Go(func() error { return s.kv.Set(keyLastName, profile.LastName) })
	g.Go(func() error { return s.kv.Set(keyEmail, profile.Email) })
	g.Go(func() error { return s.kv.Set(keyPhone, profile.Phone) })
	g.Go(func() error { return s.kv.Set(keyAvatarURL, profile.AvatarURL) })
	g.Go(func() error {
		return s.kv.Set(keyNotifyOrderStatuses, strconv.FormatBool(profile.Notifications.OrderStatuses))
	})
	g.Go(func() error {
		return s.kv.Set(keyNotifyPasswordChanges, strconv.FormatBool(profile.Notifications.PasswordChanges))
	})
	g.Go(func() error {
		return s.kv.Set(keyNotifySpecialOffers, strconv.FormatBool(profile.Notifications.SpecialOffers))
	})
	g.Go(func() error {
		return s.kv.Set(keyNotifyNewsletter, strconv.FormatBool(profile.Notifications.Newsletter))
	})

	if err := g.Wait(); err != nil {
		log.WithError(err).Error("Failed to save profile")
		return err
	}
	log.Info("Profile saved")
	return nil
}

func (s *profileService) Logout() error {
	if err := s.kv.ClearAll(); err != nil {
		log.WithError(err).Error("Failed to clear session data")
		return err
	}
	log.Info("Session cleared")
	return nil
}

// readString reads a key into dst, treating an absent key as empty
func (s *profileService) readString(key string, dst *string) error {
	value, err := s.kv.Get(key)
	if err != nil {
		return err
	}
	*dst = value
	return nil
}

// readBool reads a "true"/"false" encoded key into dst, defaulting to false
func (s *profileService) readBool(key string, dst *bool) error {
	value, err := s.kv.Get(key)
	if err != nil {
		return err
	}
	*dst = value == "true"
	return nil
}
