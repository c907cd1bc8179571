package services

import (
	"testing"

	"github.com/franciscosanchezn/little-lemon-app/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupProfileService(t *testing.T) (ProfileService, *profileService) {
	kv := setupTestKV(t)
	service := NewProfileService(kv)
	return service, service.(*profileService)
}

func TestCompleteOnboardingSplitsName(t *testing.T) {
	testCases := []struct {
		name          string
		fullName      string
		wantFirstName string
		wantLastName  string
	}{
		{
			name:          "first and last name",
			fullName:      "Ada Lovelace",
			wantFirstName: "Ada",
			wantLastName:  "Lovelace",
		},
		{
			name:          "single name has no last name",
			fullName:      "Plato",
			wantFirstName: "Plato",
			wantLastName:  "",
		},
		{
			name:          "internal spaces stay in the last name",
			fullName:      "Ada King Lovelace",
			wantFirstName: "Ada",
			wantLastName:  "King Lovelace",
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			service, _ := setupProfileService(t)

			require.NoError(t, service.CompleteOnboarding(tt.fullName, "a@b.com"))

			profile, err := service.LoadProfile()
			require.NoError(t, err)
			assert.Equal(t, tt.wantFirstName, profile.FirstName)
			assert.Equal(t, tt.wantLastName, profile.LastName)
			assert.Equal(t, "a@b.com", profile.Email)
			assert.True(t, service.IsLoggedIn())
		})
	}
}

func TestCompleteOnboardingValidation(t *testing.T) {
	testCases := []struct {
		name      string
		fullName  string
		email     string
		wantField string
	}{
		{name: "empty name", fullName: "", email: "a@b.com", wantField: "name"},
		{name: "blank name", fullName: "   ", email: "a@b.com", wantField: "name"},
		{name: "empty email", fullName: "Ada", email: "", wantField: "email"},
		{name: "email without at sign", fullName: "Ada", email: "not-an-email", wantField: "email"},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			service, impl := setupProfileService(t)

			err := service.CompleteOnboarding(tt.fullName, tt.email)
			require.Error(t, err)

			fieldErr, ok := err.(*models.FieldError)
			require.True(t, ok, "expected a FieldError, got %T", err)
			assert.Equal(t, tt.wantField, fieldErr.Field)

			// Nothing may be written on a validation failure
			for _, key := range []string{keyName, keyFirstName, keyLastName, keyEmail, keyIsLoggedIn} {
				value, err := impl.kv.Get(key)
				require.NoError(t, err)
				assert.Equal(t, "", value, "key %s must stay unset", key)
			}
			assert.False(t, service.IsLoggedIn())
		})
	}
}

func TestIsLoggedInRequiresLiteralTrue(t *testing.T) {
	service, impl := setupProfileService(t)

	assert.False(t, service.IsLoggedIn())

	require.NoError(t, impl.kv.Set(keyIsLoggedIn, "yes"))
	assert.False(t, service.IsLoggedIn())

	require.NoError(t, impl.kv.Set(keyIsLoggedIn, "true"))
	assert.True(t, service.IsLoggedIn())
}

func TestLoadProfileDefaultsMissingFields(t *testing.T) {
	service, impl := setupProfileService(t)

	// Only a subset of keys exists
	require.NoError(t, impl.kv.Set(keyFirstName, "Ada"))
	require.NoError(t, impl.kv.Set(keyNotifyNewsletter, "true"))

	profile, err := service.LoadProfile()
	require.NoError(t, err)

	assert.Equal(t, "Ada", profile.FirstName)
	assert.Equal(t, "", profile.LastName)
	assert.Equal(t, "", profile.Email)
	assert.Equal(t, "", profile.Phone)
	assert.Equal(t, "", profile.AvatarURL)
	assert.False(t, profile.Notifications.OrderStatuses)
	assert.False(t, profile.Notifications.PasswordChanges)
	assert.False(t, profile.Notifications.SpecialOffers)
	assert.True(t, profile.Notifications.Newsletter)
}

func TestSaveAndLoadProfileRoundTrip(t *testing.T) {
	service, _ := setupProfileService(t)

	saved := models.Profile{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@littlelemon.com",
		Phone:     "555-0100",
		AvatarURL: "https://example.com/ada.png",
		Notifications: models.NotificationPrefs{
			OrderStatuses: true,
			SpecialOffers: true,
		},
	}
	require.NoError(t, service.SaveProfile(saved))

	loaded, err := service.LoadProfile()
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)
}

func TestLogoutClearsSession(t *testing.T) {
	service, _ := setupProfileService(t)

	require.NoError(t, service.CompleteOnboarding("Ada Lovelace", "ada@littlelemon.com"))
	require.True(t, service.IsLoggedIn())

	require.NoError(t, service.Logout())

	assert.False(t, service.IsLoggedIn())

	profile, err := service.LoadProfile()
	require.NoError(t, err)
	assert.Equal(t, models.Profile{}, profile)
}
