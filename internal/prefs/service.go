// Package prefs persists the small set of client flags the two sites keep
// between visits: admin session markers, foundation tokens, the welcome
// audio toggle and the dismissed install prompt. Flags are read once at
// startup and kept in memory; writes go to the store first.
package prefs

import (
	"context"
	"strconv"
	"sync"

	"go.uber.org/multierr"

	pkgerrors "github.com/kuhabites/kuha-web/pkg/errors"
)

const (
	KeyIsAdmin                = "isAdmin"
	KeyAdminUsername          = "adminUsername"
	KeyAccessToken            = "accessToken"
	KeyRefreshToken           = "refreshToken"
	KeyAudioEnabled           = "imarika-audio-enabled"
	KeyInstallPromptDismissed = "installPromptDismissed"
)

// Keys lists every persisted key.
var Keys = []string{
	KeyIsAdmin,
	KeyAdminUsername,
	KeyAccessToken,
	KeyRefreshToken,
	KeyAudioEnabled,
	KeyInstallPromptDismissed,
}

// Flags is the in-memory copy of the persisted keys.
type Flags struct {
	StorefrontAdmin        bool
	AdminUsername          string
	AccessToken            string
	RefreshToken           string
	AudioEnabled           bool
	InstallPromptDismissed bool
}

// Public is the view of Flags safe to hand to a browser: tokens are reduced
// to a signed-in marker.
type Public struct {
	StorefrontAdmin        bool   `json:"storefront_admin"`
	AdminUsername          string `json:"admin_username,omitempty"`
	FoundationSignedIn     bool   `json:"foundation_signed_in"`
	AudioEnabled           bool   `json:"audio_enabled"`
	InstallPromptDismissed bool   `json:"install_prompt_dismissed"`
}

func (f Flags) Public() Public {
	return Public{
		StorefrontAdmin:        f.StorefrontAdmin,
		AdminUsername:          f.AdminUsername,
		FoundationSignedIn:     f.AccessToken != "",
		AudioEnabled:           f.AudioEnabled,
		InstallPromptDismissed: f.InstallPromptDismissed,
	}
}

func (f *Flags) apply(key, value string, present bool) {
	switch key {
	case KeyIsAdmin:
		f.StorefrontAdmin = present && value == "true"
	case KeyAdminUsername:
		f.AdminUsername = value
	case KeyAccessToken:
		f.AccessToken = value
	case KeyRefreshToken:
		f.RefreshToken = value
	case KeyAudioEnabled:
		// audio plays unless explicitly turned off
		f.AudioEnabled = !present || value != "false"
	case KeyInstallPromptDismissed:
		f.InstallPromptDismissed = present && value != "" && value != "false"
	}
}

type Service struct {
	store Store
	mu    sync.RWMutex
	flags Flags
}

// Load reads every key from store once and returns the service holding them.
func Load(ctx context.Context, store Store) (*Service, error) {
	if store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "prefs store is required")
	}
	var flags Flags
	for _, key := range Keys {
		value, ok, err := store.Get(ctx, key)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load preference "+key)
		}
		flags.apply(key, value, ok)
	}
	return &Service{store: store, flags: flags}, nil
}

// Flags returns a copy of the current flags.
func (s *Service) Flags() Flags {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.flags
}

// AccessToken returns the stored foundation access token, or "".
func (s *Service) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.flags.AccessToken
}

func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

func (s *Service) SetAudioEnabled(ctx context.Context, enabled bool) error {
	return s.set(ctx, map[string]string{KeyAudioEnabled: strconv.FormatBool(enabled)})
}

func (s *Service) DismissInstallPrompt(ctx context.Context) error {
	return s.set(ctx, map[string]string{KeyInstallPromptDismissed: "true"})
}

func (s *Service) SetStorefrontAdmin(ctx context.Context, username string) error {
	return s.set(ctx, map[string]string{
		KeyIsAdmin:       "true",
		KeyAdminUsername: username,
	})
}

func (s *Service) ClearStorefrontAdmin(ctx context.Context) error {
	return s.clear(ctx, KeyIsAdmin, KeyAdminUsername)
}

func (s *Service) SetFoundationTokens(ctx context.Context, access, refresh string) error {
	return s.set(ctx, map[string]string{
		KeyAccessToken:  access,
		KeyRefreshToken: refresh,
	})
}

func (s *Service) ClearFoundationTokens(ctx context.Context) error {
	return s.clear(ctx, KeyAccessToken, KeyRefreshToken)
}

func (s *Service) set(ctx context.Context, values map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var err error
	if len(values) == 1 {
		for key, value := range values {
			err = s.store.Set(ctx, key, value)
		}
	} else {
		err = s.store.SetMany(ctx, values)
	}
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save preferences")
	}
	for key, value := range values {
		s.flags.apply(key, value, true)
	}
	return nil
}

// clear deletes every key, attempting all of them even when one fails.
func (s *Service) clear(ctx context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var errs error
	for _, key := range keys {
		if err := s.store.Delete(ctx, key); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		s.flags.apply(key, "", false)
	}
	if errs != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, errs, "clear preferences")
	}
	return nil
}
