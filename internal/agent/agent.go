// Package agent defines the persona on whose behalf replies are generated,
// and the validation rules for creating and updating one.
package agent

import (
	"fmt"
	"net/mail"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Valid tones. Unset tone defaults to professional.
const (
	ToneProfessional = "professional"
	ToneFriendly     = "friendly"
	ToneCasual       = "casual"
	ToneFormal       = "formal"
	ToneEnthusiastic = "enthusiastic"
)

var validTones = map[string]bool{
	ToneProfessional: true,
	ToneFriendly:     true,
	ToneCasual:       true,
	ToneFormal:       true,
	ToneEnthusiastic: true,
}

const (
	DefaultTone     = ToneProfessional
	DefaultLanguage = "en"
)

// Agent is a configured persona: company identity, authorial contact,
// tone, language, and signature. Treated as a read-only snapshot for the
// duration of one workflow run.
type Agent struct {
	ID                uuid.UUID `json:"id"`
	UserID            uuid.UUID `json:"user_id"`
	Name              string    `json:"name"`
	Website           string    `json:"website,omitempty"`
	Description       string    `json:"description"`
	ContactPersonName string    `json:"contact_person_name,omitempty"`
	ContactEmail      string    `json:"contact_email,omitempty"`
	ContactPhone      string    `json:"contact_phone,omitempty"`
	Signature         string    `json:"signature,omitempty"`
	Tone              string    `json:"tone"`
	Language          string    `json:"language"`
	BusinessHours     string    `json:"business_hours,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// CreateCommand carries the fields for a new agent. Optional fields left
// empty stay empty; Tone and Language get defaults on apply.
type CreateCommand struct {
	Name              string `json:"name"`
	Website           string `json:"website"`
	Description       string `json:"description"`
	ContactPersonName string `json:"contact_person_name"`
	ContactEmail      string `json:"contact_email"`
	ContactPhone      string `json:"contact_phone"`
	Signature         string `json:"signature"`
	Tone              string `json:"tone"`
	Language          string `json:"language"`
	BusinessHours     string `json:"business_hours"`
}

// UpdateCommand carries a partial update. Nil pointers mean "leave as-is".
type UpdateCommand struct {
	Name              *string `json:"name"`
	Website           *string `json:"website"`
	Description       *string `json:"description"`
	ContactPersonName *string `json:"contact_person_name"`
	ContactEmail      *string `json:"contact_email"`
	ContactPhone      *string `json:"contact_phone"`
	Signature         *string `json:"signature"`
	Tone              *string `json:"tone"`
	Language          *string `json:"language"`
	BusinessHours     *string `json:"business_hours"`
}

// Validate checks a create command against the agent field rules.
func (c CreateCommand) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("agent name is required")
	}
	if len(c.Name) > 255 {
		return fmt.Errorf("agent name must be less than 255 characters")
	}
	if strings.TrimSpace(c.Description) == "" {
		return fmt.Errorf("description is required")
	}
	if c.Website != "" {
		if err := validateURL(c.Website); err != nil {
			return err
		}
	}
	if len(c.ContactPersonName) > 255 {
		return fmt.Errorf("contact person name must be less than 255 characters")
	}
	if c.ContactEmail != "" {
		if _, err := mail.ParseAddress(c.ContactEmail); err != nil {
			return fmt.Errorf("invalid contact email format")
		}
	}
	if len(c.ContactPhone) > 50 {
		return fmt.Errorf("phone number must be less than 50 characters")
	}
	if c.Tone != "" && !validTones[c.Tone] {
		return fmt.Errorf("tone must be one of: professional, friendly, casual, formal, enthusiastic")
	}
	if c.Language != "" && len(c.Language) != 2 {
		return fmt.Errorf("language must be a 2-letter ISO code")
	}
	if len(c.BusinessHours) > 255 {
		return fmt.Errorf("business hours must be less than 255 characters")
	}
	return nil
}

// Validate checks an update command; only set fields are checked.
func (c UpdateCommand) Validate() error {
	if c.Name != nil {
		if strings.TrimSpace(*c.Name) == "" {
			return fmt.Errorf("agent name is required")
		}
		if len(*c.Name) > 255 {
			return fmt.Errorf("agent name must be less than 255 characters")
		}
	}
	if c.Description != nil && strings.TrimSpace(*c.Description) == "" {
		return fmt.Errorf("description is required")
	}
	if c.Website != nil && *c.Website != "" {
		if err := validateURL(*c.Website); err != nil {
			return err
		}
	}
	if c.ContactPersonName != nil && len(*c.ContactPersonName) > 255 {
		return fmt.Errorf("contact person name must be less than 255 characters")
	}
	if c.ContactEmail != nil && *c.ContactEmail != "" {
		if _, err := mail.ParseAddress(*c.ContactEmail); err != nil {
			return fmt.Errorf("invalid contact email format")
		}
	}
	if c.ContactPhone != nil && len(*c.ContactPhone) > 50 {
		return fmt.Errorf("phone number must be less than 50 characters")
	}
	if c.Tone != nil && *c.Tone != "" && !validTones[*c.Tone] {
		return fmt.Errorf("tone must be one of: professional, friendly, casual, formal, enthusiastic")
	}
	if c.Language != nil && *c.Language != "" && len(*c.Language) != 2 {
		return fmt.Errorf("language must be a 2-letter ISO code")
	}
	if c.BusinessHours != nil && len(*c.BusinessHours) > 255 {
		return fmt.Errorf("business hours must be less than 255 characters")
	}
	return nil
}

// Apply builds an Agent from a create command, filling defaults.
func (c CreateCommand) Apply(userID uuid.UUID) Agent {
	tone := c.Tone
	if tone == "" {
		tone = DefaultTone
	}
	lang := c.Language
	if lang == "" {
		lang = DefaultLanguage
	}
	return Agent{
		ID:                uuid.New(),
		UserID:            userID,
		Name:              c.Name,
		Website:           c.Website,
		Description:       c.Description,
		ContactPersonName: c.ContactPersonName,
		ContactEmail:      c.ContactEmail,
		ContactPhone:      c.ContactPhone,
		Signature:         c.Signature,
		Tone:              tone,
		Language:          lang,
		BusinessHours:     c.BusinessHours,
	}
}

// Apply overlays an update command on an existing agent.
func (c UpdateCommand) Apply(a Agent) Agent {
	if c.Name != nil {
		a.Name = *c.Name
	}
	if c.Website != nil {
		a.Website = *c.Website
	}
	if c.Description != nil {
		a.Description = *c.Description
	}
	if c.ContactPersonName != nil {
		a.ContactPersonName = *c.ContactPersonName
	}
	if c.ContactEmail != nil {
		a.ContactEmail = *c.ContactEmail
	}
	if c.ContactPhone != nil {
		a.ContactPhone = *c.ContactPhone
	}
	if c.Signature != nil {
		a.Signature = *c.Signature
	}
	if c.Tone != nil {
		a.Tone = *c.Tone
	}
	if c.Language != nil {
		a.Language = *c.Language
	}
	if c.BusinessHours != nil {
		a.BusinessHours = *c.BusinessHours
	}
	return a
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid website URL")
	}
	return nil
}
