package domain

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// emailPattern mirrors the form rule: no whitespace, exactly one @, at
// least one dot in the domain part.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type Client struct {
	ID        ID        `json:"id,omitempty"`
	Name      string    `json:"name"`
	Company   string    `json:"company,omitempty"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewClient creates a new client with required fields
func NewClient(name, email string) *Client {
	return &Client{
		Name:      strings.TrimSpace(name),
		Email:     strings.TrimSpace(email),
		CreatedAt: time.Now().UTC(),
	}
}

// Validate checks the form rules in order and returns the first violation.
func (c *Client) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("client name is required")
	}
	if strings.TrimSpace(c.Email) == "" {
		return errors.New("email address is required")
	}
	if !emailPattern.MatchString(strings.TrimSpace(c.Email)) {
		return errors.New("invalid email address")
	}
	if strings.TrimSpace(c.Phone) != "" {
		if len(digitsOnly(c.Phone)) != 10 {
			return errors.New("phone number must have 10 digits")
		}
	}
	return nil
}

// Normalize trims all string fields, lower-cases the email, and reduces the
// phone number to its bare digits. Call only after Validate has passed.
func (c *Client) Normalize() {
	c.Name = strings.TrimSpace(c.Name)
	c.Company = strings.TrimSpace(c.Company)
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	c.Phone = digitsOnly(c.Phone)
	c.Address = strings.TrimSpace(c.Address)
	c.Notes = strings.TrimSpace(c.Notes)
}

// digitsOnly strips everything but 0-9.
func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}
