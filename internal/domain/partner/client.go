package partner

import (
	"regexp"
	"strings"

	"github.com/orderbill/backend/internal/domain/shared"
)

var usernamePattern = regexp.MustCompile(`^[a-z0-9_.-]{3,50}$`)

// Client represents a billed customer account.
// The username is the stable external identifier and must be unique.
type Client struct {
	shared.BaseEntity
	Username    string `gorm:"type:varchar(50);not null;uniqueIndex"`
	CompanyName string `gorm:"type:varchar(200);not null"`
	ContactName string `gorm:"type:varchar(100)"`
	Phone       string `gorm:"type:varchar(30)"`
	Email       string `gorm:"type:varchar(200)"`
	Address     string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Client) TableName() string {
	return "clients"
}

// NewClient creates a new client account
func NewClient(username, companyName string) (*Client, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if !usernamePattern.MatchString(username) {
		return nil, shared.NewDomainError("INVALID_INPUT",
			"Username must be 3-50 characters of lowercase letters, digits, dot, dash or underscore")
	}
	companyName = strings.TrimSpace(companyName)
	if companyName == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Company name cannot be empty")
	}

	return &Client{
		BaseEntity:  shared.NewBaseEntity(),
		Username:    username,
		CompanyName: companyName,
	}, nil
}

// Update updates the client's profile fields. The username is immutable.
func (c *Client) Update(companyName, contactName, phone, email, address string) error {
	companyName = strings.TrimSpace(companyName)
	if companyName == "" {
		return shared.NewDomainError("INVALID_INPUT", "Company name cannot be empty")
	}

	c.CompanyName = companyName
	c.ContactName = contactName
	c.Phone = phone
	c.Email = email
	c.Address = address
	c.Touch()
	return nil
}
