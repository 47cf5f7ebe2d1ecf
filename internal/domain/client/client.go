package client

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Client is an external custodian keyed by its unique code.
type Client struct {
	id          uint
	code        string
	name        string
	cnpj        *string
	contactName *string
	phone       *string
	email       *string
	address     *string
	city        *string
	state       *string
	createdAt   time.Time
	updatedAt   time.Time
}

// Profile carries the mutable attributes. A nil field leaves the stored value untouched.
type Profile struct {
	Name        string
	CNPJ        *string
	ContactName *string
	Phone       *string
	Email       *string
	Address     *string
	City        *string
	State       *string
}

var (
	ErrMissingCode = errors.New("client code is required")
	ErrMissingName = errors.New("client name is required")
)

func NewClient(code string, p Profile, now time.Time) (*Client, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrMissingCode
	}
	if strings.TrimSpace(p.Name) == "" {
		return nil, ErrMissingName
	}
	c := &Client{code: code, createdAt: now}
	c.apply(p, now)
	return c, nil
}

func ReconstructClient(
	id uint,
	code, name string,
	cnpj, contactName, phone, email, address, city, state *string,
	createdAt, updatedAt time.Time,
) *Client {
	return &Client{
		id:          id,
		code:        code,
		name:        name,
		cnpj:        cnpj,
		contactName: contactName,
		phone:       phone,
		email:       email,
		address:     address,
		city:        city,
		state:       state,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (c *Client) ID() uint             { return c.id }
func (c *Client) Code() string         { return c.code }
func (c *Client) Name() string         { return c.name }
func (c *Client) CNPJ() *string        { return c.cnpj }
func (c *Client) ContactName() *string { return c.contactName }
func (c *Client) Phone() *string       { return c.phone }
func (c *Client) Email() *string       { return c.email }
func (c *Client) Address() *string     { return c.address }
func (c *Client) City() *string        { return c.city }
func (c *Client) State() *string       { return c.state }
func (c *Client) CreatedAt() time.Time { return c.createdAt }
func (c *Client) UpdatedAt() time.Time { return c.updatedAt }

func (c *Client) SetID(id uint) error {
	if c.id != 0 {
		return fmt.Errorf("client ID already set")
	}
	c.id = id
	return nil
}

// UpdateProfile replaces the name and every non-nil optional field.
func (c *Client) UpdateProfile(p Profile, now time.Time) error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrMissingName
	}
	c.apply(p, now)
	return nil
}

func (c *Client) apply(p Profile, now time.Time) {
	c.name = strings.TrimSpace(p.Name)
	setIfPresent(&c.cnpj, p.CNPJ)
	setIfPresent(&c.contactName, p.ContactName)
	setIfPresent(&c.phone, p.Phone)
	setIfPresent(&c.email, p.Email)
	setIfPresent(&c.address, p.Address)
	setIfPresent(&c.city, p.City)
	setIfPresent(&c.state, p.State)
	c.updatedAt = now
}

func setIfPresent(dst **string, v *string) {
	if v != nil {
		*dst = v
	}
}
