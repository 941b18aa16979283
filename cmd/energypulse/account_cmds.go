package main

import (
	"fmt"

	"github.com/goodnatureofminers/energypulse/internal/model"
)

type loginCmd struct {
	app      *app
	Email    string `long:"email" env:"ENERGYPULSE_EMAIL" description:"account email" required:"true"`
	Password string `long:"password" env:"ENERGYPULSE_PASSWORD" description:"account password" required:"true"`
}

func (c *loginCmd) Execute([]string) error {
	u, err := c.app.account.Login(c.app.ctx, c.Email, c.Password)
	if err != nil {
		return explain(err, "Invalid email or password. Please try again.")
	}
	fmt.Fprintf(c.app.out, "Signed in as %s (%s)\n", u.DisplayName(), u.Role)
	return nil
}

type registerCmd struct {
	app       *app
	Username  string  `long:"username" required:"true"`
	Email     string  `long:"email" required:"true"`
	Password  string  `long:"password" env:"ENERGYPULSE_PASSWORD" required:"true"`
	FirstName string  `long:"first-name"`
	LastName  string  `long:"last-name"`
	Phone     string  `long:"phone"`
	HouseName string  `long:"house-name" required:"true"`
	Address   string  `long:"address"`
	City      string  `long:"city" required:"true"`
	Region    string  `long:"region"`
	Country   string  `long:"country" default:"Italia"`
	Members   int     `long:"members" default:"2"`
	Heating   string  `long:"heating" choice:"natural_gas" choice:"electric" choice:"heat_pump" choice:"biomass" default:"natural_gas"`
	AreaSqm   float64 `long:"area" default:"80"`
	YearBuilt int     `long:"year-built" default:"2000"`
}

func (c *registerCmd) Execute([]string) error {
	u, err := c.app.account.Register(c.app.ctx, model.RegisterRequest{
		Username:    c.Username,
		Password:    c.Password,
		Email:       c.Email,
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		Phone:       c.Phone,
		HouseName:   c.HouseName,
		Address:     c.Address,
		City:        c.City,
		Region:      c.Region,
		Country:     c.Country,
		Members:     c.Members,
		HeatingType: model.HeatingType(c.Heating),
		AreaSqm:     c.AreaSqm,
		YearBuilt:   c.YearBuilt,
	})
	if err != nil {
		return explain(err, "Registration failed")
	}
	fmt.Fprintf(c.app.out, "Welcome, %s\n", u.DisplayName())
	return nil
}

type logoutCmd struct {
	app *app
}

func (c *logoutCmd) Execute([]string) error {
	if err := c.app.account.Logout(c.app.ctx); err != nil {
		return err
	}
	fmt.Fprintln(c.app.out, "Signed out")
	return nil
}

type whoamiCmd struct {
	app     *app
	Offline bool `long:"offline" description:"show the stored identity without asking the server"`
}

func (c *whoamiCmd) Execute([]string) error {
	if err := c.app.requireSession(); err != nil {
		return err
	}
	var (
		u   model.User
		err error
	)
	if c.Offline {
		u, _ = c.app.account.CurrentUser()
	} else if u, err = c.app.account.Whoami(c.app.ctx); err != nil {
		return explain(err, "Failed to load profile")
	}
	w := newTable(c.app.out)
	fmt.Fprintf(w, "ID\t%d\n", u.ID)
	fmt.Fprintf(w, "Username\t%s\n", u.Username)
	fmt.Fprintf(w, "Name\t%s\n", u.DisplayName())
	fmt.Fprintf(w, "Email\t%s\n", u.Email)
	fmt.Fprintf(w, "Phone\t%s\n", u.Phone)
	fmt.Fprintf(w, "Role\t%s\n", u.Role)
	return w.Flush()
}

type refreshCmd struct {
	app *app
}

func (c *refreshCmd) Execute([]string) error {
	if err := c.app.account.Refresh(c.app.ctx); err != nil {
		return explain(err, "Token refresh failed")
	}
	fmt.Fprintln(c.app.out, "Session refreshed")
	return nil
}

type profileCmd struct {
	app       *app
	FirstName string `long:"first-name"`
	LastName  string `long:"last-name"`
	Email     string `long:"email"`
	Phone     string `long:"phone"`
	Avatar    string `long:"avatar"`
}

func (c *profileCmd) Execute([]string) error {
	if err := c.app.requireSession(); err != nil {
		return err
	}
	u, err := c.app.account.UpdateProfile(c.app.ctx, model.UpdateProfileRequest{
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Phone:     c.Phone,
		Avatar:    c.Avatar,
	})
	if err != nil {
		return explain(err, "Failed to update profile")
	}
	fmt.Fprintf(c.app.out, "Profile updated for %s\n", u.DisplayName())
	return nil
}

type passwordCmd struct {
	app     *app
	Current string `long:"current" env:"ENERGYPULSE_PASSWORD" required:"true"`
	New     string `long:"new" env:"ENERGYPULSE_NEW_PASSWORD" required:"true"`
}

func (c *passwordCmd) Execute([]string) error {
	if err := c.app.requireSession(); err != nil {
		return err
	}
	if err := c.app.account.ChangePassword(c.app.ctx, c.Current, c.New); err != nil {
		return explain(err, "Failed to change password")
	}
	fmt.Fprintln(c.app.out, "Password changed")
	return nil
}
