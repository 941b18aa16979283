package main

import (
	"errors"
	"fmt"
	"sort"

	"github.com/goodnatureofminers/energypulse/internal/dashboard"
	"github.com/goodnatureofminers/energypulse/internal/model"
	"github.com/goodnatureofminers/energypulse/pkg/safe"
)

func (a *app) requireAdmin() error {
	if err := a.requireSession(); err != nil {
		return err
	}
	if !a.isAdmin() {
		return errors.New("administrator access required")
	}
	return nil
}

func printAdminDashboard(a *app, d model.AdminDashboard) {
	w := newTable(a.out)
	fmt.Fprintf(w, "System health\t%s\n", d.SystemHealth)
	fmt.Fprintf(w, "Users\t%d\n", d.TotalUsers)
	fmt.Fprintf(w, "Households\t%d\n", d.TotalHouseholds)
	fmt.Fprintf(w, "Predictions\t%d\n", d.TotalPredictions)
	fmt.Fprintf(w, "Active sessions\t%d\n", d.ActiveSessions)
	fmt.Fprintf(w, "On ledger\t%d\n", d.BlockchainConfirmed)
	if d.SystemUptime != "" {
		fmt.Fprintf(w, "Uptime\t%s\n", d.SystemUptime)
	}
	services := make([]string, 0, len(d.ServiceStatus))
	for name := range d.ServiceStatus {
		services = append(services, name)
	}
	sort.Strings(services)
	for _, name := range services {
		fmt.Fprintf(w, "  %s\t%s\n", name, d.ServiceStatus[name])
	}
	_ = w.Flush()
}

type adminDashboardCmd struct {
	app *app
}

func (c *adminDashboardCmd) Execute([]string) error {
	if err := c.app.requireAdmin(); err != nil {
		return err
	}
	v := dashboard.NewAdmin(c.app.services.Admin, c.app.clock, c.app.logger)
	defer v.Close()

	d, err := v.Dashboard(c.app.ctx)
	if err != nil {
		return explain(err, "Failed to load admin dashboard")
	}
	printAdminDashboard(c.app, d)
	return nil
}

type adminUsersCmd struct {
	app *app
}

func (c *adminUsersCmd) Execute([]string) error {
	if err := c.app.requireAdmin(); err != nil {
		return err
	}
	v := dashboard.NewAdmin(c.app.services.Admin, c.app.clock, c.app.logger)
	defer v.Close()

	if err := v.LoadUsers(c.app.ctx); err != nil {
		return explain(err, v.Users().Error)
	}
	w := newTable(c.app.out)
	fmt.Fprintln(w, "ID\tUSERNAME\tNAME\tEMAIL\tROLE")
	for _, u := range v.Users().Items {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", u.ID, u.Username, u.DisplayName(), u.Email, u.Role)
	}
	return w.Flush()
}

type adminRoleCmd struct {
	app  *app
	ID   int64  `long:"id" required:"true" description:"user id"`
	Role string `long:"role" required:"true" choice:"admin" choice:"user"`
}

func (c *adminRoleCmd) Execute([]string) error {
	if err := c.app.requireAdmin(); err != nil {
		return err
	}
	id, err := safe.Uint(c.ID)
	if err != nil {
		return fmt.Errorf("invalid user id: %w", err)
	}
	v := dashboard.NewAdmin(c.app.services.Admin, c.app.clock, c.app.logger)
	defer v.Close()

	if err := v.LoadUsers(c.app.ctx); err != nil {
		return explain(err, v.Users().Error)
	}
	err = v.SetRole(c.app.ctx, id, model.Role(c.Role))
	if err == nil && v.Users().Message == "" {
		fmt.Fprintf(c.app.out, "User %d already has role %s\n", id, c.Role)
		return nil
	}
	return settle(c.app, v.Users(), err)
}

type adminToggleCmd struct {
	app *app
	ID  int64 `long:"id" required:"true" description:"user id"`
}

func (c *adminToggleCmd) Execute([]string) error {
	if err := c.app.requireAdmin(); err != nil {
		return err
	}
	id, err := safe.Uint(c.ID)
	if err != nil {
		return fmt.Errorf("invalid user id: %w", err)
	}
	v := dashboard.NewAdmin(c.app.services.Admin, c.app.clock, c.app.logger)
	defer v.Close()

	if err := v.LoadUsers(c.app.ctx); err != nil {
		return explain(err, v.Users().Error)
	}
	return settle(c.app, v.Users(), v.ToggleRole(c.app.ctx, id))
}
