package main

import (
	"github.com/jessevdk/go-flags"
)

func registerCommands(p *flags.Parser, a *app) {
	add := func(parent interface {
		AddCommand(string, string, string, interface{}) (*flags.Command, error)
	}, name, short string, data interface{}) *flags.Command {
		cmd, err := parent.AddCommand(name, short, "", data)
		if err != nil {
			panic("register command " + name + ": " + err.Error())
		}
		return cmd
	}

	add(p, "login", "Sign in and store the session", &loginCmd{app: a})
	add(p, "register", "Create an account with its first household", &registerCmd{app: a})
	add(p, "logout", "Sign out and forget the stored session", &logoutCmd{app: a})
	add(p, "whoami", "Show the signed-in user", &whoamiCmd{app: a})
	add(p, "refresh", "Exchange the stored token for a fresh one", &refreshCmd{app: a})
	add(p, "profile", "Update profile fields", &profileCmd{app: a})
	add(p, "password", "Change the account password", &passwordCmd{app: a})
	add(p, "overview", "Show the dashboard summary", &overviewCmd{app: a})

	houses := add(p, "houses", "Manage households", &struct{}{})
	add(houses, "list", "List households", &housesListCmd{app: a})
	add(houses, "show", "Show one household with predictions and forecast", &housesShowCmd{app: a})
	add(houses, "add", "Register a household", &housesAddCmd{app: a})
	add(houses, "edit", "Change a household", &housesEditCmd{app: a})
	add(houses, "rm", "Archive a household", &housesRemoveCmd{app: a})

	add(p, "predictions", "Browse the prediction log", &predictionsCmd{app: a})
	add(p, "prediction", "Show one prediction", &predictionCmd{app: a})
	add(p, "stats", "Show prediction statistics", &statsCmd{app: a})

	ledger := add(p, "ledger", "Inspect the blockchain ledger", &struct{}{})
	add(ledger, "logs", "List ledger entries", &ledgerLogsCmd{app: a})
	add(ledger, "stats", "Show network statistics", &ledgerStatsCmd{app: a})
	add(ledger, "verify", "Verify transaction hashes", &ledgerVerifyCmd{app: a})
	add(ledger, "block", "Show the entries of a block", &ledgerBlockCmd{app: a})

	admin := add(p, "admin", "Administration", &struct{}{})
	add(admin, "dashboard", "Show the system snapshot", &adminDashboardCmd{app: a})
	add(admin, "users", "List users", &adminUsersCmd{app: a})
	add(admin, "role", "Set a user's role", &adminRoleCmd{app: a})
	add(admin, "toggle", "Flip a user between admin and user", &adminToggleCmd{app: a})

	add(p, "weather", "Show current weather for a city", &weatherCmd{app: a})
	add(p, "cities", "Search Italian cities", &citiesCmd{app: a})
}
