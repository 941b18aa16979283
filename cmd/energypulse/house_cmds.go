package main

import (
	"fmt"

	"github.com/goodnatureofminers/energypulse/internal/dashboard"
	"github.com/goodnatureofminers/energypulse/internal/model"
)

func (a *app) housesView() *dashboard.Houses {
	return dashboard.NewHouses(a.services.Houses, a.sessions, a.clock, a.logger)
}

type housesListCmd struct {
	app *app
}

func (c *housesListCmd) Execute([]string) error {
	if err := c.app.requireSession(); err != nil {
		return err
	}
	v := c.app.housesView()
	defer v.Close()

	if err := v.Load(c.app.ctx); err != nil {
		return explain(err, v.State().Error)
	}
	houses := v.State().Items
	if len(houses) == 0 {
		fmt.Fprintln(c.app.out, "No properties registered")
		return nil
	}

	owners := v.ShowOwners()
	w := newTable(c.app.out)
	if owners {
		fmt.Fprintln(w, "ID\tNAME\tCITY\tMETER\tSTATUS\tOWNER\tEMAIL")
	} else {
		fmt.Fprintln(w, "ID\tNAME\tCITY\tMETER\tSTATUS")
	}
	for _, h := range houses {
		if owners {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				h.ID, h.HouseName, h.City, h.MeterID, h.Status, orDash(h.OwnerName), orDash(h.UserEmail))
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", h.ID, h.HouseName, h.City, h.MeterID, h.Status)
	}
	return w.Flush()
}

type housesShowCmd struct {
	app  *app
	Args struct {
		ID string `positional-arg-name:"id" required:"true"`
	} `positional-args:"true"`
}

func (c *housesShowCmd) Execute([]string) error {
	if err := c.app.requireSession(); err != nil {
		return err
	}
	v := c.app.housesView()
	defer v.Close()

	d, err := v.Details(c.app.ctx, c.app.services.Predictions, c.Args.ID)
	if err != nil {
		return explain(err, "Failed to load property")
	}
	h := d.House
	w := newTable(c.app.out)
	fmt.Fprintf(w, "Name\t%s\n", h.HouseName)
	fmt.Fprintf(w, "Address\t%s, %s (%s) %s\n", orDash(h.Address), h.City, orDash(h.Region), h.Country)
	fmt.Fprintf(w, "Meter\t%s\n", h.MeterID)
	fmt.Fprintf(w, "Members\t%d\n", h.Members)
	fmt.Fprintf(w, "Heating\t%s\n", h.HeatingType)
	fmt.Fprintf(w, "Area\t%.0f m²\n", h.AreaSqm)
	fmt.Fprintf(w, "Built\t%d\n", h.YearBuilt)
	fmt.Fprintf(w, "Status\t%s\n", h.Status)
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(c.app.out, "\nNext 24 hours")
	if err := printPredictions(c.app, d.Forecast); err != nil {
		return err
	}
	fmt.Fprintln(c.app.out, "\nLatest predictions")
	return printPredictions(c.app, d.Predictions)
}

// householdFlags are the editable fields. Unset flags keep the current value.
type householdFlags struct {
	HouseName *string  `long:"name" description:"house name"`
	Address   *string  `long:"address"`
	City      *string  `long:"city"`
	Region    *string  `long:"region"`
	Country   *string  `long:"country"`
	Members   *int     `long:"members"`
	Heating   *string  `long:"heating" choice:"natural_gas" choice:"electric" choice:"heat_pump" choice:"biomass"`
	AreaSqm   *float64 `long:"area"`
	YearBuilt *int     `long:"year-built"`
}

func (f householdFlags) apply(in model.HouseholdInput) model.HouseholdInput {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&in.HouseName, f.HouseName)
	set(&in.Address, f.Address)
	set(&in.City, f.City)
	set(&in.Region, f.Region)
	set(&in.Country, f.Country)
	if f.Members != nil {
		in.Members = *f.Members
	}
	if f.Heating != nil {
		in.HeatingType = model.HeatingType(*f.Heating)
	}
	if f.AreaSqm != nil {
		in.AreaSqm = *f.AreaSqm
	}
	if f.YearBuilt != nil {
		in.YearBuilt = *f.YearBuilt
	}
	return in
}

func inputOf(h model.Household) model.HouseholdInput {
	return model.HouseholdInput{
		HouseName:   h.HouseName,
		Address:     h.Address,
		City:        h.City,
		Region:      h.Region,
		Country:     h.Country,
		Members:     h.Members,
		HeatingType: h.HeatingType,
		AreaSqm:     h.AreaSqm,
		YearBuilt:   h.YearBuilt,
	}
}

type housesAddCmd struct {
	app *app
	householdFlags
}

func (c *housesAddCmd) Execute([]string) error {
	if err := c.app.requireSession(); err != nil {
		return err
	}
	v := c.app.housesView()
	defer v.Close()

	err := v.Create(c.app.ctx, c.apply(model.DefaultHouseholdInput()))
	return settle(c.app, v.State(), err)
}

type housesEditCmd struct {
	app  *app
	Args struct {
		ID string `positional-arg-name:"id" required:"true"`
	} `positional-args:"true"`
	householdFlags
}

func (c *housesEditCmd) Execute([]string) error {
	if err := c.app.requireSession(); err != nil {
		return err
	}
	v := c.app.housesView()
	defer v.Close()

	if err := v.Load(c.app.ctx); err != nil {
		return explain(err, v.State().Error)
	}
	var (
		current model.Household
		found   bool
	)
	for _, h := range v.State().Items {
		if h.ID == c.Args.ID {
			current, found = h, true
			break
		}
	}
	if !found {
		return fmt.Errorf("property %s not found", c.Args.ID)
	}
	err := v.Update(c.app.ctx, c.Args.ID, c.apply(inputOf(current)))
	return settle(c.app, v.State(), err)
}

type housesRemoveCmd struct {
	app  *app
	Args struct {
		ID string `positional-arg-name:"id" required:"true"`
	} `positional-args:"true"`
}

func (c *housesRemoveCmd) Execute([]string) error {
	if err := c.app.requireSession(); err != nil {
		return err
	}
	v := c.app.housesView()
	defer v.Close()

	err := v.Delete(c.app.ctx, c.Args.ID)
	return settle(c.app, v.State(), err)
}
