package model

import (
	"fmt"
	"time"
)

// HeatingType enumerates household heating systems.
type HeatingType string

var (
	HeatingElectric   HeatingType = "electric"
	HeatingNaturalGas HeatingType = "natural_gas"
	HeatingHeatPump   HeatingType = "heat_pump"
	HeatingBiomass    HeatingType = "biomass"
)

// HeatingTypes lists the heating systems in display order.
var HeatingTypes = []HeatingType{HeatingNaturalGas, HeatingElectric, HeatingHeatPump, HeatingBiomass}

// Valid reports whether h is a known heating type.
func (h HeatingType) Valid() bool {
	for _, known := range HeatingTypes {
		if h == known {
			return true
		}
	}
	return false
}

// HouseholdStatus tells whether a household is active or archived.
type HouseholdStatus string

var (
	StatusActive   HouseholdStatus = "active"
	StatusArchived HouseholdStatus = "archived"
)

// Household is a registered property with a smart meter, owned by one user.
type Household struct {
	ID          string          `json:"id"`
	UserID      uint            `json:"userId"`
	HouseName   string          `json:"houseName"`
	Address     string          `json:"address"`
	City        string          `json:"city"`
	Region      string          `json:"region"`
	Country     string          `json:"country"`
	Members     int             `json:"members"`
	HeatingType HeatingType     `json:"heatingType"`
	AreaSqm     float64         `json:"areaSqm"`
	YearBuilt   int             `json:"yearBuilt"`
	MeterID     string          `json:"meterId"`
	Status      HouseholdStatus `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`

	// Populated for administrators only.
	UserEmail string `json:"userEmail,omitempty"`
	OwnerName string `json:"ownerName,omitempty"`
}

// Validate checks the household invariants the client relies on.
func (h Household) Validate() error {
	if h.ID == "" {
		return fmt.Errorf("household id is missing")
	}
	if h.UserID == 0 {
		return fmt.Errorf("household %s has no owner", h.ID)
	}
	return nil
}

// HouseholdInput is the create/update payload.
type HouseholdInput struct {
	HouseName   string      `json:"houseName"`
	Address     string      `json:"address"`
	City        string      `json:"city"`
	Region      string      `json:"region"`
	Country     string      `json:"country"`
	Members     int         `json:"members"`
	HeatingType HeatingType `json:"heatingType"`
	AreaSqm     float64     `json:"areaSqm"`
	YearBuilt   int         `json:"yearBuilt"`
}

// DefaultHouseholdInput mirrors the registration form defaults.
func DefaultHouseholdInput() HouseholdInput {
	return HouseholdInput{
		Country:     "Italia",
		Members:     2,
		HeatingType: HeatingNaturalGas,
		AreaSqm:     80,
		YearBuilt:   2000,
	}
}

// Validate checks the fields the registration form requires.
func (in HouseholdInput) Validate() error {
	if in.HouseName == "" {
		return fmt.Errorf("house name is required")
	}
	if in.City == "" {
		return fmt.Errorf("city is required")
	}
	if in.HeatingType != "" && !in.HeatingType.Valid() {
		return fmt.Errorf("unknown heating type %q", in.HeatingType)
	}
	if in.Members < 0 || in.AreaSqm < 0 {
		return fmt.Errorf("members and area must not be negative")
	}
	return nil
}
