// Package service exposes one typed client per backend resource. Every method maps to a
// single endpoint, propagates *apiclient.Error unchanged and rejects responses whose shape
// does not match rather than substituting defaults.
package service

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/goodnatureofminers/energypulse/internal/apiclient"
)

// Services bundles the resource services sharing one API client.
type Services struct {
	Auth        *Auth
	Users       *Users
	Houses      *Houses
	Predictions *Predictions
	Admin       *Admin
	Blockchain  *Blockchain
	Weather     *Weather
}

// New builds every resource service on api.
func New(api Requester) *Services {
	return &Services{
		Auth:        NewAuth(api),
		Users:       NewUsers(api),
		Houses:      NewHouses(api),
		Predictions: NewPredictions(api),
		Admin:       NewAdmin(api),
		Blockchain:  NewBlockchain(api),
		Weather:     NewWeather(api),
	}
}

func segment(s string) string {
	return url.PathEscape(s)
}

// requireKeys decodes raw into a key set and reports the first missing key.
func requireKeys(operation string, raw json.RawMessage, keys ...string) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return apiclient.Malformed(operation, fmt.Errorf("expected object: %w", err))
	}
	for _, k := range keys {
		v, ok := fields[k]
		if !ok || string(v) == "null" {
			return apiclient.Malformed(operation, fmt.Errorf("missing %q", k))
		}
	}
	return nil
}

// decodeStrict checks required keys and then decodes raw into out.
func decodeStrict(operation string, raw json.RawMessage, out any, keys ...string) error {
	if err := requireKeys(operation, raw, keys...); err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return apiclient.Malformed(operation, err)
	}
	return nil
}
