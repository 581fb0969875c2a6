package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"timebank-service/src/pkg/log"

	"github.com/spf13/viper"
)

// Citizen is the registry record for one national id.
type Citizen struct {
	NationalID string `json:"national_id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	FamilyID   string `json:"family_id"`
}

// CitizenRegistry looks up the national registry at registration time.
// Unlike the notification channels this is a blocking dependency: a lookup
// failure fails the registration.
type CitizenRegistry interface {
	FindCitizenByNationalID(ctx context.Context, nationalID string) (*Citizen, error)
}

var ErrCitizenNotFound = fmt.Errorf("citizen not found in registry")

type httpRegistry struct {
	baseURL string
	apiKey  string
	client  *http.Client
	log     log.Log
}

func NewHTTPRegistry(v *viper.Viper, logger log.Log) CitizenRegistry {
	return &httpRegistry{
		baseURL: v.GetString("registry.base_url"),
		apiKey:  v.GetString("registry.api_key"),
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: logger,
	}
}

func (r *httpRegistry) FindCitizenByNationalID(ctx context.Context, nationalID string) (*Citizen, error) {
	url := fmt.Sprintf("%s/citizens/%s", r.baseURL, nationalID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Api-Key", r.apiKey)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrCitizenNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("registry returned status %d", resp.StatusCode)
	}

	var citizen Citizen
	if err := json.NewDecoder(resp.Body).Decode(&citizen); err != nil {
		return nil, err
	}
	return &citizen, nil
}
