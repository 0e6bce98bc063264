// Package jobs talks to the France Travail offres d'emploi API and
// post-processes the listings: cleanup, deduplication, CSV export and
// summary stats for the bot's embeds.
package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2/clientcredentials"

	pkgerrors "github.com/Thinguy99/bot-discord/pkg/errors"
	"github.com/Thinguy99/bot-discord/pkg/types"
)

const (
	ftTokenURL  = "https://entreprise.francetravail.fr/connexion/oauth2/access_token?realm=%2Fpartenaire"
	ftBaseURL   = "https://api.francetravail.io/partenaire/offresdemploi/v2"
	ftDetailURL = "https://candidat.francetravail.fr/offres/recherche/detail/"

	sourceName = "francetravail"
)

type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient builds a France Travail client using OAuth2 client
// credentials; token refresh is handled by the oauth2 transport.
func NewClient(ctx context.Context, clientID, clientSecret string) *Client {
	cc := clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     ftTokenURL,
		Scopes:       []string{"api_offresdemploiv2", "o2dsoffre"},
	}
	return &Client{
		httpClient: cc.Client(ctx),
		baseURL:    ftBaseURL,
	}
}

// NewClientWithHTTP exists so tests can point the client at a local server.
func NewClientWithHTTP(hc *http.Client, baseURL string) *Client {
	return &Client{httpClient: hc, baseURL: baseURL}
}

type SearchParams struct {
	Keywords   string
	Location   string // matched against the listing location, empty = anywhere
	Limit      int
	Contract   string // normalized contract label, empty = any
	MaxAgeDays int    // drop offers posted more than N days ago, 0 = no limit
}

type ftResponse struct {
	Resultats []ftOffre `json:"resultats"`
}

type ftOffre struct {
	ID                 string `json:"id"`
	Intitule           string `json:"intitule"`
	Description        string `json:"description"`
	DateCreation       string `json:"dateCreation"`
	TypeContratLibelle string `json:"typeContratLibelle"`
	LieuTravail        struct {
		Libelle string `json:"libelle"`
	} `json:"lieuTravail"`
	Entreprise struct {
		Nom         string `json:"nom"`
		Description string `json:"description"`
	} `json:"entreprise"`
	Salaire struct {
		Libelle string `json:"libelle"`
	} `json:"salaire"`
	OrigineOffre struct {
		URLOrigine string `json:"urlOrigine"`
	} `json:"origineOffre"`
}

// Search queries the offres API and returns cleaned, deduplicated
// listings. Location filtering happens client-side on the listing's
// displayed location.
func (c *Client) Search(ctx context.Context, params SearchParams) ([]types.JobListing, error) {
	if params.Limit <= 0 || params.Limit > 100 {
		params.Limit = 20
	}

	q := url.Values{}
	q.Set("motsCles", params.Keywords)
	q.Set("range", fmt.Sprintf("0-%d", params.Limit-1))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/offres/search?"+q.Encode(), nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.KindTransportFailure, "jobs_search", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.KindTransportFailure, "jobs_search", err)
	}
	defer resp.Body.Close()

	// 206 is the API's normal "partial range" answer.
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPartialContent &&
		resp.StatusCode != http.StatusNoContent {
		return nil, pkgerrors.New(pkgerrors.KindTransportFailure, "jobs_search",
			fmt.Sprintf("France Travail API returned status %d", resp.StatusCode))
	}
	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}

	var body ftResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.KindMalformedResponse, "jobs_search", err)
	}

	listings := make([]types.JobListing, 0, len(body.Resultats))
	for _, offre := range body.Resultats {
		listing := offre.toListing()
		if params.Location != "" &&
			!strings.Contains(strings.ToLower(listing.Location), strings.ToLower(params.Location)) {
			continue
		}
		listings = append(listings, listing)
	}
	return filterListings(Clean(listings), params), nil
}

// filterListings applies the post-cleanup filters: contract type is
// matched against the normalized label, age against dateCreation. Offers
// without a parseable date are kept, their age cannot be judged.
func filterListings(listings []types.JobListing, params SearchParams) []types.JobListing {
	if params.Contract == "" && params.MaxAgeDays <= 0 {
		return listings
	}
	cutoff := time.Now().AddDate(0, 0, -params.MaxAgeDays)
	out := listings[:0]
	for _, l := range listings {
		if params.Contract != "" && l.ContractType != params.Contract {
			continue
		}
		if params.MaxAgeDays > 0 {
			if posted, err := time.Parse(time.RFC3339, l.PostedAt); err == nil && posted.Before(cutoff) {
				continue
			}
		}
		out = append(out, l)
	}
	return out
}

func (o ftOffre) toListing() types.JobListing {
	u := o.OrigineOffre.URLOrigine
	if u == "" {
		u = ftDetailURL + o.ID
	}
	return types.JobListing{
		Title:        o.Intitule,
		Company:      o.Entreprise.Nom,
		Location:     o.LieuTravail.Libelle,
		ContractType: o.TypeContratLibelle,
		Description:  o.Description,
		Salary:       o.Salaire.Libelle,
		URL:          u,
		Source:       sourceName,
		PostedAt:     o.DateCreation,
	}
}
