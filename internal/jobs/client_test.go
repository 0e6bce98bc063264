package jobs

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	pkgerrors "github.com/Thinguy99/bot-discord/pkg/errors"
)

const searchBody = `{
  "resultats": [
    {
      "id": "1001",
      "intitule": "Data Scientist H/F",
      "description": "<p>Analyser les données.</p>",
      "dateCreation": "2026-02-10T08:00:00Z",
      "typeContratLibelle": "CDI",
      "lieuTravail": {"libelle": "75 - Paris"},
      "entreprise": {"nom": "Acme Corp"},
      "salaire": {"libelle": "40000 € - 50000 € par an"},
      "origineOffre": {"urlOrigine": "https://example.com/offre/1001"}
    },
    {
      "id": "1001-bis",
      "intitule": "Data Scientist H/F",
      "description": "Doublon.",
      "typeContratLibelle": "CDI",
      "lieuTravail": {"libelle": "75 - Paris"},
      "entreprise": {"nom": "Acme Corp"},
      "origineOffre": {"urlOrigine": "https://example.com/offre/1001"}
    },
    {
      "id": "2002",
      "intitule": "Data Analyst",
      "description": "Tableaux de bord.",
      "typeContratLibelle": "CDD",
      "lieuTravail": {"libelle": "69 - Lyon"},
      "entreprise": {"nom": "Beta SARL"},
      "origineOffre": {}
    }
  ]
}`

func newSearchServer(t *testing.T, status int, body string) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/offres/search" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("motsCles"); got != "data" {
			t.Errorf("motsCles = %q, want data", got)
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return NewClientWithHTTP(srv.Client(), srv.URL)
}

func TestSearch(t *testing.T) {
	c := newSearchServer(t, http.StatusPartialContent, searchBody)

	listings, err := c.Search(context.Background(), SearchParams{Keywords: "data", Limit: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(listings) != 2 {
		t.Fatalf("got %d listings, want 2 after URL dedupe", len(listings))
	}

	first := listings[0]
	if first.Title != "Data Scientist H/F" || first.Company != "Acme Corp" {
		t.Errorf("unexpected first listing: %+v", first)
	}
	if first.ContractType != "Full-time" {
		t.Errorf("contract should be normalized, got %q", first.ContractType)
	}
	if first.URL != "https://example.com/offre/1001" {
		t.Errorf("url = %q", first.URL)
	}
	if first.Source != "francetravail" {
		t.Errorf("source = %q", first.Source)
	}

	// No origin URL on the second offer: fall back to the detail page.
	if listings[1].URL != ftDetailURL+"2002" {
		t.Errorf("fallback url = %q", listings[1].URL)
	}
}

func TestSearchLocationFilter(t *testing.T) {
	c := newSearchServer(t, http.StatusOK, searchBody)

	listings, err := c.Search(context.Background(), SearchParams{Keywords: "data", Location: "lyon", Limit: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(listings) != 1 || listings[0].Company != "Beta SARL" {
		t.Errorf("location filter should keep only the Lyon offer, got %+v", listings)
	}
}

func TestSearchNoContent(t *testing.T) {
	c := newSearchServer(t, http.StatusNoContent, "")

	listings, err := c.Search(context.Background(), SearchParams{Keywords: "data"})
	if err != nil {
		t.Fatalf("204 should not be an error: %v", err)
	}
	if len(listings) != 0 {
		t.Errorf("204 should yield no listings, got %d", len(listings))
	}
}

func TestSearchContractAndAgeFilters(t *testing.T) {
	recent := time.Now().AddDate(0, 0, -2).Format(time.RFC3339)
	old := time.Now().AddDate(0, 0, -90).Format(time.RFC3339)
	body := fmt.Sprintf(`{
  "resultats": [
    {
      "id": "1",
      "intitule": "Stage data",
      "typeContratLibelle": "Stage",
      "dateCreation": %q,
      "lieuTravail": {"libelle": "75 - Paris"},
      "entreprise": {"nom": "Acme"},
      "origineOffre": {"urlOrigine": "https://example.com/1"}
    },
    {
      "id": "2",
      "intitule": "CDI data",
      "typeContratLibelle": "CDI",
      "dateCreation": %q,
      "lieuTravail": {"libelle": "75 - Paris"},
      "entreprise": {"nom": "Acme"},
      "origineOffre": {"urlOrigine": "https://example.com/2"}
    },
    {
      "id": "3",
      "intitule": "Vieux stage",
      "typeContratLibelle": "Stage",
      "dateCreation": %q,
      "lieuTravail": {"libelle": "75 - Paris"},
      "entreprise": {"nom": "Acme"},
      "origineOffre": {"urlOrigine": "https://example.com/3"}
    }
  ]
}`, recent, recent, old)
	c := newSearchServer(t, http.StatusOK, body)

	listings, err := c.Search(context.Background(), SearchParams{
		Keywords:   "data",
		Contract:   "Internship",
		MaxAgeDays: 30,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(listings) != 1 {
		t.Fatalf("got %d listings, want 1 after contract and age filters: %+v", len(listings), listings)
	}
	if listings[0].Title != "Stage data" || listings[0].ContractType != "Internship" {
		t.Errorf("unexpected surviving listing: %+v", listings[0])
	}
}

func TestSearchAgeFilterKeepsUndatedOffers(t *testing.T) {
	body := `{
  "resultats": [
    {
      "id": "1",
      "intitule": "Stage sans date",
      "typeContratLibelle": "Stage",
      "lieuTravail": {"libelle": "75 - Paris"},
      "entreprise": {"nom": "Acme"},
      "origineOffre": {"urlOrigine": "https://example.com/1"}
    }
  ]
}`
	c := newSearchServer(t, http.StatusOK, body)

	listings, err := c.Search(context.Background(), SearchParams{Keywords: "data", MaxAgeDays: 7})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(listings) != 1 {
		t.Errorf("offers without a date should be kept, got %d listings", len(listings))
	}
}

func TestSearchServerError(t *testing.T) {
	c := newSearchServer(t, http.StatusInternalServerError, "boom")

	_, err := c.Search(context.Background(), SearchParams{Keywords: "data"})
	if pkgerrors.KindOf(err) != pkgerrors.KindTransportFailure {
		t.Errorf("expected TransportFailure, got %v", err)
	}
}

func TestSearchMalformedBody(t *testing.T) {
	c := newSearchServer(t, http.StatusOK, "{not json")

	_, err := c.Search(context.Background(), SearchParams{Keywords: "data"})
	if pkgerrors.KindOf(err) != pkgerrors.KindMalformedResponse {
		t.Errorf("expected MalformedResponse, got %v", err)
	}
}
