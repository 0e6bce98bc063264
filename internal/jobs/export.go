package jobs

import (
	"encoding/csv"
	"io"
	"sort"

	"github.com/Thinguy99/bot-discord/pkg/types"
)

var csvHeader = []string{
	"titre", "entreprise", "lieu", "type_contrat",
	"date_publication", "url", "salaire", "source", "description",
}

// WriteCSV exports listings in the column layout the bot attaches to its
// scrape replies.
func WriteCSV(w io.Writer, listings []types.JobListing) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, l := range listings {
		record := []string{
			l.Title, l.Company, l.Location, l.ContractType,
			l.PostedAt, l.URL, l.Salary, l.Source, l.Description,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

type Counted struct {
	Value string
	Count int
}

// Summary is the quick statistical digest shown in the scrape embed.
type Summary struct {
	Total        int
	TopCompanies []Counted
	TopLocations []Counted
	TopContracts []Counted
	Newest       string
	Oldest       string
}

func Summarize(listings []types.JobListing) Summary {
	s := Summary{Total: len(listings)}
	companies := make(map[string]int)
	locations := make(map[string]int)
	contracts := make(map[string]int)
	for _, l := range listings {
		if l.Company != "" {
			companies[l.Company]++
		}
		if l.Location != "" {
			locations[l.Location]++
		}
		if l.ContractType != "" {
			contracts[l.ContractType]++
		}
		if l.PostedAt != "" {
			if s.Newest == "" || l.PostedAt > s.Newest {
				s.Newest = l.PostedAt
			}
			if s.Oldest == "" || l.PostedAt < s.Oldest {
				s.Oldest = l.PostedAt
			}
		}
	}
	s.TopCompanies = topN(companies, 5)
	s.TopLocations = topN(locations, 5)
	s.TopContracts = topN(contracts, 3)
	return s
}

func topN(counts map[string]int, n int) []Counted {
	out := make([]Counted, 0, len(counts))
	for v, c := range counts {
		out = append(out, Counted{Value: v, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Value < out[j].Value
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
