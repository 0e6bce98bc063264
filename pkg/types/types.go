package types

// =============== CV TYPES ===============

// ResumeRecord is the normalized structured form of a résumé, as produced
// by the extraction pipeline. JSON field names match the wire format the
// LLM is asked for, which is French like the rest of the bot.
type ResumeRecord struct {
	FullName        string            `json:"prenom_nom"`
	Email           string            `json:"email"`
	Phone           string            `json:"telephone"`
	Address         string            `json:"adresse,omitempty"`
	LinkedIn        string            `json:"linkedin"`
	GitHub          string            `json:"github"`
	TechnicalSkills []string          `json:"competences_techniques"`
	SoftSkills      []string          `json:"soft_skills"`
	Languages       []string          `json:"langues"`
	Certifications  []string          `json:"certifications"`
	Education       []EducationEntry  `json:"formation"`
	Experience      []ExperienceEntry `json:"experience"`
}

type EducationEntry struct {
	Title       string   `json:"titre"`
	Institution string   `json:"etablissement"`
	Period      string   `json:"periode"`
	Details     []string `json:"details"`
}

type ExperienceEntry struct {
	Title    string   `json:"titre"`
	Company  string   `json:"entreprise"`
	Location string   `json:"lieu"`
	Period   string   `json:"periode"`
	Details  []string `json:"details"`
}

// =============== JOB TYPES ===============

// JobListing is a scraped job posting. URL is the canonical identifier
// used for deduplication.
type JobListing struct {
	Title        string `json:"titre"`
	Company      string `json:"entreprise"`
	Location     string `json:"lieu"`
	ContractType string `json:"type_contrat"`
	Description  string `json:"description"`
	Missions     string `json:"missions,omitempty"`
	Profile      string `json:"profil_recherche,omitempty"`
	Salary       string `json:"salaire,omitempty"`
	URL          string `json:"url"`
	Source       string `json:"source"`
	PostedAt     string `json:"date_publication,omitempty"`
}

// PersonalContext carries the optional free-text details a candidate can
// supply at letter-generation time. All fields may be empty.
type PersonalContext struct {
	Motivation  string `json:"motivation"`
	CompanyLink string `json:"lien_entreprise"`
	Constraints string `json:"contraintes"`
}

// =============== RELEVANCE TYPES ===============

// RelevanceVerdict is the tagged outcome of a résumé/job fit check.
type RelevanceVerdict int

const (
	// Indeterminate means the model reply was not one of the two expected
	// tokens, or the call failed. Callers must treat it as "do not proceed".
	Indeterminate RelevanceVerdict = iota
	Relevant
	NotRelevant
)

func (v RelevanceVerdict) String() string {
	switch v {
	case Relevant:
		return "relevant"
	case NotRelevant:
		return "not_relevant"
	default:
		return "indeterminate"
	}
}
