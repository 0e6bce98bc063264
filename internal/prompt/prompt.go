// Package prompt renders the natural-language prompts sent to the LLM
// backends. Every function is a pure function of its inputs: the same
// résumé and listing always produce the same string, and each prompt is
// self-contained (the model needs no further context).
package prompt

import (
	"fmt"
	"strings"

	"github.com/Thinguy99/bot-discord/pkg/types"
)

const extractionSchema = `{
  "prenom_nom": "string",
  "email": "string",
  "telephone": "string",
  "linkedin": "string (seulement le nom d'utilisateur, pas l'URL complète, ou vide si non présent)",
  "github": "string (seulement le nom d'utilisateur, pas l'URL complète, ou vide si non présent)",
  "competences_techniques": ["compétence technique 1", "compétence technique 2"],
  "soft_skills": ["soft skill 1", "soft skill 2"],
  "langues": ["string (langue et niveau)"],
  "certifications": ["string (certification 1)", "string (certification 2)"],
  "formation": [
    {
      "titre": "string (diplôme et spécialité)",
      "etablissement": "string (nom de l'école/université)",
      "periode": "string (dates de début et fin)",
      "details": ["string (enseignements, mentions, etc.)"]
    }
  ],
  "experience": [
    {
      "titre": "string (intitulé du poste)",
      "entreprise": "string (nom de l'entreprise)",
      "lieu": "string (ville/pays ou télétravail)",
      "periode": "string (dates de début et fin)",
      "details": ["string (responsabilités, accomplissements)"]
    }
  ]
}`

// Builder renders prompts; the skill reference only matters for the
// extraction prompt, the two others are plain functions of their inputs.
type Builder struct {
	ref SkillReference
}

func NewBuilder(ref SkillReference) *Builder {
	return &Builder{ref: ref}
}

// Extraction builds the CV-to-JSON extraction prompt. The model is told
// to answer with JSON only, so the normalizer can parse the reply.
func (b *Builder) Extraction(cvText string) string {
	return fmt.Sprintf(`Voici le texte complet d'un CV extrait d'un fichier PDF. Analyse-le et convertis-le directement en JSON avec la structure suivante:

%s

Instructions spéciales:
- Inclus TOUJOURS les champs "linkedin" et "github" dans le JSON, même s'ils sont vides ("").
- Pour LinkedIn, si tu trouves une URL comme "linkedin.com/in/nom-utilisateur", n'inclus que "nom-utilisateur".
- Pour GitHub, si tu trouves une URL comme "github.com/nom-utilisateur", n'inclus que "nom-utilisateur".
- Si aucun profil LinkedIn ou GitHub n'est mentionné dans le CV, laisse ces champs vides: "linkedin": "", "github": "".
- IMPORTANT: Pour les compétences techniques, inclus UNIQUEMENT les langages de programmation, logiciels, et outils concrets.
  * Ne pas inclure les domaines de connaissances théoriques comme l'économie, la finance, les mathématiques, etc.
  * Assure-toi d'inclure les outils de la suite Microsoft Office (Word, Excel, PowerPoint) et Microsoft 365 s'ils sont mentionnés dans le CV.
- Identifie et liste toutes les soft skills (compétences personnelles, interpersonnelles et transversales).
- CERTIFICATIONS: recherche et inclus toutes les certifications mentionnées (permis de conduire, TOEIC, TOEFL, PIX, etc.). Si aucune, laisse la liste vide: [].
- Tu dois ABSOLUMENT inclure les champs "competences_techniques", "soft_skills" et "certifications" dans le JSON final, même s'ils sont vides.

%s

Texte du CV:
%s

Retourne UNIQUEMENT le JSON sans aucun autre commentaire. Assure-toi que le format est valide.`,
		extractionSchema, b.ref.render(), cvText)
}

// Relevance builds the binary fit-judgment prompt. The reply is
// constrained to the bare tokens "oui" or "non".
func Relevance(rec *types.ResumeRecord, job *types.JobListing) string {
	return fmt.Sprintf(`Tu es un expert RH.

Voici un CV et une offre d'emploi. Réponds uniquement par "oui" si le profil correspond à plus de 70 %% à l'offre, sinon réponds "non". Ne donne aucune explication.

--- CV ---
%s

--- Offre ---
%s
`, formatResume(rec, "\n- "), formatJob(job))
}

// Letter builds the cover-letter generation prompt. The reply is free
// text: the finished letter body, ready for the document emitter.
func Letter(rec *types.ResumeRecord, job *types.JobListing, personal *types.PersonalContext) string {
	persoTxt := formatPersonal(personal)
	if persoTxt == "" {
		persoTxt = "Aucune information supplémentaire fournie."
	}

	return fmt.Sprintf(`Tu es un expert RH et spécialiste de la rédaction de lettres de motivation professionnelles. Rédige une lettre complète, prête à être envoyée, en t'appuyant sur le CV du candidat et l'offre d'emploi ci-dessous.

Objectif :
Fournir une lettre claire, convaincante, personnalisée, sans faute ni besoin de correction, dans un style fluide, professionnel et humain.

La lettre doit impérativement :
- Tenir sur une page (Word A4) avec un style direct et efficace.
- Suivre ce plan structuré :
    1. Présentation brève du candidat et de son parcours
    2. Motivation sincère et cohérente pour le poste
    3. Mise en lien entre l'entreprise/l'offre et les valeurs du candidat
    4. Mise en avant ciblée des compétences, expériences ou cours suivis correspondant aux missions
    5. Remerciements, disponibilité pour un entretien, et formule de politesse

Style :
- Zéro faute d'orthographe ou de grammaire.
- Chaque phrase commence par une majuscule.
- Aucune formule générique ni tournure artificielle.
- Le ton doit être confiant, positif, professionnel et chaleureux.
- Ne propose aucun espace à compléter : tout doit être finalisé.

Contexte fourni :

--- CV ---
Nom : %s
Email : %s
Téléphone : %s
LinkedIn : %s
GitHub : %s

Formation :
%s

Expériences :
%s

Compétences techniques : %s
Compétences comportementales (soft skills) : %s
Langues : %s
Certifications : %s

--- Offre ---
%s

--- Informations complémentaires du candidat ---
%s

Retourne UNIQUEMENT le texte de la lettre, sans commentaire ni mise en forme Markdown.`,
		rec.FullName, rec.Email, rec.Phone,
		orDefault(rec.LinkedIn, "Non spécifié"), orDefault(rec.GitHub, "Non spécifié"),
		formatEducation(rec.Education), formatExperience(rec.Experience),
		strings.Join(rec.TechnicalSkills, ", "), strings.Join(rec.SoftSkills, ", "),
		strings.Join(rec.Languages, ", "), strings.Join(rec.Certifications, ", "),
		formatJob(job), persoTxt)
}

func formatResume(rec *types.ResumeRecord, listSep string) string {
	return fmt.Sprintf(`Nom : %s
Email : %s
Téléphone : %s

Formation :
%s

Expériences :
%s

Compétences techniques :
- %s

Soft skills :
- %s

Langues :
- %s

Certifications :
- %s`,
		rec.FullName, rec.Email, rec.Phone,
		formatEducation(rec.Education), formatExperience(rec.Experience),
		strings.Join(rec.TechnicalSkills, listSep),
		strings.Join(rec.SoftSkills, listSep),
		strings.Join(rec.Languages, listSep),
		strings.Join(rec.Certifications, listSep))
}

func formatJob(job *types.JobListing) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Titre : %s\n", job.Title)
	fmt.Fprintf(&b, "Entreprise : %s\n", job.Company)
	fmt.Fprintf(&b, "Lieu : %s\n", job.Location)
	fmt.Fprintf(&b, "Type de contrat : %s\n", job.ContractType)
	if job.Description != "" {
		fmt.Fprintf(&b, "\nDescription de l'entreprise :\n%s\n", job.Description)
	}
	if job.Missions != "" {
		fmt.Fprintf(&b, "\nMissions proposées :\n%s\n", job.Missions)
	}
	if job.Profile != "" {
		fmt.Fprintf(&b, "\nProfil recherché :\n%s\n", job.Profile)
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatEducation(entries []types.EducationEntry) string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		line := fmt.Sprintf("- %s – %s (%s)", e.Title, e.Institution, e.Period)
		if len(e.Details) > 0 {
			line += "\n  " + strings.Join(e.Details, "\n  ")
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func formatExperience(entries []types.ExperienceEntry) string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		line := fmt.Sprintf("- %s – %s, %s (%s)", e.Title, e.Company, e.Location, e.Period)
		if len(e.Details) > 0 {
			line += "\n  " + strings.Join(e.Details, "\n  ")
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func formatPersonal(p *types.PersonalContext) string {
	if p == nil {
		return ""
	}
	var b strings.Builder
	if p.Motivation != "" {
		fmt.Fprintf(&b, "Motivation personnelle : %s\n", p.Motivation)
	}
	if p.CompanyLink != "" {
		fmt.Fprintf(&b, "Lien particulier avec l'entreprise ou le secteur : %s\n", p.CompanyLink)
	}
	if p.Constraints != "" {
		fmt.Fprintf(&b, "Informations supplémentaires : %s\n", p.Constraints)
	}
	return strings.TrimRight(b.String(), "\n")
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
