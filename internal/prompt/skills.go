package prompt

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// SkillReference is the curated list of recognizable tools, soft skills
// and certifications embedded in the extraction prompt to bias the model
// toward concrete, operational skills.
type SkillReference struct {
	TechnicalSkills map[string][]string `yaml:"competences_techniques"`
	SoftSkills      []string            `yaml:"soft_skills"`
	Certifications  []string            `yaml:"certifications"`
}

// DefaultSkillReference mirrors the list the bot has always shipped with.
func DefaultSkillReference() SkillReference {
	return SkillReference{
		TechnicalSkills: map[string][]string{
			"Langages de programmation": {
				"Python", "R", "Java", "C", "C++", "C#", "JavaScript", "TypeScript",
				"PHP", "Ruby", "Swift", "Kotlin", "Go", "Rust", "SQL", "Scala",
				"Perl", "Shell", "Bash", "PowerShell", "MATLAB", "VBA",
			},
			"Data Science et ML": {
				"TensorFlow", "PyTorch", "Keras", "Scikit-learn", "Pandas", "NumPy",
				"SciPy", "NLTK", "spaCy", "Matplotlib", "Seaborn",
			},
			"Web et Frontend": {
				"HTML", "CSS", "Bootstrap", "React", "Angular", "Vue.js", "jQuery",
				"REST API", "GraphQL", "Node.js", "Express",
			},
			"Bases de données": {
				"MySQL", "PostgreSQL", "SQLite", "Oracle", "MongoDB", "Redis",
				"Elasticsearch", "NoSQL", "SQL Server", "MariaDB",
			},
			"DevOps et Cloud": {
				"AWS", "Azure", "GCP", "Docker", "Kubernetes", "Git", "GitHub",
				"GitLab", "CI/CD", "Jenkins", "Linux", "Unix", "Windows", "MacOS",
			},
			"Bureautique et outils": {
				"Microsoft Office", "Microsoft 365", "Office 365", "Suite Office",
				"Excel", "Word", "PowerPoint", "Access", "Outlook", "OneNote",
				"SharePoint", "OneDrive", "Teams", "Microsoft Teams", "Tableau",
				"Power BI", "SAP", "Salesforce", "Jira", "Confluence", "Trello",
				"MS Project",
			},
			"Autres outils techniques": {
				"LaTeX", "RStudio", "Jupyter", "Orange", "SAS", "SPSS",
			},
		},
		SoftSkills: []string{
			"Communication", "leadership", "travail d'équipe", "résolution de problèmes",
			"gestion de projet", "organisation", "autonomie", "adaptabilité",
			"créativité", "esprit critique", "négociation", "intelligence émotionnelle",
			"gestion du temps", "gestion du stress", "écoute active", "empathie",
			"flexibilité", "prise de décision", "persuasion", "présentation",
			"prise de parole en public",
		},
		Certifications: []string{
			"Permis B", "Permis BVA", "TOEIC", "TOEFL", "IELTS",
			"Cambridge Certificate", "DELF", "DALF", "HSK", "PIX",
			"Google Analytics", "Certification Microsoft", "Certification AWS",
			"Certification Azure", "ITIL", "PMP", "PRINCE2",
		},
	}
}

// LoadSkillReference reads a reference list from a YAML file, falling
// back to the built-in default when the file does not exist.
func LoadSkillReference(path string) (SkillReference, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSkillReference(), nil
		}
		return SkillReference{}, fmt.Errorf("failed to read skill reference: %w", err)
	}
	var ref SkillReference
	if err := yaml.Unmarshal(data, &ref); err != nil {
		return SkillReference{}, fmt.Errorf("failed to parse skill reference: %w", err)
	}
	return ref, nil
}

func (r SkillReference) render() string {
	var b strings.Builder
	b.WriteString("Exemples de compétences techniques à identifier (UNIQUEMENT les outils concrets et langages de programmation):\n")
	categories := make([]string, 0, len(r.TechnicalSkills))
	for category := range r.TechnicalSkills {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	for _, category := range categories {
		fmt.Fprintf(&b, "\n# %s\n%s\n", category, strings.Join(r.TechnicalSkills[category], ", "))
	}
	b.WriteString("\nATTENTION: N'inclus PAS les domaines de connaissances ou sujets théoriques comme compétences techniques.\n")
	b.WriteString("Par exemple, n'inclus PAS: Économie, Microéconomie, Macroéconomie, Comptabilité, Finance, Droit, Mathématiques, Statistiques théoriques, Machine Learning théorique, etc.\n")
	b.WriteString("Inclus UNIQUEMENT les outils et langages concrets que la personne sait utiliser.\n")
	b.WriteString("\nExemples de soft skills à identifier:\n")
	b.WriteString(strings.Join(r.SoftSkills, ", "))
	b.WriteString("\n\nExemples de certifications:\n")
	b.WriteString(strings.Join(r.Certifications, ", "))
	b.WriteString("\n")
	return b.String()
}
