package models

// ProfileRecord is the structured profile extracted from a resume or pasted text.
// All eleven keys are always serialized; list fields are never null.
type ProfileRecord struct {
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Phone     string   `json:"phone"`
	LinkedIn  string   `json:"linkedin"`
	GitHub    string   `json:"github"`
	Education []string `json:"education"`
	Skills    []string `json:"skills"`
	Projects  []string `json:"projects"`
	TargetJob string   `json:"target_job"`
	Company   string   `json:"company"`
	Position  string   `json:"position"`
}

// Profile keys in serialization order.
const (
	ProfileKeyName      = "name"
	ProfileKeyEmail     = "email"
	ProfileKeyPhone     = "phone"
	ProfileKeyLinkedIn  = "linkedin"
	ProfileKeyGitHub    = "github"
	ProfileKeyEducation = "education"
	ProfileKeySkills    = "skills"
	ProfileKeyProjects  = "projects"
	ProfileKeyTargetJob = "target_job"
	ProfileKeyCompany   = "company"
	ProfileKeyPosition  = "position"
)

var (
	ProfileStringKeys = []string{
		ProfileKeyName, ProfileKeyEmail, ProfileKeyPhone, ProfileKeyLinkedIn, ProfileKeyGitHub,
		ProfileKeyTargetJob, ProfileKeyCompany, ProfileKeyPosition,
	}
	ProfileListKeys = []string{ProfileKeyEducation, ProfileKeySkills, ProfileKeyProjects}
)

// NewProfileRecord returns a record holding only defaults.
func NewProfileRecord() ProfileRecord {
	return ProfileRecord{
		Education: []string{},
		Skills:    []string{},
		Projects:  []string{},
	}
}

// Normalize replaces nil lists with empty ones.
func (p *ProfileRecord) Normalize() {
	if p.Education == nil {
		p.Education = []string{}
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}
	if p.Projects == nil {
		p.Projects = []string{}
	}
}

// SetString assigns a scalar field by key. Unknown keys are ignored.
func (p *ProfileRecord) SetString(key, value string) {
	switch key {
	case ProfileKeyName:
		p.Name = value
	case ProfileKeyEmail:
		p.Email = value
	case ProfileKeyPhone:
		p.Phone = value
	case ProfileKeyLinkedIn:
		p.LinkedIn = value
	case ProfileKeyGitHub:
		p.GitHub = value
	case ProfileKeyTargetJob:
		p.TargetJob = value
	case ProfileKeyCompany:
		p.Company = value
	case ProfileKeyPosition:
		p.Position = value
	}
}

// SetList assigns a list field by key. Unknown keys are ignored.
func (p *ProfileRecord) SetList(key string, values []string) {
	switch key {
	case ProfileKeyEducation:
		p.Education = values
	case ProfileKeySkills:
		p.Skills = values
	case ProfileKeyProjects:
		p.Projects = values
	}
}

// Clone returns a copy that shares no slices with p.
func (p ProfileRecord) Clone() ProfileRecord {
	c := p
	c.Education = append([]string{}, p.Education...)
	c.Skills = append([]string{}, p.Skills...)
	c.Projects = append([]string{}, p.Projects...)
	return c
}
