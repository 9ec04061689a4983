package model

type Role string

const (
	RoleStudent  Role = "student"
	RoleEmployee Role = "employee"
	RoleCompany  Role = "company"
	RoleAdmin    Role = "admin"
)

// StudentTier reports whether the role gets student access. Employees are
// treated as students everywhere.
func (r Role) StudentTier() bool {
	return r == RoleStudent || r == RoleEmployee
}

func (r Role) Known() bool {
	switch r {
	case RoleStudent, RoleEmployee, RoleCompany, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID         int             `json:"id"`
	Name       string          `json:"name"`
	Email      string          `json:"email"`
	Role       Role            `json:"role"`
	IsVerified bool            `json:"is_verified"`
	Phone      string          `json:"phone,omitempty"`
	Student    *StudentProfile `json:"student,omitempty"`
	Company    *CompanyProfile `json:"company,omitempty"`
}

type StudentProfile struct {
	University     string `json:"university,omitempty"`
	Department     string `json:"department,omitempty"`
	Major          string `json:"major,omitempty"`
	GraduationYear string `json:"graduation_year,omitempty"`
	Skills         string `json:"skills,omitempty"`
	Bio            string `json:"bio,omitempty"`
	PortfolioURL   string `json:"portfolio_url,omitempty"`
	GithubURL      string `json:"github_url,omitempty"`
	LinkedinURL    string `json:"linkedin_url,omitempty"`
}

type CompanyProfile struct {
	CompanyName     string `json:"company_name,omitempty"`
	CompanyLocation string `json:"company_location,omitempty"`
	Website         string `json:"website,omitempty"`
	Industry        string `json:"industry,omitempty"`
	Description     string `json:"description,omitempty"`
}
