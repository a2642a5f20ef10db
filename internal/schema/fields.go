package schema

import "github.com/jonathan/vacancy-wizard/internal/types"

// Widget hints for form renderers.
const (
	WidgetText        = "text_input"
	WidgetTextArea    = "text_area"
	WidgetSelect      = "selectbox"
	WidgetMultiSelect = "multiselect"
	WidgetNumber      = "number_input"
	WidgetCheckbox    = "checkbox"
	WidgetDate        = "date_input"
	WidgetFile        = "file_uploader"
	WidgetHidden      = "hidden"
)

// canonicalFields is the single source of truth for keys, steps and requirement levels.
var canonicalFields = []FieldSpec{
	// Basic Data
	{Key: "job_title", Step: StepBasicData, Requirement: Mandatory, Shape: ShapeScalar, Widget: WidgetText, Source: SourceExtracted,
		Label: "Stellentitel / Job Title", Help: "Official role title for the position."},
	{Key: "input_url", Step: StepBasicData, Requirement: Optional, Shape: ShapeScalar, Widget: WidgetText, Source: SourceUser,
		Label: "JD-URL / Job Description URL", Help: "Optional URL of an online job description to import."},
	{Key: "uploaded_file", Step: StepBasicData, Requirement: Optional, Shape: ShapeScalar, Widget: WidgetFile, Source: SourceUser,
		Label: "Stellenbeschreibung hochladen / Upload Job Description", Help: "Upload a PDF, DOCX or TXT job description."},
	{Key: "parsed_data_raw", Step: StepBasicData, Requirement: Optional, Shape: ShapeScalar, Widget: WidgetTextArea, Source: SourceExtracted,
		Label: "Rohtext / Raw Text", Help: "Text of the most recent upload or URL. Editing it re-runs field detection."},

	// Company Info
	{Key: "company_name", Step: StepCompanyInfo, Requirement: Mandatory, Shape: ShapeScalar, Widget: WidgetText, Source: SourceExtracted,
		Label: "Unternehmensname / Company Name", Help: "Name of the hiring company/organization."},
	{Key: "city", Step: StepCompanyInfo, Requirement: Mandatory, Shape: ShapeScalar, Widget: WidgetText, Source: SourceExtracted,
		Label: "Standort (Stadt) / Job Location (City)", Help: "Primary city or location for the job (leave blank if remote)."},
	{Key: "headquarters_location", Step: StepCompanyInfo, Requirement: Recommended, Shape: ShapeScalar, Widget: WidgetText, Source: SourceExtracted,
		Label: "Hauptsitz / Headquarters Location", Help: "Company headquarters (if different from job location)."},
	{Key: "company_website", Step: StepCompanyInfo, Requirement: Optional, Shape: ShapeScalar, Widget: WidgetText, Source: SourceExtracted,
		Label: "Webseite / Company Website", Help: "Official website of the company."},

	// Department & Team
	{Key: "brand_name", Step: StepDepartmentTeam, Requirement: Optional, Shape: ShapeScalar, Widget: WidgetText, Source: SourceUser,
		Label: "Marke/Abteilung / Brand or Department", Help: "Specific brand, division, or department (if applicable)."},
	{Key: "team_structure", Step: StepDepartmentTeam, Requirement: Optional, Shape: ShapeScalar, Widget: WidgetTextArea, Source: SourceUser,
		Label: "Team & Struktur / Team Structure", Help: "Brief description of the team and its structure."},

	// Role Definition
	{Key: "date_of_employment_start", Step: StepRoleDefinition, Requirement: Optional, Shape: ShapeScalar, Widget: WidgetDate, Source: SourceExtracted,
		Label: "Startdatum / Start Date", Help: "Planned start date of employment."},
	{Key: "job_type", Step: StepRoleDefinition, Requirement: Mandatory, Shape: ShapeScalar, Widget: WidgetSelect, Source: SourceExtracted,
		Label:   "Beschäftigungsart / Employment Type", Help: "Type of employment in terms of hours or commitment.",
		Options: []string{"Vollzeit (Full-time)", "Teilzeit (Part-time)", "Freelance", "Werkstudent (Working Student)"}},
	{Key: "contract_type", Step: StepRoleDefinition, Requirement: Mandatory, Shape: ShapeScalar, Widget: WidgetSelect, Source: SourceExtracted,
		Label:   "Vertragsart / Contract Type", Help: "Type of contract for the role.",
		Options: []string{"Unbefristet (Permanent)", "Befristet (Temporary)", "Praktikum (Internship)", "Freier Mitarbeiter (Contract)"}},
	{Key: "job_level", Step: StepRoleDefinition, Requirement: Mandatory, Shape: ShapeScalar, Widget: WidgetSelect, Source: SourceExtracted,
		Label:   "Karrierestufe / Seniority Level", Help: "Seniority or career level required for the role.",
		Options: []string{"Einsteiger (Entry)", "Junior", "Mid-Level", "Senior", "Lead", "Direktor (Director)"}},
	{Key: "role_description", Step: StepRoleDefinition, Requirement: Mandatory, Shape: ShapeScalar, Widget: WidgetTextArea, Source: SourceLLM,
		Label: "Rollenbeschreibung / Role Description", Help: "Overview paragraph describing the role's purpose and impact."},
	{Key: "role_type", Step: StepRoleDefinition, Requirement: Mandatory, Shape: ShapeList, Widget: WidgetMultiSelect, Source: SourceExtracted,
		Label:   "Rollentyp / Role Type", Help: "Nature of the role (select one or multiple categories).",
		Options: []string{"Technisch (Technical)", "Führungsposition (Managerial)", "Administrativ (Administrative)"}},
	{Key: "reports_to", Step: StepRoleDefinition, Requirement: Recommended, Shape: ShapeScalar, Widget: WidgetText, Source: SourceUser,
		Label: "Berichtet an / Reports To", Help: "The position or person this role reports to."},
	{Key: "supervises", Step: StepRoleDefinition, Requirement: Recommended, Shape: ShapeScalar, Widget: WidgetText, Source: SourceUser,
		Label: "Führt Aufsicht über / Supervises", Help: "If a managerial role, list positions or team this role oversees."},
	{Key: "role_performance_metrics", Step: StepRoleDefinition, Requirement: Optional, Shape: ShapeScalar, Widget: WidgetTextArea, Source: SourceUser,
		Label: "Erfolgskennzahlen / Performance Metrics"},
	{Key: "role_priority_projects", Step: StepRoleDefinition, Requirement: Optional, Shape: ShapeScalar, Widget: WidgetTextArea, Source: SourceUser,
		Label: "Prioritäre Projekte / Priority Projects"},
	{Key: "travel_requirements", Step: StepRoleDefinition, Requirement: Optional, Shape: ShapeScalar, Widget: WidgetText, Source: SourceUser,
		Label: "Reisebereitschaft / Travel Requirements"},
	{Key: "work_schedule", Step: StepRoleDefinition, Requirement: Optional, Shape: ShapeScalar, Widget: WidgetText, Source: SourceUser,
		Label: "Arbeitszeiten / Work Schedule"},
	{Key: "role_keywords", Step: StepRoleDefinition, Requirement: Optional, Shape: ShapeScalar, Widget: WidgetText, Source: SourceUser,
		Label: "Schlagwörter / Role Keywords"},
	{Key: "decision_making_authority", Step: StepRoleDefinition, Requirement: Optional, Shape: ShapeScalar, Widget: WidgetText, Source: SourceUser,
		Label: "Entscheidungsbefugnis / Decision-making Authority"},

	// Tasks & Responsibilities
	{Key: "task_list", Step: StepTasks, Requirement: Mandatory, Shape: ShapeScalar, Widget: WidgetTextArea, Source: SourceExtracted,
		Label: "Aufgaben / Task List", Help: "List of main tasks and responsibilities (one per line)."},
	{Key: "key_responsibilities", Step: StepTasks, Requirement: Recommended, Shape: ShapeScalar, Widget: WidgetTextArea, Source: SourceUser,
		Label: "Kernverantwortungen / Key Responsibilities", Help: "Key high-level responsibilities (if not evident from task list)."},
	{Key: "technical_tasks", Step: StepTasks, Requirement: Optional, Shape: ShapeScalar, Widget: WidgetTextArea, Source: SourceUser,
		Label: "Technische Aufgaben / Technical Tasks"},
	{Key: "managerial_tasks", Step: StepTasks, Requirement: Optional, Shape: ShapeScalar, Widget: WidgetTextArea, Source: SourceUser,
		Label: "Leitungsaufgaben / Managerial Tasks"},
	{Key: "administrative_tasks", Step: StepTasks, Requirement: Optional, Shape: ShapeScalar, Widget: WidgetTextArea, Source: SourceUser,
		Label: "Administrative Aufgaben / Administrative Tasks"},
	{Key: "customer_facing_tasks", Step: StepTasks, Requirement: Optional, Shape: ShapeScalar, Widget: WidgetTextArea, Source: SourceUser,
		Label: "Kundenaufgaben / Customer-facing Tasks"},
	{Key: "internal_reporting_tasks", Step: StepTasks, Requirement: Optional, Shape: ShapeScalar, Widget: WidgetTextArea, Source: SourceUser,
		Label: "Interne Berichte / Internal Reporting Tasks"},
	{Key: "performance_tasks", Step: StepTasks, Requirement: Optional, Shape: ShapeScalar, Widget: WidgetTextArea, Source: SourceUser,
		Label: "Leistungsaufgaben / Performance Tasks"},
	{Key: "innovation_tasks", Step: StepTasks, Requirement: Optional, Shape: ShapeScalar, Widget: WidgetTextArea, Source: SourceUser,
		Label: "Innovationsaufgaben / Innovation Tasks"},
	{Key: "task_prioritization", Step: StepTasks, Requirement: Optional, Shape: ShapeScalar, Widget: WidgetTextArea, Source: SourceUser,
		Label: "Priorisierung / Task Prioritization"},

	// Skills & Competencies
	{Key: "must_have_skills", Step: StepSkills, Requirement: Mandatory, Shape: ShapeScalar, Separated: true, Widget: WidgetTextArea, Source: SourceExtracted,
		Label: "Erforderliche Fähigkeiten / Must-have Skills", Help: "Essential skills and qualifications candidates must possess."},
	{Key: "hard_skills", Step: StepSkills, Requirement: Recommended, Shape: ShapeScalar, Separated: true, Widget: WidgetTextArea, Source: SourceUser,
		Label: "Fachliche Skills / Hard Skills", Help: "Technical or domain-specific skills required."},
	{Key: "soft_skills", Step: StepSkills, Requirement: Recommended, Shape: ShapeScalar, Separated: true, Widget: WidgetTextArea, Source: SourceUser,
		Label: "Soft Skills", Help: "Soft skills or personal competencies needed."},
	{Key: "nice_to_have_skills", Step: StepSkills, Requirement: Optional, Shape: ShapeScalar, Separated: true, Widget: WidgetTextArea, Source: SourceUser,
		Label: "Pluspunkte / Nice-to-have Skills", Help: "Additional skills that are beneficial but not mandatory."},
	{Key: "certifications_required", Step: StepSkills, Requirement: Optional, Shape: ShapeScalar, Widget: WidgetText, Source: SourceUser,
		Label: "Zertifikate / Required Certifications"},
	{Key: "language_requirements", Step: StepSkills, Requirement: Optional, Shape: ShapeScalar, Widget: WidgetText, Source: SourceUser,
		Label: "Sprachkenntnisse / Language Requirements", Help: "Required language proficiencies, comma separated."},
	{Key: "tool_proficiency", Step: StepSkills, Requirement: Optional, Shape: ShapeScalar, Separated: true, Widget: WidgetText, Source: SourceUser,
		Label: "Toolkenntnisse / Tool Proficiency"},
	{Key: "technical_stack", Step: StepSkills, Requirement: Optional, Shape: ShapeScalar, Separated: true, Widget: WidgetText, Source: SourceUser,
		Label: "Tech-Stack / Technical Stack"},
	{Key: "domain_expertise", Step: StepSkills, Requirement: Optional, Shape: ShapeScalar, Widget: WidgetText, Source: SourceUser,
		Label: "Fachgebiet / Domain Expertise"},
	{Key: "leadership_competencies", Step: StepSkills, Requirement: Optional, Shape: ShapeScalar, Widget: WidgetText, Source: SourceUser,
		Label: "Führungskompetenzen / Leadership Competencies"},
	{Key: "industry_experience", Step: StepSkills, Requirement: Optional, Shape: ShapeScalar, Widget: WidgetText, Source: SourceUser,
		Label: "Branchenerfahrung / Industry Experience"},
	{Key: "analytical_skills", Step: StepSkills, Requirement: Optional, Shape: ShapeScalar, Widget: WidgetText, Source: SourceUser,
		Label: "Analytische Fähigkeiten / Analytical Skills"},
	{Key: "communication_skills", Step: StepSkills, Requirement: Optional, Shape: ShapeScalar, Widget: WidgetText, Source: SourceUser,
		Label: "Kommunikation / Communication Skills"},
	{Key: "project_management_skills", Step: StepSkills, Requirement: Optional, Shape: ShapeScalar, Widget: WidgetText, Source: SourceUser,
		Label: "Projektmanagement / Project Management Skills"},
	{Key: "soft_requirement_details", Step: StepSkills, Requirement: Optional, Shape: ShapeScalar, Widget: WidgetTextArea, Source: SourceUser,
		Label: "Weitere Anforderungen / Further Requirements"},
	{Key: "visa_sponsorship", Step: StepSkills, Requirement: Optional, Shape: ShapeScalar, Widget: WidgetCheckbox, Source: SourceUser,
		Label: "Visa-Sponsoring / Visa Sponsorship"},

	// Compensation & Benefits
	{Key: "salary_range", Step: StepCompensation, Requirement: Mandatory, Shape: ShapeScalar, Widget: WidgetText, Source: SourceUser,
		Label: "Gehaltsspanne / Salary Range", Help: "Expected salary range for the position (e.g. 50-60k)."},
	{Key: "currency", Step: StepCompensation, Requirement: Mandatory, Shape: ShapeScalar, Widget: WidgetSelect, Source: SourceUser,
		Label: "Währung / Currency", Options: []string{"EUR", "USD", "GBP", "CHF", "Other"}},
	{Key: "pay_frequency", Step: StepCompensation, Requirement: Mandatory, Shape: ShapeScalar, Widget: WidgetSelect, Source: SourceUser,
		Label: "Zahlungsfrequenz / Pay Frequency", Options: []string{"Jährlich (Yearly)", "Monatlich (Monthly)", "Stündlich (Hourly)"}},
	{Key: "bonus_scheme", Step: StepCompensation, Requirement: Recommended, Shape: ShapeScalar, Widget: WidgetText, Source: SourceUser,
		Label: "Bonusregelung / Bonus Scheme"},
	{Key: "commission_structure", Step: StepCompensation, Requirement: Recommended, Shape: ShapeScalar, Widget: WidgetText, Source: SourceUser,
		Label: "Provision / Commission Structure"},
	{Key: "vacation_days", Step: StepCompensation, Requirement: Recommended, Shape: ShapeScalar, Widget: WidgetNumber, Source: SourceUser,
		Label: "Urlaubstage / Vacation Days"},
	{Key: "remote_work_policy", Step: StepCompensation, Requirement: Recommended, Shape: ShapeScalar, Widget: WidgetSelect, Source: SourceUser,
		Label: "Home-Office Möglichkeit / Remote Work", Options: []string{"None", "Hybrid", "Full Remote"}},
	{Key: "flexible_hours", Step: StepCompensation, Requirement: Recommended, Shape: ShapeScalar, Widget: WidgetCheckbox, Source: SourceUser,
		Label: "Gleitzeit / Flexible Hours"},
	{Key: "relocation_assistance", Step: StepCompensation, Requirement: Optional, Shape: ShapeScalar, Widget: WidgetCheckbox, Source: SourceUser,
		Label: "Umzugsunterstützung / Relocation Assistance"},
	{Key: "childcare_support", Step: StepCompensation, Requirement: Optional, Shape: ShapeScalar, Widget: WidgetCheckbox, Source: SourceUser,
		Label: "Kinderbetreuung / Childcare Support"},

	// Recruitment Process
	{Key: "recruitment_contact_email", Step: StepRecruitment, Requirement: Mandatory, Shape: ShapeScalar, Widget: WidgetText, Source: SourceUser,
		Label: "Kontakt E-Mail / Contact Email", Help: "Email address for applications or inquiries."},
	{Key: "recruitment_steps", Step: StepRecruitment, Requirement: Recommended, Shape: ShapeScalar, Widget: WidgetTextArea, Source: SourceUser,
		Label: "Bewerbungsprozess / Recruitment Steps"},
	{Key: "recruitment_timeline", Step: StepRecruitment, Requirement: Optional, Shape: ShapeScalar, Widget: WidgetText, Source: SourceUser,
		Label: "Einstellungszeitplan / Timeline"},
	{Key: "number_of_interviews", Step: StepRecruitment, Requirement: Optional, Shape: ShapeScalar, Widget: WidgetNumber, Source: SourceUser,
		Label: "Anzahl Interviews / Number of Interviews"},
	{Key: "interview_format", Step: StepRecruitment, Requirement: Optional, Shape: ShapeScalar, Widget: WidgetText, Source: SourceUser,
		Label: "Interviewformat / Interview Format"},
	{Key: "assessment_tests", Step: StepRecruitment, Requirement: Optional, Shape: ShapeScalar, Widget: WidgetText, Source: SourceUser,
		Label: "Tests / Assessment Tests"},
	{Key: "onboarding_process_overview", Step: StepRecruitment, Requirement: Optional, Shape: ShapeScalar, Widget: WidgetTextArea, Source: SourceUser,
		Label: "Onboarding / Onboarding Process"},
	{Key: "recruitment_contact_phone", Step: StepRecruitment, Requirement: Optional, Shape: ShapeScalar, Widget: WidgetText, Source: SourceUser,
		Label: "Kontakt Telefon / Contact Phone"},
	{Key: "application_instructions", Step: StepRecruitment, Requirement: Optional, Shape: ShapeScalar, Widget: WidgetTextArea, Source: SourceUser,
		Label: "Bewerbungshinweise / Application Instructions"},

	// Language & Publication
	{Key: "language_of_ad", Step: StepLanguagePublication, Requirement: Mandatory, Shape: ShapeScalar, Widget: WidgetSelect, Source: SourceUser,
		Label: "Anzeigesprache / Advertisement Language", Options: []string{"Deutsch", "English"}},
	{Key: "translation_required", Step: StepLanguagePublication, Requirement: Recommended, Shape: ShapeScalar, Widget: WidgetCheckbox, Source: SourceUser,
		Label: "Übersetzung benötigt? / Translation needed?"},
	{Key: "desired_publication_channels", Step: StepLanguagePublication, Requirement: Optional, Shape: ShapeList, Widget: WidgetMultiSelect, Source: SourceUser,
		Label:   "Veröffentlichungskanäle / Publication Channels",
		Options: []string{"LinkedIn", "Indeed", "Company Website", "Internal Portal", "LinkedIn Remote Jobs", "WeWorkRemotely", "Others"}},

	// Summary
	{Key: "expected_annual_salary", Step: StepSummary, Requirement: Optional, Shape: ShapeScalar, Widget: WidgetText, Source: SourceUser,
		Label: "Erwartetes Jahresgehalt / Expected Annual Salary"},
}

// Generated content keys. They are stored in the record but belong to no step.
const (
	GeneratedJobAd         types.FieldKey = "generated_job_ad"
	GeneratedInterviewPrep types.FieldKey = "generated_interview_prep"
	GeneratedEmailTemplate types.FieldKey = "generated_email_template"
	GeneratedTargetGroup   types.FieldKey = "target_group_analysis"
	GeneratedBooleanQuery  types.FieldKey = "generated_boolean_query"
)

// GeneratedKeys lists the generated content keys in display order.
var GeneratedKeys = []types.FieldKey{
	GeneratedJobAd,
	GeneratedInterviewPrep,
	GeneratedEmailTemplate,
	GeneratedTargetGroup,
	GeneratedBooleanQuery,
}

// IsGenerated reports whether key holds generated content.
func IsGenerated(key types.FieldKey) bool {
	for _, k := range GeneratedKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Keys that the wizard sets from the ingest source rather than from extraction.
const (
	KeyInputURL     types.FieldKey = "input_url"
	KeyUploadedFile types.FieldKey = "uploaded_file"
)
