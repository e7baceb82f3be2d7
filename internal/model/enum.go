package model

// InvestmentStatus is the lifecycle state of an investment.
type InvestmentStatus string

const (
	InvestmentPlanned   InvestmentStatus = "planned"
	InvestmentActive    InvestmentStatus = "active"
	InvestmentCompleted InvestmentStatus = "completed"
	InvestmentCancelled InvestmentStatus = "cancelled"
)

// CompoundingStatus records whether an investment made later investment more effective.
type CompoundingStatus string

const (
	Compounding    CompoundingStatus = "compounding"
	NotCompounding CompoundingStatus = "not_compounding"
	TooEarly       CompoundingStatus = "too_early"
	UnknownStatus  CompoundingStatus = "unknown"
)

// DecisionStatus is the lifecycle state of a decision.
type DecisionStatus string

const (
	DecisionUpcoming     DecisionStatus = "upcoming"
	DecisionDeliberating DecisionStatus = "deliberating"
	DecisionLocked       DecisionStatus = "locked"
	DecisionCompleted    DecisionStatus = "completed"
)

// Gap measures the mismatch between a narrative and reality.
type Gap string

const (
	GapHigh    Gap = "high"
	GapMedium  Gap = "medium"
	GapLow     Gap = "low"
	GapAligned Gap = "aligned"
)

// OpportunityStatus is the lifecycle state of an opportunity.
type OpportunityStatus string

const (
	OpportunityOpen        OpportunityStatus = "open"
	OpportunityClosingSoon OpportunityStatus = "closing_soon"
	OpportunityClosed      OpportunityStatus = "closed"
	OpportunityAwarded     OpportunityStatus = "awarded"
)

// Active reports whether applications can still be made.
func (s OpportunityStatus) Active() bool {
	return s == OpportunityOpen || s == OpportunityClosingSoon
}

// SubmissionType names the kind of record a submission proposes.
type SubmissionType string

const (
	SubmissionOrganization SubmissionType = "organization"
	SubmissionInvestment   SubmissionType = "investment"
	SubmissionDecision     SubmissionType = "decision"
	SubmissionOpportunity  SubmissionType = "opportunity"
	SubmissionNarrative    SubmissionType = "narrative"
	SubmissionPrecedent    SubmissionType = "precedent"
	SubmissionPractitioner SubmissionType = "practitioner"
)

// SubmissionStatus is the review state of a submission.
type SubmissionStatus string

const (
	SubmissionPending  SubmissionStatus = "pending"
	SubmissionApproved SubmissionStatus = "approved"
	SubmissionRejected SubmissionStatus = "rejected"
)

// InvestmentCategory classifies what an investment pays for.
type InvestmentCategory string

const (
	CategoryDirectArtistSupport    InvestmentCategory = "direct_artist_support"
	CategoryOrganizationalCapacity InvestmentCategory = "organizational_capacity"
	CategoryInfrastructure         InvestmentCategory = "infrastructure"
	CategoryPublicArt              InvestmentCategory = "public_art"
	CategoryMusic                  InvestmentCategory = "music"
	CategoryFilmMedia              InvestmentCategory = "film_media"
	CategoryPerformingArts         InvestmentCategory = "performing_arts"
	CategoryLiterary               InvestmentCategory = "literary"
	CategoryArtsEducation          InvestmentCategory = "arts_education"
	CategoryFestival               InvestmentCategory = "festival"
	CategoryCulinary               InvestmentCategory = "culinary"
)

// Discipline is a practitioner's primary creative field.
type Discipline string

const (
	DisciplineVisualArts      Discipline = "visual_arts"
	DisciplineMusic           Discipline = "music"
	DisciplineFilm            Discipline = "film"
	DisciplineTheater         Discipline = "theater"
	DisciplineDance           Discipline = "dance"
	DisciplineLiterary        Discipline = "literary"
	DisciplineCulinary        Discipline = "culinary"
	DisciplineMultidiscipline Discipline = "multidisciplinary"
)

// categoryDisciplines maps investment categories onto the discipline they fund.
// Categories that fund the ecosystem broadly (capacity, infrastructure) have no entry.
var categoryDisciplines = map[InvestmentCategory]Discipline{
	CategoryPublicArt:           DisciplineVisualArts,
	CategoryDirectArtistSupport: DisciplineMultidiscipline,
	CategoryMusic:               DisciplineMusic,
	CategoryFestival:            DisciplineMusic,
	CategoryFilmMedia:           DisciplineFilm,
	CategoryPerformingArts:      DisciplineTheater,
	CategoryLiterary:            DisciplineLiterary,
	CategoryCulinary:            DisciplineCulinary,
}

// DisciplineFor returns the discipline an investment category funds.
func DisciplineFor(c InvestmentCategory) (Discipline, bool) {
	d, ok := categoryDisciplines[c]
	return d, ok
}
